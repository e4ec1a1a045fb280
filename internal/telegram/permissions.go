package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
)

// Permissions answers the capability question behind strategy dispatch:
// does this account hold channel-wide delete-messages permission.
type Permissions struct {
	bot *bot.Bot
}

// NewPermissions creates a Permissions checker bound to the bot instance.
func NewPermissions(b *bot.Bot) *Permissions {
	return &Permissions{bot: b}
}

// CanDeleteMessages reports whether the user may delete other members'
// messages in the chat. Owners always can; administrators when granted;
// everyone else cannot.
func (p *Permissions) CanDeleteMessages(ctx context.Context, chatID, userID int64) (bool, error) {
	member, err := p.bot.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: chatID,
		UserID: userID,
	})
	if err != nil {
		return false, fmt.Errorf("get chat member: %w", err)
	}

	switch {
	case member.Owner != nil:
		return true, nil
	case member.Administrator != nil:
		return member.Administrator.CanDeleteMessages, nil
	default:
		return false, nil
	}
}
