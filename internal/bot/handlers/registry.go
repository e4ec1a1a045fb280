package handlers

import (
	"strings"

	tgbot "github.com/go-telegram/bot"

	"github.com/purgebot/purgebot/internal/telegram"
)

// commandNames lists every registered command, without the slash. It
// backs both handler registration and the command-message predicate's
// registry lookup.
var commandNames = []string{"start", "help", "cleanup"}

// KnownCommand reports whether a token is a registered command name. A
// trailing @botname suffix on the token is ignored.
func KnownCommand(name string) bool {
	name, _, _ = strings.Cut(name, "@")
	for _, known := range commandNames {
		if name == known {
			return true
		}
	}
	return false
}

// RegisterAllCommands initializes and returns a map of all bot commands,
// keyed by their slash form, configured with handlers and middleware.
func RegisterAllCommands(deps HandlerDeps) map[string]telegram.Registration {
	if deps.KnownCommand == nil {
		deps.KnownCommand = KnownCommand
	}
	guarded := []tgbot.Middleware{RequireMessage(deps)}

	regs := make(map[string]telegram.Registration)

	regs["/start"] = telegram.Registration{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Handler:     NewStartHandler(deps),
		Middleware:  guarded,
	}
	regs["/help"] = telegram.Registration{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "help",
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Handler:     NewHelpHandler(deps),
		Middleware:  guarded,
	}
	regs["/cleanup"] = telegram.Registration{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "cleanup",
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Handler:     NewCleanupHandler(deps),
		Middleware:  guarded,
	}

	return regs
}
