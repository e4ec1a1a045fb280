package cleanup

import (
	"fmt"
	"regexp"
	"strings"
)

// Predicate decides whether a single message qualifies for deletion. All
// ambient context (bot id, trigger id, command registry) is captured
// explicitly at construction time, so Match is a pure function of the
// message. Predicates compose with the universal cutoff and pin filters
// applied by the scanner; they never see messages outside those bounds.
type Predicate interface {
	Match(m Message) bool
}

// SubstringPredicate selects messages whose content contains a literal
// substring. The triggering command message always matches.
type SubstringPredicate struct {
	Text      string
	TriggerID int64
}

func (p SubstringPredicate) Match(m Message) bool {
	return strings.Contains(m.Content, p.Text) || m.ID == p.TriggerID
}

// AuthorPredicate selects messages from a resolved author. The triggering
// command message always matches.
type AuthorPredicate struct {
	AuthorID  int64
	TriggerID int64
}

func (p AuthorPredicate) Match(m Message) bool {
	return m.AuthorID == p.AuthorID || m.ID == p.TriggerID
}

// CommandPredicate selects bot output and command invocations: messages
// authored by the bot account, the triggering message, and messages that
// start with a configured prefix followed by a registered command name.
// Prefix-looking chatter with an unknown token does not match.
type CommandPredicate struct {
	BotID     int64
	TriggerID int64
	Prefixes  []string
	Known     func(name string) bool
}

func (p CommandPredicate) Match(m Message) bool {
	if m.AuthorID == p.BotID || m.ID == p.TriggerID {
		return true
	}
	for _, prefix := range p.Prefixes {
		if prefix == "" || !strings.HasPrefix(m.Content, prefix) {
			continue
		}
		name, _, _ := strings.Cut(m.Content[len(prefix):], " ")
		return p.Known != nil && p.Known(name)
	}
	return false
}

// SelfPredicate selects messages authored by the bot account whose content
// matches the configured pattern.
type SelfPredicate struct {
	BotID int64
	match func(content string) bool
}

// NewSelfPredicate builds a SelfPredicate from a pattern. An empty pattern
// matches every bot message. A pattern wrapped in r(...) is compiled as a
// regular expression matched from the start of the content; anything else
// is a plain substring test.
func NewSelfPredicate(botID int64, pattern string) (SelfPredicate, error) {
	p := SelfPredicate{BotID: botID}

	switch {
	case pattern == "":
		p.match = func(string) bool { return true }
	case strings.HasPrefix(pattern, "r(") && strings.HasSuffix(pattern, ")"):
		// The parens survive as a group; the expression is anchored so
		// r(foo) means "starts with foo", not "contains foo".
		re, err := regexp.Compile("^" + pattern[1:])
		if err != nil {
			return SelfPredicate{}, fmt.Errorf("%w: invalid pattern: %v", ErrValidation, err)
		}
		p.match = func(c string) bool { return re.MatchString(c) }
	default:
		p.match = func(c string) bool { return strings.Contains(c, pattern) }
	}
	return p, nil
}

func (p SelfPredicate) Match(m Message) bool {
	return m.AuthorID == p.BotID && p.match(m.Content)
}

// AnchorPredicate matches every message. It backs the anchor-exclusive
// mode, where selection is driven purely by the scan bounds, and the plain
// "last N messages" mode, which has no content rule.
type AnchorPredicate struct{}

func (AnchorPredicate) Match(Message) bool { return true }
