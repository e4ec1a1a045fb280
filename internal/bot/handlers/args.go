package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/purgebot/purgebot/internal/cleanup"
)

// Args is the parsed form of a /cleanup invocation.
type Args struct {
	Sub           string
	Text          string
	UserRef       string
	MessageID     int64
	Count         int
	Pattern       string
	IncludePinned bool
}

const cleanupUsage = `Usage:
/cleanup text <substring> <count> [pinned]
/cleanup user <user> <count> [pinned]
/cleanup after <messageId> [pinned]
/cleanup messages <count> [pinned]
/cleanup bot <count> [pinned]
/cleanup self <count> [pattern] [pinned]`

// ParseArgs parses the text of a /cleanup command message. Substring and
// pattern arguments may be double-quoted to include spaces. Malformed
// input yields an error wrapping cleanup.ErrValidation whose message is
// suitable to show the user.
func ParseArgs(text string) (*Args, error) {
	tokens := splitQuoted(text)
	if len(tokens) < 2 {
		return nil, usageError("missing subcommand")
	}
	// tokens[0] is the /cleanup command itself, possibly with @botname.
	tokens = tokens[1:]

	args := &Args{Sub: tokens[0]}
	rest := tokens[1:]

	var err error
	switch args.Sub {
	case "text":
		if len(rest) < 2 || len(rest) > 3 {
			return nil, usageError("text takes a substring, a count, and an optional pinned flag")
		}
		args.Text = rest[0]
		if args.Count, err = parseCount(rest[1]); err != nil {
			return nil, err
		}
		if args.IncludePinned, err = parsePinned(rest[2:]); err != nil {
			return nil, err
		}

	case "user":
		if len(rest) < 2 || len(rest) > 3 {
			return nil, usageError("user takes a user reference, a count, and an optional pinned flag")
		}
		args.UserRef = rest[0]
		if args.Count, err = parseCount(rest[1]); err != nil {
			return nil, err
		}
		if args.IncludePinned, err = parsePinned(rest[2:]); err != nil {
			return nil, err
		}

	case "after":
		if len(rest) < 1 || len(rest) > 2 {
			return nil, usageError("after takes a message id and an optional pinned flag")
		}
		if args.MessageID, err = strconv.ParseInt(rest[0], 10, 64); err != nil || args.MessageID <= 0 {
			return nil, usageError("message id must be a positive number")
		}
		if args.IncludePinned, err = parsePinned(rest[1:]); err != nil {
			return nil, err
		}

	case "messages", "bot":
		if len(rest) < 1 || len(rest) > 2 {
			return nil, usageError(args.Sub + " takes a count and an optional pinned flag")
		}
		if args.Count, err = parseCount(rest[0]); err != nil {
			return nil, err
		}
		if args.IncludePinned, err = parsePinned(rest[1:]); err != nil {
			return nil, err
		}

	case "self":
		if len(rest) < 1 || len(rest) > 3 {
			return nil, usageError("self takes a count, an optional pattern, and an optional pinned flag")
		}
		if args.Count, err = parseCount(rest[0]); err != nil {
			return nil, err
		}
		switch len(rest) {
		case 2:
			// A lone trailing token is the pinned flag if it parses as a
			// bool, otherwise a pattern.
			if pinned, boolErr := strconv.ParseBool(rest[1]); boolErr == nil {
				args.IncludePinned = pinned
			} else {
				args.Pattern = rest[1]
			}
		case 3:
			args.Pattern = rest[1]
			if args.IncludePinned, err = parsePinned(rest[2:]); err != nil {
				return nil, err
			}
		}

	default:
		return nil, usageError("unknown subcommand " + strconv.Quote(args.Sub))
	}

	return args, nil
}

func parseCount(token string) (int, error) {
	count, err := strconv.Atoi(token)
	if err != nil || count <= 0 {
		return 0, fmt.Errorf("%w: count must be a positive number", cleanup.ErrValidation)
	}
	return count, nil
}

func parsePinned(rest []string) (bool, error) {
	if len(rest) == 0 {
		return false, nil
	}
	pinned, err := strconv.ParseBool(rest[0])
	if err != nil {
		return false, usageError("pinned flag must be true or false")
	}
	return pinned, nil
}

func usageError(reason string) error {
	return fmt.Errorf("%w: %s\n%s", cleanup.ErrValidation, reason, cleanupUsage)
}

// splitQuoted splits on whitespace, keeping double-quoted runs together.
// Quotes are stripped from the resulting tokens.
func splitQuoted(s string) []string {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
		pending bool
	)

	flush := func() {
		if pending {
			tokens = append(tokens, current.String())
			current.Reset()
			pending = false
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			current.WriteRune(r)
			pending = true
		}
	}
	flush()
	return tokens
}
