// Package command parses inbound chat text into typed bot commands. It does
// not touch storage or the transport.
package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"remindme/internal/domain/constant"
	appErrors "remindme/internal/pkg/errors"
)

// Name identifies a bot command.
type Name string

const (
	Create   Name = "create"
	List     Name = "list"
	Complete Name = "complete"
	Help     Name = "help"
	Examples Name = "examples"
)

// aliases maps every accepted spelling to its command.
var aliases = map[string]Name{
	"create":   Create,
	"remindme": Create,
	"list":     List,
	"complete": Complete,
	"done":     Complete,
	"help":     Help,
	"start":    Help,
	"examples": Examples,
}

var timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Command is a parsed inbound command.
type Command struct {
	Name Name

	// Create
	Text        string
	Time        string
	RepeatToken string

	// Complete
	Index int
}

// Parse turns one chat message into a Command. A leading "/" and a Telegram
// "@botname" suffix on the command word are ignored.
func Parse(text string) (Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}, appErrors.ErrUnknownCommand
	}

	word := strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(word, '@'); at >= 0 {
		word = word[:at]
	}
	name, ok := aliases[strings.ToLower(word)]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", appErrors.ErrUnknownCommand, fields[0])
	}
	args := fields[1:]

	switch name {
	case Create:
		rest := strings.TrimPrefix(strings.TrimSpace(text), fields[0])
		return parseCreate(rest, args)
	case Complete:
		return parseComplete(args)
	default:
		return Command{Name: name}, nil
	}
}

// parseCreate reads "<text...> <HH:MM> [Nh]". Only the token shapes are
// checked here; range validation belongs to the reminder service.
// The text keeps its original spacing; rest is the message after the command word.
func parseCreate(rest string, args []string) (Command, error) {
	cmd := Command{Name: Create}
	body := strings.TrimSpace(rest)

	if n := len(args); n > 0 && constant.IsRepeatToken(args[n-1]) {
		cmd.RepeatToken = args[n-1]
		args = args[:n-1]
		body = strings.TrimSpace(strings.TrimSuffix(body, cmd.RepeatToken))
	}
	if len(args) < 2 {
		return cmd, fmt.Errorf("%w: create needs a text and a time", appErrors.ErrMissingArguments)
	}

	last := args[len(args)-1]
	if !timePattern.MatchString(last) {
		return cmd, fmt.Errorf("%w: %q", appErrors.ErrInvalidTimeFormat, last)
	}
	cmd.Time = last
	cmd.Text = strings.TrimSpace(strings.TrimSuffix(body, last))
	return cmd, nil
}

func parseComplete(args []string) (Command, error) {
	cmd := Command{Name: Complete}
	if len(args) == 0 {
		return cmd, fmt.Errorf("%w: complete needs a reminder number", appErrors.ErrMissingArguments)
	}
	if len(args) > 1 {
		return cmd, fmt.Errorf("%w: %q", appErrors.ErrInvalidIndex, strings.Join(args, " "))
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return cmd, fmt.Errorf("%w: %q", appErrors.ErrInvalidIndex, args[0])
	}
	cmd.Index = index
	return cmd, nil
}
