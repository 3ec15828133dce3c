package constant

import (
	"fmt"
	"regexp"
	"strconv"

	appErrors "remindme/internal/pkg/errors"
)

// RepeatInterval is the number of hours between two firings of a repeating reminder.
type RepeatInterval int

const (
	// RepeatNone marks a one-shot reminder.
	RepeatNone RepeatInterval = 0
	// MinRepeat is the shortest accepted interval (token "1h").
	MinRepeat RepeatInterval = 1
	// MaxRepeat is the longest accepted interval (token "10h").
	MaxRepeat RepeatInterval = 10
)

var repeatTokenPattern = regexp.MustCompile(`^(\d+)h$`)

// IsRepeatToken reports whether s has the shape of a repeat token ("<n>h"),
// regardless of whether n is in the allowed range.
func IsRepeatToken(s string) bool {
	return repeatTokenPattern.MatchString(s)
}

// ParseRepeatToken converts "1h".."10h" to a RepeatInterval. An empty token
// means RepeatNone.
func ParseRepeatToken(token string) (RepeatInterval, error) {
	if token == "" {
		return RepeatNone, nil
	}
	m := repeatTokenPattern.FindStringSubmatch(token)
	if m == nil {
		return RepeatNone, fmt.Errorf("%w: %q", appErrors.ErrInvalidRepeatToken, token)
	}
	n, err := strconv.Atoi(m[1])
	r := RepeatInterval(n)
	// Only the canonical spelling is accepted: "01h" is not "1h".
	if err != nil || r < MinRepeat || r > MaxRepeat || r.Token() != token {
		return RepeatNone, fmt.Errorf("%w: %q", appErrors.ErrInvalidRepeatToken, token)
	}
	return r, nil
}

// IsSet reports whether the reminder repeats.
func (r RepeatInterval) IsSet() bool {
	return r != RepeatNone
}

// Hours returns the interval as a plain int.
func (r RepeatInterval) Hours() int {
	return int(r)
}

// Token renders the interval the way users type it, e.g. "2h". Empty for RepeatNone.
func (r RepeatInterval) Token() string {
	if !r.IsSet() {
		return ""
	}
	return fmt.Sprintf("%dh", int(r))
}

// Tokens lists every accepted repeat token in ascending order.
func Tokens() []string {
	tokens := make([]string, 0, int(MaxRepeat))
	for r := MinRepeat; r <= MaxRepeat; r++ {
		tokens = append(tokens, r.Token())
	}
	return tokens
}
