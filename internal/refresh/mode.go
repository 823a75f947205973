package refresh

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is wrapped by every construction-time failure.
var ErrInvalidArgument = errors.New("invalid argument")

// Mode selects which edge(s) of a container take part in pull-to-refresh.
type Mode uint8

const (
	flagStart = 1 << iota
	flagEnd
)

const (
	ModeNone  Mode = 0
	ModeStart Mode = flagStart
	ModeEnd   Mode = flagEnd
	ModeBoth  Mode = flagStart | flagEnd
)

// ModeOf maps a raw flag value in 0..3 to its Mode.
func ModeOf(flags int) (Mode, error) {
	if flags < 0 || flags > int(ModeBoth) {
		return ModeNone, fmt.Errorf("refresh mode flags %d: %w", flags, ErrInvalidArgument)
	}
	return Mode(flags), nil
}

// ParseMode accepts none, start, end or both in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ModeNone, nil
	case "start":
		return ModeStart, nil
	case "end":
		return ModeEnd, nil
	case "both":
		return ModeBoth, nil
	}
	return ModeNone, fmt.Errorf("refresh mode %q: %w", s, ErrInvalidArgument)
}

// HasStart reports whether the start edge takes part.
func (m Mode) HasStart() bool { return m&flagStart != 0 }

// HasEnd reports whether the end edge takes part.
func (m Mode) HasEnd() bool { return m&flagEnd != 0 }

// Includes reports whether every edge of other is also part of m.
func (m Mode) Includes(other Mode) bool {
	return m&other == other
}

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeStart:
		return "start"
	case ModeEnd:
		return "end"
	case ModeBoth:
		return "both"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// edgeOf returns the edge a signed overscroll offset lies past.
// Positive offsets are past the end, negative ones past the start.
func edgeOf(scrollY int) Mode {
	switch {
	case scrollY > 0:
		return ModeEnd
	case scrollY < 0:
		return ModeStart
	}
	return ModeNone
}
