package types

import (
	"fmt"
	"strings"
)

// Mode selects how multi-set input is handled.
type Mode int

const (
	// ModeFull enumerates combinations across every set.
	ModeFull Mode = iota

	// ModeStub reproduces the single-set filter: multi-set input yields no
	// combinations.
	ModeStub
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeStub:
		return "stub"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return ModeFull, nil
	case "stub":
		return ModeStub, nil
	default:
		return ModeFull, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so modes decode from YAML.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}
