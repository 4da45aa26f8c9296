package pairs

import (
	"fmt"
	"strings"
)

// NullValueMode controls what happens to a row whose y cell is null.
// The zero value is Passthrough.
type NullValueMode int

const (
	// Passthrough emits the pair with the null y unchanged.
	Passthrough NullValueMode = iota
	// Ignore drops the row.
	Ignore
	// AsZero replaces the null y with the number 0.
	AsZero
)

// String returns the dashboard spelling of the mode: "null", "connected"
// or "null as zero".
func (m NullValueMode) String() string {
	switch m {
	case Passthrough:
		return "null"
	case Ignore:
		return "connected"
	case AsZero:
		return "null as zero"
	default:
		return fmt.Sprintf("NullValueMode(%d)", int(m))
	}
}

// ParseNullValueMode parses either the dashboard spelling ("null",
// "connected", "null as zero") or the mode name ("passthrough", "ignore",
// "as-zero"). Matching is case-insensitive. The empty string is Passthrough.
func ParseNullValueMode(s string) (NullValueMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "passthrough":
		return Passthrough, nil
	case "connected", "ignore":
		return Ignore, nil
	case "null as zero", "as-zero", "aszero", "as_zero", "zero":
		return AsZero, nil
	default:
		return Passthrough, fmt.Errorf("unknown null value mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m NullValueMode) MarshalText() ([]byte, error) {
	switch m {
	case Passthrough, Ignore, AsZero:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("invalid null value mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *NullValueMode) UnmarshalText(text []byte) error {
	mode, err := ParseNullValueMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
