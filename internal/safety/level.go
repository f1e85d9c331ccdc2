package safety

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSafetyLevel is returned when a stored or configured level name is not recognised.
var ErrUnknownSafetyLevel = errors.New("unknown safety level")

// Level is the risk classification assigned to a token.
type Level int

const (
	Verified Level = iota
	MediumWarning
	StrongWarning
	Blocked
)

var levelNames = map[Level]string{
	Verified:      "verified",
	MediumWarning: "medium_warning",
	StrongWarning: "strong_warning",
	Blocked:       "blocked",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// ParseLevel maps a level name back to its Level. An empty name is Verified.
func ParseLevel(s string) (Level, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return Verified, nil
	}
	norm = strings.ReplaceAll(norm, "-", "_")
	for l, name := range levelNames {
		if name == norm {
			return l, nil
		}
	}
	return Verified, fmt.Errorf("%w: %q", ErrUnknownSafetyLevel, s)
}

// Dismissible reports whether a previous acknowledgement may skip the warning.
func (l Level) Dismissible() bool {
	return l == MediumWarning || l == StrongWarning
}

// Warns reports whether the level carries any warning at all.
func (l Level) Warns() bool {
	return l == Blocked || l.Dismissible()
}

// MarshalText lets levels round-trip through yaml and json as names.
func (l Level) MarshalText() ([]byte, error) {
	if _, ok := levelNames[l]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSafetyLevel, int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
