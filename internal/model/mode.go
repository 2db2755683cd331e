package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned when a mode name is not recognized.
var ErrInvalidMode = errors.New("invalid mode")

// Mode selects between the editable and the fixed split.
type Mode int

const (
	ModeEditable Mode = iota
	ModeFixed
)

// Editable reports whether percentages are user-adjustable.
func (m Mode) Editable() bool {
	return m == ModeEditable
}

func (m Mode) String() string {
	if m == ModeFixed {
		return "fixed"
	}
	return "editable"
}

// ParseMode accepts "editable" or "fixed" (case-insensitive). Empty means editable.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "editable":
		return ModeEditable, nil
	case "fixed":
		return ModeFixed, nil
	default:
		return ModeEditable, fmt.Errorf("%w: %q (want editable or fixed)", ErrInvalidMode, s)
	}
}

// DefaultIncome is the income field's starting value for a mode.
func DefaultIncome(m Mode) float64 {
	if m == ModeFixed {
		return 5000.0
	}
	return 4666.0
}
