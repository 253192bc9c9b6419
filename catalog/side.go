package catalog

import (
	"errors"
	"fmt"
)

// Side names one document of a pair.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

var ErrInvalidSide = errors.New("invalid side")

func ParseSide(v string) (Side, error) {
	s, ok := map[string]Side{
		"left":  Left,
		"right": Right,
	}[v]
	if ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSide, v)
}

func (s Side) Valid() bool {
	return s == Left || s == Right
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Sides returns both sides, left first.
func Sides() []Side {
	return []Side{Left, Right}
}
