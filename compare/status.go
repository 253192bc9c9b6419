package compare

import (
	"errors"
	"fmt"
)

// Status classifies one key path of a document pair.
type Status int

const (
	Identical Status = iota
	Different
	MissingLeft
	MissingRight
)

var ErrBadStatus = errors.New("bad status")

func ParseStatus(v string) (Status, error) {
	s, ok := map[string]Status{
		"identical":     Identical,
		"different":     Different,
		"missing-left":  MissingLeft,
		"missing-right": MissingRight,
	}[v]
	if ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadStatus, v)
}

func (s Status) String() string {
	d, err := s.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case Identical:
		return []byte("identical"), nil
	case Different:
		return []byte("different"), nil
	case MissingLeft:
		return []byte("missing-left"), nil
	case MissingRight:
		return []byte("missing-right"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a status>", s)
	}
}

func (s *Status) UnmarshalText(d []byte) error {
	ps, err := ParseStatus(string(d))
	if err != nil {
		return err
	}
	*s = ps
	return nil
}

// Missing reports whether s marks a key absent on one side.
func (s Status) Missing() bool {
	return s == MissingLeft || s == MissingRight
}

// Statuses returns all statuses.
func Statuses() []Status {
	return []Status{Identical, Different, MissingLeft, MissingRight}
}
