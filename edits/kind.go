package edits

import (
	"errors"
	"fmt"
)

// Kind says whether an edit introduces a key or changes one. There is
// no removal kind; a pending edit always carries a value.
type Kind int

const (
	Add Kind = iota
	Update
)

var ErrBadKind = errors.New("bad edit kind")

func ParseKind(v string) (Kind, error) {
	k, ok := map[string]Kind{
		"add":    Add,
		"update": Update,
	}[v]
	if ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadKind, v)
}

func (k Kind) String() string {
	d, err := k.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Add:
		return []byte("add"), nil
	case Update:
		return []byte("update"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a kind>", k)
	}
}

func (k *Kind) UnmarshalText(d []byte) error {
	pk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}
