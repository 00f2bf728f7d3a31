package ident

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is the opaque entity identifier used at the domain boundary. Storage
// hands out numeric sequence ids while older records carry database-native
// string ids, so equality is defined as string equality and nothing may
// branch on the underlying representation.
type ID string

func FromUint(v uint) ID {
	return ID(strconv.FormatUint(uint64(v), 10))
}

// Normalize coerces any id representation coming off the wire into an ID.
// JSON numbers arrive as float64, populated sub-documents as strings.
func Normalize(v any) ID {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return ID(strings.TrimSpace(t))
	case float64:
		return ID(strconv.FormatInt(int64(t), 10))
	case int:
		return ID(strconv.Itoa(t))
	case int64:
		return ID(strconv.FormatInt(t, 10))
	case uint:
		return FromUint(t)
	case fmt.Stringer:
		return ID(t.String())
	default:
		return ID(fmt.Sprint(t))
	}
}

func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}

// Uint converts back to the storage key form. Ok is false for ids that were
// never numeric.
func (id ID) Uint() (uint, bool) {
	v, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// Equal reports whether two raw id values refer to the same entity.
func Equal(a, b any) bool {
	return Normalize(a) == Normalize(b)
}
