package models

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Opt is an optional value decoded at the JSON boundary. A field that is
// missing, null, or holds the zero value of T is absent.
type Opt[T any] struct {
	value T
	ok    bool
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, ok: true}
}

// None returns an absent Opt.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether the value is set.
func (o Opt[T]) Present() bool {
	return o.ok
}

// Or returns the value if present, otherwise fallback.
func (o Opt[T]) Or(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Opt[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if reflect.ValueOf(&v).Elem().IsZero() {
		*o = Opt[T]{}
		return nil
	}
	*o = Opt[T]{value: v, ok: true}
	return nil
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
