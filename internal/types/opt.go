package types

// Presence describes whether an optional AST field was supplied.
type Presence uint8

const (
	Absent  Presence = iota // field not supplied
	Null                    // field supplied with an explicit null
	Present                 // field supplied with a value
)

// Opt is a tri-state optional field. Parsers distinguish between a key that
// was omitted and one that was given as null, and some fields (table, db,
// alias, distinct) are meaningfully nullable.
//
// The zero value is Absent.
type Opt[T any] struct {
	value    T
	presence Presence
}

// Some returns an Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, presence: Present}
}

// NullOf returns an Opt that was supplied as null.
func NullOf[T any]() Opt[T] {
	return Opt[T]{presence: Null}
}

// Presence reports which of the three states the field is in.
func (o Opt[T]) Presence() Presence {
	return o.presence
}

// Valid reports whether the field is present and non-null.
func (o Opt[T]) Valid() bool {
	return o.presence == Present
}

// Get returns the value and whether it is valid.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.presence == Present
}

// Value returns the held value, or the zero value when not valid.
func (o Opt[T]) Value() T {
	if o.presence != Present {
		var zero T
		return zero
	}
	return o.value
}
