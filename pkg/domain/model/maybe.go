package model

// Maybe carries a value that may be absent. The zero value is absent.
type Maybe[T any] struct {
	value   T
	present bool
}

func Some[T any](value T) Maybe[T] {
	return Maybe[T]{value: value, present: true}
}

func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.present
}

func (m Maybe[T]) IsPresent() bool {
	return m.present
}
