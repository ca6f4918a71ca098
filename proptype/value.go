package proptype

import "fmt"

// Value is a decoded payload. data is nil while the value still sits in a
// dynamic block chain.
type Value struct {
	Kind Kind
	data any
}

func (v Value) Resolved() bool {
	return v.data != nil
}

// Interface returns the Go value, or nil when unresolved
func (v Value) Interface() any {
	return v.data
}

func (v Value) String() string {
	if !v.Resolved() {
		return fmt.Sprintf("%s(unresolved)", v.Kind)
	}
	if v.Kind == Char {
		return fmt.Sprintf("%s(%q)", v.Kind, rune(v.data.(uint16)))
	}
	return fmt.Sprintf("%s(%v)", v.Kind, v.data)
}
