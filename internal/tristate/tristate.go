// Package tristate implements three-valued (Kleene) logic.
//
// Analysis queries that cannot always decide an answer return a Value
// instead of a bool. Unknown is the zero value so an uninitialized result
// never claims more than it knows.
package tristate

// Value is a three-valued truth value.
type Value uint8

const (
	Unknown Value = iota
	False
	True
)

// ForBool lifts a bool into a Value.
func ForBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Not returns the logical negation. Unknown stays Unknown.
func (v Value) Not() Value {
	switch v {
	case True:
		return False
	case False:
		return True
	}
	return Unknown
}

// And returns the Kleene conjunction: False dominates, then Unknown.
func (v Value) And(o Value) Value {
	if v == False || o == False {
		return False
	}
	if v == True && o == True {
		return True
	}
	return Unknown
}

// Or returns the Kleene disjunction: True dominates, then Unknown.
func (v Value) Or(o Value) Value {
	if v == True || o == True {
		return True
	}
	if v == False && o == False {
		return False
	}
	return Unknown
}

// Xor is Unknown if either side is Unknown.
func (v Value) Xor(o Value) Value {
	if v == Unknown || o == Unknown {
		return Unknown
	}
	return ForBool(v != o)
}

// ToBool collapses the value, using ifUnknown for Unknown.
func (v Value) ToBool(ifUnknown bool) bool {
	switch v {
	case True:
		return true
	case False:
		return false
	}
	return ifUnknown
}

// IsKnown reports whether the value is True or False.
func (v Value) IsKnown() bool {
	return v != Unknown
}

func (v Value) String() string {
	switch v {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}
