package tristate

import "testing"

var all = []Value{Unknown, False, True}

func TestNot(t *testing.T) {
	tests := map[Value]Value{
		True:    False,
		False:   True,
		Unknown: Unknown,
	}
	for in, want := range tests {
		if got := in.Not(); got != want {
			t.Errorf("%v.Not() = %v, want %v", in, got, want)
		}
	}
}

func TestAndOrTruthTables(t *testing.T) {
	tests := []struct {
		a, b    Value
		and, or Value
	}{
		{True, True, True, True},
		{True, False, False, True},
		{True, Unknown, Unknown, True},
		{False, False, False, False},
		{False, Unknown, False, Unknown},
		{Unknown, Unknown, Unknown, Unknown},
	}

	for _, tt := range tests {
		if got := tt.a.And(tt.b); got != tt.and {
			t.Errorf("%v.And(%v) = %v, want %v", tt.a, tt.b, got, tt.and)
		}
		if got := tt.b.And(tt.a); got != tt.and {
			t.Errorf("%v.And(%v) = %v, want %v", tt.b, tt.a, got, tt.and)
		}
		if got := tt.a.Or(tt.b); got != tt.or {
			t.Errorf("%v.Or(%v) = %v, want %v", tt.a, tt.b, got, tt.or)
		}
		if got := tt.b.Or(tt.a); got != tt.or {
			t.Errorf("%v.Or(%v) = %v, want %v", tt.b, tt.a, got, tt.or)
		}
	}
}

func TestDeMorgan(t *testing.T) {
	for _, a := range all {
		for _, b := range all {
			if a.And(b).Not() != a.Not().Or(b.Not()) {
				t.Errorf("!(%v && %v) != !%v || !%v", a, b, a, b)
			}
		}
	}
}

func TestXor(t *testing.T) {
	if True.Xor(True) != False || True.Xor(False) != True || Unknown.Xor(True) != Unknown {
		t.Error("xor truth table mismatch")
	}
}

func TestToBool(t *testing.T) {
	if !True.ToBool(false) || False.ToBool(true) {
		t.Error("known values must ignore the default")
	}
	if !Unknown.ToBool(true) || Unknown.ToBool(false) {
		t.Error("Unknown must return the default")
	}
	if ForBool(true) != True || ForBool(false) != False {
		t.Error("ForBool mismatch")
	}
	var zero Value
	if zero != Unknown || zero.IsKnown() {
		t.Error("zero value must be Unknown")
	}
}
