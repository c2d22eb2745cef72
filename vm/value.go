package vm

import "strconv"

// IntValue is the only value type. Arithmetic wraps at 64 bits.
type IntValue int64

var (
	False = IntValue(0)
	True  = IntValue(1)
)

// AsBool reports the truth of v; any nonzero value is true.
func (v IntValue) AsBool() bool {
	return v != 0
}

func (v IntValue) String() string {
	return strconv.FormatInt(int64(v), 10)
}

// FromBool encodes a truth value as 1 or 0.
func FromBool(b bool) IntValue {
	if b {
		return True
	}
	return False
}
