package columnar

import "fmt"

// Kind is the data type of an [Array].
type Kind int

const (
	KindInvalid Kind = iota // KindInvalid is an invalid kind.
	KindBool                // KindBool is a boolean.
	KindInt32               // KindInt32 is a signed 32-bit integer.
	KindInt64               // KindInt64 is a signed 64-bit integer.
	KindUTF8                // KindUTF8 is a variable-length UTF-8 string.
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUTF8:    "utf8",
}

// String returns the name of k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}
