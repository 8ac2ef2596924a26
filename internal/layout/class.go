package layout

// Class is the size class of an allocation.
type Class int32

const (
	ClassTiny  Class = 1
	ClassSmall Class = 2
	ClassLarge Class = 3
)

// Classes lists the size classes in dump order.
var Classes = [...]Class{ClassTiny, ClassSmall, ClassLarge}

func (c Class) String() string {
	switch c {
	case ClassTiny:
		return "TINY"
	case ClassSmall:
		return "SMALL"
	case ClassLarge:
		return "LARGE"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether c is one of the three known classes.
func (c Class) Valid() bool {
	return c >= ClassTiny && c <= ClassLarge
}

// Classify maps an aligned payload size to its class.
func Classify(size int) Class {
	switch {
	case size <= TinyMaxBlockSize:
		return ClassTiny
	case size <= SmallMaxBlockSize:
		return ClassSmall
	default:
		return ClassLarge
	}
}

// MaxPayload is the largest aligned payload a zone of class c serves, or 0
// for ClassLarge.
func (c Class) MaxPayload() int {
	switch c {
	case ClassTiny:
		return TinyMaxBlockSize
	case ClassSmall:
		return SmallMaxBlockSize
	default:
		return 0
	}
}
