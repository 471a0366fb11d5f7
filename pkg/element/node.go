package element

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Node is.
type Kind int

const (
	KindEmpty Kind = iota
	KindScalar
	KindTag
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindScalar:
		return "scalar"
	case KindTag:
		return "tag"
	case KindComponent:
		return "component"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is the unit the renderer consumes. The interface is sealed: the only
// implementations are Empty, Scalar, Tag and Instance.
type Node interface {
	Kind() Kind
	node()
}

// KindOf returns the kind of n, treating nil as Empty.
func KindOf(n Node) Kind {
	return Normalize(n).Kind()
}

// Empty is the absence of a node.
type Empty struct{}

func (Empty) Kind() Kind { return KindEmpty }
func (Empty) node() {}

// Scalar is a string, number or boolean leaf.
type Scalar struct {
	value any
}

func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) node() {}

// Text returns a string scalar.
func Text(s string) Scalar { return Scalar{value: s} }

// Int returns an integer scalar.
func Int(n int64) Scalar { return Scalar{value: n} }

// Float returns a floating point scalar.
func Float(f float64) Scalar { return Scalar{value: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{value: b} }

// ScalarOf converts a Go string, bool, integer or float (of any width) into a
// Scalar. A Scalar passed in is returned unchanged.
func ScalarOf(v any) (Scalar, bool) {
	switch x := v.(type) {
	case Scalar:
		return x, true
	case string:
		return Text(x), true
	case bool:
		return Bool(x), true
	case int:
		return Int(int64(x)), true
	case int8:
		return Int(int64(x)), true
	case int16:
		return Int(int64(x)), true
	case int32:
		return Int(int64(x)), true
	case int64:
		return Int(x), true
	case uint:
		return Scalar{value: uint64(x)}, true
	case uint8:
		return Int(int64(x)), true
	case uint16:
		return Int(int64(x)), true
	case uint32:
		return Int(int64(x)), true
	case uint64:
		return Scalar{value: x}, true
	case float32:
		return Float(float64(x)), true
	case float64:
		return Float(x), true
	default:
		return Scalar{}, false
	}
}

// Value returns the underlying Go value (string, bool, int64, uint64 or float64).
func (s Scalar) Value() any { return s.value }

// String returns the canonical string form: 1 -> "1", true -> "true",
// 1.5 -> "1.5". Infinities are spelled "Infinity" and "-Infinity".
func (s Scalar) String() string {
	switch v := s.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		switch {
		case math.IsInf(v, 1):
			return "Infinity"
		case math.IsInf(v, -1):
			return "-Infinity"
		case math.IsNaN(v):
			return "NaN"
		}
		return formatFloat(v)
	default:
		return fmt.Sprint(v)
	}
}

// Attrs maps attribute names to scalar or handler values.
type Attrs map[string]any

// Tag is a built-in element identified by name.
type Tag struct {
	Name     string
	Attrs    Attrs
	Children []Node
}

func (Tag) Kind() Kind { return KindTag }
func (Tag) node() {}

// Attr looks up an attribute.
func (t Tag) Attr(key string) (any, bool) {
	v, ok := t.Attrs[key]
	return v, ok
}

// AttrString returns a string attribute, or "" with false when it is missing
// or not a string.
func (t Tag) AttrString(key string) (string, bool) {
	v, ok := t.Attrs[key].(string)
	return v, ok
}

// Instance is an unexpanded user component.
type Instance struct {
	Component Component
	Props     Props
}

func (Instance) Kind() Kind { return KindComponent }
func (Instance) node() {}

// Expand calls the component's Render with the instance props.
func (i Instance) Expand() (Node, error) {
	if i.Component == nil {
		return nil, fmt.Errorf("component instance has no component")
	}
	return i.Component.Render(i.Props)
}

// Normalize maps nil to Empty and pointer variants (*Tag, *Scalar, ...) to
// their values so callers can switch on the four value types only.
func Normalize(n Node) Node {
	switch v := n.(type) {
	case nil:
		return Empty{}
	case *Empty:
		return Empty{}
	case *Scalar:
		if v == nil {
			return Empty{}
		}
		return *v
	case *Tag:
		if v == nil {
			return Empty{}
		}
		return *v
	case *Instance:
		if v == nil {
			return Empty{}
		}
		return *v
	default:
		return n
	}
}

// formatFloat writes v the way JavaScript's Number#toString does: plain
// decimals in [1e-6, 1e21), exponent form with an unpadded exponent outside.
func formatFloat(v float64) string {
	abs := math.Abs(v)
	if abs == 0 {
		return "0"
	}
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}
