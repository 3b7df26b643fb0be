package feeds

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Value is one node in a record tree: either a Scalar rendered as element
// text, a *Node rendered as a nested element, or a Repeated rendered as
// sibling elements sharing the parent field's name. The interface is sealed;
// no other shapes exist, which removes runtime type inspection from the
// encoder.
type Value interface {
	isValue()
}

// Scalar is a leaf value rendered as the text content of its element.
type Scalar string

func (Scalar) isValue() {}

// String builds a Scalar from a string
func String(s string) Scalar {
	return Scalar(s)
}

// Int builds a Scalar from an integer
func Int(n int64) Scalar {
	return Scalar(strconv.FormatInt(n, 10))
}

// Bool builds a Scalar rendered as "true" or "false"
func Bool(b bool) Scalar {
	return Scalar(strconv.FormatBool(b))
}

// Amount builds a Scalar from a decimal amount with two fractional digits,
// the form the remote processor expects for monetary fields.
func Amount(d decimal.Decimal) Scalar {
	return Scalar(d.StringFixed(2))
}

// Date builds a Scalar in the remote processor's timestamp format
func Date(t time.Time) Scalar {
	return Scalar(t.UTC().Format("2006-01-02T15:04:05Z"))
}

// Repeated is a sequence of values emitted as repeated sibling elements
// under the same field name, preserving item order.
type Repeated []Value

func (Repeated) isValue() {}

// Field is one named child of a Node
type Field struct {
	Name  string
	Value Value
}

// Node is an ordered mapping of element name to child value. Field order is
// insertion order and is preserved on encoding; the remote schema is
// order-sensitive.
type Node struct {
	fields []Field
}

func (*Node) isValue() {}

// NewNode creates an empty record node
func NewNode() *Node {
	return &Node{}
}

// Set appends a named child value, returning the node for chaining.
// Setting the same name twice as a scalar or node child violates the
// field-uniqueness invariant; repetition is expressed with Repeated.
func (n *Node) Set(name string, value Value) *Node {
	n.fields = append(n.fields, Field{Name: name, Value: value})
	return n
}

// Fields returns the node's children in insertion order
func (n *Node) Fields() []Field {
	return n.fields
}

// Len returns the number of direct children
func (n *Node) Len() int {
	return len(n.fields)
}

// Get returns the first child with the given name
func (n *Node) Get(name string) (Value, bool) {
	for _, f := range n.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Validate walks the tree and rejects shapes the codec cannot encode: nil
// values, empty field names, duplicate non-repeated names, and a Repeated
// nested directly inside a Repeated (an item must be a Scalar or Node).
// Callers must validate before encoding; the codec itself never fails on a
// valid tree.
func (n *Node) Validate() error {
	if n == nil {
		return fmt.Errorf("%w: nil record", ErrInvalidRecordValue)
	}
	seen := make(map[string]bool, len(n.fields))
	for _, f := range n.fields {
		if f.Name == "" {
			return fmt.Errorf("%w: empty field name", ErrInvalidRecordValue)
		}
		if f.Value == nil {
			return fmt.Errorf("%w: field %q has nil value", ErrInvalidRecordValue, f.Name)
		}
		if _, ok := f.Value.(Repeated); !ok {
			if seen[f.Name] {
				return fmt.Errorf("%w: duplicate field %q", ErrInvalidRecordValue, f.Name)
			}
			seen[f.Name] = true
		}
		if err := validateValue(f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(name string, v Value) error {
	switch val := v.(type) {
	case Scalar:
		return nil
	case *Node:
		if val == nil {
			return fmt.Errorf("%w: field %q has nil node", ErrInvalidRecordValue, name)
		}
		return val.Validate()
	case Repeated:
		for _, item := range val {
			if item == nil {
				return fmt.Errorf("%w: field %q has nil sequence item", ErrInvalidRecordValue, name)
			}
			if _, nested := item.(Repeated); nested {
				return fmt.Errorf("%w: field %q nests a sequence inside a sequence", ErrInvalidRecordValue, name)
			}
			if err := validateValue(name, item); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: field %q has unsupported value type %T", ErrInvalidRecordValue, name, v)
	}
}

// ValidateRecords validates every record tree in the slice
func ValidateRecords(records []*Node) error {
	for i, r := range records {
		if r == nil {
			return fmt.Errorf("%w: record %d is nil", ErrInvalidRecordValue, i+1)
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return nil
}
