package shape

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"tablefn/cell"
	"tablefn/internal/common"
)

// LeafKind identifies how a leaf token is parsed into a concrete value.
type LeafKind int

const (
	LeafString LeafKind = iota // token kept verbatim
	LeafInt                    // base-10 int64
	LeafBool                   // strconv.ParseBool
	LeafEnum                   // one of a closed set of string literals
)

// String returns the name used for the kind in definition files.
func (k LeafKind) String() string {
	switch k {
	case LeafString:
		return "string"
	case LeafInt:
		return "int"
	case LeafBool:
		return "bool"
	case LeafEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// ParseLeafKind is the inverse of LeafKind.String.
func ParseLeafKind(s string) (LeafKind, bool) {
	switch s {
	case "string", "str":
		return LeafString, true
	case "int":
		return LeafInt, true
	case "bool":
		return LeafBool, true
	case "enum":
		return LeafEnum, true
	default:
		return 0, false
	}
}

// Leaf describes a single-cell field.
type Leaf struct {
	Kind LeafKind
	// Values lists the allowed literals of an enum leaf.
	Values []string
}

// Parse converts a non-wildcard token into a concrete cell.
func (l Leaf) Parse(token string) (cell.Cell, error) {
	switch l.Kind {
	case LeafString:
		return cell.Concrete(token), nil
	case LeafInt:
		n, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return cell.Wildcard, fmt.Errorf("%q is not an int", token)
		}

		return cell.Concrete(n), nil
	case LeafBool:
		b, err := strconv.ParseBool(token)
		if err != nil {
			return cell.Wildcard, fmt.Errorf("%q is not a bool", token)
		}

		return cell.Concrete(b), nil
	case LeafEnum:
		if !slices.Contains(l.Values, token) {
			return cell.Wildcard, fmt.Errorf("%q is not in [%s]", token, strings.Join(l.Values, ", "))
		}

		return cell.Concrete(token), nil
	default:
		return cell.Wildcard, fmt.Errorf("don't know how to parse leaf kind %v", l.Kind)
	}
}

// Equal reports whether two leaves have the same kind and enum values.
func (l Leaf) Equal(other Leaf) bool {
	return l.Kind == other.Kind && slices.Equal(l.Values, other.Values)
}

// String renders the leaf as it would be declared.
func (l Leaf) String() string {
	if l.Kind == LeafEnum {
		return "enum(" + strings.Join(l.Values, "|") + ")"
	}

	return l.Kind.String()
}
