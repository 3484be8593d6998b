package generator

import (
	"reflect"

	"github.com/erraggy/oastypes/contract"
)

// shape is the category that governs how a schema is generated.
type shape int

const (
	shapeOpen shape = iota
	shapeMapped
	shapePrimitive
	shapeEnum
	shapeEnumKeyedObject
	shapeDictionary
	shapeArray
	shapeObject
)

func (s shape) String() string {
	switch s {
	case shapeMapped:
		return "mapped"
	case shapePrimitive:
		return "primitive"
	case shapeEnum:
		return "enum"
	case shapeEnumKeyedObject:
		return "enum-keyed object"
	case shapeDictionary:
		return "dictionary"
	case shapeArray:
		return "array"
	case shapeObject:
		return "object"
	default:
		return "open"
	}
}

// mapping returns the custom schema registered for t, if any.
func (g *Generator) mapping(t reflect.Type) (reflect.Type, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	_, ok := g.cfg.mappings[t]
	return t, ok
}

// classify picks the shape of a resolved contract. Custom mappings are
// checked by the caller before the type is resolved. Anything that does not
// fit another shape is open. The only error is a dictionary key that fails
// to resolve.
func (ss *session) classify(c *contract.Contract) (shape, error) {
	switch c.Kind {
	case contract.KindPrimitive:
		return shapePrimitive, nil
	case contract.KindEnum:
		if c.Enum == nil {
			return shapeOpen, nil
		}
		return shapeEnum, nil
	case contract.KindDictionary:
		if c.Elem == nil {
			return shapeOpen, nil
		}
		if c.Key == nil {
			return shapeDictionary, nil
		}
		kc, err := ss.resolve(c.Key)
		if err != nil {
			return shapeOpen, err
		}
		if kc.Kind == contract.KindEnum && kc.Enum != nil {
			return shapeEnumKeyedObject, nil
		}
		return shapeDictionary, nil
	case contract.KindArray:
		if c.Elem == nil {
			return shapeOpen, nil
		}
		return shapeArray, nil
	case contract.KindObject:
		return shapeObject, nil
	default:
		return shapeOpen, nil
	}
}
