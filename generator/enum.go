package generator

import (
	"strconv"

	"github.com/huandu/xstrings"
	"github.com/spf13/cast"

	"github.com/erraggy/oastypes/contract"
	"github.com/erraggy/oastypes/schema"
)

// enumUsesNames reports whether enum values are emitted as member names.
func (g *Generator) enumUsesNames(ec *contract.EnumContract) bool {
	return ec.Underlying != contract.DataTypeString &&
		(ec.TextConverter || g.cfg.enumNaming != EnumNamingInteger)
}

// enumWireName returns the serialized form of a member emitted by name.
func (g *Generator) enumWireName(name string) string {
	if g.cfg.enumNaming == EnumNamingCamelCaseString {
		return xstrings.FirstRuneToLower(xstrings.ToCamelCase(name))
	}
	return name
}

// enumWireValue returns the serialized value of a member.
func (g *Generator) enumWireValue(ec *contract.EnumContract, m contract.EnumMember) any {
	if g.enumUsesNames(ec) {
		return g.enumWireName(m.Name)
	}
	return m.Value
}

// enumSchema maps an enum contract. String enums always emit their values;
// other enums emit numbers or names depending on EnumNaming. Members sharing
// a value are emitted once, keeping the first.
func (g *Generator) enumSchema(c *contract.Contract) *schema.Schema {
	ec := c.Enum
	s := &schema.Schema{Type: schema.KindInteger, Format: "int32"}
	switch {
	case ec.Underlying == contract.DataTypeString, g.enumUsesNames(ec):
		s = &schema.Schema{Type: schema.KindString}
	case ec.Underlying == contract.DataTypeInt64:
		s.Format = "int64"
	}

	seen := make(map[any]bool, len(ec.Members))
	for _, m := range ec.Members {
		if seen[m.Value] {
			continue
		}
		seen[m.Value] = true
		s.Enum = append(s.Enum, g.enumWireValue(ec, m))
	}
	s.Description = c.Description
	s.Deprecated = c.Deprecated
	return s
}

// enumPropertyName returns the property name used for an enum member when
// the enum keys a dictionary. encoding/json writes integer keys in decimal.
func (g *Generator) enumPropertyName(ec *contract.EnumContract, m contract.EnumMember) string {
	switch {
	case ec.Underlying == contract.DataTypeString:
		return cast.ToString(m.Value)
	case g.enumUsesNames(ec):
		return g.enumWireName(m.Name)
	default:
		return strconv.FormatInt(cast.ToInt64(m.Value), 10)
	}
}
