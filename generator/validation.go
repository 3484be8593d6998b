package generator

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"

	"github.com/erraggy/oastypes/contract"
	"github.com/erraggy/oastypes/schema"
)

// siteAttributes collects the declarative metadata of a call site.
func siteAttributes(st site) contract.Attributes {
	var attrs contract.Attributes
	switch {
	case st.member != nil:
		m := st.member
		attrs = m.Attributes
		attrs.Required = attrs.Required || m.Required
		attrs.Deprecated = attrs.Deprecated || m.Deprecated
		attrs.ReadOnly = attrs.ReadOnly || m.ReadOnly
		attrs.WriteOnly = attrs.WriteOnly || m.WriteOnly
	case st.parameter != nil:
		attrs = st.parameter.Attributes
		attrs.Required = attrs.Required || st.parameter.Required
	}
	return attrs
}

// applyMetadata writes nullability and call site metadata onto s. A
// reference cannot carry siblings, so it is wrapped in allOf when
// WrapReferences is set and left bare otherwise. Applying the same metadata
// twice yields the same schema.
func (ss *session) applyMetadata(s *schema.Schema, c *contract.Contract, st site, nullable bool) *schema.Schema {
	attrs := siteAttributes(st)
	if attrs.Nullable != nil {
		nullable = *attrs.Nullable
	}
	if attrs.Required {
		nullable = false
	}

	// Required is recorded on the parent, not on the property schema.
	visible := attrs
	visible.Required = false
	if !nullable && visible.IsZero() {
		if !s.IsRef() && (attrs.Required || attrs.Nullable != nil) {
			s.Nullable = false
		}
		return s
	}

	target := s
	if s.IsRef() {
		if !ss.g.cfg.wrapReferences {
			ss.log.Debug("dropping metadata next to reference", "ref", s.Ref)
			return s
		}
		target = &schema.Schema{AllOf: []*schema.Schema{s}}
	}
	switch {
	case nullable:
		target.Nullable = true
	case attrs.Required || attrs.Nullable != nil:
		target.Nullable = false
	}
	ss.applyAttributes(target, c, attrs)
	return target
}

// applyAttributes maps declarative constraints onto target. Length bounds
// become item counts for arrays and character counts for strings.
func (ss *session) applyAttributes(target *schema.Schema, c *contract.Contract, attrs contract.Attributes) {
	if attrs.Minimum != nil {
		target.Minimum = ptrTo(*attrs.Minimum)
		target.ExclusiveMinimum = attrs.ExclusiveMinimum
	}
	if attrs.Maximum != nil {
		target.Maximum = ptrTo(*attrs.Maximum)
		target.ExclusiveMaximum = attrs.ExclusiveMaximum
	}
	if attrs.MultipleOf != nil {
		target.MultipleOf = ptrTo(*attrs.MultipleOf)
	}

	switch target.Type {
	case schema.KindArray:
		if attrs.MinLength != nil {
			target.MinItems = ptrTo(*attrs.MinLength)
		}
		if attrs.MaxLength != nil {
			target.MaxItems = ptrTo(*attrs.MaxLength)
		}
		if attrs.UniqueItems {
			target.UniqueItems = true
		}
	case schema.KindString:
		if attrs.MinLength != nil {
			target.MinLength = ptrTo(*attrs.MinLength)
		}
		if attrs.MaxLength != nil {
			target.MaxLength = ptrTo(*attrs.MaxLength)
		}
		if attrs.DataType != "" && target.Format == "" {
			target.Format = attrs.DataType
		}
	}

	if attrs.Pattern != "" {
		target.Pattern = attrs.Pattern
	}
	if len(attrs.Enum) > 0 {
		values := make([]any, len(attrs.Enum))
		for i, text := range attrs.Enum {
			values[i] = ss.literal(c, target, text)
		}
		target.Enum = values
	}
	if attrs.HasDefault {
		if attrs.Default != nil {
			target.Default = ss.value(c, attrs.Default)
		} else {
			target.Default = ss.literal(c, target, attrs.DefaultText)
		}
	}
	if attrs.Example != nil {
		if text, ok := attrs.Example.(string); ok {
			target.Example = ss.literal(c, target, text)
		} else {
			target.Example = ss.value(c, attrs.Example)
		}
	}

	if attrs.Description != "" {
		target.Description = attrs.Description
	}
	if attrs.Title != "" {
		target.Title = attrs.Title
	}
	target.ReadOnly = target.ReadOnly || attrs.ReadOnly
	target.WriteOnly = target.WriteOnly || attrs.WriteOnly
	target.Deprecated = target.Deprecated || attrs.Deprecated
}

// literal converts a textual literal from a tag into the value the member's
// type serializes to. Text that does not convert is kept as is.
func (ss *session) literal(c *contract.Contract, target *schema.Schema, text string) any {
	if c != nil && c.Kind == contract.KindEnum && c.Enum != nil {
		if m, ok := matchEnumMember(c.Enum, text); ok {
			return ss.g.enumWireValue(c.Enum, m)
		}
		ss.log.Warn("literal is not an enum member", "type", typeString(c.Type), "literal", text)
		return text
	}

	kind := target.Type
	if c != nil && c.Kind == contract.KindPrimitive {
		if c.DataType == contract.DataTypeDuration {
			if d, err := cast.ToDurationE(text); err == nil {
				return int64(d)
			}
		}
		kind = primitiveSchema(c.DataType).Type
	}

	var (
		v   any
		err error
	)
	switch kind {
	case schema.KindString:
		return text
	case schema.KindInteger:
		v, err = cast.ToInt64E(text)
	case schema.KindNumber:
		v, err = cast.ToFloat64E(text)
	case schema.KindBoolean:
		v, err = cast.ToBoolE(text)
	default:
		var decoded any
		if err = json.Unmarshal([]byte(text), &decoded); err == nil {
			v = normalizeJSON(decoded)
		}
	}
	if err != nil {
		ss.log.Warn("cannot convert literal", "literal", text, "kind", string(kind), "error", err)
		return text
	}
	return v
}

// value converts a Go value into its JSON form. Enum values are mapped to
// their wire representation.
func (ss *session) value(c *contract.Contract, v any) any {
	if c != nil && c.Kind == contract.KindEnum && c.Enum != nil {
		if key, ok := enumKey(v); ok {
			for _, m := range c.Enum.Members {
				if m.Value == key {
					return ss.g.enumWireValue(c.Enum, m)
				}
			}
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		ss.log.Warn("cannot serialize value", "error", err)
		return v
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return v
	}
	return normalizeJSON(decoded)
}

// matchEnumMember finds the member whose name, camel-cased name or value
// text equals text.
func matchEnumMember(ec *contract.EnumContract, text string) (contract.EnumMember, bool) {
	if m, ok := ec.Lookup(text); ok {
		return m, true
	}
	for _, m := range ec.Members {
		switch v := m.Value.(type) {
		case string:
			if v == text {
				return m, true
			}
		case int64:
			if strconv.FormatInt(v, 10) == text {
				return m, true
			}
		}
		if strings.EqualFold(m.Name, text) {
			return m, true
		}
	}
	return contract.EnumMember{}, false
}

// enumKey normalizes an enum value the way EnumMember values are stored.
func enumKey(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	case reflect.String:
		return rv.String(), true
	}
	return nil, false
}

// normalizeJSON turns integral float64 values into int64 so decoded numbers
// keep their integer form.
func normalizeJSON(v any) any {
	switch x := v.(type) {
	case float64:
		if x == float64(int64(x)) {
			return int64(x)
		}
		return x
	case []any:
		for i := range x {
			x[i] = normalizeJSON(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalizeJSON(x[k])
		}
		return x
	}
	return v
}

func ptrTo[T any](v T) *T {
	return &v
}
