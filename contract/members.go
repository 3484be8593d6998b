package contract

import (
	"reflect"

	"github.com/go-openapi/swag"

	"github.com/erraggy/oastypes/internal/naming"
)

// embeddedStruct returns the struct type of an embedded field that
// encoding/json flattens into its parent.
func embeddedStruct(f reflect.StructField) (reflect.Type, bool) {
	if !f.Anonymous {
		return nil, false
	}
	tag := f.Tag.Get("json")
	if name, _ := parseJSONTag(tag); name != "" {
		// a json name makes it a regular named field
		return nil, false
	}
	ft := f.Type
	if ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	if ft.Kind() != reflect.Struct {
		return nil, false
	}
	return ft, true
}

// baseOf returns the base type of struct t: its first exported embedded
// struct not tagged oas:"inline".
func baseOf(t reflect.Type) reflect.Type {
	if t.Kind() != reflect.Struct {
		return nil
	}
	for i := range t.NumField() {
		f := t.Field(i)
		ft, ok := embeddedStruct(f)
		if !ok || !f.IsExported() || f.Tag.Get("json") == "-" {
			continue
		}
		if _, inline := parseOASTag(f.Tag.Get("oas"))["inline"]; inline {
			continue
		}
		return ft
	}
	return nil
}

type memberEntry struct {
	member Member
	depth  int
	tagged bool
}

// collectMembers walks the fields of t, flattening embedded structs the way
// encoding/json does.
func (r *ReflectResolver) collectMembers(t reflect.Type) ([]Member, reflect.Type) {
	base := baseOf(t)

	var entries []memberEntry
	visiting := map[reflect.Type]bool{t: true}
	r.walkFields(t, base, 0, false, visiting, &entries)

	return dominantMembers(entries), base
}

func (r *ReflectResolver) walkFields(t, base reflect.Type, depth int, inherited bool, visiting map[reflect.Type]bool, out *[]memberEntry) {
	for i := range t.NumField() {
		f := t.Field(i)

		if ft, ok := embeddedStruct(f); ok {
			if f.Tag.Get("json") == "-" || visiting[ft] {
				continue
			}
			visiting[ft] = true
			r.walkFields(ft, base, depth+1, inherited || (depth == 0 && ft == base), visiting, out)
			delete(visiting, ft)
			continue
		}

		if !f.IsExported() {
			continue
		}
		*out = append(*out, r.memberEntry(t, f, depth, inherited))
	}
}

func (r *ReflectResolver) memberEntry(declaring reflect.Type, f reflect.StructField, depth int, inherited bool) memberEntry {
	jsonTag := f.Tag.Get("json")
	name, jsonOpts := parseJSONTag(jsonTag)
	tagged := name != ""
	if !tagged {
		name = r.memberName(f.Name)
	}

	oasOpts := parseOASTag(f.Tag.Get("oas"))
	var attrs Attributes
	applyOASTag(&attrs, oasOpts)
	applyValidateTag(&attrs, f.Tag.Get("validate"), f.Type)
	if def, ok := f.Tag.Lookup("default"); ok {
		attrs.DefaultText, attrs.HasDefault = def, true
	}
	if _, ok := f.Tag.Lookup("deprecated"); ok {
		attrs.Deprecated = true
	}

	m := Member{
		Name:          name,
		FieldName:     f.Name,
		Type:          f.Type,
		DeclaringType: declaring,
		Inherited:     inherited,
		Ignored:       jsonTag == "-",
		Required:      isFieldRequired(f, jsonOpts, oasOpts, r.implicitRequired),
		Nullable:      f.Type.Kind() == reflect.Pointer,
		Deprecated:    attrs.Deprecated,
		ReadOnly:      attrs.ReadOnly,
		WriteOnly:     attrs.WriteOnly,
		StringEncoded: hasOption(jsonOpts, "string") && isStringEncodable(f.Type),
		Attributes:    attrs,
	}
	if m.Ignored {
		m.Name = r.memberName(f.Name)
		m.Required = false
	}
	return memberEntry{member: m, depth: depth, tagged: tagged}
}

func (r *ReflectResolver) memberName(field string) string {
	switch r.naming {
	case MemberNamingCamelCase:
		return swag.ToJSONName(field)
	case MemberNamingSnakeCase:
		return naming.ToSnakeCase(field)
	default:
		return field
	}
}

// isStringEncodable reports whether the json ",string" option applies to t.
func isStringEncodable(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool, reflect.Float32, reflect.Float64, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// dominantMembers resolves name collisions using encoding/json rules: the
// shallowest field wins, then a tagged field; remaining ties drop the name.
func dominantMembers(entries []memberEntry) []Member {
	byName := make(map[string][]int)
	var order []string
	for i, e := range entries {
		if _, seen := byName[e.member.Name]; !seen {
			order = append(order, e.member.Name)
		}
		byName[e.member.Name] = append(byName[e.member.Name], i)
	}

	members := make([]Member, 0, len(order))
	for _, name := range order {
		idx := byName[name]
		if len(idx) == 1 {
			members = append(members, entries[idx[0]].member)
			continue
		}
		if winner, ok := dominant(entries, idx); ok {
			members = append(members, entries[winner].member)
		}
	}
	return members
}

func dominant(entries []memberEntry, idx []int) (int, bool) {
	minDepth := entries[idx[0]].depth
	for _, i := range idx[1:] {
		minDepth = min(minDepth, entries[i].depth)
	}
	var shallow []int
	for _, i := range idx {
		if entries[i].depth == minDepth {
			shallow = append(shallow, i)
		}
	}
	if len(shallow) == 1 {
		return shallow[0], true
	}
	var tagged []int
	for _, i := range shallow {
		if entries[i].tagged {
			tagged = append(tagged, i)
		}
	}
	if len(tagged) == 1 {
		return tagged[0], true
	}
	return 0, false
}
