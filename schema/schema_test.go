package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func ptr[T any](v T) *T { return &v }

func TestProperties_Order(t *testing.T) {
	p := NewProperties()
	p.Set("zeta", &Schema{Type: KindString})
	p.Set("alpha", &Schema{Type: KindInteger})
	p.Set("mid", &Schema{Type: KindBoolean})

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, p.Names())
	assert.Equal(t, 3, p.Len())

	t.Run("replace keeps position", func(t *testing.T) {
		p.Set("alpha", &Schema{Type: KindNumber})
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, p.Names())
		got, ok := p.Get("alpha")
		require.True(t, ok)
		assert.Equal(t, KindNumber, got.Type)
	})

	t.Run("delete", func(t *testing.T) {
		p.Delete("zeta")
		p.Delete("missing")
		assert.Equal(t, []string{"alpha", "mid"}, p.Names())
	})

	t.Run("iteration", func(t *testing.T) {
		var names []string
		for name := range p.All() {
			names = append(names, name)
		}
		assert.Equal(t, []string{"alpha", "mid"}, names)
	})
}

func TestProperties_NilReceiver(t *testing.T) {
	var p *Properties
	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.Names())
	_, ok := p.Get("x")
	assert.False(t, ok)
	assert.True(t, p.IsZero())
	for range p.All() {
		t.Fatal("nil properties should not yield")
	}
}

func TestSchema_AddRequired(t *testing.T) {
	s := &Schema{Type: KindObject}
	s.AddRequired("id", "name")
	s.AddRequired("id")
	assert.Equal(t, []string{"id", "name"}, s.Required)
	assert.True(t, s.IsRequired("name"))
	assert.False(t, s.IsRequired("other"))
}

func TestSchema_SetExtension(t *testing.T) {
	s := &Schema{}
	s.SetExtension("go-type", "Order")
	s.SetExtension("x-internal", true)
	assert.Equal(t, "Order", s.Extensions["x-go-type"])
	assert.Equal(t, true, s.Extensions["x-internal"])
}

func TestSchema_Clone(t *testing.T) {
	orig := &Schema{
		Type:     KindObject,
		Minimum:  ptr(1.0),
		Required: []string{"id"},
		Enum:     []any{int64(1), int64(2)},
		Items:    &Schema{Type: KindString},
		AllOf:    []*Schema{NewRef(ComponentsPrefix, "Base")},
		Discriminator: &Discriminator{
			PropertyName: "$type",
			Mapping:      map[string]string{"Cat": "#/components/schemas/Cat"},
		},
		AdditionalProperties: &Schema{Type: KindInteger},
		Extensions:           map[string]any{"x-a": "b"},
	}
	orig.SetProperty("id", &Schema{Type: KindInteger, Format: "int32"})
	orig.SetProperty("name", &Schema{Type: KindString})

	dup := orig.Clone()
	require.NotSame(t, orig, dup)

	*dup.Minimum = 5
	dup.Required[0] = "changed"
	dup.Items.Type = KindNumber
	dup.AllOf[0].Ref = "#/components/schemas/Other"
	dup.Discriminator.Mapping["Dog"] = "x"
	dup.AdditionalPropertiesSchema().Type = KindString
	dup.Property("id").Format = "int64"
	dup.SetProperty("extra", &Schema{})
	dup.Extensions["x-a"] = "c"

	assert.Equal(t, 1.0, *orig.Minimum)
	assert.Equal(t, []string{"id"}, orig.Required)
	assert.Equal(t, KindString, orig.Items.Type)
	assert.Equal(t, "#/components/schemas/Base", orig.AllOf[0].Ref)
	assert.Len(t, orig.Discriminator.Mapping, 1)
	assert.Equal(t, KindInteger, orig.AdditionalPropertiesSchema().Type)
	assert.Equal(t, "int32", orig.Property("id").Format)
	assert.Equal(t, []string{"id", "name"}, orig.Properties.Names())
	assert.Equal(t, []string{"id", "name", "extra"}, dup.Properties.Names())
	assert.Equal(t, "b", orig.Extensions["x-a"])

	var nilSchema *Schema
	assert.Nil(t, nilSchema.Clone())
}

func TestSchema_CopyNestedProperties(t *testing.T) {
	inner := &Schema{Type: KindObject}
	inner.SetProperty("sku", &Schema{Type: KindString})
	orig := &Schema{Type: KindObject, Items: inner}
	orig.SetProperty("line", inner)

	dup, err := orig.Copy()
	require.NoError(t, err)
	dup.Property("line").Property("sku").Format = "uuid"
	dup.Items.SetProperty("qty", &Schema{Type: KindInteger})

	assert.Empty(t, orig.Property("line").Property("sku").Format)
	assert.Equal(t, []string{"sku"}, orig.Items.Properties.Names())

	var nilSchema *Schema
	none, err := nilSchema.Copy()
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRefs(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		id     string
		want   string
	}{
		{"components", ComponentsPrefix, "Order", "#/components/schemas/Order"},
		{"definitions", DefinitionsPrefix, "Order", "#/definitions/Order"},
		{"escaped slash", ComponentsPrefix, "a/b", "#/components/schemas/a~1b"},
		{"escaped tilde", ComponentsPrefix, "a~b", "#/components/schemas/a~0b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewRef(tt.prefix, tt.id)
			assert.True(t, ref.IsRef())
			assert.Equal(t, tt.want, ref.Ref)
			assert.Equal(t, tt.id, RefID(ref.Ref))
		})
	}

	assert.Equal(t, "", RefID("other.yaml"))
	assert.False(t, (&Schema{}).IsRef())
}

func TestSchema_MarshalJSON(t *testing.T) {
	s := &Schema{Type: KindObject, Required: []string{"b"}}
	s.SetProperty("b", &Schema{Type: KindString})
	s.SetProperty("a", &Schema{Type: KindInteger, Format: "int32"})
	s.SetExtension("x-order", 1)

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"object","properties":{"b":{"type":"string"},"a":{"type":"integer","format":"int32"}},"required":["b"],"x-order":1}`,
		string(data))
	assert.Less(t, strings.Index(string(data), `"b":{`), strings.Index(string(data), `"a":{`), "properties keep insertion order")

	t.Run("empty schema with extension", func(t *testing.T) {
		e := &Schema{Extensions: map[string]any{"x-k": "v"}}
		data, err := e.MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, `{"x-k":"v"}`, string(data))
	})

	t.Run("round trip keeps order", func(t *testing.T) {
		p := NewProperties()
		require.NoError(t, p.UnmarshalJSON([]byte(`{"z":{"type":"string"},"a":{"type":"boolean"}}`)))
		assert.Equal(t, []string{"z", "a"}, p.Names())
		got, _ := p.Get("a")
		assert.Equal(t, KindBoolean, got.Type)
	})
}

func TestProperties_MarshalYAML(t *testing.T) {
	s := &Schema{Type: KindObject}
	s.SetProperty("zeta", &Schema{Type: KindString})
	s.SetProperty("alpha", &Schema{Type: KindInteger})

	data, err := yaml.Marshal(s)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "type: object")
	assert.Less(t, strings.Index(out, "zeta:"), strings.Index(out, "alpha:"))
}
