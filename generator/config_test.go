package generator

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastypes/internal/testutil"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/schema"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_Overrides(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
naming:
  strategy: package
  generic:
    strategy: of
composition: oneOfAllOf
discriminator:
  property: kind
enums:
  naming: camelCaseString
wrapReferences: true
`))
	require.NoError(t, err)

	assert.Equal(t, "package", cfg.Naming.Strategy)
	assert.Equal(t, "of", cfg.Naming.Generic.Strategy)
	assert.Equal(t, "oneOfAllOf", cfg.Composition)
	assert.Equal(t, "kind", cfg.Discriminator.Property)
	assert.Equal(t, "camelCaseString", cfg.Enums.Naming)
	assert.True(t, cfg.WrapReferences)
	assert.Equal(t, schema.ComponentsPrefix, cfg.RefPrefix, "unset keys keep defaults")

	g, err := New(nil, cfg.Options()...)
	require.NoError(t, err)
	repo := NewRepository()
	root, err := g.GenerateSchema(context.Background(), reflect.TypeFor[testutil.Animal](), repo)
	require.NoError(t, err)

	assert.Equal(t, "kind", root.Discriminator.PropertyName)
	assert.Equal(t, ref("testutil.Cat"), root.OneOf[0].Ref)
	assert.True(t, repo.Contains("testutil.Animal"))
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		option string
	}{
		{"unknown composition", "composition: mixin", "composition"},
		{"unknown naming", "naming:\n  strategy: hungarian", "naming.strategy"},
		{"unknown generic naming", "naming:\n  generic:\n    strategy: brackets", "naming.generic.strategy"},
		{"unknown enum naming", "enums:\n  naming: upper", "enums.naming"},
		{"ref prefix must be local", "refPrefix: https://example.com/schemas/", "refPrefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)

			var ce *oaserrors.ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.option, ce.Option)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("naming: [unclosed"))
		assert.ErrorIs(t, err, oaserrors.ErrConfig)
	})
}

func TestLoadConfig(t *testing.T) {
	path := testutil.WriteTempYAML(t, map[string]any{
		"naming":      map[string]any{"template": "{{.TypeSanitized}}Model"},
		"enums":       map[string]any{"inline": true},
		"composition": "allOf",
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Enums.Inline)
	assert.Equal(t, "allOf", cfg.Composition)

	g, err := New(nil, cfg.Options()...)
	require.NoError(t, err)
	repo := NewRepository()
	root, err := g.GenerateSchema(context.Background(), reflect.TypeFor[testutil.OrderLine](), repo)
	require.NoError(t, err)
	assert.Equal(t, ref("OrderLineModel"), root.Ref)
	assert.Equal(t, []string{"OrderLineModel"}, repo.IDs())

	_, err = LoadConfig(path + ".missing")
	assert.Error(t, err)
}
