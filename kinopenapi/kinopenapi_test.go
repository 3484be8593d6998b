package kinopenapi

import (
	"context"
	"reflect"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastypes/generator"
	"github.com/erraggy/oastypes/internal/testutil"
	"github.com/erraggy/oastypes/schema"
)

func finalized(t *testing.T, types []reflect.Type, opts ...generator.Option) *generator.Repository {
	t.Helper()
	g, err := generator.New(nil, opts...)
	require.NoError(t, err)
	repo := generator.NewRepository()
	for _, typ := range types {
		_, err := g.GenerateSchema(context.Background(), typ, repo)
		require.NoError(t, err)
	}
	require.NoError(t, g.Finalize(context.Background(), repo))
	return repo
}

func TestSchemaRef(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		ref, err := SchemaRef(nil)
		require.NoError(t, err)
		assert.Nil(t, ref)
	})

	t.Run("reference", func(t *testing.T) {
		ref, err := SchemaRef(schema.NewRef(schema.ComponentsPrefix, "Order"))
		require.NoError(t, err)
		assert.Equal(t, "#/components/schemas/Order", ref.Ref)
	})

	t.Run("value", func(t *testing.T) {
		minLen := 1
		s := &schema.Schema{Type: schema.KindString, Format: "uuid", MinLength: &minLen, Nullable: true}
		s.SetExtension("go-type", "uuid.UUID")

		ref, err := SchemaRef(s)
		require.NoError(t, err)
		require.NotNil(t, ref.Value)
		assert.True(t, ref.Value.Type.Is(openapi3.TypeString))
		assert.Equal(t, "uuid", ref.Value.Format)
		assert.Equal(t, uint64(1), ref.Value.MinLength)
		assert.True(t, ref.Value.Nullable)
		assert.Equal(t, "uuid.UUID", ref.Value.Extensions["x-go-type"])
	})
}

func TestComponents(t *testing.T) {
	repo := finalized(t, []reflect.Type{reflect.TypeFor[testutil.Order]()})

	schemas, err := Components(repo)
	require.NoError(t, err)
	assert.Len(t, schemas, repo.Len())

	order := schemas["Order"]
	require.NotNil(t, order)
	require.NotNil(t, order.Value)
	assert.True(t, order.Value.Type.Is(openapi3.TypeObject))
	assert.Contains(t, order.Value.Required, "customer")

	lines := order.Value.Properties["lines"]
	require.NotNil(t, lines)
	assert.True(t, lines.Value.Type.Is(openapi3.TypeArray))
	assert.Equal(t, "#/components/schemas/OrderLine", lines.Value.Items.Ref)

	status := schemas["Status"]
	require.NotNil(t, status)
	assert.Equal(t, []any{"active", "suspended"}, status.Value.Enum)
}

func TestDocument(t *testing.T) {
	repo := finalized(t, []reflect.Type{
		reflect.TypeFor[testutil.Order](),
		reflect.TypeFor[testutil.Animal](),
		reflect.TypeFor[testutil.Node](),
	}, generator.WithComposition(generator.CompositionOneOfAllOf))

	doc, err := Document(context.Background(), repo, Info{Title: "Orders", Version: "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAPIVersion, doc.OpenAPI)
	assert.Len(t, doc.Components.Schemas, repo.Len())

	cat := doc.Components.Schemas["Cat"]
	require.NotNil(t, cat)
	require.Len(t, cat.Value.AllOf, 2)
	require.NotNil(t, cat.Value.AllOf[0].Value, "loader resolves references")
	assert.Contains(t, cat.Value.AllOf[0].Value.Properties, "name")

	_, err = Document(context.Background(), repo, Info{Version: "1.0.0"})
	assert.Error(t, err, "title is required")
}
