package generator

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastypes/contract"
	"github.com/erraggy/oastypes/internal/testutil"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/schema"
)

type goTypeFilter struct{}

func (goTypeFilter) FilterSchema(s *schema.Schema, fc *FilterContext) error {
	if fc.SchemaID != "" {
		s.SetExtension("go-type", fc.Type.String())
	}
	return nil
}

func TestSchemaFilter(t *testing.T) {
	t.Run("runs on definitions", func(t *testing.T) {
		g := newTestGenerator(t, WithSchemaFilter(goTypeFilter{}))
		repo := NewRepository()
		generateFor[testutil.Order](t, g, repo)

		assert.Equal(t, "testutil.Order", lookup(t, repo, "Order").Extensions["x-go-type"])
		assert.Equal(t, "testutil.OrderLine", lookup(t, repo, "OrderLine").Extensions["x-go-type"])
	})

	t.Run("never sees references", func(t *testing.T) {
		var inline, refs int
		g := newTestGenerator(t, WithSchemaFilter(SchemaFilterFunc(func(s *schema.Schema, fc *FilterContext) error {
			if s.IsRef() {
				refs++
			}
			if fc.SchemaID == "" {
				inline++
			}
			return nil
		})))
		generateFor[testutil.Order](t, g, NewRepository())
		assert.Zero(t, refs)
		assert.Positive(t, inline)
	})

	t.Run("context describes the member", func(t *testing.T) {
		var members []string
		g := newTestGenerator(t, WithSchemaFilter(SchemaFilterFunc(func(_ *schema.Schema, fc *FilterContext) error {
			if fc.Member != nil && fc.Member.DeclaringType == reflect.TypeFor[testutil.OrderLine]() {
				members = append(members, fc.Member.Name)
			}
			return nil
		})))
		generateFor[testutil.OrderLine](t, g, NewRepository())
		// color is an enum reference and is not filtered
		assert.Equal(t, []string{"sku", "quantity", "price"}, members)
	})

	t.Run("reentrant generation during drain", func(t *testing.T) {
		g := newTestGenerator(t, WithSchemaFilter(SchemaFilterFunc(func(s *schema.Schema, fc *FilterContext) error {
			if fc.SchemaID != "Order" {
				return nil
			}
			approver, err := fc.GenerateSchema(reflect.TypeFor[testutil.Manager]())
			if err != nil {
				return err
			}
			s.SetProperty("approver", approver)
			return nil
		})))
		repo := NewRepository()
		generateFor[testutil.Order](t, g, repo)

		assert.Equal(t, ref("Manager"), lookup(t, repo, "Order").Property("approver").Ref)
		assert.True(t, repo.Contains("Manager"))
		assert.True(t, repo.Contains("Employee"))
		lookup(t, repo, "Employee")
		assert.Zero(t, repo.Pending())
	})

	t.Run("first error aborts", func(t *testing.T) {
		boom := errors.New("boom")
		var secondCalls int
		g := newTestGenerator(t,
			WithSchemaFilter(
				SchemaFilterFunc(func(*schema.Schema, *FilterContext) error { return boom }),
				SchemaFilterFunc(func(*schema.Schema, *FilterContext) error {
					secondCalls++
					return nil
				}),
			),
		)
		_, err := g.GenerateSchema(context.Background(), reflect.TypeFor[testutil.Score](), NewRepository())
		require.Error(t, err)
		assert.ErrorIs(t, err, oaserrors.ErrFilter)
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, secondCalls)

		var fe *oaserrors.FilterError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, oaserrors.FilterStageSchema, fe.Stage)
		assert.Equal(t, 0, fe.Index)
		assert.Contains(t, fe.Filter, "TestSchemaFilter")
	})

	t.Run("typed filter is described by type", func(t *testing.T) {
		assert.Equal(t, "generator.goTypeFilter", describeFilter(goTypeFilter{}))
	})
}

func TestModelFilter(t *testing.T) {
	var calls []string
	g := newTestGenerator(t,
		WithSchemaFilter(SchemaFilterFunc(func(_ *schema.Schema, fc *FilterContext) error {
			if fc.SchemaID != "" {
				calls = append(calls, "schema:"+fc.SchemaID)
			}
			return nil
		})),
		WithModelFilter(ModelFilterFunc(func(s *schema.Schema, fc *FilterContext) error {
			require.NotNil(t, fc.Contract)
			assert.Equal(t, contract.KindObject, fc.Contract.Kind)
			calls = append(calls, "model:"+fc.SchemaID)
			return nil
		})),
	)
	generateFor[testutil.OrderLine](t, g, NewRepository())

	// Color is an enum definition: schema filters only
	assert.Equal(t, []string{"model:OrderLine", "schema:OrderLine", "schema:Color"}, calls)

	t.Run("error", func(t *testing.T) {
		g := newTestGenerator(t, WithModelFilter(ModelFilterFunc(func(*schema.Schema, *FilterContext) error {
			return errors.New("model failed")
		})))
		_, err := g.GenerateSchema(context.Background(), reflect.TypeFor[testutil.Score](), NewRepository())
		var fe *oaserrors.FilterError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, oaserrors.FilterStageModel, fe.Stage)
		assert.Contains(t, fe.Type, "testutil.Score")
	})
}

func TestRepositoryFilter(t *testing.T) {
	t.Run("finalize drains generated schemas", func(t *testing.T) {
		var seen []string
		g := newTestGenerator(t, WithRepositoryFilter(RepositoryFilterFunc(func(repo *Repository, fc *FilterContext) error {
			seen = repo.IDs()
			_, err := fc.GenerateSchema(reflect.TypeFor[testutil.Employee]())
			return err
		})))
		repo := NewRepository()
		generateFor[testutil.Score](t, g, repo)
		require.NoError(t, g.Finalize(context.Background(), repo))

		assert.Equal(t, []string{"Score"}, seen)
		assert.Equal(t, []string{"Score", "Employee", "Manager"}, repo.IDs())
		assert.Equal(t, 3, repo.Len())
	})

	t.Run("error", func(t *testing.T) {
		g := newTestGenerator(t, WithRepositoryFilter(RepositoryFilterFunc(func(*Repository, *FilterContext) error {
			return errors.New("nope")
		})))
		err := g.Finalize(context.Background(), NewRepository())
		var fe *oaserrors.FilterError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, oaserrors.FilterStageRepository, fe.Stage)
		assert.Empty(t, fe.Type)
	})
}
