package generator

import (
	"context"
	"fmt"
	"reflect"
	"runtime"

	"github.com/erraggy/oastypes/contract"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/schema"
)

// SchemaFilter post-processes every generated schema: inline schemas before
// they are returned and definitions before they are stored. References are
// never filtered. Returning an error aborts the generation request.
type SchemaFilter interface {
	FilterSchema(s *schema.Schema, fc *FilterContext) error
}

// ModelFilter post-processes schemas of object contracts. Model filters run
// before schema filters.
type ModelFilter interface {
	FilterModel(s *schema.Schema, fc *FilterContext) error
}

// RepositoryFilter post-processes a drained repository. Repository filters
// run from Generator.Finalize.
type RepositoryFilter interface {
	FilterRepository(repo *Repository, fc *FilterContext) error
}

// SchemaFilterFunc adapts a function to SchemaFilter.
type SchemaFilterFunc func(s *schema.Schema, fc *FilterContext) error

// FilterSchema implements SchemaFilter.
func (f SchemaFilterFunc) FilterSchema(s *schema.Schema, fc *FilterContext) error {
	return f(s, fc)
}

// ModelFilterFunc adapts a function to ModelFilter.
type ModelFilterFunc func(s *schema.Schema, fc *FilterContext) error

// FilterModel implements ModelFilter.
func (f ModelFilterFunc) FilterModel(s *schema.Schema, fc *FilterContext) error {
	return f(s, fc)
}

// RepositoryFilterFunc adapts a function to RepositoryFilter.
type RepositoryFilterFunc func(repo *Repository, fc *FilterContext) error

// FilterRepository implements RepositoryFilter.
func (f RepositoryFilterFunc) FilterRepository(repo *Repository, fc *FilterContext) error {
	return f(repo, fc)
}

// FilterContext describes what a filter is looking at. Fields that do not
// apply to the current invocation are zero.
type FilterContext struct {
	// Type is the Go type the schema was generated for.
	Type reflect.Type
	// Contract is the resolved contract of Type. It is nil for types with a
	// custom mapping and for repository filters.
	Contract *contract.Contract
	// Member is the struct member being described, if any.
	Member *contract.Member
	// Parameter is the operation parameter being described, if any.
	Parameter *contract.Parameter
	// SchemaID is set when the schema is a definition stored under this id.
	SchemaID string
	// Repository is the repository of the current request.
	Repository *Repository

	session *session
}

// Context returns the context of the generation request.
func (fc *FilterContext) Context() context.Context {
	return fc.session.ctx
}

// GenerateSchema generates a schema for t against the same repository.
// Definitions it reserves are expanded by the enclosing request.
func (fc *FilterContext) GenerateSchema(t reflect.Type) (*schema.Schema, error) {
	return fc.session.generate(t, site{})
}

// Logger returns the logger of the running request.
func (fc *FilterContext) Logger() Logger {
	return fc.session.log
}

// runFilters applies the model filters (objects only) and then the schema
// filters to s.
func (ss *session) runFilters(s *schema.Schema, fc *FilterContext) error {
	if fc.Contract != nil && fc.Contract.Kind == contract.KindObject {
		for i, f := range ss.g.cfg.modelFilters {
			if err := f.FilterModel(s, fc); err != nil {
				return filterError(oaserrors.FilterStageModel, i, f, fc.Type, err)
			}
		}
	}
	for i, f := range ss.g.cfg.schemaFilters {
		if err := f.FilterSchema(s, fc); err != nil {
			return filterError(oaserrors.FilterStageSchema, i, f, fc.Type, err)
		}
	}
	return nil
}

// runRepositoryFilters applies the repository filters, draining after each
// so definitions reserved by a filter are complete before the next one runs.
func (ss *session) runRepositoryFilters() error {
	fc := &FilterContext{Repository: ss.repo, session: ss}
	for i, f := range ss.g.cfg.repositoryFilters {
		if err := f.FilterRepository(ss.repo, fc); err != nil {
			return filterError(oaserrors.FilterStageRepository, i, f, nil, err)
		}
		if err := ss.drain(); err != nil {
			return err
		}
	}
	return nil
}

func filterError(stage oaserrors.FilterStage, index int, f any, t reflect.Type, cause error) error {
	fe := &oaserrors.FilterError{
		Stage:  stage,
		Index:  index,
		Filter: describeFilter(f),
		Cause:  cause,
	}
	if t != nil {
		fe.Type = typeString(t)
	}
	return fe
}

// describeFilter names a filter for error messages: the function name for
// the Func adapters, the dynamic type otherwise.
func describeFilter(f any) string {
	switch f.(type) {
	case SchemaFilterFunc, ModelFilterFunc, RepositoryFilterFunc:
		if fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer()); fn != nil {
			return fn.Name()
		}
	}
	return fmt.Sprintf("%T", f)
}
