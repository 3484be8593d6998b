package generator

import (
	"maps"
	"reflect"
	"slices"

	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/schema"
)

// Repository owns the named schema definitions produced for one document.
//
// Each identifier is bound to exactly one type. A type's identifier is
// reserved before its schema is built, so self- and mutually-referential
// types receive a reference instead of being expanded again. Reserved
// identifiers wait in a FIFO queue until the generator drains it.
//
// A Repository is not safe for concurrent use; each generation request owns
// its own.
type Repository struct {
	schemas map[string]*schema.Schema
	types   map[string]reflect.Type
	ids     map[reflect.Type]string
	order   []string

	pending []string

	// discriminators maps a subtype to the discriminator property its
	// polymorphic base requires
	discriminators map[reflect.Type]string
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithDefinition seeds the repository with an existing definition bound to
// t. Generation references it instead of building a new schema.
func WithDefinition(id string, t reflect.Type, s *schema.Schema) RepositoryOption {
	return func(r *Repository) {
		r.types[id] = t
		r.ids[t] = id
		r.order = append(r.order, id)
		r.schemas[id] = s
	}
}

// NewRepository creates an empty repository.
func NewRepository(opts ...RepositoryOption) *Repository {
	r := &Repository{
		schemas:        make(map[string]*schema.Schema),
		types:          make(map[string]reflect.Type),
		ids:            make(map[reflect.Type]string),
		discriminators: make(map[reflect.Type]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns the schema stored under id. Reserved identifiers whose
// schema has not been built yet are not found.
func (r *Repository) Lookup(id string) (*schema.Schema, bool) {
	s, ok := r.schemas[id]
	return s, ok
}

// IDFor returns the identifier bound to t.
func (r *Repository) IDFor(t reflect.Type) (string, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	id, ok := r.ids[t]
	return id, ok
}

// TypeOf returns the type bound to id.
func (r *Repository) TypeOf(id string) (reflect.Type, bool) {
	t, ok := r.types[id]
	return t, ok
}

// IDs returns every reserved identifier in reservation order.
func (r *Repository) IDs() []string {
	return slices.Clone(r.order)
}

// Schemas returns a copy of the identifier to schema map. The schemas
// themselves are shared.
func (r *Repository) Schemas() map[string]*schema.Schema {
	return maps.Clone(r.schemas)
}

// Len returns the number of stored schemas.
func (r *Repository) Len() int {
	return len(r.schemas)
}

// Pending returns the number of reserved identifiers awaiting expansion.
func (r *Repository) Pending() int {
	return len(r.pending)
}

// Contains reports whether id is reserved or stored.
func (r *Repository) Contains(id string) bool {
	_, ok := r.types[id]
	return ok
}

// reserve binds id to t and queues it for expansion. It returns false when
// id is already bound to t, and a *oaserrors.SchemaConflictError when id is
// bound to another type.
func (r *Repository) reserve(t reflect.Type, id string) (bool, error) {
	if existing, ok := r.types[id]; ok {
		if existing == t {
			return false, nil
		}
		return false, &oaserrors.SchemaConflictError{
			ID:       id,
			Existing: typeString(existing),
			Incoming: typeString(t),
			Hint:     "use SchemaNamingFullyQualified or a custom naming function to disambiguate",
		}
	}
	r.types[id] = t
	r.ids[t] = id
	r.order = append(r.order, id)
	r.pending = append(r.pending, id)
	return true, nil
}

// store records the expanded schema for a reserved identifier.
func (r *Repository) store(id string, s *schema.Schema) {
	r.schemas[id] = s
}

// next dequeues the oldest pending identifier.
func (r *Repository) next() (string, reflect.Type, bool) {
	if len(r.pending) == 0 {
		return "", nil, false
	}
	id := r.pending[0]
	r.pending = r.pending[1:]
	return id, r.types[id], true
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
