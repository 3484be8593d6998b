package generator

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/erraggy/oastypes/contract"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/schema"
)

// Generator compiles Go types into schemas. It is immutable after New and
// may be shared across goroutines; every request brings its own Repository.
type Generator struct {
	resolver contract.Resolver
	cfg      *config
	namer    *schemaNamer
	logger   Logger
	tel      *telemetry
}

// New creates a Generator. A nil resolver selects
// contract.NewReflectResolver with default options.
//
// Example:
//
//	gen, err := generator.New(nil,
//		generator.WithComposition(generator.CompositionOneOfAllOf),
//		generator.WithEnumNaming(generator.EnumNamingCamelCaseString),
//	)
func New(resolver contract.Resolver, opts ...Option) (*Generator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if resolver == nil {
		resolver = contract.NewReflectResolver()
	}

	return &Generator{
		resolver: resolver,
		cfg:      cfg,
		namer: &schemaNamer{
			strategy:      cfg.namingStrategy,
			genericConfig: cfg.genericConfig,
			template:      cfg.namingTemplate,
			fn:            cfg.namingFunc,
			logger:        cfg.logger,
		},
		logger: cfg.logger,
		tel:    newTelemetry(cfg),
	}, nil
}

// GenerateOption describes where a generated schema is used.
type GenerateOption func(*site)

// ForMember applies the metadata of a struct member to the generated schema.
func ForMember(m contract.Member) GenerateOption {
	return func(s *site) {
		s.member = &m
	}
}

// ForParameter applies the metadata of an operation parameter to the
// generated schema.
func ForParameter(p contract.Parameter) GenerateOption {
	return func(s *site) {
		s.parameter = &p
	}
}

// site is the member or parameter a schema is generated for.
type site struct {
	member    *contract.Member
	parameter *contract.Parameter
}

// GenerateSchema returns the schema for t. Complex types are stored in repo
// and returned as references; every definition the request reserved is
// expanded before GenerateSchema returns.
//
// Errors are fatal for the request: identifier conflicts
// (*oaserrors.SchemaConflictError), filter failures (*oaserrors.FilterError)
// and resolver failures (*oaserrors.ContractError). A repository that saw an
// error must not be used to build a document.
func (g *Generator) GenerateSchema(ctx context.Context, t reflect.Type, repo *Repository, opts ...GenerateOption) (*schema.Schema, error) {
	if t == nil {
		return nil, &oaserrors.ContractError{Message: "type is required"}
	}
	if repo == nil {
		return nil, fmt.Errorf("generator: repository is required")
	}

	var st site
	for _, opt := range opts {
		opt(&st)
	}

	ctx, span := g.tel.start(ctx, "GenerateSchema", t)
	ss := g.newSession(ctx, repo, "root", typeString(t))
	s, err := ss.generate(t, st)
	if err == nil {
		err = ss.drain()
	}
	g.tel.end(span, repo, err)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Finalize drains repo and runs the repository filters over it. Call it once
// after the last GenerateSchema of a document.
func (g *Generator) Finalize(ctx context.Context, repo *Repository) error {
	if repo == nil {
		return fmt.Errorf("generator: repository is required")
	}
	ctx, span := g.tel.start(ctx, "Finalize", nil)
	ss := g.newSession(ctx, repo, "op", "finalize")
	err := ss.drain()
	if err == nil {
		err = ss.runRepositoryFilters()
	}
	g.tel.end(span, repo, err)
	if err != nil {
		return err
	}
	ss.log.Info("finalized repository", "definitions", repo.Len())
	return nil
}

// session carries the state of one GenerateSchema or Finalize call.
type session struct {
	ctx  context.Context
	g    *Generator
	repo *Repository
	log  Logger
}

func (g *Generator) newSession(ctx context.Context, repo *Repository, scope ...any) *session {
	return &session{ctx: ctx, g: g, repo: repo, log: withContext(g.logger, ctx).With(scope...)}
}

// resolve returns the contract of t, wrapping resolver failures.
func (ss *session) resolve(t reflect.Type) (*contract.Contract, error) {
	c, err := ss.g.resolver.Resolve(t)
	if err != nil {
		var ce *oaserrors.ContractError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &oaserrors.ContractError{Type: typeString(t), Message: "cannot resolve contract", Cause: err}
	}
	if c == nil {
		return nil, &oaserrors.ContractError{Type: typeString(t), Message: "resolver returned no contract"}
	}
	return c, nil
}

// generate produces the schema for t at a call site: inline schemas are
// filtered, then the member or parameter metadata is applied.
func (ss *session) generate(t reflect.Type, st site) (*schema.Schema, error) {
	fc := &FilterContext{
		Type:       t,
		Member:     st.member,
		Parameter:  st.parameter,
		Repository: ss.repo,
		session:    ss,
	}

	var (
		s        *schema.Schema
		c        *contract.Contract
		nullable bool
		err      error
	)
	if mt, ok := ss.g.mapping(t); ok {
		if s, err = ss.g.cfg.mappings[mt].Copy(); err != nil {
			return nil, fmt.Errorf("generator: mapping for %s: %w", typeString(mt), err)
		}
		nullable = mt != t
	} else {
		if c, err = ss.resolve(t); err != nil {
			return nil, err
		}
		fc.Contract = c
		if s, err = ss.schemaFor(c); err != nil {
			return nil, err
		}
		nullable = c.Nullable
	}

	if !s.IsRef() {
		if err := ss.runFilters(s, fc); err != nil {
			return nil, err
		}
	}
	return ss.applyMetadata(s, c, st, nullable), nil
}

// schemaFor builds the schema of a resolved contract. Stored shapes yield
// references.
func (ss *session) schemaFor(c *contract.Contract) (*schema.Schema, error) {
	sh, err := ss.classify(c)
	if err != nil {
		return nil, err
	}
	switch sh {
	case shapePrimitive:
		return primitiveSchema(c.DataType), nil

	case shapeEnum:
		if ss.g.cfg.inlineEnums {
			return ss.g.enumSchema(c), nil
		}
		return ss.reference(c)

	case shapeEnumKeyedObject:
		return ss.enumKeyedObject(c)

	case shapeDictionary:
		value, err := ss.generate(c.Elem, site{})
		if err != nil {
			return nil, err
		}
		return &schema.Schema{Type: schema.KindObject, AdditionalProperties: value}, nil

	case shapeArray:
		items, err := ss.generate(c.Elem, site{})
		if err != nil {
			return nil, err
		}
		return &schema.Schema{Type: schema.KindArray, Items: items, UniqueItems: c.UniqueItems}, nil

	case shapeObject:
		return ss.objectSchema(c)

	default:
		if c.Kind != contract.KindOpen {
			ss.log.Warn("unclassifiable contract, using open schema", "type", typeString(c.Type), "kind", c.Kind.String())
		}
		return &schema.Schema{Description: c.Description}, nil
	}
}

// reference returns a reference to the definition of c, reserving its
// identifier on first use. The definition is built when the repository is
// drained, so a type that refers to itself receives a plain reference.
func (ss *session) reference(c *contract.Contract) (*schema.Schema, error) {
	if id, ok := ss.repo.IDFor(c.Type); ok {
		return schema.NewRef(ss.g.cfg.refPrefix, id), nil
	}

	id := ss.g.namer.name(c)
	if id == "" {
		return nil, &oaserrors.ContractError{
			Type:    typeString(c.Type),
			Message: "no schema identifier for " + c.Kind.String(),
		}
	}

	created, err := ss.repo.reserve(c.Type, id)
	if err != nil {
		ss.g.tel.conflict(ss.ctx, id)
		var conflict *oaserrors.SchemaConflictError
		if errors.As(err, &conflict) {
			conflict.Hint = ss.g.namer.conflictHint()
		}
		return nil, err
	}
	if created {
		ss.log.Debug("reserved schema id", "id", id, "type", typeString(c.Type))
	}
	return schema.NewRef(ss.g.cfg.refPrefix, id), nil
}

// drain expands reserved identifiers until none are pending. Expansions and
// filters may reserve more, so the queue is re-checked every iteration.
func (ss *session) drain() error {
	for {
		id, t, ok := ss.repo.next()
		if !ok {
			return nil
		}
		ss.log.Debug("expanding schema", "id", id, "pending", ss.repo.Pending())

		s, err := ss.expand(id, t)
		if err != nil {
			return fmt.Errorf("generator: expanding %s: %w", id, err)
		}
		ss.repo.store(id, s)
		ss.g.tel.schemaStored(ss.ctx, id)
	}
}

// expand builds and filters the definition stored under id.
func (ss *session) expand(id string, t reflect.Type) (*schema.Schema, error) {
	c, err := ss.resolve(t)
	if err != nil {
		return nil, err
	}

	var s *schema.Schema
	switch c.Kind {
	case contract.KindEnum:
		s = ss.g.enumSchema(c)
	case contract.KindObject:
		if s, err = ss.buildObject(c); err != nil {
			return nil, err
		}
	default:
		if s, err = ss.schemaFor(c); err != nil {
			return nil, err
		}
	}

	fc := &FilterContext{
		Type:       t,
		Contract:   c,
		SchemaID:   id,
		Repository: ss.repo,
		session:    ss,
	}
	if err := ss.runFilters(s, fc); err != nil {
		return nil, err
	}
	return s, nil
}
