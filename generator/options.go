package generator

import (
	"reflect"
	"text/template"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/erraggy/oastypes/contract"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/schema"
)

// Composition selects how inheritance and polymorphism are expressed.
type Composition int

const (
	// CompositionFlatten puts inherited and declared members in one property map.
	CompositionFlatten Composition = iota

	// CompositionAllOf keeps declared members on the derived schema and
	// references the base schema through allOf.
	CompositionAllOf

	// CompositionOneOf describes a polymorphic base as a oneOf of its subtypes
	// with a discriminator. Subtypes are flattened.
	CompositionOneOf

	// CompositionOneOfAllOf combines CompositionOneOf and CompositionAllOf.
	CompositionOneOfAllOf
)

// String returns the strategy name used in configuration files.
func (c Composition) String() string {
	switch c {
	case CompositionAllOf:
		return "allOf"
	case CompositionOneOf:
		return "oneOf"
	case CompositionOneOfAllOf:
		return "oneOfAllOf"
	default:
		return "flatten"
	}
}

func (c Composition) usesAllOf() bool {
	return c == CompositionAllOf || c == CompositionOneOfAllOf
}

func (c Composition) polymorphic() bool {
	return c == CompositionOneOf || c == CompositionOneOfAllOf
}

// EnumNaming selects how enum values are emitted.
type EnumNaming int

const (
	// EnumNamingInteger emits the underlying numeric values.
	EnumNamingInteger EnumNaming = iota
	// EnumNamingString emits the member names.
	EnumNamingString
	// EnumNamingCamelCaseString emits camel-cased member names.
	EnumNamingCamelCaseString
)

// DefaultDiscriminatorName is the discriminator property used when no
// selector is configured.
const DefaultDiscriminatorName = "$type"

// SubTypesSelector returns the known subtypes of a polymorphic base.
type SubTypesSelector func(base *contract.Contract) []reflect.Type

// DiscriminatorNameSelector returns the discriminator property name of a base.
type DiscriminatorNameSelector func(base *contract.Contract) string

// DiscriminatorValueSelector returns the discriminator value of a subtype
// stored under id.
type DiscriminatorValueSelector func(subType *contract.Contract, id string) string

// Option configures a Generator. Options are applied by New and the resulting
// configuration is read-only afterwards.
type Option func(*config)

// config holds generator configuration applied via options.
type config struct {
	mappings map[reflect.Type]*schema.Schema

	schemaFilters     []SchemaFilter
	modelFilters      []ModelFilter
	repositoryFilters []RepositoryFilter

	namingStrategy SchemaNamingStrategy
	namingTemplate *template.Template
	namingFunc     SchemaNameFunc
	genericConfig  GenericNamingConfig

	composition        Composition
	subTypes           SubTypesSelector
	discriminatorName  DiscriminatorNameSelector
	discriminatorValue DiscriminatorValueSelector

	enumNaming     EnumNaming
	inlineEnums    bool
	ignoreObsolete bool
	wrapReferences bool
	refPrefix      string

	logger         Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	// errs collects option errors for New to return
	errs []error
}

// defaultConfig returns a new config with default values.
func defaultConfig() *config {
	return &config{
		mappings:      make(map[reflect.Type]*schema.Schema),
		genericConfig: DefaultGenericNamingConfig(),
		subTypes: func(base *contract.Contract) []reflect.Type {
			return base.SubTypes
		},
		discriminatorName: func(*contract.Contract) string {
			return DefaultDiscriminatorName
		},
		discriminatorValue: func(_ *contract.Contract, id string) string {
			return id
		},
		refPrefix: schema.ComponentsPrefix,
		logger:    NopLogger{},
	}
}

// WithTypeMapping maps t to a fixed schema, bypassing classification. Every
// call site receives its own deep copy of proto.
func WithTypeMapping(t reflect.Type, proto *schema.Schema) Option {
	return func(cfg *config) {
		if t == nil || proto == nil {
			cfg.errs = append(cfg.errs, &oaserrors.ConfigError{Option: "TypeMapping", Message: "type and schema are required"})
			return
		}
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		dup, err := proto.Copy()
		if err != nil {
			cfg.errs = append(cfg.errs, &oaserrors.ConfigError{Option: "TypeMapping", Value: typeString(t), Message: "schema cannot be copied", Cause: err})
			return
		}
		cfg.mappings[t] = dup
	}
}

// MapType is WithTypeMapping for the type parameter T.
func MapType[T any](proto *schema.Schema) Option {
	return WithTypeMapping(reflect.TypeFor[T](), proto)
}

// WithSchemaFilter appends schema filters, run on every generated schema in
// registration order.
func WithSchemaFilter(filters ...SchemaFilter) Option {
	return func(cfg *config) {
		cfg.schemaFilters = append(cfg.schemaFilters, filters...)
	}
}

// WithModelFilter appends model filters, run on object schemas before the
// schema filters.
func WithModelFilter(filters ...ModelFilter) Option {
	return func(cfg *config) {
		cfg.modelFilters = append(cfg.modelFilters, filters...)
	}
}

// WithRepositoryFilter appends repository filters, run by Finalize.
func WithRepositoryFilter(filters ...RepositoryFilter) Option {
	return func(cfg *config) {
		cfg.repositoryFilters = append(cfg.repositoryFilters, filters...)
	}
}

// WithSchemaNaming sets a built-in schema naming strategy.
// The default is SchemaNamingTypeOnly.
//
// Setting a naming strategy clears any previously set template or custom function.
func WithSchemaNaming(strategy SchemaNamingStrategy) Option {
	return func(cfg *config) {
		cfg.namingStrategy = strategy
		cfg.namingTemplate = nil
		cfg.namingFunc = nil
	}
}

// WithSchemaNameTemplate sets a text/template for schema identifiers. The
// template receives a SchemaNameContext and can use the sprig functions plus
// pascal, camel, snake, kebab, title and sanitize:
//
//	generator.WithSchemaNameTemplate(`{{.Package | pascal}}{{.TypeSanitized}}`)
//
// An invalid template makes New fail with a *oaserrors.ConfigError.
func WithSchemaNameTemplate(tmpl string) Option {
	return func(cfg *config) {
		t, err := parseSchemaNameTemplate(tmpl)
		if err != nil {
			cfg.errs = append(cfg.errs, &oaserrors.ConfigError{Option: "SchemaNameTemplate", Value: tmpl, Cause: err})
			return
		}
		cfg.namingTemplate = t
		cfg.namingFunc = nil
	}
}

// WithSchemaNameFunc sets a custom naming function. It takes priority over
// templates and built-in strategies.
func WithSchemaNameFunc(fn SchemaNameFunc) Option {
	return func(cfg *config) {
		cfg.namingFunc = fn
		cfg.namingTemplate = nil
	}
}

// WithGenericNaming sets the generic naming strategy.
func WithGenericNaming(strategy GenericNamingStrategy) Option {
	return func(cfg *config) {
		cfg.genericConfig.Strategy = strategy
	}
}

// WithGenericNamingConfig replaces the whole generic naming configuration.
func WithGenericNamingConfig(gc GenericNamingConfig) Option {
	return func(cfg *config) {
		cfg.genericConfig = gc
	}
}

// WithComposition selects the inheritance and polymorphism strategy.
func WithComposition(c Composition) Option {
	return func(cfg *config) {
		cfg.composition = c
	}
}

// WithSubTypesSelector overrides how the subtypes of a base are found.
func WithSubTypesSelector(fn SubTypesSelector) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.subTypes = fn
		}
	}
}

// WithDiscriminatorName overrides the discriminator property name.
func WithDiscriminatorName(fn DiscriminatorNameSelector) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.discriminatorName = fn
		}
	}
}

// WithDiscriminatorValue overrides the discriminator value of subtypes.
func WithDiscriminatorValue(fn DiscriminatorValueSelector) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.discriminatorValue = fn
		}
	}
}

// WithEnumNaming selects integer or name-based enum values.
func WithEnumNaming(n EnumNaming) Option {
	return func(cfg *config) {
		cfg.enumNaming = n
	}
}

// WithInlineEnums embeds enum schemas instead of storing and referencing them.
func WithInlineEnums(inline bool) Option {
	return func(cfg *config) {
		cfg.inlineEnums = inline
	}
}

// WithIgnoreObsolete drops deprecated members from object schemas.
func WithIgnoreObsolete(ignore bool) Option {
	return func(cfg *config) {
		cfg.ignoreObsolete = ignore
	}
}

// WithWrapReferences wraps a reference in allOf when member metadata such as a
// description or nullability must be attached next to it.
func WithWrapReferences(wrap bool) Option {
	return func(cfg *config) {
		cfg.wrapReferences = wrap
	}
}

// WithRefPrefix sets the location references point to. The default is
// schema.ComponentsPrefix.
func WithRefPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.refPrefix = prefix
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithTracerProvider sets a custom tracer provider. The global provider is
// used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *config) {
		cfg.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom meter provider. The global provider is used
// by default.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *config) {
		cfg.meterProvider = mp
	}
}

// validate reports option errors and inconsistent settings.
func (cfg *config) validate() error {
	if len(cfg.errs) > 0 {
		return cfg.errs[0]
	}
	if cfg.refPrefix == "" {
		return &oaserrors.ConfigError{Option: "RefPrefix", Message: "must not be empty"}
	}
	if cfg.composition < CompositionFlatten || cfg.composition > CompositionOneOfAllOf {
		return &oaserrors.ConfigError{Option: "Composition", Value: int(cfg.composition), Message: "unknown strategy"}
	}
	if cfg.enumNaming < EnumNamingInteger || cfg.enumNaming > EnumNamingCamelCaseString {
		return &oaserrors.ConfigError{Option: "EnumNaming", Value: int(cfg.enumNaming), Message: "unknown naming"}
	}
	return nil
}
