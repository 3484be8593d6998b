package generator

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/oastypes/contract"
	"github.com/erraggy/oastypes/internal/naming"
)

// SchemaNamingStrategy defines built-in schema identifier conventions.
// Use these with WithSchemaNaming to control how identifiers are generated
// from Go types.
type SchemaNamingStrategy int

const (
	// SchemaNamingTypeOnly uses just "TypeName" without package (default).
	// Example: orders.Order -> Order
	// Same-named types in different packages conflict; see SchemaNamingFullyQualified.
	SchemaNamingTypeOnly SchemaNamingStrategy = iota

	// SchemaNamingFullyQualified uses the sanitized package path.
	// Example: orders.Order -> github.com_acme_orders_Order
	SchemaNamingFullyQualified

	// SchemaNamingPackage uses "package.TypeName" format.
	// Example: orders.Order -> orders.Order
	SchemaNamingPackage

	// SchemaNamingPascalCase uses "PackageTypeName" format.
	// Example: orders.Order -> OrdersOrder
	SchemaNamingPascalCase

	// SchemaNamingCamelCase uses "packageTypeName" format.
	// Example: orders.Order -> ordersOrder
	SchemaNamingCamelCase

	// SchemaNamingSnakeCase uses "package_type_name" format.
	// Example: orders.Order -> orders_order
	SchemaNamingSnakeCase

	// SchemaNamingKebabCase uses "package-type-name" format.
	// Example: orders.Order -> orders-order
	SchemaNamingKebabCase
)

// GenericNamingStrategy defines how type arguments of generic instantiations
// appear in identifiers.
type GenericNamingStrategy int

const (
	// GenericNamingPrefixed puts the argument names before the base name (default).
	// Example: GenericType[bool,int32] -> BoolInt32GenericType
	GenericNamingPrefixed GenericNamingStrategy = iota

	// GenericNamingUnderscore replaces brackets with underscores.
	// Example: Response[User] -> Response_User
	GenericNamingUnderscore

	// GenericNamingOf uses "Of" separator between base type and parameters.
	// Example: Response[User] -> ResponseOfUser
	GenericNamingOf

	// GenericNamingFor uses "For" separator.
	// Example: Response[User] -> ResponseForUser
	GenericNamingFor

	// GenericNamingFlattened removes brackets entirely.
	// Example: Response[User] -> ResponseUser
	GenericNamingFlattened
)

// GenericNamingConfig provides fine-grained control over generic type naming.
type GenericNamingConfig struct {
	// Strategy is the primary generic naming approach.
	Strategy GenericNamingStrategy

	// ParamSeparator is used between multiple type parameters.
	// Example with ParamSeparator="And" and GenericNamingOf:
	// Map[string,int] -> MapOfStringAndOfInt
	ParamSeparator string

	// IncludePackage keeps the type parameter's package in the name.
	// Example: Response[models.User] -> Response_models_User
	IncludePackage bool
}

// DefaultGenericNamingConfig returns the default generic naming configuration.
func DefaultGenericNamingConfig() GenericNamingConfig {
	return GenericNamingConfig{Strategy: GenericNamingPrefixed}
}

// SchemaNameContext provides type metadata for custom naming templates
// and functions.
type SchemaNameContext struct {
	// Type is the Go type name without package, including type arguments.
	Type string

	// TypeSanitized is Type with type arguments formatted per GenericNamingStrategy.
	TypeSanitized string

	// TypeBase is the base type name without generic parameters (e.g., "Response").
	TypeBase string

	// Package is the package base name (e.g., "models").
	Package string

	// PackagePath is the full import path (e.g., "github.com/org/models").
	PackagePath string

	// PackagePathSanitized is PackagePath with slashes replaced
	// (e.g., "github.com_org_models").
	PackagePathSanitized string

	// IsGeneric indicates if the type is a generic instantiation.
	IsGeneric bool

	// GenericParams contains the type arguments without package paths.
	GenericParams []string

	// GenericParamsSanitized contains the formatted type arguments.
	GenericParamsSanitized []string

	// IsAnonymous indicates if this is an anonymous type.
	IsAnonymous bool

	// Kind is the contract kind (e.g., "object", "enum").
	Kind string
}

// SchemaNameFunc is the signature for custom schema naming functions.
// Returning the empty string for a named object is a contract error.
type SchemaNameFunc func(ctx SchemaNameContext) string

// schemaNamer handles schema identifier generation with configurable strategies.
type schemaNamer struct {
	strategy      SchemaNamingStrategy
	genericConfig GenericNamingConfig
	template      *template.Template
	fn            SchemaNameFunc
	logger        Logger
}

// name generates an identifier for the contract.
// Priority: custom function > template > built-in strategy.
func (n *schemaNamer) name(c *contract.Contract) string {
	ctx := n.buildContext(c)

	if n.fn != nil {
		return n.fn(ctx)
	}

	if n.template != nil {
		var buf strings.Builder
		if err := n.template.Execute(&buf, ctx); err != nil {
			n.logger.Warn("schema name template failed, using naming strategy", "type", c.Name.String(), "error", err)
			return n.applyStrategy(ctx)
		}
		return sanitizeSchemaName(buf.String())
	}

	return n.applyStrategy(ctx)
}

// conflictHint suggests how to separate two types that received the same
// identifier under the current naming configuration.
func (n *schemaNamer) conflictHint() string {
	switch {
	case n.fn != nil:
		return "make the schema name function return distinct identifiers for distinct types"
	case n.template != nil:
		return "include {{.PackagePathSanitized}} in the schema name template or use a custom naming function"
	case n.strategy == SchemaNamingFullyQualified:
		return "use a custom naming function (WithSchemaNameFunc) to disambiguate"
	default:
		return "use SchemaNamingFullyQualified or a custom naming function to disambiguate"
	}
}

// buildContext creates a SchemaNameContext from a contract.
func (n *schemaNamer) buildContext(c *contract.Contract) SchemaNameContext {
	tn := c.Name
	ctx := SchemaNameContext{
		Type:                 tn.Name,
		TypeBase:             tn.Base,
		Package:              tn.Package,
		PackagePath:          tn.PackagePath,
		PackagePathSanitized: sanitizePath(tn.PackagePath),
		IsAnonymous:          tn.Anonymous,
		IsGeneric:            tn.IsGeneric(),
		Kind:                 c.Kind.String(),
	}
	if ctx.IsAnonymous {
		return ctx
	}
	if !ctx.IsGeneric {
		ctx.TypeSanitized = tn.Name
		return ctx
	}

	ctx.GenericParams = make([]string, len(tn.TypeArgs))
	for i, arg := range tn.TypeArgs {
		ctx.GenericParams[i] = shortTypeName(arg)
	}
	ctx.GenericParamsSanitized = n.sanitizeGenericParams(tn.TypeArgs, ctx.GenericParams)
	ctx.Type = tn.Base + "[" + strings.Join(ctx.GenericParams, ",") + "]"
	ctx.TypeSanitized = n.formatGeneric(tn.Base, ctx.GenericParamsSanitized)
	return ctx
}

// sanitizeGenericParams formats type arguments for the configured strategy.
// Fully qualified naming and IncludePackage keep each argument's package path
// so that instantiations over same-named types stay distinct.
func (n *schemaNamer) sanitizeGenericParams(full, short []string) []string {
	qualify := n.strategy == SchemaNamingFullyQualified || n.genericConfig.IncludePackage
	result := make([]string, len(short))
	for i, param := range short {
		if qualify {
			param = full[i]
		}
		switch {
		case n.genericConfig.Strategy == GenericNamingPrefixed:
			param = prefixedName(param)
		case qualify:
			param = sanitizeSchemaName(strings.NewReplacer("/", "_", ".", "_").Replace(param))
		default:
			param = sanitizeSchemaName(param)
		}
		result[i] = param
	}
	return result
}

// formatGeneric joins the base name and formatted parameters.
func (n *schemaNamer) formatGeneric(base string, params []string) string {
	sep := n.genericConfig.ParamSeparator
	switch n.genericConfig.Strategy {
	case GenericNamingUnderscore:
		if sep == "" {
			sep = "_"
		}
		return base + "_" + strings.Join(params, sep)
	case GenericNamingOf:
		return base + "Of" + strings.Join(params, sep+"Of")
	case GenericNamingFor:
		return base + "For" + strings.Join(params, sep+"For")
	case GenericNamingFlattened:
		return base + strings.Join(params, sep)
	default: // GenericNamingPrefixed
		return strings.Join(params, sep) + base
	}
}

// applyStrategy applies a built-in naming strategy. Anonymous types have no
// identifier.
func (n *schemaNamer) applyStrategy(ctx SchemaNameContext) string {
	if ctx.IsAnonymous {
		return ""
	}

	switch n.strategy {
	case SchemaNamingFullyQualified:
		if ctx.PackagePathSanitized == "" {
			return ctx.TypeSanitized
		}
		return ctx.PackagePathSanitized + "_" + ctx.TypeSanitized

	case SchemaNamingPackage:
		if ctx.Package == "" {
			return ctx.TypeSanitized
		}
		return ctx.Package + "." + ctx.TypeSanitized

	case SchemaNamingPascalCase:
		return naming.ToPascalCase(ctx.Package) + naming.ToPascalCase(ctx.TypeSanitized)

	case SchemaNamingCamelCase:
		return naming.ToCamelCase(ctx.Package) + naming.ToPascalCase(ctx.TypeSanitized)

	case SchemaNamingSnakeCase:
		return joinNonEmpty("_", naming.ToSnakeCase(ctx.Package), naming.ToSnakeCase(ctx.TypeSanitized))

	case SchemaNamingKebabCase:
		return joinNonEmpty("-", naming.ToKebabCase(ctx.Package), naming.ToKebabCase(ctx.TypeSanitized))

	default: // SchemaNamingTypeOnly
		return ctx.TypeSanitized
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// shortTypeName strips package paths from every type in a type expression.
// Example: "github.com/x.Page[github.com/y.Order]" -> "Page[Order]"
// Example: "map[string]*github.com/y.Order" -> "map[string]*Order"
func shortTypeName(expr string) string {
	var (
		b       strings.Builder
		segment strings.Builder
	)
	flush := func() {
		s := segment.String()
		stars := len(s) - len(strings.TrimLeft(s, "*"))
		s = s[stars:]
		if idx := strings.LastIndex(s, "."); idx >= 0 {
			s = s[idx+1:]
		}
		b.WriteString(strings.Repeat("*", stars))
		b.WriteString(s)
		segment.Reset()
	}
	for _, r := range expr {
		switch r {
		case '[', ']', ',', ' ':
			flush()
			b.WriteRune(r)
		default:
			segment.WriteRune(r)
		}
	}
	flush()
	return b.String()
}

// prefixedName renders a short type expression with arguments first.
// Example: "Page[Order]" -> "OrderPage", "[]Order" -> "OrderArray"
func prefixedName(expr string) string {
	expr = strings.TrimLeft(expr, "*")
	switch {
	case strings.HasPrefix(expr, "[]"):
		return prefixedName(expr[2:]) + "Array"
	case strings.HasPrefix(expr, "map["):
		key, value := splitMapType(expr)
		return prefixedName(key) + prefixedName(value) + "Map"
	}

	idx := strings.IndexByte(expr, '[')
	if idx <= 0 || !strings.HasSuffix(expr, "]") {
		return titleCase(expr)
	}
	var b strings.Builder
	depth, start := 0, idx+1
	inner := expr[:len(expr)-1]
	for i := idx + 1; i < len(inner); i++ {
		switch inner[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				b.WriteString(prefixedName(strings.TrimSpace(inner[start:i])))
				start = i + 1
			}
		}
	}
	b.WriteString(prefixedName(strings.TrimSpace(inner[start:])))
	b.WriteString(titleCase(expr[:idx]))
	return b.String()
}

// splitMapType splits "map[K]V" into K and V.
func splitMapType(expr string) (string, string) {
	depth := 0
	for i := len("map["); i < len(expr); i++ {
		switch expr[i] {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return expr[len("map["):i], expr[i+1:]
			}
			depth--
		}
	}
	return expr, ""
}

// titleCase upper-cases the first letter of each word and drops separators.
func titleCase(s string) string {
	return naming.ToPascalCase(s)
}

// sanitizePath replaces path separators with underscores.
// Example: "github.com/org/models" -> "github.com_org_models"
func sanitizePath(s string) string {
	return strings.ReplaceAll(s, "/", "_")
}

// sanitizeSchemaName replaces characters that are problematic in URIs.
// Example: "Response[User]" -> "Response_User"
func sanitizeSchemaName(name string) string {
	name = strings.NewReplacer("[", "_", "]", "_", ",", "_", " ", "_", "*", "").Replace(name)
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	return strings.TrimSuffix(name, "_")
}

// templateFuncs returns the function map for schema name templates: the sprig
// text functions plus the case helpers used by the built-in strategies.
func templateFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["pascal"] = naming.ToPascalCase
	funcs["camel"] = naming.ToCamelCase
	funcs["snake"] = naming.ToSnakeCase
	funcs["kebab"] = naming.ToKebabCase
	funcs["sanitize"] = sanitizeSchemaName
	funcs["title"] = func(s string) string {
		return cases.Title(language.English, cases.NoLower).String(s)
	}
	return funcs
}

// parseSchemaNameTemplate parses and validates a schema name template.
// The template is validated by executing it with a sample context.
func parseSchemaNameTemplate(tmpl string) (*template.Template, error) {
	t, err := template.New("schemaName").Funcs(templateFuncs()).Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid schema name template: %w", err)
	}

	ctx := SchemaNameContext{
		Type:                 "TestType",
		TypeSanitized:        "TestType",
		TypeBase:             "TestType",
		Package:              "testpkg",
		PackagePath:          "github.com/test/testpkg",
		PackagePathSanitized: "github.com_test_testpkg",
		Kind:                 "object",
	}
	var buf strings.Builder
	if err := t.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("generator: schema name template execution failed: %w", err)
	}

	return t, nil
}
