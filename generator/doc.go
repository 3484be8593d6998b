// Package generator compiles Go types into OpenAPI schemas.
//
// A Generator classifies each type through a contract.Resolver, maps
// primitives and enums to type and format pairs, and stores complex types in
// a Repository as named definitions that every call site references. The
// identifier of a type is reserved before its definition is built, so
// self-referential and mutually referential types produce a finite graph.
//
// # Quick Start
//
//	gen, err := generator.New(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	repo := generator.NewRepository()
//	root, err := gen.GenerateSchema(ctx, reflect.TypeFor[Order](), repo)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// root is {$ref: "#/components/schemas/Order"}; repo holds Order and
//	// every type it references.
//
// # Shapes
//
// Types are classified in this order:
//   - a custom mapping registered with WithTypeMapping or MapType
//   - primitives: bool, numbers, strings, time.Time, uuid.UUID, decimal.Decimal
//   - enums: types implementing contract.Enumer or registered on the resolver
//   - maps: additionalProperties, or one property per member for enum keys
//   - slices, arrays and map[K]struct{} sets
//   - structs and polymorphic interfaces
//   - anything else is an open schema without a type
//
// # Composition
//
// CompositionFlatten (default) lists inherited and declared members together.
// CompositionAllOf references the base through allOf. CompositionOneOf
// describes a base with known subtypes as a oneOf plus a discriminator, and
// CompositionOneOfAllOf combines the two.
//
// # Filters
//
// SchemaFilter, ModelFilter and RepositoryFilter mutate generated schemas.
// Filters receive a FilterContext whose GenerateSchema reserves further
// definitions in the same repository. The first filter error aborts the
// request with a *oaserrors.FilterError.
//
// # Errors
//
// Identifier conflicts between distinct types are fatal
// (*oaserrors.SchemaConflictError); switch to SchemaNamingFullyQualified to
// avoid them. Types that cannot be classified are not errors.
package generator
