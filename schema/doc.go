// Package schema defines the schema graph produced by the oastypes generator.
//
// Import path: github.com/erraggy/oastypes/schema
//
// A [Schema] describes the JSON shape of a value: its type, format, properties,
// composition and validation constraints. Complex types are not embedded
// repeatedly; instead a [Schema] whose Ref is set stands in for a definition
// stored elsewhere under an identifier (see the generator package's Repository).
//
// # Kinds
//
// [Kind] mirrors the JSON Schema primitive types. [KindOpen] is the empty kind
// and means "no type constraint", which is what fully dynamic values such as
// `any` produce.
//
// # Property Order
//
// [Properties] preserves insertion order, so a struct's fields appear in
// declaration order when a schema is marshaled to JSON or YAML.
//
// # References
//
// References are JSON pointers built from a prefix and an identifier:
//
//	ref := schema.NewRef(schema.ComponentsPrefix, "Order")
//	// ref.Ref == "#/components/schemas/Order"
//	schema.RefID(ref.Ref) // "Order"
//
// The package does not define a document format; callers embed schemas in
// whatever document model they assemble.
package schema
