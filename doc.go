// Package oastypes compiles Go types into OpenAPI 3.0 schema definitions.
//
// A generator walks a type graph and produces one schema per request. Named
// object and enum types become definitions in a shared repository and are
// referenced with $ref, while primitives, arrays and dictionaries are
// inlined. Recursive graphs are handled by reserving an identifier before a
// type is expanded.
//
// # Packages
//
//   - schema: the Schema node model and its JSON/YAML encoding
//   - contract: resolution of Go types into language-neutral contracts
//   - generator: the schema generator, its repository, filters and config
//   - kinopenapi: export of a repository as kin-openapi components
//   - oaserrors: error types shared by all packages
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
//	if err := gen.Finalize(ctx, repo); err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(root.Ref) // #/components/schemas/Order
//
// Member shapes come from struct tags: json for names and omission, oas for
// schema metadata such as description=, pattern= or readOnly=true, validate
// for go-playground/validator rules such as required, min and max, and
// default for default values.
//
// # Configuration
//
// Generators can be configured in code with generator options or from a
// YAML file with generator.LoadConfig. See examples/orders for a runnable
// program.
package oastypes
