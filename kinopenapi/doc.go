// Package kinopenapi exports generated schemas as kin-openapi values.
//
// Document assemblers built on github.com/getkin/kin-openapi can take the
// definitions of a finalized repository directly:
//
//	repo := generator.NewRepository()
//	if _, err := gen.GenerateSchema(ctx, reflect.TypeFor[Order](), repo); err != nil {
//		return err
//	}
//	if err := gen.Finalize(ctx, repo); err != nil {
//		return err
//	}
//	schemas, err := kinopenapi.Components(repo)
//
// Document goes one step further and returns a validated OAS 3.0 document
// whose references are resolved by the kin-openapi loader.
package kinopenapi
