package kinopenapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/erraggy/oastypes/generator"
	"github.com/erraggy/oastypes/schema"
)

// DefaultOpenAPIVersion is the OAS version Document declares.
const DefaultOpenAPIVersion = "3.0.3"

// SchemaRef converts one schema node. Reference nodes keep their $ref and are
// left unresolved.
func SchemaRef(s *schema.Schema) (*openapi3.SchemaRef, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("kinopenapi: encoding schema: %w", err)
	}
	ref := &openapi3.SchemaRef{}
	if err := ref.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("kinopenapi: decoding schema: %w", err)
	}
	return ref, nil
}

// Components converts every definition in repo, keyed by schema identifier.
// The repository should be finalized first so that no reference dangles.
func Components(repo *generator.Repository) (openapi3.Schemas, error) {
	if pending := repo.Pending(); pending > 0 {
		return nil, fmt.Errorf("kinopenapi: repository has %d pending definitions", pending)
	}
	out := make(openapi3.Schemas, repo.Len())
	for _, id := range repo.IDs() {
		s, _ := repo.Lookup(id)
		ref, err := SchemaRef(s)
		if err != nil {
			return nil, fmt.Errorf("kinopenapi: schema %q: %w", id, err)
		}
		out[id] = ref
	}
	return out, nil
}

// Info is the document metadata Document writes.
type Info struct {
	Title   string
	Version string
}

// Document builds an OAS 3.0 document with the repository definitions as
// components, resolves its references and validates it.
func Document(ctx context.Context, repo *generator.Repository, info Info) (*openapi3.T, error) {
	schemas, err := Components(repo)
	if err != nil {
		return nil, err
	}
	doc := &openapi3.T{
		OpenAPI: DefaultOpenAPIVersion,
		Info: &openapi3.Info{
			Title:   info.Title,
			Version: info.Version,
		},
		Components: &openapi3.Components{
			Schemas: schemas,
		},
		Paths: openapi3.NewPaths(),
	}

	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("kinopenapi: encoding document: %w", err)
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loaded, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("kinopenapi: loading document: %w", err)
	}
	if err := loaded.Validate(ctx); err != nil {
		return nil, fmt.Errorf("kinopenapi: invalid document: %w", err)
	}
	return loaded, nil
}
