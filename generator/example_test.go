package generator_test

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"slices"

	"github.com/erraggy/oastypes/generator"
	"github.com/erraggy/oastypes/schema"
)

// Pet represents a pet in the store.
type Pet struct {
	ID    int64  `json:"id" oas:"description=Unique pet identifier"`
	Name  string `json:"name" validate:"min=1"`
	Tag   string `json:"tag,omitempty"`
	Owner *Owner `json:"owner,omitempty"`
}

// Owner represents the person a pet belongs to.
type Owner struct {
	Name string `json:"name"`
}

// Example demonstrates generating the schemas of a type graph.
func Example() {
	gen, err := generator.New(nil)
	if err != nil {
		log.Fatal(err)
	}
	repo := generator.NewRepository()

	root, err := gen.GenerateSchema(context.Background(), reflect.TypeFor[Pet](), repo)
	if err != nil {
		log.Fatal(err)
	}
	if err := gen.Finalize(context.Background(), repo); err != nil {
		log.Fatal(err)
	}

	pet, _ := repo.Lookup("Pet")
	required := slices.Clone(pet.Required)
	slices.Sort(required)

	fmt.Printf("Root: %s\n", root.Ref)
	fmt.Printf("Schemas: %v\n", repo.IDs())
	fmt.Printf("Properties: %v\n", pet.Properties.Names())
	fmt.Printf("Required: %v\n", required)
	fmt.Printf("Owner: %s\n", pet.Property("owner").Ref)
	// Output:
	// Root: #/components/schemas/Pet
	// Schemas: [Pet Owner]
	// Properties: [id name tag owner]
	// Required: [id name]
	// Owner: #/components/schemas/Owner
}

// Example_schemaFilter demonstrates tagging every definition with its Go type.
func Example_schemaFilter() {
	tagGoType := generator.SchemaFilterFunc(func(s *schema.Schema, fc *generator.FilterContext) error {
		if fc.SchemaID != "" {
			s.SetExtension("go-type", fc.Type.Name())
		}
		return nil
	})

	gen, err := generator.New(nil, generator.WithSchemaFilter(tagGoType))
	if err != nil {
		log.Fatal(err)
	}
	repo := generator.NewRepository()
	if _, err := gen.GenerateSchema(context.Background(), reflect.TypeFor[Pet](), repo); err != nil {
		log.Fatal(err)
	}

	for _, id := range repo.IDs() {
		s, _ := repo.Lookup(id)
		fmt.Printf("%s: %v\n", id, s.Extensions["x-go-type"])
	}
	// Output:
	// Pet: Pet
	// Owner: Owner
}

// Example_config demonstrates configuring a generator from YAML.
func Example_config() {
	cfg, err := generator.ParseConfig([]byte("naming:\n  template: \"{{ .TypeSanitized }}Schema\"\n"))
	if err != nil {
		log.Fatal(err)
	}
	gen, err := generator.New(nil, cfg.Options()...)
	if err != nil {
		log.Fatal(err)
	}
	repo := generator.NewRepository()
	if _, err := gen.GenerateSchema(context.Background(), reflect.TypeFor[Pet](), repo); err != nil {
		log.Fatal(err)
	}
	fmt.Println(repo.IDs())
	// Output:
	// [PetSchema OwnerSchema]
}
