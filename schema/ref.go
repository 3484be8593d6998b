package schema

import (
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// Reference prefixes for the two common definition locations.
const (
	// ComponentsPrefix is where OAS 3.x documents keep reusable schemas.
	ComponentsPrefix = "#/components/schemas/"
	// DefinitionsPrefix is where OAS 2.0 documents keep reusable schemas.
	DefinitionsPrefix = "#/definitions/"
)

// NewRef returns a reference node pointing at id under prefix.
// The id is escaped as a JSON pointer token.
func NewRef(prefix, id string) *Schema {
	return &Schema{Ref: prefix + jsonpointer.Escape(id)}
}

// RefID extracts the schema identifier from a reference produced by NewRef.
// It returns the empty string for refs that are not local definition pointers.
func RefID(ref string) string {
	idx := strings.LastIndex(ref, "/")
	if !strings.HasPrefix(ref, "#/") || idx < 0 {
		return ""
	}
	return jsonpointer.Unescape(ref[idx+1:])
}
