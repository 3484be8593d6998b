package schema

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/copystructure"
)

// copyConfig is set in init: its Properties copier recurses into Copy, which
// reads copyConfig.
var copyConfig copystructure.Config

func init() {
	copyConfig = copystructure.Config{
		Copiers: map[reflect.Type]copystructure.CopierFunc{
			reflect.TypeOf(Properties{}): copyProperties,
		},
	}
}

func copyProperties(v any) (any, error) {
	src := v.(Properties)
	dst := Properties{
		names:  make([]string, 0, len(src.names)),
		values: make(map[string]*Schema, len(src.values)),
	}
	for _, name := range src.names {
		dup, err := src.values[name].Copy()
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		dst.names = append(dst.names, name)
		dst.values[name] = dup
	}
	return dst, nil
}

// Copy returns a deep copy of s. It fails only when Default, Example or an
// extension holds a value copystructure cannot copy.
func (s *Schema) Copy() (*Schema, error) {
	if s == nil {
		return nil, nil
	}
	dup, err := copyConfig.Copy(s)
	if err != nil {
		return nil, fmt.Errorf("schema: copy: %w", err)
	}
	return dup.(*Schema), nil
}

// Clone is Copy for schemas known to be copyable, such as those the
// generator builds. It panics if Copy fails.
func (s *Schema) Clone() *Schema {
	dup, err := s.Copy()
	if err != nil {
		panic(err)
	}
	return dup
}
