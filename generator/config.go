package generator

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/imdario/mergo"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastypes/contract"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/schema"
)

// Config is the file form of the generator options. Fields left empty take
// the values of DefaultConfig.
//
//	naming:
//	  strategy: fullyQualified
//	  generic:
//	    strategy: of
//	composition: oneOfAllOf
//	discriminator:
//	  property: kind
//	enums:
//	  naming: camelCaseString
type Config struct {
	Naming         NamingConfig        `yaml:"naming"`
	Composition    string              `yaml:"composition" validate:"oneof=flatten allOf oneOf oneOfAllOf"`
	Discriminator  DiscriminatorConfig `yaml:"discriminator"`
	Enums          EnumConfig          `yaml:"enums"`
	IgnoreObsolete bool                `yaml:"ignoreObsolete"`
	WrapReferences bool                `yaml:"wrapReferences"`
	RefPrefix      string              `yaml:"refPrefix" validate:"required,startswith=#/"`
}

// NamingConfig selects how schema identifiers are built. A template takes
// priority over the strategy.
type NamingConfig struct {
	Strategy string        `yaml:"strategy" validate:"oneof=type fullyQualified package pascal camel snake kebab"`
	Template string        `yaml:"template"`
	Generic  GenericConfig `yaml:"generic"`
}

// GenericConfig is the file form of GenericNamingConfig.
type GenericConfig struct {
	Strategy       string `yaml:"strategy" validate:"oneof=prefixed underscore of for flattened"`
	Separator      string `yaml:"separator"`
	IncludePackage bool   `yaml:"includePackage"`
}

// DiscriminatorConfig names the discriminator property of polymorphic
// schemas.
type DiscriminatorConfig struct {
	Property string `yaml:"property" validate:"required"`
}

// EnumConfig controls enum emission.
type EnumConfig struct {
	Naming string `yaml:"naming" validate:"oneof=integer string camelCaseString"`
	Inline bool   `yaml:"inline"`
}

var (
	compositionNames = map[string]Composition{
		"flatten":    CompositionFlatten,
		"allOf":      CompositionAllOf,
		"oneOf":      CompositionOneOf,
		"oneOfAllOf": CompositionOneOfAllOf,
	}
	namingNames = map[string]SchemaNamingStrategy{
		"type":           SchemaNamingTypeOnly,
		"fullyQualified": SchemaNamingFullyQualified,
		"package":        SchemaNamingPackage,
		"pascal":         SchemaNamingPascalCase,
		"camel":          SchemaNamingCamelCase,
		"snake":          SchemaNamingSnakeCase,
		"kebab":          SchemaNamingKebabCase,
	}
	genericNames = map[string]GenericNamingStrategy{
		"prefixed":   GenericNamingPrefixed,
		"underscore": GenericNamingUnderscore,
		"of":         GenericNamingOf,
		"for":        GenericNamingFor,
		"flattened":  GenericNamingFlattened,
	}
	enumNamingNames = map[string]EnumNaming{
		"integer":         EnumNamingInteger,
		"string":          EnumNamingString,
		"camelCaseString": EnumNamingCamelCaseString,
	}
)

// configValidator checks Config struct tags. Field names in its errors are
// the yaml keys.
var configValidator = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	return v
}()

// DefaultConfig returns the configuration equivalent to New without options.
func DefaultConfig() *Config {
	return &Config{
		Naming: NamingConfig{
			Strategy: "type",
			Generic:  GenericConfig{Strategy: "prefixed"},
		},
		Composition:   "flatten",
		Discriminator: DiscriminatorConfig{Property: DefaultDiscriminatorName},
		Enums:         EnumConfig{Naming: "integer"},
		RefPrefix:     schema.ComponentsPrefix,
	}
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("generator: reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration, fills unset fields from
// DefaultConfig and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &oaserrors.ConfigError{Option: "file", Message: "invalid YAML", Cause: err}
	}
	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return nil, &oaserrors.ConfigError{Option: "file", Message: "cannot apply defaults", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration. Failures are *oaserrors.ConfigError
// naming the first offending key.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &oaserrors.ConfigError{
			Option:  strings.TrimPrefix(fe.Namespace(), "Config."),
			Value:   fe.Value(),
			Message: "failed " + fe.Tag() + " validation",
			Cause:   err,
		}
	}
	return &oaserrors.ConfigError{Option: "file", Cause: err}
}

// Options converts the configuration into generator options. Selectors,
// filters and type mappings have no file form and are added in code.
func (c *Config) Options() []Option {
	discriminator := c.Discriminator.Property
	opts := []Option{
		WithSchemaNaming(namingNames[c.Naming.Strategy]),
		WithGenericNamingConfig(GenericNamingConfig{
			Strategy:       genericNames[c.Naming.Generic.Strategy],
			ParamSeparator: c.Naming.Generic.Separator,
			IncludePackage: c.Naming.Generic.IncludePackage,
		}),
		WithComposition(compositionNames[c.Composition]),
		WithDiscriminatorName(func(*contract.Contract) string { return discriminator }),
		WithEnumNaming(enumNamingNames[c.Enums.Naming]),
		WithInlineEnums(c.Enums.Inline),
		WithIgnoreObsolete(c.IgnoreObsolete),
		WithWrapReferences(c.WrapReferences),
		WithRefPrefix(c.RefPrefix),
	}
	if c.Naming.Template != "" {
		opts = append(opts, WithSchemaNameTemplate(c.Naming.Template))
	}
	return opts
}
