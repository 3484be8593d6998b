package contract

import (
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// parseJSONTag parses a struct field's json tag.
// Returns the field name and options (like "omitempty").
func parseJSONTag(tag string) (name string, opts []string) {
	if tag == "" {
		return "", nil
	}

	parts := strings.Split(tag, ",")
	name = parts[0]
	if len(parts) > 1 {
		opts = parts[1:]
	}
	return name, opts
}

func hasOption(opts []string, opt string) bool {
	for _, o := range opts {
		if o == opt {
			return true
		}
	}
	return false
}

// isFieldRequired determines if a struct field is required by its contract.
// Rules:
//  1. Fields with oas:"required=true" are explicitly required
//  2. Fields with oas:"required=false" are explicitly optional
//  3. Pointer fields are optional by default
//  4. Otherwise fields without omitempty are required when implicit is set
func isFieldRequired(field reflect.StructField, jsonOpts []string, oasOpts map[string]string, implicit bool) bool {
	if val, ok := oasOpts["required"]; ok {
		return cast.ToBool(val)
	}

	if field.Type.Kind() == reflect.Pointer {
		return false
	}

	return implicit && !hasOption(jsonOpts, "omitempty")
}

// parseOASTag parses the oas struct tag into a map of key-value pairs.
// Supports formats like: oas:"description=User ID,minLength=1,maxLength=100"
func parseOASTag(tag string) map[string]string {
	result := make(map[string]string)
	if tag == "" {
		return result
	}

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if idx := strings.Index(part, "="); idx > 0 {
			result[strings.TrimSpace(part[:idx])] = strings.TrimSpace(part[idx+1:])
		} else {
			// Boolean flags such as "deprecated" without =true
			result[part] = "true"
		}
	}

	return result
}

// applyOASTag copies parsed oas tag options onto attrs. Values that fail to
// convert are skipped.
func applyOASTag(attrs *Attributes, opts map[string]string) {
	for key, value := range opts {
		switch key {
		case "description":
			attrs.Description = value
		case "title":
			attrs.Title = value
		case "format":
			attrs.DataType = value
		case "enum":
			for _, v := range strings.Split(value, "|") {
				attrs.Enum = append(attrs.Enum, strings.TrimSpace(v))
			}
		case "minimum":
			attrs.Minimum = toFloat(value)
		case "maximum":
			attrs.Maximum = toFloat(value)
		case "exclusiveMinimum":
			attrs.ExclusiveMinimum = cast.ToBool(value)
		case "exclusiveMaximum":
			attrs.ExclusiveMaximum = cast.ToBool(value)
		case "multipleOf":
			attrs.MultipleOf = toFloat(value)
		case "minLength", "minItems":
			attrs.MinLength = toInt(value)
		case "maxLength", "maxItems":
			attrs.MaxLength = toInt(value)
		case "uniqueItems":
			attrs.UniqueItems = cast.ToBool(value)
		case "pattern":
			attrs.Pattern = value
		case "readOnly":
			attrs.ReadOnly = cast.ToBool(value)
		case "writeOnly":
			attrs.WriteOnly = cast.ToBool(value)
		case "deprecated":
			attrs.Deprecated = cast.ToBool(value)
		case "nullable":
			b := cast.ToBool(value)
			attrs.Nullable = &b
		case "example":
			attrs.Example = value
		case "default":
			attrs.DefaultText = value
			attrs.HasDefault = true
		}
	}
}

// validatorFormats maps go-playground/validator format tags to schema formats.
var validatorFormats = map[string]string{
	"email":        "email",
	"url":          "uri",
	"http_url":     "uri",
	"uri":          "uri",
	"uuid":         "uuid",
	"uuid3":        "uuid",
	"uuid4":        "uuid",
	"uuid5":        "uuid",
	"uuid_rfc4122": "uuid",
	"datetime":     "date-time",
	"ipv4":         "ipv4",
	"ip4_addr":     "ipv4",
	"ipv6":         "ipv6",
	"ip6_addr":     "ipv6",
	"hostname":     "hostname",
	"base64":       "byte",
}

// applyValidateTag maps a go-playground/validator tag onto attrs. Bounds apply
// to the value for numeric fields and to the length for strings and
// collections. Rules after "dive" target elements and are skipped.
func applyValidateTag(attrs *Attributes, tag string, t reflect.Type) {
	if tag == "" {
		return
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	numeric := isNumericKind(t.Kind())

	for _, rule := range strings.Split(tag, ",") {
		name, param, _ := strings.Cut(strings.TrimSpace(rule), "=")
		switch name {
		case "dive", "keys":
			return
		case "required":
			attrs.Required = true
		case "unique":
			attrs.UniqueItems = true
		case "oneof":
			attrs.Enum = append(attrs.Enum, strings.Fields(param)...)
		case "min", "gte":
			if numeric {
				attrs.Minimum, attrs.ExclusiveMinimum = toFloat(param), false
			} else {
				attrs.MinLength = toInt(param)
			}
		case "max", "lte":
			if numeric {
				attrs.Maximum, attrs.ExclusiveMaximum = toFloat(param), false
			} else {
				attrs.MaxLength = toInt(param)
			}
		case "gt":
			if numeric {
				attrs.Minimum, attrs.ExclusiveMinimum = toFloat(param), true
			} else {
				attrs.MinLength = offsetInt(param, 1)
			}
		case "lt":
			if numeric {
				attrs.Maximum, attrs.ExclusiveMaximum = toFloat(param), true
			} else {
				attrs.MaxLength = offsetInt(param, -1)
			}
		case "len":
			if numeric {
				attrs.Minimum, attrs.Maximum = toFloat(param), toFloat(param)
			} else {
				attrs.MinLength, attrs.MaxLength = toInt(param), toInt(param)
			}
		default:
			if format, ok := validatorFormats[name]; ok {
				attrs.DataType = format
			}
		}
	}
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(s string) *float64 {
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return nil
	}
	return &f
}

func toInt(s string) *int {
	n, err := cast.ToIntE(s)
	if err != nil {
		return nil
	}
	return &n
}

func offsetInt(s string, delta int) *int {
	n := toInt(s)
	if n == nil {
		return nil
	}
	v := max(*n+delta, 0)
	return &v
}
