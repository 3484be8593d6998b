package generator

import (
	"github.com/erraggy/oastypes/contract"
	"github.com/erraggy/oastypes/schema"
)

type typeFormat struct {
	kind   schema.Kind
	format string
}

// primitiveTable maps primitive data types to schema type and format.
var primitiveTable = map[contract.DataType]typeFormat{
	contract.DataTypeString:   {schema.KindString, ""},
	contract.DataTypeBoolean:  {schema.KindBoolean, ""},
	contract.DataTypeInt32:    {schema.KindInteger, "int32"},
	contract.DataTypeInt64:    {schema.KindInteger, "int64"},
	contract.DataTypeFloat:    {schema.KindNumber, "float"},
	contract.DataTypeDouble:   {schema.KindNumber, "double"},
	contract.DataTypeDecimal:  {schema.KindNumber, "double"},
	contract.DataTypeByte:     {schema.KindString, "byte"},
	contract.DataTypeBinary:   {schema.KindString, "binary"},
	contract.DataTypeDate:     {schema.KindString, "date"},
	contract.DataTypeDateTime: {schema.KindString, "date-time"},
	contract.DataTypeUUID:     {schema.KindString, "uuid"},
	contract.DataTypeURI:      {schema.KindString, "uri"},
	// encoding/json writes time.Duration as integer nanoseconds
	contract.DataTypeDuration: {schema.KindInteger, "int64"},
}

// primitiveSchema returns the schema for a primitive data type. Unknown data
// types fall back to plain strings.
func primitiveSchema(dt contract.DataType) *schema.Schema {
	tf, ok := primitiveTable[dt]
	if !ok {
		return &schema.Schema{Type: schema.KindString}
	}
	return &schema.Schema{Type: tf.kind, Format: tf.format}
}
