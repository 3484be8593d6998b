package contract

import (
	"encoding/json"
	"net/url"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erraggy/oastypes/oaserrors"
)

// MemberNaming selects how untagged struct fields are named.
type MemberNaming int

const (
	// MemberNamingAsIs uses the Go field name, as encoding/json does.
	MemberNamingAsIs MemberNaming = iota
	// MemberNamingCamelCase lower-cases the leading word: "OrderID" → "orderID".
	MemberNamingCamelCase
	// MemberNamingSnakeCase converts to snake_case: "OrderID" → "order_id".
	MemberNamingSnakeCase
)

// ResolverOption configures a ReflectResolver.
type ResolverOption func(*ReflectResolver)

// WithMemberNaming sets the naming policy for fields without a json name.
func WithMemberNaming(naming MemberNaming) ResolverOption {
	return func(r *ReflectResolver) {
		r.naming = naming
	}
}

// WithImplicitRequired controls whether non-pointer fields without omitempty
// are required. It is enabled by default.
func WithImplicitRequired(enabled bool) ResolverOption {
	return func(r *ReflectResolver) {
		r.implicitRequired = enabled
	}
}

// builtinPrimitives maps well-known library types to their data types.
var builtinPrimitives = map[reflect.Type]DataType{
	reflect.TypeFor[time.Time]():       DataTypeDateTime,
	reflect.TypeFor[time.Duration]():   DataTypeDuration,
	reflect.TypeFor[uuid.UUID]():       DataTypeUUID,
	reflect.TypeFor[decimal.Decimal](): DataTypeDecimal,
	reflect.TypeFor[url.URL]():         DataTypeURI,
	reflect.TypeFor[json.Number]():     DataTypeDouble,
}

var (
	rawMessageType    = reflect.TypeFor[json.RawMessage]()
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	enumerType        = reflect.TypeFor[Enumer]()
	subTyperType      = reflect.TypeFor[SubTyper]()
	describerType     = reflect.TypeFor[Describer]()
	obsoleterType     = reflect.TypeFor[Obsoleter]()
)

// ReflectResolver resolves contracts from Go types following encoding/json
// semantics. It is safe for concurrent use; contracts are computed once per
// type and cached.
type ReflectResolver struct {
	mu         sync.Mutex
	cache      map[reflect.Type]*Contract
	enums      map[reflect.Type][]EnumMember
	subTypes   map[reflect.Type][]reflect.Type
	primitives map[reflect.Type]DataType

	naming           MemberNaming
	implicitRequired bool
}

// NewReflectResolver creates a resolver with the given options.
func NewReflectResolver(opts ...ResolverOption) *ReflectResolver {
	r := &ReflectResolver{
		cache:            make(map[reflect.Type]*Contract),
		enums:            make(map[reflect.Type][]EnumMember),
		subTypes:         make(map[reflect.Type][]reflect.Type),
		primitives:       make(map[reflect.Type]DataType),
		implicitRequired: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterEnum declares t as an enum with the given members, overriding any
// Enumer implementation.
func (r *ReflectResolver) RegisterEnum(t reflect.Type, members ...EnumMember) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enums[t] = members
	clear(r.cache)
}

// RegisterSubTypes declares the known subtypes of a polymorphic base,
// overriding any SubTyper implementation.
func (r *ReflectResolver) RegisterSubTypes(base reflect.Type, subTypes ...reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subTypes[base] = subTypes
	clear(r.cache)
}

// RegisterPrimitive maps t to a primitive data type.
func (r *ReflectResolver) RegisterPrimitive(t reflect.Type, dt DataType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.primitives[t] = dt
	clear(r.cache)
}

// Resolve implements Resolver.
func (r *ReflectResolver) Resolve(t reflect.Type) (*Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(t)
}

func (r *ReflectResolver) resolve(t reflect.Type) (*Contract, error) {
	if t == nil {
		return &Contract{Kind: KindOpen, Name: TypeName{Anonymous: true}}, nil
	}
	if c, ok := r.cache[t]; ok {
		return c, nil
	}

	var (
		c   *Contract
		err error
	)
	if t.Kind() == reflect.Pointer {
		var elem *Contract
		elem, err = r.resolve(t.Elem())
		if err == nil {
			dup := *elem
			dup.Nullable = true
			c = &dup
		}
	} else {
		c, err = r.build(t)
	}
	if err != nil {
		return nil, err
	}
	r.cache[t] = c
	return c, nil
}

func (r *ReflectResolver) build(t reflect.Type) (*Contract, error) {
	c := &Contract{Type: t, Name: NameOf(t)}

	if t.Kind() != reflect.Interface {
		if v, ok := methodValue(t, describerType); ok {
			c.Description = v.(Describer).SchemaDescription()
		}
		if v, ok := methodValue(t, obsoleterType); ok {
			c.Deprecated = v.(Obsoleter).SchemaDeprecated()
		}
	}

	if dt, ok := r.primitives[t]; ok {
		c.Kind, c.DataType = KindPrimitive, dt
		return c, nil
	}
	if dt, ok := builtinPrimitives[t]; ok {
		c.Kind, c.DataType = KindPrimitive, dt
		return c, nil
	}
	if t == rawMessageType {
		c.Kind = KindOpen
		return c, nil
	}

	if members, ok := r.enumMembers(t); ok {
		ec, err := buildEnum(t, members)
		if err != nil {
			return nil, &oaserrors.ContractError{Type: t.String(), Message: "invalid enum", Cause: err}
		}
		c.Kind, c.Enum = KindEnum, ec
		return c, nil
	}

	// Custom marshalers own their wire shape. Text marshalers always produce
	// strings; json marshalers could produce anything.
	if t.Kind() != reflect.Interface {
		if implements(t, jsonMarshalerType) {
			c.Kind = KindOpen
			return c, nil
		}
		if implements(t, textMarshalerType) {
			c.Kind, c.DataType = KindPrimitive, DataTypeString
			return c, nil
		}
	}

	switch t.Kind() {
	case reflect.Bool:
		c.Kind, c.DataType = KindPrimitive, DataTypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		c.Kind, c.DataType = KindPrimitive, DataTypeInt32
	case reflect.Int64, reflect.Uint, reflect.Uint64, reflect.Uintptr:
		c.Kind, c.DataType = KindPrimitive, DataTypeInt64
	case reflect.Float32:
		c.Kind, c.DataType = KindPrimitive, DataTypeFloat
	case reflect.Float64:
		c.Kind, c.DataType = KindPrimitive, DataTypeDouble
	case reflect.String:
		c.Kind, c.DataType = KindPrimitive, DataTypeString

	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			// encoding/json writes byte slices as base64 strings
			c.Kind, c.DataType = KindPrimitive, DataTypeByte
			break
		}
		c.Kind, c.Elem = KindArray, t.Elem()

	case reflect.Map:
		if t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0 {
			// map[K]struct{} is the idiomatic set
			c.Kind, c.Elem, c.UniqueItems = KindArray, t.Key(), true
			break
		}
		c.Kind, c.Key, c.Elem = KindDictionary, t.Key(), t.Elem()

	case reflect.Struct:
		c.Kind = KindObject
		c.Members, c.Base = r.collectMembers(t)
		c.SubTypes = r.subTypesOf(t)

	case reflect.Interface:
		if subs := r.subTypesOf(t); len(subs) > 0 {
			c.Kind, c.SubTypes = KindObject, subs
			break
		}
		c.Kind = KindOpen

	default:
		// chan, func, complex and unsafe pointers have no JSON form
		c.Kind = KindOpen
	}
	return c, nil
}

func (r *ReflectResolver) enumMembers(t reflect.Type) ([]EnumMember, bool) {
	if members, ok := r.enums[t]; ok {
		return members, true
	}
	if t.Kind() == reflect.Interface {
		return nil, false
	}
	if v, ok := methodValue(t, enumerType); ok {
		return v.(Enumer).EnumMembers(), true
	}
	return nil, false
}

// subTypesOf returns the subtypes of t. Interface bases must be registered.
// Candidates from a SubTyper that are t
// itself or do not derive from t are dropped, which also discards the promoted
// SubTypes method a subtype inherits by embedding its base.
func (r *ReflectResolver) subTypesOf(t reflect.Type) []reflect.Type {
	if subs, ok := r.subTypes[t]; ok {
		return subs
	}
	if t.Kind() == reflect.Interface {
		return nil
	}
	v, ok := methodValue(t, subTyperType)
	if !ok {
		return nil
	}

	var subs []reflect.Type
	for _, sample := range v.(SubTyper).SubTypes() {
		st := reflect.TypeOf(sample)
		for st != nil && st.Kind() == reflect.Pointer {
			st = st.Elem()
		}
		if st == nil || st == t || slices.Contains(subs, st) {
			continue
		}
		if !derivesFrom(st, t) {
			continue
		}
		subs = append(subs, st)
	}
	return subs
}

// derivesFrom reports whether base appears in the base chain of t.
func derivesFrom(t, base reflect.Type) bool {
	for i := 0; t != nil && i < 32; i++ {
		t = baseOf(t)
		if t == base {
			return true
		}
	}
	return false
}
