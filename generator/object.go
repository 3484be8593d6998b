package generator

import (
	"reflect"
	"slices"

	"github.com/erraggy/oastypes/contract"
	"github.com/erraggy/oastypes/schema"
)

// maxBaseDepth bounds walks up a base chain.
const maxBaseDepth = 32

// objectSchema returns the schema used where an object contract is
// referenced: an inline oneOf for polymorphic bases, an inline object for
// anonymous structs and a reference otherwise.
func (ss *session) objectSchema(c *contract.Contract) (*schema.Schema, error) {
	if ss.g.cfg.composition.polymorphic() {
		if subs := ss.g.cfg.subTypes(c); len(subs) > 0 {
			return ss.polymorphicSchema(c, subs)
		}
	}
	if c.Name.Anonymous {
		return ss.buildObject(c)
	}
	return ss.reference(c)
}

// buildObject expands the members of c into an object schema. Under the
// allOf strategies a type with a base keeps only its declared members and
// references the base through allOf.
func (ss *session) buildObject(c *contract.Contract) (*schema.Schema, error) {
	members := c.Members
	var base *schema.Schema
	if ss.g.cfg.composition.usesAllOf() && c.Base != nil {
		bc, err := ss.resolve(c.Base)
		if err != nil {
			return nil, err
		}
		if base, err = ss.reference(bc); err != nil {
			return nil, err
		}
		members = c.DeclaredMembers()
	}

	obj := &schema.Schema{Type: schema.KindObject}
	discriminator, discriminated, err := ss.discriminatorFor(c)
	if err != nil {
		return nil, err
	}
	if discriminated {
		obj.SetProperty(discriminator, &schema.Schema{Type: schema.KindString})
		obj.AddRequired(discriminator)
	}

	for _, m := range members {
		if m.Ignored || (m.Deprecated && ss.g.cfg.ignoreObsolete) {
			continue
		}
		if discriminated && m.Name == discriminator {
			ss.log.Debug("member shadowed by discriminator", "type", typeString(c.Type), "member", m.FieldName)
			continue
		}
		ms, err := ss.memberSchema(m)
		if err != nil {
			return nil, err
		}
		obj.SetProperty(m.Name, ms)
		if m.Required || m.Attributes.Required {
			obj.AddRequired(m.Name)
		}
	}

	if base == nil {
		obj.Description = c.Description
		obj.Deprecated = c.Deprecated
		return obj, nil
	}
	return &schema.Schema{
		AllOf:       []*schema.Schema{base, obj},
		Description: c.Description,
		Deprecated:  c.Deprecated,
	}, nil
}

// memberSchema generates the property schema of a member.
func (ss *session) memberSchema(m contract.Member) (*schema.Schema, error) {
	st := site{member: &m}
	if !m.StringEncoded {
		return ss.generate(m.Type, st)
	}

	// the json ",string" option quotes the value
	s := &schema.Schema{Type: schema.KindString}
	fc := &FilterContext{Type: m.Type, Member: &m, Repository: ss.repo, session: ss}
	if err := ss.runFilters(s, fc); err != nil {
		return nil, err
	}
	return ss.applyMetadata(s, nil, st, m.Nullable), nil
}

// enumKeyedObject describes a map keyed by an enum as an object with one
// property per distinct enum value.
func (ss *session) enumKeyedObject(c *contract.Contract) (*schema.Schema, error) {
	kc, err := ss.resolve(c.Key)
	if err != nil {
		return nil, err
	}
	ec := kc.Enum

	obj := &schema.Schema{Type: schema.KindObject}
	seen := make(map[any]bool, len(ec.Members))
	for _, m := range ec.Members {
		if seen[m.Value] {
			continue
		}
		seen[m.Value] = true

		value, err := ss.generate(c.Elem, site{})
		if err != nil {
			return nil, err
		}
		obj.SetProperty(ss.g.enumPropertyName(ec, m), value)
	}
	return obj, nil
}

// polymorphicSchema describes a base with known subtypes as a oneOf of
// subtype references with a discriminator. The result is inline; under
// CompositionOneOfAllOf the base is also stored so subtypes can reference it.
func (ss *session) polymorphicSchema(c *contract.Contract, subs []reflect.Type) (*schema.Schema, error) {
	cfg := ss.g.cfg
	name := cfg.discriminatorName(c)
	out := &schema.Schema{
		Description: c.Description,
		Deprecated:  c.Deprecated,
		Discriminator: &schema.Discriminator{
			PropertyName: name,
			Mapping:      make(map[string]string, len(subs)),
		},
	}

	if cfg.composition == CompositionOneOfAllOf && c.Type.Kind() == reflect.Struct && !c.Name.Anonymous {
		if _, err := ss.reference(c); err != nil {
			return nil, err
		}
	}

	for _, st := range subs {
		sc, err := ss.resolve(st)
		if err != nil {
			return nil, err
		}
		if sc.Kind != contract.KindObject {
			ss.log.Warn("skipping subtype that is not an object", "base", typeString(c.Type), "subtype", typeString(st))
			continue
		}
		ss.markDiscriminated(sc.Type, name)

		ref, err := ss.reference(sc)
		if err != nil {
			return nil, err
		}
		value := cfg.discriminatorValue(sc, schema.RefID(ref.Ref))
		if _, dup := out.Discriminator.Mapping[value]; dup {
			ss.log.Warn("duplicate discriminator value", "base", typeString(c.Type), "value", value)
		}
		out.Discriminator.Mapping[value] = ref.Ref
		out.OneOf = append(out.OneOf, ref)
	}

	ss.log.Debug("built polymorphic schema", "base", typeString(c.Type), "subtypes", len(out.OneOf))
	return out, nil
}

// discriminatorFor returns the discriminator property a subtype must carry.
// A subtype is discriminated when a oneOf naming it was built in this
// repository or when it appears in the subtypes of a type on its base chain.
func (ss *session) discriminatorFor(c *contract.Contract) (string, bool, error) {
	cfg := ss.g.cfg
	if !cfg.composition.polymorphic() {
		return "", false, nil
	}
	if name, ok := ss.repo.discriminators[c.Type]; ok {
		return name, true, nil
	}

	b := c.Base
	for depth := 0; b != nil && depth < maxBaseDepth; depth++ {
		bc, err := ss.resolve(b)
		if err != nil {
			return "", false, err
		}
		if slices.Contains(cfg.subTypes(bc), c.Type) {
			name := cfg.discriminatorName(bc)
			ss.repo.discriminators[c.Type] = name
			return name, true, nil
		}
		b = bc.Base
	}
	return "", false, nil
}

// markDiscriminated records that t needs the discriminator property name.
// A definition already stored for t receives the property immediately.
func (ss *session) markDiscriminated(t reflect.Type, name string) {
	if _, ok := ss.repo.discriminators[t]; ok {
		return
	}
	ss.repo.discriminators[t] = name

	id, ok := ss.repo.IDFor(t)
	if !ok {
		return
	}
	if stored, ok := ss.repo.Lookup(id); ok {
		injectDiscriminator(stored, name)
	}
}

// injectDiscriminator adds a required string property to an object schema or
// to the inline part of an allOf.
func injectDiscriminator(s *schema.Schema, name string) {
	target := s
	if n := len(s.AllOf); n > 0 {
		target = s.AllOf[n-1]
	}
	if target.Property(name) == nil {
		target.SetProperty(name, &schema.Schema{Type: schema.KindString})
	}
	target.AddRequired(name)
}
