package validator

import "reflect"

// Reserved FieldSpec keys. They are never dispatched as rules, so a predicate
// registered under either name is unreachable from evaluation.
const (
	RequiredKey = "required"
	MessageKey  = "msg"
)

// RuleRef is a single rule reference inside a FieldSpec.
type RuleRef struct {
	Name string
	Args []any
}

// FieldSpec is the ordered list of rules applied to one field, plus the
// required flag and an optional message that replaces every rendered template.
type FieldSpec struct {
	required bool
	message  string
	rules    []RuleRef
}

// Field starts an empty FieldSpec.
func Field() *FieldSpec {
	return &FieldSpec{}
}

// Required marks the field as mandatory.
func (f *FieldSpec) Required() *FieldSpec {
	f.required = true
	return f
}

// Message sets the override message used for any failure of this field.
func (f *FieldSpec) Message(msg string) *FieldSpec {
	f.message = msg
	return f
}

// Rule appends a rule reference. Re-adding a name replaces its args in place.
// A single argument is the scalar form; several arguments, or a single slice
// (other than []byte), are the sequence form.
//
// The reserved keys act as directives and are not stored as rules:
// Rule("required", true) marks the field required and Rule("msg", s) sets
// the override message. Other values under those keys are ignored.
func (f *FieldSpec) Rule(name string, args ...any) *FieldSpec {
	switch name {
	case RequiredKey:
		if len(args) == 1 {
			if b, ok := args[0].(bool); ok && b {
				f.required = true
			}
		}
		return f
	case MessageKey:
		if len(args) == 1 {
			if s, ok := args[0].(string); ok {
				f.message = s
			}
		}
		return f
	}

	args = expandArgs(args)
	for i := range f.rules {
		if f.rules[i].Name == name {
			f.rules[i].Args = args
			return f
		}
	}
	f.rules = append(f.rules, RuleRef{Name: name, Args: args})
	return f
}

// expandArgs spreads a lone slice argument into positional arguments.
func expandArgs(args []any) []any {
	if len(args) != 1 || args[0] == nil {
		return args
	}
	if _, ok := args[0].([]byte); ok {
		return args
	}
	rv := reflect.ValueOf(args[0])
	if rv.Kind() != reflect.Slice {
		return args
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// IsRequired reports whether the field must be present.
func (f *FieldSpec) IsRequired() bool { return f.required }

// OverrideMessage returns the message that replaces rendered templates, or "".
func (f *FieldSpec) OverrideMessage() string { return f.message }

// Rules returns a copy of the rule references in insertion order.
func (f *FieldSpec) Rules() []RuleRef {
	out := make([]RuleRef, len(f.rules))
	copy(out, f.rules)
	return out
}

// RuleSet maps field names to FieldSpecs and remembers insertion order.
type RuleSet struct {
	order []string
	specs map[string]*FieldSpec
}

// NewRuleSet returns an empty RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{specs: make(map[string]*FieldSpec)}
}

// Add registers spec for field. Adding an existing field replaces its spec
// without moving it. A nil spec is stored as an empty one.
func (rs *RuleSet) Add(field string, spec *FieldSpec) *RuleSet {
	if spec == nil {
		spec = Field()
	}
	if rs.specs == nil {
		rs.specs = make(map[string]*FieldSpec)
	}
	if _, ok := rs.specs[field]; !ok {
		rs.order = append(rs.order, field)
	}
	rs.specs[field] = spec
	return rs
}

// Fields returns field names in evaluation order.
func (rs *RuleSet) Fields() []string {
	out := make([]string, len(rs.order))
	copy(out, rs.order)
	return out
}

// Spec returns the FieldSpec registered for field.
func (rs *RuleSet) Spec(field string) (*FieldSpec, bool) {
	spec, ok := rs.specs[field]
	return spec, ok
}

// Len returns the number of fields.
func (rs *RuleSet) Len() int {
	return len(rs.order)
}

func isReserved(name string) bool {
	return name == RequiredKey || name == MessageKey
}
