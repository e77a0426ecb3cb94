package validator

// Predicate decides whether a subject value satisfies a named rule.
// Args are the rule arguments from the FieldSpec, spread positionally.
type Predicate interface {
	Evaluate(value any, args ...any) bool
}

// PredicateFunc adapts an ordinary function to the Predicate interface.
type PredicateFunc func(value any, args ...any) bool

func (f PredicateFunc) Evaluate(value any, args ...any) bool {
	return f(value, args...)
}
