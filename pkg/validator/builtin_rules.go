package validator

import (
	"fmt"
	"regexp"
	"sync"
)

// Built-in rule names.
const (
	RuleType    = "type"
	RuleIs      = "is"
	RuleIn      = "in"
	RuleMin     = "min"
	RuleMax     = "max"
	RuleBetween = "between"
	RuleRegexp  = "regexp"
)

// DefaultMessages returns a fresh copy of the built-in message templates.
func DefaultMessages() map[string]string {
	return map[string]string{
		RequiredKey: "# is required",
		RuleType:    "# must be type of $1",
		RuleIs:      "Incorrect value for #",
		RuleIn:      "Incorrect value for #",
		RuleMin:     "The length of # must be more than $1",
		RuleMax:     "The length of # must be less than $1",
		RuleBetween: "The length of # must between $1 to $2",
		RuleRegexp:  "# not conform to the expected format",
	}
}

// DefaultPredicates returns a fresh set of the built-in predicates.
func DefaultPredicates() map[string]Predicate {
	return map[string]Predicate{
		RuleType:    PredicateFunc(typeRule),
		RuleIs:      PredicateFunc(isRule),
		RuleIn:      PredicateFunc(inRule),
		RuleMin:     PredicateFunc(minRule),
		RuleMax:     PredicateFunc(maxRule),
		RuleBetween: PredicateFunc(betweenRule),
		RuleRegexp:  &regexpRule{},
	}
}

func typeRule(value any, args ...any) bool {
	if len(args) == 0 {
		return false
	}
	name, ok := args[0].(string)
	return ok && TypeOf(value) == name
}

func isRule(value any, args ...any) bool {
	if len(args) == 0 {
		return false
	}
	return equal(value, args[0])
}

func inRule(value any, args ...any) bool {
	for _, candidate := range args {
		if equal(value, candidate) {
			return true
		}
	}
	return false
}

func minRule(value any, args ...any) bool {
	n, ok := lengthBound(value, args, 0)
	if !ok {
		return false
	}
	l, _ := length(value)
	return float64(l) >= n
}

func maxRule(value any, args ...any) bool {
	n, ok := lengthBound(value, args, 0)
	if !ok {
		return false
	}
	l, _ := length(value)
	return float64(l) <= n
}

func betweenRule(value any, args ...any) bool {
	lo, ok := lengthBound(value, args, 0)
	if !ok {
		return false
	}
	hi, ok := lengthBound(value, args, 1)
	if !ok {
		return false
	}
	l, _ := length(value)
	return float64(l) >= lo && float64(l) <= hi
}

// lengthBound returns args[i] as a number, failing when value has no length.
func lengthBound(value any, args []any, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	if _, ok := length(value); !ok {
		return 0, false
	}
	return toFloat(args[i])
}

// regexpRule matches the subject against a string or *regexp.Regexp pattern.
// String patterns are compiled once and cached; invalid patterns never match.
type regexpRule struct {
	cache sync.Map // pattern -> *regexp.Regexp or nil for invalid
}

func (r *regexpRule) Evaluate(value any, args ...any) bool {
	if len(args) == 0 {
		return false
	}

	var re *regexp.Regexp
	switch p := args[0].(type) {
	case *regexp.Regexp:
		re = p
	case string:
		re = r.compile(p)
	}
	if re == nil {
		return false
	}

	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}
	return re.MatchString(s)
}

func (r *regexpRule) compile(pattern string) *regexp.Regexp {
	if cached, ok := r.cache.Load(pattern); ok {
		re, _ := cached.(*regexp.Regexp)
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		r.cache.Store(pattern, (*regexp.Regexp)(nil))
		return nil
	}
	r.cache.Store(pattern, re)
	return re
}
