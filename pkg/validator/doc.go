// Package validator provides a declarative rule engine for validating flat
// records such as form data or decoded API payloads.
//
// A RuleSet maps field names to FieldSpecs. Each FieldSpec lists named rules
// with their arguments, an optional required flag and an optional message
// that replaces every rendered template for that field. An Engine looks rule
// names up in its own registry of Predicates, evaluates them against a
// Record, and accumulates the outcome: a validity flag, the failed field names
// (one entry per failure) and the deduplicated rendered messages.
//
// # Architecture
//
// Each Engine owns its registries. New seeds them from DefaultPredicates and
// DefaultMessages; RegisterRule and RegisterMessage change only that engine.
// Evaluation walks fields and rules in insertion order. Unknown rule names
// are skipped silently so a partially misconfigured rule set still validates
// what it can; use Engine.UnknownRules to lint rule sets in tests.
//
// Fields whose value is absent (see Present) are skipped unless required.
// The presence check can be replaced with WithPresence.
//
// # Usage
//
//	rules := validator.NewRuleSet().
//	    Add("name", validator.Field().Required().Rule("between", 3, 20)).
//	    Add("email", validator.Field().Rule("regexp", `.+@.+`).Message("bad email"))
//
//	v := validator.New()
//	if !v.CheckAll(rules, validator.Record{"name": "Al", "email": "nope"}) {
//	    fmt.Println(v.Messages())
//	    // [The length of name must between 3 to 20 bad email]
//	}
//
// Check stops at the first failure; CheckAll collects every failure.
//
// # Message templates
//
// '#' is replaced by the field name and '$1', '$2', ... by the rule
// arguments. Every occurrence is substituted in one pass; placeholders with no
// matching argument are left as is. A rule without a template contributes an
// empty message.
//
// # State
//
// An Engine accumulates across calls: a second Check adds to the messages and
// failed fields of the first. Call Reset, or build a new Engine, between
// independent passes. Engines are not safe for concurrent use.
//
// # Error Handling
//
// Validation never panics or returns an error for malformed rules. Err adapts
// the state to an error value: nil when valid, otherwise ValidationErrors,
// which matches ErrValidationFailed under errors.Is.
package validator
