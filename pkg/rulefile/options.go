package rulefile

import "github.com/dmitrymomot/rulekit/pkg/validator"

// Option configures rule set parsing.
type Option func(*options)

type options struct {
	messageKey string
	strict     *validator.Engine
}

func defaultOptions() *options {
	return &options{messageKey: validator.MessageKey}
}

// WithMessageKey changes the key that holds the per-field override message.
// Empty keys are ignored. Once renamed, a literal "msg" key is dropped; strict
// parsing reports it as an unknown rule.
func WithMessageKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.messageKey = key
		}
	}
}

// WithStrict makes Parse fail with ErrUnknownRule when the rule set names a
// rule that e has not registered.
func WithStrict(e *validator.Engine) Option {
	return func(o *options) {
		o.strict = e
	}
}
