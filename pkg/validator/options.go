package validator

import "log/slog"

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger sets the logger used for debug tracing of a pass. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPresence replaces the presence check that decides whether a field was
// supplied. Use it when zero or false must count as a real value. Nil is ignored.
func WithPresence(fn func(any) bool) Option {
	return func(e *Engine) {
		if fn != nil {
			e.present = fn
		}
	}
}

// WithRule registers an additional rule at construction.
func WithRule(name string, p Predicate, template string) Option {
	return func(e *Engine) {
		e.RegisterRule(name, p, template)
	}
}

// WithMessages overrides message templates by rule name.
func WithMessages(templates map[string]string) Option {
	return func(e *Engine) {
		for name, tpl := range templates {
			e.RegisterMessage(name, tpl)
		}
	}
}

// WithExtraRules registers the extended rule table on top of the built-ins.
func WithExtraRules() Option {
	return func(e *Engine) {
		for name, p := range ExtraPredicates() {
			e.predicates[name] = p
		}
		for name, tpl := range ExtraMessages() {
			e.messages[name] = tpl
		}
	}
}
