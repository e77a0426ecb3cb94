package logger

import "log/slog"

// Field records a record field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Rule records a rule name under the key "rule".
func Rule(name string) slog.Attr {
	return slog.String("rule", name)
}

// Path records a file path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}
