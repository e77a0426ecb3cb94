package rulefile

import "errors"

var (
	ErrEmptyDocument    = errors.New("document is empty")
	ErrInvalidDocument  = errors.New("document must be a mapping of field names")
	ErrInvalidFieldSpec = errors.New("field spec must be a mapping of rule names")
	ErrUnknownRule      = errors.New("rule set references unknown rules")
	ErrParsingCancelled = errors.New("parsing cancelled")
	ErrReadingFile      = errors.New("failed to read file")
)
