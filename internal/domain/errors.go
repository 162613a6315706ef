package domain

import "fmt"

// FormatError reports a coordinate token that is not a decimal numeral
// followed by a compass letter.
type FormatError struct {
	Token string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid coordinate token %q", e.Token)
}

// MalformedRecordError reports a fix line that matched the date-prefix
// pattern but could not be parsed into a Fix. It is fatal to the file
// being processed: no partial output is written.
type MalformedRecordError struct {
	Line   int // 1-based line number within the input file
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed fix line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed fix line %d: %s", e.Line, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
