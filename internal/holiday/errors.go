package holiday

import (
	"errors"
	"fmt"
)

// ErrNoEntries is reported when nothing in the input looks like a holiday line
var ErrNoEntries = errors.New("could not parse any holiday entries, please check the format")

// DateFormatError means the date token has neither the DD-MMM-YY nor the DD-MM-YYYY shape
type DateFormatError struct {
	Date string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("date %q could not be parsed: unrecognized date format (expected DD-MMM-YY or DD-MM-YYYY)", e.Date)
}

// DateParseError means the date token has a known shape but is not a calendar date
type DateParseError struct {
	Date   string
	Reason string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("date %q could not be parsed: %s", e.Date, e.Reason)
}
