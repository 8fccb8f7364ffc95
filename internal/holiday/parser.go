// Package holiday turns plain-text holiday listings into structured records.
//
// An entry looks like
//
//	26-Jan-24 Friday Republic Day Mandatory
//	15-08-2025 Friday Independence Day Optional
//
// The input is scanned for entries rather than split into lines, so an entry
// may wrap across a line break. The subject is everything between the weekday
// and the first standalone Mandatory/Optional token. The weekday is not checked
// against the date.
package holiday

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// entryRe accepts any dash-separated date-ish token so that malformed
// dates are reported instead of silently ignored.
var entryRe = regexp.MustCompile(
	`\b(\d{1,4}-[A-Za-z0-9]{1,9}-\d{1,4})\s+([A-Za-z]+)\s+(\S[\s\S]*?)\s+(Mandatory|Optional)\b`,
)

// Result is the outcome of a single conversion
type Result struct {
	Holidays  Collection
	Errors    []error
	NoEntries bool
}

// Err joins every reported problem, nil when the conversion was clean
func (r Result) Err() error {
	errs := make([]error, 0, len(r.Errors)+1)
	if r.NoEntries {
		errs = append(errs, ErrNoEntries)
	}
	errs = append(errs, r.Errors...)
	return errors.Join(errs...)
}

// Document wraps the parsed holidays into the exported JSON shape
func (r Result) Document() Document {
	return Document{Holidays: r.Holidays}
}

// Parse extracts all holiday entries from raw. Entries with bad dates are
// skipped and reported in Result.Errors; parsing never stops early.
func Parse(raw string) Result {
	res := Result{Holidays: Collection{}}

	matches := entryRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		res.NoEntries = true
		return res
	}

	for _, m := range matches {
		dateText, subject, typ := m[1], strings.TrimSpace(m[3]), Type(m[4])
		date, err := ParseDate(dateText)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		res.Holidays = append(res.Holidays, NewRecord(subject, date, typ))
	}
	return res
}

// IsBlank reports whether raw has nothing worth parsing
func IsBlank(raw string) bool {
	return strings.IndexFunc(raw, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
