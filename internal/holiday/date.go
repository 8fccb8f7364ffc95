package holiday

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-sql/civil"
)

var (
	numericDateRe = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
	monthDateRe   = regexp.MustCompile(`^(\d{2})-([A-Za-z]{3})-(\d{2})$`)
)

const maxYear = 9999

var monthAbbr = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ParseDate parses DD-MM-YYYY or DD-MMM-YY (two-digit years are 20YY).
// The numeric shape is checked first.
func ParseDate(token string) (civil.Date, error) {
	if m := numericDateRe.FindStringSubmatch(token); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return calendarDate(token, year, month, day)
	}
	if m := monthDateRe.FindStringSubmatch(token); m != nil {
		month, ok := monthAbbr[strings.ToLower(m[2])]
		if !ok {
			return civil.Date{}, &DateParseError{Date: token, Reason: "unknown month " + strconv.Quote(m[2])}
		}
		day, _ := strconv.Atoi(m[1])
		yy, _ := strconv.Atoi(m[3])
		return calendarDate(token, 2000+yy, int(month), day)
	}
	return civil.Date{}, &DateFormatError{Date: token}
}

func calendarDate(token string, year, month, day int) (civil.Date, error) {
	if month < 1 || month > 12 {
		return civil.Date{}, &DateParseError{Date: token, Reason: "month out of range"}
	}
	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return civil.Date{}, &DateParseError{Date: token, Reason: "day out of range"}
	}
	// the exclusive end date must still print as YYYY-MM-DD
	if d.AddDays(1).Year > maxYear {
		return civil.Date{}, &DateParseError{Date: token, Reason: "end date past year 9999"}
	}
	return d, nil
}
