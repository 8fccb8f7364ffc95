package holiday

import (
	"github.com/golang-sql/civil"
)

// Type is the holiday classification tag
type Type string

const (
	Mandatory Type = "Mandatory"
	Optional  Type = "Optional"
)

// Record is a single all-day holiday spanning [Start, End)
type Record struct {
	Subject string     `json:"subject"`
	Start   civil.Date `json:"start"`
	End     civil.Date `json:"end"`
	Type    Type       `json:"type"`
}

// Collection keeps records in the order they appeared in the input
type Collection []Record

// Document is the exported JSON shape
type Document struct {
	Holidays Collection `json:"holidays"`
}

// NewRecord creates a single-day record starting at date
func NewRecord(subject string, date civil.Date, typ Type) Record {
	return Record{
		Subject: subject,
		Start:   date,
		End:     date.AddDays(1),
		Type:    typ,
	}
}
