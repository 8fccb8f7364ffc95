package app

import "time"

// Constants
const (
	DefaultPort          = 8080
	DefaultMaxInputBytes = 1 << 20
	DefaultLogLevel      = "info"
	ServerReadTimeout    = 10 * time.Second
	ServerWriteTimeout   = 30 * time.Second
	ShutdownTimeout      = 10 * time.Second

	DownloadBaseName = "holidays"
	FormatJSON       = "json"
	FormatICS        = "ics"
	FormatCSV        = "csv"

	// Error messages
	ErrEmptyInput       = "Please enter some raw holiday data."
	ErrInputTooLarge    = "Input too large"
	ErrInvalidFormat    = "Invalid format"
	ErrInvalidRequest   = "Invalid request"
	ErrInternalServer   = "Internal server error"
	ErrFailedToGenerate = "Failed to generate export"

	// ICS constants
	ICSProductID = "-//Holiday Converter//Holidays//EN"
	ICSUIDDomain = "holiday-converter"
)

// Global variables
var (
	MaxInputBytes int64 = DefaultMaxInputBytes

	// Embedded files (set by main)
	IndexHTML []byte
)

// ExampleInput is shown in the example panel of the form
const ExampleInput = `26-Jan-24 Friday Republic Day Mandatory
09-Apr-24 Tuesday Ugadi / Gudi Padwa Mandatory
01-May-24 Wednesday May Day Mandatory`

// AcceptedDateFormats lists the date notations the parser understands
var AcceptedDateFormats = []string{
	"DD-MMM-YY (e.g. 26-Jan-24)",
	"DD-MM-YYYY (e.g. 15-08-2025)",
}

// ExportFormats maps a download format to its media type
var ExportFormats = map[string]string{
	FormatJSON: "application/json",
	FormatICS:  "text/calendar",
	FormatCSV:  "text/csv",
}
