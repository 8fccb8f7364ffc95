package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"github.com/klabast/wb-services/holiday-converter/internal/holiday"
	"github.com/rs/zerolog/log"
)

// uidNamespace seeds the name-based UUIDs of exported events
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(ICSUIDDomain))

// now is replaced in tests
var now = time.Now

var icsEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// WriteJSON writes the holidays document indented with two spaces
func WriteJSON(w io.Writer, holidays holiday.Collection) error {
	data, err := json.MarshalIndent(holiday.Document{Holidays: holidays}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteCSV writes one row per holiday with a header line
func WriteCSV(w io.Writer, holidays holiday.Collection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"subject", "start", "end", "type"}); err != nil {
		return err
	}
	for _, h := range holidays {
		row := []string{h.Subject, h.Start.String(), h.End.String(), string(h.Type)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EventUID returns a stable identifier for the record at position pos, so
// re-importing the same listing updates events instead of duplicating them.
// The position keeps repeated entries apart within one calendar.
func EventUID(pos int, h holiday.Record) string {
	name := fmt.Sprintf("%d|%s|%s|%s", pos, h.Start, h.Subject, h.Type)
	return fmt.Sprintf("%s@%s", uuid.NewSHA1(uidNamespace, []byte(name)), ICSUIDDomain)
}

// WriteICS writes an iCalendar with one all-day event per holiday.
// DTEND is exclusive, which matches the [start, end) records.
func WriteICS(w io.Writer, holidays holiday.Collection) error {
	var b strings.Builder
	stamp := now().UTC().Format("20060102T150405Z")

	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	fmt.Fprintf(&b, "PRODID:%s\r\n", ICSProductID)
	b.WriteString("CALSCALE:GREGORIAN\r\n")
	b.WriteString("X-WR-CALNAME:Holidays\r\n")

	for i, h := range holidays {
		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:%s\r\n", EventUID(i, h))
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", stamp)
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\r\n", icsDate(h.Start))
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\r\n", icsDate(h.End))
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", icsEscaper.Replace(h.Subject))
		fmt.Fprintf(&b, "CATEGORIES:%s\r\n", h.Type)
		if h.Type == holiday.Optional {
			b.WriteString("TRANSP:TRANSPARENT\r\n")
		} else {
			b.WriteString("TRANSP:OPAQUE\r\n")
		}
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func icsDate(d civil.Date) string {
	return strings.ReplaceAll(d.String(), "-", "")
}

// GenerateDownload sends holidays as an attachment in the given format
func GenerateDownload(w http.ResponseWriter, format string, holidays holiday.Collection) {
	mediaType, ok := ExportFormats[format]
	if !ok {
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
		return
	}

	var write func(io.Writer, holiday.Collection) error
	switch format {
	case FormatJSON:
		write = WriteJSON
	case FormatICS:
		write = WriteICS
	case FormatCSV:
		write = WriteCSV
	}

	var buf strings.Builder
	if err := write(&buf, holidays); err != nil {
		log.Error().Err(err).Str("format", format).Msg("failed to generate export")
		http.Error(w, ErrFailedToGenerate, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mediaType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", DownloadBaseName, format))
	if _, err := io.WriteString(w, buf.String()); err != nil {
		log.Error().Err(err).Msg("error writing download")
	}
}
