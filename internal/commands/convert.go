package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/klabast/wb-services/holiday-converter/internal/app"
	"github.com/klabast/wb-services/holiday-converter/internal/holiday"
	"github.com/rs/zerolog/log"
)

// ErrStrict is returned when -strict is set and some entries were skipped
var ErrStrict = errors.New("some holiday entries could not be converted")

// ConvertOptions configures a single offline conversion
type ConvertOptions struct {
	Format string
	Strict bool
}

// Convert handles the convert subcommand
func Convert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	inPath := fs.String("in", "", "Input file with the raw holiday listing (default: stdin)")
	outPath := fs.String("out", "", "Output file (default: stdout)")
	format := fs.String("format", app.FormatJSON, "Output format: json, ics or csv")
	strict := fs.Bool("strict", false, "Exit with status 2 when an entry is skipped")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: holiday-converter convert [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Converts a raw holiday listing into JSON, ICS or CSV.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	os.Exit(convertFiles(*inPath, *outPath, ConvertOptions{Format: *format, Strict: *strict}))
}

// convertFiles opens the requested files and returns the process exit code
func convertFiles(inPath, outPath string, opts ConvertOptions) int {
	in := io.Reader(os.Stdin)
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Error().Err(err).Str("file", outPath).Msg("error closing output file")
			}
		}()
		out = f
	}

	err := RunConvert(in, out, os.Stderr, opts)
	if errors.Is(err, ErrStrict) {
		return 2
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// RunConvert reads a listing from in, writes the export to out and
// reports skipped entries to diag
func RunConvert(in io.Reader, out, diag io.Writer, opts ConvertOptions) error {
	var write func(io.Writer, holiday.Collection) error
	switch opts.Format {
	case app.FormatJSON, "":
		write = app.WriteJSON
	case app.FormatICS:
		write = app.WriteICS
	case app.FormatCSV:
		write = app.WriteCSV
	default:
		return fmt.Errorf("unsupported format %q", opts.Format)
	}

	data, err := io.ReadAll(io.LimitReader(in, app.MaxInputBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if int64(len(data)) > app.MaxInputBytes {
		return fmt.Errorf("input exceeds %d bytes", app.MaxInputBytes)
	}
	text := holiday.Normalize(string(data))
	if holiday.IsBlank(text) {
		return errors.New("no input: please provide some raw holiday data")
	}

	res := holiday.Parse(text)
	if res.NoEntries {
		fmt.Fprintf(diag, "Warning: %v\n", holiday.ErrNoEntries)
	}
	for _, entryErr := range res.Errors {
		fmt.Fprintf(diag, "Error: %v\n", entryErr)
	}
	if err := write(out, res.Holidays); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if opts.Strict && (res.NoEntries || len(res.Errors) > 0) {
		return ErrStrict
	}
	return nil
}
