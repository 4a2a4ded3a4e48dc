package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/tinyrange/gowin/internal/trace"
)

func kindName(k trace.Kind) string {
	switch k {
	case trace.KindEvent:
		return "event"
	case trace.KindCommand:
		return "command"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

func run() error {
	events := flag.Bool("events", false, "only show event records")
	commands := flag.Bool("commands", false, "only show command records")
	match := flag.String("match", "", "regex to filter record names")
	timeRange := flag.Bool("range", false, "print the earliest and latest timestamps")
	limit := flag.Int("limit", 0, "max records to print (0 for unlimited)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `gowin-trace - inspect binary window trace files

USAGE:
  gowin-trace [flags] <filename>

OUTPUT FORMAT:
  Each record is printed as: TIMESTAMP KIND NAME DETAIL
  Timestamps are RFC3339Nano format.

FLAGS:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("expected exactly one trace file")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		return err
	}
	records, err := trace.Decode(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", flag.Arg(0), err)
	}

	var nameRe *regexp.Regexp
	if *match != "" {
		nameRe, err = regexp.Compile(*match)
		if err != nil {
			return fmt.Errorf("bad -match regex: %w", err)
		}
	}

	if *timeRange {
		if len(records) == 0 {
			return fmt.Errorf("trace is empty")
		}
		first := records[0].Timestamp
		last := records[len(records)-1].Timestamp
		fmt.Printf("first: %s\n", first.Format(time.RFC3339Nano))
		fmt.Printf("last:  %s\n", last.Format(time.RFC3339Nano))
		fmt.Printf("span:  %s over %d records\n", last.Sub(first), len(records))
		return nil
	}

	printed := 0
	for _, r := range records {
		if *events && r.Kind != trace.KindEvent {
			continue
		}
		if *commands && r.Kind != trace.KindCommand {
			continue
		}
		if nameRe != nil && !nameRe.MatchString(r.Name) {
			continue
		}
		fmt.Printf("%s %-7s %s %s\n",
			r.Timestamp.Format(time.RFC3339Nano), kindName(r.Kind), r.Name, r.Detail)
		printed++
		if *limit > 0 && printed >= *limit {
			break
		}
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gowin-trace: %v\n", err)
		os.Exit(1)
	}
}
