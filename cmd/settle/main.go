// Command settle prints who pays whom for a YAML file of members and
// expenses.
//
// Usage:
//
//	settle [-lang tag] [file.yml]
//
// With no file, or "-", the document is read from stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/language"

	"github.com/mmynk/splitbill/pkg/logging"
)

func main() {
	lang := flag.String("lang", "en", "language tag used for digit grouping")
	flag.Parse()

	logging.Setup()

	if err := run(flag.Arg(0), *lang, os.Stdin, os.Stdout); err != nil {
		slog.Error("settle failed", "error", err)
		os.Exit(1)
	}
}

func run(path, lang string, stdin io.Reader, stdout io.Writer) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid -lang %q: %w", lang, err)
	}

	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	in, err := parseInput(r)
	if err != nil {
		return err
	}

	result, err := in.settle()
	if err != nil {
		return err
	}
	if result.Summary.Skipped > 0 {
		slog.Warn("Expenses skipped because they reference unknown members",
			"skipped", result.Summary.Skipped,
		)
	}

	result.Report.Language = tag
	_, err = io.WriteString(stdout, result.Report.Text())
	return err
}
