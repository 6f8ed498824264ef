// Command extract runs name extraction and matching over OCR text files, for
// tuning rules and stop words without calling any AWS service.
//
//	extract -doc rg.txt -bill conta.txt
//	extract -doc rg.txt -json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"idcheck/internal/verification/names"
	pstrings "idcheck/pkg/platform/strings"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type report struct {
	Document   *extraction `json:"document,omitempty"`
	Bill       *extraction `json:"bill,omitempty"`
	Comparison string      `json:"comparison,omitempty"`
	Passed     *bool       `json:"passed,omitempty"`
}

type extraction struct {
	File  string `json:"file"`
	Kind  string `json:"kind"`
	Found bool   `json:"found"`
	Name  string `json:"name,omitempty"`
	Rule  string `json:"rule,omitempty"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	docFile := fs.String("doc", "", "OCR text of the identity document")
	billFile := fs.String("bill", "", "OCR text of the billing document")
	stopWords := fs.String("stop-words", os.Getenv("IDCHECK_EXTRA_STOP_WORDS"), "extra stop words, comma separated")
	asJSON := fs.Bool("json", false, "print JSON instead of text")
	noColor := fs.Bool("no-color", false, "disable colored output")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *docFile == "" && *billFile == "" {
		fmt.Fprintln(stderr, "at least one of -doc or -bill is required")
		fs.Usage()
		return 2
	}
	if *noColor {
		color.NoColor = true
	}

	extractor := names.NewExtractor(pstrings.SplitList(*stopWords)...)

	var rep report
	var docName, billName names.ExtractedName
	var err error
	if *docFile != "" {
		if rep.Document, docName, err = extractFile(extractor, *docFile, names.KindIdentity); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if *billFile != "" {
		if rep.Bill, billName, err = extractFile(extractor, *billFile, names.KindBilling); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if rep.Document != nil && rep.Bill != nil {
		cmp := names.Compare(docName, billName)
		passed := cmp.Passed()
		rep.Comparison = cmp.String()
		rep.Passed = &passed
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}
	printText(stdout, rep)
	return 0
}

func extractFile(e *names.Extractor, path string, kind names.DocumentKind) (*extraction, names.ExtractedName, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, names.ExtractedName{}, fmt.Errorf("%s: file not found", path)
		}
		return nil, names.ExtractedName{}, fmt.Errorf("read %s: %w", path, err)
	}
	name, rule := e.ExtractWithRule(string(data), kind)
	return &extraction{
		File:  path,
		Kind:  kind.String(),
		Found: name.Found(),
		Name:  name.String(),
		Rule:  rule,
	}, name, nil
}

var (
	labelColor = color.New(color.FgCyan, color.Bold)
	okColor    = color.New(color.FgGreen)
	badColor   = color.New(color.FgRed)
	dimColor   = color.New(color.Faint)
)

func printText(w io.Writer, rep report) {
	for _, ex := range []*extraction{rep.Document, rep.Bill} {
		if ex == nil {
			continue
		}
		labelColor.Fprintf(w, "%-9s", ex.Kind)
		if ex.Found {
			okColor.Fprintf(w, "%s", ex.Name)
			dimColor.Fprintf(w, "  (%s)", ex.Rule)
		} else {
			badColor.Fprint(w, "not found")
		}
		fmt.Fprintf(w, "  %s\n", ex.File)
	}
	if rep.Passed != nil {
		labelColor.Fprintf(w, "%-9s", "match")
		if *rep.Passed {
			okColor.Fprintln(w, rep.Comparison)
		} else {
			badColor.Fprintln(w, rep.Comparison)
		}
	}
}
