// Command docgen-errors renders docs/errors.md from the error registry.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"jstest2objc/internal/convert"
)

var exitTitles = map[int]string{
	convert.ExitInvalidInput:  "Invalid invocation",
	convert.ExitInputRead:     "Input read",
	convert.ExitLiteralParse:  "Malformed literal",
	convert.ExitLiteralRender: "Literal render",
	convert.ExitOutputFailure: "Output",
	convert.ExitDiffFailure:   "Diff",
	convert.ExitConfigError:   "Configuration",
	convert.ExitInternalError: "Internal",
}

var bandTitles = []string{
	"lookup and validation",
	"permission failures",
	"I/O failures",
	"atomic replace failures",
	"stream failures",
	"reserved",
}

func main() {
	var outPath string
	var check bool
	flag.StringVar(&outPath, "o", "", "output file (default <module root>/docs/errors.md)")
	flag.BoolVar(&check, "check", false, "fail if the file is out of date instead of writing it")
	flag.Parse()

	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "docs", "errors.md")
	}

	content := render(convert.ErrorDetails())
	if check {
		existing, err := os.ReadFile(outPath)
		if err != nil || !bytes.Equal(existing, content) {
			fmt.Fprintf(os.Stderr, "docgen-errors: %s is out of date; rerun go run ./cmd/docgen-errors\n", outPath)
			os.Exit(1)
		}
		return
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "docgen-errors: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, content, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "docgen-errors: %v\n", err)
		os.Exit(1)
	}
}

func render(entries []convert.ErrorDetailEntry) []byte {
	var b bytes.Buffer
	b.WriteString("# jstest2objc error reference\n\n")
	b.WriteString("<!-- Generated by cmd/docgen-errors. Do not edit. -->\n\n")
	b.WriteString("Failures print `jstest2objc ERROR [CODE]: message` followed by a Detail line and a link to this page.\n")
	b.WriteString("The process exits with the middle number of the code. `diff` exits 1 when the target differs.\n")

	lastExit, lastBand := -1, -1
	for _, e := range entries {
		exit, sub := parseCode(e.Code)
		if exit != lastExit {
			title := exitTitles[exit]
			if title == "" {
				title = "Other"
			}
			fmt.Fprintf(&b, "\n## Exit %d: %s\n", exit, title)
			lastExit, lastBand = exit, -1
		}
		if band, ok := bandOf(sub); ok && band != lastBand {
			if band > 0 {
				fmt.Fprintf(&b, "\n_Subcodes %d-%d: %s._\n", bandStart(band), bandStart(band)+98, bandTitles[band])
			}
			lastBand = band
		}
		fmt.Fprintf(&b, "\n### %s\n\n", e.Code)
		fmt.Fprintf(&b, "**Message:** `%s`\n\n", e.Detail.Message)
		b.WriteString(e.Detail.Detail)
		b.WriteString("\n")
	}
	return b.Bytes()
}

// parseCode splits JTO-<exit>-<sub>; malformed codes yield zeros.
func parseCode(code string) (int, int) {
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		return 0, 0
	}
	exit, err1 := strconv.Atoi(parts[1])
	sub, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return exit, sub
}

// bandOf groups subcodes in hundreds: 1-99 is band 0, 101-199 band 1, up to
// band 5.
func bandOf(sub int) (int, bool) {
	if sub < 1 || sub > 599 {
		return 0, false
	}
	return (sub - 1) / 100, true
}

func bandStart(band int) int {
	return band*100 + 1
}

// findModuleRoot walks up from the working directory to the nearest go.mod,
// falling back to the working directory.
func findModuleRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	for dir := wd; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return wd
		}
		dir = parent
	}
}
