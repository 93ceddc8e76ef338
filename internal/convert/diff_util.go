package convert

import (
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// unifiedDiff builds a unified diff from the existing file (A) to the freshly
// converted source (B).
func unifiedDiff(path, existing, rendered string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(existing),
		B:        difflib.SplitLines(rendered),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	}
	diffText, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", NewExitError("JTO-106-1", path).WithErr(err)
	}
	return diffText, nil
}

var (
	diffHeader  = color.New(color.Bold)
	diffHunk    = color.New(color.FgCyan)
	diffRemoved = color.New(color.FgRed)
	diffAdded   = color.New(color.FgGreen)
)

// colorizeDiff highlights a unified diff. It returns the text unchanged when
// color output is disabled (stdout is not a terminal, or NO_COLOR is set).
func colorizeDiff(diffText string) string {
	if color.NoColor {
		return diffText
	}
	lines := strings.SplitAfter(diffText, "\n")
	var b strings.Builder
	b.Grow(len(diffText) + len(lines)*8)
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		nl := line[len(body):]
		switch {
		case strings.HasPrefix(body, "--- "), strings.HasPrefix(body, "+++ "):
			b.WriteString(diffHeader.Sprint(body))
		case strings.HasPrefix(body, "@@"):
			b.WriteString(diffHunk.Sprint(body))
		case strings.HasPrefix(body, "-"):
			b.WriteString(diffRemoved.Sprint(body))
		case strings.HasPrefix(body, "+"):
			b.WriteString(diffAdded.Sprint(body))
		default:
			b.WriteString(body)
		}
		b.WriteString(nl)
	}
	return b.String()
}
