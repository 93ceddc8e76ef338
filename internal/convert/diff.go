package convert

import (
	"context"
	"io"
	"os"
)

// Diff regenerates the Objective-C source and compares it with the existing
// target file, printing a unified diff when they differ. The diff is colored
// only when stdout is a terminal.
func Diff(ctx context.Context, opts DiffOptions) (DiffResult, error) {
	if opts.OutputPath == "" {
		return DiffResult{}, NewExitError("JTO-101-5")
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	rendered, err := convertInput(ctx, opts.InputPath, opts.Stdin, opts.Rules)
	if err != nil {
		return DiffResult{}, err
	}

	targetPath, err := resolveOutputPath(opts.InputPath, opts.OutputPath)
	if err != nil {
		return DiffResult{}, err
	}

	existing, err := readFileIfExists(targetPath)
	if err != nil {
		return DiffResult{}, err
	}

	if string(existing) == rendered {
		return DiffResult{Changed: false}, nil
	}

	diffText, err := unifiedDiff(targetPath, string(existing), rendered)
	if err != nil {
		return DiffResult{}, err
	}
	if diffText != "" {
		if _, err := io.WriteString(stdout, colorizeDiff(diffText)); err != nil {
			return DiffResult{}, NewExitError("JTO-106-2", targetPath).WithErr(err)
		}
	}

	return DiffResult{Changed: true}, nil
}
