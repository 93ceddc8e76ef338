package convert

import (
	"context"
	"io"
	"os"
	"strings"
)

// Convert executes the convert workflow: read the whole input, run the
// pipeline, then write stdout or the --output file.
func Convert(ctx context.Context, opts ConvertOptions) error {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	out, err := convertInput(ctx, opts.InputPath, opts.Stdin, opts.Rules)
	if err != nil {
		return err
	}

	if opts.OutputPath == "" {
		if _, err := io.WriteString(stdout, out); err != nil {
			return NewExitError("JTO-105-401").WithErr(err)
		}
		return nil
	}

	targetPath, err := resolveOutputPath(opts.InputPath, opts.OutputPath)
	if err != nil {
		return err
	}
	if err := validateOutputPath(targetPath); err != nil {
		return err
	}
	return writeOutput(targetPath, []byte(out), opts.Quiet, opts.Force, stderr)
}

// convertInput reads and transforms one input. The result always ends with a
// newline, as the historical converter printed it with puts.
func convertInput(ctx context.Context, inputPath string, stdin io.Reader, rules Rules) (string, error) {
	source, err := readInput(inputPath, stdin)
	if err != nil {
		return "", err
	}
	out, err := Transform(ctx, source, rules)
	if err != nil {
		return "", wrapStepError(err)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}
