package convert

import "io"

// ConvertOptions configure the convert subcommand.
type ConvertOptions struct {
	InputPath  string
	OutputPath string
	Force      bool
	Quiet      bool
	Rules      Rules

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DiffOptions configure the diff subcommand.
type DiffOptions struct {
	InputPath  string
	OutputPath string
	Rules      Rules

	Stdin  io.Reader
	Stdout io.Writer
}

// DiffResult reports whether differences were detected.
type DiffResult struct {
	Changed bool
}

// ValidateOptions configure the validate subcommand.
type ValidateOptions struct {
	InputPath string
	Rules     Rules

	Stdin io.Reader
}
