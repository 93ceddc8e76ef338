package convert

import "context"

// Validate runs the full pipeline and discards the output, so every literal
// is parsed and printed exactly as a real conversion would.
func Validate(ctx context.Context, opts ValidateOptions) error {
	_, err := convertInput(ctx, opts.InputPath, opts.Stdin, opts.Rules)
	return err
}
