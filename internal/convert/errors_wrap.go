package convert

import (
	"context"
	"errors"

	"jstest2objc/internal/parser"
	"jstest2objc/internal/renderer"
)

// wrapStepError maps a pipeline failure to its catalog entry.
func wrapStepError(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	var perr *parser.ParseError
	if errors.As(err, &perr) {
		code := perr.DetailCode
		if code == "" {
			code = "JTO-103-3"
		}
		return newDetailError(code, perr.DetailArgs).WithErr(err)
	}

	var rerr *renderer.RenderError
	if errors.As(err, &rerr) {
		return newDetailError(rerr.DetailCode(), rerr.DetailArgs()).WithErr(err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewExitError("JTO-199-1").WithErr(err)
	}
	return NewExitError("JTO-199-2").WithErr(err)
}

// newDetailError tolerates codes the registry does not know, which would
// otherwise panic in NewExitError.
func newDetailError(code string, args []any) *ExitError {
	if _, ok := errorRegistry[code]; !ok {
		return &ExitError{Code: ExitInternalError, Msg: "unregistered detail code " + code, DetailCode: code}
	}
	return NewExitError(code, args...)
}
