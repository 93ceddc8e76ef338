package convert

import (
	"errors"
	"io"
	"os"
)

const stdinName = "<stdin>"

func isStdin(path string) bool {
	return path == "" || path == "-"
}

// readInput returns the whole input. An empty path or "-" reads stdin.
func readInput(path string, stdin io.Reader) (string, error) {
	if isStdin(path) {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", NewExitError("JTO-102-201", stdinName).WithErr(err)
		}
		return string(data), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", NewExitError(classifyStatDetail(err), path).WithErr(err)
	}
	if info.IsDir() {
		return "", NewExitError("JTO-102-2", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return "", NewExitError("JTO-102-101", path).WithErr(err)
		}
		return "", NewExitError("JTO-102-201", path).WithErr(err)
	}
	return string(data), nil
}
