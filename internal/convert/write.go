package convert

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// outputMode is the permission of generated .m files; they are checked into
// Xcode projects and read by everyone.
const outputMode = 0o644

var testMethodPattern = regexp.MustCompile(`(?m)^- \(void\) test`)

// countTestMethods reports how many XCTest methods a generated source declares.
func countTestMethods(source []byte) int {
	return len(testMethodPattern.FindAllIndex(source, -1))
}

// writeOutput installs the generated source at path. A file that already holds
// the same bytes is left alone; one with different bytes is replaced only with
// force. Unless quiet, one status line goes to stderr.
func writeOutput(path string, content []byte, quiet bool, force bool, stderr io.Writer) error {
	existing, err := existingOutput(path)
	if err != nil {
		return err
	}

	report := fmt.Sprintf("wrote %s (%d test methods)", path, countTestMethods(content))
	switch {
	case existing != nil && bytes.Equal(existing, content):
		report = fmt.Sprintf("wrote %s (unchanged)", path)
	case existing != nil && !force:
		return NewExitError("JTO-105-101", path)
	default:
		if err := installFile(path, content); err != nil {
			return err
		}
	}

	if !quiet {
		fmt.Fprintln(stderr, report)
	}
	return nil
}

// existingOutput returns the current bytes at path, or nil when nothing is
// there yet.
func existingOutput(path string) ([]byte, error) {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil, nil
	case err != nil:
		return nil, NewExitError("JTO-105-4", path).WithErr(err)
	case info.IsDir():
		return nil, NewExitError("JTO-101-7", path)
	}
	data, err := readFileIfExists(path)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// installFile writes content beside path and renames it into place, so Xcode
// never sees a half-written source file.
func installFile(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jstest2objc-*.m")
	if err != nil {
		return NewExitError("JTO-105-201", filepath.Dir(path)).WithErr(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	_, err = tmp.Write(content)
	if err == nil {
		err = tmp.Chmod(outputMode)
	}
	if err != nil {
		tmp.Close()
		return NewExitError("JTO-105-202", tmpName).WithErr(err)
	}
	if err := tmp.Close(); err != nil {
		return NewExitError("JTO-105-203", tmpName).WithErr(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return NewExitError("JTO-105-301", tmpName, path).WithErr(err)
	}
	return nil
}

func readFileIfExists(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, NewExitError("JTO-105-102", path).WithErr(err)
	}
	return data, nil
}
