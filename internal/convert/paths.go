package convert

import (
	"os"
	"path/filepath"
	"strings"
)

// resolveOutputPath turns --output into an absolute file path. A directory
// (existing, or spelled with a trailing separator) receives a file named
// after the input, with .js replaced by .m.
func resolveOutputPath(input, explicit string) (string, error) {
	candidate := explicit
	if strings.HasSuffix(explicit, string(os.PathSeparator)) {
		dir := strings.TrimSuffix(explicit, string(os.PathSeparator))
		if dir == "" {
			dir = explicit
		}
		info, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return "", NewExitError("JTO-105-1", dir).WithErr(err)
			}
			return "", NewExitError("JTO-105-2", dir).WithErr(err)
		}
		if !info.IsDir() {
			return "", NewExitError("JTO-105-3", dir)
		}
		name, err := deriveOutputFilename(input)
		if err != nil {
			return "", err
		}
		candidate = filepath.Join(dir, name)
	} else {
		info, err := os.Stat(explicit)
		switch {
		case err == nil && info.IsDir():
			name, err := deriveOutputFilename(input)
			if err != nil {
				return "", err
			}
			candidate = filepath.Join(explicit, name)
		case err == nil, os.IsNotExist(err):
		default:
			return "", NewExitError("JTO-105-4", explicit).WithErr(err)
		}
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", NewExitError("JTO-105-4", candidate).WithErr(err)
	}
	return abs, nil
}

func deriveOutputFilename(input string) (string, error) {
	if isStdin(input) {
		return "", NewExitError("JTO-101-6")
	}
	name := filepath.Base(input)
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".m", nil
}

func validateOutputPath(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return NewExitError("JTO-105-1", dir).WithErr(err)
		}
		return NewExitError("JTO-105-2", dir).WithErr(err)
	}
	if !info.IsDir() {
		return NewExitError("JTO-105-3", dir)
	}
	if finfo, ferr := os.Stat(path); ferr == nil && finfo.IsDir() {
		return NewExitError("JTO-101-7", path)
	} else if ferr != nil && !os.IsNotExist(ferr) {
		return NewExitError("JTO-105-4", path).WithErr(ferr)
	}
	return nil
}
