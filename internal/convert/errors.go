package convert

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Exit codes. Exit code 1 is reserved for "differences exist" in diff;
// every other failure begins at 101.
const (
	ExitOK            = 0
	ExitDiffers       = 1
	ExitInvalidInput  = 101
	ExitInputRead     = 102
	ExitLiteralParse  = 103
	ExitLiteralRender = 104
	ExitOutputFailure = 105
	ExitDiffFailure   = 106
	ExitConfigError   = 107
	ExitInternalError = 199
)

// ErrorDetail describes a specific failure variant within a coarse exit code.
type ErrorDetail struct {
	Exit    int
	Message string
	Detail  string
	DocSlug string
}

// ErrorDetailEntry pairs a detail code with its metadata.
type ErrorDetailEntry struct {
	Code   string
	Detail ErrorDetail
}

var errorRegistry = map[string]ErrorDetail{
	// 101 CLI usage
	"JTO-101-1": {Exit: ExitInvalidInput, Message: "unknown command %q", Detail: "An unsupported subcommand was provided. Use `convert`, `diff`, `validate`, or `version`, or run without a command to convert an existing input file or stdin.", DocSlug: "docs/errors.md#jto-101-1"},
	"JTO-101-2": {Exit: ExitInvalidInput, Message: "unknown or invalid flag %q", Detail: "An unknown or invalid flag was provided. See `jstest2objc <command> --help` for supported options.", DocSlug: "docs/errors.md#jto-101-2"},
	"JTO-101-3": {Exit: ExitInvalidInput, Message: "unexpected positional arguments", Detail: "Too many positional arguments were provided. Provide at most one optional INPUT_FILE.", DocSlug: "docs/errors.md#jto-101-3"},
	"JTO-101-4": {Exit: ExitInvalidInput, Message: "version command does not accept flags or arguments", Detail: "Run `jstest2objc version` with no flags or arguments.", DocSlug: "docs/errors.md#jto-101-4"},
	"JTO-101-5": {Exit: ExitInvalidInput, Message: "diff requires a target file", Detail: "`diff` compares against an existing Objective-C file. Pass it with `--output`.", DocSlug: "docs/errors.md#jto-101-5"},
	"JTO-101-6": {Exit: ExitInvalidInput, Message: "cannot derive an output file name from stdin", Detail: "The output path is a directory, so a file name must be derived from the input name. Provide an INPUT_FILE or a full output file path.", DocSlug: "docs/errors.md#jto-101-6"},
	"JTO-101-7": {Exit: ExitInvalidInput, Message: "output path %q is a directory", Detail: "The output path resolves to a directory. Choose a path that resolves to a regular file.", DocSlug: "docs/errors.md#jto-101-7"},

	// 102 Input read
	"JTO-102-1":   {Exit: ExitInputRead, Message: "input %q not found", Detail: "The selected input does not exist. Verify the path.", DocSlug: "docs/errors.md#jto-102-1"},
	"JTO-102-2":   {Exit: ExitInputRead, Message: "input %q is a directory", Detail: "The selected input resolves to a directory. Provide a readable regular file.", DocSlug: "docs/errors.md#jto-102-2"},
	"JTO-102-3":   {Exit: ExitInputRead, Message: "input %q path component is not a directory", Detail: "One or more path components are not directories (ENOTDIR). Fix the path structure.", DocSlug: "docs/errors.md#jto-102-3"},
	"JTO-102-4":   {Exit: ExitInputRead, Message: "input %q symlink loop detected", Detail: "A symbolic link loop prevents resolving the selected input (ELOOP).", DocSlug: "docs/errors.md#jto-102-4"},
	"JTO-102-5":   {Exit: ExitInputRead, Message: "input %q name too long", Detail: "The path or filename exceeds the length limit (ENAMETOOLONG).", DocSlug: "docs/errors.md#jto-102-5"},
	"JTO-102-101": {Exit: ExitInputRead, Message: "permission denied reading %q", Detail: "Reading the file was denied by the operating system. Check file ownership and read permissions.", DocSlug: "docs/errors.md#jto-102-101"},
	"JTO-102-201": {Exit: ExitInputRead, Message: "I/O error reading %q", Detail: "Reading the selected input failed. Try again or check the media.", DocSlug: "docs/errors.md#jto-102-201"},

	// 103 Malformed literal
	"JTO-103-1":  {Exit: ExitLiteralParse, Message: "empty literal expression", Detail: "A `var NAME = ...;` statement has nothing between `=` and `;`.", DocSlug: "docs/errors.md#jto-103-1"},
	"JTO-103-2":  {Exit: ExitLiteralParse, Message: "unterminated string literal", Detail: "A quoted string inside a literal is not closed. Strings must not contain `;` because the statement ends at the first `;`.", DocSlug: "docs/errors.md#jto-103-2"},
	"JTO-103-3":  {Exit: ExitLiteralParse, Message: "unexpected character %q", Detail: "The literal contains a character that does not start a mapping, sequence, string, number, or boolean.", DocSlug: "docs/errors.md#jto-103-3"},
	"JTO-103-4":  {Exit: ExitLiteralParse, Message: "unsupported identifier %q", Detail: "Only `true`, `false`, and `null` are accepted as bare words. Variables, function calls, and other expressions are never evaluated.", DocSlug: "docs/errors.md#jto-103-4"},
	"JTO-103-5":  {Exit: ExitLiteralParse, Message: "unexpected trailing input %q", Detail: "The literal is followed by more text before `;`. Only one literal expression is allowed per statement.", DocSlug: "docs/errors.md#jto-103-5"},
	"JTO-103-6":  {Exit: ExitLiteralParse, Message: "operator + applied to %s and %s", Detail: "`+` is only supported between string literals.", DocSlug: "docs/errors.md#jto-103-6"},
	"JTO-103-7":  {Exit: ExitLiteralParse, Message: "expected %q", Detail: "A mapping or sequence is missing a separator or closing bracket.", DocSlug: "docs/errors.md#jto-103-7"},
	"JTO-103-8":  {Exit: ExitLiteralParse, Message: "unsupported mapping key starting with %q", Detail: "Mapping keys must be quoted strings or bare identifiers.", DocSlug: "docs/errors.md#jto-103-8"},
	"JTO-103-9":  {Exit: ExitLiteralParse, Message: "invalid escape sequence", Detail: "Strings accept the JavaScript escapes `\\n \\t \\r \\b \\f \\v \\0`, `\\xHH`, `\\uHHHH` (surrogate pairs are combined), and `\\\" \\' \\\\ \\/`. Any other escape is rejected.", DocSlug: "docs/errors.md#jto-103-9"},
	"JTO-103-10": {Exit: ExitLiteralParse, Message: "unexpected end of literal", Detail: "The literal ends before a mapping, sequence, or operand is complete.", DocSlug: "docs/errors.md#jto-103-10"},
	"JTO-103-11": {Exit: ExitLiteralParse, Message: "literal nested deeper than %d levels", Detail: "Mappings and sequences are nested too deeply.", DocSlug: "docs/errors.md#jto-103-11"},

	// 104 Literal render
	"JTO-104-1": {Exit: ExitLiteralRender, Message: "unsupported value kind %s", Detail: "Only mappings, sequences, strings, symbols, booleans, and integers can be printed as Objective-C literals.", DocSlug: "docs/errors.md#jto-104-1"},
	"JTO-104-2": {Exit: ExitLiteralRender, Message: "%s value cannot be printed under the legacy number policy", Detail: "The legacy number policy reproduces the historical converter, which failed on booleans and integers. Use `--numbers coerce` to print them as @true, @false, and @<digits>.", DocSlug: "docs/errors.md#jto-104-2"},

	// 105 Output
	"JTO-105-1":   {Exit: ExitOutputFailure, Message: "output directory %q does not exist", Detail: "Create the directory before running `jstest2objc`.", DocSlug: "docs/errors.md#jto-105-1"},
	"JTO-105-2":   {Exit: ExitOutputFailure, Message: "failed to access output directory %q", Detail: "The output directory could not be accessed. Check directory permissions.", DocSlug: "docs/errors.md#jto-105-2"},
	"JTO-105-3":   {Exit: ExitOutputFailure, Message: "output path parent %q is not a directory", Detail: "Select an output path whose parent is a directory.", DocSlug: "docs/errors.md#jto-105-3"},
	"JTO-105-4":   {Exit: ExitOutputFailure, Message: "failed to stat output file %q", Detail: "The output path could not be inspected.", DocSlug: "docs/errors.md#jto-105-4"},
	"JTO-105-101": {Exit: ExitOutputFailure, Message: "output file %q already exists", Detail: "Use `--force` when you intend to replace the existing file.", DocSlug: "docs/errors.md#jto-105-101"},
	"JTO-105-102": {Exit: ExitOutputFailure, Message: "failed to read output file %q", Detail: "Reading the existing output file failed.", DocSlug: "docs/errors.md#jto-105-102"},
	"JTO-105-201": {Exit: ExitOutputFailure, Message: "failed to create temporary output file in %q", Detail: "Check directory permissions and available disk space.", DocSlug: "docs/errors.md#jto-105-201"},
	"JTO-105-202": {Exit: ExitOutputFailure, Message: "failed to write temporary output file %q", Detail: "Resolve disk or permission issues that prevent writing the converted source.", DocSlug: "docs/errors.md#jto-105-202"},
	"JTO-105-203": {Exit: ExitOutputFailure, Message: "failed to close temporary output file %q", Detail: "Investigate filesystem issues causing failures on file close.", DocSlug: "docs/errors.md#jto-105-203"},
	"JTO-105-301": {Exit: ExitOutputFailure, Message: "failed to replace %q with %q atomically", Detail: "Atomic replacement failed during rename, often due to cross-filesystem moves or permissions.", DocSlug: "docs/errors.md#jto-105-301"},
	"JTO-105-401": {Exit: ExitOutputFailure, Message: "failed to write to stdout", Detail: "Writing the converted source to stdout failed.", DocSlug: "docs/errors.md#jto-105-401"},

	// 106 Diff
	"JTO-106-1": {Exit: ExitDiffFailure, Message: "failed to build diff for %q", Detail: "Building the diff failed.", DocSlug: "docs/errors.md#jto-106-1"},
	"JTO-106-2": {Exit: ExitDiffFailure, Message: "failed to write diff for %q", Detail: "Ensure stdout accepts diff output and rerun `jstest2objc diff`.", DocSlug: "docs/errors.md#jto-106-2"},

	// 107 Config
	"JTO-107-1": {Exit: ExitConfigError, Message: "failed to read config %q", Detail: "The configuration file could not be read.", DocSlug: "docs/errors.md#jto-107-1"},
	"JTO-107-2": {Exit: ExitConfigError, Message: "invalid config %q", Detail: "The configuration file is not valid YAML or contains unknown keys. Supported keys: `variables`, `assertions`, `numbers`, `normalize_helpers`.", DocSlug: "docs/errors.md#jto-107-2"},
	"JTO-107-3": {Exit: ExitConfigError, Message: "invalid number policy %q", Detail: "`numbers` must be `coerce` or `legacy`.", DocSlug: "docs/errors.md#jto-107-3"},
	"JTO-107-4": {Exit: ExitConfigError, Message: "invalid variable name %q", Detail: "Variable names must be JavaScript identifiers.", DocSlug: "docs/errors.md#jto-107-4"},

	// 199 Internal
	"JTO-199-1": {Exit: ExitInternalError, Message: "conversion interrupted", Detail: "The run was cancelled before all rewrite steps completed. No output was written.", DocSlug: "docs/errors.md#jto-199-1"},
	"JTO-199-2": {Exit: ExitInternalError, Message: "internal conversion error", Detail: "A rewrite step failed in an unexpected way. Please report this bug with the input that triggered it.", DocSlug: "docs/errors.md#jto-199-2"},
}

// ExitError represents an error that carries a process exit code.
type ExitError struct {
	Code       int
	Err        error
	Msg        string
	DetailCode string
	DetailText string
	DocSlug    string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	prefix := "jstest2objc ERROR"
	if e.DetailCode != "" {
		prefix = fmt.Sprintf("%s [%s]", prefix, e.DetailCode)
	}

	body := e.Msg
	if body == "" {
		body = fmt.Sprintf("unexpected error (code %d)", e.Code)
	}
	if e.Err != nil {
		body = fmt.Sprintf("%s: %v", body, e.Err)
	}

	out := fmt.Sprintf("%s: %s", prefix, body)
	if e.DetailText != "" {
		out += "\nDetail: " + e.DetailText
	}
	if e.DocSlug != "" {
		out += "\nReference: " + e.DocSlug
	}
	return out
}

// Unwrap allows errors.Is / errors.As to observe the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// WithErr returns a shallow copy of the error that wraps an additional error.
func (e *ExitError) WithErr(err error) *ExitError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Err = err
	return &clone
}

// NewExitError constructs an ExitError using a registered detail code.
func NewExitError(detailCode string, args ...any) *ExitError {
	detail, ok := errorRegistry[detailCode]
	if !ok {
		panic(fmt.Sprintf("jstest2objc: unknown error detail code %q", detailCode))
	}

	msg := detail.Message
	if len(args) > 0 {
		msg = fmt.Sprintf(detail.Message, args...)
	}

	return &ExitError{
		Code:       detail.Exit,
		Msg:        msg,
		DetailCode: detailCode,
		DetailText: detail.Detail,
		DocSlug:    detail.DocSlug,
	}
}

// LookupErrorDetail returns metadata for a detail code.
func LookupErrorDetail(code string) (ErrorDetail, bool) {
	detail, ok := errorRegistry[code]
	return detail, ok
}

// ErrorDetails returns all registered error details ordered by exit code,
// then subcode.
func ErrorDetails() []ErrorDetailEntry {
	keys := make([]string, 0, len(errorRegistry))
	for code := range errorRegistry {
		keys = append(keys, code)
	}
	sort.Slice(keys, func(i, j int) bool {
		ei, si := parseCode(keys[i])
		ej, sj := parseCode(keys[j])
		if ei != ej {
			return ei < ej
		}
		if si != sj {
			return si < sj
		}
		return keys[i] < keys[j]
	})

	entries := make([]ErrorDetailEntry, 0, len(keys))
	for _, code := range keys {
		entries = append(entries, ErrorDetailEntry{
			Code:   code,
			Detail: errorRegistry[code],
		})
	}
	return entries
}

// parseCode splits JTO-<exit>-<sub>.
func parseCode(code string) (exit, sub int) {
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		return 0, 0
	}
	exit, _ = strconv.Atoi(parts[1])
	sub, _ = strconv.Atoi(parts[2])
	return exit, sub
}
