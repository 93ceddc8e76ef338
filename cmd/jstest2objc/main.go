package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"jstest2objc/internal/convert"
	"jstest2objc/internal/renderer"
	"jstest2objc/internal/version"
)

func main() {
	args := os.Args[1:]
	if containsVersionFlag(args) {
		fmt.Fprintln(os.Stdout, version.String())
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	handleError(dispatch(ctx, args))
}

func dispatch(ctx context.Context, args []string) error {
	// No command at all, or only flags: convert stdin to stdout.
	if len(args) == 0 || (strings.HasPrefix(args[0], "-") && !isHelpArg(args[0])) {
		return runConvert(ctx, args)
	}

	cmd := args[0]
	subArgs := args[1:]

	switch cmd {
	case "convert":
		return runConvert(ctx, subArgs)
	case "diff":
		return runDiff(ctx, subArgs)
	case "validate":
		return runValidate(ctx, subArgs)
	case "version":
		return runVersion(subArgs)
	case "-h", "--help", "help":
		printUsage(os.Stdout)
		return exitRequest{code: convert.ExitOK}
	default:
		if isInputFile(cmd) {
			return runConvert(ctx, args)
		}
		err := convert.NewExitError("JTO-101-1", cmd)
		if s := suggestCommand(cmd); s != "" {
			return err.WithErr(fmt.Errorf("did you mean %q?", s))
		}
		return err
	}
}

// isInputFile reports whether a non-command first argument names a file to
// convert.
func isInputFile(arg string) bool {
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

var commands = []string{"convert", "diff", "validate", "version", "help"}

// suggestCommand returns the closest known command, or "" when nothing is
// close enough.
func suggestCommand(name string) string {
	ranks := fuzzy.RankFindFold(name, commands)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	for _, c := range commands {
		if fuzzy.LevenshteinDistance(strings.ToLower(name), c) <= 2 {
			return c
		}
	}
	return ""
}

// ruleFlags are shared by every command that runs the pipeline.
type ruleFlags struct {
	configPath   string
	numbers      string
	noAssertions bool
	keepHelpers  bool
}

func (r *ruleFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&r.configPath, "config", "", "read rewrite rules from a YAML file")
	fs.StringVar(&r.numbers, "numbers", "", "integer and boolean printing: coerce or legacy")
	fs.BoolVar(&r.noAssertions, "no-assertions", false, "leave shouldCompileTo calls untouched")
	fs.BoolVar(&r.keepHelpers, "keep-helpers", false, "do not rewrite [hash, helpers] to hash")
}

// resolve layers command-line flags over the config file over the defaults.
func (r *ruleFlags) resolve() (convert.Rules, error) {
	rules, err := convert.LoadRules(r.configPath)
	if err != nil {
		return convert.Rules{}, err
	}
	if r.numbers != "" {
		policy, err := renderer.ParseNumberPolicy(r.numbers)
		if err != nil {
			return convert.Rules{}, convert.NewExitError("JTO-107-3", r.numbers).WithErr(err)
		}
		rules.Numbers = policy
	}
	if r.noAssertions {
		rules.Assertions = false
	}
	if r.keepHelpers {
		rules.NormalizeHelpers = false
	}
	return rules, nil
}

func runConvert(ctx context.Context, args []string) error {
	var outputPath string
	var force bool
	var quiet bool
	var rf ruleFlags

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.StringVar(&outputPath, "output", "", "write to a file instead of stdout")
	fs.StringVar(&outputPath, "o", "", "write to a file instead of stdout (shorthand)")
	fs.BoolVar(&force, "force", false, "overwrite an existing output file")
	fs.BoolVar(&force, "f", false, "overwrite an existing output file (shorthand)")
	fs.BoolVar(&quiet, "quiet", false, "suppress informational output")
	fs.BoolVar(&quiet, "q", false, "suppress informational output (shorthand)")
	rf.bind(fs)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: jstest2objc convert [flags] [INPUT_FILE]\n\nReads stdin when INPUT_FILE is omitted or \"-\".\n\nFlags:\n")
		fs.SetOutput(os.Stderr)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return exitRequest{code: convert.ExitOK}
		}
		return convert.NewExitError("JTO-101-2", err.Error())
	}

	if fs.NArg() > 1 {
		return convert.NewExitError("JTO-101-3")
	}

	rules, err := rf.resolve()
	if err != nil {
		return err
	}

	return convert.Convert(ctx, convert.ConvertOptions{
		InputPath:  fs.Arg(0),
		OutputPath: outputPath,
		Force:      force,
		Quiet:      quiet,
		Rules:      rules,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
}

func runDiff(ctx context.Context, args []string) error {
	var outputPath string
	var rf ruleFlags

	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	fs.StringVar(&outputPath, "output", "", "existing Objective-C file to compare against")
	fs.StringVar(&outputPath, "o", "", "existing Objective-C file to compare against (shorthand)")
	rf.bind(fs)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: jstest2objc diff --output TARGET [flags] [INPUT_FILE]\n\nFlags:\n")
		fs.SetOutput(os.Stderr)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return exitRequest{code: convert.ExitOK}
		}
		return convert.NewExitError("JTO-101-2", err.Error())
	}

	if fs.NArg() > 1 {
		return convert.NewExitError("JTO-101-3")
	}

	rules, err := rf.resolve()
	if err != nil {
		return err
	}

	result, err := convert.Diff(ctx, convert.DiffOptions{
		InputPath:  fs.Arg(0),
		OutputPath: outputPath,
		Rules:      rules,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
	})
	if err != nil {
		return err
	}
	if result.Changed {
		return exitRequest{code: convert.ExitDiffers}
	}
	return nil
}

func runValidate(ctx context.Context, args []string) error {
	var rf ruleFlags

	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	rf.bind(fs)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: jstest2objc validate [flags] [INPUT_FILE]\n\nFlags:\n")
		fs.SetOutput(os.Stderr)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return exitRequest{code: convert.ExitOK}
		}
		return convert.NewExitError("JTO-101-2", err.Error())
	}

	if fs.NArg() > 1 {
		return convert.NewExitError("JTO-101-3")
	}

	rules, err := rf.resolve()
	if err != nil {
		return err
	}

	return convert.Validate(ctx, convert.ValidateOptions{
		InputPath: fs.Arg(0),
		Rules:     rules,
		Stdin:     os.Stdin,
	})
}

func runVersion(args []string) error {
	if len(args) > 0 {
		return convert.NewExitError("JTO-101-4")
	}
	fmt.Fprintln(os.Stdout, version.String())
	return nil
}

func handleError(err error) {
	if err == nil {
		return
	}

	var req exitRequest
	if errors.As(err, &req) {
		os.Exit(req.code)
	}

	var exitErr *convert.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, exitErr.Error())
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "jstest2objc: unexpected error: %v\n", err)
	os.Exit(convert.ExitInternalError)
}

func containsVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" {
			return true
		}
	}
	return false
}

func isHelpArg(arg string) bool {
	return arg == "-h" || arg == "--help"
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: jstest2objc [command] [flags] [INPUT_FILE]")
	fmt.Fprintln(w, "\nConverts a Handlebars.js spec file into Objective-C XCTest source.")
	fmt.Fprintln(w, "With no command, converts INPUT_FILE (or stdin) to stdout.")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  convert   Convert a spec file (default)")
	fmt.Fprintln(w, "  diff      Compare an existing Objective-C file with regenerated output")
	fmt.Fprintln(w, "  validate  Run the conversion and report errors without writing output")
	fmt.Fprintln(w, "  version   Print the version string")
	fmt.Fprintln(w, "\nGlobal Options:")
	fmt.Fprintln(w, "  --version  Print the version string and exit")
}

type exitRequest struct {
	code int
}

func (e exitRequest) Error() string {
	return ""
}
