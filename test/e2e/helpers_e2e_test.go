package e2e

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce sync.Once
	buildErr  error
	binPath   string
)

// buildCLI builds jstest2objc once per package and returns the binary path.
func buildCLI(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.Getwd()
		if err != nil {
			buildErr = err
			return
		}
		repoRoot := filepath.Clean(filepath.Join(dir, "..", ".."))
		tempDir, err := os.MkdirTemp("", "jstest2objc-bin-*")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(tempDir, "jstest2objc")
		cmd := exec.Command("go", "build", "-o", binPath, "./cmd/jstest2objc")
		cmd.Dir = repoRoot
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		buildErr = cmd.Run()
	})
	if buildErr != nil {
		t.Fatalf("build jstest2objc: %v", buildErr)
	}
	return binPath
}

// runCLI runs the binary with stdin and args and returns stdout, stderr, and
// the process exit code.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	bin := buildCLI(t)
	cmd := exec.Command(bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	var in io.Reader = strings.NewReader(stdin)
	cmd.Stdin = in
	err := cmd.Run()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("run jstest2objc: %v", err)
		}
		code = exitErr.ExitCode()
	}
	return stdout.String(), stderr.String(), code
}

// writeSpec writes a JavaScript spec file and returns its absolute path.
func writeSpec(t *testing.T, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("abs path: %v", err)
	}
	return abs
}

const blocksSpec = `describe("blocks", function() {
  it("array", function() {
    var string = "{{#goodbyes}}{{text}}! {{/goodbyes}}cruel {{world}}!";
    var hash = {goodbyes: [{text: "goodbye"}, {text: "Goodbye"}, {text: "GOODBYE"}], world: "world"};
    shouldCompileTo(string, hash, "goodbye! Goodbye! GOODBYE! cruel world!", "Arrays iterate over the contents when not empty");
  });

  it("#each with @index", function() {
    shouldCompileTo("{{#each goodbyes}}{{@index}}{{/each}}", {goodbyes: ["a", "b"]}, "01", "index");
  });
});
`
