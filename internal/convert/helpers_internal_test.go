package convert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Shared fixtures for the convert tests.

const sampleSpec = `describe("basic context", function() {
  it("compiling with a basic context", function() {
    shouldCompileTo("Goodbye\n{{cruel}}\n{{world}}!", {cruel: "cruel", world: "world"}, "Goodbye\ncruel\nworld!", "It works if all the required keys are provided");
  });

  it("escaping", function() {
    var string = "{{#goodbyes}}{{text}}! {{/goodbyes}}cruel {{world}}!";
    var hash = {goodbyes: [{text: "goodbye"}, {text: "Goodbye"}], world: "world"};
    shouldCompileTo(string, [hash, helpers], "goodbye! Goodbye! cruel world!", "Arrays iterate over the contents when not empty");
  });
});
`

const sampleObjC = "// basic context\n" +
	"  // compiling with a basic context\n" +
	"- (void) testCompilingWithABasicContext\n" +
	"{\n" +
	"    \t    XCTAssertEqualObjects([HBHandlebars renderTemplate:@\"Goodbye\\n{{cruel}}\\n{{world}}!\" withContext:{cruel: \"cruel\", world: \"world\"}],\n" +
	"\t    \t@\"Goodbye\\ncruel\\nworld!\");\n" +
	"\n" +
	"  }\n" +
	"\n" +
	"  // escaping\n" +
	"- (void) testEscaping\n" +
	"{\n" +
	"    id string = @\"{{#goodbyes}}{{text}}! {{/goodbyes}}cruel {{world}}!\";\n" +
	"    id hash = @{ @\"goodbyes\": @[ @{ @\"text\": @\"goodbye\" } ,@{ @\"text\": @\"Goodbye\" } ], @\"world\": @\"world\" };\n" +
	"    \t    XCTAssertEqualObjects([HBHandlebars renderTemplate:@string withContext:hash],\n" +
	"\t    \t@\"goodbye! Goodbye! cruel world!\");\n" +
	"\n" +
	"  }\n" +
	"}\n"

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func expectExitError(t *testing.T, err error, detailCode string, exitCode int) *ExitError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", detailCode)
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %T (%v)", err, err)
	}
	if exitErr.DetailCode != detailCode {
		t.Fatalf("detail code = %s, want %s (%v)", exitErr.DetailCode, detailCode, err)
	}
	if exitErr.Code != exitCode {
		t.Fatalf("exit code = %d, want %d", exitErr.Code, exitCode)
	}
	return exitErr
}
