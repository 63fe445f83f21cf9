package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/critique/internal/providers"
	"github.com/dshills/critique/internal/records"
)

// resetFlags resets all package-level flag variables to their defaults.
func resetFlags() {
	flagVerbose = false
	flagProvider = ""
	flagModel = ""
	flagMaxTokens = 0
	flagTemperature = ""
	flagExt = ""
	flagFormat = ""
	flagOut = ""
	flagRetries = -1
	flagCache = false
	flagRedact = false
	flagFilterField = records.DefaultFilterField
	flagFilterValue = "Kenya"
	flagNumericField = records.DefaultNumericField
	flagRecordsOut = ""
	flagOutFormat = "json"
	flagExpiredOnly = false
	flagForce = false
	flagShowPath = false
}

type fakeCompleter struct {
	text  string
	err   error
	calls int
	reqs  []providers.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req providers.Request) (providers.Response, error) {
	f.calls++
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return providers.Response{}, f.err
	}
	return providers.Response{Text: f.text, TokensUsed: 12}, nil
}

func (f *fakeCompleter) Name() string { return "fake" }

// setup isolates config and cache state and installs fc as the provider.
func setup(t *testing.T, fc *fakeCompleter) {
	t.Helper()
	resetFlags()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, k := range []string{
		"CRITIQUE_PROVIDER", "CRITIQUE_MODEL", "CRITIQUE_MAX_TOKENS", "CRITIQUE_TEMPERATURE",
		"CRITIQUE_EXTENSION", "CRITIQUE_MAX_FILE_CHARS", "CRITIQUE_RETRIES", "CRITIQUE_FORMAT",
		"CRITIQUE_CACHE", "CRITIQUE_CACHE_DIR", "CRITIQUE_REDACT",
	} {
		t.Setenv(k, "")
	}

	orig := newCompleter
	t.Cleanup(func() { newCompleter = orig })
	newCompleter = func(provider, model string, opts ...providers.Option) (providers.Completer, error) {
		return fc, nil
	}
}

func run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReview_WrongExtension(t *testing.T) {
	fc := &fakeCompleter{text: "unused"}
	setup(t, fc)
	path := writeFile(t, "notes.txt", "first line\nsecond line\n")

	code, stdout, stderr := run(path)

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "wrong file type")
	assert.Empty(t, stdout)
	assert.Zero(t, fc.calls, "no request may be made for a rejected file")
}

func TestReview_Validation(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.py") }, "file not found"},
		{"empty", func(t *testing.T) string { return writeFile(t, "blank.py", "  \n\t\n") }, "the file is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCompleter{text: "unused"}
			setup(t, fc)

			code, _, stderr := run(tt.path(t))

			assert.Equal(t, ExitFailure, code)
			assert.Contains(t, stderr, tt.wantErr)
			assert.Zero(t, fc.calls)
		})
	}
}

func TestReview_Success(t *testing.T) {
	fc := &fakeCompleter{text: "[WARNING] Line 1 - Style\nProblem: x.\n\nSUMMARY\nFine."}
	setup(t, fc)
	src := "def f(x):\n    return 1 / x\n"
	path := writeFile(t, "calc.py", src)

	code, stdout, stderr := run(path)

	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, 1, fc.calls)
	assert.Contains(t, stderr, "Reviewing 'calc.py' with gpt-4o...")
	assert.NotContains(t, stderr, "Warning:")

	border := strings.Repeat("=", 60)
	assert.True(t, strings.HasPrefix(stdout, "\n"+border+"\n  CODE REVIEW: calc.py\n  Model: gpt-4o\n"), stdout)
	assert.Contains(t, stdout, fc.text)

	req := fc.reqs[0]
	assert.Contains(t, req.User, "```python\n"+src+"\n```")
	assert.Equal(t, 2048, req.MaxTokens)
	assert.InDelta(t, 0.2, req.Temperature, 1e-9)
}

func TestReview_Flags(t *testing.T) {
	fc := &fakeCompleter{text: "[CRITICAL] Line 3 - Security\nProblem: y."}
	setup(t, fc)
	path := writeFile(t, "main.go", "package main\n")
	outPath := filepath.Join(t.TempDir(), "review.json")

	code, stdout, stderr := run(path, "--ext", "go", "--model", "gpt-4o-mini", "--max-tokens", "500",
		"--temperature", "0", "--format", "json", "--out", outPath)

	require.Equal(t, ExitSuccess, code, stderr)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "with gpt-4o-mini")
	assert.Equal(t, 500, fc.reqs[0].MaxTokens)
	assert.Zero(t, fc.reqs[0].Temperature)
	assert.Contains(t, fc.reqs[0].System, "IDIOMATIC GO")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"model": "gpt-4o-mini"`)
	assert.Contains(t, string(data), `"critical": 1`)
}

func TestReview_LargeFileWarning(t *testing.T) {
	fc := &fakeCompleter{text: "ok"}
	setup(t, fc)
	path := writeFile(t, "big.py", strings.Repeat("x", 12_345))

	code, _, stderr := run(path)

	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "Warning: This file is 12,345 characters.")
	assert.Equal(t, 1, fc.calls, "a large file is still sent")
}

func TestReview_ServiceError(t *testing.T) {
	fc := &fakeCompleter{err: &providers.ServiceError{Provider: "openai", Kind: providers.KindAuth, Message: "OPENAI_API_KEY environment variable is not set"}}
	setup(t, fc)
	path := writeFile(t, "a.py", "x = 1\n")

	code, stdout, stderr := run(path)

	assert.Equal(t, ExitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error:")
	assert.Contains(t, stderr, "OPENAI_API_KEY")
	assert.Contains(t, stderr, "models doctor")
}

func TestReview_Cache(t *testing.T) {
	fc := &fakeCompleter{text: "cached review"}
	setup(t, fc)
	path := writeFile(t, "a.py", "x = 1\n")

	code, _, _ := run(path, "--cache")
	require.Equal(t, ExitSuccess, code)
	resetFlags()
	code, stdout, _ := run(path, "--cache")
	require.Equal(t, ExitSuccess, code)

	assert.Equal(t, 1, fc.calls)
	assert.Contains(t, stdout, "cached review")
}

func TestReview_Arity(t *testing.T) {
	fc := &fakeCompleter{text: "unused"}
	setup(t, fc)

	code, stdout, stderr := run()
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "accepts 1 arg(s), received 0")
	assert.Contains(t, stdout+stderr, "Usage:")

	resetFlags()
	code, _, _ = run("a.py", "b.py")
	assert.Equal(t, ExitFailure, code)
	assert.Zero(t, fc.calls)
}

func TestReview_InvalidFormat(t *testing.T) {
	fc := &fakeCompleter{text: "unused"}
	setup(t, fc)
	path := writeFile(t, "a.py", "x = 1\n")

	code, _, stderr := run(path, "--format", "sarif")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "unsupported format")
	assert.Zero(t, fc.calls)
}

const peopleCSV = "name,age,country\nA,30,Kenya\nB,40,Uganda\n"

func TestRecords(t *testing.T) {
	setup(t, &fakeCompleter{})
	path := writeFile(t, "people.csv", peopleCSV)
	outPath := filepath.Join(t.TempDir(), "kenya.yaml")

	code, stdout, stderr := run("records", path, "--out", outPath, "--out-format", "yaml")

	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Matched records: 1\n")
	assert.Contains(t, stdout, "Average age: 30\n")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "- age: 30\n  country: Kenya\n  name: A\n", string(data))
}

func TestRecords_NoMatch(t *testing.T) {
	setup(t, &fakeCompleter{})
	path := writeFile(t, "people.csv", peopleCSV)

	code, stdout, stderr := run("records", path, "--value", "Peru")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout, "Matched records: 0")
	assert.Contains(t, stderr, "no records with country = \"Peru\"")
}

func TestRecords_BadNumber(t *testing.T) {
	setup(t, &fakeCompleter{})
	path := writeFile(t, "people.csv", "name,age,country\nA,thirty,Kenya\n")

	code, _, stderr := run("records", path)

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "age")
}

func TestModelsDoctor(t *testing.T) {
	fc := &fakeCompleter{text: "ok"}
	setup(t, fc)

	code, stdout, _ := run("models", "doctor")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "OK: fake is configured")
	assert.Equal(t, 10, fc.reqs[0].MaxTokens)

	fc.err = errors.New("boom")
	resetFlags()
	code, _, stderr := run("models", "doctor")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "FAIL: boom")
}

func TestModelsList(t *testing.T) {
	setup(t, &fakeCompleter{})
	code, stdout, _ := run("models", "list")
	assert.Equal(t, ExitSuccess, code)
	for _, name := range providers.Names {
		assert.Contains(t, stdout, name+" (")
	}
}

func TestConfigSetShow(t *testing.T) {
	setup(t, &fakeCompleter{})

	code, stdout, _ := run("config", "set", "model", "gpt-4.1")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Set model = gpt-4.1")

	code, stdout, _ = run("config", "show")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, `"model": "gpt-4.1"`)

	code, _, _ = run("config", "set", "maxTokens", "-5")
	assert.Equal(t, ExitFailure, code)
}

func TestCacheShowClear(t *testing.T) {
	fc := &fakeCompleter{text: "review"}
	setup(t, fc)
	path := writeFile(t, "a.py", "x = 1\n")

	code, stdout, _ := run("cache", "show")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Cache:     disabled")
	assert.Contains(t, stdout, "Entries:   0 (0 expired)")

	code, _, _ = run(path, "--cache")
	require.Equal(t, ExitSuccess, code)
	resetFlags()

	code, stdout, _ = run("cache", "show")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Entries:   1 (0 expired)")
	assert.Contains(t, stdout, "Oldest:")

	code, stdout, _ = run("cache", "clear", "--expired")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Removed 0 expired entries")
	resetFlags()

	code, stdout, _ = run("cache", "clear")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Removed 1 entries")
}

func TestConfigInit(t *testing.T) {
	setup(t, &fakeCompleter{})

	code, stdout, _ := run("config", "show", "--path")
	require.Equal(t, ExitSuccess, code)
	path := strings.TrimSpace(stdout)

	code, _, _ = run("config", "init")
	require.Equal(t, ExitSuccess, code)
	_, err := os.Stat(path)
	require.NoError(t, err)

	code, _, stderr := run("config", "init")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "already exists")
}

func TestVersion(t *testing.T) {
	setup(t, &fakeCompleter{})
	code, stdout, _ := run("version")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "critique version "+version+"\n", stdout)
}

func TestBuildOverrides(t *testing.T) {
	resetFlags()
	assert.Empty(t, buildOverrides())

	flagExt = "go"
	flagRetries = 2
	flagCache = true
	flagRedact = true
	m := buildOverrides()
	assert.Equal(t, map[string]string{
		"extension":     "go",
		"retries":       "2",
		"cache.enabled": "true",
		"redact":        "true",
	}, m)
}
