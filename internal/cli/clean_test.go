package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/codecleaner/pkg/codecleaner"
)

// executeCommand runs a fresh command tree so flag state never leaks between tests.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CODECLEANER_NON_INTERACTIVE", "1")
	t.Setenv(envWorkers, "")
	t.Setenv(envExtensions, "")

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestCleanCmd_ArgsValidation(t *testing.T) {
	_, _, err := executeCommand(t, "clean")
	require.Error(t, err)
	assert.Equal(t, codecleaner.ExitUsageError, codecleaner.ExitCodeForError(err))
}

func TestCleanCmd_UnknownFlag(t *testing.T) {
	_, _, err := executeCommand(t, "clean", t.TempDir(), "--nope")
	require.Error(t, err)
	assert.Equal(t, codecleaner.ExitUsageError, codecleaner.ExitCodeForError(err))
}

func TestCleanCmd_NonexistentPath(t *testing.T) {
	_, _, err := executeCommand(t, "clean", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, codecleaner.ExitPathNotFound, codecleaner.ExitCodeForError(err))
}

func TestCleanCmd_FileRoot(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.py": "x = 1  # c\n"})

	_, _, err := executeCommand(t, "clean", filepath.Join(dir, "a.py"), "--dry-run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, codecleaner.ErrPathNotFound))
	assert.Equal(t, codecleaner.ExitPathNotFound, codecleaner.ExitCodeForError(err))
}

func TestCleanCmd_InvalidWorkers(t *testing.T) {
	_, _, err := executeCommand(t, "clean", t.TempDir(), "--workers", "0")
	require.Error(t, err)
	assert.Equal(t, codecleaner.ExitConfigError, codecleaner.ExitCodeForError(err))
}

func TestCleanCmd_CleansTree(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app.py":           "x = 1  # c\n",
		"web/main.js":      "let s = '//not'; // c\n",
		"vendor/lib.js":    "// keep\n",
		"notes.txt":        "# keep\n",
		"styles/site.css":  "a{} /* c */\n",
		"templates/a.html": "<b><!-- c --></b>\n",
	})

	stdout, _, err := executeCommand(t, "clean", dir, "--force")
	require.NoError(t, err)

	assert.Contains(t, stdout, "[OK] "+filepath.Join(dir, "app.py")+"\n")
	assert.Contains(t, stdout, "[OK] "+filepath.Join(dir, "web", "main.js")+"\n")
	assert.True(t, strings.HasSuffix(stdout, "\n\nDone. 4 file(s) processed.\n"), stdout)

	assert.Equal(t, "x = 1  \n", readFile(t, dir, "app.py"))
	assert.Equal(t, "let s = '//not'; \n", readFile(t, dir, "web/main.js"))
	assert.Equal(t, "a{} \n", readFile(t, dir, "styles/site.css"))
	assert.Equal(t, "<b></b>\n", readFile(t, dir, "templates/a.html"))
	assert.Equal(t, "// keep\n", readFile(t, dir, "vendor/lib.js"))
	assert.Equal(t, "# keep\n", readFile(t, dir, "notes.txt"))
}

func TestCleanCmd_DryRun(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.py": "x = 1  # c\n"})

	stdout, _, err := executeCommand(t, "clean", dir, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, stdout, "[DRY RUN] "+filepath.Join(dir, "a.py"))
	assert.Equal(t, "x = 1  # c\n", readFile(t, dir, "a.py"))
}

func TestCleanCmd_Backup(t *testing.T) {
	dir := writeTree(t, map[string]string{"pkg/a.py": "x = 1  # c\n"})

	_, _, err := executeCommand(t, "clean", dir, "--backup")
	require.NoError(t, err)

	assert.Equal(t, "x = 1  \n", readFile(t, dir, "pkg/a.py"))
	assert.Equal(t, "x = 1  # c\n", readFile(t, dir, "pkg/a.py.bak"))
}

func TestCleanCmd_ValidateGo(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"ok.go":  "package ok // pkg\n",
		"bad.go": "package bad\nvar s = \"unterminated // c\n",
	})

	stdout, _, err := executeCommand(t, "clean", dir, "--validate", "--force")
	require.NoError(t, err)

	assert.Contains(t, stdout, "[OK] "+filepath.Join(dir, "ok.go"))
	assert.Contains(t, stdout, "[SKIPPED - INVALID SYNTAX] "+filepath.Join(dir, "bad.go"))
	assert.Equal(t, "package ok \n", readFile(t, dir, "ok.go"))
	assert.Equal(t, "package bad\nvar s = \"unterminated // c\n", readFile(t, dir, "bad.go"))
}

func TestCleanCmd_ExtensionsAndExcludes(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.py":             "a = 1  # c\n",
		"b.js":             "b // c\n",
		"gen/types.py":     "t = 1  # c\n",
		"third_party/x.py": "x = 1  # c\n",
	})

	stdout, _, err := executeCommand(t, "clean", dir, "--force",
		"--extensions", ".py",
		"--exclude", "gen/**",
		"--exclude-dir", "third_party")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Done. 1 file(s) processed.")
	assert.Equal(t, "a = 1  \n", readFile(t, dir, "a.py"))
	assert.Equal(t, "b // c\n", readFile(t, dir, "b.js"))
	assert.Equal(t, "t = 1  # c\n", readFile(t, dir, "gen/types.py"))
	assert.Equal(t, "x = 1  # c\n", readFile(t, dir, "third_party/x.py"))
}

func TestCleanCmd_InvalidExcludeGlob(t *testing.T) {
	_, _, err := executeCommand(t, "clean", t.TempDir(), "--force", "--exclude", "[bad")
	require.Error(t, err)
	assert.Equal(t, codecleaner.ExitConfigError, codecleaner.ExitCodeForError(err))
}

func TestCleanCmd_ProjectConfig(t *testing.T) {
	dir := writeTree(t, map[string]string{
		codecleaner.ConfigFileName: "extensions: [.js]\nbackup: true\n",
		"a.py":                     "a = 1  # c\n",
		"b.js":                     "b // c\n",
	})

	_, _, err := executeCommand(t, "clean", dir)
	require.NoError(t, err)

	assert.Equal(t, "a = 1  # c\n", readFile(t, dir, "a.py"))
	assert.Equal(t, "b \n", readFile(t, dir, "b.js"))
	assert.Equal(t, "b // c\n", readFile(t, dir, "b.js.bak"))
}

func TestCleanCmd_FlagOverridesProjectConfig(t *testing.T) {
	dir := writeTree(t, map[string]string{
		codecleaner.ConfigFileName: "extensions: [.js]\n",
		"a.py":                     "a = 1  # c\n",
		"b.js":                     "b // c\n",
	})

	_, _, err := executeCommand(t, "clean", dir, "--force", "--extensions", ".py")
	require.NoError(t, err)

	assert.Equal(t, "a = 1  \n", readFile(t, dir, "a.py"))
	assert.Equal(t, "b // c\n", readFile(t, dir, "b.js"))
}

func TestCleanCmd_InvalidProjectConfig(t *testing.T) {
	dir := writeTree(t, map[string]string{
		codecleaner.ConfigFileName: "workers: [oops\n",
	})

	_, _, err := executeCommand(t, "clean", dir, "--force")
	require.Error(t, err)
	assert.Equal(t, codecleaner.ExitConfigError, codecleaner.ExitCodeForError(err))
}

func TestCleanCmd_MissingExplicitConfig(t *testing.T) {
	_, _, err := executeCommand(t, "clean", t.TempDir(), "--config", filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Equal(t, codecleaner.ExitConfigError, codecleaner.ExitCodeForError(err))
}

func TestCleanCmd_ReportJSON(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.py": "x = 1  # c\n", "b.py": "y = 2\n"})
	reportPath := filepath.Join(t.TempDir(), "run.json")

	_, _, err := executeCommand(t, "clean", dir, "--dry-run", "--report", reportPath)
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var doc struct {
		RunID     string         `json:"run_id"`
		Processed int            `json:"processed"`
		Counts    map[string]int `json:"counts"`
		Files     []struct {
			Path    string `json:"path"`
			Changed bool   `json:"changed"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, 2, doc.Processed)
	assert.Equal(t, 2, doc.Counts["dry_run"])
	require.Len(t, doc.Files, 2)
	assert.Equal(t, "a.py", doc.Files[0].Path)
	assert.True(t, doc.Files[0].Changed)
	assert.False(t, doc.Files[1].Changed)
}

func TestCleanCmd_ReportBadExtension(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.py": "x = 1  # c\n"})

	_, _, err := executeCommand(t, "clean", dir, "--force", "--report", filepath.Join(t.TempDir(), "run.txt"))
	require.Error(t, err)
	assert.Equal(t, codecleaner.ExitConfigError, codecleaner.ExitCodeForError(err))
	assert.Equal(t, "x = 1  # c\n", readFile(t, dir, "a.py"), "nothing runs when the report path is rejected")
}

func TestCleanCmd_StrictEscapes(t *testing.T) {
	src := "s = 'a\\\\' # c\n"
	dir := writeTree(t, map[string]string{"a.py": src})

	_, _, err := executeCommand(t, "clean", dir, "--force", "--strict-escapes")
	require.NoError(t, err)
	assert.Equal(t, "s = 'a\\\\' \n", readFile(t, dir, "a.py"))
}

func TestCleanCmd_VerboseLogsToStderr(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.py": "x = 1\n"})

	stdout, stderr, err := executeCommand(t, "clean", dir, "--dry-run", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[VERBOSE] Run ")
	assert.NotContains(t, stdout, "[VERBOSE]")
}
