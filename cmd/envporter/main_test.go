package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvinuesa/envporter/internal/bws"
	"github.com/nvinuesa/envporter/internal/export"
	"github.com/nvinuesa/envporter/internal/sources"
)

const testDotenv = `# Database settings
DB_HOST=localhost # primary
DB_PASSWORD="p@ss word"

API_KEY=abc#123
not a variable
DB_HOST=replica`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDotenv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(testDotenv), 0600))
	return path
}

func decode(t *testing.T, data []byte) bws.Document {
	t.Helper()
	var doc bws.Document
	require.NoError(t, json.Unmarshal(data, &doc), string(data))
	return doc
}

func TestConvert_Stdout(t *testing.T) {
	stdout, _, err := execute(t, "convert", writeDotenv(t))
	require.NoError(t, err)

	doc := decode(t, []byte(stdout))
	assert.Empty(t, doc.Projects)
	require.Len(t, doc.Secrets, 4)

	assert.Equal(t, "DB_HOST", doc.Secrets[0].Key)
	assert.Equal(t, "localhost", doc.Secrets[0].Value)
	assert.Equal(t, "", doc.Secrets[0].Note)
	assert.Equal(t, `"p@ss word"`, doc.Secrets[1].Value)
	assert.Equal(t, "abc", doc.Secrets[2].Value)
	assert.Equal(t, "replica", doc.Secrets[3].Value)

	for _, s := range doc.Secrets {
		assert.NotNil(t, s.ProjectIDs)
		assert.Empty(t, s.ProjectIDs)
		assert.NotEqual(t, uuid.Nil, s.ID)
	}
}

func TestConvert_ParseComments(t *testing.T) {
	stdout, _, err := execute(t, "convert", writeDotenv(t), "--parse-comments")
	require.NoError(t, err)

	doc := decode(t, []byte(stdout))
	require.Len(t, doc.Secrets, 4)
	assert.Equal(t, "primary", doc.Secrets[0].Note)
	assert.Equal(t, "", doc.Secrets[1].Note)
	assert.Equal(t, "123", doc.Secrets[2].Note)
}

func TestConvert_LeadingComments(t *testing.T) {
	stdout, _, err := execute(t, "convert", writeDotenv(t), "-c", "--leading-comments")
	require.NoError(t, err)

	doc := decode(t, []byte(stdout))
	require.Len(t, doc.Secrets, 4)
	assert.Equal(t, "Database settings", doc.Secrets[0].Note)
	assert.Equal(t, "", doc.Secrets[1].Note)
}

func TestConvert_NewProject(t *testing.T) {
	stdout, _, err := execute(t, "convert", writeDotenv(t), "-n", "my-new-project")
	require.NoError(t, err)

	doc := decode(t, []byte(stdout))
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, "my-new-project", doc.Projects[0].Name)
	for _, s := range doc.Secrets {
		assert.Equal(t, []uuid.UUID{doc.Projects[0].ID}, s.ProjectIDs)
	}
}

func TestConvert_ExistingProject(t *testing.T) {
	id := uuid.New()
	stdout, _, err := execute(t, "convert", writeDotenv(t), "--project-id", id.String())
	require.NoError(t, err)

	doc := decode(t, []byte(stdout))
	assert.Empty(t, doc.Projects)
	for _, s := range doc.Secrets {
		assert.Equal(t, []uuid.UUID{id}, s.ProjectIDs)
	}
}

func TestConvert_InvalidProjectID(t *testing.T) {
	_, _, err := execute(t, "convert", writeDotenv(t), "--project-id", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project ID")
}

func TestConvert_EmptyNewProjectName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		stdout, _, err := execute(t, "convert", writeDotenv(t), "-n", name)
		require.Error(t, err, "name %q", name)
		assert.Contains(t, err.Error(), "invalid new project name")
		assert.Empty(t, stdout)
	}
}

func TestConvert_EmptyProjectID(t *testing.T) {
	_, _, err := execute(t, "convert", writeDotenv(t), "-p", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project ID")
}

func TestConvert_ConflictingProjectFlags(t *testing.T) {
	_, _, err := execute(t, "convert", writeDotenv(t),
		"--project-id", uuid.New().String(),
		"--new-project-name", "my-new-project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project-id")
	assert.Contains(t, err.Error(), "new-project-name")
}

func TestConvert_OutputFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "import")

	stdout, stderr, err := execute(t, "convert", writeDotenv(t), "--output-file", target)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "writing to file")

	data, err := os.ReadFile(target + ".json")
	require.NoError(t, err)
	doc := decode(t, data)
	assert.Len(t, doc.Secrets, 4)
}

func TestConvert_OutputExists(t *testing.T) {
	target := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, os.WriteFile(target, []byte("keep me"), 0600))

	_, _, err := execute(t, "convert", writeDotenv(t), "-o", target)
	require.Error(t, err)
	assert.True(t, export.IsOutputExists(err))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))

	_, _, err = execute(t, "convert", writeDotenv(t), "-o", target, "--force")
	require.NoError(t, err)

	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Len(t, decode(t, data).Secrets, 4)
}

func TestConvert_InvalidExtensionCheckedFirst(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	_, _, err := execute(t, "convert", missing, "-o", filepath.Join(t.TempDir(), "out.txt"))
	require.Error(t, err)
	assert.True(t, export.IsInvalidExtension(err))
}

func TestConvert_MissingInput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	_, _, err := execute(t, "convert", missing)
	require.Error(t, err)
	assert.True(t, sources.IsNotFound(err))
	assert.Contains(t, err.Error(), missing)
}

func TestConvert_RequiresPath(t *testing.T) {
	_, _, err := execute(t, "convert")
	assert.Error(t, err)
}

func TestConvert_Verbose(t *testing.T) {
	_, stderr, err := execute(t, "convert", writeDotenv(t), "--verbose")
	require.NoError(t, err)

	assert.Contains(t, stderr, "reading dotenv file")
	assert.Contains(t, stderr, "found variables")
	assert.Contains(t, stderr, "duplicate keys")
}

func TestConvert_VerboseProjectIDs(t *testing.T) {
	stdout, stderr, err := execute(t, "convert", writeDotenv(t), "-v", "-n", "svc")
	require.NoError(t, err)

	doc := decode(t, []byte(stdout))
	require.Len(t, doc.Projects, 1)
	assert.Contains(t, stderr, "generated import document")
	assert.Contains(t, stderr, doc.Projects[0].ID.String())
}

func TestConvert_QuietByDefault(t *testing.T) {
	_, stderr, err := execute(t, "convert", writeDotenv(t))
	require.NoError(t, err)

	assert.NotContains(t, stderr, "found variables")
}

func TestConvert_ConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "envporter.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("parse_comments: true\nnew_project_name: from-config\n"), 0600))

	stdout, _, err := execute(t, "convert", writeDotenv(t), "--config", cfg)
	require.NoError(t, err)

	doc := decode(t, []byte(stdout))
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, "from-config", doc.Projects[0].Name)
	assert.Equal(t, "primary", doc.Secrets[0].Note)

	// Explicit flags win over the file
	id := uuid.New()
	stdout, _, err = execute(t, "convert", writeDotenv(t), "--config", cfg, "-p", id.String(), "--parse-comments=false")
	require.NoError(t, err)

	doc = decode(t, []byte(stdout))
	assert.Empty(t, doc.Projects)
	assert.Equal(t, []uuid.UUID{id}, doc.Secrets[0].ProjectIDs)
	assert.Equal(t, "", doc.Secrets[0].Note)
}

func TestPreview(t *testing.T) {
	stdout, _, err := execute(t, "preview", writeDotenv(t), "--parse-comments")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Variables: 4 total, 2 with notes")
	assert.Contains(t, stdout, "- DB_HOST  # primary")
	assert.Contains(t, stdout, "- DB_PASSWORD\n")
	assert.Contains(t, stdout, "duplicate key DB_HOST")

	// Values are never printed
	assert.NotContains(t, stdout, "localhost")
	assert.NotContains(t, stdout, "p@ss word")
}

func TestPreview_MissingInput(t *testing.T) {
	_, _, err := execute(t, "preview", filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.True(t, sources.IsNotFound(err))
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "envporter "+Version)
	assert.Contains(t, stdout, runtime.Version())
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, isTerminal(&buf))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}
