package app

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratacms/strata/internal/template/fetch"
	"github.com/stratacms/strata/internal/template/registry"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. Stand-in for t.Chdir, which
// requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

// newTemplateServer serves a repository archive holding the minimal
// template and counts requests.
func newTemplateServer(t *testing.T, requests *int) *httptest.Server {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"strata-templates-main/templates/minimal/package.json":     `{"name": "{{projectName}}", "version": "0.1.0"}`,
		"strata-templates-main/templates/minimal/strata.config.ts": "export default { name: \"{{projectName}}\" }\n",
		"strata-templates-main/templates/minimal/content/.gitkeep": "",
		"strata-templates-main/README.md":                          "template repository\n",
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	body := buf.Bytes()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOptions(t *testing.T, srv *httptest.Server) CreateOptions {
	t.Helper()
	return CreateOptions{
		Template: "minimal",
		Ref:      "main",
		CacheDir: filepath.Join(t.TempDir(), "cache"),
		Source:   &fetch.Source{Host: srv.URL, Owner: "stratacms", Repo: "strata-templates"},
	}
}

func TestCreateEndToEnd(t *testing.T) {
	chdir(t, t.TempDir())
	var requests int
	srv := newTemplateServer(t, &requests)

	opts := testOptions(t, srv)
	opts.ProjectName = "my-app"

	result, err := Create(context.Background(), opts)
	require.NoError(t, err)
	require.NotEmpty(t, result.Files)

	// Every reported file exists under the target, substituted, and no
	// placeholder files are reported or copied.
	for _, rel := range result.Files {
		assert.False(t, filepath.IsAbs(rel))
		assert.False(t, strings.HasSuffix(rel, ".gitkeep"))

		path := filepath.Join(result.Path, rel)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.NotContains(t, string(content), "{{projectName}}")
	}

	content, err := os.ReadFile(filepath.Join(result.Path, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"name": "my-app"`)

	// The placeholder's directory survives even though the file does not
	info, err := os.Stat(filepath.Join(result.Path, "content"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Equal(t, "minimal", result.Template.Identifier)
	assert.Equal(t, "main", result.Template.Ref)
}

func TestCreateDefaultTargetIsProjectName(t *testing.T) {
	chdir(t, t.TempDir())
	var requests int
	srv := newTemplateServer(t, &requests)

	opts := testOptions(t, srv)
	opts.ProjectName = "my-app"

	result, err := Create(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "my-app", filepath.Base(result.Path))
}

func TestCreateUnknownTemplate(t *testing.T) {
	chdir(t, t.TempDir())
	var requests int
	srv := newTemplateServer(t, &requests)

	opts := testOptions(t, srv)
	opts.ProjectName = "my-app"
	opts.Template = "enterprise"

	_, err := Create(context.Background(), opts)
	require.Error(t, err)

	var unknownErr *registry.UnknownTemplateError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, "enterprise", unknownErr.Identifier)
	assert.Contains(t, unknownErr.Known, "minimal")

	assert.Zero(t, requests, "unknown template must fail before any fetch")
}

func TestCreateSecondProjectUsesCache(t *testing.T) {
	chdir(t, t.TempDir())
	var requests int
	srv := newTemplateServer(t, &requests)

	opts := testOptions(t, srv)
	opts.ProjectName = "first-app"
	_, err := Create(context.Background(), opts)
	require.NoError(t, err)

	opts.ProjectName = "second-app"
	_, err = Create(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, requests, "second create must be served from cache")

	// Each project got its own substitution
	content, err := os.ReadFile(filepath.Join("second-app", "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"name": "second-app"`)
}

func TestCreateTargetNotEmpty(t *testing.T) {
	chdir(t, t.TempDir())
	var requests int
	srv := newTemplateServer(t, &requests)
	require.NoError(t, os.MkdirAll(filepath.Join("my-app", "existing"), 0755))

	opts := testOptions(t, srv)
	opts.ProjectName = "my-app"

	_, err := Create(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		project string
		wantErr bool
	}{
		{"simple", "my-app", false},
		{"with digits", "app2", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"traversal", "..", true},
		{"embedded traversal", "a..b", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"hidden", ".my-app", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProjectName(tt.project)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
