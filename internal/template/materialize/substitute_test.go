package materialize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	vars := Variables{"projectName": "my-app"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single token", "name: {{projectName}}", "name: my-app"},
		{"repeated token", "{{projectName}}/{{projectName}}", "my-app/my-app"},
		{"no token", "plain text", "plain text"},
		{"unknown token untouched", "{{somethingElse}}", "{{somethingElse}}"},
		{"partial braces untouched", "{projectName}", "{projectName}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.input, vars))
		})
	}
}

func TestSubstituteContentSkipsBinary(t *testing.T) {
	vars := Variables{"projectName": "my-app"}

	binary := append([]byte{0x89, 0x50, 0x00}, []byte("{{projectName}}")...)
	assert.Equal(t, binary, SubstituteContent(binary, vars))

	text := []byte("hello {{projectName}}")
	assert.Equal(t, []byte("hello my-app"), SubstituteContent(text, vars))
}

func TestSubstitutePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		vars    Variables
		want    string
		wantErr bool
	}{
		{
			name: "token in filename",
			path: "src/{{projectName}}.config.ts",
			vars: Variables{"projectName": "my-app"},
			want: "src/my-app.config.ts",
		},
		{
			name: "token in directory name",
			path: "{{projectName}}/index.ts",
			vars: Variables{"projectName": "my-app"},
			want: "my-app/index.ts",
		},
		{
			name: "no tokens",
			path: "src/index.ts",
			vars: Variables{"projectName": "my-app"},
			want: "src/index.ts",
		},
		{
			name:    "traversal via value",
			path:    "{{projectName}}/index.ts",
			vars:    Variables{"projectName": ".."},
			wantErr: true,
		},
		{
			name:    "embedded traversal via value",
			path:    "{{projectName}}.ts",
			vars:    Variables{"projectName": "data..backup"},
			wantErr: true,
		},
		{
			name:    "separator via value",
			path:    "{{projectName}}.ts",
			vars:    Variables{"projectName": "a/b"},
			wantErr: true,
		},
		{
			name:    "empty component via value",
			path:    "{{projectName}}",
			vars:    Variables{"projectName": "   "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubstitutePath(tt.path, tt.vars)
			if tt.wantErr {
				require.Error(t, err)
				var matErr *MaterializeError
				require.True(t, errors.As(err, &matErr))
				assert.Equal(t, InvalidPath, matErr.Type)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
