package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantErr    bool
	}{
		{"minimal is known", "minimal", false},
		{"default is known", "default", false},
		{"enterprise is unknown", "enterprise", true},
		{"empty identifier", "", true},
		{"case sensitive", "Minimal", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Lookup(tt.identifier)
			if tt.wantErr {
				var unknownErr *UnknownTemplateError
				require.Error(t, err)
				require.True(t, errors.As(err, &unknownErr))
				assert.Equal(t, tt.identifier, unknownErr.Identifier)
				assert.Contains(t, err.Error(), "unknown template")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.identifier, tmpl.Identifier)
			assert.NotEmpty(t, tmpl.Description)
		})
	}
}

func TestIdentifiersSorted(t *testing.T) {
	assert.Equal(t, []string{"default", "minimal"}, Identifiers())
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 2)
	for _, tmpl := range all {
		assert.NotEmpty(t, tmpl.Identifier)
		assert.NotEmpty(t, tmpl.Description)
	}
}
