package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	fsys := afero.NewMemMapFs()

	cfg, err := Load(fsys, "/home/user/.config/pitchreel/config.toml")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.URL)
	assert.Equal(t, 300, cfg.Backend.RequestTimeout)
}

func TestLoadOverridesDefaults(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := `[backend]
url = "https://pipeline.example.com/"
request_timeout = 60
`
	require.NoError(t, afero.WriteFile(fsys, "/cfg.toml", []byte(content), 0o644))

	cfg, err := Load(fsys, "/cfg.toml")
	require.NoError(t, err)
	assert.Equal(t, "https://pipeline.example.com", cfg.Backend.URL, "trailing slash should be trimmed")
	assert.Equal(t, 60, cfg.Backend.RequestTimeout)
}

func TestLoadPartialFileKeepsRemainingDefaults(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg.toml", []byte("[backend]\nurl = \"http://10.0.0.2:5000\"\n"), 0o644))

	cfg, err := Load(fsys, "/cfg.toml")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:5000", cfg.Backend.URL)
	assert.Equal(t, 300, cfg.Backend.RequestTimeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero timeout", "[backend]\nrequest_timeout = 0\n"},
		{"negative timeout", "[backend]\nrequest_timeout = -5\n"},
		{"blank url", "[backend]\nurl = \"  \"\n"},
		{"malformed toml", "[backend\nurl = \"x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "/cfg.toml", []byte(tt.content), 0o644))

			_, err := Load(fsys, "/cfg.toml")
			assert.Error(t, err)
		})
	}
}
