package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sandbox", cfg.App.Env)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout())
	assert.Equal(t, []int{10, 25, 50, 100}, cfg.List.PageSizes)
	assert.Equal(t, 10, cfg.List.DefaultPerPage)
	assert.Equal(t, 400*time.Millisecond, cfg.List.Debounce())
	assert.Zero(t, cfg.List.FetchTimeout())
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 300, cfg.Sandbox.RateLimitPerMin)
	assert.Equal(t, int64(42), cfg.Sandbox.Seed)
	assert.Empty(t, cfg.Sandbox.DatabaseURL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("API_BASE_URL", "https://admin.example.org/api/v1/")
	t.Setenv("LIST_PAGE_SIZES", "20, 40,40")
	t.Setenv("LIST_DEFAULT_PER_PAGE", "40")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("SANDBOX_ENVELOPE", "wrapped")
	t.Setenv("SANDBOX_DATABASE_URL", " postgres://sandbox@localhost/enroll ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://admin.example.org/api/v1", cfg.API.BaseURL)
	assert.Equal(t, []int{20, 40}, cfg.List.PageSizes)
	assert.Equal(t, 40, cfg.List.DefaultPerPage)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "wrapped", cfg.Sandbox.Envelope)
	assert.Equal(t, "postgres://sandbox@localhost/enroll", cfg.Sandbox.DatabaseURL)
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]map[string]string{
		"per_page_not_allowed": {"LIST_DEFAULT_PER_PAGE": "15"},
		"size_not_a_number":    {"LIST_PAGE_SIZES": "10,many"},
		"size_not_positive":    {"LIST_PAGE_SIZES": "0,10"},
		"relative_base_url":    {"API_BASE_URL": "/api/v1"},
		"unknown_envelope":     {"SANDBOX_ENVELOPE": "xml"},
		"unknown_log_output":   {"LOG_OUTPUT": "syslog"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
