package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/content-kit/pkg/content"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Empty(t, cfg.Visibilities)
	assert.False(t, cfg.DryRun)
}

func TestOptions(t *testing.T) {
	cfg, err := Load(
		WithRecordsFile("records.json"),
		WithVisibilities("published", " Draft ", ""),
		WithDryRun(true),
		WithStopOnError(true),
		WithLogLevel("debug"),
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, "records.json", cfg.RecordsFile)
	assert.Equal(t, []content.Visibility{content.VisibilityPublished, content.VisibilityDraft}, cfg.Visibilities)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.StopOnError)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"unknown visibility", WithVisibilities("hidden")},
		{"unknown log level", WithLogLevel("loud")},
		{"empty log level", WithLogLevel("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.opt)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	cfg.Visibilities = []content.Visibility{content.Visibility(5)}
	assert.ErrorIs(t, cfg.Validate(), content.ErrInvalidVisibility)

	cfg = defaults()
	cfg.LogLevel = "chatty"
	assert.Error(t, cfg.Validate())
}

func TestWithEnv(t *testing.T) {
	t.Setenv("CONTENTSCAN_RECORDS_FILE", "/tmp/records.json")
	t.Setenv("CONTENTSCAN_VISIBILITIES", "draft,deleted")
	t.Setenv("CONTENTSCAN_DRY_RUN", "true")
	t.Setenv("CONTENTSCAN_LOG_LEVEL", "warn")

	cfg, err := Load(WithEnv())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/records.json", cfg.RecordsFile)
	assert.Equal(t, []content.Visibility{content.VisibilityDraft, content.VisibilityDeleted}, cfg.Visibilities)
	assert.True(t, cfg.DryRun)
	assert.False(t, cfg.StopOnError)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestWithEnv_KeepsUnsetValues(t *testing.T) {
	cfg, err := Load(
		WithRecordsFile("from-option.json"),
		WithVisibilities("published"),
		WithStopOnError(true),
		WithEnv(),
	)
	require.NoError(t, err)
	assert.Equal(t, "from-option.json", cfg.RecordsFile)
	assert.Equal(t, []content.Visibility{content.VisibilityPublished}, cfg.Visibilities)
	assert.True(t, cfg.StopOnError)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestWithEnv_InvalidVisibility(t *testing.T) {
	t.Setenv("CONTENTSCAN_VISIBILITIES", "published,archived")

	_, err := Load(WithEnv())
	assert.ErrorIs(t, err, content.ErrInvalidVisibility)
}

func TestDescription(t *testing.T) {
	desc, err := Description()
	require.NoError(t, err)
	assert.Contains(t, desc, "CONTENTSCAN_VISIBILITIES")
}
