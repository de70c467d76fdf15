package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
reader:
  separator: ";"
  preprocess: [trim-bom, trim-space]
  charset: windows-1252
logging:
  level: debug
  format: json
metrics:
  addr: ":9464"
scan:
  concurrency: 2
feeds:
  - name: sofia
    path: testdata/sofia.zip
    files: [stops.txt, routes.txt]
  - name: local
    path: /data/gtfs
    reader:
      separator: "|"
`

func withConfig(t *testing.T) {
	t.Helper()
	orig := Config
	t.Cleanup(func() { Config = orig })
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ';', cfg.Reader.SeparatorRune())
	assert.Equal(t, []string{"trim-bom", "trim-space"}, cfg.Reader.Preprocess)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":9464", cfg.Metrics.Addr)
	assert.Equal(t, 2, cfg.Scan.Concurrency)
	assert.Equal(t, 100, cfg.Scan.MaxFailures, "default applied")
	require.Len(t, cfg.Feeds, 2)
	assert.Equal(t, '|', cfg.Feeds[1].Reader.SeparatorRune())
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, ',', cfg.Reader.SeparatorRune())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"invalid yaml", "invalid: yaml: content: [[["},
		{"long separator", "reader: {separator: ',,'}"},
		{"quote separator", `reader: {separator: '"'}`},
		{"unknown preprocessor", "reader: {preprocess: [shout]}"},
		{"bad level", "logging: {level: verbose}"},
		{"bad metrics addr", "metrics: {addr: 'not an addr'}"},
		{"feed without path", "feeds: [{name: x}]"},
		{"feed reader override", "feeds: [{name: x, path: y, reader: {separator: ab}}]"},
		{"negative concurrency", "scan: {concurrency: -1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("feeds: [{name: x}]"))
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestLoadFromFile(t *testing.T) {
	withConfig(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	require.NoError(t, LoadFromFile(path))
	assert.Len(t, Config.Feeds, 2)

	assert.Error(t, LoadFromFile(filepath.Join(t.TempDir(), "missing.yml")))
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	withConfig(t)

	origPaths := DefaultPaths
	t.Cleanup(func() { DefaultPaths = origPaths })
	DefaultPaths = []string{filepath.Join(t.TempDir(), "config.yml")}

	assert.Error(t, LoadAppConfig())
}

func TestLoadAppConfigFirstReadable(t *testing.T) {
	withConfig(t)

	dir := t.TempDir()
	second := filepath.Join(dir, "second.yml")
	require.NoError(t, os.WriteFile(second, []byte(sampleYAML), 0o644))

	origPaths := DefaultPaths
	t.Cleanup(func() { DefaultPaths = origPaths })
	DefaultPaths = []string{filepath.Join(dir, "first.yml"), second}

	require.NoError(t, LoadAppConfig())
	assert.Equal(t, "sofia", Config.Feeds[0].Name)
}

func TestSelectFeed(t *testing.T) {
	withConfig(t)

	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	Config = *cfg

	f, err := SelectFeed("local")
	require.NoError(t, err)
	assert.Equal(t, "/data/gtfs", f.Path)
	assert.Equal(t, '|', ReaderFor(f).SeparatorRune())

	f, err = SelectFeed("")
	require.NoError(t, err)
	assert.Equal(t, "sofia", f.Name)
	assert.Equal(t, ';', ReaderFor(f).SeparatorRune())

	_, err = SelectFeed("nope")
	assert.ErrorIs(t, err, ErrFeedNotFound)

	Config = AppConfig{}
	_, err = SelectFeed("")
	assert.ErrorIs(t, err, ErrFeedNotFound)
}
