package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// repoDir returns a temporary directory marked as a VCS root, so the upward
// search for project files stays inside it.
func repoDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func isolatedOptions(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       workDir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(repoDir(t)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := repoDir(t)
	configPath := filepath.Join(tmpDir, ".mdhighlight.yml")
	writeFile(t, configPath, "flavor: commonmark\nmultiline: false\n")

	nested := filepath.Join(tmpDir, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolatedOptions(nested))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorCommonMark, result.Config.Flavor)
	assert.False(t, result.Config.MultilineEnabled())
	assert.Equal(t, []string{configPath}, result.LoadedFrom)
	assert.Equal(t, configPath, result.Paths.Project)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".mdhighlight.yml"), "flavor: commonmark\n")

	repo := filepath.Join(tmpDir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := repoDir(t)
	writeFile(t, filepath.Join(tmpDir, ".mdhighlight.yml"), "style: dracula\nformat: ansi\n")
	customPath := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, customPath, "format: dump\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatDump, result.Config.Format, "explicit file overrides project file")
	assert.Equal(t, "dracula", result.Config.Style, "project settings not overridden are kept")
	assert.Len(t, result.LoadedFrom, 2)
}

func TestLoad_UserConfig(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	userPath := filepath.Join(configHome, appName, "config.yaml")
	writeFile(t, userPath, "class_prefix: hl\n")

	workDir := repoDir(t)

	result, err := Load(context.Background(), LoadOptions{WorkingDir: workDir, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Equal(t, "hl", result.Config.ClassPrefix)
	assert.Equal(t, []string{userPath}, result.LoadedFrom)
}

func TestLoad_Precedence(t *testing.T) {
	tmpDir := repoDir(t)
	writeFile(t, filepath.Join(tmpDir, ".mdhighlight.yml"), "format: ansi\nstyle: dracula\nnesting: true\n")

	t.Setenv("MDHIGHLIGHT_FORMAT", "tree")
	t.Setenv("MDHIGHLIGHT_NESTING", "false")

	opts := LoadOptions{
		WorkingDir:       tmpDir,
		IgnoreUserConfig: true,
		CLIConfig:        &config.Config{Format: config.FormatDump},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatDump, result.Config.Format, "flags beat environment")
	assert.False(t, result.Config.NestingEnabled(), "environment beats files")
	assert.Equal(t, "dracula", result.Config.Style)
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Parallel()

	tmpDir := repoDir(t)
	configPath := filepath.Join(tmpDir, ".mdhighlight.yml")

	t.Run("bad value", func(t *testing.T) {
		writeFile(t, configPath, "format: pdf\n")

		_, err := Load(context.Background(), isolatedOptions(tmpDir))
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "format", verr.Field)
		assert.Equal(t, configPath, verr.FilePath)
	})

	t.Run("bad yaml", func(t *testing.T) {
		writeFile(t, configPath, "format: [\n")

		_, err := Load(context.Background(), isolatedOptions(tmpDir))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load project config")
	})
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(repoDir(t))
	opts.CLIConfig = &config.Config{Style: "no-such-style"}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "unknown style")
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(repoDir(t)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MDHIGHLIGHT_FLAVOR", "commonmark")
	t.Setenv("MDHIGHLIGHT_CLASS_PREFIX", "hl")
	t.Setenv("MDHIGHLIGHT_DETECT_LANGUAGE", "1")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, "hl", cfg.ClassPrefix)
	assert.True(t, cfg.DetectLanguageEnabled())

	t.Setenv("MDHIGHLIGHT_MULTILINE", "sometimes")
	err := LoadFromEnv(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MDHIGHLIGHT_MULTILINE")
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MDHIGHLIGHT_CLASS_PREFIX", GetEnvVarName("class_prefix"))
	assert.Empty(t, GetEnvVarName("rules"))

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "MDHIGHLIGHT_STYLE")
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	merged := MergeAll(base,
		&config.Config{Style: "dracula", Multiline: config.Bool(false)},
		&config.Config{Flavor: config.FlavorCommonMark},
		nil,
	)

	assert.Equal(t, "dracula", merged.Style)
	assert.Equal(t, config.FlavorCommonMark, merged.Flavor)
	assert.False(t, merged.MultilineEnabled(), "explicit false overrides default true")
	assert.True(t, base.MultilineEnabled(), "base is not modified")
	assert.Nil(t, MergeAll())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      *config.Config
		field    string
		warnings int
	}{
		{name: "defaults", cfg: config.NewConfig()},
		{name: "nil", cfg: nil},
		{name: "flavor", cfg: &config.Config{Flavor: "markdown"}, field: "flavor"},
		{name: "input", cfg: &config.Config{Input: "html"}, field: "input"},
		{name: "format", cfg: &config.Config{Format: "json"}, field: "format"},
		{name: "color", cfg: &config.Config{Color: "sometimes"}, field: "color"},
		{name: "class prefix", cfg: &config.Config{ClassPrefix: "a b"}, field: "class_prefix"},
		{name: "unknown style", cfg: &config.Config{Style: "nope"}, warnings: 1},
		{
			name:     "detection on tree input",
			cfg:      &config.Config{Input: config.InputTree, DetectLanguage: config.Bool(true)},
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tt.cfg)
			if tt.field == "" {
				assert.True(t, result.Valid(), result.AllMessages())
			} else {
				require.False(t, result.Valid())
				assert.Equal(t, tt.field, result.Errors[0].Field)
			}
			assert.Len(t, result.Warnings, tt.warnings)
			assert.Equal(t, tt.warnings > 0, result.HasWarnings())
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "format", Message: "bad", FilePath: "a.yml"}
	assert.Equal(t, "a.yml: format: bad", err.Error())
	assert.True(t, IsValidStyle("monokai"))
	assert.False(t, IsValidStyle("nope"))
}
