package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caltechlibrary/documentarist/internal/status"
)

// overridePlatform points the config-file search at test-controlled
// directories for the duration of the test.
func overridePlatform(t *testing.T, cwd, cfgHome string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	old := platformDir
	platformDir.userConfigDir = func() (string, error) { return cfgHome, nil }
	platformDir.homeDir = func() (string, error) { return cfgHome, nil }
	platformDir.getwd = func() (string, error) { return cwd, nil }
	t.Cleanup(func() { platformDir = old })
}

// testStore opens a Store whose active file lives under a temp directory
// and which found no pre-existing settings file.
func testStore(t *testing.T) *Store {
	t.Helper()
	overridePlatform(t, t.TempDir(), t.TempDir())
	s, err := Open("")
	require.NoError(t, err)
	return s
}

func TestOpenDefaultsStandWithoutFile(t *testing.T) {
	s := testStore(t)

	got, err := s.Get(SectionCore, "basename")
	require.NoError(t, err)
	assert.Equal(t, "document", got)

	// No file may be created until the first save.
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestOpenExplicitMissingFileIsBadArgument(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Equal(t, status.BadArgument, status.CodeOf(err))
}

func TestOpenExplicitFileBecomesActive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[documentarist]\nbasename = \"scan\"\n"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())

	got, err := s.Get(SectionCore, "basename")
	require.NoError(t, err)
	assert.Equal(t, "scan", got)
}

func TestSearchOrderPrefersCurrentDirectory(t *testing.T) {
	cwd := t.TempDir()
	cfgHome := t.TempDir()
	overridePlatform(t, cwd, cfgHome)

	userDir := filepath.Join(cfgHome, appDirName)
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, FileName),
		[]byte("[documentarist]\nbasename = \"fromuser\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cwd, FileName),
		[]byte("[documentarist]\nbasename = \"fromcwd\"\n"), 0o644))

	s, err := Open("")
	require.NoError(t, err)

	got, err := s.Get(SectionCore, "basename")
	require.NoError(t, err)
	assert.Equal(t, "fromcwd", got)
	assert.Equal(t, filepath.Join(cwd, FileName), s.Path())
}

func TestSearchOrderFallsBackToUserConfigDir(t *testing.T) {
	cwd := t.TempDir()
	cfgHome := t.TempDir()
	overridePlatform(t, cwd, cfgHome)

	userDir := filepath.Join(cfgHome, appDirName)
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, FileName),
		[]byte("[documentarist]\noutputdir = \"/scans\"\n"), 0o644))

	s, err := Open("")
	require.NoError(t, err)

	got, err := s.Get(SectionCore, "outputdir")
	require.NoError(t, err)
	assert.Equal(t, "/scans", got)
}

func TestPrecedenceRuntimeSetWinsAndPersists(t *testing.T) {
	cwd := t.TempDir()
	overridePlatform(t, cwd, t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(cwd, FileName),
		[]byte("[documentarist]\nbasename = \"scan\"\n"), 0o644))

	s, err := Open("")
	require.NoError(t, err)

	// Defaults say "document", the file says "scan", the runtime set says
	// "photo"; the runtime value wins and is what gets persisted.
	require.NoError(t, s.Set(SectionCore, "basename", "photo"))

	got, err := s.Get(SectionCore, "basename")
	require.NoError(t, err)
	assert.Equal(t, "photo", got)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "photo")
	assert.NotContains(t, string(data), "scan")
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.toml")
	content := "[documentarist]\nbasename = \"scan\"\nretired_key = \"x\"\n\n[oldsection]\nfoo = \"bar\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Open(path)
	require.NoError(t, err)

	got, err := s.Get(SectionCore, "basename")
	require.NoError(t, err)
	assert.Equal(t, "scan", got)

	_, err = s.Get("oldsection", "foo")
	assert.ErrorIs(t, err, ErrUnknownSetting)
}

func TestLaterLoadOverridesEarlier(t *testing.T) {
	cwd := t.TempDir()
	overridePlatform(t, cwd, t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(cwd, FileName),
		[]byte("[documentarist]\nbasename = \"first\"\noutputdir = \"/first\"\n"), 0o644))

	s, err := Open("")
	require.NoError(t, err)

	override := filepath.Join(t.TempDir(), "override.toml")
	require.NoError(t, os.WriteFile(override,
		[]byte("[documentarist]\nbasename = \"second\"\n"), 0o644))
	require.NoError(t, s.Load(override))

	// The override wins key by key; keys it does not mention keep the
	// earlier load's values.
	got, _ := s.Get(SectionCore, "basename")
	assert.Equal(t, "second", got)
	got, _ = s.Get(SectionCore, "outputdir")
	assert.Equal(t, "/first", got)
	assert.Equal(t, override, s.Path())
}

func TestSetEmptyValueIsNoOp(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save())
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Set(SectionCore, "basename", ""))

	got, _ := s.Get(SectionCore, "basename")
	assert.Equal(t, "document", got)
	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "a no-op set must not rewrite the file")
}

func TestSetEqualValueDoesNotRewrite(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save())
	info, err := os.Stat(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Set(SectionCore, "basename", "document"))

	after, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime())
}

func TestSetUnknownSettingFailsAndLeavesStoreUnchanged(t *testing.T) {
	s := testStore(t)

	err := s.Set(SectionCore, "nonexistent", "x")
	assert.ErrorIs(t, err, ErrUnknownSetting)

	err = s.Set("carrierpigeon", "creds_file", "x")
	assert.ErrorIs(t, err, ErrUnknownSetting)

	// Nothing was written.
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestGetUnknownSetting(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(SectionCore, "bogus")
	assert.ErrorIs(t, err, ErrUnknownSetting)
}

func TestSaveIsIdempotent(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Set(SectionCore, "basename", "photo"))

	require.NoError(t, s.Save())
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Save())
	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSaveEmitsEveryKnownSetting(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save())

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "[documentarist]")
	assert.Contains(t, text, "[amazon]")
	assert.Contains(t, text, "[google]")
	assert.Contains(t, text, "[microsoft]")
	assert.Contains(t, text, "basename")
	assert.Contains(t, text, "creds_file")
}

func TestSaveRoundTrips(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Set(SectionCore, "outputdir", "/tmp/out"))

	reloaded, err := Open(s.Path())
	require.NoError(t, err)
	got, err := reloaded.Get(SectionCore, "outputdir")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", got)
}

func TestSettingsOrderIsStableAndComplete(t *testing.T) {
	s := testStore(t)

	var keys []string
	for key, value := range s.Settings() {
		keys = append(keys, key)
		_ = value
	}
	assert.Equal(t, []string{
		"documentarist.quiet",
		"documentarist.debug",
		"documentarist.basename",
		"documentarist.outputdir",
		"amazon.creds_file",
		"google.creds_file",
		"microsoft.creds_file",
	}, keys)
}

func TestSettingsIsLazy(t *testing.T) {
	s := testStore(t)

	// Stopping early must be allowed; only the consumed prefix is visited.
	count := 0
	for range s.Settings() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
