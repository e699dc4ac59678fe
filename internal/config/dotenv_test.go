package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withHome points HOME at a fresh temp dir and returns ~/.wuwa-assets inside it.
func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return filepath.Join(home, ".wuwa-assets")
}

func writeDotEnv(t *testing.T, dir, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDotEnv_NotExist(t *testing.T) {
	withHome(t)

	m, err := LoadDotEnv()
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	dir := withHome(t)
	writeDotEnv(t, dir, "# comment\nA=1\nB=two\nC=\"quoted\"\nD=a=b\nexport E=e\n")

	m, err := LoadDotEnv()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"A": "1",
		"B": "two",
		"C": "quoted",
		"D": "a=b",
		"E": "e",
	}, m)
}

func TestGetConfigValue_EnvOverridesDotEnv(t *testing.T) {
	dir := withHome(t)
	writeDotEnv(t, dir, "K=fromdotenv\nONLY=dotenv\n")
	t.Setenv("K", "fromenv")

	v, err := GetConfigValue("K")
	require.NoError(t, err)
	assert.Equal(t, "fromenv", v)

	v, err = GetConfigValue("ONLY")
	require.NoError(t, err)
	assert.Equal(t, "dotenv", v)
}

func TestEnsureDotEnvTemplate_DoesNotOverwrite(t *testing.T) {
	dir := withHome(t)
	p := writeDotEnv(t, dir, EnvOutput+"=keep\n")

	created, err := EnsureDotEnvTemplate()
	require.NoError(t, err)
	assert.False(t, created)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, EnvOutput+"=keep\n", string(b))
}

func TestEnsureDotEnvTemplate_CreatesWhenMissing(t *testing.T) {
	dir := withHome(t)

	created, err := EnsureDotEnvTemplate()
	require.NoError(t, err)
	assert.True(t, created)

	b, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	for _, k := range []string{EnvAssetTable, EnvOutput, EnvLogLevel} {
		assert.Contains(t, string(b), k+"=\n")
	}

	m, err := LoadDotEnv()
	require.NoError(t, err)
	assert.Equal(t, "", m[EnvOutput])
}

func TestLoadDotEnv_UnreadableFileWrapsPath(t *testing.T) {
	dir := withHome(t)
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.MkdirAll(p, 0o755))

	_, err := LoadDotEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot parse dotenv file "+p)
}
