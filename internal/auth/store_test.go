package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, name := range envVars {
		t.Setenv(name, "")
	}
}

func TestLoadMissingReturnsEmpty(t *testing.T) {
	isolateHome(t)

	creds, err := Load()
	require.NoError(t, err)
	assert.Empty(t, creds.Providers())
}

func TestSetAndGetAPIKey(t *testing.T) {
	isolateHome(t)

	require.NoError(t, SetAPIKey("google", "stored-key"))
	assert.Equal(t, "stored-key", GetAPIKey("google"))

	path, err := CredentialPath()
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEnvTakesPriority(t *testing.T) {
	isolateHome(t)

	require.NoError(t, SetAPIKey("openai", "stored-key"))
	t.Setenv("OPENAI_API_KEY", "env-key")
	assert.Equal(t, "env-key", GetAPIKey("openai"))
}

func TestRemove(t *testing.T) {
	isolateHome(t)

	require.NoError(t, SetAPIKey("anthropic", "k1"))
	require.NoError(t, SetAPIKey("google", "k2"))
	require.NoError(t, Remove("anthropic"))

	creds, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"google"}, creds.Providers())
}

func TestSetAPIKeyRejectsKeylessProvider(t *testing.T) {
	isolateHome(t)
	assert.Error(t, SetAPIKey("ollama", "x"))
}
