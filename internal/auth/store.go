package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Credentials holds stored API keys keyed by provider name.
type Credentials struct {
	APIKeys map[string]string `json:"api_keys,omitempty"`
}

// envVars maps providers to the environment variable that takes priority
// over stored credentials.
var envVars = map[string]string{
	"anthropic":  "ANTHROPIC_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"google":     "GOOGLE_API_KEY",
	"minimax":    "MINIMAX_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// CredentialPath returns the path to the credentials file (~/.themegen/credentials.json).
func CredentialPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".themegen", "credentials.json"), nil
}

// Load reads credentials from ~/.themegen/credentials.json.
// Returns empty credentials if the file doesn't exist.
func Load() (*Credentials, error) {
	path, err := CredentialPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{APIKeys: map[string]string{}}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	if creds.APIKeys == nil {
		creds.APIKeys = map[string]string{}
	}
	return &creds, nil
}

// Save writes credentials to ~/.themegen/credentials.json with restricted permissions.
func Save(creds *Credentials) error {
	path, err := CredentialPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling credentials: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

// SetAPIKey stores the key for provider, replacing any previous value.
func SetAPIKey(provider, key string) error {
	if _, ok := envVars[provider]; !ok {
		return fmt.Errorf("provider %q does not use an API key", provider)
	}
	creds, err := Load()
	if err != nil {
		return err
	}
	creds.APIKeys[provider] = key
	return Save(creds)
}

// Remove deletes the stored key for provider. Removing a missing key is not an error.
func Remove(provider string) error {
	creds, err := Load()
	if err != nil {
		return err
	}
	delete(creds.APIKeys, provider)
	return Save(creds)
}

// Providers lists providers with a stored key, sorted by name.
func (c *Credentials) Providers() []string {
	names := make([]string, 0, len(c.APIKeys))
	for name, key := range c.APIKeys {
		if key != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// EnvVar returns the environment variable consulted for provider, or "".
func EnvVar(provider string) string {
	return envVars[provider]
}

// GetAPIKey returns the API key for the given provider.
// It checks the environment variable first, then falls back to stored credentials.
func GetAPIKey(provider string) string {
	if name, ok := envVars[provider]; ok {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}

	creds, err := Load()
	if err != nil {
		return ""
	}
	return creds.APIKeys[provider]
}
