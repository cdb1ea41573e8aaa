package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/themegen/internal/auth"
)

// keyedProviders are the providers that authenticate with an API key.
var keyedProviders = []string{"anthropic", "openai", "google", "openrouter", "minimax"}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API credentials for LLM providers",
	Long: `Store and manage API credentials for LLM providers.

Credentials are stored in ~/.themegen/credentials.json and used
as a fallback when environment variables are not set.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set <provider> [api-key]",
	Short: "Store an API key for a provider",
	Long: `Store an API key for persistent use. When the key is omitted you are
prompted for it with masked input.

Valid providers: ` + strings.Join(keyedProviders, ", "),
	Args: cobra.RangeArgs(1, 2),
	RunE: runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which providers have credentials",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout [provider]",
	Short: "Remove stored credentials",
	Long: `Remove stored credentials for a provider.

If no provider is specified, removes all stored credentials.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthLogout,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	provider := strings.ToLower(args[0])
	if auth.EnvVar(provider) == "" {
		return fmt.Errorf("unknown provider %q (valid: %s)", provider, strings.Join(keyedProviders, ", "))
	}

	var apiKey string
	if len(args) == 2 {
		apiKey = strings.TrimSpace(args[1])
	} else {
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("%s API key", provider),
			Mask:  '*',
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("API key is required")
				}
				return nil
			},
		}
		input, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("reading API key: %w", err)
		}
		apiKey = strings.TrimSpace(input)
	}
	if apiKey == "" {
		return errors.New("API key is required")
	}

	if err := auth.SetAPIKey(provider, apiKey); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s credentials stored successfully!\n", provider)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	out := cmd.OutOrStdout()
	path, _ := auth.CredentialPath()
	fmt.Fprintf(out, "Credentials file: %s\n\n", path)

	fmt.Fprintln(out, "Provider     Status")
	fmt.Fprintln(out, "--------     ------")
	for _, p := range keyedProviders {
		status := "not configured"
		switch {
		case os.Getenv(auth.EnvVar(p)) != "":
			status = fmt.Sprintf("configured (env var %s)", auth.EnvVar(p))
		case creds.APIKeys[p] != "":
			status = "configured (stored)"
		}
		fmt.Fprintf(out, "%-12s %s\n", p, status)
	}
	fmt.Fprintf(out, "%-12s %s\n", "ollama", "available (local)")
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if err := auth.Save(&auth.Credentials{}); err != nil {
			return err
		}
		fmt.Fprintln(out, "All stored credentials removed.")
		return nil
	}

	provider := strings.ToLower(args[0])
	if auth.EnvVar(provider) == "" {
		return fmt.Errorf("unknown provider %q (valid: %s)", provider, strings.Join(keyedProviders, ", "))
	}
	if err := auth.Remove(provider); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s credentials removed.\n", provider)
	return nil
}
