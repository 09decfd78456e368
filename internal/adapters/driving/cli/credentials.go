package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/recap-labs/recap-cli/internal/core/domain"
)

var credentialsDefault bool

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage AI provider credentials",
	Long: `Store, list, and remove per-provider API credentials.

Credentials belong to the configured owner and are resolved automatically
when summarising with a cloud provider. Local providers (ollama) need no
credential.`,
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set [provider]",
	Short: "Store a credential for a provider",
	Long: `Stores an API key for a provider (openai or gemini).

The secret is read from the terminal without echo. The newest credential
marked default wins; use --default to promote this one.`,
	Args: cobra.ExactArgs(1),
	RunE: runCredentialsSet,
}

var credentialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored credentials",
	RunE:  runCredentialsList,
}

var credentialsDeleteCmd = &cobra.Command{
	Use:   "delete [credential-id]",
	Short: "Delete a credential by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runCredentialsDelete,
}

func init() {
	credentialsSetCmd.Flags().BoolVar(&credentialsDefault, "default", true, "make this the default credential for the provider")
	credentialsCmd.AddCommand(credentialsSetCmd)
	credentialsCmd.AddCommand(credentialsListCmd)
	credentialsCmd.AddCommand(credentialsDeleteCmd)
	rootCmd.AddCommand(credentialsCmd)
}

func runCredentialsSet(cmd *cobra.Command, args []string) error {
	if credentialStore == nil {
		return errors.New("credential store not configured")
	}

	provider := domain.AIProvider(strings.ToLower(args[0]))
	if !provider.IsValid() {
		return fmt.Errorf("unknown provider %q (expected openai, gemini, or ollama)", args[0])
	}
	if !provider.RequiresAPIKey() {
		return fmt.Errorf("provider %q runs locally and needs no credential", provider)
	}

	cmd.Print("Enter API key: ")
	secret := readPassword()
	cmd.Println()
	if secret == "" {
		return errors.New("no API key entered")
	}

	cred := domain.Credential{
		OwnerID:   effectiveOwner(),
		Provider:  provider,
		Secret:    secret,
		IsDefault: credentialsDefault,
	}
	if err := credentialStore.Save(context.Background(), cred); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	// A changed credential must not keep serving a summary service built
	// on the old secret.
	if summaryRegistry != nil {
		summaryRegistry.Evict(effectiveOwner())
	}

	cmd.Printf("Credential stored for %s.\n", provider.Description())
	return nil
}

func runCredentialsList(cmd *cobra.Command, _ []string) error {
	if credentialStore == nil {
		return errors.New("credential store not configured")
	}

	creds, err := credentialStore.List(context.Background(), effectiveOwner())
	if err != nil {
		return fmt.Errorf("failed to list credentials: %w", err)
	}

	if len(creds) == 0 {
		cmd.Println("No credentials stored.")
		return nil
	}

	cmd.Printf("Credentials for %s:\n\n", effectiveOwner())
	for i := range creds {
		marker := " "
		if creds[i].IsDefault {
			marker = "*"
		}
		cmd.Printf("  %s %s  %-8s  created %s\n",
			marker, creds[i].ID, creds[i].Provider, creds[i].CreatedAt.Format("2006-01-02"))
	}
	cmd.Println("\n  * default for its provider")
	return nil
}

func runCredentialsDelete(cmd *cobra.Command, args []string) error {
	if credentialStore == nil {
		return errors.New("credential store not configured")
	}

	id := args[0]
	if err := credentialStore.Delete(context.Background(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no credential with ID %s", id)
		}
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	if summaryRegistry != nil {
		summaryRegistry.Evict(effectiveOwner())
	}

	cmd.Printf("Deleted credential %s.\n", id)
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when attached to a terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
