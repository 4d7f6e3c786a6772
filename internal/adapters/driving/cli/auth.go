package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/drivesync/internal/adapters/driven/oauth"
	callback "github.com/custodia-labs/drivesync/internal/adapters/driving/oauth"
	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/logger"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Google Drive authorisation",
	Long: `Authorise drivesync to read your Google Drive.

drivesync needs an OAuth client of type "Desktop app" from the Google Cloud
console. 'drivesync auth login' asks for its client ID and secret, opens the
consent page and stores the resulting refresh token in the config file.

Examples:
  drivesync auth login
  drivesync auth login --client-id "xxx.apps.googleusercontent.com" --client-secret "yyy"
  drivesync auth status`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorise access to Google Drive",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether drivesync is authorised",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored refresh token",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

// Flags for auth login.
var (
	loginClientID     string
	loginClientSecret string
	loginPort         int
	loginNoBrowser    bool
)

// Swapped in tests.
var (
	openBrowser    = callback.OpenBrowser
	newOAuthConfig = oauth.GoogleConfig
	loginTimeout   = 5 * time.Minute
)

func init() {
	authLoginCmd.Flags().StringVar(
		&loginClientID, "client-id", "", "OAuth client ID (prompted if not stored)")
	authLoginCmd.Flags().StringVar(
		&loginClientSecret, "client-secret", "", "OAuth client secret (prompted if not stored)")
	authLoginCmd.Flags().IntVar(
		&loginPort, "port", 0, "Local port for the OAuth redirect (random if 0)")
	authLoginCmd.Flags().BoolVar(
		&loginNoBrowser, "no-browser", false, "Print the consent URL instead of opening a browser")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	stored := oauth.CredentialsFromConfig(configStore)
	reader := bufio.NewReader(cmd.InOrStdin())

	clientID := firstNonEmpty(loginClientID, stored.ClientID)
	if clientID == "" {
		cmd.Print("Client ID: ")
		clientID = readLine(reader)
	}
	if clientID == "" {
		return fmt.Errorf("%w: client ID is required", domain.ErrInvalidInput)
	}

	clientSecret := firstNonEmpty(loginClientSecret, stored.ClientSecret)
	if clientSecret == "" {
		cmd.Print("Client secret: ")
		clientSecret = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
	}

	state := uuid.NewString()
	server := callback.NewCallbackServer(loginPort, state)
	if err := server.Start(); err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}
	defer func() {
		if err := server.Stop(); err != nil {
			logger.Warn("Failed to stop callback server: %v", err)
		}
	}()

	config := newOAuthConfig(clientID, clientSecret, server.RedirectURI())
	verifier := oauth2.GenerateVerifier()
	authURL := oauth.AuthCodeURL(config, state, verifier)

	cmd.Println("Open this URL to authorise drivesync:")
	cmd.Println(authURL)
	if !loginNoBrowser {
		if err := openBrowser(authURL); err != nil {
			logger.Warn("Could not open browser: %v", err)
		}
	}
	cmd.Println("Waiting for authorisation...")

	ctx, cancel := context.WithTimeout(cmd.Context(), loginTimeout)
	defer cancel()

	code, err := server.WaitForCode(ctx)
	if err != nil {
		return fmt.Errorf("authorisation failed: %w", err)
	}

	token, err := oauth.ExchangeCode(ctx, config, code, verifier)
	if err != nil {
		return fmt.Errorf("authorisation failed: %w", err)
	}

	values := []struct {
		key   string
		value string
	}{
		{oauth.KeyClientID, clientID},
		{oauth.KeyClientSecret, clientSecret},
		{oauth.KeyRefreshToken, token.RefreshToken},
	}
	for _, v := range values {
		if err := configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}
	}

	cmd.Printf("Authorised. Credentials saved to %s\n", configStore.Path())
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	creds := oauth.CredentialsFromConfig(configStore)
	switch {
	case creds.ClientID == "":
		cmd.Println("Not authorised: no OAuth client configured. Run 'drivesync auth login'.")
	case creds.RefreshToken == "":
		cmd.Printf("Not authorised: client %s has no refresh token. Run 'drivesync auth login'.\n", creds.ClientID)
	default:
		cmd.Printf("Authorised with client %s (refresh token %s)\n", creds.ClientID, maskSecret(creds.RefreshToken))
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Set(oauth.KeyRefreshToken, ""); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	cmd.Println("Refresh token removed.")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
