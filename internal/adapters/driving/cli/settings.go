package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/drivesync/internal/adapters/driven/oauth"
	"github.com/custodia-labs/drivesync/internal/core/domain"
	"github.com/custodia-labs/drivesync/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage pipeline settings",
	Long: `View and change the settings stored in ~/.drivesync/config.toml.

Any setting can also be overridden for a single run with an environment
variable, e.g. DRIVESYNC_DRIVE_PAGE_SIZE=200.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a pipeline setting",
	Long: `Change a pipeline setting. Values must be positive integers;
drive.max_retries may also be 0 for a single attempt per call.

Keys:
  drive.page_size         Listing page size
  drive.max_retries       Retries per drive call
  drive.pdf_max_pages     PDF pages read per file
  drive.export_max_bytes  Largest exported text kept per document, in bytes
  extract.workers         Parallel content extraction workers`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

// settingKeys are the keys accepted by "settings set".
var settingKeys = []string{
	services.KeyPageSize,
	services.KeyMaxRetries,
	services.KeyPDFMaxPages,
	services.KeyExportMaxBytes,
	services.KeyWorkers,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cfg := services.LoadConfig(configStore)

	cmd.Println(headingStyle.Render("Pipeline"))
	cmd.Printf("  %s = %d\n", services.KeyPageSize, cfg.PageSize)
	cmd.Printf("  %s = %d\n", services.KeyMaxRetries, cfg.MaxRetries)
	cmd.Printf("  %s = %d\n", services.KeyPDFMaxPages, cfg.PDFMaxPages)
	cmd.Printf("  %s = %d\n", services.KeyExportMaxBytes, cfg.ExportMaxBytes)
	cmd.Printf("  %s = %d\n", services.KeyWorkers, cfg.Workers)
	cmd.Println()

	creds := oauth.CredentialsFromConfig(configStore)
	cmd.Println(headingStyle.Render("Google"))
	cmd.Printf("  %s = %s\n", oauth.KeyClientID, orNotSet(creds.ClientID))
	cmd.Printf("  %s = %s\n", oauth.KeyClientSecret, maskSecret(creds.ClientSecret))
	cmd.Printf("  %s = %s\n", oauth.KeyRefreshToken, maskSecret(creds.RefreshToken))
	cmd.Println()

	cmd.Printf("%s %s\n", labelStyle.Render("Config file:"), configStore.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if !slices.Contains(settingKeys, key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	minValue := services.MinSetting(key)
	value, err := strconv.Atoi(raw)
	if err != nil || value < minValue {
		return fmt.Errorf("%w: %s must be an integer of at least %d", domain.ErrInvalidInput, key, minValue)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %d\n", key, value)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads a line without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func orNotSet(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
