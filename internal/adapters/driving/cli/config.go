package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage spectrail configuration",
	Long: `View and change configuration stored in ~/.spectrail/config.toml.

Common keys:
  figma.token        Figma access token (prefer 'config set-token')
  figma.concurrency  parallel file fetches
  track.include      default property include list
  track.exclude      default property exclude list
  track.dry_run      report changes without updating the baseline`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value. Values parse as booleans (true/false) or
integers where possible; values containing commas become string lists.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store the Figma access token",
	Long:  `Prompts for the token without echoing and stores it in the config file.`,
	RunE:  runConfigSetToken,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetTokenCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := ensureConfigStore()
	if err != nil {
		return err
	}

	key := args[0]
	val, ok := cfg.Get(key)
	if !ok {
		cmd.Printf("%s: (not set)\n", key)
		return nil
	}

	// Never print the token in full
	if key == "figma.token" {
		if str, isString := val.(string); isString {
			cmd.Printf("%s: %s\n", key, maskToken(str))
			return nil
		}
	}

	cmd.Printf("%s: %v\n", key, val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := ensureConfigStore()
	if err != nil {
		return err
	}

	key := args[0]
	value := parseConfigValue(args[1])

	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if key == "figma.token" {
		cmd.Printf("Set %s.\n", key)
		return nil
	}
	cmd.Printf("Set %s to %v.\n", key, value)
	return nil
}

func runConfigSetToken(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfigStore()
	if err != nil {
		return err
	}

	cmd.Print("Enter Figma access token: ")
	token := readPassword()
	cmd.Println()

	if token == "" {
		return errors.New("no token entered")
	}

	if err := cfg.Set("figma.token", token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	cmd.Printf("Token saved to %s.\n", cfg.Path())
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfigStore()
	if err != nil {
		return err
	}

	cmd.Println(cfg.Path())
	return nil
}

// parseConfigValue interprets a raw flag value: literal booleans and
// integers keep their type, comma-separated values become string lists,
// everything else stays a string.
func parseConfigValue(raw string) any {
	if raw == "true" {
		return true
	}
	if raw == "false" {
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				values = append(values, trimmed)
			}
		}
		return values
	}
	return raw
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
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

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
