package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pomodoro/focus/internal/service"
)

var passphraseCmd = &cobra.Command{
	Use:   "passphrase",
	Short: "Manage the owner passphrase that locks the API",
}

var passphraseSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the owner passphrase",
	RunE:  runPassphraseSet,
}

var passphraseRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the owner passphrase and unlock the API",
	RunE:  runPassphraseRemove,
}

func init() {
	passphraseCmd.AddCommand(passphraseSetCmd)
	passphraseCmd.AddCommand(passphraseRemoveCmd)

	passphraseRemoveCmd.Flags().Bool("yes", false, "Confirm removal")
}

func runPassphraseSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	passphrase, err := readPassphrase(cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	authService := service.NewAuthService(backend, cfg.JWTSecret, cfg.TokenTTL)
	result, apiErr := authService.Setup(cmd.Context(), passphrase)
	if apiErr != nil {
		return apiErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Passphrase set. Token valid until %s:\n%s\n",
		result.ExpiresAt.Local().Format(time.RFC1123), result.Token)
	return nil
}

func runPassphraseRemove(cmd *cobra.Command, args []string) error {
	confirmed, _ := cmd.Flags().GetBool("yes")
	if !confirmed {
		return fmt.Errorf("refusing to remove passphrase without --yes")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	if err := backend.Remove(cmd.Context(), service.PassphraseHashKey); err != nil {
		return fmt.Errorf("remove passphrase: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Passphrase removed. The API is unlocked.")
	return nil
}

// readPassphrase prompts without echo on a terminal and reads one line
// otherwise.
func readPassphrase(in io.Reader, prompt io.Writer) (string, error) {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(prompt, "Passphrase: ")
		raw, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
