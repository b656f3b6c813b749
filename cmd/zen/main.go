package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"zen/internal/apiclient"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "zen",
	Short: "Pomodoro timer client",
	Long: `Zen is a terminal client for the zen pomodoro server. It runs timed
focus/break sessions against your saved timer configurations and logs
distractions and focus notes to the server as you go.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	defaultServer := os.Getenv("ZEN_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:4000"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "zen API base URL")
}

// newClient builds an API client carrying the cached token, when present.
func newClient() *apiclient.Client {
	token, _ := loadToken()
	return apiclient.New(serverURL, token)
}

func tokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "zen", "token"), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

func loadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func requireToken() error {
	token, err := loadToken()
	if err != nil || token == "" {
		return fmt.Errorf("not logged in; run `zen login <username> <password>` first")
	}
	return nil
}
