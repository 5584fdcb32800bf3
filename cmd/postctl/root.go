package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"devconnector.com/social-network/client"
)

const tokenFileName = ".postctl-token"

var errNotLoggedIn = errors.New("not logged in: run postctl login or postctl register")

type app struct {
	apiURL    string
	tokenFile string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "postctl",
		Short: "Command-line client for the DevConnector posts API",
		Long: `postctl talks to a DevConnector server over its REST API.

Register or log in once; the token is kept in ~/.postctl-token (or taken
from POSTCTL_TOKEN) and sent with every later command. Each command prints
the resulting view state as JSON.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", envOr("POSTCTL_API_URL", client.DefaultBaseURL), "API base URL")
	root.PersistentFlags().StringVar(&a.tokenFile, "token-file", defaultTokenFile(), "where the auth token is stored")

	root.AddCommand(a.registerCmd(), a.loginCmd(), a.whoamiCmd(), a.postsCmd())
	return root
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return tokenFileName
	}
	return filepath.Join(home, tokenFileName)
}

func (a *app) token() (string, error) {
	if t := strings.TrimSpace(os.Getenv("POSTCTL_TOKEN")); t != "" {
		return t, nil
	}
	b, err := os.ReadFile(a.tokenFile)
	if errors.Is(err, os.ErrNotExist) {
		return "", errNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (a *app) saveToken(token string) error {
	if err := os.WriteFile(a.tokenFile, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (a *app) anonymous() *client.Client {
	return client.New(a.apiURL, "")
}

func (a *app) authenticated() (*client.Client, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	return client.New(a.apiURL, token), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
