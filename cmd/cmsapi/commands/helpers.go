// Package commands implements the cmsapi CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"syscall"

	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
	"github.com/code-wheel/jsonapi-frontend-client/pkg/cmsclient"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	// YAML formatting.
	defaultYAMLIndent = 2
)

// StandardJSONRenderer creates a standard JSON encoder.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer creates a standard YAML encoder.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}

// CreateClient builds a cms.Client from the effective CLI configuration.
func CreateClient() (cms.Client, error) {
	secret, err := resolveFeedSecret()
	if err != nil {
		return nil, err
	}

	client, err := cmsclient.New(&cms.Config{
		BaseURL:    viper.GetString("base-url"),
		FeedSecret: secret,
		Debug:      viper.GetBool("verbose"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating CMS client: %w", err)
	}

	return client, nil
}

// resolveFeedSecret returns the feed secret from config, or prompts for it
// when --prompt-secret is set. The prompt never echoes.
func resolveFeedSecret() (string, error) {
	if !viper.GetBool("prompt-secret") {
		return viper.GetString("secret"), nil
	}

	fmt.Fprint(os.Stderr, "Routes feed secret: ")

	secretBytes, err := term.ReadPassword(int(syscall.Stdin))

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}

	return string(secretBytes), nil
}

// orDefault substitutes a placeholder for empty table cells.
func orDefault(value string) string {
	if value == "" {
		return NotAvailable
	}

	return value
}
