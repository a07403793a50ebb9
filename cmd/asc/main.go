// Package main provides a CLI for the App Store Connect API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rovenna/asc-go/pkg/asc"
	"github.com/rovenna/asc-go/pkg/auth"
)

var (
	// Global flags
	apiURL   string
	issuerID string
	keyID    string
	keyPath  string
	timeout  time.Duration
	jsonOut  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asc",
	Short: "App Store Connect CLI",
	Long: `A command-line client for the App Store Connect API.

This tool allows you to:
  - Mint signed API tokens
  - Register, list and delete bundle IDs
  - Inspect bundle ID capabilities and provisioning profiles

Environment variables:
  ASC_API_URL     - API base URL (default: production App Store Connect)
  ASC_ISSUER_ID   - Issuer ID from the App Store Connect API keys page
  ASC_KEY_ID      - Key ID of the API key
  ASC_PRIVATE_KEY - Path to the .p8 private key file`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "", "API base URL (or ASC_API_URL env)")
	rootCmd.PersistentFlags().StringVar(&issuerID, "issuer-id", "", "Issuer ID (or ASC_ISSUER_ID env)")
	rootCmd.PersistentFlags().StringVar(&keyID, "key-id", "", "Key ID (or ASC_KEY_ID env)")
	rootCmd.PersistentFlags().StringVar(&keyPath, "key", "", "Path to .p8 private key (or ASC_PRIVATE_KEY env)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output as JSON")

	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(bundleIDCmd)
}

// getBaseURL returns the API base URL from flags or environment
func getBaseURL() string {
	if apiURL != "" {
		return apiURL
	}
	if url := os.Getenv("ASC_API_URL"); url != "" {
		return url
	}
	return asc.DefaultBaseURL
}

// getIssuerID returns the issuer ID from flags or environment
func getIssuerID() string {
	if issuerID != "" {
		return issuerID
	}
	return os.Getenv("ASC_ISSUER_ID")
}

// getKeyID returns the key ID from flags or environment
func getKeyID() string {
	if keyID != "" {
		return keyID
	}
	return os.Getenv("ASC_KEY_ID")
}

// getKeyPath returns the private key path from flags or environment
func getKeyPath() string {
	if keyPath != "" {
		return keyPath
	}
	return os.Getenv("ASC_PRIVATE_KEY")
}

// loadCredential reads and validates the signing key
func loadCredential() (*auth.Credential, error) {
	path := getKeyPath()
	if path == "" {
		return nil, fmt.Errorf("private key is required (--key or ASC_PRIVATE_KEY)")
	}
	pemData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	key, err := auth.ParsePrivateKey(pemData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key file: %w", err)
	}
	return auth.NewCredential(getIssuerID(), getKeyID(), key)
}

// newClient creates a new API client
func newClient() (*asc.Client, error) {
	cred, err := loadCredential()
	if err != nil {
		return nil, err
	}
	return asc.New(cred,
		asc.WithBaseURL(getBaseURL()),
		asc.WithTimeout(timeout),
	)
}

// outputJSON prints the value as JSON
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a signed API token",
	Long: `Mints a short-lived signed bearer token for the configured key.

Example:
  asc token --ttl 5m
  curl -H "Authorization: Bearer $(asc token)" ...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl, _ := cmd.Flags().GetDuration("ttl")

		cred, err := loadCredential()
		if err != nil {
			return err
		}

		var opts []auth.SignerOption
		if ttl > 0 {
			opts = append(opts, auth.WithTTL(ttl))
		}

		token, expiresAt, err := auth.NewSigner(opts...).Token(cred)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}

		if jsonOut {
			return outputJSON(map[string]any{
				"token":     token,
				"expiresAt": expiresAt.Format(time.RFC3339),
			})
		}

		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (default 20m, capped at the vendor maximum)")
}

// Bundle ID command group
var bundleIDCmd = &cobra.Command{
	Use:   "bundle-id",
	Short: "Manage bundle IDs",
	Long:  "Register, list, inspect and delete bundle IDs.",
}

func init() {
	bundleIDCmd.AddCommand(bundleIDListCmd)
	bundleIDCmd.AddCommand(bundleIDGetCmd)
	bundleIDCmd.AddCommand(bundleIDRegisterCmd)
	bundleIDCmd.AddCommand(bundleIDDeleteCmd)
	bundleIDCmd.AddCommand(bundleIDCapabilitiesCmd)
	bundleIDCmd.AddCommand(bundleIDProfilesCmd)
}

// Bundle ID list command
var bundleIDListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundle IDs",
	Long:  "Lists all bundle IDs registered to the team, following pagination.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		bundles, err := c.BundleIDs().All(ctx)
		if err != nil {
			return fmt.Errorf("failed to list bundle IDs: %w", err)
		}

		if jsonOut {
			return outputJSON(bundles)
		}

		for _, b := range bundles {
			fmt.Printf("%s\t%s\t%s\t%s\n", b.ID, b.Attributes.Identifier, b.Attributes.Name, b.Attributes.Platform)
		}
		return nil
	},
}

// Bundle ID get command
var bundleIDGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a bundle ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		bundle, err := c.BundleID(ctx, args[0])
		if err != nil {
			if asc.IsNotFound(err) {
				return fmt.Errorf("bundle ID not found")
			}
			return fmt.Errorf("failed to get bundle ID: %w", err)
		}

		if jsonOut {
			return outputJSON(bundle)
		}

		fmt.Printf("ID: %s\n", bundle.ID)
		fmt.Printf("Identifier: %s\n", bundle.Attributes.Identifier)
		fmt.Printf("Name: %s\n", bundle.Attributes.Name)
		fmt.Printf("Platform: %s\n", bundle.Attributes.Platform)
		fmt.Printf("Seed ID: %s\n", bundle.Attributes.SeedID)
		return nil
	},
}

// Bundle ID register command
var bundleIDRegisterCmd = &cobra.Command{
	Use:   "register <identifier> <name>",
	Short: "Register a bundle ID",
	Long: `Registers a new bundle ID.

Example:
  asc bundle-id register com.example.app "Example App" --platform IOS`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, _ := cmd.Flags().GetString("platform")

		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		bundle, err := c.RegisterBundleID(ctx, args[0], args[1], asc.Platform(platform))
		if err != nil {
			if asc.IsAuthError(err) {
				return fmt.Errorf("authentication failed: %w", err)
			}
			return fmt.Errorf("failed to register bundle ID: %w", err)
		}

		if jsonOut {
			return outputJSON(bundle)
		}

		fmt.Printf("Registered %s (%s)\n", bundle.Attributes.Identifier, bundle.ID)
		return nil
	},
}

func init() {
	bundleIDRegisterCmd.Flags().String("platform", string(asc.PlatformUniversal), "Platform: IOS, MAC_OS or UNIVERSAL")
}

// Bundle ID delete command
var bundleIDDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bundle ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := c.DeleteBundleID(ctx, args[0]); err != nil {
			if asc.IsNotFound(err) {
				return fmt.Errorf("bundle ID not found")
			}
			return fmt.Errorf("failed to delete bundle ID: %w", err)
		}

		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

// Bundle ID capabilities command
var bundleIDCapabilitiesCmd = &cobra.Command{
	Use:   "capabilities <id>",
	Short: "List capabilities of a bundle ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		capabilities, err := c.BundleIDCapabilities(args[0]).All(ctx)
		if err != nil {
			return fmt.Errorf("failed to list capabilities: %w", err)
		}

		if jsonOut {
			return outputJSON(capabilities)
		}

		for _, capability := range capabilities {
			fmt.Printf("%s\t%s\n", capability.ID, capability.Attributes.CapabilityType)
		}
		return nil
	},
}

// Bundle ID profiles command
var bundleIDProfilesCmd = &cobra.Command{
	Use:   "profiles <id>",
	Short: "List provisioning profiles of a bundle ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		profiles, err := c.BundleIDProfiles(args[0]).All(ctx)
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}

		if jsonOut {
			return outputJSON(profiles)
		}

		for _, p := range profiles {
			fmt.Printf("%s\t%s\t%s\t%s\n", p.ID, p.Attributes.Name, p.Attributes.ProfileType, p.Attributes.ProfileState)
		}
		return nil
	},
}
