package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"standardspull/pkg/auth"
	"standardspull/pkg/ui"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the catalog API key",
	Long: `Manage the stored Common Standards Project API key.

The key is stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variable (STANDARDS_API_KEY, read-only)

The key only identifies your client to the catalog; it is free to obtain.`,
}

// loginCmd represents the auth login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the catalog API key securely",
	Long: `Store the Common Standards Project API key in the system keychain or
an encrypted file.

You will be prompted for the key, which you can copy from your account
page at https://commonstandardsproject.com after signing up.`,
	Example: `  # Interactive login
  standardspull auth login`,
	Args: cobra.NoArgs,
	Run:  runLogin,
}

// logoutCmd represents the auth logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API key",
	Long: `Remove the stored Common Standards Project API key from the keychain
and the encrypted file store.

A STANDARDS_API_KEY environment variable is not touched; unset that in
your shell if you want it gone too.`,
	Args: cobra.NoArgs,
	Run:  runLogout,
}

// statusCmd represents the auth status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key will come from",
	Long:  `Show the API key sources the sync command would consult, with the key values masked.`,
	Args:  cobra.NoArgs,
	Run:   runStatus,
}

// guideCmd represents the auth guide command
var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show how to obtain an API key",
	Long:  `Show step-by-step instructions for obtaining a Common Standards Project API key.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		auth.ShowAPIKeyGuide()
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
	authCmd.AddCommand(guideCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)

	// Point first-time users at the account page
	auth.ShowQuickKeyGuide()
	fmt.Println()

	// Check if a key is already stored
	if existing, err := manager.Retrieve(); err == nil && existing != nil {
		fmt.Printf("⚠️  A key is already stored (%s). Replace it? (y/N): ", auth.MaskKey(existing.APIKey))
		input, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
			return
		}
		fmt.Println()
	}

	// Get the API key with validation
	var apiKey string
	for {
		fmt.Print("🔐 API key (hidden as you type): ")
		apiKey, err = readSecret()
		if err != nil {
			ui.PrintError("Failed to read API key", err.Error())
			os.Exit(1)
		}

		if len(apiKey) < 8 {
			fmt.Println("\n❌ That doesn't look like a valid API key.")
			fmt.Println("   Keys from commonstandardsproject.com are long random strings.")
			fmt.Print("\nTry again? (Y/n): ")
			retry, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(retry)) == "n" {
				os.Exit(1)
			}
			continue
		}
		break
	}

	// Store the key
	fmt.Println("\n💾 Storing API key securely...")
	if err := manager.Store(&auth.Credential{APIKey: apiKey}); err != nil {
		ui.PrintError("Failed to store API key", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess(fmt.Sprintf("API key saved: %s", auth.MaskKey(apiKey)))

	fmt.Println("\n🔒 The key is kept in your system keychain when one is available,")
	fmt.Println("   with an encrypted file as fallback.")

	fmt.Println("\n📖 Quick Start Guide:")
	fmt.Println("   Mirror the whole catalog:")
	fmt.Println("   $ standardspull sync")
	fmt.Println("\n   Only US states, gently paced:")
	fmt.Println("   $ standardspull sync --states-only --delay 250ms")
	fmt.Println("\n   Check the archive afterwards:")
	fmt.Println("   $ standardspull verify")
}

func runLogout(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	if !manager.Exists() {
		ui.PrintError("No stored API key found")
		return
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Remove the stored API key? (y/N): ")
	input, _ := reader.ReadString('\n')
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y") {
		return
	}

	if err := manager.Delete(); err != nil {
		ui.PrintError("Failed to remove API key", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("API key removed")

	if os.Getenv("STANDARDS_API_KEY") != "" {
		ui.PrintWarning("STANDARDS_API_KEY is still set in your environment")
	}
}

func runStatus(cmd *cobra.Command, args []string) {
	ui.PrintHighlight("API Key Status")
	fmt.Println()

	// Mirrors the resolution order of the sync command
	if envKey := os.Getenv("STANDARDS_API_KEY"); envKey != "" {
		fmt.Printf("Environment (STANDARDS_API_KEY): %s\n", auth.MaskKey(envKey))
	} else {
		fmt.Println("Environment (STANDARDS_API_KEY): not set")
	}

	manager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	cred, err := manager.Retrieve()
	if err != nil {
		fmt.Println("Stored key:                      none")
		fmt.Println()
		ui.PrintInfo("Tip", "run 'standardspull auth login' to store a key")
		return
	}

	fmt.Printf("Stored key:                      %s\n", auth.MaskKey(cred.APIKey))
	if !cred.LastModified.IsZero() {
		fmt.Printf("Last modified:                   %s\n", cred.LastModified.Format("2006-01-02 15:04:05"))
	}
}

// readSecret reads a secret from stdin without echoing
func readSecret() (string, error) {
	// Try to read without echo
	if term.IsTerminal(int(syscall.Stdin)) {
		secret, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // New line after secret
		if err == nil {
			return strings.TrimSpace(string(secret)), nil
		}
	}

	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
