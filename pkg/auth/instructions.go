package auth

import (
	"fmt"
	"strings"
)

// ShowAPIKeyGuide displays step-by-step instructions for obtaining an API key
func ShowAPIKeyGuide() {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("🔑 COMMON STANDARDS PROJECT API KEY GUIDE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	fmt.Println("This tool needs a Common Standards Project API key to fetch the catalog.")
	fmt.Println()

	fmt.Println("🌐 STEP 1: Create an account")
	fmt.Println("   - Go to https://commonstandardsproject.com")
	fmt.Println("   - Sign up (or log in if you already have an account)")
	fmt.Println()

	fmt.Println("📋 STEP 2: Copy your API key")
	fmt.Println("   - Open your account page")
	fmt.Println("   - Your API key is shown under 'API'")
	fmt.Println()

	fmt.Println("💾 STEP 3: Give the key to this tool (pick one):")
	fmt.Println("   • standardspull auth login          (stored in your keychain)")
	fmt.Println("   • export STANDARDS_API_KEY=...      (environment variable)")
	fmt.Println("   • api.key in standardspull.yaml     (config file)")
	fmt.Println()

	fmt.Println("💡 TIPS:")
	fmt.Println("   • The catalog API is free; the key only identifies your client")
	fmt.Println("   • Keys do not expire, but you can regenerate them on the site")
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()
}

// ShowQuickKeyGuide shows a condensed version for experienced users
func ShowQuickKeyGuide() {
	fmt.Println("\n🔑 Quick Guide: commonstandardsproject.com → sign up → copy API key")
	fmt.Println("   Then: standardspull auth login, or export STANDARDS_API_KEY=...")
	fmt.Println("   Run 'standardspull auth guide' for detailed instructions")
}
