package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/PaceTNT/office-map/internal/auth"
)

// tokenctl mints bearer tokens for operators and local development.
func main() {
	var secret string
	var subject string
	var email string
	var admin bool
	var ttlHours int

	rootCmd := &cobra.Command{
		Use:   "tokenctl",
		Short: "Mint a signed bearer token for the locator API",
		Run: func(c *cobra.Command, args []string) {
			if secret == "" {
				secret = os.Getenv("AUTH_SECRET")
			}
			if secret == "" {
				log.Fatal("no signing secret: pass --secret or set AUTH_SECRET")
			}

			role := auth.RoleUser
			if admin {
				role = auth.RoleAdmin
			}

			v := auth.NewVerifier(secret, false)
			token, err := v.Mint(subject, email, role, time.Duration(ttlHours)*time.Hour)
			if err != nil {
				log.Fatalf("Failed to sign token: %v", err)
			}

			fmt.Println(token)
		},
	}

	rootCmd.Flags().StringVar(&secret, "secret", "", "HMAC signing secret (default: AUTH_SECRET env)")
	rootCmd.Flags().StringVar(&subject, "subject", "dev-user-id", "Token subject (user id)")
	rootCmd.Flags().StringVar(&email, "email", "dev@example.com", "Token email claim")
	rootCmd.Flags().BoolVar(&admin, "admin", false, "Grant the admin role")
	rootCmd.Flags().IntVar(&ttlHours, "ttl", 168, "Token lifetime in hours")

	cobra.OnInitialize(func() {
		_ = godotenv.Load()
	})

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
