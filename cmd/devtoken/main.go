package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/forgo/runningmate/internal/config"
	"github.com/forgo/runningmate/pkg/jwt"
)

func main() {
	nick := flag.String("nick", "runner01", "Nickname carried by the token")
	userID := flag.Int64("uid", 1, "User ID carried by the token")
	email := flag.String("email", "", "Email carried by the token (default: <nick>@runningmate.dev)")
	expMins := flag.Int("exp", 60*24*7, "Token expiration in minutes (default: 7 days)")
	outputJSON := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		fmt.Fprintln(os.Stderr, "Refusing to mint development tokens with SERVER_ENV=production")
		os.Exit(1)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		os.Exit(1)
	}

	if *email == "" {
		*email = *nick + "@runningmate.dev"
	}
	token, err := jwtService.Sign(jwt.Claims{UserID: *userID, NickName: *nick, Email: *email})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(map[string]any{
			"token":      token,
			"nickName":   *nick,
			"user_id":    *userID,
			"expires_in": *expMins * 60,
		})
		return
	}

	expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
	fmt.Println("Development Token")
	fmt.Println("=================")
	fmt.Printf("User ID:   %d\n", *userID)
	fmt.Printf("Nickname:  %s\n", *nick)
	fmt.Printf("Expires:   %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'x-auth-token: %s' %s/friends\n", token, cfg.Client.BaseURL)
}
