// Command token prints a bearer token for the profile API.
package main

import (
	"flag"
	"fmt"
	"os"

	"ProfileStore_Service/internal/auth"
	"ProfileStore_Service/internal/config"
)

func main() {
	username := flag.String("user", "", "username the token is issued for")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET_KEY is not set")
		os.Exit(1)
	}

	token, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL).GenerateToken(*username)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Println(token)
}
