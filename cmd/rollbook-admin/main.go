// Command rollbook-admin provisions user accounts from the terminal.
// It prompts for a username and password, hashes the password and
// inserts the account directly through the service layer, so operators
// can seed access without going through the HTTP endpoint.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/edukit/rollbook/internal/cli"
	"github.com/edukit/rollbook/internal/server/auth"
	"github.com/edukit/rollbook/internal/server/config"
	"github.com/edukit/rollbook/internal/server/repositories/repomanager"
	"github.com/edukit/rollbook/internal/server/services"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer rm.Close()

	codec, err := auth.NewTokenCodec([]byte(cfg.SecretKey), cfg.Algorithm, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("token codec init error: %w", err)
	}

	us := services.NewUserService(rm.Users(), auth.NewHasher(cfg.BcryptCost), codec)

	reader := bufio.NewReader(os.Stdin)

	username, err := cli.GetSimpleText(reader, "Username for the new account", os.Stdout)
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}

	password, err := cli.GetPassword("Enter password: ", os.Stdout)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	confirm, err := cli.GetPassword("Repeat password: ", os.Stdout)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if string(password) != string(confirm) {
		return fmt.Errorf("passwords do not match")
	}

	user, err := us.Register(ctx, username, string(password))
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	fmt.Printf("Created account %q (id %s)\n", user.Username, user.ID)
	return nil
}
