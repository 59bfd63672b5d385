// Command create-admin grants the admin role to an identity-provider account
// by upserting users/{uid} with role "admin".
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"

	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/database"
	"github.com/careerpath/admin-backend/internal/logger"
	"github.com/careerpath/admin-backend/internal/repository"
	"github.com/careerpath/admin-backend/internal/service"
)

func main() {
	var uid, name, email string
	flag.StringVar(&uid, "uid", "", "Identity provider uid of the account")
	flag.StringVar(&name, "name", "", "Display name (optional)")
	flag.StringVar(&email, "email", "", "Email (optional)")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("=== Grant Admin Role ===")

	if uid == "" {
		uid = prompt(reader, "Enter UID: ")
	}
	if uid == "" {
		fmt.Println("Error: UID is required")
		os.Exit(1)
	}
	if name == "" {
		name = prompt(reader, "Enter Name (optional): ")
	}
	if email == "" {
		email = prompt(reader, "Enter Email (optional): ")
	}

	// ─── Open Document Store ───────────────────────────────────────────
	var app *firebase.App
	if cfg.StoreDriver == config.StoreFirestore {
		var err error
		app, err = database.NewFirebaseApp(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Firebase")
		}
	}

	store, err := database.NewStore(ctx, cfg, app, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer store.Close()

	// ─── Logic ─────────────────────────────────────────────────────────
	users := repository.NewUserRepository(store)
	userService := service.NewUserService(users, nil)

	created, err := userService.GrantAdmin(ctx, uid, name, email)
	if err != nil {
		log.Fatal().Err(err).Str("uid", uid).Msg("Failed to grant admin role")
	}

	if created {
		fmt.Printf("\nSuccess! Admin profile created for %s\n", uid)
	} else {
		fmt.Printf("\nSuccess! %s is now an admin\n", uid)
	}

	// Development tokens only make sense when the server verifies HS256.
	if cfg.AuthProvider == config.AuthJWT {
		token, err := service.NewJWTVerifier(cfg.JWTSecret, cfg.JWTExpiry).Issue(uid, email)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to issue development token")
		}
		fmt.Printf("Development token (valid %s):\n%s\n", cfg.JWTExpiry, token)
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
