// Command token mints a signed operator token for the booking service.
//
//	go run ./cmd/token -user ops-1 -role superadmin
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dutyledger/dutyledger/internal/auth"
	"github.com/dutyledger/dutyledger/internal/config"
	"github.com/dutyledger/dutyledger/pkg/logging"
)

func main() {
	user := flag.String("user", "", "user id to put in the token")
	role := flag.String("role", string(auth.RoleAdmin), "viewer, admin or superadmin")
	flag.Parse()

	_ = godotenv.Load()
	logging.Setup("warn")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	r, ok := auth.ParseRole(*role)
	if !ok {
		slog.Error("Unknown role", "role", *role)
		os.Exit(2)
	}

	token, err := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenDuration).Generate(auth.Principal{UserID: *user, Role: r})
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
