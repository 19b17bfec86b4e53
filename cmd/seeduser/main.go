// cmd/seeduser/main.go: crea o actualiza el super-usuario inicial.
// Uso: SEED_EMAIL=admin@hotel.co SEED_PASSWORD=... go run ./cmd/seeduser
package main

import (
	"context"
	"os"
	"strings"

	"github.com/45061/Hotelregistryapp/internal/config"
	"github.com/45061/Hotelregistryapp/internal/infra"
	"github.com/45061/Hotelregistryapp/internal/model"
	"github.com/45061/Hotelregistryapp/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	email := strings.ToLower(strings.TrimSpace(env("SEED_EMAIL", "admin@hotel.local")))
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		log.Fatal().Msg("SEED_PASSWORD is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO usuarios (email, nombre, apellido, telefono, password_hash,
		                      es_admin, es_super_usuario, autorizado, rol_caja, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, true, true, true, ?, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE
		SET password_hash    = EXCLUDED.password_hash,
		    es_admin         = true,
		    es_super_usuario = true,
		    autorizado       = true,
		    updated_at       = NOW()
	`, email, env("SEED_NOMBRE", "Administrador"), env("SEED_APELLIDO", "General"),
		env("SEED_TELEFONO", "0000000"), string(hash), model.RolAdministrador)
	if result.Error != nil {
		log.Fatal().Err(result.Error).Msg("upsert super-usuario")
	}
	log.Info().Str("email", email).Msg("✅ super-usuario creado/actualizado")
}
