// seed crea el usuario MODERADOR inicial si la tabla de usuarios está vacía.
//
// Uso: go run ./cmd/seed
// Credenciales vía env: SEED_USERNAME, SEED_PASSWORD, SEED_FULL_NAME,
// SEED_DNI, SEED_EMAIL. El password es obligatorio.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanfelipe/obras-api/internal/domain/entity"
	"github.com/sanfelipe/obras-api/internal/infrastructure/postgres"
	"github.com/sanfelipe/obras-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		fail("SEED_PASSWORD es obligatorio")
	}

	ctx := context.Background()
	if err := postgres.RunMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
		fail("migraciones: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)

	existing, err := userRepo.List(ctx, 1, 0)
	if err != nil {
		fail("consultar usuarios: %v", err)
	}
	if len(existing) > 0 {
		fmt.Println("ya existen usuarios, no se siembra nada")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear password: %v", err)
	}

	now := time.Now()
	moderador := &entity.User{
		ID:           uuid.New().String(),
		Username:     envOr("SEED_USERNAME", "moderador"),
		PasswordHash: string(hash),
		FullName:     envOr("SEED_FULL_NAME", "Moderador Inicial"),
		Role:         entity.RoleModerador,
		DNI:          envOr("SEED_DNI", "00000000"),
		Email:        envOr("SEED_EMAIL", "moderador@example.com"),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, moderador); err != nil {
		fail("crear moderador: %v", err)
	}

	fmt.Printf("usuario %s creado con rol MODERADOR\n", moderador.Username)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
