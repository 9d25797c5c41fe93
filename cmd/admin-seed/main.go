package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketly.backend/internal/config"
	"marketly.backend/internal/domain/entities"
	"marketly.backend/internal/infrastructure/models"
	"marketly.backend/pkg/crypto"
	"marketly.backend/pkg/utils"
)

var openSeedDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

type seedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	openDB  func(dsn string) (*gorm.DB, error)
	out     io.Writer
}

func defaultSeedDeps() seedDeps {
	return seedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		openDB:  func(dsn string) (*gorm.DB, error) { return openSeedDB(dsn) },
		out:     os.Stdout,
	}
}

// seedAdmin creates an admin user, or promotes an existing user with
// the same email. The password is bcrypt-hashed; when empty, a random
// one is generated and printed once.
func seedAdmin(db *gorm.DB, out io.Writer, email, name, password string) error {
	if email == "" {
		return fmt.Errorf("--email is required")
	}

	generated := false
	if password == "" {
		token, err := crypto.GenerateRandomToken(12)
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		password = token
		generated = true
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	var existing models.User
	err = db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		existing.Role = string(entities.UserRoleAdmin)
		existing.PasswordHash = hash
		if err := db.Model(&existing).Select("role", "password_hash", "updated_at").Updates(&existing).Error; err != nil {
			return fmt.Errorf("failed to promote user: %w", err)
		}
		_, _ = fmt.Fprintf(out, "promoted existing user %s to admin\n", email)
	case errors.Is(err, gorm.ErrRecordNotFound):
		user := models.User{
			ID:              utils.GenerateUUIDv7(),
			Email:           email,
			Name:            name,
			Role:            string(entities.UserRoleAdmin),
			PasswordHash:    hash,
			IsEmailVerified: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		_, _ = fmt.Fprintf(out, "created admin user %s (id=%s)\n", email, user.ID)
	default:
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if generated {
		_, _ = fmt.Fprintf(out, "PASSWORD=%s\n", password)
	}
	return nil
}

func runAdminSeed(args []string, deps seedDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.openDB == nil {
		deps.openDB = func(dsn string) (*gorm.DB, error) { return openSeedDB(dsn) }
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("admin-seed", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin email (required)")
	nameFlag := fs.String("name", "Platform Admin", "display name")
	passwordFlag := fs.String("password", "", "password (random when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	db, err := deps.openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect db: %w", err)
	}

	return seedAdmin(db, deps.out, *emailFlag, *nameFlag, *passwordFlag)
}

func main() {
	if err := runAdminSeed(os.Args[1:], defaultSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
