package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"coachdesk/internal/domain/user"
	"coachdesk/internal/infra/db"
	"coachdesk/internal/infra/repository"
	"coachdesk/internal/pkg/config"
	"coachdesk/internal/pkg/password"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
)

// seedConfig is only read when -seed-admin is set.
type seedConfig struct {
	Email    string `envconfig:"ADMIN_SEED_EMAIL"`
	Password string `envconfig:"ADMIN_SEED_PASSWORD"`
}

func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	atlasBin := flag.String("atlas", "atlas", "atlas binary")
	seedAdmin := flag.Bool("seed-admin", false, "create or update the admin user from ADMIN_SEED_EMAIL / ADMIN_SEED_PASSWORD")
	flag.Parse()

	if err := run(*dir, *atlasBin, *seedAdmin); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(dir, atlasBin string, seedAdmin bool) error {
	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		return fmt.Errorf("failed to process db config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	client, err := atlasexec.NewClient(".", atlasBin)
	if err != nil {
		return fmt.Errorf("failed to init atlas client: %w", err)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dbCfg.BuildDSN(),
		DirURL: "file://" + absDir,
	})
	if err != nil {
		return fmt.Errorf("migrate apply: %w", err)
	}
	slog.Info("migrations applied", "count", len(res.Applied), "current", res.Current, "target", res.Target)

	if !seedAdmin {
		return nil
	}
	return seed(ctx, dbCfg)
}

// seed upserts one admin. Logging in still requires the email to be on ADMIN_ALLOWED_EMAILS.
func seed(ctx context.Context, dbCfg config.DBConfig) error {
	var sc seedConfig
	if err := envconfig.Process("", &sc); err != nil {
		return err
	}

	creds, err := user.NewCredentials(sc.Email, sc.Password)
	if err != nil {
		return fmt.Errorf("invalid admin seed credentials: %w", err)
	}

	hash, err := password.HashPassword(creds.Password().Value())
	if err != nil {
		return err
	}

	pool, cleanup, err := db.Connect(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer cleanup()

	admin := user.NewUser(creds.Email(), hash, user.RoleAdmin, time.Now())
	if err := repository.NewUserRepository(pool).Upsert(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	slog.Info("admin user seeded", "email", creds.Email().Value())
	return nil
}
