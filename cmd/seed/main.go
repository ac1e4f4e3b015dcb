// Command seed provisions the baseline permission and role catalog, plus an
// initial administrator account. It is idempotent: records that already
// exist are left untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/forgo/directory/api/internal/config"
	"github.com/forgo/directory/api/internal/dao"
	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

var permissions = []model.Permission{
	{Code: "accounts.read", Name: "Read accounts"},
	{Code: "accounts.write", Name: "Write accounts"},
	{Code: "parties.read", Name: "Read parties"},
	{Code: "parties.write", Name: "Write parties"},
	{Code: "roles.read", Name: "Read roles"},
	{Code: "roles.write", Name: "Write roles and permissions"},
}

var roles = []struct {
	model.Role
	permissionCodes []string
}{
	{
		Role:            model.Role{Code: "admin", Name: "Administrator", Description: "Full access"},
		permissionCodes: []string{"accounts.read", "accounts.write", "parties.read", "parties.write", "roles.read", "roles.write"},
	},
	{
		Role:            model.Role{Code: "operator", Name: "Operator", Description: "Manage accounts and parties"},
		permissionCodes: []string{"accounts.read", "accounts.write", "parties.read", "parties.write"},
	},
	{
		Role:            model.Role{Code: "viewer", Name: "Viewer", Description: "Read-only access"},
		permissionCodes: []string{"accounts.read", "parties.read", "roles.read"},
	},
}

func main() {
	adminEmail := flag.String("admin-email", "admin@directory.dev", "Email for the initial administrator account")
	adminPassword := flag.String("admin-password", "", "Password for the initial administrator account (required)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	if *adminPassword == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -admin-password <password> [-admin-email <email>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	var db database.Database
	switch cfg.Database.Engine {
	case config.EngineMemory:
		db = database.NewMemory()
	default:
		db = database.NewSurrealDB(database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
	}

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() { _ = db.Close() }()

	store := dao.NewStore(db)
	if err := seed(ctx, store, logger, *adminEmail, *adminPassword); err != nil {
		logger.Fatal().Err(err).Msg("seed failed")
	}
	logger.Info().Msg("seed complete")
}

func seed(ctx context.Context, store *dao.Store, logger zerolog.Logger, adminEmail, adminPassword string) error {
	permissionIDs := make(map[string]string, len(permissions))
	for _, p := range permissions {
		existing, err := store.Permissions.GetByCode(ctx, p.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			permissionIDs[p.Code] = existing.ID
			continue
		}

		perm := p
		if err := store.Permissions.Insert(ctx, &perm); err != nil {
			return err
		}
		permissionIDs[p.Code] = perm.ID
		logger.Info().Str("code", perm.Code).Msg("created permission")
	}

	var adminRoleID string
	for _, r := range roles {
		existing, err := store.Roles.GetByCode(ctx, r.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			if r.Code == "admin" {
				adminRoleID = existing.ID
			}
			continue
		}

		role := r.Role
		for _, code := range r.permissionCodes {
			role.PermissionIDs = append(role.PermissionIDs, permissionIDs[code])
		}
		if err := store.Roles.Insert(ctx, &role); err != nil {
			return err
		}
		if role.Code == "admin" {
			adminRoleID = role.ID
		}
		logger.Info().Str("code", role.Code).Msg("created role")
	}

	existing, err := store.Accounts.GetByEmail(ctx, adminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := dao.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	acct := &model.Account{
		Email:   adminEmail,
		Hash:    hash,
		RoleIDs: []string{adminRoleID},
	}
	if err := store.Accounts.Insert(ctx, acct); err != nil {
		return err
	}
	logger.Info().Str("email", adminEmail).Msg("created administrator account")
	return nil
}
