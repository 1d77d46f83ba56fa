package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-catalog/app/configs"
	"github.com/Rakhulsr/go-catalog/app/db/seeders"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/models/migrations"
	"github.com/Rakhulsr/go-catalog/app/repositories"
	"github.com/Rakhulsr/go-catalog/app/utils/logger"
	"github.com/urfave/cli/v3"
)

// RunCli dispatches the subcommand in args.
func RunCli(ctx context.Context, env configs.ENV, args []string) error {
	cmd := &cli.Command{
		Name:  "catalog",
		Usage: "Product catalog server and maintenance commands",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return fmt.Errorf("migration failed: %w", err)
					}
					logger.Info(ctx).Msg("Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the catalog with fake categories and products",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "categories", Value: 3, Usage: "number of categories to create"},
					&cli.IntFlag{Name: "products", Value: 8, Usage: "products per category"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					opts := seeders.Options{
						Categories:          int(c.Int("categories")),
						ProductsPerCategory: int(c.Int("products")),
					}
					if err := seeders.DBSeed(ctx, db, opts); err != nil {
						return err
					}
					logger.Info(ctx).Int("categories", opts.Categories).Msg("Seeding complete")
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an administrator account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "name", Value: "Admin"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if len(c.String("password")) < 8 {
						return errors.New("password must be at least 8 characters")
					}
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					repo := repositories.NewAdminUserRepository(db)

					existing, err := repo.FindByEmail(ctx, c.String("email"))
					if err != nil {
						return err
					}
					if existing != nil {
						return fmt.Errorf("admin %s already exists", existing.Email)
					}

					admin := &models.AdminUser{
						Name:     c.String("name"),
						Email:    c.String("email"),
						Password: c.String("password"),
					}
					if err := repo.Create(ctx, admin); err != nil {
						return fmt.Errorf("failed to create admin: %w", err)
					}
					logger.Info(ctx).Str("email", admin.Email).Msg("Admin created")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session authentication, encryption and CSRF keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(); err != nil {
						return err
					}
					logger.Info(ctx).Msg("Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
		},
	}

	return cmd.Run(ctx, args)
}
