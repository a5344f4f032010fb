package main

import (
	"NoteShare/config"
	"NoteShare/pkg/database"
	"NoteShare/pkg/log"
	"NoteShare/pkg/server"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func defaultConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	log.SetLevel(cfg.App.LogLevel)
	return cfg, nil
}

func main() {
	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "notes sharing service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file path",
				Value:   defaultConfigPath(),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start http server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update database tables",
				Action: migrate,
			},
			{
				Name:  "create-admin",
				Usage: "create the admin account if it does not exist",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
				},
				Action: createAdmin,
			},
			{
				Name:  "sweep",
				Usage: "remove uploaded files no note refers to",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "grace", Usage: "skip files younger than this"},
				},
				Action: sweep,
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("api-server", zap.Error(err))
	}
}

func serve(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	app, cleanup, err := InitServer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := database.Migrate(app.Db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if b := cfg.Bootstrap; b.AdminEnabled {
		if _, err := app.Auth.EnsureAdmin(ctx.Context, b.AdminUsername, b.AdminEmail, b.AdminPassword); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}
	return server.Run(ctx, app)
}

func migrate(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	db, cleanup, err := database.NewDB(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.L.Info("migrate finished")
	return nil
}

func createAdmin(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	app, cleanup, err := InitServer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := database.Migrate(app.Db); err != nil {
		return err
	}
	created, err := app.Auth.EnsureAdmin(ctx.Context, ctx.String("username"), ctx.String("email"), ctx.String("password"))
	if err != nil {
		return err
	}
	if !created {
		log.L.Info("admin already exists", zap.String("username", ctx.String("username")))
	}
	return nil
}

func sweep(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	sweeper, cleanup, err := InitSweeper(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	grace := cfg.Storage.SweepGrace
	if ctx.IsSet("grace") {
		grace = ctx.Duration("grace")
	}
	n, err := sweeper.Sweep(ctx.Context, grace)
	if err != nil {
		return err
	}
	log.L.Info("sweep finished", zap.Int("removed", n))
	return nil
}
