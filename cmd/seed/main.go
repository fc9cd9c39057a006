package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/config"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/report"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository/postgres"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/simulation"
	"github.com/Unkn0wN1499/HackSmiths.AI/pkg/logger"
)

type dbKey struct{}

var log zerolog.Logger

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newSeedFlag() *cli.Int64Flag {
	return &cli.Int64Flag{
		Name:    "seed",
		Usage:   "Random seed for the generated dataset",
		Value:   simulation.DefaultOptions().Seed,
		EnvVars: []string{"SIM_SEED"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sqlx.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(c.Context); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey{}, postgres.Wrap(db))
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey{}).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func main() {
	envErr := godotenv.Load(".env")
	cfg := config.Fresh()
	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	log = logger.Component("seed")
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Generate synthetic inventory data and seed the product store",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Write a generated dataset as CSV files",
				Flags: []cli.Flag{
					newSeedFlag(),
					&cli.StringFlag{
						Name:    "dir",
						Usage:   "Output directory",
						Value:   "./data/seeds",
						EnvVars: []string{"SEED_DATA_DIR"},
					},
					&cli.IntFlag{
						Name:  "products",
						Usage: "Number of products to generate",
						Value: cfg.Simulation.ProductCount,
					},
				},
				Action: runGenerate,
			},
			{
				Name:   "products",
				Usage:  "Seed the products table when it is empty",
				Flags:  []cli.Flag{newDBURLFlag(), newSeedFlag(), &cli.IntFlag{Name: "count", Value: cfg.Simulation.StoreProducts}},
				Before: initDB,
				After:  closeDB,
				Action: runSeedProducts,
			},
			reportCommand(cfg),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func runGenerate(c *cli.Context) error {
	opts := simulation.DefaultOptions()
	opts.Seed = c.Int64("seed")
	opts.ProductCount = c.Int("products")

	ds := simulation.NewGenerator(opts).Generate()
	paths, err := report.WriteDataset(c.String("dir"), &ds)
	if err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	for _, p := range paths {
		log.Info().Str("file", p).Msg("written")
	}
	return nil
}

func runSeedProducts(c *cli.Context) error {
	db, ok := c.Context.Value(dbKey{}).(*postgres.DB)
	if !ok {
		return fmt.Errorf("database not initialized")
	}

	if err := db.Migrate(c.Context); err != nil {
		return err
	}

	opts := simulation.DefaultOptions()
	opts.Seed = c.Int64("seed")
	products := simulation.NewGenerator(opts).Products(c.Int("count"))

	seeded, err := repository.SeedIfEmpty(c.Context, postgres.NewProductRepository(db), products)
	if err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Info().Int("products", seeded).Msg("Database seeding completed")
	return nil
}
