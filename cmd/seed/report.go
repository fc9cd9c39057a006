package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/config"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/report"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/repository/memory"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/service"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/simulation"
	"github.com/Unkn0wN1499/HackSmiths.AI/internal/storage"
)

func reportCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Inventory report exports",
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Compute an inventory report over a generated dataset",
				Flags: []cli.Flag{
					newSeedFlag(),
					&cli.StringFlag{Name: "dir", Value: cfg.Storage.ReportDir, Usage: "Local report directory"},
					&cli.BoolFlag{Name: "upload", Usage: "Also upload the report to object storage"},
				},
				Action: func(c *cli.Context) error {
					return runExport(c, cfg)
				},
			},
			{
				Name:  "list",
				Usage: "List uploaded reports",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prefix", Value: "reports/"},
				},
				Action: func(c *cli.Context) error {
					return runList(c, cfg)
				},
			},
			{
				Name:      "fetch",
				Usage:     "Download an uploaded report",
				ArgsUsage: "<object-key> <dest-path>",
				Action: func(c *cli.Context) error {
					return runFetch(c, cfg)
				},
			},
		},
	}
}

func openStore(c *cli.Context, cfg *config.Config) (*storage.MinioClient, error) {
	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	if err := client.EnsureBucket(c.Context); err != nil {
		return nil, err
	}
	return client, nil
}

func runExport(c *cli.Context, cfg *config.Config) error {
	var store storage.ObjectStorage
	if c.Bool("upload") {
		client, err := openStore(c, cfg)
		if err != nil {
			return err
		}
		store = client
	}

	opts := simulation.DefaultOptions()
	opts.Seed = c.Int64("seed")

	svc, err := service.NewInventoryService(c.Context, service.Deps{
		Products: memory.NewProductRepository(),
		Alerts:   memory.NewAlertRepository(),
		Source:   simulation.NewGenerator(opts),
		Exporter: report.NewExporter(c.String("dir"), store),
	}, service.OptionsFromConfig(cfg.Engine))
	if err != nil {
		return err
	}

	res, err := svc.ExportInventoryReport(c.Context)
	if err != nil {
		return err
	}

	log.Info().Str("path", res.Path).Str("key", res.ObjectKey).Int("rows", res.Rows).Msg("inventory report exported")
	return nil
}

func runList(c *cli.Context, cfg *config.Config) error {
	client, err := openStore(c, cfg)
	if err != nil {
		return err
	}

	objects, err := client.ListObjects(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}
	for _, obj := range objects {
		fmt.Fprintf(c.App.Writer, "%s\t%d\t%s\n", obj.Key, obj.Size, obj.LastModified.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runFetch(c *cli.Context, cfg *config.Config) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: seed report fetch <object-key> <dest-path>", 2)
	}

	client, err := openStore(c, cfg)
	if err != nil {
		return err
	}
	if err := client.DownloadObject(c.Context, c.Args().Get(0), c.Args().Get(1)); err != nil {
		return err
	}

	log.Info().Str("key", c.Args().Get(0)).Str("dest", c.Args().Get(1)).Msg("report downloaded")
	return nil
}
