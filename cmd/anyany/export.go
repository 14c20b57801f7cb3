package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Cloud-Dark/anyany/internal/collab"
	"github.com/Cloud-Dark/anyany/internal/export"
	"github.com/Cloud-Dark/anyany/internal/output"
	"github.com/Cloud-Dark/anyany/internal/state"
)

func cmdExport(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("usage: anyany export <interaction-id> (see 'anyany history')")
	}

	format, err := export.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	cfg, err := loadConfigFromCtx(cmd)
	if err != nil {
		return err
	}

	db, err := state.OpenDB(cfg.StorageDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ir, err := db.GetInteraction(id)
	if err != nil {
		return fmt.Errorf("interaction %s not found: %w", id, err)
	}
	records, err := db.GetRecords(id)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	report := &collab.Report{
		Mode:    collab.Mode(ir.Mode),
		Input:   ir.Input,
		Summary: ir.Summary,
		Records: records,
	}

	path := cmd.String("out")
	if path == "" {
		path = fmt.Sprintf("%s.%s", ir.ID, format)
	}
	if err := export.Write(report, format, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	p := output.NewPrinter(output.ModePlain)
	p.Success("Exported %s to %s", ir.ID, path)
	return nil
}
