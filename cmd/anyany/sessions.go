package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/urfave/cli/v3"

	"github.com/Cloud-Dark/anyany/internal/output"
	"github.com/Cloud-Dark/anyany/internal/state"
)

func cmdSessions(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfigFromCtx(cmd)
	if err != nil {
		return err
	}

	db, err := state.OpenDB(cfg.StorageDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	sessions, err := db.ListSessions(cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}

	p := output.NewPrinter(output.ModePlain)

	if len(sessions) == 0 {
		p.Info("No sessions yet. Run 'anyany collab <prompt>' to start one.")
		return nil
	}

	p.Header("Sessions")

	var rows [][]string
	for _, s := range sessions {
		rows = append(rows, []string{s.ID, shortTime(s.UpdatedAt), truncate(s.Title, 40)})
	}
	p.Table([]string{"Session", "Updated", "Title"}, rows)
	p.Printf("\n%d session(s)\n", len(sessions))
	return nil
}

func cmdHistory(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfigFromCtx(cmd)
	if err != nil {
		return err
	}

	db, err := state.OpenDB(cfg.StorageDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if id := cmd.String("show"); id != "" {
		return showInteraction(db, id, cmd.Bool("json"))
	}

	// Session from args or latest.
	var sessionID string
	if args := cmd.Args().Slice(); len(args) > 0 {
		sessionID = args[0]
	} else {
		session, err := db.LatestSession()
		if err != nil {
			return fmt.Errorf("no sessions found. Run 'anyany collab <prompt>' first")
		}
		sessionID = session.ID
	}

	interactions, err := db.ListInteractions(sessionID, cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("list interactions: %w", err)
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(interactions)
	}

	p := output.NewPrinter(output.ModePlain)

	if len(interactions) == 0 {
		p.Info("No interactions in session %s yet.", sessionID)
		return nil
	}

	p.Header(fmt.Sprintf("History (%s)", sessionID))

	var rows [][]string
	for _, ir := range interactions {
		rows = append(rows, []string{ir.ID, ir.Mode, shortTime(ir.CreatedAt), truncate(ir.Input, 50)})
	}
	p.Table([]string{"ID", "Mode", "When", "Prompt"}, rows)
	p.Printf("\n%d interaction(s)\n", len(interactions))
	return nil
}

func showInteraction(db *state.DB, id string, jsonOutput bool) error {
	ir, err := db.GetInteraction(id)
	if err != nil {
		return fmt.Errorf("interaction %s not found: %w", id, err)
	}
	records, err := db.GetRecords(id)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"interaction": ir,
			"records":     records,
		})
	}

	p := output.NewPrinter(output.ModePlain)
	p.Header(fmt.Sprintf("Interaction %s", ir.ID))
	p.KeyValue([][]string{
		{"Session", ir.SessionID},
		{"Mode", ir.Mode},
		{"When", shortTime(ir.CreatedAt)},
		{"Prompt", ir.Input},
	})

	for _, r := range records {
		label := r.Agent.String()
		if r.Round > 0 {
			label += fmt.Sprintf(" (round %d)", r.Round)
		}
		if r.Step > 0 {
			label += fmt.Sprintf(" (step %d)", r.Step)
		}
		if r.Confidence > 0 {
			label += fmt.Sprintf(" (confidence %d)", r.Confidence)
		}
		p.Section(label)
		p.Println(r.Response)
	}

	p.Section("Result")
	p.Println(ir.Summary)
	return nil
}

// truncate bounds s to width display columns without splitting a rune.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

func shortTime(ts string) string {
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		return t.Local().Format("2006-01-02 15:04")
	}
	return ts
}
