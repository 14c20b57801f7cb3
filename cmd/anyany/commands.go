package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/Cloud-Dark/anyany/internal/bus"
	"github.com/Cloud-Dark/anyany/internal/collab"
	"github.com/Cloud-Dark/anyany/internal/config"
	"github.com/Cloud-Dark/anyany/internal/export"
	"github.com/Cloud-Dark/anyany/internal/output"
	"github.com/Cloud-Dark/anyany/internal/provider"
	"github.com/Cloud-Dark/anyany/internal/state"
	"github.com/Cloud-Dark/anyany/internal/tui"
)

func loadConfigFromCtx(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func buildRegistry(cfg *config.Config) *provider.Registry {
	settings := make(map[string]provider.Settings, len(cfg.Providers))
	for name, pc := range cfg.Providers {
		settings[name] = provider.Settings{
			APIKey:  pc.APIKey,
			BaseURL: pc.BaseURL,
			Model:   pc.Model,
		}
	}
	return provider.NewRegistry(settings)
}

func newID() string {
	return uuid.NewString()[:8]
}

// resolveSession returns the session to record into: the --session flag if
// given, otherwise the latest session, otherwise a fresh one titled after
// the prompt.
func resolveSession(db *state.DB, cmd *cli.Command, title string) (string, error) {
	if id := cmd.String("session"); id != "" {
		if _, err := db.GetSession(id); err != nil {
			return "", fmt.Errorf("session %s not found: %w", id, err)
		}
		return id, nil
	}
	if s, err := db.LatestSession(); err == nil {
		return s.ID, nil
	}
	id := newID()
	if err := db.CreateSession(id, truncate(title, 60)); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func resolveOutputMode(cmd *cli.Command, cfg *config.Config) (output.Mode, error) {
	s := cmd.String("output")
	if s == "" {
		s = cfg.Defaults.Output
	}
	mode, err := output.ParseMode(s)
	if err != nil {
		return 0, err
	}
	// The TUI needs a terminal; fall back to plain logs when piped.
	if mode == output.ModeTUI && !term.IsTerminal(int(os.Stdout.Fd())) {
		mode = output.ModePlain
	}
	return mode, nil
}

func newLogger(cmd *cli.Command) *log.Logger {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	if cmd.Bool("verbose") {
		logger.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}
	return logger
}

func cmdAsk(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("usage: anyany ask --provider <name> <prompt>")
	}
	prompt := args[0]

	cfg, err := loadConfigFromCtx(cmd)
	if err != nil {
		return err
	}

	name := cmd.String("provider")
	if name == "" {
		return fmt.Errorf("provider required (configured: %v)", sortedProviderNames(cfg))
	}
	return askPrompt(ctx, cmd, cfg, name, cmd.String("model"), prompt)
}

// askPrompt sends one prompt to one provider and records it in the session.
func askPrompt(ctx context.Context, cmd *cli.Command, cfg *config.Config, name, model, prompt string) error {
	reg := buildRegistry(cfg)
	spec := collab.AgentSpec{Provider: name, Model: model}

	logger := newLogger(cmd)
	caller := provider.NewCaller(reg, provider.CallerOptions{
		MaxRetries: cfg.Defaults.MaxRetries,
		Logger:     logger,
	})

	res := caller.Call(ctx, spec, prompt)
	if !res.Success {
		return fmt.Errorf("%s: %s", spec, res.Err)
	}
	fmt.Println(res.Text)

	db, err := state.OpenDB(cfg.StorageDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	sessionID, err := resolveSession(db, cmd, prompt)
	if err != nil {
		return err
	}
	if err := db.SaveAsk(sessionID, newID(), prompt, res.Text); err != nil {
		return fmt.Errorf("save interaction: %w", err)
	}
	return db.TouchSession(sessionID)
}

func cmdCollab(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("usage: anyany collab --mode <mode> --agent <provider/model> <prompt>")
	}
	return runCollabPrompt(ctx, cmd, args[0],
		cmd.String("mode"), cmd.StringSlice("agent"),
		cmd.Int("rounds"), cmd.Int("retries"),
		cmd.String("export"), cmd.String("format"))
}

// runCollabPrompt is the shared run path behind collab, the default action,
// and the interactive menu. Zero/empty settings fall back to the config
// defaults.
func runCollabPrompt(ctx context.Context, cmd *cli.Command, prompt, modeStr string, agentStrs []string, rounds, retries int, exportPath, exportFormat string) error {
	cfg, err := loadConfigFromCtx(cmd)
	if err != nil {
		return err
	}

	if modeStr == "" {
		modeStr = cfg.Defaults.Mode
	}
	mode, err := collab.ParseMode(modeStr)
	if err != nil {
		return err
	}

	agents, err := selectAgents(agentStrs, cfg)
	if err != nil {
		return err
	}

	if rounds <= 0 {
		rounds = cfg.Defaults.Rounds
	}
	if retries < 0 {
		retries = cfg.Defaults.MaxRetries
	}

	outMode, err := resolveOutputMode(cmd, cfg)
	if err != nil {
		return err
	}

	db, err := state.OpenDB(cfg.StorageDir)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	sessionID, err := resolveSession(db, cmd, prompt)
	if err != nil {
		return err
	}

	reg := buildRegistry(cfg)
	b := bus.New(0)

	var report *collab.Report
	if outMode == output.ModeTUI {
		report, err = runWithTUI(ctx, cmd, reg, b, db, sessionID, prompt, mode, agents, rounds, retries)
	} else {
		report, err = runPlain(ctx, cmd, reg, b, db, sessionID, prompt, mode, agents, rounds, retries, outMode)
	}
	if err != nil {
		return err
	}

	if exportPath != "" {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		if err := export.Write(report, format, exportPath); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
	}
	return nil
}

func runWithTUI(ctx context.Context, cmd *cli.Command, reg *provider.Registry, b *bus.MessageBus, db *state.DB, sessionID, prompt string, mode collab.Mode, agents []collab.AgentSpec, rounds, retries int) (*collab.Report, error) {
	tuiProg := tui.NewProgram(string(mode), prompt)
	tuiProg.AttachBus(b)

	// Route logger output into the feed so it does not corrupt the screen.
	logger := log.New(tuiProg.LogWriter(), "", log.LstdFlags)

	caller := provider.NewCaller(reg, provider.CallerOptions{MaxRetries: retries, Logger: logger})
	orch := collab.New(caller, collab.Options{DebateRounds: rounds, Logger: logger, Bus: b})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		report *collab.Report
		runErr error
	)
	go func() {
		defer cancel()
		report, runErr = orch.Run(runCtx, prompt, mode, agents)
		if runErr != nil {
			tuiProg.SendDone(false, "", runErr.Error())
			return
		}
		if err := db.SaveReport(sessionID, newID(), report); err != nil {
			logger.Printf("save report: %v", err)
		}
		tuiProg.SendDone(true, report.Summary, "")
	}()

	if _, err := tuiProg.Run(); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	if runErr != nil {
		return nil, runErr
	}
	return report, nil
}

func runPlain(ctx context.Context, cmd *cli.Command, reg *provider.Registry, b *bus.MessageBus, db *state.DB, sessionID, prompt string, mode collab.Mode, agents []collab.AgentSpec, rounds, retries int, outMode output.Mode) (*collab.Report, error) {
	logger := newLogger(cmd)
	p := output.NewPrinter(outMode)
	p.Attach(b)

	var jw *output.JSONWriter
	if outMode == output.ModeJSON {
		jw = output.NewJSONWriter(os.Stdout, sessionID)
		jw.Attach(b)
		jw.WriteRunStart(string(mode), prompt)
	}

	p.Header("anyany")
	p.KeyValue([][]string{
		{"Mode", string(mode)},
		{"Agents", agentList(agents)},
		{"Session", sessionID},
	})

	caller := provider.NewCaller(reg, provider.CallerOptions{MaxRetries: retries, Logger: logger})
	orch := collab.New(caller, collab.Options{DebateRounds: rounds, Logger: logger, Bus: b})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case <-sigs:
			logger.Println("interrupted, stopping...")
			cancel()
		case <-runCtx.Done():
		}
	}()

	report, err := orch.Run(runCtx, prompt, mode, agents)
	if err != nil {
		if jw != nil {
			jw.WriteError(err.Error())
		}
		return nil, err
	}

	if err := db.SaveReport(sessionID, newID(), report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	if jw != nil {
		jw.WriteRunEnd(report)
	} else {
		p.Report(report)
	}
	return report, nil
}

func cmdInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	logger := newLogger(cmd)

	cfg := config.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	db, err := state.OpenDB(cfg.StorageDir)
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	defer db.Close()

	logger.Printf("Initialized storage at %s", cfg.StorageDir)
	logger.Printf("Config at %s", configPath)
	logger.Printf("Database at %s", db.Path())
	return nil
}

func cmdConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	cfg, err := loadConfigFromCtx(cmd)
	if err != nil {
		return err
	}

	p := output.NewPrinter(output.ModePlain)
	p.Header(fmt.Sprintf("Configuration (%s)", configPath))
	p.KeyValue([][]string{
		{"Storage Dir", cfg.StorageDir},
		{"Default Mode", cfg.Defaults.Mode},
		{"Debate Rounds", fmt.Sprintf("%d", cfg.Defaults.Rounds)},
		{"Max Retries", fmt.Sprintf("%d", cfg.Defaults.MaxRetries)},
		{"Output", cfg.Defaults.Output},
	})

	p.Section("Providers")
	var rows [][]string
	for _, name := range sortedProviderNames(cfg) {
		pc := cfg.Providers[name]
		key := "-"
		if pc.APIKey != "" {
			key = "set"
		}
		base := pc.BaseURL
		if base == "" {
			base = "-"
		}
		rows = append(rows, []string{name, pc.Model, base, key})
	}
	p.Table([]string{"Provider", "Model", "Base URL", "API Key"}, rows)
	return nil
}

func cmdProviders(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfigFromCtx(cmd)
	if err != nil {
		return err
	}

	p := output.NewPrinter(output.ModePlain)
	p.Header("Providers")

	var rows [][]string
	for _, name := range sortedProviderNames(cfg) {
		pc := cfg.Providers[name]
		status := "key missing"
		switch {
		case name == "ollama":
			oc := provider.NewOllamaClient(pc.BaseURL, pc.Model)
			if err := oc.Ping(ctx); err != nil {
				status = "unreachable"
			} else {
				status = "ready"
			}
		case pc.APIKey != "":
			status = "ready"
		}
		rows = append(rows, []string{output.CallIcon(status == "ready"), name, pc.Model, status})
	}
	p.Table([]string{"", "Provider", "Model", "Status"}, rows)
	return nil
}
