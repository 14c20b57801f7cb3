package main

import (
	"context"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// version is set via ldflags at build time.
// e.g. -ldflags "-X main.version=1.2.3"
var version = "dev"

// newApp creates the CLI application with all flags and commands.
func newApp() *cli.Command {
	return &cli.Command{
		Name:        "anyany",
		Usage:       "Multi-provider LLM collaboration",
		Version:     version,
		UsageText:   "anyany [global options] command [command options] [arguments...]",
		Description: "anyany sends a prompt to several LLM providers and has them debate, chain, or vote on the answer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "anyany.json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output mode: tui, plain, json, quiet",
			},
			&cli.StringFlag{
				Name:    "session",
				Aliases: []string{"s"},
				Usage:   "Session ID to record into (default: latest, or a new one)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Verbose logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Send a prompt to a single provider",
				ArgsUsage: "<prompt>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "provider", Aliases: []string{"p"}, Usage: "Provider name"},
					&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "Model (default from config)"},
				},
				Action: cmdAsk,
			},
			{
				Name:      "collab",
				Usage:     "Run a multi-agent collaboration",
				ArgsUsage: "<prompt>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "Collaboration mode: debate, pipeline, consensus"},
					&cli.StringSliceFlag{Name: "agent", Aliases: []string{"a"}, Usage: "Agent as provider or provider/model (repeatable)"},
					&cli.IntFlag{Name: "rounds", Aliases: []string{"r"}, Usage: "Debate rounds", Value: 0},
					&cli.IntFlag{Name: "retries", Usage: "Transport retries per call (-1 = config default)", Value: -1},
					&cli.StringFlag{Name: "export", Usage: "Export the report to this file after the run"},
					&cli.StringFlag{Name: "format", Usage: "Export format: md, json, txt", Value: "md"},
				},
				Action: cmdCollab,
			},
			{
				Name:   "interactive",
				Usage:  "Pick mode, agents, and prompt from menus",
				Action: cmdInteractive,
			},
			{
				Name:  "sessions",
				Usage: "List past sessions",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum sessions to show"},
					&cli.BoolFlag{Name: "json", Usage: "Output in JSON format"},
				},
				Action: cmdSessions,
			},
			{
				Name:      "history",
				Usage:     "Show interactions in a session",
				ArgsUsage: "[session-id]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "Number of interactions to show"},
					&cli.BoolFlag{Name: "json", Usage: "Output in JSON format"},
					&cli.StringFlag{Name: "show", Usage: "Show one interaction in full, with its records"},
				},
				Action: cmdHistory,
			},
			{
				Name:      "export",
				Usage:     "Export a past interaction to a file",
				ArgsUsage: "<interaction-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "md", Usage: "Export format: md, json, txt"},
					&cli.StringFlag{Name: "out", Usage: "Output file (default: <interaction-id>.<format>)"},
				},
				Action: cmdExport,
			},
			{
				Name:   "providers",
				Usage:  "List configured providers and probe local ones",
				Action: cmdProviders,
			},
			{
				Name:   "init",
				Usage:  "Initialize the storage directory and config file",
				Action: cmdInit,
			},
			{
				Name:   "config",
				Usage:  "Show current configuration",
				Action: cmdConfig,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// Default action: remaining args are a consensus prompt; with no
			// args on a TTY, drop into the interactive menu.
			args := cmd.Args().Slice()
			if len(args) == 0 {
				if term.IsTerminal(int(os.Stdout.Fd())) {
					return cmdInteractive(ctx, cmd)
				}
				return cli.ShowAppHelp(cmd)
			}
			return runCollabPrompt(ctx, cmd, strings.Join(args, " "), "", nil, 0, -1, "", "")
		},
	}
}
