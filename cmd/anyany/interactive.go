package main

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
)

// cmdInteractive drives a menu loop: pick a mode, pick agents, type a
// prompt, run, repeat. This is the default action on a terminal.
func cmdInteractive(ctx context.Context, cmd *cli.Command) error {
	for {
		choice, err := pterm.DefaultInteractiveSelect.
			WithOptions([]string{"consensus", "debate", "pipeline", "ask (single provider)", "quit"}).
			WithDefaultText("What do you want to run?").
			Show()
		if err != nil {
			return err
		}

		switch choice {
		case "quit":
			return nil
		case "ask (single provider)":
			err = interactiveAsk(ctx, cmd)
		default:
			err = interactiveCollab(ctx, cmd, choice)
		}
		if err != nil {
			pterm.Error.Println(err)
		}

		again, err := pterm.DefaultInteractiveConfirm.
			WithDefaultText("Run another?").
			WithDefaultValue(true).
			Show()
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func interactiveAsk(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfigFromCtx(cmd)
	if err != nil {
		return err
	}

	name, err := pterm.DefaultInteractiveSelect.
		WithOptions(sortedProviderNames(cfg)).
		WithDefaultText("Provider").
		Show()
	if err != nil {
		return err
	}

	prompt, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Prompt").
		Show()
	if err != nil {
		return err
	}
	if prompt == "" {
		return fmt.Errorf("empty prompt")
	}

	return askPrompt(ctx, cmd, cfg, name, "", prompt)
}

func interactiveCollab(ctx context.Context, cmd *cli.Command, mode string) error {
	cfg, err := loadConfigFromCtx(cmd)
	if err != nil {
		return err
	}

	// One option per configured provider with its default model. The
	// multiselect cannot produce duplicates, which selectAgents requires.
	var options []string
	for _, name := range sortedProviderNames(cfg) {
		options = append(options, name+"/"+cfg.Providers[name].Model)
	}

	agents, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithDefaultText("Agents (space to toggle, enter to confirm)").
		Show()
	if err != nil {
		return err
	}
	if len(agents) == 0 {
		return fmt.Errorf("no agents selected")
	}

	prompt, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Prompt").
		Show()
	if err != nil {
		return err
	}
	if prompt == "" {
		return fmt.Errorf("empty prompt")
	}

	return runCollabPrompt(ctx, cmd, prompt, mode, agents, 0, -1, "", "")
}
