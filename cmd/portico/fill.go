package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/portico/internal/presentation/tui"
	"github.com/aretw0/portico/pkg/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the lead form interactively in the terminal",
	Long: `Walks through the lead form step by step. Answers are saved as you go; run
again with --session to resume a saved draft.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("fill needs an interactive terminal; use the HTTP API or MCP server instead")
		}

		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := cmd.Context()
		id, _ := cmd.Flags().GetString("session")
		var ctrl *wizard.Controller
		if id == "" {
			id, ctrl, err = app.Sessions.Start(ctx)
		} else {
			ctrl, err = app.Sessions.Open(ctx, id)
		}
		if err != nil {
			return err
		}

		noBanner, _ := cmd.Flags().GetBool("no-banner")
		if !noBanner {
			tui.PrintBanner(os.Stdout)
		}

		filler := tui.NewFiller(tui.NewSurveyDriver(), tui.NewRenderer())
		err = filler.Run(ctx, ctrl)
		switch {
		case errors.Is(err, tui.ErrQuit), errors.Is(err, tui.ErrAborted):
			fmt.Printf("Draft saved. Resume with: portico fill --session %s\n", id)
			return nil
		case err != nil:
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().String("session", "", "Resume the draft saved under this session ID")
	fillCmd.Flags().Bool("no-banner", false, "Do not print the banner")
}
