package main

import (
	"fmt"

	"github.com/aretw0/portico/internal/presentation/graph"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/form"
	"github.com/spf13/cobra"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Form definition tools",
}

var formValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a form definition for consistency",
	Long:  `Parses a YAML form definition and reports duplicate, reserved or malformed fields.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := form.Load(args[0])
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Printf("Form %q is valid (%d steps)\n", def.ID, def.TotalSteps())
		for _, step := range def.Steps {
			fmt.Printf("  %d. %s: %d field(s)", step.Index, step.Title, len(step.Fields))
			if step.Options != nil {
				fmt.Printf(", %d choice(s)", len(step.Options.Choices))
			}
			fmt.Println()
		}
		return nil
	},
}

var formGraphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the form's step flow as a Mermaid diagram",
	Long: `Prints the configured form as a Mermaid flowchart. With --session, the
steps that session has completed and its current step are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		var overlay *graph.Overlay
		if id, _ := cmd.Flags().GetString("session"); id != "" {
			ctrl, err := app.Sessions.Open(cmd.Context(), id)
			if err != nil {
				return err
			}
			v := ctrl.View()
			overlay = &graph.Overlay{
				CurrentStep: v.StepIndex,
				Submitted:   v.Phase == domain.PhaseSubmitted,
			}
		}

		fmt.Print(graph.GenerateMermaid(app.Form, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formCmd)
	formCmd.AddCommand(formValidateCmd)
	formCmd.AddCommand(formGraphCmd)
	formGraphCmd.Flags().String("session", "", "Highlight the progress of this session")
}
