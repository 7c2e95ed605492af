package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/portico/pkg/form"
)

// Overlay marks a session's progress on the diagram.
type Overlay struct {
	CurrentStep int  // 1-based; 0 means none
	Submitted   bool // highlights the final node instead of a step
}

// GenerateMermaid produces a Mermaid flowchart of a form's steps.
// Shapes:
// - Start: ((Circle))
// - Step with an option group: [/Parallelogram/]
// - Plain step: [Rectangle]
// - Submission: [[Subroutine]]
// Forward edges carry the step's required fields as their condition; back
// edges are dotted.
func GenerateMermaid(def *form.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    start((\"start\"))\n")
	sb.WriteString("    submit[[\"submit\"]]\n")

	total := def.TotalSteps()
	for _, step := range def.Steps {
		id := stepID(step.Index)
		opener, closer := "[", "]"
		if step.Options != nil {
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%d. %s\"%s\n", id, opener, step.Index, escape(step.Title), closer))
	}

	if total > 0 {
		sb.WriteString(fmt.Sprintf("    start --> %s\n", stepID(1)))
	}
	for _, step := range def.Steps {
		from := stepID(step.Index)
		to := "submit"
		if step.Index < total {
			to = stepID(step.Index + 1)
		}

		if cond := condition(step); cond != "" {
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", from, escape(cond), to))
		} else {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", from, to))
		}
		if step.Index > 1 {
			sb.WriteString(fmt.Sprintf("    %s -. back .-> %s\n", from, stepID(step.Index-1)))
		}
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		last := overlay.CurrentStep - 1
		if overlay.Submitted {
			last = total
		}
		for i := 1; i <= last && i <= total; i++ {
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", stepID(i)))
		}

		switch {
		case overlay.Submitted:
			sb.WriteString("    class submit current;\n")
		case overlay.CurrentStep >= 1 && overlay.CurrentStep <= total:
			sb.WriteString(fmt.Sprintf("    class %s current;\n", stepID(overlay.CurrentStep)))
		}
	}

	return sb.String()
}

func stepID(index int) string {
	return fmt.Sprintf("step_%d", index)
}

// condition lists what must hold to leave the step.
func condition(step form.Step) string {
	parts := step.RequiredFields()
	if step.Options != nil && step.Options.MinSelected > 0 {
		parts = append(parts, fmt.Sprintf("%d+ %s", step.Options.MinSelected, strings.ToLower(step.Options.Label)))
	}
	return strings.Join(parts, ", ")
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
