package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// SetupRenderer renders the post-deployment setup summary
type SetupRenderer struct {
	out   io.Writer
	color bool
}

// NewSetupRenderer creates a new setup renderer
func NewSetupRenderer(out io.Writer, color bool) *SetupRenderer {
	return &SetupRenderer{
		out:   out,
		color: color,
	}
}

func (r *SetupRenderer) Render(result *usecase.SetupContractsResult) error {
	if len(result.Steps) == 0 {
		fmt.Fprintln(r.out, "Nothing to set up")
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Setup on %s:\n", result.Network)
	for _, step := range result.Steps {
		switch {
		case step.Skipped:
			fmt.Fprintf(r.out, "  ⏭️  %s (%s)\n", step.Description, step.Reason)
		case result.DryRun:
			fmt.Fprintf(r.out, "  • %s: %s.%s\n", step.Description, step.Contract, step.Method)
		default:
			fmt.Fprintf(r.out, "  ✓ %s: %s\n", step.Description, hashColor.Sprint(step.TxHash))
		}
	}

	fmt.Fprintln(r.out)
	if result.DryRun {
		fmt.Fprintln(r.out, FormatWarning("Dry run, no transactions were sent"))
	} else {
		fmt.Fprintln(r.out, FormatSuccess("Setup done"))
	}
	return nil
}

var _ Renderer[*usecase.SetupContractsResult] = (*SetupRenderer)(nil)
