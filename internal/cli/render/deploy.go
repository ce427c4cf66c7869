package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// DeployRenderer renders deploy and deploy-pieces results
type DeployRenderer struct {
	out   io.Writer
	color bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, color bool) *DeployRenderer {
	return &DeployRenderer{
		out:   out,
		color: color,
	}
}

// Render prints one block per deployed contract, or the plan on dry runs
func (r *DeployRenderer) Render(result *usecase.DeployContractsResult) error {
	if result.DryRun {
		return r.renderPlan(result)
	}

	for _, d := range result.Deployed {
		fmt.Fprintln(r.out, ruler)
		field(r.out, "Type", string(d.Kind))
		field(r.out, "Contract", color.New(color.FgGreen, color.Bold).Sprint(d.Name))
		if d.Kind == domain.UpgradeableContract {
			field(r.out, "Proxy", addressColor.Sprint(d.Address))
			field(r.out, "Implementation", addressColor.Sprint(d.Impl))
			if d.ImplReceipt != nil {
				field(r.out, "Implementation transaction", hashColor.Sprint(d.ImplReceipt.TxHash))
			}
		} else {
			field(r.out, "Address", addressColor.Sprint(d.Address))
		}
		printReceipt(r.out, d.Receipt)
	}
	fmt.Fprintln(r.out, ruler)
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess("Deployment done. Do not forget to verify contracts and initialize"))
	return nil
}

func (r *DeployRenderer) renderPlan(result *usecase.DeployContractsResult) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment plan for %s", result.Network)
	if result.Sender != "" {
		fmt.Fprintf(r.out, " (sender %s)", result.Sender)
	}
	fmt.Fprintln(r.out, ":")
	fmt.Fprintln(r.out)

	t := newTable(r.out, table.Row{"#", "CONTRACT", "TYPE", "ARGUMENTS"})
	for i, step := range result.Plan {
		t.AppendRow(table.Row{i + 1, step.Name, string(step.Kind), strings.Join(step.Args, ", ")})
	}
	t.Render()

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatWarning("Dry run, no transactions were sent"))
	return nil
}

var _ Renderer[*usecase.DeployContractsResult] = (*DeployRenderer)(nil)
