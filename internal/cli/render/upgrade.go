package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// UpgradeRenderer renders proxy upgrade results
type UpgradeRenderer struct {
	out   io.Writer
	color bool
}

// NewUpgradeRenderer creates a new upgrade renderer
func NewUpgradeRenderer(out io.Writer, color bool) *UpgradeRenderer {
	return &UpgradeRenderer{
		out:   out,
		color: color,
	}
}

func (r *UpgradeRenderer) Render(result *usecase.UpgradeContractResult) error {
	fmt.Fprintln(r.out, ruler)
	field(r.out, "Contract", color.New(color.FgGreen, color.Bold).Sprint(result.Name))
	field(r.out, "Proxy", addressColor.Sprint(result.Proxy))
	field(r.out, "Previous implementation", addressColor.Sprint(result.OldImpl))
	if result.DryRun {
		field(r.out, "Method", result.Method)
		fmt.Fprintln(r.out, ruler)
		fmt.Fprintln(r.out, FormatWarning("Dry run, no transactions were sent"))
		return nil
	}

	field(r.out, "Implementation", addressColor.Sprint(result.NewImpl))
	if result.ImplReceipt != nil {
		field(r.out, "Implementation transaction", hashColor.Sprint(result.ImplReceipt.TxHash))
	}
	field(r.out, "Method", result.Method)
	printReceipt(r.out, result.Receipt)
	fmt.Fprintln(r.out, ruler)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s upgraded", result.Name)))
	return nil
}

var _ Renderer[*usecase.UpgradeContractResult] = (*UpgradeRenderer)(nil)
