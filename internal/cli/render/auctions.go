package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// AuctionsRenderer renders the auction listing summary
type AuctionsRenderer struct {
	out   io.Writer
	color bool
}

// NewAuctionsRenderer creates a new auctions renderer
func NewAuctionsRenderer(out io.Writer, color bool) *AuctionsRenderer {
	return &AuctionsRenderer{
		out:   out,
		color: color,
	}
}

func (r *AuctionsRenderer) Render(result *usecase.CreateAuctionsResult) error {
	if len(result.Lots) == 0 {
		fmt.Fprintln(r.out, "No auctions configured")
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Auctions on %s:\n\n", result.Network)
	t := newTable(r.out, table.Row{"TOKEN", "RESERVE (ETH)", "LIMITED", "STATUS"})
	for _, lot := range result.Lots {
		status := "listed"
		switch {
		case lot.Exists:
			status = "exists"
		case result.DryRun:
			status = "queued"
		}
		t.AppendRow(table.Row{lot.ID.String(), domain.FormatEther(lot.Price), lot.Limited, status})
	}
	t.Render()
	fmt.Fprintln(r.out)

	if result.WasPaused {
		if result.UnpauseTx != "" {
			field(r.out, "Unpause transaction", hashColor.Sprint(result.UnpauseTx))
		} else {
			fmt.Fprintln(r.out, FormatWarning("Auction house is paused"))
		}
	}
	if result.CreateTx != "" {
		field(r.out, "Create transaction", hashColor.Sprint(result.CreateTx))
	}

	switch {
	case result.DryRun:
		fmt.Fprintln(r.out, FormatWarning("Dry run, no transactions were sent"))
	case result.CreatedCount == 0:
		fmt.Fprintln(r.out, "All auctions already exist")
	default:
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Listed %d auction(s)", result.CreatedCount)))
	}
	return nil
}

var _ Renderer[*usecase.CreateAuctionsResult] = (*AuctionsRenderer)(nil)
