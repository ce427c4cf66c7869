package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// StateRenderer renders the network state file and its on-chain checks
type StateRenderer struct {
	out   io.Writer
	color bool
}

// NewStateRenderer creates a new state renderer
func NewStateRenderer(out io.Writer, color bool) *StateRenderer {
	return &StateRenderer{
		out:   out,
		color: color,
	}
}

// RenderShow prints the state entries as a table
func (r *StateRenderer) RenderShow(result *usecase.ShowStateResult) error {
	if len(result.Entries) == 0 {
		fmt.Fprintf(r.out, "No contracts recorded for %s (%s)\n", result.Network, result.Path)
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "📦 %s state", result.Network)
	fmt.Fprintf(r.out, " %s\n\n", hashColor.Sprint(result.Path))

	t := newTable(r.out, table.Row{"CONTRACT", "ADDRESS", "IMPLEMENTATION", "ARGS"})
	for _, entry := range result.Entries {
		args := entry.Info.ConstructorArgs
		if entry.Info.IsUpgradeable() {
			args = entry.Info.InitArgs
		}
		t.AppendRow(table.Row{entry.Name, entry.Info.Address, orDash(entry.Info.Impl), formatStateArgs(args)})
	}
	t.Render()
	return nil
}

// RenderCheck prints the result of comparing state with the chain
func (r *StateRenderer) RenderCheck(result *usecase.CheckStateResult) error {
	if len(result.Checks) == 0 {
		fmt.Fprintf(r.out, "No contracts recorded for %s\n", result.Network)
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Checking %s state:\n", result.Network)
	for _, check := range result.Checks {
		if check.OK() {
			fmt.Fprintf(r.out, "  ✅ %s %s\n", check.Name, addressColor.Sprint(check.Address))
			continue
		}
		fmt.Fprintf(r.out, "  ❌ %s %s\n", check.Name, addressColor.Sprint(check.Address))
		for _, issue := range check.Issues {
			color.New(color.FgRed).Fprintf(r.out, "     %s\n", issue)
		}
	}

	fmt.Fprintln(r.out)
	if result.Healthy() {
		fmt.Fprintln(r.out, FormatSuccess("State matches the chain"))
	} else {
		fmt.Fprintln(r.out, FormatWarning("State does not match the chain"))
	}
	return nil
}

// RenderRemoved prints the removed entry
func (r *StateRenderer) RenderRemoved(network string, entry *usecase.StateEntry) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s (%s) from %s state", entry.Name, entry.Info.Address, network)))
	return nil
}

func formatStateArgs(args []any) string {
	if len(args) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			parts = append(parts, v)
		default:
			data, err := json.Marshal(v)
			if err != nil {
				parts = append(parts, fmt.Sprintf("%v", v))
				continue
			}
			parts = append(parts, string(data))
		}
	}
	return strings.Join(parts, ", ")
}
