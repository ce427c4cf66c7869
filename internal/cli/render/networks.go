package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out   io.Writer
	color bool
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, color bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		color: color,
	}
}

func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in ztl.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := " "
		if network.Current {
			marker = color.New(color.FgGreen, color.Bold).Sprint("*")
		}
		if network.Error != nil {
			fmt.Fprintf(r.out, "%s ❌ %s - Error: %v\n", marker, network.Name, network.Error)
			continue
		}

		fmt.Fprintf(r.out, "%s ✅ %s - Chain ID: %d", marker, network.Name, network.ChainID)
		if network.RPCHost != "" {
			fmt.Fprintf(r.out, " %s", hashColor.Sprint(network.RPCHost))
		}
		if network.Local {
			fmt.Fprint(r.out, " (local)")
		}
		if network.StateExists {
			fmt.Fprintf(r.out, " - %d contract(s)", network.Contracts)
		}
		fmt.Fprintln(r.out)
	}

	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
