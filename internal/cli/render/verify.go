package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out   io.Writer
	color bool
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer, color bool) *VerifyRenderer {
	return &VerifyRenderer{
		out:   out,
		color: color,
	}
}

func (r *VerifyRenderer) Render(result *usecase.VerifyContractsResult) error {
	if len(result.Entries) == 0 {
		color.New(color.FgYellow).Fprintf(r.out, "No contracts in %s state to verify.\n", result.Network)
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Verification on %s:\n", result.Network)
	counts := make(map[usecase.VerificationStatus]int)
	for _, entry := range result.Entries {
		counts[entry.Status]++
		fmt.Fprintf(r.out, "  %s %s %s\n", statusIcon(entry.Status), entry.Request.Name, addressColor.Sprint(entry.Request.Address))
		switch entry.Status {
		case usecase.VerificationPlanned:
			fmt.Fprintf(r.out, "    %s\n", hashColor.Sprint(strings.Join(entry.Command, " ")))
		case usecase.VerificationFailed:
			color.New(color.FgRed).Fprintf(r.out, "    %s\n", entry.Error)
		}
	}

	fmt.Fprintln(r.out)
	var parts []string
	for _, status := range []usecase.VerificationStatus{
		usecase.VerificationVerified,
		usecase.VerificationAlreadyVerified,
		usecase.VerificationPlanned,
		usecase.VerificationFailed,
	} {
		if counts[status] > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", titleCaser.String(string(status)), counts[status]))
		}
	}
	fmt.Fprintln(r.out, strings.Join(parts, ", "))

	if failed := result.Failed(); len(failed) > 0 {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d verification(s) failed", len(failed))))
	}
	return nil
}

func statusIcon(status usecase.VerificationStatus) string {
	switch status {
	case usecase.VerificationVerified:
		return color.New(color.FgGreen).Sprint("✓")
	case usecase.VerificationAlreadyVerified:
		return color.New(color.FgGreen).Sprint("✓")
	case usecase.VerificationFailed:
		return color.New(color.FgRed).Sprint("✗")
	default:
		return color.New(color.FgYellow).Sprint("⏳")
	}
}

var _ Renderer[*usecase.VerifyContractsResult] = (*VerifyRenderer)(nil)
