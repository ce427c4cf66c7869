package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/zeitls/ztl-cli/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const ruler = "================================================================================"

var (
	labelColor   = color.New(color.FgWhite, color.Bold)
	addressColor = color.New(color.FgCyan)
	hashColor    = color.New(color.Faint)
	titleCaser   = cases.Title(language.English)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Capitalize first letter
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

func field(out io.Writer, label string, value string) {
	fmt.Fprintf(out, "%s %s\n", labelColor.Sprint(label+":"), value)
}

func printReceipt(out io.Writer, r *domain.TxReceipt) {
	if r == nil {
		return
	}
	field(out, "Transaction", hashColor.Sprint(r.TxHash))
	field(out, "Block hash", hashColor.Sprint(r.BlockHash))
	field(out, "Block number", fmt.Sprintf("%d", r.BlockNumber))
}

// newTable returns a borderless table writer in the style used across commands
func newTable(out io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box = table.BoxStyle{
		PaddingRight:     "   ",
		MiddleHorizontal: "─",
	}
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(header)
	return t
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
