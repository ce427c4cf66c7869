package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// SignRenderer renders signed approvals
type SignRenderer struct {
	out   io.Writer
	color bool
}

// NewSignRenderer creates a new sign renderer
func NewSignRenderer(out io.Writer, color bool) *SignRenderer {
	return &SignRenderer{
		out:   out,
		color: color,
	}
}

func (r *SignRenderer) Render(result *usecase.SignApprovalResult) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "%s approval\n", titleCaser.String(result.Kind))
	for _, f := range result.Fields {
		field(r.out, "  "+f[0], f[1])
	}
	field(r.out, "  Signer", addressColor.Sprint(result.Signed.Signer))
	field(r.out, "  Message", hashColor.Sprint(hexutil.Encode(result.Signed.Message)))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, hexutil.Encode(result.Signed.Signature))
	return nil
}

var _ Renderer[*usecase.SignApprovalResult] = (*SignRenderer)(nil)
