package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// NetworkPlaceholder is replaced with the selected network name in the verify command
const NetworkPlaceholder = "{network}"

// DefaultCommand runs the Hardhat etherscan plugin
var DefaultCommand = []string{"npx", "hardhat", "verify", "--network", NetworkPlaceholder}

// CommandVerifier verifies contracts by running an external verify command
// (hardhat verify by default) with the address and constructor arguments.
type CommandVerifier struct {
	projectRoot string
	network     string
	command     []string
	log         *slog.Logger
}

// NewCommandVerifier creates a verifier from the [verify] section of ztl.toml
func NewCommandVerifier(cfg *config.RuntimeConfig, log *slog.Logger) *CommandVerifier {
	command := DefaultCommand
	if cfg.Project != nil && len(cfg.Project.Verify.Command) > 0 {
		command = cfg.Project.Verify.Command
	}
	return &CommandVerifier{
		projectRoot: cfg.ProjectRoot,
		network:     cfg.NetworkName(),
		command:     command,
		log:         log,
	}
}

// Command renders the verification command without running it. Constructor
// arguments that are lists are shown inline as JSON.
func (v *CommandVerifier) Command(req domain.VerificationRequest) []string {
	args := v.baseArgs()
	args = append(args, req.Address)
	for _, arg := range req.ConstructorArgs {
		args = append(args, formatArg(arg))
	}
	return args
}

func (v *CommandVerifier) baseArgs() []string {
	args := make([]string, 0, len(v.command)+2)
	for _, part := range v.command {
		args = append(args, strings.ReplaceAll(part, NetworkPlaceholder, v.network))
	}
	return args
}

// Verify runs the verify command. Output mentioning an existing verification
// maps to domain.ErrAlreadyVerified.
func (v *CommandVerifier) Verify(ctx context.Context, req domain.VerificationRequest) error {
	if len(v.command) == 0 {
		return fmt.Errorf("no verify command configured")
	}

	args := v.baseArgs()
	if hasListArg(req.ConstructorArgs) {
		// Positional arguments cannot carry arrays; hand them over as a module file
		file, err := writeArgsModule(req.ConstructorArgs)
		if err != nil {
			return err
		}
		defer os.Remove(file)
		args = append(args, "--constructor-args", file, req.Address)
	} else {
		args = append(args, req.Address)
		for _, arg := range req.ConstructorArgs {
			args = append(args, formatArg(arg))
		}
	}

	v.log.Debug("running verify command", "contract", req.Name, "args", args)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = v.projectRoot

	output, err := cmd.CombinedOutput()
	outputStr := string(output)
	if isAlreadyVerified(outputStr) {
		return domain.ErrAlreadyVerified
	}
	if err != nil {
		return fmt.Errorf("verification failed: %s", strings.TrimSpace(outputStr))
	}
	return nil
}

func isAlreadyVerified(output string) bool {
	return strings.Contains(output, "Already Verified") ||
		strings.Contains(output, "is already verified") ||
		strings.Contains(output, "already verified")
}

func hasListArg(args []any) bool {
	for _, arg := range args {
		switch arg.(type) {
		case []any, []string:
			return true
		}
	}
	return false
}

func formatArg(arg any) string {
	switch v := arg.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	case []any, []string, map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeArgsModule writes a CommonJS module exporting the arguments. Numbers
// are written as strings so they survive JavaScript's float precision.
func writeArgsModule(args []any) (string, error) {
	data, err := json.MarshalIndent(stringifyNumbers(args), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode constructor args: %w", err)
	}

	f, err := os.CreateTemp("", "ztl-verify-*.js")
	if err != nil {
		return "", fmt.Errorf("failed to create constructor args file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "module.exports = %s;\n", data); err != nil {
		return "", fmt.Errorf("failed to write constructor args file: %w", err)
	}
	return filepath.Clean(f.Name()), nil
}

func stringifyNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		return val.String()
	case int, int64, uint64, float64:
		return fmt.Sprintf("%v", val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = stringifyNumbers(item)
		}
		return out
	default:
		return val
	}
}

// Ensure CommandVerifier implements ContractVerifier
var _ usecase.ContractVerifier = (*CommandVerifier)(nil)
