package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrMissingDeploymentConfig is returned when a command needs the
	// per-network deployment config and none was loaded
	ErrMissingDeploymentConfig = errors.New("deployment config not loaded")

	// ErrNetworkNotSelected is returned when a command needs a network
	ErrNetworkNotSelected = errors.New("no network selected")

	// ErrTransactionFailed is returned when a mined transaction reverted
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrAlreadyVerified is returned by verifiers for contracts the explorer already knows
	ErrAlreadyVerified = errors.New("already verified")

	// ErrAborted is returned when the user declines a confirmation prompt
	ErrAborted = errors.New("aborted by user")

	// ErrUnsupportedContractType is returned for plan steps of an unknown kind
	ErrUnsupportedContractType = errors.New("unsupported contract type")
)

// SchemaIssue is a single validation failure inside a config or state file.
type SchemaIssue struct {
	Path    string
	Message string
}

func (i SchemaIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// SchemaError is returned when a file fails validation. The error text is
// deliberately generic; callers list Issues separately.
type SchemaError struct {
	Subject string
	Issues  []SchemaIssue
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s", e.Subject)
}

// Details renders every issue on its own line.
func (e *SchemaError) Details() string {
	lines := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		lines = append(lines, "  - "+issue.String())
	}
	return strings.Join(lines, "\n")
}

// ContractNotInStateError is returned when a state lookup misses.
type ContractNotInStateError struct {
	Name        string
	Network     string
	Suggestions []string
}

func (e *ContractNotInStateError) Error() string {
	msg := fmt.Sprintf("state missing address for %s on %s", e.Name, e.Network)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *ContractNotInStateError) Is(target error) bool {
	return target == ErrNotFound
}
