package domain

import (
	"fmt"

	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// ContractKind selects how a plan step is deployed
type ContractKind string

const (
	RegularContract     ContractKind = "Regular"
	UpgradeableContract ContractKind = "Upgradeable"
)

// Arg is a deployment argument. It is either a literal value or a reference
// to another contract's address that is looked up in the network state when
// the step runs, after earlier steps have recorded their addresses.
type Arg struct {
	value any
	ref   string
}

// Literal wraps a fixed argument value.
func Literal(v any) Arg {
	return Arg{value: v}
}

// StateRef defers the argument to the state address of the named contract.
func StateRef(contract string) Arg {
	return Arg{ref: contract}
}

// IsDeferred reports whether the argument is resolved from state.
func (a Arg) IsDeferred() bool {
	return a.ref != ""
}

// Ref returns the referenced contract name for deferred arguments.
func (a Arg) Ref() string {
	return a.ref
}

// Value returns the literal value.
func (a Arg) Value() any {
	return a.value
}

func (a Arg) String() string {
	if a.IsDeferred() {
		return fmt.Sprintf("state(%s)", a.ref)
	}
	return fmt.Sprintf("%v", a.value)
}

// AddressLookup resolves a contract name to its recorded address.
type AddressLookup func(contract string) (string, error)

// DeploymentContract is a single step of a deployment plan.
type DeploymentContract struct {
	Kind ContractKind
	Name string
	Args []Arg
}

// ResolveArgs turns the step arguments into concrete values.
func (c DeploymentContract) ResolveArgs(lookup AddressLookup) ([]any, error) {
	values := make([]any, 0, len(c.Args))
	for i, arg := range c.Args {
		if !arg.IsDeferred() {
			values = append(values, arg.Value())
			continue
		}
		addr, err := lookup(arg.Ref())
		if err != nil {
			return nil, fmt.Errorf("argument %d of %s: %w", i, c.Name, err)
		}
		values = append(values, addr)
	}
	return values, nil
}

// DevilsPlan is the ordered deployment definition of the core contracts.
func DevilsPlan(cfg *config.DeploymentConfig) []DeploymentContract {
	return []DeploymentContract{
		{
			Kind: RegularContract,
			Name: ContractToken,
			Args: []Arg{Literal(cfg.Owner), Literal(cfg.OpenseaRegistry)},
		},
		{
			Kind: RegularContract,
			Name: ContractWhitelist,
			Args: []Arg{Literal(cfg.WhitelistURI)},
		},
		{
			Kind: UpgradeableContract,
			Name: ContractTreasury,
			Args: []Arg{Literal(cfg.Maintainer)},
		},
		{
			Kind: UpgradeableContract,
			Name: ContractAuctionHouse,
			Args: []Arg{
				StateRef(ContractToken),
				StateRef(ContractTreasury),
				StateRef(ContractWhitelist),
				Literal(cfg.SignerKYC),
				Literal(cfg.WETH),
				Literal(cfg.TimeBuffer),
				Literal(cfg.Duration),
				Literal(cfg.MinBidDiff),
			},
		},
	}
}

// PiecesConstructorArgs returns the constructor arguments of the pieces contract.
func PiecesConstructorArgs(cfg *config.DeploymentConfig, treasury string) []any {
	return []any{cfg.Owner, cfg.SignerKYC, treasury, cfg.OpenseaRegistry, cfg.PiecesURI}
}
