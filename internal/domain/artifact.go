package domain

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Artifact is a compiled contract loaded from the build output.
type Artifact struct {
	Name     string
	Path     string
	ABI      *abi.ABI
	Bytecode []byte
}

// HasMethod reports whether the ABI exposes the named method.
func (a *Artifact) HasMethod(name string) bool {
	if a == nil || a.ABI == nil {
		return false
	}
	_, ok := a.ABI.Methods[name]
	return ok
}

// TxReceipt summarises a mined transaction.
type TxReceipt struct {
	TxHash          string
	BlockHash       string
	BlockNumber     uint64
	GasUsed         uint64
	ContractAddress string
}

// SignedMessage is an EIP-191 personal signature over Message.
type SignedMessage struct {
	Message   []byte
	Signature []byte
	Signer    string
}

// VerificationRequest describes one explorer verification.
type VerificationRequest struct {
	Name            string
	Address         string
	ConstructorArgs []any
}
