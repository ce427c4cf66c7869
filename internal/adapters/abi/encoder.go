package abi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/zeitls/ztl-cli/internal/domain"
)

// EncodeCall ABI-encodes a method call including its selector
func EncodeCall(artifact *domain.Artifact, method string, args []any) ([]byte, error) {
	m, err := lookupMethod(artifact, method)
	if err != nil {
		return nil, err
	}
	coerced, err := CoerceArgs(m.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", artifact.Name, method, err)
	}
	data, err := artifact.ABI.Pack(m.Name, coerced...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s.%s: %w", artifact.Name, method, err)
	}
	return data, nil
}

// CoerceMethodArgs converts args for a method of the artifact
func CoerceMethodArgs(artifact *domain.Artifact, method string, args []any) ([]any, error) {
	m, err := lookupMethod(artifact, method)
	if err != nil {
		return nil, err
	}
	coerced, err := CoerceArgs(m.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", artifact.Name, method, err)
	}
	return coerced, nil
}

func lookupMethod(artifact *domain.Artifact, method string) (*abi.Method, error) {
	if artifact == nil || artifact.ABI == nil {
		return nil, fmt.Errorf("artifact has no ABI")
	}
	m, ok := artifact.ABI.Methods[method]
	if !ok {
		return nil, fmt.Errorf("method %s not found in %s ABI", method, artifact.Name)
	}
	return &m, nil
}
