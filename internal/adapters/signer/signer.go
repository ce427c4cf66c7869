package signer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// DefaultKeyEnv holds the KYC signer key
const DefaultKeyEnv = "SIGNER_PRIVATE_KEY"

// EnvKeySigner signs messages with a private key read from the environment
type EnvKeySigner struct {
	log *slog.Logger
}

// NewEnvKeySigner creates a new signer
func NewEnvKeySigner(log *slog.Logger) *EnvKeySigner {
	return &EnvKeySigner{log: log}
}

// SignPersonal produces a 65 byte EIP-191 signature with v in {27, 28}
func (s *EnvKeySigner) SignPersonal(_ context.Context, keyEnv string, message []byte) (*domain.SignedMessage, error) {
	if keyEnv == "" {
		keyEnv = DefaultKeyEnv
	}
	raw := os.Getenv(keyEnv)
	if raw == "" {
		return nil, fmt.Errorf("environment variable %s is not set", keyEnv)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key in %s: %w", keyEnv, err)
	}

	sig, err := crypto.Sign(accounts.TextHash(message), key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27

	signer := crypto.PubkeyToAddress(key.PublicKey)
	recovered, err := Recover(message, sig)
	if err != nil {
		return nil, err
	}
	if recovered != signer {
		return nil, fmt.Errorf("signature recovers to %s, expected %s", recovered.Hex(), signer.Hex())
	}
	s.log.Debug("signed message", "signer", signer.Hex(), "keyEnv", keyEnv)

	return &domain.SignedMessage{
		Message:   message,
		Signature: sig,
		Signer:    signer.Hex(),
	}, nil
}

// Recover returns the address that produced an EIP-191 signature over message
func Recover(message, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(signature))
	}
	sig := make([]byte, len(signature))
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Ensure EnvKeySigner implements MessageSigner
var _ usecase.MessageSigner = (*EnvKeySigner)(nil)
