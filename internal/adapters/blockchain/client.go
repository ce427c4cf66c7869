package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	abiutil "github.com/zeitls/ztl-cli/internal/adapters/abi"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// ImplementationSlot is the ERC-1967 storage slot holding a proxy's implementation:
// bytes32(uint256(keccak256("eip1967.proxy.implementation")) - 1)
var ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

const confirmationPollInterval = 2 * time.Second

// Client implements usecase.ContractClient on top of ethclient. The
// connection and signing key are set up on first use.
type Client struct {
	network       *config.Network
	confirmations uint64
	log           *slog.Logger

	mu      sync.Mutex
	eth     *ethclient.Client
	key     *ecdsa.PrivateKey
	chainID *big.Int
}

// NewClient creates a client for the selected network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		network:       cfg.Network,
		confirmations: cfg.Confirmations,
		log:           log,
	}
}

// connect dials the RPC endpoint and checks the chain ID
func (c *Client) connect(ctx context.Context) (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.eth != nil {
		return c.eth, nil
	}
	if c.network == nil {
		return nil, domain.ErrNetworkNotSelected
	}

	client, err := ethclient.DialContext(ctx, c.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if c.network.ChainID != 0 && networkChainID.Uint64() != c.network.ChainID {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.network.ChainID, networkChainID.Uint64())
	}

	c.log.Debug("connected", "network", c.network.Name, "chainId", networkChainID)
	c.eth = client
	c.chainID = networkChainID
	return client, nil
}

func (c *Client) privateKey() (*ecdsa.PrivateKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.key != nil {
		return c.key, nil
	}
	if c.network == nil {
		return nil, domain.ErrNetworkNotSelected
	}
	if c.network.PrivateKey == "" {
		return nil, fmt.Errorf("no private key configured for network %s (set private_key or PRIVATE_KEY)", c.network.Name)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.network.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	c.key = key
	return key, nil
}

func (c *Client) transactor(ctx context.Context) (*ethclient.Client, *bind.TransactOpts, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	key, err := c.privateKey()
	if err != nil {
		return nil, nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, c.chainID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return client, opts, nil
}

// Sender returns the address transactions are sent from
func (c *Client) Sender() (string, error) {
	key, err := c.privateKey()
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}

// Deploy sends a creation transaction and waits until it is mined
func (c *Client) Deploy(ctx context.Context, artifact *domain.Artifact, args []any) (*domain.TxReceipt, error) {
	if len(artifact.Bytecode) == 0 {
		return nil, fmt.Errorf("artifact %s has no bytecode", artifact.Name)
	}
	coerced, err := abiutil.CoerceArgs(artifact.ABI.Constructor.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s constructor: %w", artifact.Name, err)
	}

	client, opts, err := c.transactor(ctx)
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, *artifact.ABI, artifact.Bytecode, client, coerced...)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", artifact.Name, err)
	}
	c.log.Debug("deployment sent", "contract", artifact.Name, "tx", tx.Hash().Hex(), "address", address.Hex())

	receipt, err := c.waitMined(ctx, client, tx)
	if err != nil {
		return nil, err
	}
	receipt.ContractAddress = address.Hex()
	return receipt, nil
}

// Transact sends a state changing call and waits until it is mined
func (c *Client) Transact(ctx context.Context, artifact *domain.Artifact, address string, method string, args []any) (*domain.TxReceipt, error) {
	coerced, err := abiutil.CoerceMethodArgs(artifact, method, args)
	if err != nil {
		return nil, err
	}

	client, opts, err := c.transactor(ctx)
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(common.HexToAddress(address), *artifact.ABI, client, client, client)
	tx, err := contract.Transact(opts, method, coerced...)
	if err != nil {
		return nil, fmt.Errorf("%s.%s failed: %w", artifact.Name, method, err)
	}
	c.log.Debug("transaction sent", "contract", artifact.Name, "method", method, "tx", tx.Hash().Hex())

	return c.waitMined(ctx, client, tx)
}

// Call performs a read-only call against the latest block
func (c *Client) Call(ctx context.Context, artifact *domain.Artifact, address string, method string, args []any) ([]any, error) {
	coerced, err := abiutil.CoerceMethodArgs(artifact, method, args)
	if err != nil {
		return nil, err
	}

	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(common.HexToAddress(address), *artifact.ABI, client, client, client)
	var out []interface{}
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, method, coerced...); err != nil {
		return nil, fmt.Errorf("%s.%s call failed: %w", artifact.Name, method, err)
	}
	return out, nil
}

// EncodeCall ABI-encodes method calldata
func (c *Client) EncodeCall(artifact *domain.Artifact, method string, args []any) ([]byte, error) {
	return abiutil.EncodeCall(artifact, method, args)
}

func (c *Client) waitMined(ctx context.Context, client *ethclient.Client, tx *types.Transaction) (*domain.TxReceipt, error) {
	receipt, err := bind.WaitMined(ctx, client, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s reverted in block %d", domain.ErrTransactionFailed, tx.Hash().Hex(), receipt.BlockNumber.Uint64())
	}
	return toReceipt(receipt), nil
}

func toReceipt(r *types.Receipt) *domain.TxReceipt {
	out := &domain.TxReceipt{
		TxHash:    r.TxHash.Hex(),
		BlockHash: r.BlockHash.Hex(),
		GasUsed:   r.GasUsed,
	}
	if r.BlockNumber != nil {
		out.BlockNumber = r.BlockNumber.Uint64()
	}
	if r.ContractAddress != (common.Address{}) {
		out.ContractAddress = r.ContractAddress.Hex()
	}
	return out
}

// WaitConfirmations blocks until the receipt's block is buried under the
// configured number of confirmations. Local nodes mine on demand, so they
// are never waited on.
func (c *Client) WaitConfirmations(ctx context.Context, receipt *domain.TxReceipt) error {
	if c.confirmations <= 1 || c.network.IsLocal() {
		return nil
	}

	client, err := c.connect(ctx)
	if err != nil {
		return err
	}

	target := receipt.BlockNumber + c.confirmations - 1
	ticker := time.NewTicker(confirmationPollInterval)
	defer ticker.Stop()

	for {
		head, err := client.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to get block number: %w", err)
		}
		if head >= target {
			return nil
		}
		c.log.Debug("waiting for confirmations", "tx", receipt.TxHash, "head", head, "target", target)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ImplementationAddress reads the ERC-1967 implementation slot of a proxy
func (c *Client) ImplementationAddress(ctx context.Context, proxy string) (string, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return "", err
	}

	value, err := client.StorageAt(ctx, common.HexToAddress(proxy), ImplementationSlot, nil)
	if err != nil {
		return "", fmt.Errorf("failed to read implementation slot of %s: %w", proxy, err)
	}
	impl := common.BytesToAddress(value)
	if impl == (common.Address{}) {
		return "", fmt.Errorf("%s is not an ERC-1967 proxy", proxy)
	}
	return impl.Hex(), nil
}

// CodeExists checks whether a contract is deployed at address
func (c *Client) CodeExists(ctx context.Context, address string) (bool, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return false, err
	}

	code, err := client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return len(code) > 0, nil
}

// Close releases the RPC connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.eth != nil {
		c.eth.Close()
		c.eth = nil
	}
}

// Ensure Client implements ContractClient
var _ usecase.ContractClient = (*Client)(nil)
