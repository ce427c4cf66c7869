package fs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

const validDeploymentYAML = `
openseaRegistry: "0xa5409ec958C83C3f309868babACA7c86DCB077c1"
owner: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
maintainer: "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
weth: "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"
whitelistUri: "ipfs://whitelist/"
signerKYC: "0x90F79bf6EB2c4f870365E785982E1f101E93b906"
timeBuffer: 300
duration: 86400
minBidDiff: 5
metadata:
  - id: 0
    uri: "ipfs://meta/0"
`

func newTestDeploymentStore(t *testing.T, content string) *DeploymentConfigStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goerli.yaml")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	cfg := &config.RuntimeConfig{
		Network:        &config.Network{Name: "goerli"},
		DeploymentPath: path,
	}
	return NewDeploymentConfigStore(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDeploymentConfigStore_Load(t *testing.T) {
	store := newTestDeploymentStore(t, validDeploymentYAML)

	cfg, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", cfg.Owner)
	assert.Equal(t, int64(86400), cfg.Duration)
	assert.Equal(t, domain.ContractKey, cfg.KeyContract)

	again, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, cfg, again)
}

func TestDeploymentConfigStore_Missing(t *testing.T) {
	store := newTestDeploymentStore(t, "")

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingDeploymentConfig))
}

func TestDeploymentConfigStore_Invalid(t *testing.T) {
	store := newTestDeploymentStore(t, "owner: nope\n")

	_, err := store.Load(context.Background())
	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "invalid goerli network config", err.Error())
	assert.Contains(t, schemaErr.Details(), "owner: Wrong address value provided")
}

func TestDeploymentConfigStore_NoNetwork(t *testing.T) {
	store := NewDeploymentConfigStore(&config.RuntimeConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetworkNotSelected)
}
