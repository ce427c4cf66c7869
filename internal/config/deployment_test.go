package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

const goerliDeployment = `
openseaRegistry: "0x0000000000000000000000000000000000000000"
owner: "0x9f594da9f93f727d671EC4AA6B1f5A5B94a36A98"
maintainer: "0xd228EB6F69258D07dA7b1235C995133Cd80caD5b"
weth: "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"
whitelistUri: "ipfs://QmZRn8pQCACNCWTydUZ62oNtEHbdnS3enxTkWEYXDjfxzj/"
signerKYC: "0xF180987279e6a3bd7FCBb7d498D07823BB385fd4"
timeBuffer: 600
duration: 3600
minBidDiff: 1
metadata:
  - id: 0
    uri: "https://api.zeitls.io/nfts/"
piecesURI: "ipfs://"
keyHolders:
  - "0x8b6AB2B941b2D07491f9a7F493Dc51e6f08a8FE6"
affiliates:
  - address: "0xcb44e9963DB1534d483fBAF0bB72755bc169Fd7f"
    share: 25
  - address: "0xf73f0c8ece7008Bf028942563e06b68B947331A0"
    share: 25
auctions:
  - id: "6660010005000001"
    price: "0.03"
    limited: true
  - id: "6660010008000012"
    price: "0.01"
`

func TestParseDeploymentConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg, err := ParseDeploymentConfig([]byte(goerliDeployment), "goerli")
		require.NoError(t, err)

		assert.Equal(t, "0x9f594da9f93f727d671EC4AA6B1f5A5B94a36A98", cfg.Owner)
		assert.Equal(t, int64(600), cfg.TimeBuffer)
		assert.Equal(t, int64(3600), cfg.Duration)
		assert.Equal(t, int64(1), cfg.MinBidDiff)
		require.Len(t, cfg.Metadata, 1)
		assert.Equal(t, "https://api.zeitls.io/nfts/", cfg.Metadata[0].URI)
		assert.Equal(t, domain.ContractKey, cfg.KeyContract)
		assert.Len(t, cfg.Affiliates, 2)
		require.Len(t, cfg.Auctions, 2)
		assert.True(t, cfg.Auctions[0].Limited)
		assert.False(t, cfg.Auctions[1].Limited)
	})

	t.Run("collects every issue", func(t *testing.T) {
		data := `
openseaRegistry: "0x0000000000000000000000000000000000000000"
owner: "not-an-address"
maintainer: "0xd228EB6F69258D07dA7b1235C995133Cd80caD5b"
weth: "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"
signerKYC: "0xf180987279e6a3bd7fcbb7d498d07823bb385fd4"
timeBuffer: 600
duration: 0
minBidDiff: 1
metadata: []
`
		_, err := ParseDeploymentConfig([]byte(data), "goerli")
		require.Error(t, err)

		var schemaErr *domain.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "invalid goerli network config", err.Error())

		paths := make([]string, 0, len(schemaErr.Issues))
		for _, issue := range schemaErr.Issues {
			paths = append(paths, issue.Path)
		}
		assert.ElementsMatch(t, []string{"whitelistUri", "owner", "duration"}, paths)
	})

	t.Run("null required values", func(t *testing.T) {
		data := `
openseaRegistry: "0x0000000000000000000000000000000000000000"
owner: "0x9f594da9f93f727d671EC4AA6B1f5A5B94a36A98"
maintainer: "0xd228EB6F69258D07dA7b1235C995133Cd80caD5b"
weth: "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"
whitelistUri: ~
signerKYC: "0xF180987279e6a3bd7FCBb7d498D07823BB385fd4"
timeBuffer: 600
duration: ~
minBidDiff: ~
metadata: ~
`
		_, err := ParseDeploymentConfig([]byte(data), "goerli")
		var schemaErr *domain.SchemaError
		require.ErrorAs(t, err, &schemaErr)

		issues := make([]string, 0, len(schemaErr.Issues))
		for _, issue := range schemaErr.Issues {
			issues = append(issues, issue.String())
		}
		assert.ElementsMatch(t, []string{
			"whitelistUri: Expected value, received null",
			"duration: Expected value, received null",
			"minBidDiff: Expected value, received null",
			"metadata: Expected value, received null",
		}, issues)
	})

	t.Run("type mismatch is a schema issue", func(t *testing.T) {
		data := `
openseaRegistry: "0x0000000000000000000000000000000000000000"
owner: "0x9f594da9f93f727d671EC4AA6B1f5A5B94a36A98"
maintainer: "0xd228EB6F69258D07dA7b1235C995133Cd80caD5b"
weth: "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"
whitelistUri: "ipfs://"
signerKYC: "0xF180987279e6a3bd7FCBb7d498D07823BB385fd4"
timeBuffer: "ten minutes"
duration: 3600
minBidDiff: 1
metadata: []
`
		_, err := ParseDeploymentConfig([]byte(data), "goerli")
		var schemaErr *domain.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.NotEmpty(t, schemaErr.Issues)
	})

	t.Run("affiliate guard", func(t *testing.T) {
		issues := validateAffiliates([]config.Affiliate{
			{Address: "0xcb44e9963DB1534d483fBAF0bB72755bc169Fd7f", Share: 600},
			{Address: "0xcb44e9963db1534d483fbaf0bb72755bc169fd7f", Share: 500},
			{Address: "0xf73f0c8ece7008Bf028942563e06b68B947331A0", Share: 0},
		})
		messages := make([]string, 0, len(issues))
		for _, issue := range issues {
			messages = append(messages, issue.String())
		}
		assert.Contains(t, messages, "affiliates.1.address: duplicate affiliate")
		assert.Contains(t, messages, "affiliates.2.share: must be greater than 0")
		assert.Contains(t, messages, "affiliates: total share 1100 exceeds 1000")
	})

	t.Run("auction lots", func(t *testing.T) {
		issues := validateAuctions([]config.AuctionLot{
			{ID: "1", Price: "0.01"},
			{ID: "1", Price: "0"},
			{ID: "x", Price: "abc"},
		})
		assert.Len(t, issues, 4)
	})
}

func TestLoadDeploymentConfig(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDeploymentConfig(filepath.Join(dir, "missing.yaml"), "missing")
	assert.ErrorIs(t, err, domain.ErrMissingDeploymentConfig)

	path := filepath.Join(dir, "goerli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(goerliDeployment), 0644))
	cfg, err := LoadDeploymentConfig(path, "goerli")
	require.NoError(t, err)
	assert.Equal(t, "ipfs://", cfg.PiecesURI)
}
