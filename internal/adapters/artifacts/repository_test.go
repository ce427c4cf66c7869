package artifacts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeitls/ztl-cli/internal/domain"
)

const tokenABI = `[
  {"type":"constructor","inputs":[{"name":"owner","type":"address"},{"name":"registry","type":"address"}],"stateMutability":"nonpayable"},
  {"type":"function","name":"setMinter","inputs":[{"name":"minter","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}
]`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRepository_HardhatArtifact(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "artifacts/contracts/ZtlDevils.sol/ZtlDevils.json"),
		`{"contractName":"ZtlDevils","abi":`+tokenABI+`,"bytecode":"0x6080604052"}`)
	writeFile(t, filepath.Join(root, "artifacts/contracts/ZtlDevils.sol/ZtlDevils.dbg.json"), `{"buildInfo":"x"}`)
	writeFile(t, filepath.Join(root, "artifacts/build-info/abc.json"), `{"output":{}}`)

	repo := NewRepositoryForDirs(root, testLogger(), "artifacts")
	artifact, err := repo.GetArtifact(context.Background(), "ZtlDevils")
	require.NoError(t, err)

	assert.Equal(t, "ZtlDevils", artifact.Name)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, artifact.Bytecode)
	assert.True(t, artifact.HasMethod("setMinter"))
	assert.Len(t, artifact.ABI.Constructor.Inputs, 2)

	again, err := repo.GetArtifact(context.Background(), "ZtlDevils")
	require.NoError(t, err)
	assert.Same(t, artifact, again)
}

func TestRepository_FoundryArtifact(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "out/ZtlKey.sol/ZtlKey.json"),
		`{"abi":[],"bytecode":{"object":"0x00ff"}}`)

	repo := NewRepositoryForDirs(root, testLogger(), "out")
	artifact, err := repo.GetArtifact(context.Background(), "ZtlKey")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, artifact.Bytecode)
}

func TestRepository_ProjectArtifactWinsOverPrebuilt(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "artifacts/proxy/ERC1967Proxy.sol/ERC1967Proxy.json"),
		`{"abi":[],"bytecode":"0x01"}`)
	writeFile(t, filepath.Join(root, openZeppelinBuildDir, "ERC1967Proxy.json"),
		`{"abi":[],"bytecode":"0x02"}`)

	repo := NewRepositoryForDirs(root, testLogger(), "artifacts", openZeppelinBuildDir)
	artifact, err := repo.GetArtifact(context.Background(), "ERC1967Proxy")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, artifact.Bytecode)
}

func TestRepository_Errors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "artifacts/a/Dup.sol/Dup.json"), `{"abi":[],"bytecode":"0x01"}`)
	writeFile(t, filepath.Join(root, "artifacts/b/Dup.sol/Dup.json"), `{"abi":[],"bytecode":"0x02"}`)
	writeFile(t, filepath.Join(root, "artifacts/c/Linked.sol/Linked.json"),
		`{"abi":[],"bytecode":"0x60__$abc$__00"}`)

	repo := NewRepositoryForDirs(root, testLogger(), "artifacts")

	_, err := repo.GetArtifact(context.Background(), "Missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetArtifact(context.Background(), "Dup")
	assert.ErrorContains(t, err, "multiple artifacts named Dup")

	_, err = repo.GetArtifact(context.Background(), "Linked")
	assert.ErrorContains(t, err, "unlinked libraries")
}
