package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// Prebuilt OpenZeppelin artifacts, used for proxies when the project does not compile one
const openZeppelinBuildDir = "node_modules/@openzeppelin/contracts/build/contracts"

// rawArtifact covers Hardhat (bytecode string) and Foundry (bytecode.object) layouts
type rawArtifact struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

type indexedArtifact struct {
	name string
	path string
}

// Repository indexes compiled contract artifacts by contract name
type Repository struct {
	projectRoot string
	dirs        []string
	log         *slog.Logger

	mu      sync.RWMutex
	index   map[string][]indexedArtifact
	cache   map[string]*domain.Artifact
	indexed bool
}

// NewRepository creates an artifact repository for the configured artifacts directory
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	artifactsDir := "artifacts"
	if cfg.Project != nil && cfg.Project.Artifacts != "" {
		artifactsDir = cfg.Project.Artifacts
	}
	return NewRepositoryForDirs(cfg.ProjectRoot, log, artifactsDir, openZeppelinBuildDir)
}

// NewRepositoryForDirs creates a repository over the given directories, in priority order
func NewRepositoryForDirs(projectRoot string, log *slog.Logger, dirs ...string) *Repository {
	return &Repository{
		projectRoot: projectRoot,
		dirs:        dirs,
		log:         log,
		index:       make(map[string][]indexedArtifact),
		cache:       make(map[string]*domain.Artifact),
	}
}

// Index walks the artifact directories once
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	for _, dir := range r.dirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(r.projectRoot, dir)
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			r.log.Debug("artifact directory not found", "dir", root)
			continue
		}

		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if info.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}
			// Skip non-JSON and debug files
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}

			name := strings.TrimSuffix(info.Name(), ".json")
			r.index[name] = append(r.index[name], indexedArtifact{name: name, path: path})
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to index artifacts in %s: %w", root, err)
		}
	}

	r.indexed = true
	return nil
}

// GetArtifact loads the artifact of a contract by name. Project artifacts win
// over prebuilt ones; two project artifacts with the same name are ambiguous.
func (r *Repository) GetArtifact(ctx context.Context, name string) (*domain.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	cached, ok := r.cache[name]
	candidates := r.index[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var loaded []*domain.Artifact
	for _, c := range candidates {
		artifact, err := loadArtifact(c.path, name)
		if err != nil {
			return nil, err
		}
		if artifact == nil {
			continue
		}
		loaded = append(loaded, artifact)
	}

	if len(loaded) == 0 {
		return nil, fmt.Errorf("artifact for %s: %w", name, domain.ErrNotFound)
	}
	if len(loaded) > 1 && r.sameRoot(loaded[0].Path, loaded[1].Path) {
		paths := make([]string, 0, len(loaded))
		for _, a := range loaded {
			paths = append(paths, a.Path)
		}
		sort.Strings(paths)
		return nil, fmt.Errorf("multiple artifacts named %s: %s", name, strings.Join(paths, ", "))
	}

	artifact := loaded[0]
	r.log.Debug("loaded artifact", "name", name, "path", artifact.Path)

	r.mu.Lock()
	r.cache[name] = artifact
	r.mu.Unlock()
	return artifact, nil
}

// sameRoot reports whether both paths come from the same indexed directory
func (r *Repository) sameRoot(a, b string) bool {
	for _, dir := range r.dirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(r.projectRoot, dir)
		}
		inA := strings.HasPrefix(a, root+string(filepath.Separator))
		inB := strings.HasPrefix(b, root+string(filepath.Separator))
		if inA || inB {
			return inA && inB
		}
	}
	return false
}

// loadArtifact parses one artifact file. Files without an ABI return nil.
func loadArtifact(path, name string) (*domain.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		// Skip JSON files that are not artifacts
		return nil, nil
	}
	if len(raw.ABI) == 0 {
		return nil, nil
	}

	bytecode, err := decodeBytecode(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI in %s: %w", path, err)
	}

	return &domain.Artifact{
		Name:     name,
		Path:     path,
		ABI:      &parsed,
		Bytecode: bytecode,
	}, nil
}

func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var hexCode string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &hexCode); err != nil {
			return nil, err
		}
	} else {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		hexCode = obj.Object
	}

	if strings.Contains(hexCode, "__") {
		return nil, fmt.Errorf("bytecode has unlinked libraries")
	}
	return common.FromHex(hexCode), nil
}

// Ensure Repository implements ArtifactRepository
var _ usecase.ArtifactRepository = (*Repository)(nil)
