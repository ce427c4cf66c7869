package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

const maxSuggestions = 3

// NetworkStateStore implements usecase.NetworkStateStore on state.<network>.json
// in the project root. Every operation re-reads and re-validates the file.
type NetworkStateStore struct {
	network   string
	statePath string
	log       *slog.Logger

	mu      sync.Mutex
	checked bool
}

// NewNetworkStateStore creates a store for the selected network
func NewNetworkStateStore(cfg *config.RuntimeConfig, log *slog.Logger) *NetworkStateStore {
	network := cfg.NetworkName()
	s := &NetworkStateStore{
		network: network,
		log:     log,
	}
	if network != "" {
		s.statePath = filepath.Join(cfg.ProjectRoot, StateFileName(network))
	}
	return s
}

// StateFileName returns the state file name of a network
func StateFileName(network string) string {
	return fmt.Sprintf("state.%s.json", network)
}

// Path returns the state file path
func (s *NetworkStateStore) Path() string {
	return s.statePath
}

// ensureFile creates an empty state file the first time it is missing
func (s *NetworkStateStore) ensureFile() error {
	if s.statePath == "" {
		return domain.ErrNetworkNotSelected
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checked {
		return nil
	}

	if _, err := os.Stat(s.statePath); err == nil {
		s.log.Info("Network state file found", "path", s.statePath)
	} else if os.IsNotExist(err) {
		s.log.Info(fmt.Sprintf("Network file for %s not found, create it", s.network), "path", s.statePath)
		if err := os.WriteFile(s.statePath, []byte("{}"), 0644); err != nil {
			return fmt.Errorf("failed to create state file: %w", err)
		}
	} else {
		return fmt.Errorf("failed to stat state file: %w", err)
	}

	s.checked = true
	return nil
}

// Load reads and validates the state file
func (s *NetworkStateStore) Load(_ context.Context) (domain.NetworkState, error) {
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s.read()
}

func (s *NetworkStateStore) read() (domain.NetworkState, error) {
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state, issues := decodeNetworkState(data)
	if len(issues) > 0 {
		schemaErr := &domain.SchemaError{
			Subject: fmt.Sprintf("%s network state", s.network),
			Issues:  issues,
		}
		for _, issue := range issues {
			s.log.Error("state validation failed", "issue", issue.String())
		}
		return nil, schemaErr
	}
	return state, nil
}

// decodeNetworkState parses state JSON entry by entry so every broken entry is reported
func decodeNetworkState(data []byte) (domain.NetworkState, []domain.SchemaIssue) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, []domain.SchemaIssue{{Message: fmt.Sprintf("expected object: %v", err)}}
	}
	if raw == nil {
		return nil, []domain.SchemaIssue{{Message: "expected object, received null"}}
	}

	state := make(domain.NetworkState, len(raw))
	var issues []domain.SchemaIssue
	for name, entry := range raw {
		if bytes.Equal(bytes.TrimSpace(entry), []byte("null")) {
			state[name] = nil
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(entry))
		dec.UseNumber()
		var info domain.ContractInfo
		if err := dec.Decode(&info); err != nil {
			issues = append(issues, domain.SchemaIssue{Path: name, Message: err.Error()})
			continue
		}
		state[name] = &info
	}

	issues = append(issues, state.Validate()...)
	return state, issues
}

// Address returns the recorded address of a contract
func (s *NetworkStateStore) Address(ctx context.Context, contract string) (string, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return "", err
	}

	info, ok := state[contract]
	if !ok || info == nil {
		s.log.Error(fmt.Sprintf("State missing address for %s", contract))
		return "", &domain.ContractNotInStateError{
			Name:        contract,
			Network:     s.network,
			Suggestions: suggest(contract, state.Names()),
		}
	}
	return info.Address, nil
}

// Update replaces one entry and rewrites the whole file
func (s *NetworkStateStore) Update(ctx context.Context, contract string, info *domain.ContractInfo) error {
	state, err := s.Load(ctx)
	if err != nil {
		return err
	}

	state[contract] = info
	if issues := state.Validate(); len(issues) > 0 {
		return &domain.SchemaError{
			Subject: fmt.Sprintf("%s network state", s.network),
			Issues:  issues,
		}
	}
	return s.write(state)
}

// Remove deletes one entry and rewrites the whole file
func (s *NetworkStateStore) Remove(ctx context.Context, contract string) error {
	state, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if _, ok := state[contract]; !ok {
		return &domain.ContractNotInStateError{
			Name:        contract,
			Network:     s.network,
			Suggestions: suggest(contract, state.Names()),
		}
	}
	delete(state, contract)
	return s.write(state)
}

func (s *NetworkStateStore) write(state domain.NetworkState) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(s.statePath, bytes.TrimRight(buf.Bytes(), "\n"), 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// suggest returns the closest contract names for a missed lookup
func suggest(name string, names []string) []string {
	matches := fuzzy.Find(name, names)
	var out []string
	for i, m := range matches {
		if i == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// Ensure NetworkStateStore implements NetworkStateStore
var _ usecase.NetworkStateStore = (*NetworkStateStore)(nil)

// StateCatalog reads state files of arbitrary networks. Unlike
// NetworkStateStore it never creates missing files.
type StateCatalog struct {
	projectRoot string
}

// NewStateCatalog creates a catalog over the project root
func NewStateCatalog(cfg *config.RuntimeConfig) *StateCatalog {
	return &StateCatalog{projectRoot: cfg.ProjectRoot}
}

// Count returns the number of valid entries in the network's state file
func (c *StateCatalog) Count(_ context.Context, network string) (int, bool, error) {
	data, err := os.ReadFile(filepath.Join(c.projectRoot, StateFileName(network)))
	if os.IsNotExist(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read state file: %w", err)
	}

	state, issues := decodeNetworkState(data)
	if len(issues) > 0 {
		return 0, true, &domain.SchemaError{
			Subject: fmt.Sprintf("%s network state", network),
			Issues:  issues,
		}
	}
	return len(state), true, nil
}

// Ensure StateCatalog implements StateCatalog
var _ usecase.StateCatalog = (*StateCatalog)(nil)
