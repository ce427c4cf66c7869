package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zeitls/ztl-cli/internal/config"
	"github.com/zeitls/ztl-cli/internal/domain"
	domainconfig "github.com/zeitls/ztl-cli/internal/domain/config"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// DeploymentConfigStore loads <deployments>/<network>.yaml on first use
type DeploymentConfigStore struct {
	path    string
	network string
	log     *slog.Logger

	once sync.Once
	cfg  *domainconfig.DeploymentConfig
	err  error
}

// NewDeploymentConfigStore creates a loader for the selected network
func NewDeploymentConfigStore(cfg *domainconfig.RuntimeConfig, log *slog.Logger) *DeploymentConfigStore {
	return &DeploymentConfigStore{
		path:    cfg.DeploymentPath,
		network: cfg.NetworkName(),
		log:     log,
	}
}

// Load reads and validates the deployment config. Schema issues are logged
// one by one before the generic error is returned.
func (s *DeploymentConfigStore) Load(_ context.Context) (*domainconfig.DeploymentConfig, error) {
	if s.path == "" {
		return nil, domain.ErrNetworkNotSelected
	}

	s.once.Do(func() {
		s.cfg, s.err = config.LoadDeploymentConfig(s.path, s.network)
		var schemaErr *domain.SchemaError
		if errors.As(s.err, &schemaErr) {
			for _, issue := range schemaErr.Issues {
				s.log.Error("deployment config validation failed", "issue", issue.String())
			}
			return
		}
		if s.err != nil {
			s.err = fmt.Errorf("failed to load %s network config: %w", s.network, s.err)
			return
		}
		s.log.Debug("deployment config loaded", "path", s.path)
	})
	return s.cfg, s.err
}

// Ensure DeploymentConfigStore implements DeploymentConfigLoader
var _ usecase.DeploymentConfigLoader = (*DeploymentConfigStore)(nil)
