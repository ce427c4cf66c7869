package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
	"gopkg.in/yaml.v3"
)

const wrongAddress = "Wrong address value provided"

var requiredDeploymentKeys = []string{
	"openseaRegistry",
	"owner",
	"maintainer",
	"weth",
	"whitelistUri",
	"signerKYC",
	"timeBuffer",
	"duration",
	"minBidDiff",
	"metadata",
}

// DeploymentConfigPath returns <deployments>/<network>.yaml under the project root.
func DeploymentConfigPath(projectRoot string, project *config.ProjectConfig, network string) string {
	dir := project.Deployments
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectRoot, dir)
	}
	return filepath.Join(dir, network+".yaml")
}

// LoadDeploymentConfig reads and validates a deployment config file. Every
// problem found is collected into a *domain.SchemaError.
func LoadDeploymentConfig(path, network string) (*config.DeploymentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingDeploymentConfig, path)
		}
		return nil, fmt.Errorf("failed to read deployment config: %w", err)
	}
	return ParseDeploymentConfig(data, network)
}

// ParseDeploymentConfig decodes and validates deployment config YAML.
func ParseDeploymentConfig(data []byte, network string) (*config.DeploymentConfig, error) {
	schemaErr := &domain.SchemaError{Subject: fmt.Sprintf("%s network config", network)}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse deployment config: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	for _, key := range requiredDeploymentKeys {
		value, ok := raw[key]
		switch {
		case !ok:
			schemaErr.Issues = append(schemaErr.Issues, domain.SchemaIssue{Path: key, Message: "Required"})
		case value == nil:
			schemaErr.Issues = append(schemaErr.Issues, domain.SchemaIssue{Path: key, Message: "Expected value, received null"})
		}
	}

	var cfg config.DeploymentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("failed to parse deployment config: %w", err)
		}
		for _, msg := range typeErr.Errors {
			schemaErr.Issues = append(schemaErr.Issues, domain.SchemaIssue{Message: msg})
		}
	}

	if cfg.KeyContract == "" {
		cfg.KeyContract = domain.ContractKey
	}

	schemaErr.Issues = append(schemaErr.Issues, ValidateDeploymentConfig(&cfg, raw)...)
	if len(schemaErr.Issues) > 0 {
		return nil, schemaErr
	}
	return &cfg, nil
}

// ValidateDeploymentConfig checks field values. Fields missing from raw or
// set to null are skipped since they are already reported as required.
func ValidateDeploymentConfig(cfg *config.DeploymentConfig, raw map[string]any) []domain.SchemaIssue {
	var issues []domain.SchemaIssue
	present := func(key string) bool {
		if raw == nil {
			return true
		}
		value, ok := raw[key]
		return ok && value != nil
	}
	add := func(path, format string, args ...any) {
		issues = append(issues, domain.SchemaIssue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	addresses := []struct {
		key   string
		value string
	}{
		{"openseaRegistry", cfg.OpenseaRegistry},
		{"owner", cfg.Owner},
		{"maintainer", cfg.Maintainer},
		{"weth", cfg.WETH},
		{"signerKYC", cfg.SignerKYC},
	}
	for _, a := range addresses {
		if present(a.key) && !domain.IsValidAddress(a.value) {
			add(a.key, wrongAddress)
		}
	}

	if present("timeBuffer") && cfg.TimeBuffer <= 0 {
		add("timeBuffer", "must be greater than 0")
	}
	if present("duration") && cfg.Duration <= 0 {
		add("duration", "must be greater than 0")
	}
	if present("minBidDiff") && cfg.MinBidDiff < 0 {
		add("minBidDiff", "must not be negative")
	}

	for i, m := range cfg.Metadata {
		if strings.TrimSpace(m.URI) == "" {
			add(fmt.Sprintf("metadata.%d.uri", i), "must not be empty")
		}
	}

	for i, holder := range cfg.KeyHolders {
		if !domain.IsValidAddress(holder) {
			add(fmt.Sprintf("keyHolders.%d", i), wrongAddress)
		}
	}

	issues = append(issues, validateAffiliates(cfg.Affiliates)...)
	issues = append(issues, validateAuctions(cfg.Auctions)...)
	return issues
}

func validateAffiliates(affiliates []config.Affiliate) []domain.SchemaIssue {
	var issues []domain.SchemaIssue
	seen := make(map[string]bool)
	var total uint64

	for i, a := range affiliates {
		path := fmt.Sprintf("affiliates.%d", i)
		if !domain.IsValidAddress(a.Address) {
			issues = append(issues, domain.SchemaIssue{Path: path + ".address", Message: wrongAddress})
		} else {
			key := strings.ToLower(a.Address)
			if seen[key] {
				issues = append(issues, domain.SchemaIssue{Path: path + ".address", Message: "duplicate affiliate"})
			}
			seen[key] = true
		}
		if a.Share == 0 {
			issues = append(issues, domain.SchemaIssue{Path: path + ".share", Message: "must be greater than 0"})
		}
		total += a.Share
	}

	if total > domain.MaxAffiliateShares {
		issues = append(issues, domain.SchemaIssue{
			Path:    "affiliates",
			Message: fmt.Sprintf("total share %d exceeds %d", total, domain.MaxAffiliateShares),
		})
	}
	return issues
}

func validateAuctions(lots []config.AuctionLot) []domain.SchemaIssue {
	var issues []domain.SchemaIssue
	seen := make(map[string]bool)

	for i, lot := range lots {
		path := fmt.Sprintf("auctions.%d", i)
		id, err := domain.ParseUint256(lot.ID)
		if err != nil {
			issues = append(issues, domain.SchemaIssue{Path: path + ".id", Message: err.Error()})
		} else {
			if seen[id.String()] {
				issues = append(issues, domain.SchemaIssue{Path: path + ".id", Message: "duplicate lot"})
			}
			seen[id.String()] = true
		}

		price, err := domain.ParseEther(lot.Price)
		if err != nil {
			issues = append(issues, domain.SchemaIssue{Path: path + ".price", Message: err.Error()})
		} else if price.Sign() == 0 {
			issues = append(issues, domain.SchemaIssue{Path: path + ".price", Message: "must be greater than 0"})
		}
	}
	return issues
}
