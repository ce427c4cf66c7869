package domain

import (
	"fmt"
	"sort"
)

// ContractInfo is a single entry of the network state file.
type ContractInfo struct {
	Address         string `json:"address"`
	Impl            string `json:"impl,omitempty"`
	ConstructorArgs []any  `json:"constructorArgs,omitempty"`
	InitArgs        []any  `json:"initArgs,omitempty"`
}

// IsUpgradeable reports whether the entry is a proxy with a recorded implementation.
func (c *ContractInfo) IsUpgradeable() bool {
	return c.Impl != ""
}

// NetworkState maps contract names to their deployment records.
type NetworkState map[string]*ContractInfo

// Names returns contract names in lexical order.
func (s NetworkState) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every entry and returns all issues found.
func (s NetworkState) Validate() []SchemaIssue {
	var issues []SchemaIssue
	for _, name := range s.Names() {
		info := s[name]
		if name == "" {
			issues = append(issues, SchemaIssue{Message: "contract name must not be empty"})
			continue
		}
		if info == nil {
			issues = append(issues, SchemaIssue{Path: name, Message: "expected object, received null"})
			continue
		}
		if !IsValidAddress(info.Address) {
			issues = append(issues, SchemaIssue{
				Path:    fmt.Sprintf("%s.address", name),
				Message: "Wrong address value provided",
			})
		}
		if info.Impl != "" && !IsValidAddress(info.Impl) {
			issues = append(issues, SchemaIssue{
				Path:    fmt.Sprintf("%s.impl", name),
				Message: "Wrong address value provided",
			})
		}
	}
	return issues
}
