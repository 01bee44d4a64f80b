package main

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/agilira/go-errors"
	"github.com/tidwall/jsonc"
)

// AccessConfig maps a client name to the remote patterns it may reach.
// Loaded fresh for every invocation and immutable afterwards.
type AccessConfig map[string][]string

var (
	rxClientName = regexp.MustCompile(`^\S+$`)
	// Patterns may not carry whitespace or single quotes; both would
	// let a config typo smuggle structure into the transport command.
	rxPattern = regexp.MustCompile(`^[^\s']+$`)
)

// LoadAccess reads and validates the client allow-list file. The file
// is an object mapping client names to arrays of remote patterns, with
// JSONC comments permitted for the operator's sake.
func LoadAccess(path string) (AccessConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeConfig, "cannot read allow-list file")
	}
	var cfg AccessConfig
	if err := json.Unmarshal(jsonc.ToJSON(b), &cfg); err != nil {
		return nil, errors.Wrap(err, ErrCodeConfig, "allow-list must be an object of string arrays")
	}
	if err := validateAccess(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateAccess(cfg AccessConfig) error {
	for client, patterns := range cfg {
		if !rxClientName.MatchString(client) {
			return errors.New(ErrCodeConfig, fmt.Sprintf("invalid client name %q", client))
		}
		for _, p := range patterns {
			if !rxPattern.MatchString(p) {
				return errors.New(ErrCodeConfig,
					fmt.Sprintf("invalid pattern %q for client %s", p, client))
			}
		}
	}
	return nil
}

// Lookup returns the allow-list for a client. Unknown clients get an
// empty list: absence means zero privilege, not a broken config.
func (c AccessConfig) Lookup(client string) []string {
	return c[client]
}
