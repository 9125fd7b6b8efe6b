package configgen

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/stratum-mining/sv2-wizard/internal/util/placeholder"
)

// JDSRequiredKeys are the dotted key paths the job declarator server reads.
var JDSRequiredKeys = []string{
	"authority_public_key",
	"authority_secret_key",
	"listen_jd_address",
	"core_rpc_url",
	"core_rpc_port",
	"core_rpc_user",
	"core_rpc_pass",
	"mempool_update_interval.unit",
	"mempool_update_interval.value",
}

// LintError describes an artifact that is not usable as is.
type LintError struct {
	Name       string
	Err        error
	Missing    []string
	Unresolved []string
}

func (e *LintError) Error() string {
	var parts []string
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(e.Missing) > 0 {
		parts = append(parts, "missing keys: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unresolved) > 0 {
		parts = append(parts, "unresolved placeholders: "+strings.Join(e.Unresolved, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Name, strings.Join(parts, "; "))
}

func (e *LintError) Unwrap() error { return e.Err }

// Lint parses text as TOML and checks that every required dotted key path
// is defined. Leftover placeholders are reported too.
func Lint(name, text string, required ...string) error {
	lintErr := &LintError{Name: name, Unresolved: placeholder.Unresolved(text)}

	var doc map[string]any
	md, err := toml.Decode(text, &doc)
	if err != nil {
		lintErr.Err = fmt.Errorf("invalid TOML: %w", err)
		return lintErr
	}

	for _, key := range required {
		if !md.IsDefined(strings.Split(key, ".")...) {
			lintErr.Missing = append(lintErr.Missing, key)
		}
	}

	if len(lintErr.Missing) > 0 || len(lintErr.Unresolved) > 0 {
		return lintErr
	}
	return nil
}
