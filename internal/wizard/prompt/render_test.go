package prompt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum-mining/sv2-wizard/internal/configgen"
	"github.com/stratum-mining/sv2-wizard/internal/deploy"
)

func TestPrintPlan(t *testing.T) {
	plan, err := deploy.NewPlan(deploy.PoolConnection, map[string]any{
		configgen.KeySelectedPool:       "sri-community",
		configgen.KeyConstructTemplates: false,
		configgen.KeyUserIdentity:       "miner01",
		configgen.KeyDeploymentMethod:   string(deploy.Binaries),
	})
	require.NoError(t, err)

	var out bytes.Buffer
	PrintPlan(&out, plan)

	text := out.String()
	assert.Contains(t, text, "Generated files")
	assert.Contains(t, text, deploy.TranslatorConfigFile)
	assert.Contains(t, text, "translator_sv2")
	assert.Contains(t, text, "stratum+tcp://<host-ip>:34255")
	assert.NotContains(t, text, "Warnings")
}

func TestPrintWarnings(t *testing.T) {
	var out bytes.Buffer
	PrintWarnings(&out, nil)
	assert.Empty(t, out.String())

	PrintWarnings(&out, []string{"pool-config.toml: payout address is a placeholder"})
	assert.Contains(t, out.String(), "payout address is a placeholder")
}

func TestPrintHeader(t *testing.T) {
	var out bytes.Buffer
	PrintHeader(&out, "SRI Pool Connection", "")
	assert.Contains(t, out.String(), "SRI Pool Connection")
}
