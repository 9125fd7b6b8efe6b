package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	cmd := Init()

	require.NotNil(t, cmd)
	assert.Equal(t, "init", cmd.Use)
	assert.Equal(t, "Interactively generate a mining stack configuration", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestInit_Flags(t *testing.T) {
	cmd := Init()

	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"wizard", "w", "full-stack"},
		{"output", "o", ""},
		{"zip", "", "false"},
		{"publish", "", ""},
		{"advanced", "a", "false"},
		{"save-answers", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "%s flag should exist", tt.name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}
}

func TestRender_Flags(t *testing.T) {
	cmd := Render()

	flag := cmd.Flags().Lookup("answers")
	require.NotNil(t, flag)
	assert.Equal(t, "f", flag.Shorthand)
	assert.Equal(t, []string{"true"}, flag.Annotations["cobra_annotation_bash_completion_one_required_flag"])

	for _, name := range []string{"output", "zip", "publish"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestGraph_Flags(t *testing.T) {
	cmd := Graph()

	assert.Equal(t, "full-stack", cmd.Flags().Lookup("wizard").DefValue)
	assert.Equal(t, "text", cmd.Flags().Lookup("format").DefValue)
}

func TestServe_Flags(t *testing.T) {
	cmd := Serve()

	assert.Equal(t, "", cmd.Flags().Lookup("addr").DefValue)
	assert.Equal(t, "true", cmd.Flags().Lookup("metrics").DefValue)
	assert.Equal(t, "1000", cmd.Flags().Lookup("max-sessions").DefValue)
	assert.Equal(t, "24h0m0s", cmd.Flags().Lookup("session-ttl").DefValue)
}

func TestPools_Flags(t *testing.T) {
	cmd := Pools()

	assert.Equal(t, "false", cmd.Flags().Lookup("check").DefValue)
	assert.Equal(t, "3s", cmd.Flags().Lookup("timeout").DefValue)
}
