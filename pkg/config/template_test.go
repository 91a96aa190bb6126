package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/config"
)

func TestGenerateTemplate_Minimal(t *testing.T) {
	t.Parallel()

	out, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal(out, &cfg))
	assert.Equal(t, config.SchemaURL, cfg.Schema)
	assert.True(t, cfg.LinterEnabled())
	require.NotNil(t, cfg.Linter.Rules.Recommended)
	assert.True(t, *cfg.Linter.Rules.Recommended)
	assert.Contains(t, cfg.Assist.Actions.Source, "organizeImports")
	assert.Equal(t, byte('\n'), out[len(out)-1])
}

func TestDefaultConfig_Marshal(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(config.DefaultConfig())
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"overrides"`)
	assert.NotContains(t, string(out), `"graphql"`)
	assert.Contains(t, string(out), `"organizeImports":"on"`)
}
