package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedValues(t *testing.T) {
	assert.Equal(t, "aliasync", CLIName())
	assert.Equal(t, "ALIASYNC", EnvPrefix())
	assert.Equal(t, ".aliasync.yaml", ConfigFile())
	assert.Equal(t, "aliases.ts", HelperFile())
	assert.NotEmpty(t, Description())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "ALIASYNC_SRC_DIR", EnvVar("src_dir"))
	assert.Equal(t, "ALIASYNC_PREFIX", EnvVar("PREFIX"))
}
