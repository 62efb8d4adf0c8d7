package heaters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/heat2go/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFileRelay(t *testing.T) (Relay, string) {
	path := filepath.Join(t.TempDir(), "ssr")
	config := configuration.RelayConfig{
		ID: "ssr",
		File: &configuration.FileRelayConfig{
			Path: path,
		},
	}
	relay, err := NewRelay(config)
	require.NoError(t, err)
	return relay, path
}

func TestFileRelay_GetId(t *testing.T) {
	// GIVEN
	relay, _ := createFileRelay(t)

	// WHEN
	result := relay.GetId()

	// THEN
	assert.Equal(t, "ssr", result)
}

func TestFileRelay_Set(t *testing.T) {
	// GIVEN
	relay, path := createFileRelay(t)
	assert.False(t, relay.IsOn())

	// WHEN
	err := relay.Set(true)

	// THEN
	assert.NoError(t, err)
	assert.True(t, relay.IsOn())
	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "1", string(content))

	// WHEN
	err = relay.Set(false)

	// THEN
	assert.NoError(t, err)
	assert.False(t, relay.IsOn())
	content, err = os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "0", string(content))
}

func TestFileRelay_InitialStateFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "ssr")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0644))
	config := configuration.RelayConfig{
		ID: "ssr",
		File: &configuration.FileRelayConfig{
			Path: path,
		},
	}

	// WHEN
	relay, err := NewRelay(config)

	// THEN
	require.NoError(t, err)
	assert.True(t, relay.IsOn())
}

func TestFileRelay_Set_InvalidPath(t *testing.T) {
	// GIVEN
	config := configuration.RelayConfig{
		ID: "ssr",
		File: &configuration.FileRelayConfig{
			Path: filepath.Join(t.TempDir(), "missing", "dir", "ssr"),
		},
	}
	relay, err := NewRelay(config)
	require.NoError(t, err)

	// WHEN
	err = relay.Set(true)

	// THEN
	assert.Error(t, err)
	assert.False(t, relay.IsOn())
}

func TestNewRelay_NoType(t *testing.T) {
	// GIVEN
	config := configuration.RelayConfig{ID: "ssr"}

	// WHEN
	_, err := NewRelay(config)

	// THEN
	assert.Error(t, err)
}
