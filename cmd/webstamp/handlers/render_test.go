package handlers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/webstamp/internal/config"
	wstesting "github.com/imamik/webstamp/internal/testing"
)

func TestRender_Stdout(t *testing.T) {
	saveAndRestoreFactories(t)
	stubResolve(wstesting.MinimalConfig(), applyFixture())

	var err error
	output := captureOutput(func() {
		err = Render(nil, nil, "")
	})
	require.NoError(t, err)

	assert.Contains(t, output, "kind: ServiceAccount")
	assert.Contains(t, output, "kind: Deployment")
	assert.Contains(t, output, "\n---\n", "documents are separated by YAML markers")
}

func TestRender_OutputDir(t *testing.T) {
	saveAndRestoreFactories(t)
	stubResolve(wstesting.MinimalConfig(), applyFixture())

	dir := filepath.Join(t.TempDir(), "manifests")
	err := Render(nil, nil, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "deployment-web.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "kind: Deployment\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "one file per document")
}

func TestRender_WriteError(t *testing.T) {
	saveAndRestoreFactories(t)
	stubResolve(wstesting.MinimalConfig(), applyFixture())

	writeFile = func(_ string, _ []byte, _ os.FileMode) error {
		return errors.New("read-only file system")
	}

	err := Render(nil, nil, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write")
}

func TestRender_Deterministic(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := wstesting.FullConfig()
	cfg.ApplyDefaults()
	findConfigFile = func() (string, error) { return "webstamp.yaml", nil }
	loadConfig = func(_ []string, _ []string) (*config.Config, error) { return cfg, nil }

	first := captureOutput(func() {
		require.NoError(t, Render(nil, nil, ""))
	})
	second := captureOutput(func() {
		require.NoError(t, Render(nil, nil, ""))
	})
	assert.Equal(t, first, second, "rendering must be byte-stable")
}
