package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	cmd := Apply()

	require.NotNil(t, cmd)
	assert.Equal(t, "apply", cmd.Use)
	assert.Equal(t, "Apply the manifest set to a cluster", cmd.Short)
	assert.Contains(t, cmd.Long, "server-side apply")
}

func TestApply_KubeconfigFlag(t *testing.T) {
	cmd := Apply()

	flag := cmd.Flags().Lookup("kubeconfig")
	require.NotNil(t, flag, "kubeconfig flag should exist")
	assert.Equal(t, "", flag.DefValue)
}

func TestApply_WaitFlag(t *testing.T) {
	cmd := Apply()

	flag := cmd.Flags().Lookup("wait")
	require.NotNil(t, flag, "wait flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestApply_TimeoutFlag(t *testing.T) {
	cmd := Apply()

	flag := cmd.Flags().Lookup("timeout")
	require.NotNil(t, flag, "timeout flag should exist")
	assert.Equal(t, "5m0s", flag.DefValue)
}

func TestApply_DryRunFlag(t *testing.T) {
	cmd := Apply()

	flag := cmd.Flags().Lookup("dry-run")
	require.NotNil(t, flag, "dry-run flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestApply_ValuesFlag(t *testing.T) {
	cmd := Apply()

	flag := cmd.Flags().Lookup("values")
	require.NotNil(t, flag, "values flag should exist")
	assert.Equal(t, "f", flag.Shorthand)
}

func TestApply_RunE(t *testing.T) {
	cmd := Apply()
	assert.NotNil(t, cmd.RunE, "Apply command should have RunE function")
}
