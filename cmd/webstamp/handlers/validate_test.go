package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/webstamp/internal/render"
	wstesting "github.com/imamik/webstamp/internal/testing"
)

func TestValidate_CleanPlain(t *testing.T) {
	saveAndRestoreFactories(t)
	stubResolve(wstesting.MinimalConfig(), applyFixture())
	isInteractiveTTY = func() bool { return false }

	var err error
	output := captureOutput(func() {
		err = Validate(nil, nil)
	})
	require.NoError(t, err)

	assert.Contains(t, output, "Release web: rendered 3 documents")
	assert.Contains(t, output, "Lint: clean")
}

func TestValidate_CleanStyled(t *testing.T) {
	saveAndRestoreFactories(t)
	stubResolve(wstesting.MinimalConfig(), applyFixture())
	isInteractiveTTY = func() bool { return true }

	var err error
	output := captureOutput(func() {
		err = Validate(nil, nil)
	})
	require.NoError(t, err)

	assert.Contains(t, output, "[OK]")
	assert.Contains(t, output, "lint clean")
}

func TestValidate_ErrorIssues(t *testing.T) {
	saveAndRestoreFactories(t)
	broken := &render.Manifest{
		Release:   "web",
		Namespace: "prod",
		Documents: []render.Document{
			{Kind: "Service", Name: "web"},
			{Kind: "Service", Name: "web"},
		},
	}
	stubResolve(wstesting.MinimalConfig(), broken)
	isInteractiveTTY = func() bool { return false }

	var err error
	output := captureOutput(func() {
		err = Validate(nil, nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, output, "WS008")
	assert.Contains(t, output, "duplicate document")
}

func TestValidate_RealRender(t *testing.T) {
	saveAndRestoreFactories(t)

	cfg := wstesting.NewConfigBuilder().
		WithNamespace("prod").
		WithReplicas(3).
		WithAutoscaling(2, 8).
		BuildDefaulted()
	stubResolve(cfg, nil)
	renderManifest = render.Render
	isInteractiveTTY = func() bool { return false }

	var err error
	output := captureOutput(func() {
		err = Validate(nil, nil)
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Lint: clean")
}

func TestValidate_WarningsDoNotFail(t *testing.T) {
	saveAndRestoreFactories(t)

	// A fixed count below the autoscaler minimum renders fine but draws
	// a replica drift warning.
	cfg := wstesting.NewConfigBuilder().
		WithReplicas(1).
		WithAutoscaling(2, 8).
		BuildDefaulted()
	stubResolve(cfg, nil)
	renderManifest = render.Render
	isInteractiveTTY = func() bool { return false }

	var err error
	output := captureOutput(func() {
		err = Validate(nil, nil)
	})
	require.NoError(t, err, "warnings alone must not fail validation")
	assert.Contains(t, output, "WS010")
}
