package wizard

import (
	"context"
	"fmt"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Release Identity
	Name      string
	Namespace string

	// Image
	ImageRepository string
	ImageTag        string

	// Networking
	Port        string
	ServiceType string

	ExposeIngress bool
	IngressHost   string
	IngressClass  string
	EnableTLS     bool

	BasicAuth         bool
	BasicAuthUsername string
	BasicAuthPassword string

	// Scaling
	ReplicaCount int

	EnableAutoscaling bool
	MinReplicas       int
	MaxReplicas       int

	// Optional manifests
	EnabledFeatures []string
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("release identity: %w", err)
	}

	if err := runImageGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}

	if err := runNetworkingGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("networking: %w", err)
	}

	if err := runScalingGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("scaling: %w", err)
	}

	if err := runFeaturesGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}

	return result, nil
}

// hasFeature checks if a feature is in the enabled list.
func hasFeature(features []string, key string) bool {
	for _, f := range features {
		if f == key {
			return true
		}
	}
	return false
}
