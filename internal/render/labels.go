package render

import "github.com/imamik/webstamp/internal/config"

// Well-known label keys applied to every rendered object.
const (
	// KeyName identifies the application by its release name.
	KeyName = "app.kubernetes.io/name"

	// KeyInstance identifies this particular installation.
	KeyInstance = "app.kubernetes.io/instance"

	// KeyVersion records the application version being deployed.
	KeyVersion = "app.kubernetes.io/version"

	// KeyManagedBy marks objects as owned by webstamp.
	KeyManagedBy = "app.kubernetes.io/managed-by"

	// KeyComponent distinguishes sub-components of a release.
	KeyComponent = "app.kubernetes.io/component"
)

// ManagedBy is the value stamped into the managed-by label.
const ManagedBy = "webstamp"

// LabelBuilder assembles label sets for rendered objects.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder returns a builder pre-populated with the managed-by
// marker.
func NewLabelBuilder() *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyManagedBy: ManagedBy,
		},
	}
}

// WithName sets the application name label.
func (b *LabelBuilder) WithName(name string) *LabelBuilder {
	b.labels[KeyName] = name
	return b
}

// WithInstance sets the instance label.
func (b *LabelBuilder) WithInstance(instance string) *LabelBuilder {
	b.labels[KeyInstance] = instance
	return b
}

// WithVersion sets the version label.
func (b *LabelBuilder) WithVersion(version string) *LabelBuilder {
	b.labels[KeyVersion] = version
	return b
}

// WithComponent sets the component label.
func (b *LabelBuilder) WithComponent(component string) *LabelBuilder {
	b.labels[KeyComponent] = component
	return b
}

// Merge copies extra labels into the set. Existing keys are overwritten.
func (b *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		b.labels[k] = v
	}
	return b
}

// Build returns a copy of the accumulated labels.
func (b *LabelBuilder) Build() map[string]string {
	out := make(map[string]string, len(b.labels))
	for k, v := range b.labels {
		out[k] = v
	}
	return out
}

// Labels returns the common label set for all objects of a release,
// including any user-supplied labels from the configuration.
func Labels(cfg *config.Config) map[string]string {
	return NewLabelBuilder().
		WithName(cfg.Name).
		WithInstance(cfg.Name).
		WithVersion(cfg.AppVersion()).
		Merge(cfg.Labels).
		Build()
}

// SelectorLabels returns the immutable subset of labels used for
// selectors. The version label is deliberately excluded: selectors
// cannot change after creation, while the version changes on every
// release.
func SelectorLabels(cfg *config.Config) map[string]string {
	return map[string]string{
		KeyName:     cfg.Name,
		KeyInstance: cfg.Name,
	}
}
