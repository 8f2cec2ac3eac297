package testing

import (
	"maps"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/ptr"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder with sensible defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			Name:      "test-web",
			Namespace: "default",
			Version:   "0.1.0",
			Image: config.ImageConfig{
				Repository: "ghcr.io/example/web",
				Tag:        "v1.0.0",
			},
		},
	}
}

// WithName sets the release name.
func (b *ConfigBuilder) WithName(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Name = name
	return newBuilder
}

// WithNamespace sets the target namespace.
func (b *ConfigBuilder) WithNamespace(namespace string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Namespace = namespace
	return newBuilder
}

// WithVersion sets the release version.
func (b *ConfigBuilder) WithVersion(version string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Version = version
	return newBuilder
}

// WithImage sets the container image reference.
func (b *ConfigBuilder) WithImage(repository, tag string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Image = config.ImageConfig{Repository: repository, Tag: tag}
	return newBuilder
}

// WithReplicas pins the replica count.
func (b *ConfigBuilder) WithReplicas(count int32) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.ReplicaCount = ptr.Int32(count)
	return newBuilder
}

// WithPort sets the container port.
func (b *ConfigBuilder) WithPort(port int32) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Port = port
	return newBuilder
}

// WithConfigData adds one ConfigMap literal.
func (b *ConfigBuilder) WithConfigData(key, value string) *ConfigBuilder {
	newBuilder := b.clone()
	if newBuilder.cfg.Config.Data == nil {
		newBuilder.cfg.Config.Data = map[string]string{}
	}
	newBuilder.cfg.Config.Data[key] = value
	return newBuilder
}

// WithSecretData enables the application Secret and adds one entry.
func (b *ConfigBuilder) WithSecretData(key, value string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Secret.Enabled = ptr.Bool(true)
	if newBuilder.cfg.Secret.StringData == nil {
		newBuilder.cfg.Secret.StringData = map[string]string{}
	}
	newBuilder.cfg.Secret.StringData[key] = value
	return newBuilder
}

// WithIngress enables the Ingress for one host.
func (b *ConfigBuilder) WithIngress(host string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Ingress.Enabled = ptr.Bool(true)
	newBuilder.cfg.Ingress.Hosts = append(newBuilder.cfg.Ingress.Hosts, config.IngressHost{Host: host})
	return newBuilder
}

// WithAutoscaling enables the HorizontalPodAutoscaler with the given range.
func (b *ConfigBuilder) WithAutoscaling(minReplicas, maxReplicas int32) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Autoscaling = config.AutoscalingConfig{
		Enabled:     ptr.Bool(true),
		MinReplicas: minReplicas,
		MaxReplicas: maxReplicas,
	}
	return newBuilder
}

// WithServiceMonitor enables Prometheus Operator scraping.
func (b *ConfigBuilder) WithServiceMonitor() *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.ServiceMonitor.Enabled = ptr.Bool(true)
	return newBuilder
}

// WithNetworkPolicy enables the NetworkPolicy.
func (b *ConfigBuilder) WithNetworkPolicy() *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.NetworkPolicy.Enabled = ptr.Bool(true)
	return newBuilder
}

// Build returns the constructed config.
func (b *ConfigBuilder) Build() *config.Config {
	cfg := b.cfg // copy
	return &cfg
}

// BuildDefaulted returns the constructed config with defaults applied.
func (b *ConfigBuilder) BuildDefaulted() *config.Config {
	cfg := b.Build()
	cfg.ApplyDefaults()
	return cfg
}

// clone creates a deep copy of the builder for immutability.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	newCfg := b.cfg
	// Deep copy the maps and slices the builder mutates
	newCfg.Config.Data = cloneStringMap(b.cfg.Config.Data)
	newCfg.Secret.StringData = cloneStringMap(b.cfg.Secret.StringData)
	if len(b.cfg.Ingress.Hosts) > 0 {
		newCfg.Ingress.Hosts = make([]config.IngressHost, len(b.cfg.Ingress.Hosts))
		copy(newCfg.Ingress.Hosts, b.cfg.Ingress.Hosts)
	}
	return &ConfigBuilder{cfg: newCfg}
}

// cloneStringMap creates a deep copy of a string map.
func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cloned := make(map[string]string, len(m))
	maps.Copy(cloned, m)
	return cloned
}

// MinimalConfig returns a minimal valid config for simple tests.
func MinimalConfig() *config.Config {
	return NewConfigBuilder().Build()
}

// FullConfig returns a config with every optional manifest enabled.
func FullConfig() *config.Config {
	return NewConfigBuilder().
		WithNamespace("prod").
		WithConfigData("LOG_LEVEL", "info").
		WithSecretData("API_KEY", "s3cret").
		WithIngress("web.example.com").
		WithAutoscaling(2, 8).
		WithServiceMonitor().
		WithNetworkPolicy().
		Build()
}
