package config

// Config is the hierarchical values model for one web service release.
// A zero Config plus a name and image renders the default release;
// optional sections gate on their Enabled flags.
//
// Optional booleans use *bool and optional integers *int32 so "unset"
// and "explicitly false/zero" stay distinguishable through merging.
type Config struct {
	// Name is the release name, used for resource naming and labels.
	// Must be a DNS-1123 label.
	Name string `yaml:"name"`

	// Namespace all namespaced resources are rendered into.
	// Defaults to "default".
	Namespace string `yaml:"namespace,omitempty"`

	// Version is the release version, used as the chart version and as
	// the fallback app version when the image tag is unset.
	// Defaults to "0.1.0".
	Version string `yaml:"version,omitempty"`

	// Image is the container image reference.
	Image ImageConfig `yaml:"image"`

	// ReplicaCount is the desired pod count. Defaults to 1.
	// Explicitly 0 is valid and renders 0 replicas.
	ReplicaCount *int32 `yaml:"replicaCount,omitempty"`

	// RevisionHistoryLimit caps retained ReplicaSets. Defaults to 10.
	RevisionHistoryLimit *int32 `yaml:"revisionHistoryLimit,omitempty"`

	// Strategy tunes the rolling update.
	Strategy StrategyConfig `yaml:"strategy,omitempty"`

	// Port is the container port serving HTTP traffic. Defaults to 8080.
	Port int32 `yaml:"port,omitempty"`

	// ExtraPorts are additional named container ports, also exposed on
	// the Service and opened to network policy peers.
	ExtraPorts []PortConfig `yaml:"extraPorts,omitempty"`

	// Resources are the container compute requests and limits.
	Resources ResourcesConfig `yaml:"resources,omitempty"`

	// Probes configure container health checking.
	Probes ProbesConfig `yaml:"probes,omitempty"`

	// Env are literal container environment variables, emitted in the
	// order configured.
	Env []EnvVar `yaml:"env,omitempty"`

	// Config is the ConfigMap content: env-style literals and mounted
	// file content.
	Config AppConfig `yaml:"config,omitempty"`

	// Secret is the application Secret, injected via envFrom.
	Secret SecretConfig `yaml:"secret,omitempty"`

	// Service configures the Service fronting the pods.
	Service ServiceConfig `yaml:"service,omitempty"`

	// Ingress configures external HTTP routing.
	Ingress IngressConfig `yaml:"ingress,omitempty"`

	// Autoscaling configures the HorizontalPodAutoscaler.
	Autoscaling AutoscalingConfig `yaml:"autoscaling,omitempty"`

	// PodDisruptionBudget bounds voluntary disruptions.
	PodDisruptionBudget PDBConfig `yaml:"podDisruptionBudget,omitempty"`

	// NetworkPolicy restricts ingress traffic to the pods.
	NetworkPolicy NetworkPolicyConfig `yaml:"networkPolicy,omitempty"`

	// RBAC renders a namespaced Role bound to the ServiceAccount.
	RBAC RBACConfig `yaml:"rbac,omitempty"`

	// ServiceAccount configures the pod identity.
	ServiceAccount ServiceAccountConfig `yaml:"serviceAccount,omitempty"`

	// ServiceMonitor configures Prometheus Operator scraping.
	ServiceMonitor ServiceMonitorConfig `yaml:"serviceMonitor,omitempty"`

	// NodeSelector constrains pod placement to matching nodes.
	NodeSelector map[string]string `yaml:"nodeSelector,omitempty"`

	// Tolerations let pods schedule onto tainted nodes.
	Tolerations []TolerationConfig `yaml:"tolerations,omitempty"`

	// PodAntiAffinity spreads replicas across nodes: "" (none),
	// "soft" (preferred) or "hard" (required).
	PodAntiAffinity AntiAffinityPreset `yaml:"podAntiAffinity,omitempty"`

	// PodSecurityContext is the pod-level security context.
	PodSecurityContext PodSecurityContextConfig `yaml:"podSecurityContext,omitempty"`

	// SecurityContext is the container-level security context.
	SecurityContext ContainerSecurityContextConfig `yaml:"securityContext,omitempty"`

	// Labels are extra labels added to every rendered resource.
	Labels map[string]string `yaml:"labels,omitempty"`

	// Annotations are extra annotations added to every rendered resource.
	Annotations map[string]string `yaml:"annotations,omitempty"`

	// PodLabels are extra labels added to the pod template only.
	PodLabels map[string]string `yaml:"podLabels,omitempty"`

	// PodAnnotations are extra annotations added to the pod template only.
	PodAnnotations map[string]string `yaml:"podAnnotations,omitempty"`
}

// ImageConfig is the container image reference.
type ImageConfig struct {
	// Repository is the image name without tag, e.g. "ghcr.io/acme/web".
	Repository string `yaml:"repository"`

	// Tag is the image tag. Defaults to the release version.
	Tag string `yaml:"tag,omitempty"`

	// PullPolicy defaults to IfNotPresent.
	PullPolicy PullPolicy `yaml:"pullPolicy,omitempty"`

	// PullSecrets name pre-existing registry credential Secrets.
	PullSecrets []string `yaml:"pullSecrets,omitempty"`
}

// Ref returns the full image reference including the effective tag.
func (i ImageConfig) Ref(fallbackTag string) string {
	tag := i.Tag
	if tag == "" {
		tag = fallbackTag
	}
	return i.Repository + ":" + tag
}

// StrategyConfig tunes the Deployment rolling update. Both fields accept
// an absolute count ("2") or a percentage ("25%").
type StrategyConfig struct {
	MaxSurge       string `yaml:"maxSurge,omitempty"`
	MaxUnavailable string `yaml:"maxUnavailable,omitempty"`
}

// PortConfig is one additional named port.
type PortConfig struct {
	// Name must be a unique IANA service name (max 15 chars).
	Name string `yaml:"name"`

	// Port is the container port number, also used as the service port.
	Port int32 `yaml:"port"`
}

// ResourcesConfig holds compute requests and limits as Kubernetes
// quantity strings ("100m", "128Mi").
type ResourcesConfig struct {
	Requests ResourceList `yaml:"requests,omitempty"`
	Limits   ResourceList `yaml:"limits,omitempty"`
}

// ResourceList is one side of a resource specification.
type ResourceList struct {
	CPU    string `yaml:"cpu,omitempty"`
	Memory string `yaml:"memory,omitempty"`
}

// ProbesConfig groups the three container probes.
type ProbesConfig struct {
	// Liveness restarts unhealthy containers. Enabled by default at
	// GET /healthz on the container port.
	Liveness ProbeConfig `yaml:"liveness,omitempty"`

	// Readiness gates Service endpoints. Enabled by default at
	// GET /readyz on the container port.
	Readiness ProbeConfig `yaml:"readiness,omitempty"`

	// Startup holds off the other probes during slow boots.
	// Disabled by default.
	Startup ProbeConfig `yaml:"startup,omitempty"`
}

// ProbeConfig is one HTTP GET probe.
type ProbeConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`

	// Path is the HTTP path probed.
	Path string `yaml:"path,omitempty"`

	// Port overrides the probed port. 0 probes the container port.
	Port int32 `yaml:"port,omitempty"`

	InitialDelaySeconds int32 `yaml:"initialDelaySeconds,omitempty"`
	PeriodSeconds       int32 `yaml:"periodSeconds,omitempty"`
	TimeoutSeconds      int32 `yaml:"timeoutSeconds,omitempty"`
	FailureThreshold    int32 `yaml:"failureThreshold,omitempty"`
}

// On reports whether the probe is enabled.
func (p ProbeConfig) On() bool {
	return p.Enabled != nil && *p.Enabled
}

// EnvVar is one literal container environment variable.
type EnvVar struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// AppConfig is the ConfigMap content for the release.
type AppConfig struct {
	// Data are env-style literals, surfaced to the container as
	// environment variables via configMapKeyRef.
	Data map[string]string `yaml:"data,omitempty"`

	// Files map file names to content, mounted read-only at MountPath.
	Files map[string]string `yaml:"files,omitempty"`

	// MountPath is where Files are mounted. Defaults to "/etc/config".
	MountPath string `yaml:"mountPath,omitempty"`
}

// Empty reports whether the ConfigMap would carry no data at all.
func (a AppConfig) Empty() bool {
	return len(a.Data) == 0 && len(a.Files) == 0
}

// SecretConfig is the application Secret.
type SecretConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`

	// StringData are the opaque secret entries, injected into the
	// container via envFrom.
	StringData map[string]string `yaml:"stringData,omitempty"`
}

// On reports whether the application Secret is rendered.
func (s SecretConfig) On() bool {
	return s.Enabled != nil && *s.Enabled
}

// ServiceConfig configures the Service fronting the pods.
type ServiceConfig struct {
	// Type defaults to ClusterIP.
	Type ServiceType `yaml:"type,omitempty"`

	// Port is the service port. Defaults to 80; targets the container
	// port by name.
	Port int32 `yaml:"port,omitempty"`

	// NodePort pins the node port when Type is NodePort. 0 lets the
	// API server allocate one.
	NodePort int32 `yaml:"nodePort,omitempty"`
}

// IngressConfig configures external HTTP routing.
type IngressConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`

	// ClassName selects the ingress controller.
	ClassName string `yaml:"className,omitempty"`

	// Annotations are merged into the Ingress metadata, e.g.
	// cert-manager.io/cluster-issuer.
	Annotations map[string]string `yaml:"annotations,omitempty"`

	// Hosts route hostnames to the Service.
	Hosts []IngressHost `yaml:"hosts,omitempty"`

	// TLS blocks terminate HTTPS. An empty secretName is allowed:
	// cert-manager annotation flows fill it.
	TLS []IngressTLS `yaml:"tls,omitempty"`

	// BasicAuth protects the ingress with an htpasswd Secret.
	BasicAuth BasicAuthConfig `yaml:"basicAuth,omitempty"`
}

// On reports whether the Ingress is rendered.
func (i IngressConfig) On() bool {
	return i.Enabled != nil && *i.Enabled
}

// IngressHost routes one hostname.
type IngressHost struct {
	// Host is the fully qualified hostname, optionally wildcarded
	// ("*.example.com").
	Host string `yaml:"host"`

	// Paths defaults to a single Prefix rule for "/".
	Paths []IngressPath `yaml:"paths,omitempty"`
}

// IngressPath routes one path on a host.
type IngressPath struct {
	Path string `yaml:"path,omitempty"`

	// PathType defaults to Prefix.
	PathType PathType `yaml:"pathType,omitempty"`
}

// IngressTLS is one TLS termination block.
type IngressTLS struct {
	// SecretName names the TLS Secret. Empty is valid when an external
	// issuer provisions it.
	SecretName string `yaml:"secretName,omitempty"`

	Hosts []string `yaml:"hosts,omitempty"`
}

// BasicAuthConfig protects the ingress with HTTP basic auth.
//
// The password is carried as a pre-computed bcrypt hash so rendering stays
// deterministic; `webstamp init` hashes a plaintext password once at
// scaffold time.
type BasicAuthConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`

	// Username defaults to "admin".
	Username string `yaml:"username,omitempty"`

	// PasswordHash is a bcrypt hash as produced by `htpasswd -B`.
	PasswordHash string `yaml:"passwordHash,omitempty"`

	// Realm is shown by browsers in the credentials prompt.
	Realm string `yaml:"realm,omitempty"`
}

// On reports whether basic auth is enabled.
func (b BasicAuthConfig) On() bool {
	return b.Enabled != nil && *b.Enabled
}

// AutoscalingConfig bounds the HorizontalPodAutoscaler.
type AutoscalingConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`

	// MinReplicas must satisfy 0 < min <= max. min == max is valid and
	// pins the range.
	MinReplicas int32 `yaml:"minReplicas,omitempty"`
	MaxReplicas int32 `yaml:"maxReplicas,omitempty"`

	// TargetCPUUtilization is the average CPU percentage the controller
	// steers toward. Defaults to 80 when autoscaling is enabled.
	TargetCPUUtilization int32 `yaml:"targetCPUUtilization,omitempty"`

	// TargetMemoryUtilization adds a memory metric when non-zero.
	TargetMemoryUtilization int32 `yaml:"targetMemoryUtilization,omitempty"`
}

// On reports whether the HPA is rendered.
func (a AutoscalingConfig) On() bool {
	return a.Enabled != nil && *a.Enabled
}

// PDBConfig bounds voluntary disruptions. Exactly one of MinAvailable and
// MaxUnavailable may be set; both accept an absolute count or a percentage.
type PDBConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`

	MinAvailable   string `yaml:"minAvailable,omitempty"`
	MaxUnavailable string `yaml:"maxUnavailable,omitempty"`
}

// On reports whether the PodDisruptionBudget is rendered.
func (p PDBConfig) On() bool {
	return p.Enabled != nil && *p.Enabled
}

// NetworkPolicyConfig restricts ingress traffic to the pods.
//
// Peers are allowed to reach the container port and extra ports. With no
// peers configured, only the metrics scrape rule remains; with scraping
// also off the policy denies all ingress.
type NetworkPolicyConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`

	// Peers allowed to reach the application ports.
	Peers []NetworkPolicyPeer `yaml:"peers,omitempty"`

	// AllowMetricsScrape opens the metrics port to any peer. Defaults
	// to true when the ServiceMonitor is enabled.
	AllowMetricsScrape *bool `yaml:"allowMetricsScrape,omitempty"`
}

// On reports whether the NetworkPolicy is rendered.
func (n NetworkPolicyConfig) On() bool {
	return n.Enabled != nil && *n.Enabled
}

// ScrapeAllowed reports whether the metrics scrape rule is included.
func (n NetworkPolicyConfig) ScrapeAllowed() bool {
	return n.AllowMetricsScrape != nil && *n.AllowMetricsScrape
}

// NetworkPolicyPeer selects traffic sources by namespace and pod labels.
// Empty selectors match everything in their dimension.
type NetworkPolicyPeer struct {
	NamespaceLabels map[string]string `yaml:"namespaceLabels,omitempty"`
	PodLabels       map[string]string `yaml:"podLabels,omitempty"`
}

// RBACConfig renders a namespaced Role plus a RoleBinding to the
// ServiceAccount.
type RBACConfig struct {
	Create *bool `yaml:"create,omitempty"`

	// Rules are the policy rules granted to the workload.
	Rules []PolicyRuleConfig `yaml:"rules,omitempty"`
}

// On reports whether RBAC resources are rendered.
func (r RBACConfig) On() bool {
	return r.Create != nil && *r.Create
}

// PolicyRuleConfig is one RBAC policy rule.
type PolicyRuleConfig struct {
	APIGroups     []string `yaml:"apiGroups"`
	Resources     []string `yaml:"resources"`
	Verbs         []string `yaml:"verbs"`
	ResourceNames []string `yaml:"resourceNames,omitempty"`
}

// ServiceAccountConfig configures the pod identity.
type ServiceAccountConfig struct {
	// Create defaults to true. When false the pods run as the name
	// below, which must exist already.
	Create *bool `yaml:"create,omitempty"`

	// Name overrides the ServiceAccount name. Defaults to the release
	// name.
	Name string `yaml:"name,omitempty"`

	// Annotations are added to the ServiceAccount, e.g. workload
	// identity bindings.
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// Created reports whether the ServiceAccount document is rendered.
func (s ServiceAccountConfig) Created() bool {
	return s.Create == nil || *s.Create
}

// ServiceMonitorConfig configures Prometheus Operator scraping.
type ServiceMonitorConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`

	// Port adds a dedicated named "metrics" container and service port.
	// 0 scrapes the main "http" port.
	Port int32 `yaml:"port,omitempty"`

	// Path defaults to "/metrics".
	Path string `yaml:"path,omitempty"`

	// Interval defaults to "30s".
	Interval string `yaml:"interval,omitempty"`

	// Labels are added to the ServiceMonitor so a specific Prometheus
	// instance selects it.
	Labels map[string]string `yaml:"labels,omitempty"`
}

// On reports whether the ServiceMonitor is rendered.
func (s ServiceMonitorConfig) On() bool {
	return s.Enabled != nil && *s.Enabled
}

// TolerationConfig lets pods schedule onto tainted nodes.
type TolerationConfig struct {
	Key      string `yaml:"key,omitempty"`
	Operator string `yaml:"operator,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Effect   string `yaml:"effect,omitempty"`

	TolerationSeconds *int64 `yaml:"tolerationSeconds,omitempty"`
}

// PodSecurityContextConfig is the pod-level security context. Fields are
// emitted only when set.
type PodSecurityContextConfig struct {
	RunAsNonRoot *bool  `yaml:"runAsNonRoot,omitempty"`
	RunAsUser    *int64 `yaml:"runAsUser,omitempty"`
	RunAsGroup   *int64 `yaml:"runAsGroup,omitempty"`
	FSGroup      *int64 `yaml:"fsGroup,omitempty"`
}

// Empty reports whether no pod security field is set.
func (p PodSecurityContextConfig) Empty() bool {
	return p.RunAsNonRoot == nil && p.RunAsUser == nil && p.RunAsGroup == nil && p.FSGroup == nil
}

// ContainerSecurityContextConfig is the container-level security context.
// Fields are emitted only when set.
type ContainerSecurityContextConfig struct {
	AllowPrivilegeEscalation *bool  `yaml:"allowPrivilegeEscalation,omitempty"`
	ReadOnlyRootFilesystem   *bool  `yaml:"readOnlyRootFilesystem,omitempty"`
	RunAsNonRoot             *bool  `yaml:"runAsNonRoot,omitempty"`
	RunAsUser                *int64 `yaml:"runAsUser,omitempty"`

	// DropCapabilities lists Linux capabilities to drop, e.g. ["ALL"].
	DropCapabilities []string `yaml:"dropCapabilities,omitempty"`
}

// Empty reports whether no container security field is set.
func (c ContainerSecurityContextConfig) Empty() bool {
	return c.AllowPrivilegeEscalation == nil && c.ReadOnlyRootFilesystem == nil &&
		c.RunAsNonRoot == nil && c.RunAsUser == nil && len(c.DropCapabilities) == 0
}

// AppVersion returns the version stamped into the version label and the
// chart appVersion: the image tag when set, the release version otherwise.
func (c *Config) AppVersion() string {
	if c.Image.Tag != "" {
		return c.Image.Tag
	}
	return c.Version
}

// Replicas returns the effective replica count.
func (c *Config) Replicas() int32 {
	if c.ReplicaCount == nil {
		return 1
	}
	return *c.ReplicaCount
}

// ServiceAccountName returns the identity the pods run as.
func (c *Config) ServiceAccountName() string {
	if c.ServiceAccount.Name != "" {
		return c.ServiceAccount.Name
	}
	return c.Name
}

// MetricsPort returns the port Prometheus scrapes: the dedicated metrics
// port when configured, the main container port otherwise.
func (c *Config) MetricsPort() int32 {
	if c.ServiceMonitor.Port != 0 {
		return c.ServiceMonitor.Port
	}
	return c.Port
}

// MetricsPortName returns the named port the ServiceMonitor endpoint
// references.
func (c *Config) MetricsPortName() string {
	if c.ServiceMonitor.Port != 0 {
		return "metrics"
	}
	return "http"
}

// HasDedicatedMetricsPort reports whether a separate metrics port is
// exposed on the container and Service.
func (c *Config) HasDedicatedMetricsPort() bool {
	return c.ServiceMonitor.On() && c.ServiceMonitor.Port != 0
}
