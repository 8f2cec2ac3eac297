package config

import (
	"github.com/imamik/webstamp/internal/util/ptr"
)

// Defaults applied when the merged values leave a field unset.
const (
	DefaultNamespace = "default"
	DefaultVersion   = "0.1.0"
	DefaultPort      = 8080

	DefaultServicePort = 80

	DefaultLivenessPath  = "/healthz"
	DefaultReadinessPath = "/readyz"

	DefaultConfigMountPath = "/etc/config"

	DefaultBasicAuthUsername = "admin"
	DefaultBasicAuthRealm    = "Restricted"

	DefaultMetricsPath     = "/metrics"
	DefaultScrapeInterval  = "30s"
	DefaultTargetCPU       = 80
	DefaultRevisionHistory = 10
	DefaultRolloutSurge    = "25%"
)

// ApplyDefaults fills unset fields with the opinionated defaults.
// It is idempotent: applying it to an already-defaulted Config changes
// nothing, so defaults never override explicit values across reloads.
func (c *Config) ApplyDefaults() {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Image.PullPolicy == "" {
		c.Image.PullPolicy = PullIfNotPresent
	}

	c.applyWorkloadDefaults()
	c.applyProbeDefaults()
	c.applyNetworkingDefaults()
	c.applyPolicyDefaults()
}

func (c *Config) applyWorkloadDefaults() {
	if c.ReplicaCount == nil {
		c.ReplicaCount = ptr.Int32(1)
	}
	if c.RevisionHistoryLimit == nil {
		c.RevisionHistoryLimit = ptr.Int32(DefaultRevisionHistory)
	}
	if c.Strategy.MaxSurge == "" {
		c.Strategy.MaxSurge = DefaultRolloutSurge
	}
	if c.Strategy.MaxUnavailable == "" {
		c.Strategy.MaxUnavailable = DefaultRolloutSurge
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if len(c.Config.Files) > 0 && c.Config.MountPath == "" {
		c.Config.MountPath = DefaultConfigMountPath
	}
	if c.ServiceAccount.Create == nil {
		c.ServiceAccount.Create = ptr.Bool(true)
	}
}

func (c *Config) applyProbeDefaults() {
	if c.Probes.Liveness.Enabled == nil {
		c.Probes.Liveness.Enabled = ptr.Bool(true)
	}
	if c.Probes.Readiness.Enabled == nil {
		c.Probes.Readiness.Enabled = ptr.Bool(true)
	}
	if c.Probes.Startup.Enabled == nil {
		c.Probes.Startup.Enabled = ptr.Bool(false)
	}

	applyProbeTiming(&c.Probes.Liveness, DefaultLivenessPath, 10, 5, 3)
	applyProbeTiming(&c.Probes.Readiness, DefaultReadinessPath, 10, 5, 3)
	// Startup probes fail fast and often while the app boots.
	applyProbeTiming(&c.Probes.Startup, DefaultLivenessPath, 5, 5, 30)
}

func applyProbeTiming(p *ProbeConfig, path string, period, timeout, failures int32) {
	if !p.On() {
		return
	}
	if p.Path == "" {
		p.Path = path
	}
	if p.PeriodSeconds == 0 {
		p.PeriodSeconds = period
	}
	if p.TimeoutSeconds == 0 {
		p.TimeoutSeconds = timeout
	}
	if p.FailureThreshold == 0 {
		p.FailureThreshold = failures
	}
}

func (c *Config) applyNetworkingDefaults() {
	if c.Service.Type == "" {
		c.Service.Type = ServiceTypeClusterIP
	}
	if c.Service.Port == 0 {
		c.Service.Port = DefaultServicePort
	}

	if !c.Ingress.On() {
		return
	}
	for i := range c.Ingress.Hosts {
		host := &c.Ingress.Hosts[i]
		if len(host.Paths) == 0 {
			host.Paths = []IngressPath{{Path: "/", PathType: PathTypePrefix}}
			continue
		}
		for j := range host.Paths {
			if host.Paths[j].Path == "" {
				host.Paths[j].Path = "/"
			}
			if host.Paths[j].PathType == "" {
				host.Paths[j].PathType = PathTypePrefix
			}
		}
	}
	if c.Ingress.BasicAuth.On() {
		if c.Ingress.BasicAuth.Username == "" {
			c.Ingress.BasicAuth.Username = DefaultBasicAuthUsername
		}
		if c.Ingress.BasicAuth.Realm == "" {
			c.Ingress.BasicAuth.Realm = DefaultBasicAuthRealm
		}
	}
}

func (c *Config) applyPolicyDefaults() {
	if c.Autoscaling.On() {
		if c.Autoscaling.MinReplicas == 0 {
			c.Autoscaling.MinReplicas = 1
		}
		if c.Autoscaling.TargetCPUUtilization == 0 && c.Autoscaling.TargetMemoryUtilization == 0 {
			c.Autoscaling.TargetCPUUtilization = DefaultTargetCPU
		}
	}

	if c.PodDisruptionBudget.On() &&
		c.PodDisruptionBudget.MinAvailable == "" && c.PodDisruptionBudget.MaxUnavailable == "" {
		c.PodDisruptionBudget.MinAvailable = "1"
	}

	if c.NetworkPolicy.On() && c.NetworkPolicy.AllowMetricsScrape == nil {
		c.NetworkPolicy.AllowMetricsScrape = ptr.Bool(c.ServiceMonitor.On())
	}

	if c.ServiceMonitor.On() {
		if c.ServiceMonitor.Path == "" {
			c.ServiceMonitor.Path = DefaultMetricsPath
		}
		if c.ServiceMonitor.Interval == "" {
			c.ServiceMonitor.Interval = DefaultScrapeInterval
		}
	}
}
