package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/crypto/bcrypt"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/validation"
)

// Validate checks the defaulted configuration and returns every problem
// found, joined into one error. Call it after [Config.ApplyDefaults].
func (c *Config) Validate() error {
	var errs []error

	errs = append(errs, c.validateIdentity()...)
	errs = append(errs, c.validateWorkload()...)
	errs = append(errs, c.validateNetworking()...)
	errs = append(errs, c.validateScaling()...)
	errs = append(errs, c.validatePolicies()...)

	return errors.Join(errs...)
}

func (c *Config) validateIdentity() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, errors.New("name is required"))
	} else if msgs := validation.IsDNS1123Label(c.Name); len(msgs) > 0 {
		errs = append(errs, fmt.Errorf("name %q is not a valid DNS label: %s", c.Name, strings.Join(msgs, "; ")))
	}

	if msgs := validation.IsDNS1123Label(c.Namespace); len(msgs) > 0 {
		errs = append(errs, fmt.Errorf("namespace %q is not a valid DNS label: %s", c.Namespace, strings.Join(msgs, "; ")))
	}

	if _, err := semver.NewVersion(c.Version); err != nil {
		errs = append(errs, fmt.Errorf("version %q is not a valid semantic version: %w", c.Version, err))
	}

	if c.Image.Repository == "" {
		errs = append(errs, errors.New("image.repository is required"))
	} else if strings.ContainsAny(c.Image.Repository, " \t") {
		errs = append(errs, fmt.Errorf("image.repository %q must not contain whitespace", c.Image.Repository))
	}
	if !c.Image.PullPolicy.IsValid() {
		errs = append(errs, fmt.Errorf("image.pullPolicy must be one of: %v", ValidPullPolicies()))
	}
	for i, s := range c.Image.PullSecrets {
		if s == "" {
			errs = append(errs, fmt.Errorf("image.pullSecrets[%d] must not be empty", i))
		}
	}

	if !c.ServiceAccount.Created() && c.ServiceAccount.Name == "" {
		errs = append(errs, errors.New("serviceAccount.name is required when serviceAccount.create is false"))
	}
	if c.ServiceAccount.Name != "" {
		if msgs := validation.IsDNS1123Subdomain(c.ServiceAccount.Name); len(msgs) > 0 {
			errs = append(errs, fmt.Errorf("serviceAccount.name %q is invalid: %s", c.ServiceAccount.Name, strings.Join(msgs, "; ")))
		}
	}

	return errs
}

func (c *Config) validateWorkload() []error {
	var errs []error

	if c.ReplicaCount != nil && *c.ReplicaCount < 0 {
		errs = append(errs, fmt.Errorf("replicaCount must not be negative, got %d", *c.ReplicaCount))
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be 1-65535, got %d", c.Port))
	}

	seen := map[string]bool{"http": true}
	usedPorts := map[int32]bool{c.Port: true}
	for _, p := range c.ExtraPorts {
		if msgs := validation.IsValidPortName(p.Name); len(msgs) > 0 {
			errs = append(errs, fmt.Errorf("extraPorts port name %q is invalid: %s", p.Name, strings.Join(msgs, "; ")))
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("extraPorts port name %q is already taken", p.Name))
		}
		seen[p.Name] = true
		if p.Port < 1 || p.Port > 65535 {
			errs = append(errs, fmt.Errorf("extraPorts port %q must be 1-65535, got %d", p.Name, p.Port))
		} else if usedPorts[p.Port] {
			errs = append(errs, fmt.Errorf("extraPorts port %q reuses port number %d", p.Name, p.Port))
		}
		usedPorts[p.Port] = true
	}

	errs = append(errs, validateResourceList("resources.requests", c.Resources.Requests)...)
	errs = append(errs, validateResourceList("resources.limits", c.Resources.Limits)...)

	errs = append(errs, validateSurgeValue("strategy.maxSurge", c.Strategy.MaxSurge)...)
	errs = append(errs, validateSurgeValue("strategy.maxUnavailable", c.Strategy.MaxUnavailable)...)

	errs = append(errs, validateProbe("probes.liveness", c.Probes.Liveness)...)
	errs = append(errs, validateProbe("probes.readiness", c.Probes.Readiness)...)
	errs = append(errs, validateProbe("probes.startup", c.Probes.Startup)...)

	envSeen := map[string]bool{}
	for i, e := range c.Env {
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("env[%d].name is required", i))
			continue
		}
		if msgs := validation.IsEnvVarName(e.Name); len(msgs) > 0 {
			errs = append(errs, fmt.Errorf("env[%d].name %q is invalid: %s", i, e.Name, strings.Join(msgs, "; ")))
		}
		if envSeen[e.Name] {
			errs = append(errs, fmt.Errorf("env variable %q is defined twice", e.Name))
		}
		envSeen[e.Name] = true
	}

	for key := range c.Config.Data {
		if msgs := validation.IsEnvVarName(key); len(msgs) > 0 {
			errs = append(errs, fmt.Errorf("config.data key %q is not usable as an environment variable: %s", key, strings.Join(msgs, "; ")))
		}
	}
	for name := range c.Config.Files {
		if name == "" || strings.Contains(name, "/") {
			errs = append(errs, fmt.Errorf("config.files name %q must be a bare file name", name))
		}
	}
	if len(c.Config.Files) > 0 && !strings.HasPrefix(c.Config.MountPath, "/") {
		errs = append(errs, fmt.Errorf("config.mountPath %q must be absolute", c.Config.MountPath))
	}

	if c.Secret.On() && len(c.Secret.StringData) == 0 {
		errs = append(errs, errors.New("secret.stringData must not be empty when secret.enabled is true"))
	}

	return errs
}

func validateResourceList(field string, rl ResourceList) []error {
	var errs []error
	if rl.CPU != "" {
		if _, err := resource.ParseQuantity(rl.CPU); err != nil {
			errs = append(errs, fmt.Errorf("%s.cpu %q is invalid: %w", field, rl.CPU, err))
		}
	}
	if rl.Memory != "" {
		if _, err := resource.ParseQuantity(rl.Memory); err != nil {
			errs = append(errs, fmt.Errorf("%s.memory %q is invalid: %w", field, rl.Memory, err))
		}
	}
	return errs
}

// validateSurgeValue accepts an absolute count or a percentage, the two
// forms intstr.Parse understands.
func validateSurgeValue(field, value string) []error {
	if value == "" {
		return nil
	}
	v := strings.TrimSuffix(value, "%")
	if v == "" {
		return []error{fmt.Errorf("%s %q must be a count or a percentage", field, value)}
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return []error{fmt.Errorf("%s %q must be a count or a percentage", field, value)}
		}
	}
	return nil
}

func validateProbe(field string, p ProbeConfig) []error {
	if !p.On() {
		return nil
	}
	var errs []error
	if !strings.HasPrefix(p.Path, "/") {
		errs = append(errs, fmt.Errorf("%s.path %q must be absolute", field, p.Path))
	}
	if p.Port != 0 && (p.Port < 1 || p.Port > 65535) {
		errs = append(errs, fmt.Errorf("%s.port must be 1-65535, got %d", field, p.Port))
	}
	return errs
}

func (c *Config) validateNetworking() []error {
	var errs []error

	if !c.Service.Type.IsValid() {
		errs = append(errs, fmt.Errorf("service.type must be one of: %v", ValidServiceTypes()))
	}
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		errs = append(errs, fmt.Errorf("service.port must be 1-65535, got %d", c.Service.Port))
	}
	if c.Service.NodePort != 0 {
		if c.Service.Type != ServiceTypeNodePort {
			errs = append(errs, errors.New("service.nodePort requires service.type NodePort"))
		}
		if c.Service.NodePort < 30000 || c.Service.NodePort > 32767 {
			errs = append(errs, fmt.Errorf("service.nodePort must be 30000-32767, got %d", c.Service.NodePort))
		}
	}

	if c.Ingress.On() {
		errs = append(errs, c.validateIngress()...)
	}

	return errs
}

func (c *Config) validateIngress() []error {
	var errs []error

	if len(c.Ingress.Hosts) == 0 {
		errs = append(errs, errors.New("ingress.hosts must not be empty when ingress is enabled"))
	}
	for i, h := range c.Ingress.Hosts {
		if h.Host == "" {
			errs = append(errs, fmt.Errorf("ingress.hosts[%d].host is required", i))
			continue
		}
		if msgs := validation.IsWildcardDNS1123Subdomain(h.Host); len(msgs) > 0 {
			if msgs = validation.IsDNS1123Subdomain(h.Host); len(msgs) > 0 {
				errs = append(errs, fmt.Errorf("ingress host %q is invalid: %s", h.Host, strings.Join(msgs, "; ")))
			}
		}
		for _, p := range h.Paths {
			if !strings.HasPrefix(p.Path, "/") {
				errs = append(errs, fmt.Errorf("ingress path %q on host %q must be absolute", p.Path, h.Host))
			}
			if !p.PathType.IsValid() {
				errs = append(errs, fmt.Errorf("ingress pathType on host %q must be one of: %v", h.Host, ValidPathTypes()))
			}
		}
	}

	for i, t := range c.Ingress.TLS {
		if len(t.Hosts) == 0 {
			errs = append(errs, fmt.Errorf("ingress.tls[%d].hosts must not be empty", i))
		}
	}

	if c.Ingress.BasicAuth.On() {
		if c.Ingress.BasicAuth.PasswordHash == "" {
			errs = append(errs, errors.New("ingress.basicAuth.passwordHash is required when basic auth is enabled"))
		} else if _, err := bcrypt.Cost([]byte(c.Ingress.BasicAuth.PasswordHash)); err != nil {
			errs = append(errs, fmt.Errorf("ingress.basicAuth.passwordHash is not a bcrypt hash: %w", err))
		}
		if strings.Contains(c.Ingress.BasicAuth.Username, ":") {
			errs = append(errs, errors.New("ingress.basicAuth.username must not contain a colon"))
		}
	}

	return errs
}

func (c *Config) validateScaling() []error {
	var errs []error

	if c.Autoscaling.On() {
		a := c.Autoscaling
		if a.MinReplicas < 1 {
			errs = append(errs, fmt.Errorf("autoscaling.minReplicas must be at least 1, got %d", a.MinReplicas))
		}
		if a.MaxReplicas < a.MinReplicas {
			errs = append(errs, fmt.Errorf("autoscaling.maxReplicas (%d) must not be below minReplicas (%d)", a.MaxReplicas, a.MinReplicas))
		}
		if a.TargetCPUUtilization != 0 && (a.TargetCPUUtilization < 1 || a.TargetCPUUtilization > 100) {
			errs = append(errs, fmt.Errorf("autoscaling.targetCPUUtilization must be 1-100, got %d", a.TargetCPUUtilization))
		}
		if a.TargetMemoryUtilization != 0 && (a.TargetMemoryUtilization < 1 || a.TargetMemoryUtilization > 100) {
			errs = append(errs, fmt.Errorf("autoscaling.targetMemoryUtilization must be 1-100, got %d", a.TargetMemoryUtilization))
		}
	}

	if c.PodDisruptionBudget.On() {
		p := c.PodDisruptionBudget
		if p.MinAvailable != "" && p.MaxUnavailable != "" {
			errs = append(errs, errors.New("podDisruptionBudget accepts minAvailable or maxUnavailable, not both"))
		}
		errs = append(errs, validateSurgeValue("podDisruptionBudget.minAvailable", p.MinAvailable)...)
		errs = append(errs, validateSurgeValue("podDisruptionBudget.maxUnavailable", p.MaxUnavailable)...)
	}

	if !c.PodAntiAffinity.IsValid() {
		errs = append(errs, fmt.Errorf("podAntiAffinity must be one of: %v", ValidAntiAffinityPresets()))
	}

	return errs
}

func (c *Config) validatePolicies() []error {
	var errs []error

	if c.RBAC.On() {
		if len(c.RBAC.Rules) == 0 {
			errs = append(errs, errors.New("rbac.rules must not be empty when rbac.create is true"))
		}
		for i, r := range c.RBAC.Rules {
			if len(r.Resources) == 0 {
				errs = append(errs, fmt.Errorf("rbac.rules[%d].resources must not be empty", i))
			}
			if len(r.Verbs) == 0 {
				errs = append(errs, fmt.Errorf("rbac.rules[%d].verbs must not be empty", i))
			}
		}
	}

	if c.ServiceMonitor.On() {
		s := c.ServiceMonitor
		if s.Port != 0 && (s.Port < 1 || s.Port > 65535) {
			errs = append(errs, fmt.Errorf("serviceMonitor.port must be 1-65535, got %d", s.Port))
		}
		if !strings.HasPrefix(s.Path, "/") {
			errs = append(errs, fmt.Errorf("serviceMonitor.path %q must be absolute", s.Path))
		}
	}

	errs = append(errs, validateLabelMap("labels", c.Labels)...)
	errs = append(errs, validateLabelMap("podLabels", c.PodLabels)...)

	return errs
}

func validateLabelMap(field string, labels map[string]string) []error {
	var errs []error
	for k, v := range labels {
		if msgs := validation.IsQualifiedName(k); len(msgs) > 0 {
			errs = append(errs, fmt.Errorf("%s key %q is invalid: %s", field, k, strings.Join(msgs, "; ")))
		}
		if msgs := validation.IsValidLabelValue(v); len(msgs) > 0 {
			errs = append(errs, fmt.Errorf("%s value %q is invalid: %s", field, v, strings.Join(msgs, "; ")))
		}
	}
	return errs
}
