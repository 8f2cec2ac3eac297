package render

import (
	"sort"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/naming"
	"github.com/imamik/webstamp/internal/util/ptr"
)

// configVolumeName is the pod volume projecting ConfigMap file entries.
const configVolumeName = "config"

// antiAffinityTopologyKey is the topology the anti-affinity presets
// spread replicas across.
const antiAffinityTopologyKey = "kubernetes.io/hostname"

// Deployment builds the workload. The checksum annotations tie the pod
// template to the rendered ConfigMap and Secret content, so changing
// either rolls the pods.
func Deployment(cfg *config.Config, sums Checksums) *appsv1.Deployment {
	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: objectMeta(cfg),
		Spec: appsv1.DeploymentSpec{
			Replicas:             ptr.Int32(cfg.Replicas()),
			RevisionHistoryLimit: cfg.RevisionHistoryLimit,
			Selector: &metav1.LabelSelector{
				MatchLabels: SelectorLabels(cfg),
			},
			Strategy: strategy(cfg),
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      mergeMaps(Labels(cfg), cfg.PodLabels),
					Annotations: sums.annotations(cfg.PodAnnotations),
				},
				Spec: podSpec(cfg),
			},
		},
	}
}

func strategy(cfg *config.Config) appsv1.DeploymentStrategy {
	surge := intstr.Parse(cfg.Strategy.MaxSurge)
	unavailable := intstr.Parse(cfg.Strategy.MaxUnavailable)
	return appsv1.DeploymentStrategy{
		Type: appsv1.RollingUpdateDeploymentStrategyType,
		RollingUpdate: &appsv1.RollingUpdateDeployment{
			MaxSurge:       &surge,
			MaxUnavailable: &unavailable,
		},
	}
}

func podSpec(cfg *config.Config) corev1.PodSpec {
	spec := corev1.PodSpec{
		ServiceAccountName: cfg.ServiceAccountName(),
		Containers:         []corev1.Container{container(cfg)},
		NodeSelector:       cfg.NodeSelector,
		Tolerations:        tolerations(cfg.Tolerations),
		Affinity:           affinity(cfg),
		Volumes:            volumes(cfg),
	}
	for _, name := range cfg.Image.PullSecrets {
		spec.ImagePullSecrets = append(spec.ImagePullSecrets, corev1.LocalObjectReference{Name: name})
	}
	if !cfg.PodSecurityContext.Empty() {
		spec.SecurityContext = &corev1.PodSecurityContext{
			RunAsNonRoot: cfg.PodSecurityContext.RunAsNonRoot,
			RunAsUser:    cfg.PodSecurityContext.RunAsUser,
			RunAsGroup:   cfg.PodSecurityContext.RunAsGroup,
			FSGroup:      cfg.PodSecurityContext.FSGroup,
		}
	}
	return spec
}

func container(cfg *config.Config) corev1.Container {
	c := corev1.Container{
		Name:            cfg.Name,
		Image:           cfg.Image.Ref(cfg.Version),
		ImagePullPolicy: corev1.PullPolicy(cfg.Image.PullPolicy),
		Ports:           containerPorts(cfg),
		Env:             envVars(cfg),
		Resources:       resources(cfg.Resources),
	}
	if cfg.Secret.On() {
		c.EnvFrom = []corev1.EnvFromSource{{
			SecretRef: &corev1.SecretEnvSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: naming.Release(cfg.Name)},
			},
		}}
	}
	if cfg.Probes.Liveness.On() {
		c.LivenessProbe = probe(cfg.Probes.Liveness)
	}
	if cfg.Probes.Readiness.On() {
		c.ReadinessProbe = probe(cfg.Probes.Readiness)
	}
	if cfg.Probes.Startup.On() {
		c.StartupProbe = probe(cfg.Probes.Startup)
	}
	if len(cfg.Config.Files) > 0 {
		c.VolumeMounts = []corev1.VolumeMount{{
			Name:      configVolumeName,
			MountPath: cfg.Config.MountPath,
			ReadOnly:  true,
		}}
	}
	if !cfg.SecurityContext.Empty() {
		c.SecurityContext = containerSecurityContext(cfg.SecurityContext)
	}
	return c
}

func containerPorts(cfg *config.Config) []corev1.ContainerPort {
	ports := []corev1.ContainerPort{{
		Name:          PortNameHTTP,
		ContainerPort: cfg.Port,
		Protocol:      corev1.ProtocolTCP,
	}}
	for _, p := range cfg.ExtraPorts {
		ports = append(ports, corev1.ContainerPort{
			Name:          p.Name,
			ContainerPort: p.Port,
			Protocol:      corev1.ProtocolTCP,
		})
	}
	if cfg.HasDedicatedMetricsPort() {
		ports = append(ports, corev1.ContainerPort{
			Name:          PortNameMetrics,
			ContainerPort: cfg.ServiceMonitor.Port,
			Protocol:      corev1.ProtocolTCP,
		})
	}
	return ports
}

// envVars emits the literal variables in configured order, then the
// ConfigMap-backed variables sorted by key.
func envVars(cfg *config.Config) []corev1.EnvVar {
	vars := make([]corev1.EnvVar, 0, len(cfg.Env)+len(cfg.Config.Data))
	for _, e := range cfg.Env {
		vars = append(vars, corev1.EnvVar{Name: e.Name, Value: e.Value})
	}

	keys := make([]string, 0, len(cfg.Config.Data))
	for k := range cfg.Config.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		vars = append(vars, corev1.EnvVar{
			Name: k,
			ValueFrom: &corev1.EnvVarSource{
				ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
					LocalObjectReference: corev1.LocalObjectReference{Name: naming.Release(cfg.Name)},
					Key:                  k,
				},
			},
		})
	}

	if len(vars) == 0 {
		return nil
	}
	return vars
}

func probe(p config.ProbeConfig) *corev1.Probe {
	port := intstr.FromString(PortNameHTTP)
	if p.Port != 0 {
		port = intstr.FromInt32(p.Port)
	}
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path: p.Path,
				Port: port,
			},
		},
		InitialDelaySeconds: p.InitialDelaySeconds,
		PeriodSeconds:       p.PeriodSeconds,
		TimeoutSeconds:      p.TimeoutSeconds,
		FailureThreshold:    p.FailureThreshold,
	}
}

func resources(r config.ResourcesConfig) corev1.ResourceRequirements {
	return corev1.ResourceRequirements{
		Requests: resourceList(r.Requests),
		Limits:   resourceList(r.Limits),
	}
}

// resourceList converts quantity strings already vetted by validation,
// so MustParse cannot panic here.
func resourceList(l config.ResourceList) corev1.ResourceList {
	if l.CPU == "" && l.Memory == "" {
		return nil
	}
	out := corev1.ResourceList{}
	if l.CPU != "" {
		out[corev1.ResourceCPU] = resource.MustParse(l.CPU)
	}
	if l.Memory != "" {
		out[corev1.ResourceMemory] = resource.MustParse(l.Memory)
	}
	return out
}

// volumes projects only the file entries of the ConfigMap into the pod;
// the env-style literals stay out of the filesystem.
func volumes(cfg *config.Config) []corev1.Volume {
	if len(cfg.Config.Files) == 0 {
		return nil
	}

	names := make([]string, 0, len(cfg.Config.Files))
	for name := range cfg.Config.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]corev1.KeyToPath, 0, len(names))
	for _, name := range names {
		items = append(items, corev1.KeyToPath{Key: name, Path: name})
	}

	return []corev1.Volume{{
		Name: configVolumeName,
		VolumeSource: corev1.VolumeSource{
			ConfigMap: &corev1.ConfigMapVolumeSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: naming.Release(cfg.Name)},
				Items:                items,
			},
		},
	}}
}

func tolerations(ts []config.TolerationConfig) []corev1.Toleration {
	if len(ts) == 0 {
		return nil
	}
	out := make([]corev1.Toleration, 0, len(ts))
	for _, t := range ts {
		out = append(out, corev1.Toleration{
			Key:               t.Key,
			Operator:          corev1.TolerationOperator(t.Operator),
			Value:             t.Value,
			Effect:            corev1.TaintEffect(t.Effect),
			TolerationSeconds: t.TolerationSeconds,
		})
	}
	return out
}

func affinity(cfg *config.Config) *corev1.Affinity {
	term := corev1.PodAffinityTerm{
		LabelSelector: &metav1.LabelSelector{
			MatchLabels: SelectorLabels(cfg),
		},
		TopologyKey: antiAffinityTopologyKey,
	}

	switch cfg.PodAntiAffinity {
	case config.AntiAffinitySoft:
		return &corev1.Affinity{
			PodAntiAffinity: &corev1.PodAntiAffinity{
				PreferredDuringSchedulingIgnoredDuringExecution: []corev1.WeightedPodAffinityTerm{{
					Weight:          100,
					PodAffinityTerm: term,
				}},
			},
		}
	case config.AntiAffinityHard:
		return &corev1.Affinity{
			PodAntiAffinity: &corev1.PodAntiAffinity{
				RequiredDuringSchedulingIgnoredDuringExecution: []corev1.PodAffinityTerm{term},
			},
		}
	default:
		return nil
	}
}

func containerSecurityContext(c config.ContainerSecurityContextConfig) *corev1.SecurityContext {
	sc := &corev1.SecurityContext{
		AllowPrivilegeEscalation: c.AllowPrivilegeEscalation,
		ReadOnlyRootFilesystem:   c.ReadOnlyRootFilesystem,
		RunAsNonRoot:             c.RunAsNonRoot,
		RunAsUser:                c.RunAsUser,
	}
	if len(c.DropCapabilities) > 0 {
		drop := make([]corev1.Capability, 0, len(c.DropCapabilities))
		for _, name := range c.DropCapabilities {
			drop = append(drop, corev1.Capability(name))
		}
		sc.Capabilities = &corev1.Capabilities{Drop: drop}
	}
	return sc
}
