package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/ptr"
)

func TestDeployment_Defaults(t *testing.T) {
	cfg := minimalConfig(t)
	dep := Deployment(cfg, Checksums{})

	assert.Equal(t, "apps/v1", dep.APIVersion)
	assert.Equal(t, "Deployment", dep.Kind)
	assert.Equal(t, "web", dep.Name)
	assert.Equal(t, "default", dep.Namespace)

	require.NotNil(t, dep.Spec.Replicas)
	assert.Equal(t, int32(1), *dep.Spec.Replicas)
	require.NotNil(t, dep.Spec.RevisionHistoryLimit)
	assert.Equal(t, int32(10), *dep.Spec.RevisionHistoryLimit)

	assert.Equal(t, SelectorLabels(cfg), dep.Spec.Selector.MatchLabels)

	require.Len(t, dep.Spec.Template.Spec.Containers, 1)
	c := dep.Spec.Template.Spec.Containers[0]
	assert.Equal(t, "web", c.Name)
	assert.Equal(t, "ghcr.io/acme/web:v1.2.3", c.Image)
	assert.Equal(t, corev1.PullIfNotPresent, c.ImagePullPolicy)

	require.Len(t, c.Ports, 1)
	assert.Equal(t, PortNameHTTP, c.Ports[0].Name)
	assert.Equal(t, int32(8080), c.Ports[0].ContainerPort)
	assert.Equal(t, corev1.ProtocolTCP, c.Ports[0].Protocol)

	assert.Empty(t, c.Env)
	assert.Empty(t, c.EnvFrom)
	assert.Empty(t, c.VolumeMounts)
	assert.Empty(t, dep.Spec.Template.Spec.Volumes)
	assert.Equal(t, "web", dep.Spec.Template.Spec.ServiceAccountName)
}

func TestDeployment_DefaultProbes(t *testing.T) {
	cfg := minimalConfig(t)
	c := Deployment(cfg, Checksums{}).Spec.Template.Spec.Containers[0]

	require.NotNil(t, c.LivenessProbe)
	assert.Equal(t, "/healthz", c.LivenessProbe.HTTPGet.Path)
	assert.Equal(t, intstr.FromString(PortNameHTTP), c.LivenessProbe.HTTPGet.Port)
	assert.Equal(t, int32(10), c.LivenessProbe.PeriodSeconds)
	assert.Equal(t, int32(5), c.LivenessProbe.TimeoutSeconds)
	assert.Equal(t, int32(3), c.LivenessProbe.FailureThreshold)

	require.NotNil(t, c.ReadinessProbe)
	assert.Equal(t, "/readyz", c.ReadinessProbe.HTTPGet.Path)

	assert.Nil(t, c.StartupProbe)
}

func TestDeployment_ProbePortOverride(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Probes.Liveness.Port = 8086
	c := Deployment(cfg, Checksums{}).Spec.Template.Spec.Containers[0]

	assert.Equal(t, intstr.FromInt32(8086), c.LivenessProbe.HTTPGet.Port)
	assert.Equal(t, intstr.FromString(PortNameHTTP), c.ReadinessProbe.HTTPGet.Port)
}

func TestDeployment_StartupProbe(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Probes.Startup.Enabled = ptr.Bool(true)
	cfg.ApplyDefaults()

	c := Deployment(cfg, Checksums{}).Spec.Template.Spec.Containers[0]
	require.NotNil(t, c.StartupProbe)
	assert.Equal(t, "/healthz", c.StartupProbe.HTTPGet.Path)
	assert.Equal(t, int32(30), c.StartupProbe.FailureThreshold)
}

func TestDeployment_EnvOrdering(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Env = []config.EnvVar{
		{Name: "ZED_FIRST", Value: "1"},
		{Name: "ALPHA_SECOND", Value: "2"},
	}
	cfg.Config.Data = map[string]string{
		"LOG_LEVEL": "info",
		"CACHE_TTL": "60",
	}

	c := Deployment(cfg, Checksums{}).Spec.Template.Spec.Containers[0]
	require.Len(t, c.Env, 4)

	// Literal variables keep configured order, ConfigMap-backed ones
	// follow sorted by key.
	assert.Equal(t, "ZED_FIRST", c.Env[0].Name)
	assert.Equal(t, "1", c.Env[0].Value)
	assert.Equal(t, "ALPHA_SECOND", c.Env[1].Name)
	assert.Equal(t, "CACHE_TTL", c.Env[2].Name)
	assert.Equal(t, "LOG_LEVEL", c.Env[3].Name)

	ref := c.Env[2].ValueFrom.ConfigMapKeyRef
	require.NotNil(t, ref)
	assert.Equal(t, "web", ref.Name)
	assert.Equal(t, "CACHE_TTL", ref.Key)
}

func TestDeployment_SecretEnvFrom(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Secret = config.SecretConfig{
		Enabled:    ptr.Bool(true),
		StringData: map[string]string{"API_TOKEN": "x"},
	}

	c := Deployment(cfg, Checksums{}).Spec.Template.Spec.Containers[0]
	require.Len(t, c.EnvFrom, 1)
	require.NotNil(t, c.EnvFrom[0].SecretRef)
	assert.Equal(t, "web", c.EnvFrom[0].SecretRef.Name)
}

func TestDeployment_ConfigFiles(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Config.Files = map[string]string{
		"b.conf": "b",
		"a.conf": "a",
	}
	cfg.ApplyDefaults()

	spec := Deployment(cfg, Checksums{}).Spec.Template.Spec

	c := spec.Containers[0]
	require.Len(t, c.VolumeMounts, 1)
	assert.Equal(t, configVolumeName, c.VolumeMounts[0].Name)
	assert.Equal(t, "/etc/config", c.VolumeMounts[0].MountPath)
	assert.True(t, c.VolumeMounts[0].ReadOnly)

	require.Len(t, spec.Volumes, 1)
	cm := spec.Volumes[0].ConfigMap
	require.NotNil(t, cm)
	assert.Equal(t, "web", cm.Name)
	require.Len(t, cm.Items, 2)
	assert.Equal(t, "a.conf", cm.Items[0].Key)
	assert.Equal(t, "b.conf", cm.Items[1].Key)
}

// Env literals stay out of the projected volume even though they share
// the ConfigMap.
func TestDeployment_ConfigDataNotMounted(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Config.Data = map[string]string{"LOG_LEVEL": "info"}
	cfg.Config.Files = map[string]string{"app.yaml": "k: v\n"}
	cfg.ApplyDefaults()

	spec := Deployment(cfg, Checksums{}).Spec.Template.Spec
	require.Len(t, spec.Volumes, 1)
	items := spec.Volumes[0].ConfigMap.Items
	require.Len(t, items, 1)
	assert.Equal(t, "app.yaml", items[0].Key)
}

func TestDeployment_ChecksumAnnotations(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.PodAnnotations = map[string]string{"custom/key": "value"}

	dep := Deployment(cfg, Checksums{Config: "aaa", Secret: "bbb"})
	annotations := dep.Spec.Template.Annotations
	assert.Equal(t, "aaa", annotations[ChecksumConfigAnnotation])
	assert.Equal(t, "bbb", annotations[ChecksumSecretAnnotation])
	assert.Equal(t, "value", annotations["custom/key"])
}

func TestDeployment_Strategy(t *testing.T) {
	cfg := minimalConfig(t)
	s := Deployment(cfg, Checksums{}).Spec.Strategy
	require.NotNil(t, s.RollingUpdate)
	assert.Equal(t, intstr.FromString("25%"), *s.RollingUpdate.MaxSurge)
	assert.Equal(t, intstr.FromString("25%"), *s.RollingUpdate.MaxUnavailable)

	cfg.Strategy = config.StrategyConfig{MaxSurge: "1", MaxUnavailable: "0"}
	s = Deployment(cfg, Checksums{}).Spec.Strategy
	assert.Equal(t, intstr.FromInt32(1), *s.RollingUpdate.MaxSurge)
	assert.Equal(t, intstr.FromInt32(0), *s.RollingUpdate.MaxUnavailable)
}

func TestDeployment_AntiAffinity(t *testing.T) {
	tests := []struct {
		name   string
		preset config.AntiAffinityPreset
		soft   bool
		hard   bool
	}{
		{name: "none", preset: config.AntiAffinityNone},
		{name: "soft", preset: config.AntiAffinitySoft, soft: true},
		{name: "hard", preset: config.AntiAffinityHard, hard: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := minimalConfig(t)
			cfg.PodAntiAffinity = tt.preset

			aff := Deployment(cfg, Checksums{}).Spec.Template.Spec.Affinity
			if !tt.soft && !tt.hard {
				assert.Nil(t, aff)
				return
			}
			require.NotNil(t, aff)
			require.NotNil(t, aff.PodAntiAffinity)
			if tt.soft {
				require.Len(t, aff.PodAntiAffinity.PreferredDuringSchedulingIgnoredDuringExecution, 1)
				term := aff.PodAntiAffinity.PreferredDuringSchedulingIgnoredDuringExecution[0]
				assert.Equal(t, int32(100), term.Weight)
				assert.Equal(t, SelectorLabels(cfg), term.PodAffinityTerm.LabelSelector.MatchLabels)
				assert.Equal(t, antiAffinityTopologyKey, term.PodAffinityTerm.TopologyKey)
			}
			if tt.hard {
				require.Len(t, aff.PodAntiAffinity.RequiredDuringSchedulingIgnoredDuringExecution, 1)
				term := aff.PodAntiAffinity.RequiredDuringSchedulingIgnoredDuringExecution[0]
				assert.Equal(t, SelectorLabels(cfg), term.LabelSelector.MatchLabels)
			}
		})
	}
}

func TestDeployment_Resources(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Resources = config.ResourcesConfig{
		Requests: config.ResourceList{CPU: "100m", Memory: "128Mi"},
		Limits:   config.ResourceList{Memory: "256Mi"},
	}

	res := Deployment(cfg, Checksums{}).Spec.Template.Spec.Containers[0].Resources
	assert.Equal(t, "100m", res.Requests.Cpu().String())
	assert.Equal(t, "128Mi", res.Requests.Memory().String())
	assert.Equal(t, "256Mi", res.Limits.Memory().String())
	_, hasCPULimit := res.Limits[corev1.ResourceCPU]
	assert.False(t, hasCPULimit)
}

func TestDeployment_SecurityContexts(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.PodSecurityContext = config.PodSecurityContextConfig{
		RunAsNonRoot: ptr.Bool(true),
		RunAsUser:    ptr.Int64(1000),
		FSGroup:      ptr.Int64(2000),
	}
	cfg.SecurityContext = config.ContainerSecurityContextConfig{
		AllowPrivilegeEscalation: ptr.Bool(false),
		ReadOnlyRootFilesystem:   ptr.Bool(true),
		DropCapabilities:         []string{"ALL"},
	}

	spec := Deployment(cfg, Checksums{}).Spec.Template.Spec
	require.NotNil(t, spec.SecurityContext)
	assert.Equal(t, ptr.Bool(true), spec.SecurityContext.RunAsNonRoot)
	assert.Equal(t, ptr.Int64(1000), spec.SecurityContext.RunAsUser)
	assert.Equal(t, ptr.Int64(2000), spec.SecurityContext.FSGroup)

	sc := spec.Containers[0].SecurityContext
	require.NotNil(t, sc)
	assert.Equal(t, ptr.Bool(false), sc.AllowPrivilegeEscalation)
	assert.Equal(t, ptr.Bool(true), sc.ReadOnlyRootFilesystem)
	require.NotNil(t, sc.Capabilities)
	assert.Equal(t, []corev1.Capability{"ALL"}, sc.Capabilities.Drop)
}

func TestDeployment_NoSecurityContextsByDefault(t *testing.T) {
	spec := Deployment(minimalConfig(t), Checksums{}).Spec.Template.Spec
	assert.Nil(t, spec.SecurityContext)
	assert.Nil(t, spec.Containers[0].SecurityContext)
}

func TestDeployment_Scheduling(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.NodeSelector = map[string]string{"disktype": "ssd"}
	cfg.Tolerations = []config.TolerationConfig{{
		Key:      "dedicated",
		Operator: "Equal",
		Value:    "web",
		Effect:   "NoSchedule",
	}}

	spec := Deployment(cfg, Checksums{}).Spec.Template.Spec
	assert.Equal(t, map[string]string{"disktype": "ssd"}, spec.NodeSelector)
	require.Len(t, spec.Tolerations, 1)
	assert.Equal(t, "dedicated", spec.Tolerations[0].Key)
	assert.Equal(t, corev1.TolerationOpEqual, spec.Tolerations[0].Operator)
	assert.Equal(t, corev1.TaintEffectNoSchedule, spec.Tolerations[0].Effect)
}

func TestDeployment_PullSecrets(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Image.PullSecrets = []string{"regcred"}

	spec := Deployment(cfg, Checksums{}).Spec.Template.Spec
	require.Len(t, spec.ImagePullSecrets, 1)
	assert.Equal(t, "regcred", spec.ImagePullSecrets[0].Name)
}

func TestDeployment_MetricsAndExtraPorts(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.ExtraPorts = []config.PortConfig{{Name: "grpc", Port: 9000}}
	cfg.ServiceMonitor = config.ServiceMonitorConfig{
		Enabled: ptr.Bool(true),
		Port:    9090,
	}
	cfg.ApplyDefaults()

	ports := Deployment(cfg, Checksums{}).Spec.Template.Spec.Containers[0].Ports
	require.Len(t, ports, 3)
	assert.Equal(t, PortNameHTTP, ports[0].Name)
	assert.Equal(t, "grpc", ports[1].Name)
	assert.Equal(t, int32(9000), ports[1].ContainerPort)
	assert.Equal(t, PortNameMetrics, ports[2].Name)
	assert.Equal(t, int32(9090), ports[2].ContainerPort)
}

// A monitor without a dedicated port scrapes the main port and adds no
// extra container port.
func TestDeployment_SharedMetricsPort(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.ServiceMonitor = config.ServiceMonitorConfig{Enabled: ptr.Bool(true)}
	cfg.ApplyDefaults()

	ports := Deployment(cfg, Checksums{}).Spec.Template.Spec.Containers[0].Ports
	require.Len(t, ports, 1)
	assert.Equal(t, PortNameHTTP, ports[0].Name)
}

func TestDeployment_PodLabels(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.PodLabels = map[string]string{"team": "platform"}

	dep := Deployment(cfg, Checksums{})
	assert.Equal(t, "platform", dep.Spec.Template.Labels["team"])
	// Selector stays on the stable subset.
	_, inSelector := dep.Spec.Selector.MatchLabels["team"]
	assert.False(t, inSelector)
}
