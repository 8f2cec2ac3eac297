package render

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	netv1 "k8s.io/api/networking/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/ptr"
)

// bcrypt hash of "password", cost 10.
const testPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func minimalConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Name: "web",
		Image: config.ImageConfig{
			Repository: "ghcr.io/acme/web",
			Tag:        "v1.2.3",
		},
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func fullConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Name:      "web",
		Namespace: "prod",
		Version:   "1.4.0",
		Image: config.ImageConfig{
			Repository: "ghcr.io/acme/web",
			Tag:        "v1.4.0",
		},
		ExtraPorts: []config.PortConfig{{Name: "grpc", Port: 9000}},
		Config: config.AppConfig{
			Data:  map[string]string{"LOG_LEVEL": "info"},
			Files: map[string]string{"app.yaml": "key: value\n"},
		},
		Secret: config.SecretConfig{
			Enabled:    ptr.Bool(true),
			StringData: map[string]string{"API_TOKEN": "s3cr3t"},
		},
		Ingress: config.IngressConfig{
			Enabled:   ptr.Bool(true),
			ClassName: "nginx",
			Hosts:     []config.IngressHost{{Host: "web.example.com"}},
			TLS: []config.IngressTLS{{
				SecretName: "web-tls",
				Hosts:      []string{"web.example.com"},
			}},
			BasicAuth: config.BasicAuthConfig{
				Enabled:      ptr.Bool(true),
				PasswordHash: testPasswordHash,
			},
		},
		Autoscaling: config.AutoscalingConfig{
			Enabled:     ptr.Bool(true),
			MinReplicas: 2,
			MaxReplicas: 8,
		},
		PodDisruptionBudget: config.PDBConfig{Enabled: ptr.Bool(true)},
		NetworkPolicy: config.NetworkPolicyConfig{
			Enabled: ptr.Bool(true),
			Peers: []config.NetworkPolicyPeer{{
				NamespaceLabels: map[string]string{"kubernetes.io/metadata.name": "edge"},
			}},
		},
		RBAC: config.RBACConfig{
			Create: ptr.Bool(true),
			Rules: []config.PolicyRuleConfig{{
				APIGroups: []string{""},
				Resources: []string{"configmaps"},
				Verbs:     []string{"get", "list"},
			}},
		},
		ServiceMonitor: config.ServiceMonitorConfig{
			Enabled: ptr.Bool(true),
			Port:    9090,
		},
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func kinds(m *Manifest) []string {
	out := make([]string, 0, len(m.Documents))
	for _, doc := range m.Documents {
		out = append(out, doc.Kind)
	}
	return out
}

func TestRender_MinimalConfig(t *testing.T) {
	m, err := Render(minimalConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "web", m.Release)
	assert.Equal(t, "default", m.Namespace)
	assert.Equal(t, []string{"ServiceAccount", "ConfigMap", "Service", "Deployment"}, kinds(m))

	// Even an empty ConfigMap is tracked, so adding data later rolls
	// the pods.
	cm := m.Find("ConfigMap", "web")
	require.NotNil(t, cm)
	dep, ok := m.Find("Deployment", "web").Object.(*appsv1.Deployment)
	require.True(t, ok)
	assert.Equal(t, Checksum(cm.Bytes), dep.Spec.Template.Annotations[ChecksumConfigAnnotation])
}

func TestRender_FullConfigApplyOrder(t *testing.T) {
	m, err := Render(fullConfig(t))
	require.NoError(t, err)

	want := []string{
		"NetworkPolicy",
		"PodDisruptionBudget",
		"ServiceAccount",
		"Secret",
		"Secret",
		"ConfigMap",
		"Role",
		"RoleBinding",
		"Service",
		"Deployment",
		"HorizontalPodAutoscaler",
		"Ingress",
		"ServiceMonitor",
	}
	assert.Equal(t, want, kinds(m))

	// Same kind sorts by name: the application Secret before the
	// basic auth Secret.
	secrets := m.ByKind("Secret")
	require.Len(t, secrets, 2)
	assert.Equal(t, "web", secrets[0].Name)
	assert.Equal(t, "web-basic-auth", secrets[1].Name)
}

func TestRender_Deterministic(t *testing.T) {
	first, err := Render(fullConfig(t))
	require.NoError(t, err)
	second, err := Render(fullConfig(t))
	require.NoError(t, err)

	assert.Equal(t, first.Combined(), second.Combined())

	// Rendering the same Config value twice must also agree.
	cfg := fullConfig(t)
	third, err := Render(cfg)
	require.NoError(t, err)
	fourth, err := Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, third.Combined(), fourth.Combined())
}

func TestRender_ReplicasAndAutoscalerCoexist(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.ReplicaCount = ptr.Int32(6)
	cfg.Autoscaling = config.AutoscalingConfig{
		Enabled:     ptr.Bool(true),
		MinReplicas: 3,
		MaxReplicas: 30,
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	m, err := Render(cfg)
	require.NoError(t, err)

	dep, ok := m.Find("Deployment", "web").Object.(*appsv1.Deployment)
	require.True(t, ok)
	require.NotNil(t, dep.Spec.Replicas)
	assert.Equal(t, int32(6), *dep.Spec.Replicas)

	hpaDoc := m.Find("HorizontalPodAutoscaler", "web")
	require.NotNil(t, hpaDoc)
	hpa, ok := hpaDoc.Object.(*autoscalingv2.HorizontalPodAutoscaler)
	require.True(t, ok)
	require.NotNil(t, hpa.Spec.MinReplicas)
	assert.Equal(t, int32(3), *hpa.Spec.MinReplicas)
	assert.Equal(t, int32(30), hpa.Spec.MaxReplicas)
	assert.Equal(t, "Deployment", hpa.Spec.ScaleTargetRef.Kind)
	assert.Equal(t, "web", hpa.Spec.ScaleTargetRef.Name)

	assert.Nil(t, m.Find("Ingress", "web"))
}

func TestRender_ChecksumAnnotations(t *testing.T) {
	m, err := Render(fullConfig(t))
	require.NoError(t, err)

	dep, ok := m.Find("Deployment", "web").Object.(*appsv1.Deployment)
	require.True(t, ok)
	annotations := dep.Spec.Template.Annotations

	cmSum := sha256.Sum256(m.Find("ConfigMap", "web").Bytes)
	assert.Equal(t, hex.EncodeToString(cmSum[:]), annotations[ChecksumConfigAnnotation])

	secretSum := sha256.Sum256(m.Find("Secret", "web").Bytes)
	assert.Equal(t, hex.EncodeToString(secretSum[:]), annotations[ChecksumSecretAnnotation])
}

func TestRender_ChecksumChangesWithContent(t *testing.T) {
	first, err := Render(fullConfig(t))
	require.NoError(t, err)

	cfg := fullConfig(t)
	cfg.Config.Data["LOG_LEVEL"] = "debug"
	second, err := Render(cfg)
	require.NoError(t, err)

	firstDep := first.Find("Deployment", "web").Object.(*appsv1.Deployment)
	secondDep := second.Find("Deployment", "web").Object.(*appsv1.Deployment)
	assert.NotEqual(t,
		firstDep.Spec.Template.Annotations[ChecksumConfigAnnotation],
		secondDep.Spec.Template.Annotations[ChecksumConfigAnnotation])
	assert.Equal(t,
		firstDep.Spec.Template.Annotations[ChecksumSecretAnnotation],
		secondDep.Spec.Template.Annotations[ChecksumSecretAnnotation])
}

func TestRender_NoChecksumsWithoutContent(t *testing.T) {
	m, err := Render(minimalConfig(t))
	require.NoError(t, err)

	dep := m.Find("Deployment", "web").Object.(*appsv1.Deployment)
	assert.Nil(t, dep.Spec.Template.Annotations)
}

func TestRender_CrossReferences(t *testing.T) {
	m, err := Render(fullConfig(t))
	require.NoError(t, err)

	svc := m.Find("Service", "web").Object.(*corev1.Service)
	dep := m.Find("Deployment", "web").Object.(*appsv1.Deployment)

	// The Service selector must match the pod template labels.
	for k, v := range svc.Spec.Selector {
		assert.Equal(t, v, dep.Spec.Template.Labels[k], "selector key %s", k)
	}

	// The RoleBinding attaches the rendered ServiceAccount.
	rb := m.Find("RoleBinding", "web").Object.(*rbacv1.RoleBinding)
	require.Len(t, rb.Subjects, 1)
	assert.Equal(t, "web", rb.Subjects[0].Name)
	assert.Equal(t, "prod", rb.Subjects[0].Namespace)
	assert.Equal(t, "Role", rb.RoleRef.Kind)
	assert.Equal(t, "web", rb.RoleRef.Name)

	// The Ingress routes to the rendered Service.
	ing := m.Find("Ingress", "web").Object.(*netv1.Ingress)
	backend := ing.Spec.Rules[0].HTTP.Paths[0].Backend
	require.NotNil(t, backend.Service)
	assert.Equal(t, "web", backend.Service.Name)
	assert.Equal(t, svc.Spec.Ports[0].Port, backend.Service.Port.Number)

	// The ServiceMonitor selects the Service by its selector labels.
	sm := m.Find("ServiceMonitor", "web").Object.(*unstructured.Unstructured)
	matchLabels, found, err := unstructured.NestedStringMap(sm.Object, "spec", "selector", "matchLabels")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, svc.Spec.Selector, matchLabels)
}

func TestRender_SharedServiceAccount(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.ServiceAccount = config.ServiceAccountConfig{
		Create: ptr.Bool(false),
		Name:   "shared-sa",
	}
	cfg.RBAC = config.RBACConfig{
		Create: ptr.Bool(true),
		Rules: []config.PolicyRuleConfig{{
			APIGroups: []string{""},
			Resources: []string{"pods"},
			Verbs:     []string{"get"},
		}},
	}
	require.NoError(t, cfg.Validate())

	m, err := Render(cfg)
	require.NoError(t, err)

	assert.Nil(t, m.Find("ServiceAccount", "shared-sa"))
	assert.Nil(t, m.Find("ServiceAccount", "web"))

	dep := m.Find("Deployment", "web").Object.(*appsv1.Deployment)
	assert.Equal(t, "shared-sa", dep.Spec.Template.Spec.ServiceAccountName)

	rb := m.Find("RoleBinding", "web").Object.(*rbacv1.RoleBinding)
	assert.Equal(t, "shared-sa", rb.Subjects[0].Name)
}

func TestRender_EncodedDocuments(t *testing.T) {
	m, err := Render(fullConfig(t))
	require.NoError(t, err)

	for _, doc := range m.Documents {
		assert.NotEmpty(t, doc.Bytes, "%s/%s has no encoded bytes", doc.Kind, doc.Name)
		assert.Contains(t, string(doc.Bytes), "apiVersion:")
		assert.Contains(t, string(doc.Bytes), "namespace: prod")
	}
}

func TestManifest_Combined(t *testing.T) {
	m, err := Render(fullConfig(t))
	require.NoError(t, err)

	combined := string(m.Combined())
	assert.Equal(t, len(m.Documents)-1, strings.Count(combined, "\n---\n"))
	assert.True(t, strings.HasSuffix(combined, "\n"))
	assert.False(t, strings.HasPrefix(combined, "---"))
}

func TestManifest_FindAndByKind(t *testing.T) {
	m, err := Render(fullConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, m.Find("Deployment", "web"))
	assert.Nil(t, m.Find("Deployment", "other"))
	assert.Nil(t, m.Find("StatefulSet", "web"))

	assert.Len(t, m.ByKind("Secret"), 2)
	assert.Empty(t, m.ByKind("CronJob"))
}

func TestDocument_FileName(t *testing.T) {
	tests := []struct {
		kind string
		name string
		want string
	}{
		{"Deployment", "web", "deployment-web.yaml"},
		{"Secret", "web-basic-auth", "secret-web-basic-auth.yaml"},
		{"HorizontalPodAutoscaler", "web", "horizontalpodautoscaler-web.yaml"},
		{"ServiceMonitor", "web", "servicemonitor-web.yaml"},
	}
	for _, tt := range tests {
		doc := Document{Kind: tt.kind, Name: tt.name}
		if got := doc.FileName(); got != tt.want {
			t.Errorf("FileName() = %q, want %q", got, tt.want)
		}
	}
}
