package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/imamik/webstamp/internal/config"
)

func TestBuildConfig(t *testing.T) {
	result := &Result{
		Name:            "my-service",
		Namespace:       "prod",
		ImageRepository: "ghcr.io/acme/my-service",
		ImageTag:        "v1.0.0",
		Port:            "3000",
		ServiceType:     "ClusterIP",
		ReplicaCount:    3,
		EnabledFeatures: []string{FeaturePDB, FeatureServiceAccount},
	}

	cfg, err := BuildConfig(result)
	require.NoError(t, err)

	if cfg.Name != "my-service" {
		t.Errorf("Name = %q, want %q", cfg.Name, "my-service")
	}
	if cfg.Namespace != "prod" {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, "prod")
	}
	if cfg.Image.Repository != "ghcr.io/acme/my-service" {
		t.Errorf("Image.Repository = %q, want %q", cfg.Image.Repository, "ghcr.io/acme/my-service")
	}
	if cfg.Image.Tag != "v1.0.0" {
		t.Errorf("Image.Tag = %q, want %q", cfg.Image.Tag, "v1.0.0")
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}

	require.NotNil(t, cfg.ReplicaCount)
	assert.Equal(t, int32(3), *cfg.ReplicaCount)

	// ClusterIP is the default and stays unset in the written file.
	assert.Empty(t, cfg.Service.Type)

	assert.True(t, cfg.PodDisruptionBudget.On())
	assert.False(t, cfg.NetworkPolicy.On())
	assert.False(t, cfg.ServiceMonitor.On())
	assert.Nil(t, cfg.ServiceAccount.Create)
}

func TestBuildConfig_DefaultsStayUnset(t *testing.T) {
	result := &Result{
		Name:            "web",
		Namespace:       "default",
		ImageRepository: "nginx",
		Port:            "8080",
		ServiceType:     "ClusterIP",
		ReplicaCount:    1,
	}

	cfg, err := BuildConfig(result)
	require.NoError(t, err)

	// A replica count of one is the default; the file omits it.
	assert.Nil(t, cfg.ReplicaCount)
	assert.Nil(t, cfg.Ingress.Enabled)
	assert.Nil(t, cfg.Autoscaling.Enabled)
}

func TestBuildConfig_Ingress(t *testing.T) {
	result := &Result{
		Name:            "shop",
		Namespace:       "default",
		ImageRepository: "ghcr.io/acme/shop",
		Port:            "8080",
		ReplicaCount:    1,
		ExposeIngress:   true,
		IngressHost:     "shop.example.com",
		IngressClass:    "nginx",
		EnableTLS:       true,
	}

	cfg, err := BuildConfig(result)
	require.NoError(t, err)

	require.True(t, cfg.Ingress.On())
	assert.Equal(t, "nginx", cfg.Ingress.ClassName)
	require.Len(t, cfg.Ingress.Hosts, 1)
	assert.Equal(t, "shop.example.com", cfg.Ingress.Hosts[0].Host)

	require.Len(t, cfg.Ingress.TLS, 1)
	assert.Equal(t, "shop-tls", cfg.Ingress.TLS[0].SecretName)
	assert.Equal(t, []string{"shop.example.com"}, cfg.Ingress.TLS[0].Hosts)
}

func TestBuildConfig_BasicAuthHashesPassword(t *testing.T) {
	result := &Result{
		Name:              "admin-panel",
		Namespace:         "default",
		ImageRepository:   "ghcr.io/acme/admin",
		Port:              "8080",
		ReplicaCount:      1,
		ExposeIngress:     true,
		IngressHost:       "admin.example.com",
		BasicAuth:         true,
		BasicAuthUsername: "operator",
		BasicAuthPassword: "correct-horse-battery",
	}

	cfg, err := BuildConfig(result)
	require.NoError(t, err)

	ba := cfg.Ingress.BasicAuth
	require.True(t, ba.On())
	assert.Equal(t, "operator", ba.Username)

	// The plaintext never lands in the config.
	assert.NotContains(t, ba.PasswordHash, "correct-horse-battery")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(ba.PasswordHash), []byte("correct-horse-battery")))
}

func TestBuildConfig_Autoscaling(t *testing.T) {
	result := &Result{
		Name:              "api",
		Namespace:         "default",
		ImageRepository:   "ghcr.io/acme/api",
		Port:              "8080",
		ReplicaCount:      3,
		EnableAutoscaling: true,
		MinReplicas:       3,
		MaxReplicas:       30,
	}

	cfg, err := BuildConfig(result)
	require.NoError(t, err)

	require.True(t, cfg.Autoscaling.On())
	assert.Equal(t, int32(3), cfg.Autoscaling.MinReplicas)
	assert.Equal(t, int32(30), cfg.Autoscaling.MaxReplicas)
}

func TestBuildConfig_SharedServiceAccount(t *testing.T) {
	result := &Result{
		Name:            "worker",
		Namespace:       "default",
		ImageRepository: "ghcr.io/acme/worker",
		Port:            "8080",
		ReplicaCount:    1,
		EnabledFeatures: []string{},
	}

	cfg, err := BuildConfig(result)
	require.NoError(t, err)

	require.NotNil(t, cfg.ServiceAccount.Create)
	assert.False(t, *cfg.ServiceAccount.Create)
	assert.Equal(t, "default", cfg.ServiceAccount.Name)
}

func TestBuildConfig_NonClusterIPService(t *testing.T) {
	result := &Result{
		Name:            "edge",
		Namespace:       "default",
		ImageRepository: "ghcr.io/acme/edge",
		Port:            "8080",
		ServiceType:     "LoadBalancer",
		ReplicaCount:    1,
	}

	cfg, err := BuildConfig(result)
	require.NoError(t, err)
	assert.Equal(t, config.ServiceTypeLoadBalancer, cfg.Service.Type)
}

func TestBuildConfig_InvalidPort(t *testing.T) {
	result := &Result{
		Name:            "web",
		ImageRepository: "nginx",
		Port:            "eight-thousand",
	}

	_, err := BuildConfig(result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}

func TestBuildConfig_ProducesLoadableConfig(t *testing.T) {
	result := &Result{
		Name:              "shop",
		Namespace:         "prod",
		ImageRepository:   "ghcr.io/acme/shop",
		ImageTag:          "v2.0.0",
		Port:              "8080",
		ReplicaCount:      3,
		ExposeIngress:     true,
		IngressHost:       "shop.example.com",
		IngressClass:      "nginx",
		EnableTLS:         true,
		BasicAuth:         true,
		BasicAuthUsername: "admin",
		BasicAuthPassword: "hunter2hunter2",
		EnableAutoscaling: true,
		MinReplicas:       3,
		MaxReplicas:       10,
		EnabledFeatures:   DefaultFeatures(),
	}

	cfg, err := BuildConfig(result)
	require.NoError(t, err)

	cfg.ApplyDefaults()
	assert.NoError(t, cfg.Validate())
}

func TestHasFeature(t *testing.T) {
	features := []string{FeaturePDB, FeatureServiceMonitor}

	assert.True(t, hasFeature(features, FeaturePDB))
	assert.True(t, hasFeature(features, FeatureServiceMonitor))
	assert.False(t, hasFeature(features, FeatureNetworkPolicy))
	assert.False(t, hasFeature(nil, FeaturePDB))
}
