package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/ptr"
)

// BuildConfig creates a Config struct from the wizard result.
//
// A basic auth password is hashed here, once, so the written file carries
// only the bcrypt hash and rendering stays deterministic.
func BuildConfig(result *Result) (*config.Config, error) {
	port, err := strconv.Atoi(strings.TrimSpace(result.Port))
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", result.Port, err)
	}

	cfg := &config.Config{
		Name:      result.Name,
		Namespace: result.Namespace,
		Image: config.ImageConfig{
			Repository: result.ImageRepository,
			Tag:        result.ImageTag,
		},
		Port: int32(port),
	}

	if result.ReplicaCount != 1 {
		cfg.ReplicaCount = ptr.Int32(int32(result.ReplicaCount))
	}

	if result.ServiceType != "" && result.ServiceType != string(config.ServiceTypeClusterIP) {
		cfg.Service.Type = config.ServiceType(result.ServiceType)
	}

	if result.ExposeIngress {
		if err := buildIngress(cfg, result); err != nil {
			return nil, err
		}
	}

	if result.EnableAutoscaling {
		cfg.Autoscaling = config.AutoscalingConfig{
			Enabled:     ptr.Bool(true),
			MinReplicas: int32(result.MinReplicas),
			MaxReplicas: int32(result.MaxReplicas),
		}
	}

	if hasFeature(result.EnabledFeatures, FeaturePDB) {
		cfg.PodDisruptionBudget.Enabled = ptr.Bool(true)
	}
	if hasFeature(result.EnabledFeatures, FeatureNetworkPolicy) {
		cfg.NetworkPolicy.Enabled = ptr.Bool(true)
	}
	if hasFeature(result.EnabledFeatures, FeatureServiceMonitor) {
		cfg.ServiceMonitor.Enabled = ptr.Bool(true)
	}
	if !hasFeature(result.EnabledFeatures, FeatureServiceAccount) {
		cfg.ServiceAccount = config.ServiceAccountConfig{
			Create: ptr.Bool(false),
			Name:   "default",
		}
	}

	return cfg, nil
}

// buildIngress fills the ingress section, hashing the basic auth password.
func buildIngress(cfg *config.Config, result *Result) error {
	cfg.Ingress = config.IngressConfig{
		Enabled:   ptr.Bool(true),
		ClassName: result.IngressClass,
		Hosts:     []config.IngressHost{{Host: result.IngressHost}},
	}

	if result.EnableTLS {
		cfg.Ingress.TLS = []config.IngressTLS{{
			SecretName: result.Name + "-tls",
			Hosts:      []string{result.IngressHost},
		}}
	}

	if result.BasicAuth {
		hash, err := bcrypt.GenerateFromPassword([]byte(result.BasicAuthPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		cfg.Ingress.BasicAuth = config.BasicAuthConfig{
			Enabled:      ptr.Bool(true),
			Username:     result.BasicAuthUsername,
			PasswordHash: string(hash),
		}
	}

	return nil
}
