package render

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/naming"
)

// AppSecret builds the application Secret injected into the container
// via envFrom. Returns nil when the secret section is disabled.
func AppSecret(cfg *config.Config) *corev1.Secret {
	if !cfg.Secret.On() {
		return nil
	}

	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: objectMeta(cfg),
		Type:       corev1.SecretTypeOpaque,
		StringData: cfg.Secret.StringData,
	}
}

// BasicAuthSecret builds the htpasswd Secret consumed by the ingress
// controller. The "auth" entry uses the user:hash format produced by
// htpasswd -B; the hash already lives in the configuration, so no
// plaintext ever reaches the manifest.
func BasicAuthSecret(cfg *config.Config) *corev1.Secret {
	if !cfg.Ingress.On() || !cfg.Ingress.BasicAuth.On() {
		return nil
	}

	auth := cfg.Ingress.BasicAuth.Username + ":" + cfg.Ingress.BasicAuth.PasswordHash + "\n"

	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: namedMeta(cfg, naming.BasicAuthSecret(cfg.Name)),
		Type:       corev1.SecretTypeOpaque,
		StringData: map[string]string{"auth": auth},
	}
}
