package render

import (
	netv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/naming"
	"github.com/imamik/webstamp/internal/util/ptr"
)

// Ingress controller annotation keys wiring up basic auth.
const (
	authTypeAnnotation   = "nginx.ingress.kubernetes.io/auth-type"
	authSecretAnnotation = "nginx.ingress.kubernetes.io/auth-secret"
	authRealmAnnotation  = "nginx.ingress.kubernetes.io/auth-realm"
)

// Ingress builds the external HTTP routing for the release. Returns nil
// when the ingress section is disabled.
func Ingress(cfg *config.Config) *netv1.Ingress {
	if !cfg.Ingress.On() {
		return nil
	}

	meta := objectMeta(cfg)
	meta.Annotations = mergeMaps(meta.Annotations, cfg.Ingress.Annotations)
	if cfg.Ingress.BasicAuth.On() {
		meta.Annotations = mergeMaps(meta.Annotations, map[string]string{
			authTypeAnnotation:   "basic",
			authSecretAnnotation: naming.BasicAuthSecret(cfg.Name),
			authRealmAnnotation:  cfg.Ingress.BasicAuth.Realm,
		})
	}

	spec := netv1.IngressSpec{}
	if cfg.Ingress.ClassName != "" {
		spec.IngressClassName = ptr.String(cfg.Ingress.ClassName)
	}
	for _, host := range cfg.Ingress.Hosts {
		rule := netv1.IngressRule{
			Host: host.Host,
			IngressRuleValue: netv1.IngressRuleValue{
				HTTP: &netv1.HTTPIngressRuleValue{},
			},
		}
		for _, path := range host.Paths {
			pathType := netv1.PathType(path.PathType)
			rule.HTTP.Paths = append(rule.HTTP.Paths, netv1.HTTPIngressPath{
				Path:     path.Path,
				PathType: &pathType,
				Backend: netv1.IngressBackend{
					Service: &netv1.IngressServiceBackend{
						Name: naming.Release(cfg.Name),
						Port: netv1.ServiceBackendPort{Number: cfg.Service.Port},
					},
				},
			})
		}
		spec.Rules = append(spec.Rules, rule)
	}
	for _, tls := range cfg.Ingress.TLS {
		spec.TLS = append(spec.TLS, netv1.IngressTLS{
			Hosts:      tls.Hosts,
			SecretName: tls.SecretName,
		})
	}

	return &netv1.Ingress{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "networking.k8s.io/v1",
			Kind:       "Ingress",
		},
		ObjectMeta: meta,
		Spec:       spec,
	}
}
