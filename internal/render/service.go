package render

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/imamik/webstamp/internal/config"
)

// Named ports shared between the container, the Service, the probes and
// the ServiceMonitor endpoint.
const (
	PortNameHTTP    = "http"
	PortNameMetrics = "metrics"
)

// Service builds the Service fronting the pods. Service ports target
// container ports by name so the two can renumber independently.
func Service(cfg *config.Config) *corev1.Service {
	ports := []corev1.ServicePort{{
		Name:       PortNameHTTP,
		Port:       cfg.Service.Port,
		TargetPort: intstr.FromString(PortNameHTTP),
		Protocol:   corev1.ProtocolTCP,
		NodePort:   cfg.Service.NodePort,
	}}
	for _, p := range cfg.ExtraPorts {
		ports = append(ports, corev1.ServicePort{
			Name:       p.Name,
			Port:       p.Port,
			TargetPort: intstr.FromString(p.Name),
			Protocol:   corev1.ProtocolTCP,
		})
	}
	if cfg.HasDedicatedMetricsPort() {
		ports = append(ports, corev1.ServicePort{
			Name:       PortNameMetrics,
			Port:       cfg.ServiceMonitor.Port,
			TargetPort: intstr.FromString(PortNameMetrics),
			Protocol:   corev1.ProtocolTCP,
		})
	}

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: objectMeta(cfg),
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceType(cfg.Service.Type),
			Selector: SelectorLabels(cfg),
			Ports:    ports,
		},
	}
}
