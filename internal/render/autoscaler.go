package render

import (
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/naming"
	"github.com/imamik/webstamp/internal/util/ptr"
)

// HorizontalPodAutoscaler builds the autoscaler targeting the release
// Deployment. Returns nil when autoscaling is disabled.
func HorizontalPodAutoscaler(cfg *config.Config) *autoscalingv2.HorizontalPodAutoscaler {
	if !cfg.Autoscaling.On() {
		return nil
	}

	var metrics []autoscalingv2.MetricSpec
	if cfg.Autoscaling.TargetCPUUtilization != 0 {
		metrics = append(metrics, resourceMetric(corev1.ResourceCPU, cfg.Autoscaling.TargetCPUUtilization))
	}
	if cfg.Autoscaling.TargetMemoryUtilization != 0 {
		metrics = append(metrics, resourceMetric(corev1.ResourceMemory, cfg.Autoscaling.TargetMemoryUtilization))
	}

	return &autoscalingv2.HorizontalPodAutoscaler{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "autoscaling/v2",
			Kind:       "HorizontalPodAutoscaler",
		},
		ObjectMeta: objectMeta(cfg),
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{
				APIVersion: "apps/v1",
				Kind:       "Deployment",
				Name:       naming.Release(cfg.Name),
			},
			MinReplicas: ptr.Int32(cfg.Autoscaling.MinReplicas),
			MaxReplicas: cfg.Autoscaling.MaxReplicas,
			Metrics:     metrics,
		},
	}
}

func resourceMetric(name corev1.ResourceName, target int32) autoscalingv2.MetricSpec {
	return autoscalingv2.MetricSpec{
		Type: autoscalingv2.ResourceMetricSourceType,
		Resource: &autoscalingv2.ResourceMetricSource{
			Name: name,
			Target: autoscalingv2.MetricTarget{
				Type:               autoscalingv2.UtilizationMetricType,
				AverageUtilization: ptr.Int32(target),
			},
		},
	}
}
