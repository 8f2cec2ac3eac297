package render

import (
	policyv1 "k8s.io/api/policy/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/imamik/webstamp/internal/config"
)

// PodDisruptionBudget builds the disruption budget over the release
// pods. Returns nil when the section is disabled.
func PodDisruptionBudget(cfg *config.Config) *policyv1.PodDisruptionBudget {
	if !cfg.PodDisruptionBudget.On() {
		return nil
	}

	spec := policyv1.PodDisruptionBudgetSpec{
		Selector: &metav1.LabelSelector{
			MatchLabels: SelectorLabels(cfg),
		},
	}
	if v := cfg.PodDisruptionBudget.MinAvailable; v != "" {
		val := intstr.Parse(v)
		spec.MinAvailable = &val
	}
	if v := cfg.PodDisruptionBudget.MaxUnavailable; v != "" {
		val := intstr.Parse(v)
		spec.MaxUnavailable = &val
	}

	return &policyv1.PodDisruptionBudget{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "policy/v1",
			Kind:       "PodDisruptionBudget",
		},
		ObjectMeta: objectMeta(cfg),
		Spec:       spec,
	}
}
