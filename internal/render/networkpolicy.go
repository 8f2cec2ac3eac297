package render

import (
	corev1 "k8s.io/api/core/v1"
	netv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/imamik/webstamp/internal/config"
)

// NetworkPolicy builds the ingress policy over the release pods. Peers
// reach the application ports; the metrics port opens to everyone when
// scraping is allowed. With neither rule present the policy denies all
// ingress. Returns nil when the section is disabled.
func NetworkPolicy(cfg *config.Config) *netv1.NetworkPolicy {
	if !cfg.NetworkPolicy.On() {
		return nil
	}

	spec := netv1.NetworkPolicySpec{
		PodSelector: metav1.LabelSelector{
			MatchLabels: SelectorLabels(cfg),
		},
		PolicyTypes: []netv1.PolicyType{netv1.PolicyTypeIngress},
	}
	if len(cfg.NetworkPolicy.Peers) > 0 {
		spec.Ingress = append(spec.Ingress, applicationRule(cfg))
	}
	if cfg.NetworkPolicy.ScrapeAllowed() {
		spec.Ingress = append(spec.Ingress, scrapeRule(cfg))
	}

	return &netv1.NetworkPolicy{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "networking.k8s.io/v1",
			Kind:       "NetworkPolicy",
		},
		ObjectMeta: objectMeta(cfg),
		Spec:       spec,
	}
}

// applicationRule admits the configured peers to the container port and
// every extra port.
func applicationRule(cfg *config.Config) netv1.NetworkPolicyIngressRule {
	rule := netv1.NetworkPolicyIngressRule{}
	for _, peer := range cfg.NetworkPolicy.Peers {
		p := netv1.NetworkPolicyPeer{}
		if len(peer.NamespaceLabels) > 0 {
			p.NamespaceSelector = &metav1.LabelSelector{MatchLabels: peer.NamespaceLabels}
		}
		if len(peer.PodLabels) > 0 {
			p.PodSelector = &metav1.LabelSelector{MatchLabels: peer.PodLabels}
		}
		// A peer with no selectors means any pod in the policy's own
		// namespace.
		if p.NamespaceSelector == nil && p.PodSelector == nil {
			p.PodSelector = &metav1.LabelSelector{}
		}
		rule.From = append(rule.From, p)
	}

	rule.Ports = append(rule.Ports, policyPort(cfg.Port))
	for _, p := range cfg.ExtraPorts {
		rule.Ports = append(rule.Ports, policyPort(p.Port))
	}
	return rule
}

// scrapeRule opens the metrics port to any source, so Prometheus can
// scrape from its own namespace without the operator knowing where that
// is.
func scrapeRule(cfg *config.Config) netv1.NetworkPolicyIngressRule {
	return netv1.NetworkPolicyIngressRule{
		Ports: []netv1.NetworkPolicyPort{policyPort(cfg.MetricsPort())},
	}
}

func policyPort(port int32) netv1.NetworkPolicyPort {
	protocol := corev1.ProtocolTCP
	p := intstr.FromInt32(port)
	return netv1.NetworkPolicyPort{
		Protocol: &protocol,
		Port:     &p,
	}
}
