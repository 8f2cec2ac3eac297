package lint

import (
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	netv1 "k8s.io/api/networking/v1"
	policyv1 "k8s.io/api/policy/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/imamik/webstamp/internal/render"
)

// firstObject returns the first document of the given kind whose object
// has the expected type.
func firstObject[T any](m *render.Manifest, kind string) (T, bool) {
	var zero T
	for _, doc := range m.ByKind(kind) {
		if obj, ok := doc.Object.(T); ok {
			return obj, true
		}
	}
	return zero, false
}

// SelectorAgreement verifies that every selector over the release pods
// matches the pod template labels: the Deployment's own selector, the
// Service selector, the PodDisruptionBudget and the NetworkPolicy.
type SelectorAgreement struct{}

func (r SelectorAgreement) ID() string { return "WS001" }
func (r SelectorAgreement) Description() string {
	return "Workload selectors must match the pod template labels"
}

func (r SelectorAgreement) Check(m *render.Manifest) []Issue {
	dep, ok := firstObject[*appsv1.Deployment](m, "Deployment")
	if !ok {
		return nil
	}
	podLabels := dep.Spec.Template.Labels

	var issues []Issue
	report := func(kind, name string, selector map[string]string) {
		for k, v := range selector {
			if podLabels[k] != v {
				issues = append(issues, Issue{
					Rule:     r.ID(),
					Severity: SeverityError,
					Kind:     kind,
					Name:     name,
					Message:  fmt.Sprintf("selector %s=%s does not match the pod template labels", k, v),
				})
			}
		}
	}

	if dep.Spec.Selector != nil {
		report("Deployment", dep.Name, dep.Spec.Selector.MatchLabels)
	}
	if svc, ok := firstObject[*corev1.Service](m, "Service"); ok {
		report("Service", svc.Name, svc.Spec.Selector)
	}
	if pdb, ok := firstObject[*policyv1.PodDisruptionBudget](m, "PodDisruptionBudget"); ok && pdb.Spec.Selector != nil {
		report("PodDisruptionBudget", pdb.Name, pdb.Spec.Selector.MatchLabels)
	}
	if np, ok := firstObject[*netv1.NetworkPolicy](m, "NetworkPolicy"); ok {
		report("NetworkPolicy", np.Name, np.Spec.PodSelector.MatchLabels)
	}
	return issues
}

// IngressBackends verifies that every ingress path routes to the
// rendered Service on a port the Service actually exposes.
type IngressBackends struct{}

func (r IngressBackends) ID() string { return "WS002" }
func (r IngressBackends) Description() string {
	return "Ingress backends must reference the rendered Service"
}

func (r IngressBackends) Check(m *render.Manifest) []Issue {
	ing, ok := firstObject[*netv1.Ingress](m, "Ingress")
	if !ok {
		return nil
	}

	svc, ok := firstObject[*corev1.Service](m, "Service")
	if !ok {
		return []Issue{{
			Rule:     r.ID(),
			Severity: SeverityError,
			Kind:     "Ingress",
			Name:     ing.Name,
			Message:  "ingress present but no Service rendered",
		}}
	}

	ports := make(map[int32]bool, len(svc.Spec.Ports))
	names := make(map[string]bool, len(svc.Spec.Ports))
	for _, p := range svc.Spec.Ports {
		ports[p.Port] = true
		names[p.Name] = true
	}

	var issues []Issue
	for _, rule := range ing.Spec.Rules {
		if rule.HTTP == nil {
			continue
		}
		for _, path := range rule.HTTP.Paths {
			backend := path.Backend.Service
			if backend == nil {
				issues = append(issues, Issue{
					Rule:     r.ID(),
					Severity: SeverityError,
					Kind:     "Ingress",
					Name:     ing.Name,
					Message:  fmt.Sprintf("path %q on host %q has no service backend", path.Path, rule.Host),
				})
				continue
			}
			if backend.Name != svc.Name {
				issues = append(issues, Issue{
					Rule:     r.ID(),
					Severity: SeverityError,
					Kind:     "Ingress",
					Name:     ing.Name,
					Message:  fmt.Sprintf("backend references service %q, rendered Service is %q", backend.Name, svc.Name),
				})
			}
			switch {
			case backend.Port.Name != "":
				if !names[backend.Port.Name] {
					issues = append(issues, Issue{
						Rule:     r.ID(),
						Severity: SeverityError,
						Kind:     "Ingress",
						Name:     ing.Name,
						Message:  fmt.Sprintf("backend references port %q, not exposed by the Service", backend.Port.Name),
					})
				}
			default:
				if !ports[backend.Port.Number] {
					issues = append(issues, Issue{
						Rule:     r.ID(),
						Severity: SeverityError,
						Kind:     "Ingress",
						Name:     ing.Name,
						Message:  fmt.Sprintf("backend references port %d, not exposed by the Service", backend.Port.Number),
					})
				}
			}
		}
	}
	return issues
}

// AutoscalerTarget verifies that the HorizontalPodAutoscaler scales the
// rendered Deployment and nothing else.
type AutoscalerTarget struct{}

func (r AutoscalerTarget) ID() string { return "WS003" }
func (r AutoscalerTarget) Description() string {
	return "The autoscaler must target the rendered Deployment"
}

func (r AutoscalerTarget) Check(m *render.Manifest) []Issue {
	hpa, ok := firstObject[*autoscalingv2.HorizontalPodAutoscaler](m, "HorizontalPodAutoscaler")
	if !ok {
		return nil
	}

	dep, ok := firstObject[*appsv1.Deployment](m, "Deployment")
	if !ok {
		return []Issue{{
			Rule:     r.ID(),
			Severity: SeverityError,
			Kind:     "HorizontalPodAutoscaler",
			Name:     hpa.Name,
			Message:  "autoscaler present but no Deployment rendered",
		}}
	}

	ref := hpa.Spec.ScaleTargetRef
	var issues []Issue
	if ref.Kind != "Deployment" || ref.APIVersion != "apps/v1" {
		issues = append(issues, Issue{
			Rule:     r.ID(),
			Severity: SeverityError,
			Kind:     "HorizontalPodAutoscaler",
			Name:     hpa.Name,
			Message:  fmt.Sprintf("scale target is %s/%s, expected apps/v1 Deployment", ref.APIVersion, ref.Kind),
		})
	}
	if ref.Name != dep.Name {
		issues = append(issues, Issue{
			Rule:     r.ID(),
			Severity: SeverityError,
			Kind:     "HorizontalPodAutoscaler",
			Name:     hpa.Name,
			Message:  fmt.Sprintf("scale target %q does not match Deployment %q", ref.Name, dep.Name),
		})
	}
	return issues
}

// RoleBindingSubject verifies that the RoleBinding grants its Role to
// the ServiceAccount the pods actually run as.
type RoleBindingSubject struct{}

func (r RoleBindingSubject) ID() string { return "WS004" }
func (r RoleBindingSubject) Description() string {
	return "RoleBinding subjects must name the pod ServiceAccount"
}

func (r RoleBindingSubject) Check(m *render.Manifest) []Issue {
	rb, ok := firstObject[*rbacv1.RoleBinding](m, "RoleBinding")
	if !ok {
		return nil
	}

	var issues []Issue

	roleFound := false
	for _, doc := range m.ByKind("Role") {
		if doc.Name == rb.RoleRef.Name {
			roleFound = true
		}
	}
	if !roleFound {
		issues = append(issues, Issue{
			Rule:     r.ID(),
			Severity: SeverityError,
			Kind:     "RoleBinding",
			Name:     rb.Name,
			Message:  fmt.Sprintf("roleRef %q does not match any rendered Role", rb.RoleRef.Name),
		})
	}

	dep, ok := firstObject[*appsv1.Deployment](m, "Deployment")
	if !ok {
		return issues
	}
	podSA := dep.Spec.Template.Spec.ServiceAccountName

	if len(rb.Subjects) == 0 {
		issues = append(issues, Issue{
			Rule:     r.ID(),
			Severity: SeverityError,
			Kind:     "RoleBinding",
			Name:     rb.Name,
			Message:  "binding has no subjects",
		})
	}
	for _, subject := range rb.Subjects {
		if subject.Kind != rbacv1.ServiceAccountKind {
			continue
		}
		if subject.Name != podSA {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Kind:     "RoleBinding",
				Name:     rb.Name,
				Message:  fmt.Sprintf("subject %q does not match pod serviceAccountName %q", subject.Name, podSA),
			})
		}
		if subject.Namespace != m.Namespace {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Kind:     "RoleBinding",
				Name:     rb.Name,
				Message:  fmt.Sprintf("subject namespace %q does not match release namespace %q", subject.Namespace, m.Namespace),
			})
		}
	}
	return issues
}

// ServiceMonitorSelector verifies that the ServiceMonitor selects the
// rendered Service and scrapes a port the Service exposes.
type ServiceMonitorSelector struct{}

func (r ServiceMonitorSelector) ID() string { return "WS005" }
func (r ServiceMonitorSelector) Description() string {
	return "The ServiceMonitor must select the rendered Service"
}

func (r ServiceMonitorSelector) Check(m *render.Manifest) []Issue {
	sm, ok := firstObject[*unstructured.Unstructured](m, "ServiceMonitor")
	if !ok {
		return nil
	}

	svc, ok := firstObject[*corev1.Service](m, "Service")
	if !ok {
		return []Issue{{
			Rule:     r.ID(),
			Severity: SeverityError,
			Kind:     "ServiceMonitor",
			Name:     sm.GetName(),
			Message:  "monitor present but no Service rendered",
		}}
	}

	var issues []Issue

	matchLabels, found, err := unstructured.NestedStringMap(sm.Object, "spec", "selector", "matchLabels")
	if err != nil || !found {
		issues = append(issues, Issue{
			Rule:     r.ID(),
			Severity: SeverityError,
			Kind:     "ServiceMonitor",
			Name:     sm.GetName(),
			Message:  "monitor has no selector.matchLabels",
		})
	}
	for k, v := range matchLabels {
		if svc.Labels[k] != v {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Kind:     "ServiceMonitor",
				Name:     sm.GetName(),
				Message:  fmt.Sprintf("selector %s=%s does not match the Service labels", k, v),
			})
		}
	}

	portNames := make(map[string]bool, len(svc.Spec.Ports))
	for _, p := range svc.Spec.Ports {
		portNames[p.Name] = true
	}
	endpoints, _, err := unstructured.NestedSlice(sm.Object, "spec", "endpoints")
	if err != nil {
		return issues
	}
	for _, e := range endpoints {
		endpoint, ok := e.(map[string]any)
		if !ok {
			continue
		}
		port, _ := endpoint["port"].(string)
		if port != "" && !portNames[port] {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Kind:     "ServiceMonitor",
				Name:     sm.GetName(),
				Message:  fmt.Sprintf("endpoint scrapes port %q, not exposed by the Service", port),
			})
		}
	}
	return issues
}

// ChecksumAnnotations verifies that the pod template checksums match the
// rendered ConfigMap and application Secret content, in both directions:
// a missing annotation will not roll pods on config changes, a stale one
// rolls them for nothing.
type ChecksumAnnotations struct{}

func (r ChecksumAnnotations) ID() string { return "WS006" }
func (r ChecksumAnnotations) Description() string {
	return "Checksum annotations must match the rendered content"
}

func (r ChecksumAnnotations) Check(m *render.Manifest) []Issue {
	depDoc := m.Find("Deployment", m.Release)
	if depDoc == nil {
		return nil
	}
	dep, ok := depDoc.Object.(*appsv1.Deployment)
	if !ok {
		return nil
	}
	annotations := dep.Spec.Template.Annotations

	var issues []Issue
	check := func(doc *render.Document, key, source string) {
		got := annotations[key]
		switch {
		case doc == nil && got != "":
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Kind:     "Deployment",
				Name:     dep.Name,
				Message:  fmt.Sprintf("%s annotation present but no %s rendered", key, source),
			})
		case doc != nil && got == "":
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Kind:     "Deployment",
				Name:     dep.Name,
				Message:  fmt.Sprintf("%s rendered but %s annotation missing", source, key),
			})
		case doc != nil && got != render.Checksum(doc.Bytes):
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Kind:     "Deployment",
				Name:     dep.Name,
				Message:  fmt.Sprintf("%s annotation does not match the rendered %s content", key, source),
			})
		}
	}

	check(m.Find("ConfigMap", m.Release), render.ChecksumConfigAnnotation, "ConfigMap")
	check(m.Find("Secret", m.Release), render.ChecksumSecretAnnotation, "Secret")
	return issues
}

// ValidNames verifies that every document name is a valid DNS-1123
// label, the strictest of the name formats the API server enforces.
type ValidNames struct{}

func (r ValidNames) ID() string { return "WS007" }
func (r ValidNames) Description() string {
	return "Resource names must be valid DNS-1123 labels"
}

func (r ValidNames) Check(m *render.Manifest) []Issue {
	var issues []Issue
	for _, doc := range m.Documents {
		for _, msg := range validation.IsDNS1123Label(doc.Name) {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Kind:     doc.Kind,
				Name:     doc.Name,
				Message:  msg,
			})
		}
	}
	return issues
}

// DuplicateDocuments verifies that no two documents share kind and name;
// a duplicate would silently overwrite its twin on apply.
type DuplicateDocuments struct{}

func (r DuplicateDocuments) ID() string { return "WS008" }
func (r DuplicateDocuments) Description() string {
	return "No two documents may share kind and name"
}

func (r DuplicateDocuments) Check(m *render.Manifest) []Issue {
	seen := make(map[string]bool, len(m.Documents))
	var issues []Issue
	for _, doc := range m.Documents {
		key := doc.Kind + "/" + doc.Name
		if seen[key] {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Kind:     doc.Kind,
				Name:     doc.Name,
				Message:  "duplicate document",
			})
		}
		seen[key] = true
	}
	return issues
}

// NamespaceAgreement verifies that every document lives in the release
// namespace.
type NamespaceAgreement struct{}

func (r NamespaceAgreement) ID() string { return "WS009" }
func (r NamespaceAgreement) Description() string {
	return "All documents must live in the release namespace"
}

func (r NamespaceAgreement) Check(m *render.Manifest) []Issue {
	var issues []Issue
	for _, doc := range m.Documents {
		obj, ok := doc.Object.(interface{ GetNamespace() string })
		if !ok {
			continue
		}
		if ns := obj.GetNamespace(); ns != m.Namespace {
			issues = append(issues, Issue{
				Rule:     r.ID(),
				Severity: SeverityError,
				Kind:     doc.Kind,
				Name:     doc.Name,
				Message:  fmt.Sprintf("namespace %q does not match release namespace %q", ns, m.Namespace),
			})
		}
	}
	return issues
}

// ReplicaDrift warns when a fixed replica count falls outside the
// autoscaler range: the count applies on each deploy and the autoscaler
// immediately corrects it, causing pod churn.
type ReplicaDrift struct{}

func (r ReplicaDrift) ID() string { return "WS010" }
func (r ReplicaDrift) Description() string {
	return "A fixed replica count outside the autoscaler range drifts"
}

func (r ReplicaDrift) Check(m *render.Manifest) []Issue {
	dep, ok := firstObject[*appsv1.Deployment](m, "Deployment")
	if !ok || dep.Spec.Replicas == nil {
		return nil
	}
	hpa, ok := firstObject[*autoscalingv2.HorizontalPodAutoscaler](m, "HorizontalPodAutoscaler")
	if !ok {
		return nil
	}

	replicas := *dep.Spec.Replicas
	min := int32(1)
	if hpa.Spec.MinReplicas != nil {
		min = *hpa.Spec.MinReplicas
	}
	max := hpa.Spec.MaxReplicas

	if replicas < min || replicas > max {
		return []Issue{{
			Rule:     r.ID(),
			Severity: SeverityWarning,
			Kind:     "Deployment",
			Name:     dep.Name,
			Message:  fmt.Sprintf("replica count %d is outside the autoscaler range %d-%d and will be corrected on the next scaling cycle", replicas, min, max),
		}}
	}
	return nil
}
