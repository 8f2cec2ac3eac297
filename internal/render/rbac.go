package render

import (
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/webstamp/internal/config"
	"github.com/imamik/webstamp/internal/util/naming"
)

// Role builds the namespaced Role granting the configured rules.
// Returns nil when RBAC is disabled.
func Role(cfg *config.Config) *rbacv1.Role {
	if !cfg.RBAC.On() {
		return nil
	}

	rules := make([]rbacv1.PolicyRule, 0, len(cfg.RBAC.Rules))
	for _, r := range cfg.RBAC.Rules {
		rules = append(rules, rbacv1.PolicyRule{
			APIGroups:     r.APIGroups,
			Resources:     r.Resources,
			Verbs:         r.Verbs,
			ResourceNames: r.ResourceNames,
		})
	}

	return &rbacv1.Role{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "rbac.authorization.k8s.io/v1",
			Kind:       "Role",
		},
		ObjectMeta: objectMeta(cfg),
		Rules:      rules,
	}
}

// RoleBinding builds the binding attaching the Role to the pod identity.
// Returns nil when RBAC is disabled.
func RoleBinding(cfg *config.Config) *rbacv1.RoleBinding {
	if !cfg.RBAC.On() {
		return nil
	}

	return &rbacv1.RoleBinding{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "rbac.authorization.k8s.io/v1",
			Kind:       "RoleBinding",
		},
		ObjectMeta: objectMeta(cfg),
		RoleRef: rbacv1.RoleRef{
			APIGroup: rbacv1.GroupName,
			Kind:     "Role",
			Name:     naming.Release(cfg.Name),
		},
		Subjects: []rbacv1.Subject{{
			Kind:      rbacv1.ServiceAccountKind,
			Name:      cfg.ServiceAccountName(),
			Namespace: cfg.Namespace,
		}},
	}
}
