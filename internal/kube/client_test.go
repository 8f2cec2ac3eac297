package kube

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8sfake "k8s.io/client-go/kubernetes/fake"
)

func TestEnsureNamespace_CreatesMissing(t *testing.T) {
	clientset := k8sfake.NewSimpleClientset()
	c := &Client{clientset: clientset, log: logr.Discard()}

	require.NoError(t, c.EnsureNamespace(context.Background(), "prod"))

	ns, err := clientset.CoreV1().Namespaces().Get(context.Background(), "prod", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "prod", ns.Name)
}

func TestEnsureNamespace_AlreadyExists(t *testing.T) {
	existing := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "prod"}}
	clientset := k8sfake.NewSimpleClientset(existing)
	c := &Client{clientset: clientset, log: logr.Discard()}

	require.NoError(t, c.EnsureNamespace(context.Background(), "prod"))

	// No create happened, only the existence check.
	for _, action := range clientset.Actions() {
		assert.NotEqual(t, "create", action.GetVerb())
	}
}
