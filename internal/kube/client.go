// Package kube submits rendered documents to a cluster and observes the
// rollout that follows. It owns no reconciliation: documents are applied
// server-side and the cluster's own controllers take it from there.
package kube

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// FieldManager identifies webstamp to the API server; server-side apply
// tracks field ownership under this name.
const FieldManager = "webstamp"

// Client wraps cluster access for applying documents and watching
// workloads. The controller-runtime client carries the documents, the
// typed clientset reads workload status.
type Client struct {
	client    client.Client
	clientset kubernetes.Interface
	log       logr.Logger
}

// NewClient builds a cluster client from a kubeconfig file. An empty
// path resolves the way kubectl does: $KUBECONFIG first, then the
// recommended home location.
func NewClient(kubeconfigPath string, logger logr.Logger) (*Client, error) {
	if kubeconfigPath == "" {
		kubeconfigPath = clientcmd.NewDefaultClientConfigLoadingRules().GetDefaultFilename()
	}
	restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig: %w", err)
	}
	return NewClientFromConfig(restConfig, logger)
}

// NewClientFromConfig builds a cluster client from an existing REST
// configuration.
func NewClientFromConfig(restConfig *rest.Config, logger logr.Logger) (*Client, error) {
	c, err := client.New(restConfig, client.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &Client{client: c, clientset: clientset, log: logger}, nil
}

// EnsureNamespace creates the namespace when it does not exist yet.
func (c *Client) EnsureNamespace(ctx context.Context, name string) error {
	_, err := c.clientset.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if err == nil {
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to check namespace %s: %w", name, err)
	}

	ns := &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}
	if _, err := c.clientset.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{}); err != nil {
		return fmt.Errorf("failed to create namespace %s: %w", name, err)
	}
	c.log.Info("created namespace", "namespace", name)
	return nil
}
