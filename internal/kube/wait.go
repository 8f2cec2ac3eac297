package kube

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const rolloutPollInterval = 2 * time.Second

// WaitForRollout polls the Deployment until the current generation is
// fully rolled out or the timeout expires. The first check happens
// immediately, so an already-settled deployment returns without
// sleeping. A non-nil progress callback receives the available and
// desired replica counts on every poll.
func (c *Client) WaitForRollout(ctx context.Context, namespace, name string, timeout time.Duration, progress func(ready, desired int32)) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(rolloutPollInterval)
	defer ticker.Stop()

	for {
		dep, err := c.clientset.AppsV1().Deployments(namespace).Get(waitCtx, name, metav1.GetOptions{})
		if err == nil {
			if progress != nil {
				desired := int32(1)
				if dep.Spec.Replicas != nil {
					desired = *dep.Spec.Replicas
				}
				progress(dep.Status.AvailableReplicas, desired)
			}
			if deploymentRolledOut(dep) {
				c.log.Info("deployment rolled out", "namespace", namespace, "name", name)
				return nil
			}
			c.log.V(1).Info("waiting for rollout",
				"namespace", namespace, "name", name,
				"updated", dep.Status.UpdatedReplicas,
				"available", dep.Status.AvailableReplicas)
		}

		select {
		case <-waitCtx.Done():
			return fmt.Errorf("deployment %s/%s did not roll out: %w", namespace, name, waitCtx.Err())
		case <-ticker.C:
		}
	}
}

// deploymentRolledOut reports whether the deployment's current
// generation is observed, fully updated, fully available, and the
// controller marked it Available.
func deploymentRolledOut(dep *appsv1.Deployment) bool {
	if dep.Status.ObservedGeneration < dep.Generation {
		return false
	}

	replicas := int32(1)
	if dep.Spec.Replicas != nil {
		replicas = *dep.Spec.Replicas
	}
	if dep.Status.UpdatedReplicas < replicas {
		return false
	}
	// Old-generation pods still terminating.
	if dep.Status.Replicas > dep.Status.UpdatedReplicas {
		return false
	}
	if dep.Status.AvailableReplicas < dep.Status.UpdatedReplicas {
		return false
	}

	for _, cond := range dep.Status.Conditions {
		if cond.Type == appsv1.DeploymentAvailable && cond.Status == corev1.ConditionTrue {
			return true
		}
	}
	return false
}
