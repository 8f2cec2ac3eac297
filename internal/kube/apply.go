package kube

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"

	"github.com/imamik/webstamp/internal/render"
)

// Apply server-side applies each document in the order given. Render
// emits documents in install order, so dependencies land before their
// dependents.
func (c *Client) Apply(ctx context.Context, docs []render.Document) error {
	for _, doc := range docs {
		if err := c.ApplyDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDocument server-side applies a single document. ForceOwnership
// takes fields back from previous managers; webstamp owns everything it
// renders.
func (c *Client) ApplyDocument(ctx context.Context, doc render.Document) error {
	obj := &unstructured.Unstructured{}
	if err := yaml.Unmarshal(doc.Bytes, &obj.Object); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", doc.Kind, doc.Name, err)
	}

	err := c.client.Patch(ctx, obj, client.Apply, client.FieldOwner(FieldManager), client.ForceOwnership)
	if err != nil {
		return fmt.Errorf("failed to apply %s/%s: %w", doc.Kind, doc.Name, err)
	}
	c.log.Info("applied document", "kind", doc.Kind, "name", doc.Name, "namespace", obj.GetNamespace())
	return nil
}
