package wizard

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"k8s.io/apimachinery/pkg/util/validation"
)

// runIdentityGroup prompts for release name and namespace.
func runIdentityGroup(ctx context.Context, result *Result) error {
	result.Namespace = "default"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Release Name").
				Description("Names every rendered resource. 1-63 lowercase alphanumeric characters or hyphens").
				Placeholder("my-service").
				Value(&result.Name).
				Validate(validateReleaseName),
			huh.NewInput().
				Title("Namespace").
				Description("Kubernetes namespace the release is rendered into").
				Value(&result.Namespace).
				Validate(validateNamespace),
		).Title("Release Identity"),
	).RunWithContext(ctx)
}

// runImageGroup prompts for the container image.
func runImageGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Image Repository").
				Description("Container image without tag").
				Placeholder("ghcr.io/acme/my-service").
				Value(&result.ImageRepository).
				Validate(validateImageRepository),
			huh.NewInput().
				Title("Image Tag").
				Description("Leave empty to track the release version").
				Placeholder("v1.0.0").
				Value(&result.ImageTag),
		).Title("Container Image"),
	).RunWithContext(ctx)
}

// runNetworkingGroup prompts for port, service type and ingress exposure.
func runNetworkingGroup(ctx context.Context, result *Result) error {
	result.Port = "8080"
	result.ServiceType = "ClusterIP"

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Container Port").
				Description("Port the application listens on").
				Value(&result.Port).
				Validate(validatePort),
			huh.NewSelect[string]().
				Title("Service Type").
				Description("How the Service exposes the pods inside the cluster").
				Options(ServiceTypeOptions...).
				Value(&result.ServiceType),
			huh.NewConfirm().
				Title("Expose via Ingress?").
				Description("Route external HTTP traffic to the service").
				Value(&result.ExposeIngress),
		).Title("Networking"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if !result.ExposeIngress {
		return nil
	}

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hostname").
				Description("Fully qualified hostname routed to the service").
				Placeholder("my-service.example.com").
				Value(&result.IngressHost).
				Validate(validateHost),
			huh.NewSelect[string]().
				Title("Ingress Class").
				Description("Ingress controller handling the route").
				Options(IngressClassOptions...).
				Value(&result.IngressClass),
			huh.NewConfirm().
				Title("Enable TLS?").
				Description("Terminate HTTPS for the hostname").
				Value(&result.EnableTLS),
			huh.NewConfirm().
				Title("Protect with Basic Auth?").
				Description("Require a username and password at the ingress").
				Value(&result.BasicAuth),
		).Title("Ingress"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if result.BasicAuth {
		result.BasicAuthUsername = "admin"

		return huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Username").
					Value(&result.BasicAuthUsername),
				huh.NewInput().
					Title("Password").
					Description("Stored as a bcrypt hash, never in plaintext").
					EchoMode(huh.EchoModePassword).
					Value(&result.BasicAuthPassword).
					Validate(validatePassword),
			).Title("Basic Auth"),
		).RunWithContext(ctx)
	}

	return nil
}

// runScalingGroup prompts for replica count and autoscaling bounds.
func runScalingGroup(ctx context.Context, result *Result) error {
	result.ReplicaCount = 1

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Replica Count").
				Description("Desired pod count").
				Options(ReplicaCountOptions...).
				Value(&result.ReplicaCount),
			huh.NewConfirm().
				Title("Enable Autoscaling?").
				Description("Scale replicas on CPU utilization with an HPA").
				Value(&result.EnableAutoscaling),
		).Title("Scaling"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if result.EnableAutoscaling {
		result.MinReplicas = 1
		result.MaxReplicas = 10

		return huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int]().
					Title("Minimum Replicas").
					Options(MinReplicaOptions...).
					Value(&result.MinReplicas),
				huh.NewSelect[int]().
					Title("Maximum Replicas").
					Options(MaxReplicaOptions...).
					Value(&result.MaxReplicas),
			).Title("Autoscaling Bounds"),
		).RunWithContext(ctx)
	}

	return nil
}

// runFeaturesGroup prompts for optional manifests.
func runFeaturesGroup(ctx context.Context, result *Result) error {
	result.EnabledFeatures = DefaultFeatures()

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Optional Manifests").
				Description("Select additional resources to render").
				Options(FeaturesToOptions()...).
				Value(&result.EnabledFeatures),
		).Title("Features"),
	).RunWithContext(ctx)
}

// validateReleaseName validates the release name format.
func validateReleaseName(s string) error {
	if s == "" {
		return errNameRequired
	}
	if len(validation.IsDNS1123Label(s)) > 0 {
		return errNameInvalid
	}
	return nil
}

// validateNamespace validates the namespace format. Empty falls back to
// the default namespace.
func validateNamespace(s string) error {
	if s == "" {
		return nil
	}
	if len(validation.IsDNS1123Label(s)) > 0 {
		return errNameInvalid
	}
	return nil
}

// validateImageRepository validates the image reference.
func validateImageRepository(s string) error {
	if s == "" {
		return errImageRequired
	}
	if strings.ContainsAny(s, " \t") {
		return errImageInvalid
	}
	// The tag is asked separately; a digest-less colon means one was
	// pasted into the repository field.
	if idx := strings.LastIndex(s, ":"); idx > strings.LastIndex(s, "/") {
		return errImageInvalid
	}
	return nil
}

// validatePort validates a port number string.
func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return errPortInvalid
	}
	return nil
}

// validateHost validates an ingress hostname, wildcards allowed.
func validateHost(s string) error {
	if s == "" {
		return errHostRequired
	}
	if len(validation.IsWildcardDNS1123Subdomain(s)) > 0 && len(validation.IsDNS1123Subdomain(s)) > 0 {
		return errHostInvalid
	}
	return nil
}

// validatePassword enforces a minimum password length.
func validatePassword(s string) error {
	if s == "" {
		return errPasswordRequired
	}
	if len(s) < 8 {
		return errPasswordTooShort
	}
	return nil
}
