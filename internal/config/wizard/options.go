package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/imamik/webstamp/internal/config"
)

// ServiceTypeOptions contains the service types offered by the wizard.
var ServiceTypeOptions = []huh.Option[string]{
	huh.NewOption("ClusterIP (Recommended, internal only)", string(config.ServiceTypeClusterIP)),
	huh.NewOption("NodePort (Static port on every node)", string(config.ServiceTypeNodePort)),
	huh.NewOption("LoadBalancer (Cloud load balancer)", string(config.ServiceTypeLoadBalancer)),
}

// IngressClassOptions contains common ingress controllers.
var IngressClassOptions = []huh.Option[string]{
	huh.NewOption("nginx - Ingress NGINX controller", "nginx"),
	huh.NewOption("traefik - Traefik proxy", "traefik"),
	huh.NewOption("(cluster default)", ""),
}

// ReplicaCountOptions contains common replica counts.
var ReplicaCountOptions = []huh.Option[int]{
	huh.NewOption("1 (Development)", 1),
	huh.NewOption("2", 2),
	huh.NewOption("3 (Recommended for production)", 3),
	huh.NewOption("5", 5),
}

// MinReplicaOptions contains lower autoscaling bounds.
var MinReplicaOptions = []huh.Option[int]{
	huh.NewOption("1", 1),
	huh.NewOption("2", 2),
	huh.NewOption("3 (Recommended)", 3),
}

// MaxReplicaOptions contains upper autoscaling bounds.
var MaxReplicaOptions = []huh.Option[int]{
	huh.NewOption("5", 5),
	huh.NewOption("10 (Recommended)", 10),
	huh.NewOption("20", 20),
	huh.NewOption("30", 30),
}

// FeatureOption represents an optional manifest the wizard can enable.
type FeatureOption struct {
	Key         string
	Label       string
	Description string
	Default     bool
}

// Feature keys selectable in the wizard.
const (
	FeaturePDB            = "pdb"
	FeatureNetworkPolicy  = "networkpolicy"
	FeatureServiceMonitor = "servicemonitor"
	FeatureServiceAccount = "serviceaccount"
)

// Features contains the optional manifests shown in the wizard.
var Features = []FeatureOption{
	{Key: FeaturePDB, Label: "PodDisruptionBudget", Description: "Keep replicas up through node drains", Default: true},
	{Key: FeatureNetworkPolicy, Label: "NetworkPolicy", Description: "Restrict ingress traffic to the pods", Default: false},
	{Key: FeatureServiceMonitor, Label: "ServiceMonitor", Description: "Prometheus Operator scraping", Default: false},
	{Key: FeatureServiceAccount, Label: "ServiceAccount", Description: "Dedicated pod identity", Default: true},
}

// FeaturesToOptions converts the feature table to huh options.
func FeaturesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Features))
	for i, f := range Features {
		opts[i] = huh.NewOption(f.Label+" - "+f.Description, f.Key)
	}
	return opts
}

// DefaultFeatures returns the keys selected by default.
func DefaultFeatures() []string {
	keys := []string{}
	for _, f := range Features {
		if f.Default {
			keys = append(keys, f.Key)
		}
	}
	return keys
}
