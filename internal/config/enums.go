package config

// ServiceType is the Kubernetes Service type exposing the pods.
type ServiceType string

const (
	// ServiceTypeClusterIP exposes the Service on a cluster-internal IP.
	ServiceTypeClusterIP ServiceType = "ClusterIP"
	// ServiceTypeNodePort additionally opens a static port on every node.
	ServiceTypeNodePort ServiceType = "NodePort"
	// ServiceTypeLoadBalancer provisions an external load balancer.
	ServiceTypeLoadBalancer ServiceType = "LoadBalancer"
)

// ValidServiceTypes returns all valid service types.
func ValidServiceTypes() []ServiceType {
	return []ServiceType{ServiceTypeClusterIP, ServiceTypeNodePort, ServiceTypeLoadBalancer}
}

// IsValid returns true if the service type is valid.
func (s ServiceType) IsValid() bool {
	switch s {
	case ServiceTypeClusterIP, ServiceTypeNodePort, ServiceTypeLoadBalancer:
		return true
	default:
		return false
	}
}

// PullPolicy is the container image pull policy.
type PullPolicy string

const (
	// PullIfNotPresent pulls only when the image is missing on the node.
	PullIfNotPresent PullPolicy = "IfNotPresent"
	// PullAlways pulls on every pod start.
	PullAlways PullPolicy = "Always"
	// PullNever relies on a pre-loaded image.
	PullNever PullPolicy = "Never"
)

// ValidPullPolicies returns all valid pull policies.
func ValidPullPolicies() []PullPolicy {
	return []PullPolicy{PullIfNotPresent, PullAlways, PullNever}
}

// IsValid returns true if the pull policy is valid.
func (p PullPolicy) IsValid() bool {
	switch p {
	case PullIfNotPresent, PullAlways, PullNever:
		return true
	default:
		return false
	}
}

// PathType is the ingress path match type.
type PathType string

const (
	// PathTypePrefix matches on a "/"-split prefix of the URL path.
	PathTypePrefix PathType = "Prefix"
	// PathTypeExact matches the URL path exactly, case sensitively.
	PathTypeExact PathType = "Exact"
	// PathTypeImplementationSpecific defers matching to the ingress class.
	PathTypeImplementationSpecific PathType = "ImplementationSpecific"
)

// ValidPathTypes returns all valid path types.
func ValidPathTypes() []PathType {
	return []PathType{PathTypePrefix, PathTypeExact, PathTypeImplementationSpecific}
}

// IsValid returns true if the path type is valid.
func (p PathType) IsValid() bool {
	switch p {
	case PathTypePrefix, PathTypeExact, PathTypeImplementationSpecific:
		return true
	default:
		return false
	}
}

// AntiAffinityPreset spreads replicas across nodes.
type AntiAffinityPreset string

const (
	// AntiAffinityNone disables anti-affinity.
	AntiAffinityNone AntiAffinityPreset = ""
	// AntiAffinitySoft prefers spreading but still schedules co-located
	// pods when nodes are scarce.
	AntiAffinitySoft AntiAffinityPreset = "soft"
	// AntiAffinityHard refuses to co-locate replicas on one node.
	AntiAffinityHard AntiAffinityPreset = "hard"
)

// ValidAntiAffinityPresets returns all valid presets, the empty preset
// excluded.
func ValidAntiAffinityPresets() []AntiAffinityPreset {
	return []AntiAffinityPreset{AntiAffinitySoft, AntiAffinityHard}
}

// IsValid returns true if the preset is valid.
func (a AntiAffinityPreset) IsValid() bool {
	switch a {
	case AntiAffinityNone, AntiAffinitySoft, AntiAffinityHard:
		return true
	default:
		return false
	}
}
