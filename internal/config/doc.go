// Package config defines the values model a release is rendered from.
//
// The [Config] struct is the canonical representation of a web service
// release: image reference, replica count, resources, probes, environment,
// service and ingress settings, autoscaling bounds, disruption budget,
// network policy rules, RBAC, service monitor, scheduling hints, and
// security contexts. It is produced by merging one or more values files
// with --set overrides, then defaulted and validated before rendering.
package config
