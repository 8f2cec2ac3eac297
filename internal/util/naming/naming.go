// Package naming provides consistent naming functions for rendered resources.
//
// Most resources share the release name; resources that exist in multiples
// of the same kind carry a {release}-{suffix} name. All names are clamped
// to the 63-character DNS label limit, trimming trailing hyphens after the
// cut so the result stays a valid label.
package naming

import (
	"fmt"
	"strings"
)

// maxNameLength is the DNS-1123 label limit enforced by the API server.
const maxNameLength = 63

// Release returns the canonical resource name for a release. The Deployment,
// Service, ServiceAccount, ConfigMap, Secret, Ingress, HPA, PDB,
// NetworkPolicy, Role, RoleBinding, and ServiceMonitor all share it.
func Release(release string) string {
	return truncate(release)
}

// BasicAuthSecret returns the name of the htpasswd Secret backing ingress
// basic auth. It is separate from the application Secret so the two can be
// enabled independently.
func BasicAuthSecret(release string) string {
	return truncate(fmt.Sprintf("%s-basic-auth", release))
}

// TLSSecret returns the default TLS secret name for an ingress host block
// that did not configure one.
func TLSSecret(release string) string {
	return truncate(fmt.Sprintf("%s-tls", release))
}

// ChartArchive returns the file name chartutil.Save produces for a packaged
// chart, useful for deriving object storage keys.
func ChartArchive(name, version string) string {
	return fmt.Sprintf("%s-%s.tgz", name, version)
}

// truncate clamps a name to the DNS label limit, trimming trailing hyphens
// left over from the cut.
func truncate(name string) string {
	if len(name) <= maxNameLength {
		return name
	}
	return strings.TrimRight(name[:maxNameLength], "-")
}
