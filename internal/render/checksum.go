package render

import (
	"crypto/sha256"
	"encoding/hex"
)

// Pod annotation keys carrying configuration checksums. A change in
// the ConfigMap or Secret changes the annotation, which changes the
// pod template hash and triggers a rollout.
const (
	ChecksumConfigAnnotation = "checksum/config"
	ChecksumSecretAnnotation = "checksum/secret"
)

// Checksums holds the content digests of the release's ConfigMap and
// Secret. An empty field means the corresponding object is not part
// of the release.
type Checksums struct {
	Config string
	Secret string
}

// Checksum returns the hex-encoded SHA-256 digest of the encoded
// object bytes.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// annotations merges the checksum annotations into the given pod
// annotations. Nil is returned when there is nothing to annotate.
func (c Checksums) annotations(base map[string]string) map[string]string {
	if c.Config == "" && c.Secret == "" && len(base) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+2)
	for k, v := range base {
		out[k] = v
	}
	if c.Config != "" {
		out[ChecksumConfigAnnotation] = c.Config
	}
	if c.Secret != "" {
		out[ChecksumSecretAnnotation] = c.Secret
	}
	return out
}
