// Package render turns a validated release configuration into the full
// set of Kubernetes manifests for a web service.
//
// Rendering is pure and deterministic: the same Config always produces
// byte-identical output, regardless of host, time or invocation count.
// Builders construct typed API objects, [Render] encodes them through
// sigs.k8s.io/yaml (sorted keys) and orders the documents for safe
// sequential application.
//
// Builders assume the Config has been defaulted and validated; call
// [config.Config.ApplyDefaults] and [config.Config.Validate] first.
package render
