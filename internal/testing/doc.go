// Package testing provides test utilities and builders shared across test files.
//
// This package centralizes common testing patterns to avoid duplication:
//   - ConfigBuilder: Fluent builder for creating release configurations
//   - MinimalConfig/FullConfig: canonical fixtures for quick tests
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithName("web").
//	    WithNamespace("prod").
//	    Build()
package testing
