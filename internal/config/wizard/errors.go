package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errNameRequired     = errors.New("release name is required")
	errNameInvalid      = errors.New("release name must be 1-63 lowercase alphanumeric characters or hyphens, starting and ending with alphanumeric")
	errImageRequired    = errors.New("image repository is required")
	errImageInvalid     = errors.New("image repository must not contain whitespace or a tag")
	errPortInvalid      = errors.New("port must be a number between 1 and 65535")
	errHostRequired     = errors.New("hostname is required when ingress is enabled")
	errHostInvalid      = errors.New("hostname must be a valid DNS name (wildcards like *.example.com allowed)")
	errPasswordRequired = errors.New("password is required when basic auth is enabled")
	errPasswordTooShort = errors.New("password must be at least 8 characters")
)
