package errors

import (
	"net"
	"strconv"
	"strings"
	"unicode"
)

// ValidateInstanceName validates the name line of an instance file. The name
// is echoed into result lines and cache keys, so it must be printable and
// free of the CSV separator.
func ValidateInstanceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidFormat, "instance name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidFormat, "instance name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFormat, "instance name contains invalid control characters")
		}
	}

	if strings.Contains(name, ",") {
		return New(ErrCodeInvalidFormat, "instance name cannot contain commas: %q", name)
	}

	return nil
}

// ValidateOutputPath validates a path given for an output artifact.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory: %q", path)
	}

	return nil
}

// ValidateAddr validates a host:port network address.
func ValidateAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidInput, "address cannot be empty")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid address %q", addr)
	}
	if host == "" {
		return New(ErrCodeInvalidInput, "address %q has no host", addr)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 || p > 65535 {
		return New(ErrCodeInvalidInput, "address %q has invalid port", addr)
	}

	return nil
}
