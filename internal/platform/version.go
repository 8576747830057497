package platform

import (
	_ "embed"
	"fmt"
	"strings"
)

// ProjectURL identifies the client to the remote API.
const ProjectURL = "https://github.com/aretw0/memedir"

//go:embed VERSION
var version string

// Version returns the embedded release version.
func Version() string {
	return strings.TrimSpace(version)
}

// UserAgent builds a versioned User-Agent, e.g. "memedir/0.1.0 (https://github.com/aretw0/memedir)".
func UserAgent() string {
	return fmt.Sprintf("memedir/%s (%s)", Version(), ProjectURL)
}
