package template

import (
	"fmt"
	"regexp"
	"strings"
)

type ProjectType string

const (
	TypeFrontendReact  ProjectType = "frontend-react"
	TypeFrontendVite   ProjectType = "frontend-vite"
	TypeNodeBackend    ProjectType = "node-backend"
	TypeLaravelBackend ProjectType = "php-laravel-backend"
	TypePythonBackend  ProjectType = "python-backend"
)

// allTypes is the canonical order used for prompts and listings.
var allTypes = []ProjectType{
	TypeFrontendReact,
	TypeFrontendVite,
	TypeNodeBackend,
	TypeLaravelBackend,
	TypePythonBackend,
}

// ParseProjectType validates a user or flag supplied label.
func ParseProjectType(s string) (ProjectType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range allTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown project type %q", s)
}

func (t ProjectType) String() string {
	return string(t)
}

type RuntimeKind string

const (
	RuntimeNode RuntimeKind = "node"
	RuntimePHP  RuntimeKind = "php"
)

// Runtime reports which toolchain a project type builds on. Placeholder types
// report an empty kind.
func (t ProjectType) Runtime() RuntimeKind {
	switch t {
	case TypeFrontendReact, TypeFrontendVite, TypeNodeBackend:
		return RuntimeNode
	case TypeLaravelBackend:
		return RuntimePHP
	default:
		return ""
	}
}

// DefaultCacheKey is the Bitbucket pipelines cache used for the runtime.
func (k RuntimeKind) DefaultCacheKey() string {
	switch k {
	case RuntimeNode:
		return "npm"
	case RuntimePHP:
		return "composer"
	default:
		return ""
	}
}

// ImageRef turns a bare version ("20.16.0") into a base image reference
// ("node:20.16.0"). Values that already carry a tag separator are returned
// unchanged.
func (k RuntimeKind) ImageRef(version string) string {
	version = strings.TrimSpace(version)
	if version == "" || strings.Contains(version, ":") {
		return version
	}
	return string(k) + ":" + version
}

// BaseImage is the image the generated Dockerfile builds FROM. PHP projects
// run under php-fpm behind nginx.
func (k RuntimeKind) BaseImage(version string) string {
	ref := k.ImageRef(version)
	if k == RuntimePHP && ref != "" && !strings.HasSuffix(ref, "-fpm") {
		return ref + "-fpm"
	}
	return ref
}

// Profile is the validated set of answers a run generates files for.
type Profile struct {
	Type           ProjectType
	Name           string
	RuntimeVersion string
	CacheKey       string
}

var projectNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if !projectNamePattern.MatchString(p.Name) {
		return fmt.Errorf("invalid project name %q: use lowercase letters, digits, '.', '_' or '-'", p.Name)
	}
	if p.RuntimeVersion == "" {
		return fmt.Errorf("runtime version is required")
	}
	if p.CacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	return nil
}

// SanitizeName maps an arbitrary manifest name to a docker friendly project
// name. The npm scope of "@acme/web" is dropped.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}
	name = strings.ToLower(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '/':
			b.WriteRune('-')
		}
	}
	return strings.TrimLeft(b.String(), "._-")
}

type Artifact struct {
	Name    string
	Content string
}

type TypeInfo struct {
	Type       ProjectType
	Label      string
	ComingSoon bool
	Files      []string
}
