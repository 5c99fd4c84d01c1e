package template

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// ErrComingSoon is returned when a placeholder project type is rendered.
var ErrComingSoon = errors.New("project type is not supported yet")

// Entry is one output file of a project type.
type Entry struct {
	Name string
	tmpl *template.Template
}

// Render executes the entry against the profile.
func (e Entry) Render(p Profile) (string, error) {
	var buf strings.Builder
	if err := e.tmpl.Execute(&buf, newView(p)); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", e.Name, err)
	}
	return buf.String(), nil
}

type templateSet struct {
	label      string
	comingSoon bool
	ports      []string
	entries    []Entry
}

// Registry maps each project type to its ordered list of output files. It is
// built once and never mutated afterwards.
type Registry struct {
	sets map[ProjectType]*templateSet
}

type fileSource struct {
	name string
	body string
}

// NewRegistry builds the built-in registry. It panics when a template does not
// parse or a project type declares the same file twice.
func NewRegistry() *Registry {
	r := &Registry{sets: make(map[ProjectType]*templateSet)}

	r.add(TypeFrontendReact, "Frontend: React / Next.js", []string{"3000:3000"}, []fileSource{
		{"Dockerfile", frontendDockerfile},
		{"docker-compose.yml", frontendCompose},
		{"ecosystem.config.js", reactEcosystem},
		{"deploy.sh", frontendDeploy},
		{"bitbucket-pipelines.yml", bitbucketPipelines},
		{"env.example", reactEnv},
	})
	r.add(TypeFrontendVite, "Frontend: Vite (React / Vue)", []string{"4173:4173", "5173:5173"}, []fileSource{
		{"Dockerfile", viteDockerfile},
		{"docker-compose.yml", viteCompose},
		{"ecosystem.config.js", viteEcosystem},
		{"deploy.sh", frontendDeploy},
		{"bitbucket-pipelines.yml", bitbucketPipelines},
		{"env.example", viteEnv},
	})
	r.add(TypeNodeBackend, "Backend: Node.js (Express / NestJS)", []string{"3010:3010", "3306:3306", "8080:80", "6379:6379"}, []fileSource{
		{"Dockerfile", nodeDockerfile},
		{"docker-compose.yml", nodeCompose},
		{"ecosystem.config.js", nodeEcosystem},
		{"deploy.sh", nodeDeploy},
		{"bitbucket-pipelines.yml", bitbucketPipelines},
		{"env.example", nodeEnv},
	})
	r.add(TypeLaravelBackend, "Backend: PHP (Laravel)", []string{"8000:80", "3306:3306"}, []fileSource{
		{"Dockerfile", laravelDockerfile},
		{"docker-compose.yml", laravelCompose},
		{"deploy.sh", laravelDeploy},
		{"bitbucket-pipelines.yml", bitbucketPipelines},
		{"example.env", laravelEnv},
		{"docker/nginx/default.conf", laravelNginx},
	})
	r.sets[TypePythonBackend] = &templateSet{label: "Backend: Python (coming soon)", comingSoon: true}

	return r
}

func (r *Registry) add(t ProjectType, label string, ports []string, files []fileSource) {
	set := &templateSet{label: label, ports: ports}
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f.name] {
			panic(fmt.Sprintf("template: %s declares %s twice", t, f.name))
		}
		seen[f.name] = true
		tmpl := template.Must(template.New(string(t) + "/" + f.name).Option("missingkey=error").Parse(f.body))
		set.entries = append(set.entries, Entry{Name: f.name, tmpl: tmpl})
	}
	r.sets[t] = set
}

// Entries returns the ordered file list for t.
func (r *Registry) Entries(t ProjectType) ([]Entry, error) {
	set, ok := r.sets[t]
	if !ok {
		return nil, fmt.Errorf("template set %q not found", t)
	}
	if set.comingSoon {
		return nil, fmt.Errorf("%s: %w", set.label, ErrComingSoon)
	}
	out := make([]Entry, len(set.entries))
	copy(out, set.entries)
	return out, nil
}

// Render produces every artifact of the profile's type, in registry order.
func (r *Registry) Render(p Profile) ([]Artifact, error) {
	entries, err := r.Entries(p.Type)
	if err != nil {
		return nil, err
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, e := range entries {
		content, err := e.Render(p)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Name: e.Name, Content: content})
	}
	return artifacts, nil
}

// Ports lists the host:container mappings the compose file of t publishes.
func (r *Registry) Ports(t ProjectType) []string {
	set, ok := r.sets[t]
	if !ok {
		return nil
	}
	return append([]string(nil), set.ports...)
}

func (r *Registry) Info(t ProjectType) (TypeInfo, bool) {
	set, ok := r.sets[t]
	if !ok {
		return TypeInfo{}, false
	}
	files := make([]string, 0, len(set.entries))
	for _, e := range set.entries {
		files = append(files, e.Name)
	}
	return TypeInfo{Type: t, Label: set.label, ComingSoon: set.comingSoon, Files: files}, true
}

// Types lists every registered type in canonical order.
func (r *Registry) Types() []TypeInfo {
	infos := make([]TypeInfo, 0, len(allTypes))
	for _, t := range allTypes {
		if info, ok := r.Info(t); ok {
			infos = append(infos, info)
		}
	}
	return infos
}

// CanonicalFiles are the names checked for collisions before any prompt.
func CanonicalFiles() []string {
	return []string{
		"Dockerfile",
		"docker-compose.yml",
		"ecosystem.config.js",
		"deploy.sh",
		"bitbucket-pipelines.yml",
	}
}

// PipelineBranches are the branches bitbucket-pipelines.yml declares a deploy
// step for. Other branches only run the default pipeline.
func PipelineBranches() []string {
	return []string{"master", "main", "dev"}
}

type view struct {
	Name           string
	RuntimeVersion string
	Image          string
	BaseImage      string
	CacheKey       string
}

func newView(p Profile) view {
	return view{
		Name:           p.Name,
		RuntimeVersion: p.RuntimeVersion,
		Image:          p.Type.Runtime().ImageRef(p.RuntimeVersion),
		BaseImage:      p.Type.Runtime().BaseImage(p.RuntimeVersion),
		CacheKey:       p.CacheKey,
	}
}
