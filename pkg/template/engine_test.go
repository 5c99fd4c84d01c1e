package template

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func profileFor(t ProjectType) Profile {
	switch t.Runtime() {
	case RuntimePHP:
		return Profile{Type: t, Name: "demo-app", RuntimeVersion: "php:8.2", CacheKey: "composer"}
	default:
		return Profile{Type: t, Name: "demo-app", RuntimeVersion: "node:20.16.0", CacheKey: "npm"}
	}
}

// Dockerfile and bitbucket-pipelines.yml only carry the runtime image.
var interpolatesName = map[string]bool{
	"docker-compose.yml":  true,
	"ecosystem.config.js": true,
	"deploy.sh":           true,
	"env.example":         true,
	"example.env":         true,
}

func TestRender_ArtifactSets(t *testing.T) {
	registry := NewRegistry()

	expected := map[ProjectType][]string{
		TypeFrontendReact:  {"Dockerfile", "docker-compose.yml", "ecosystem.config.js", "deploy.sh", "bitbucket-pipelines.yml", "env.example"},
		TypeFrontendVite:   {"Dockerfile", "docker-compose.yml", "ecosystem.config.js", "deploy.sh", "bitbucket-pipelines.yml", "env.example"},
		TypeNodeBackend:    {"Dockerfile", "docker-compose.yml", "ecosystem.config.js", "deploy.sh", "bitbucket-pipelines.yml", "env.example"},
		TypeLaravelBackend: {"Dockerfile", "docker-compose.yml", "deploy.sh", "bitbucket-pipelines.yml", "example.env", "docker/nginx/default.conf"},
	}

	for typ, files := range expected {
		t.Run(string(typ), func(t *testing.T) {
			artifacts, err := registry.Render(profileFor(typ))
			require.NoError(t, err)

			names := make([]string, len(artifacts))
			for i, a := range artifacts {
				names[i] = a.Name
				assert.NotEmpty(t, a.Content, a.Name)
				if interpolatesName[a.Name] {
					assert.Contains(t, a.Content, "demo-app", a.Name)
				}
			}
			assert.Equal(t, files, names)
		})
	}
}

func TestRender_NodeBackendExample(t *testing.T) {
	registry := NewRegistry()

	artifacts, err := registry.Render(Profile{
		Type:           TypeNodeBackend,
		Name:           "demo-app",
		RuntimeVersion: "node:20.16.0",
		CacheKey:       "npm",
	})
	require.NoError(t, err)

	files := make(map[string]string)
	for _, a := range artifacts {
		files[a.Name] = a.Content
	}

	assert.Contains(t, files["Dockerfile"], "FROM node:20.16.0")
	assert.Contains(t, files["docker-compose.yml"], "image: demo-app")
	assert.Contains(t, files["docker-compose.yml"], "container_name: demo-app")
	assert.Contains(t, files["bitbucket-pipelines.yml"], "image: node:20.16.0")
	assert.Contains(t, files["bitbucket-pipelines.yml"], "- npm")
}

func TestRender_BareVersionGetsImagePrefix(t *testing.T) {
	registry := NewRegistry()

	artifacts, err := registry.Render(Profile{Type: TypeLaravelBackend, Name: "shop", RuntimeVersion: "8.3", CacheKey: "composer"})
	require.NoError(t, err)
	assert.Contains(t, artifacts[0].Content, "FROM php:8.3-fpm")
}

func TestRender_Deterministic(t *testing.T) {
	registry := NewRegistry()

	for _, info := range registry.Types() {
		if info.ComingSoon {
			continue
		}
		first, err := registry.Render(profileFor(info.Type))
		require.NoError(t, err)
		second, err := NewRegistry().Render(profileFor(info.Type))
		require.NoError(t, err)
		assert.Equal(t, first, second, info.Type)
	}
}

func TestRender_ComingSoon(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Render(Profile{Type: TypePythonBackend, Name: "x", RuntimeVersion: "python:3.12", CacheKey: "pip"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrComingSoon))
}

func TestRender_UnknownType(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Render(Profile{Type: ProjectType("ruby"), Name: "x"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRender_GarbageInterpolatedVerbatim(t *testing.T) {
	registry := NewRegistry()

	artifacts, err := registry.Render(Profile{Type: TypeFrontendReact, Name: "<weird name>", RuntimeVersion: "node:??", CacheKey: "npm"})
	require.NoError(t, err)
	assert.Contains(t, artifacts[1].Content, "container_name: <weird name>")
}

func TestRegistry_UniqueNamesPerType(t *testing.T) {
	registry := NewRegistry()

	for _, info := range registry.Types() {
		seen := make(map[string]bool)
		for _, f := range info.Files {
			assert.False(t, seen[f], "%s declares %s twice", info.Type, f)
			seen[f] = true
		}
	}
}

func TestRegistry_DuplicateNamePanics(t *testing.T) {
	r := &Registry{sets: make(map[ProjectType]*templateSet)}

	assert.Panics(t, func() {
		r.add(TypeFrontendReact, "dup", nil, []fileSource{
			{"Dockerfile", "FROM {{.Image}}"},
			{"Dockerfile", "FROM {{.Image}}"},
		})
	})
}

func TestRegistry_Types(t *testing.T) {
	registry := NewRegistry()

	types := registry.Types()
	require.Len(t, types, 5)
	assert.Equal(t, TypeFrontendReact, types[0].Type)
	assert.Equal(t, TypePythonBackend, types[4].Type)
	assert.True(t, types[4].ComingSoon)
	assert.Empty(t, types[4].Files)
	for _, info := range types[:4] {
		assert.False(t, info.ComingSoon)
		assert.NotEmpty(t, info.Label)
	}
}

func TestRegistry_Ports(t *testing.T) {
	registry := NewRegistry()

	assert.Equal(t, []string{"3000:3000"}, registry.Ports(TypeFrontendReact))
	assert.Contains(t, registry.Ports(TypeNodeBackend), "3306:3306")
	assert.Empty(t, registry.Ports(TypePythonBackend))

	ports := registry.Ports(TypeFrontendReact)
	ports[0] = "mutated"
	assert.Equal(t, []string{"3000:3000"}, registry.Ports(TypeFrontendReact))
}

func TestRegistry_PortsMatchCompose(t *testing.T) {
	registry := NewRegistry()

	for _, info := range registry.Types() {
		if info.ComingSoon {
			continue
		}
		artifacts, err := registry.Render(profileFor(info.Type))
		require.NoError(t, err)
		compose := artifacts[1]
		require.Equal(t, "docker-compose.yml", compose.Name)
		for _, p := range registry.Ports(info.Type) {
			assert.Contains(t, compose.Content, `"`+p+`"`, info.Type)
		}
	}
}

func TestTemplateFiles_ValidYAML(t *testing.T) {
	registry := NewRegistry()

	for _, info := range registry.Types() {
		if info.ComingSoon {
			continue
		}
		artifacts, err := registry.Render(profileFor(info.Type))
		require.NoError(t, err)

		for _, a := range artifacts {
			if !strings.HasSuffix(a.Name, ".yml") {
				continue
			}
			var doc map[string]interface{}
			require.NoError(t, yaml.Unmarshal([]byte(a.Content), &doc), "%s %s", info.Type, a.Name)
			assert.NotEmpty(t, doc)
		}
	}
}

func TestPipelineBranchesMatchPipelines(t *testing.T) {
	artifacts, err := NewRegistry().Render(profileFor(TypeNodeBackend))
	require.NoError(t, err)

	var pipelines struct {
		Pipelines struct {
			Branches map[string]interface{} `yaml:"branches"`
		} `yaml:"pipelines"`
	}
	for _, a := range artifacts {
		if a.Name == "bitbucket-pipelines.yml" {
			require.NoError(t, yaml.Unmarshal([]byte(a.Content), &pipelines))
		}
	}

	var declared []string
	for b := range pipelines.Pipelines.Branches {
		declared = append(declared, b)
	}
	assert.ElementsMatch(t, PipelineBranches(), declared)
}

func TestTemplateFiles_Snapshots(t *testing.T) {
	registry := NewRegistry()

	for _, info := range registry.Types() {
		if info.ComingSoon {
			continue
		}
		t.Run(string(info.Type), func(t *testing.T) {
			artifacts, err := registry.Render(profileFor(info.Type))
			require.NoError(t, err)
			for _, a := range artifacts {
				snaps.MatchSnapshot(t, a.Name, a.Content)
			}
		})
	}
}

func TestParseProjectType(t *testing.T) {
	for _, typ := range allTypes {
		got, err := ParseProjectType(" " + strings.ToUpper(string(typ)) + " ")
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	_, err := ParseProjectType("frontend-(react or next.js)")
	assert.Error(t, err)
}

func TestRuntimeKind(t *testing.T) {
	assert.Equal(t, RuntimeNode, TypeFrontendVite.Runtime())
	assert.Equal(t, RuntimePHP, TypeLaravelBackend.Runtime())
	assert.Equal(t, RuntimeKind(""), TypePythonBackend.Runtime())

	assert.Equal(t, "npm", RuntimeNode.DefaultCacheKey())
	assert.Equal(t, "composer", RuntimePHP.DefaultCacheKey())

	assert.Equal(t, "node:20.16.0", RuntimeNode.ImageRef("20.16.0"))
	assert.Equal(t, "node:20-alpine", RuntimeNode.ImageRef("node:20-alpine"))
	assert.Equal(t, "", RuntimeNode.ImageRef("  "))

	assert.Equal(t, "node:20.16.0", RuntimeNode.BaseImage("20.16.0"))
	assert.Equal(t, "php:8.2.12-fpm", RuntimePHP.BaseImage("8.2.12"))
	assert.Equal(t, "php:8.2-fpm", RuntimePHP.BaseImage("php:8.2-fpm"))
	assert.Equal(t, "", RuntimePHP.BaseImage(""))
}

func TestRender_LaravelNginxConfigMatchesCompose(t *testing.T) {
	artifacts, err := NewRegistry().Render(profileFor(TypeLaravelBackend))
	require.NoError(t, err)

	files := make(map[string]string)
	for _, a := range artifacts {
		files[a.Name] = a.Content
	}

	var compose struct {
		Services map[string]struct {
			Volumes []string `yaml:"volumes"`
		} `yaml:"services"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(files["docker-compose.yml"]), &compose))
	require.Contains(t, compose.Services, "app")
	assert.Contains(t, compose.Services["webserver"].Volumes, "./docker/nginx:/etc/nginx/conf.d")

	conf, ok := files["docker/nginx/default.conf"]
	require.True(t, ok, "nginx config mounted by the webserver service is generated")
	assert.Contains(t, conf, "fastcgi_pass app:9000;")
	assert.Contains(t, conf, "root /var/www/public;")
	assert.Contains(t, files["Dockerfile"], "EXPOSE 9000")
}

func TestRender_LaravelDockerfileMatchesBaseImage(t *testing.T) {
	artifacts, err := NewRegistry().Render(Profile{Type: TypeLaravelBackend, Name: "shop", RuntimeVersion: "php:8.2.12", CacheKey: "composer"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(artifacts[0].Content, "FROM "+RuntimePHP.BaseImage("8.2.12")+"\n"))
}

func TestProfileValidate(t *testing.T) {
	valid := Profile{Type: TypeNodeBackend, Name: "demo-app", RuntimeVersion: "node:20.16.0", CacheKey: "npm"}
	assert.NoError(t, valid.Validate())

	cases := map[string]Profile{
		"empty name":     {Name: "", RuntimeVersion: "node:20", CacheKey: "npm"},
		"upper case":     {Name: "Demo", RuntimeVersion: "node:20", CacheKey: "npm"},
		"path separator": {Name: "a/b", RuntimeVersion: "node:20", CacheKey: "npm"},
		"no runtime":     {Name: "demo", CacheKey: "npm"},
		"no cache":       {Name: "demo", RuntimeVersion: "node:20"},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, p.Validate())
		})
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"demo-app":        "demo-app",
		"@acme/Web-Shop":  "web-shop",
		"My Project":      "my-project",
		"  spaced  ":      "spaced",
		"_private.pkg":    "private.pkg",
		"émoji✨name":      "mojiname",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeName(in), in)
	}
}

func TestCanonicalFiles(t *testing.T) {
	files := CanonicalFiles()
	assert.Len(t, files, 5)
	assert.NotContains(t, files, "env.example")
}
