package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"quickcicd/internal/prompt"
	"quickcicd/pkg/fsutil"
	"quickcicd/pkg/logger"
	"quickcicd/pkg/manifest"
	"quickcicd/pkg/template"
)

type Options struct {
	// Dir is the target directory; empty means the working directory.
	Dir      string
	Registry *template.Registry
	Prompter prompt.Prompter
	Probes   map[template.RuntimeKind]manifest.Probe
	Out      io.Writer
	Log      logrus.FieldLogger
}

type Generator struct {
	dir      string
	registry *template.Registry
	prompter prompt.Prompter
	probes   map[template.RuntimeKind]manifest.Probe
	out      io.Writer
	log      logrus.FieldLogger

	writeFile func(path string, data []byte, perm os.FileMode) error
}

// Result describes a run. Written lists the files on disk when Run returns,
// including after a failed write.
type Result struct {
	Profile template.Profile
	Written []string
}

func New(opts Options) *Generator {
	g := &Generator{
		dir:      opts.Dir,
		registry: opts.Registry,
		prompter: opts.Prompter,
		probes:   opts.Probes,
		out:      opts.Out,
		log:      opts.Log,

		writeFile: fsutil.WriteFileAtomic,
	}
	if g.dir == "" {
		g.dir = "."
	}
	if g.registry == nil {
		g.registry = template.NewRegistry()
	}
	if g.out == nil {
		g.out = io.Discard
	}
	if g.log == nil {
		g.log = logger.Discard()
	}
	if g.probes == nil {
		g.probes = map[template.RuntimeKind]manifest.Probe{}
	}
	return g
}

// Run executes check, prompt, dispatch, render+write and report in order.
// A cancelled ctx stops the run before rendering and before each write.
// Writes are not transactional: when one fails the files written before it
// stay on disk and are listed in the returned Result.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	if err := g.checkCollisions(template.CanonicalFiles()); err != nil {
		return nil, err
	}

	typ, err := g.selectType()
	if err != nil {
		return nil, err
	}
	g.log.WithField("type", typ).Debug("project type selected")

	profile, err := g.acquireProfile(ctx, typ)
	if err != nil {
		return nil, err
	}
	g.log.WithFields(logrus.Fields{
		"name":    profile.Name,
		"runtime": profile.RuntimeVersion,
		"cache":   profile.CacheKey,
	}).Debug("profile acquired")

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	artifacts, err := g.registry.Render(profile)
	if err != nil {
		if errors.Is(err, template.ErrComingSoon) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedProjectType, err)
		}
		return nil, fmt.Errorf("failed to render templates: %w", err)
	}

	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Name
	}
	if err := g.checkCollisions(names); err != nil {
		return nil, err
	}

	result := &Result{Profile: profile}
	err = g.write(ctx, artifacts, result)
	return result, err
}

func (g *Generator) checkCollisions(names []string) error {
	found, err := fsutil.Existing(g.dir, names)
	if err != nil {
		return fmt.Errorf("failed to check target directory: %w", err)
	}
	if len(found) > 0 {
		return fmt.Errorf("%w in %s: %s", ErrPreconditionConflict, g.displayDir(), strings.Join(found, ", "))
	}
	return nil
}

type menuItem struct {
	label string
	sub   []template.ProjectType
}

var typeMenu = []menuItem{
	{label: "Frontend", sub: []template.ProjectType{template.TypeFrontendReact, template.TypeFrontendVite}},
	{label: "Backend", sub: []template.ProjectType{template.TypeNodeBackend, template.TypeLaravelBackend, template.TypePythonBackend}},
}

func (g *Generator) selectType() (template.ProjectType, error) {
	labels := make([]string, len(typeMenu))
	for i, item := range typeMenu {
		labels[i] = item.label
	}

	idx, err := g.prompter.Select("Select project type:", labels)
	if err != nil {
		return "", err
	}
	item := typeMenu[idx]

	question := "Select framework:"
	if item.label == "Backend" {
		question = "Select language:"
	}

	options := make([]string, len(item.sub))
	for i, t := range item.sub {
		info, ok := g.registry.Info(t)
		if !ok {
			return "", fmt.Errorf("template set %q not found", t)
		}
		options[i] = info.Label
	}

	idx, err = g.prompter.Select(question, options)
	if err != nil {
		return "", err
	}
	typ := item.sub[idx]

	if info, _ := g.registry.Info(typ); info.ComingSoon {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProjectType, info.Label)
	}
	return typ, nil
}

// acquireProfile checks the manifest before asking any free-text question.
func (g *Generator) acquireProfile(ctx context.Context, typ template.ProjectType) (template.Profile, error) {
	kind := typ.Runtime()

	var defName string
	switch kind {
	case template.RuntimeNode:
		pkg, err := manifest.ReadPackage(g.dir)
		if err != nil {
			return template.Profile{}, err
		}
		defName = template.SanitizeName(pkg.Name)
	case template.RuntimePHP:
		if _, err := manifest.ReadComposer(g.dir); err != nil {
			return template.Profile{}, err
		}
		defName = template.SanitizeName(filepath.Base(g.absDir()))
	default:
		return template.Profile{}, fmt.Errorf("%w: %s", ErrUnsupportedProjectType, typ)
	}

	defRuntime := ""
	if probe, ok := g.probes[kind]; ok {
		version, err := probe.Version(ctx)
		if err != nil {
			g.log.WithError(err).Warnf("could not detect local %s version", kind)
		} else {
			defRuntime = kind.ImageRef(version)
		}
	}

	name, err := g.prompter.Input("Project name", defName)
	if err != nil {
		return template.Profile{}, err
	}
	runtime, err := g.prompter.Input("Runtime image", defRuntime)
	if err != nil {
		return template.Profile{}, err
	}
	cache, err := g.prompter.Input("Pipelines cache", kind.DefaultCacheKey())
	if err != nil {
		return template.Profile{}, err
	}

	profile := template.Profile{
		Type:           typ,
		Name:           strings.TrimSpace(name),
		RuntimeVersion: kind.ImageRef(runtime),
		CacheKey:       strings.TrimSpace(cache),
	}
	if err := profile.Validate(); err != nil {
		return template.Profile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return profile, nil
}

func (g *Generator) write(ctx context.Context, artifacts []template.Artifact, result *Result) error {
	fmt.Fprintln(g.out)
	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(g.dir, a.Name)
		if err := g.writeFile(path, []byte(a.Content), fileMode(a.Name)); err != nil {
			fmt.Fprintln(g.out, "✖ Error creating files.")
			if len(result.Written) > 0 {
				fmt.Fprintf(g.out, "  Already written: %s\n", strings.Join(result.Written, ", "))
			}
			return fmt.Errorf("%w %s: %w", ErrWriteFailure, a.Name, err)
		}
		result.Written = append(result.Written, a.Name)
		fmt.Fprintf(g.out, "✔ Created %s\n", a.Name)
	}
	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, "✔ Files created successfully.")
	return nil
}

func fileMode(name string) os.FileMode {
	if strings.HasSuffix(name, ".sh") {
		return 0755
	}
	return 0644
}

func (g *Generator) absDir() string {
	abs, err := filepath.Abs(g.dir)
	if err != nil {
		return g.dir
	}
	return abs
}

func (g *Generator) displayDir() string {
	if g.dir == "." {
		return "the current directory"
	}
	return g.dir
}
