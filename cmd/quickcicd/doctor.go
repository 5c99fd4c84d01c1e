package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"quickcicd/internal/docker"
	"quickcicd/pkg/git"
	"quickcicd/pkg/manifest"
	"quickcicd/pkg/template"
)

var doctorType string

type checkStatus int

const (
	checkOK checkStatus = iota
	checkWarn
	checkFail
)

type check struct {
	Name   string
	Status checkStatus
	Detail string
}

func (c check) icon() string {
	switch c.Status {
	case checkOK:
		return "✅"
	case checkWarn:
		return "⚠️ "
	default:
		return "❌"
	}
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that this machine and project can use the generated files",
	Long: `Inspect the Docker engine, the project manifest, the local runtime and
any files generated earlier in the current directory.

Pass --type to also check that the ports its docker-compose.yml publishes
are free on this host.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var typ template.ProjectType
		if doctorType != "" {
			typ, err = template.ParseProjectType(doctorType)
			if err != nil {
				return err
			}
			currentRun.ProjectType = string(typ)
		}

		ctx := cmd.Context()
		var checks []check

		inspector, engineCheck := checkEngine(ctx)
		checks = append(checks, engineCheck)
		if inspector != nil {
			defer inspector.Close()
		}

		if compose := docker.ComposeCommand(ctx); compose != nil {
			checks = append(checks, check{Name: "Compose", Detail: strings.Join(compose, " ")})
		} else {
			checks = append(checks, check{Name: "Compose", Status: checkWarn, Detail: "neither 'docker compose' nor docker-compose found"})
		}

		kind := typ.Runtime()
		if typ == "" {
			kind = detectRuntime(".")
		}
		checks = append(checks, checkManifest(".", kind))

		if kind != "" {
			probe := probesFor(cfg)[kind]
			checks = append(checks, checkRuntime(ctx, inspector, kind, probe.Version))
		}

		if typ != "" {
			checks = append(checks, checkPorts(template.NewRegistry().Ports(typ))...)
		}

		checks = append(checks, checkRepo(git.NewRepo(".")))
		checks = append(checks, checkGeneratedFiles(".")...)

		failed := printChecks(cmd.OutOrStdout(), checks)
		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

func checkEngine(ctx context.Context) (*docker.Inspector, check) {
	c := check{Name: "Docker"}

	inspector, err := docker.NewInspector()
	if err != nil {
		c.Status, c.Detail = checkWarn, err.Error()
		return nil, c
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	info, err := inspector.Engine(ctx)
	if err != nil {
		inspector.Close()
		c.Status, c.Detail = checkWarn, err.Error()
		return nil, c
	}

	c.Detail = fmt.Sprintf("Engine %s (API %s, %s/%s)", info.ServerVersion, info.APIVersion, info.OS, info.Arch)
	return inspector, c
}

// detectRuntime guesses the runtime from whichever manifest is present.
func detectRuntime(dir string) template.RuntimeKind {
	switch {
	case manifest.Exists(dir, manifest.PackageJSON):
		return template.RuntimeNode
	case manifest.Exists(dir, manifest.ComposerJSON):
		return template.RuntimePHP
	default:
		return ""
	}
}

func checkManifest(dir string, kind template.RuntimeKind) check {
	c := check{Name: "Manifest"}
	switch kind {
	case template.RuntimeNode:
		pkg, err := manifest.ReadPackage(dir)
		if err != nil {
			c.Status, c.Detail = checkFail, err.Error()
			return c
		}
		c.Detail = fmt.Sprintf("%s (%s)", manifest.PackageJSON, pkg.Name)
		if pkg.NodeEngine != "" {
			c.Detail += ", engines.node " + pkg.NodeEngine
		}
	case template.RuntimePHP:
		composer, err := manifest.ReadComposer(dir)
		if err != nil {
			c.Status, c.Detail = checkFail, err.Error()
			return c
		}
		c.Detail = manifest.ComposerJSON
		if composer.Name != "" {
			c.Detail += " (" + composer.Name + ")"
		}
	default:
		c.Status = checkWarn
		c.Detail = fmt.Sprintf("no %s or %s in this directory", manifest.PackageJSON, manifest.ComposerJSON)
	}
	return c
}

func checkRuntime(ctx context.Context, inspector *docker.Inspector, kind template.RuntimeKind, version func(context.Context) (string, error)) check {
	c := check{Name: "Runtime"}

	v, err := version(ctx)
	if err != nil {
		c.Status, c.Detail = checkWarn, err.Error()
		return c
	}

	ref := kind.BaseImage(v)
	c.Detail = fmt.Sprintf("local %s %s, base image %s", kind, v, ref)
	if inspector == nil {
		return c
	}

	ok, err := inspector.HasImage(ctx, ref)
	switch {
	case err != nil:
		c.Status = checkWarn
		c.Detail += fmt.Sprintf(" (image lookup failed: %v)", err)
	case ok:
		c.Detail += " (pulled)"
	default:
		c.Detail += " (not pulled yet)"
	}
	return c
}

func checkPorts(specs []string) []check {
	statuses, err := docker.CheckPorts(specs)
	if err != nil {
		return []check{{Name: "Ports", Status: checkFail, Detail: err.Error()}}
	}

	var checks []check
	for _, s := range statuses {
		c := check{Name: fmt.Sprintf("Port %d", s.HostPort), Detail: s.Spec}
		if !s.Available {
			c.Status = checkWarn
			c.Detail += " (host port in use)"
		}
		checks = append(checks, c)
	}
	return checks
}

func checkRepo(repo *git.Repo) check {
	c := check{Name: "Git"}
	if !repo.HasGitRepo() {
		c.Status, c.Detail = checkWarn, "not a git repository; deploy.sh runs 'git pull'"
		return c
	}

	var notes []string
	branch, err := repo.CurrentBranch()
	if err != nil {
		notes = append(notes, err.Error())
	} else {
		notes = append(notes, "branch "+branch)
		if !slices.Contains(template.PipelineBranches(), branch) {
			c.Status = checkWarn
			notes = append(notes, fmt.Sprintf("no deploy step for this branch (only %s)", strings.Join(template.PipelineBranches(), ", ")))
		}
	}

	url, err := repo.RemoteURL("origin")
	switch {
	case err != nil:
		c.Status = checkWarn
		notes = append(notes, "no origin remote")
	case !git.IsBitbucketRemote(url):
		c.Status = checkWarn
		notes = append(notes, "origin is not on bitbucket.org")
	default:
		notes = append(notes, "origin "+url)
	}

	c.Detail = strings.Join(notes, ", ")
	return c
}

// checkGeneratedFiles validates files left by an earlier run. Missing files
// are skipped.
func checkGeneratedFiles(dir string) []check {
	var checks []check

	for _, name := range []string{"docker-compose.yml", "bitbucket-pipelines.yml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue
		}
		c := check{Name: name, Detail: "valid YAML"}
		if err != nil {
			c.Status, c.Detail = checkFail, err.Error()
		} else if err := validateYAML(data); err != nil {
			c.Status, c.Detail = checkFail, err.Error()
		}
		checks = append(checks, c)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Dockerfile"))
	if err == nil {
		c := check{Name: "Dockerfile"}
		if from := dockerfileBase(string(data)); from != "" {
			c.Detail = "FROM " + from
		} else {
			c.Status, c.Detail = checkFail, "no FROM instruction"
		}
		checks = append(checks, c)
	} else if !os.IsNotExist(err) {
		checks = append(checks, check{Name: "Dockerfile", Status: checkFail, Detail: err.Error()})
	}

	return checks
}

func validateYAML(data []byte) error {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	if len(doc) == 0 {
		return fmt.Errorf("empty document")
	}
	return nil
}

// dockerfileBase returns the image of the first FROM instruction.
func dockerfileBase(content string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && strings.EqualFold(fields[0], "FROM") {
			return fields[1]
		}
	}
	return ""
}

func printChecks(out io.Writer, checks []check) int {
	failed := 0
	fmt.Fprintln(out, "🩺 quickcicd doctor")
	fmt.Fprintln(out, "────────────────────────────────────────────────")
	for _, c := range checks {
		fmt.Fprintf(out, "%s %-24s %s\n", c.icon(), c.Name, c.Detail)
		if c.Status == checkFail {
			failed++
		}
	}
	fmt.Fprintln(out, "────────────────────────────────────────────────")
	return failed
}

func init() {
	doctorCmd.Flags().StringVarP(&doctorType, "type", "t", "", "Project type whose published ports should be checked")
	rootCmd.AddCommand(doctorCmd)
}
