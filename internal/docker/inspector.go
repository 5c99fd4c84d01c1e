package docker

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
)

// Inspector answers read-only questions about the local Docker engine.
type Inspector struct {
	cli *client.Client
}

// NewInspector creates a client from the environment (DOCKER_HOST etc).
// Creating the client does not contact the daemon.
func NewInspector() (*Inspector, error) {
	cli, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Inspector{cli: cli}, nil
}

type EngineInfo struct {
	ServerVersion string
	APIVersion    string
	OS            string
	Arch          string
}

// Engine pings the daemon and returns its version.
func (i *Inspector) Engine(ctx context.Context) (*EngineInfo, error) {
	if _, err := i.cli.Ping(ctx); err != nil {
		return nil, fmt.Errorf("docker daemon not reachable: %w", err)
	}

	v, err := i.cli.ServerVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get docker version: %w", err)
	}

	return &EngineInfo{
		ServerVersion: v.Version,
		APIVersion:    v.APIVersion,
		OS:            v.Os,
		Arch:          v.Arch,
	}, nil
}

// HasImage reports whether ref ("node:20.16.0") is present locally.
func (i *Inspector) HasImage(ctx context.Context, ref string) (bool, error) {
	images, err := i.cli.ImageList(ctx, image.ListOptions{
		Filters: filters.NewArgs(filters.Arg("reference", ref)),
	})
	if err != nil {
		return false, fmt.Errorf("failed to list images: %w", err)
	}
	return len(images) > 0, nil
}

func (i *Inspector) Close() error {
	return i.cli.Close()
}

// ComposeCommand returns the compose invocation available on PATH, preferring
// the docker CLI plugin over the standalone binary. It returns nil when
// neither is installed.
func ComposeCommand(ctx context.Context) []string {
	cmd := exec.CommandContext(ctx, "docker", "compose", "version")
	if err := cmd.Run(); err == nil {
		return []string{"docker", "compose"}
	}
	if _, err := exec.LookPath("docker-compose"); err == nil {
		return []string{"docker-compose"}
	}
	return nil
}
