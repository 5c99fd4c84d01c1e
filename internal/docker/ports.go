package docker

import (
	"fmt"
	"net"
	"strconv"

	"github.com/docker/go-connections/nat"
)

type PortStatus struct {
	Spec          string
	HostPort      int
	ContainerPort int
	Protocol      string
	Available     bool
}

// CheckPorts parses compose style "host:container" specs and probes whether
// each host port can be bound.
func CheckPorts(specs []string) ([]PortStatus, error) {
	var statuses []PortStatus
	for _, spec := range specs {
		mappings, err := nat.ParsePortSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid port spec %q: %w", spec, err)
		}

		for _, m := range mappings {
			hostPort, err := strconv.Atoi(m.Binding.HostPort)
			if err != nil {
				return nil, fmt.Errorf("port spec %q has no host port", spec)
			}
			statuses = append(statuses, PortStatus{
				Spec:          spec,
				HostPort:      hostPort,
				ContainerPort: m.Port.Int(),
				Protocol:      m.Port.Proto(),
				Available:     isPortAvailable(hostPort),
			})
		}
	}
	return statuses, nil
}

func isPortAvailable(port int) bool {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	ln.Close()
	return true
}
