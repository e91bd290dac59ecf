package deploy

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Restarter restarts the deployed service
type Restarter interface {
	Restart(ctx context.Context, service string) error
}

// CommandRestarter runs a command with the service name appended,
// "systemctl restart <service>" by default.
type CommandRestarter struct {
	Command []string
}

// Restart implements Restarter
func (r CommandRestarter) Restart(ctx context.Context, service string) error {
	command := r.Command
	if len(command) == 0 {
		command = DefaultRestartCommand
	}
	args := append(append([]string{}, command[1:]...), service)

	out, err := exec.CommandContext(ctx, command[0], args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", command[0], strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
