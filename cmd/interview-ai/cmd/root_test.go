package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	deployer "interview-ai/internal/deploy"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, deployer.ExitOK},
		{"usage", &deployer.ExitError{Code: deployer.ExitUsage, Err: errors.New("bad flag")}, deployer.ExitUsage},
		{"wrapped failure", fmt.Errorf("deploy: %w", &deployer.ExitError{Code: deployer.ExitFailure}), deployer.ExitFailure},
		{"plain error", errors.New("config missing"), deployer.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
