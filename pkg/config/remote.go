package config

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/joho/godotenv"
)

// EnvSource supplies environment variables from outside the process.
type EnvSource interface {
	Fetch(ctx context.Context) (map[string]string, error)
	String() string
}

// CommandRunner runs name with args and returns its standard output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	var ee *exec.ExitError
	if errors.As(err, &ee) && len(ee.Stderr) > 0 {
		return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(ee.Stderr)))
	}
	return out, err
}

// HerokuSource reads the config vars of a Heroku app through the heroku CLI.
type HerokuSource struct {
	App string
	// Run defaults to executing the command.
	Run CommandRunner
}

func (h *HerokuSource) Fetch(ctx context.Context) (map[string]string, error) {
	if h.App == "" {
		return nil, errors.New("heroku: app name is empty")
	}
	run := h.Run
	if run == nil {
		run = execRunner
	}
	out, err := run(ctx, "heroku", "config", "--shell", "--app="+h.App)
	if err != nil {
		return nil, err
	}
	values, err := godotenv.Unmarshal(string(out))
	if err != nil {
		return nil, fmt.Errorf("heroku: parse config: %w", err)
	}
	return values, nil
}

func (h *HerokuSource) String() string { return "heroku:" + h.App }

// StaticSource is a fixed set of variables.
type StaticSource map[string]string

func (s StaticSource) Fetch(context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out, nil
}

func (s StaticSource) String() string { return "static" }
