// Package launch starts a local Stable Diffusion WebUI and waits for it to
// accept requests.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmorgan81/sdbot/internal/log"
	"github.com/dmorgan81/sdbot/internal/webui"
	"github.com/samber/lo"
)

const (
	DefaultScript   = "~/witchpot/StableDiffusion.WebUI@1.2.0/run.bat"
	DefaultInterval = 2 * time.Second
)

var ErrNoScript = errors.New("launch: no script configured")

type Launcher struct {
	Script   string
	Args     []string
	Client   *webui.Client
	Interval time.Duration
	Stdout   io.Writer
	Stderr   io.Writer
}

// expand resolves a leading "~" against the user's home directory.
func expand(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("launch: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Start runs the script from its own directory and returns without waiting
// for it to exit. The process is killed when ctx is canceled.
func (l *Launcher) Start(ctx context.Context) (*exec.Cmd, error) {
	if l.Script == "" {
		return nil, ErrNoScript
	}
	script, err := expand(l.Script)
	if err != nil {
		return nil, err
	}

	log := log.FromContextOrDiscard(ctx).WithGroup("launch").With("script", script)
	log.Info("starting webui")

	cmd := exec.CommandContext(ctx, script, l.Args...)
	cmd.Dir = filepath.Dir(script)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch: starting %s: %w", script, err)
	}
	log.Info("webui started", "pid", cmd.Process.Pid)
	return cmd, nil
}

// WaitReady polls the app id endpoint until the server answers or ctx ends.
func (l *Launcher) WaitReady(ctx context.Context) (webui.AppIDResponse, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("launch").With("url", l.Client.BaseURL())

	ticker := time.NewTicker(lo.Ternary(l.Interval > 0, l.Interval, DefaultInterval))
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		id, err := l.Client.AppID(ctx)
		if err == nil {
			log.Info("webui is ready", "app_id", id.AppID, "attempts", attempt)
			return id, nil
		}
		log.Debug("webui not ready", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return webui.AppIDResponse{}, fmt.Errorf("launch: waiting for webui: %w", context.Cause(ctx))
		case <-ticker.C:
		}
	}
}
