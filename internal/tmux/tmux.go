// Package tmux is the subprocess transport to the hosting tmux server.
// It reads user options (the host override source for the option registry)
// and posts one-shot messages. It never interprets widget state; judgment
// lives in the severity and compose packages.
package tmux

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Client runs tmux commands against the current server.
type Client struct{}

// NewClient creates a tmux client.
func NewClient() *Client {
	return &Client{}
}

// Available reports whether we are running inside a tmux session.
func (c *Client) Available() bool {
	return os.Getenv("TMUX") != ""
}

// ShowOption reads a global user option (e.g. "@slatebar-cpu-icon").
// ok is false when the option is unset.
func (c *Client) ShowOption(ctx context.Context, name string) (string, bool) {
	out, err := c.run(ctx, "show-option", "-gqv", name)
	if err != nil {
		return "", false
	}
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return "", false
	}
	return out, true
}

// DisplayMessage shows a transient message in the status line.
func (c *Client) DisplayMessage(ctx context.Context, msg string) error {
	if _, err := c.run(ctx, "display-message", msg); err != nil {
		return fmt.Errorf("tmux display-message: %w", err)
	}
	return nil
}

// run executes a tmux command and returns its stdout.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%w: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}

// OptionSource adapts a Client to the option registry's Overrides
// interface. A widget option "icon" of widget "cpu" maps to the tmux user
// option "@slatebar-cpu-icon".
type OptionSource struct {
	Client *Client
	Ctx    context.Context
}

// Lookup implements registry.Overrides.
func (s OptionSource) Lookup(widget, option string) (string, bool) {
	if s.Client == nil || !s.Client.Available() {
		return "", false
	}
	ctx := s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return s.Client.ShowOption(ctx, OptionName(widget, option))
}

// OptionName returns the tmux user option name for a widget option.
func OptionName(widget, option string) string {
	return "@slatebar-" + widget + "-" + option
}
