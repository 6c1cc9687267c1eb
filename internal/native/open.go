// Package native hands media off to the host OS: default apps, an external
// player and the clipboard.
package native

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/kballard/go-shellquote"
)

// starter is swapped in tests so no process is launched.
var starter = func(cmd *exec.Cmd) error { return cmd.Start() }

// Open opens the specified file or directory using the OS default application.
func Open(target string) error {
	return starter(openCommand(runtime.GOOS, target))
}

func openCommand(goos, target string) *exec.Cmd {
	switch goos {
	case "windows":
		// 'start' is a cmd built-in; the empty argument is the window title
		return exec.Command("cmd", "/c", "start", "", target)
	case "darwin":
		return exec.Command("open", target)
	default:
		return exec.Command("xdg-open", target)
	}
}

// Play starts player with target appended to its arguments. player is a
// shell-style command line such as `mpv --loop`. An empty player opens
// target with the default application.
func Play(player, target string) error {
	cmd, err := playCommand(player, target)
	if err != nil {
		return err
	}
	if cmd == nil {
		return Open(target)
	}
	if err := starter(cmd); err != nil {
		return fmt.Errorf("start player %q: %w", player, err)
	}
	return nil
}

func playCommand(player, target string) (*exec.Cmd, error) {
	if strings.TrimSpace(player) == "" {
		return nil, nil
	}
	toks, err := shellquote.Split(player)
	if err != nil {
		return nil, fmt.Errorf("parse player command: %w", err)
	}
	if len(toks) == 0 {
		return nil, nil
	}
	args := append(toks[1:], target)
	return exec.Command(toks[0], args...), nil
}

// CopyToClipboard places text on the system clipboard.
func CopyToClipboard(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard not available on this system")
	}
	return clipboard.WriteAll(text)
}
