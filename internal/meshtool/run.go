package meshtool

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/mattn/go-shellwords"
)

// Args splits the configured command, which may carry its own arguments
// (for example "wine OgreMeshTool.exe"), and appends flags and paths.
func (inv Invocation) Args() ([]string, error) {
	argv, err := shellwords.Parse(inv.Command)
	if err != nil {
		return nil, fmt.Errorf("meshtool: parse command %q: %w", inv.Command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("meshtool: empty command")
	}
	argv = append(argv, inv.Flags...)
	return append(argv, inv.Input, inv.Output), nil
}

// Run executes the invocation and waits for it to finish or for ctx to be
// cancelled. The error of the
// process is returned untranslated; whether the conversion worked is judged
// by the caller from the output artifact, see Compiled.
func Run(ctx context.Context, inv Invocation) error {
	argv, err := inv.Args()
	if err != nil {
		return err
	}

	slog.Info("meshtool: executing", "command", inv.String())
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	err = cmd.Run()
	if out.Len() > 0 {
		slog.Debug("meshtool: output", "command", argv[0], "output", out.String())
	}
	if err != nil {
		slog.Warn("meshtool: compiler failed", "command", argv[0], "err", err)
	}
	return err
}

// Compiled reports whether the compiler left a non-empty file at path.
func Compiled(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}
