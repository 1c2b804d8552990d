package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounceDelay coalesces the event bursts editors produce on save.
const debounceDelay = 200 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the input directory and re-render on change",
		Long: `Watch the input directory and re-render the profile for any .json
record that is created or written. Each change re-runs the full
per-record pipeline. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd)
		},
	}
}

func runWatch(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cmdCtx.Cfg.InputDir); err != nil {
		return fmt.Errorf("failed to watch input dir: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printf(cmd, "Watching %s for changes...\n", cmdCtx.Cfg.InputDir)
	watchLoop(ctx, cmd, cmdCtx, watcher)
	return nil
}

func watchLoop(ctx context.Context, cmd *cobra.Command, cmdCtx *CommandContext, watcher *fsnotify.Watcher) {
	pending := make(map[string]struct{})
	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}

			pending[event.Name] = struct{}{}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.NewTimer(debounceDelay)
			fire = debounce.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			cmdCtx.Logger.Error("watch error", "error", err)

		case <-fire:
			for input := range pending {
				outPath, err := cmdCtx.Generator.GenerateFile(input)
				if err != nil {
					cmdCtx.Logger.Error("record failed", "input", input, "error", err)
					printf(cmd, "failed   %s\n", filepath.Base(input))
					continue
				}
				printf(cmd, "rendered %s\n", outPath)
			}
			pending = make(map[string]struct{})
			fire = nil
		}
	}
}
