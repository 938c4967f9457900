package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/retroglue/retroglue/internal/harness"
	"github.com/retroglue/retroglue/types"
)

// runConfig holds configuration for the run command.
type runConfig struct {
	rom       string
	frames    int
	systemDir string
	saveDir   string
	assetsDir string
	username  string
	options   []string
	saveState bool
	reset     bool
}

// newRunCmd creates the run subcommand with all flags configured.
func newRunCmd() *cobra.Command {
	cfg := &runConfig{}

	cmd := &cobra.Command{
		Use:   "run <core>",
		Short: "Boot a core, run frames and tear it down",
		Long: `Boot a core through the full lifecycle: bind the environment, install
frame callbacks, initialize, load content (or launch contentless with no
--rom), run the requested number of frames and unload. With --save-state the
serialization surface is exercised after the frames.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCore(args[0], cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.rom, "rom", "", "content to load (omit for a contentless launch)")
	cmd.Flags().IntVar(&cfg.frames, "frames", 600, "number of frames to run")
	cmd.Flags().StringVar(&cfg.systemDir, "system-dir", "", "directory served for GET_SYSTEM_DIRECTORY")
	cmd.Flags().StringVar(&cfg.saveDir, "save-dir", "", "directory served for GET_SAVE_DIRECTORY")
	cmd.Flags().StringVar(&cfg.assetsDir, "assets-dir", "", "directory served for GET_CORE_ASSETS_DIRECTORY")
	cmd.Flags().StringVar(&cfg.username, "username", "", "name served for GET_USERNAME")
	cmd.Flags().StringArrayVar(&cfg.options, "option", nil, "core option as key=value, repeatable")
	cmd.Flags().BoolVar(&cfg.saveState, "save-state", false, "snapshot and restore the core after running")
	cmd.Flags().BoolVar(&cfg.reset, "reset", false, "reset the core halfway through the frames")

	return cmd
}

func runCore(corePath string, cfg *runConfig) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	lib, err := harness.Open(corePath)
	if err != nil {
		return err
	}

	host := harness.NewHost(log)
	host.SystemDir = cfg.systemDir
	host.SaveDir = cfg.saveDir
	host.AssetsDir = cfg.assetsDir
	host.Username = cfg.username
	host.LibretroPath = corePath
	for _, opt := range cfg.options {
		key, value, ok := splitOption(opt)
		if !ok {
			return fmt.Errorf("malformed --option %q, want key=value", opt)
		}
		host.SetVariable(key, value)
	}

	runner := harness.NewRunner(lib, host, log)
	if err := runner.Boot(); err != nil {
		return err
	}
	defer runner.Shutdown()

	if err := runner.Load(cfg.rom); err != nil {
		return err
	}

	frames := cfg.frames
	if cfg.reset {
		if err := runner.Play(frames / 2); err != nil {
			return err
		}
		runner.Reset()
		frames -= frames / 2
	}
	if err := runner.Play(frames); err != nil {
		return err
	}

	if cfg.saveState {
		state, err := runner.SaveState()
		if err != nil {
			return err
		}
		log.Info("save state round-tripped", zap.Int("bytes", len(state)))
	}

	if sram := runner.MemoryRegion(types.MemorySaveRAM); sram != nil {
		log.Info("save ram exposed", zap.Int("bytes", len(sram)))
	}
	return nil
}

func splitOption(opt string) (key, value string, ok bool) {
	key, value, found := strings.Cut(opt, "=")
	return key, value, found && key != ""
}
