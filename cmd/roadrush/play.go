package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/platform/tui"
	"github.com/vovakirdan/roadrush/internal/registry"
	"github.com/vovakirdan/roadrush/internal/shooter"
	"github.com/vovakirdan/roadrush/internal/tilt"
)

var flagBridge string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing Road Rush in this terminal.

Controls:
  Left/Right, A/D  - Tilt left/right (keyboard emulation)
  Space/Up         - Fire
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot to ~/.roadrush/screenshots
  Q/Ctrl+C         - Quit

With --bridge, a phone on the same network can open http://<host><addr>/
and steer by tilting. Tap the screen to fire.

Examples:
  roadrush play
  roadrush play --seed 42
  roadrush play --bridge :8080
  roadrush play --config ./my-road.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBridge, "bridge", "", "Listen address for the phone tilt bridge (overrides bridge.address)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := shooter.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'roadrush list' to see available games)", gameID)
	}

	cfg, err := config.LoadShooter(flagConfig)
	if err != nil {
		return err
	}
	shooter.SetConfigPath(flagConfig)

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "roadrush")
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	opts := tui.Options{
		KeyHold:       cfg.Tilt.KeyHold(),
		ScreenshotDir: filepath.Join(config.DataDir(), "screenshots"),
		Logger:        logger,
	}

	addr := cfg.Bridge.Address
	if flagBridge != "" {
		addr = flagBridge
	}
	if addr != "" {
		platform, err := tilt.ParsePlatform(cfg.Tilt.Platform)
		if err != nil {
			return err
		}
		bridge := tilt.NewBridge(tilt.BridgeConfig{
			Address:    addr,
			Platform:   platform,
			StaleAfter: cfg.Tilt.StaleAfter(),
			SampleHz:   cfg.Bridge.SampleHz,
		}, logger)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			if err := bridge.ListenAndServe(ctx); err != nil {
				logger.Error("tilt bridge stopped", "error", err)
			}
		}()

		fmt.Fprintf(os.Stderr, "Phone controller: open http://<this-host>%s/ on your phone\n", addr)
		opts.Remote = bridge
	}

	logger.Info("starting game", "game", gameID, "size", fmt.Sprintf("%dx%d", width, height), "bridge", addr)
	if err := tui.Run(game, runtime, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
