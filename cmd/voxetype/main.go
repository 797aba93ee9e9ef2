// voxetype - software 3D rendering in the terminal.
// Draws a textured cube, its wireframe, or a glTF model as colored glyphs.
//
// Controls:
//
//	W/S, Up/Down     - Move towards / away from the target
//	A/D, Left/Right  - Orbit around the target
//	Space            - Spin the model
//	M                - Next scene mode
//	C                - Toggle back-face culling
//	R                - Reset camera and spin
//	?                - Toggle HUD overlay
//	Q, Esc           - Quit
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/term"

	"github.com/taigrr/voxetype/pkg/models"
	"github.com/taigrr/voxetype/pkg/render"
)

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends library debug logs to path. Stdout is the render
// surface, so nothing is logged without a file.
func setupLogging(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	render.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() {
		render.SetLogger(nil)
		f.Close()
	}, nil
}

func run(cfg Config) error {
	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	// Load assets before touching the terminal so errors stay readable.
	tex, err := loadTexture(cfg)
	if err != nil {
		return err
	}
	tex.Wrap = render.WrapClamp

	var mesh *models.Mesh
	if cfg.Model != "" {
		mesh, err = models.LoadGLB(cfg.Model)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
	}

	scene, err := NewScene(cfg, tex, mesh)
	if err != nil {
		return err
	}

	t := uv.DefaultTerminal()
	width, height, err := t.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	v, err := newViewer(cfg, scene, width, height, time.Now)
	if err != nil {
		return err
	}

	if err := t.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	t.EnterAltScreen()
	t.HideCursor()
	t.Resize(width, height)
	defer func() {
		t.ExitAltScreen()
		t.ShowCursor()
		t.Shutdown(context.Background())
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Events are forwarded so the frame loop stays the only goroutine that
	// touches the renderer.
	events := make(chan any, 64)
	go func() {
		for ev := range t.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	out := bufio.NewWriterSize(os.Stdout, 1<<16)
	frameTime := time.Second / time.Duration(cfg.FPS)
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	render.Logger().Info("started", "width", width, "height", height, "mode", cfg.Mode)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				t.Erase()
				t.Resize(ev.Width, ev.Height)
				if err := v.resize(ev.Width, ev.Height); err != nil {
					return err
				}
			case uv.KeyPressEvent:
				if v.handle(decodeKey(ev)) {
					return nil
				}
			}
		case <-ticker.C:
			v.frame()
			if err := v.present(out); err != nil {
				return err
			}
		}
	}
}
