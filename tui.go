package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/OpticalFlyer/laststanding/config"
	"github.com/OpticalFlyer/laststanding/gallery"
	"github.com/OpticalFlyer/laststanding/match"
	"github.com/OpticalFlyer/laststanding/terminal"
)

// runTerminal plays rounds on a tcell screen until the user quits.
func runTerminal(cfg config.Config, pool []*gallery.Asset, opts []match.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen failed: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal screen failed: %w", err)
	}
	defer screen.Fini()

	// Terminal cells are coarse; scale the pixel paddings down to match.
	mcfg := matchConfig(cfg)
	mcfg.EdgePadding = max(mcfg.EdgePadding/3, terminal.CellW)
	mcfg.CellPadding = max(mcfg.CellPadding, terminal.CellW)

	cols, rows := screen.Size()
	m := match.New(pool, cols*terminal.CellW, rows*terminal.CellH, mcfg, opts...)
	if err := m.Reset(); err != nil {
		logResetError(err)
	}

	return terminal.NewRunner(screen, m, cfg.Render.TPS).Run()
}

// redirectLog keeps log output off the terminal screen.
func redirectLog(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Cannot open log file %s: %v", path, err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(f)
	return func() { f.Close() }
}
