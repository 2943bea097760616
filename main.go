package main

import (
	"errors"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/OpticalFlyer/laststanding/audio"
	"github.com/OpticalFlyer/laststanding/config"
	"github.com/OpticalFlyer/laststanding/gallery"
	"github.com/OpticalFlyer/laststanding/item"
	"github.com/OpticalFlyer/laststanding/layout"
	"github.com/OpticalFlyer/laststanding/match"
	"github.com/OpticalFlyer/laststanding/render"
)

// LastStanding implements ebiten.Game interface.
type LastStanding struct {
	match       *match.Controller
	surface     *render.Surface
	debugMode   bool
	winnerFrame bool

	// Last size reported by Layout
	screenWidth  int
	screenHeight int

	lastUpdate time.Time

	// Touch state for tap detection
	touchStartX map[ebiten.TouchID]float64
	touchStartY map[ebiten.TouchID]float64
	touchPeak   int
}

func (g *LastStanding) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debugMode = !g.debugMode
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.primaryAction()
	}

	g.handleTouchEvents()

	now := time.Now()
	dt := now.Sub(g.lastUpdate)
	g.lastUpdate = now

	g.match.Tick(dt)
	g.match.Update(dt)
	return nil
}

func (g *LastStanding) primaryAction() {
	if err := g.match.PrimaryAction(); err != nil {
		log.Printf("Error dealing a new round: %v", err)
	}
}

func (g *LastStanding) Draw(screen *ebiten.Image) {
	g.surface.Begin(screen)

	if g.winnerFrame && g.match.Phase() == match.Finished {
		g.surface.DrawFrame(g.match.Winner(), render.FrameColor)
	}
	g.match.Draw(g.surface)

	if g.debugMode {
		render.DrawDebug(screen, g.match)
	}
}

func (g *LastStanding) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenWidth || outsideHeight != g.screenHeight {
		g.screenWidth = outsideWidth
		g.screenHeight = outsideHeight
		if err := g.match.Resize(outsideWidth, outsideHeight); err != nil {
			log.Printf("Keeping previous layout: %v", err)
		}
	}
	// ebiten needs a non-empty screen even while minimized.
	return max(1, outsideWidth), max(1, outsideHeight)
}

func main() {
	var (
		configPath string
		imageDir   string
		useTUI     bool
		seed       uint64
		sound      bool
		logPath    string
	)

	flag.StringVar(&configPath, "config", "", "YAML config file (optional)")
	flag.StringVar(&imageDir, "dir", "", "Image directory (overrides the config file)")
	flag.BoolVar(&useTUI, "tui", false, "Run in the terminal instead of a window")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 = random)")
	flag.BoolVar(&sound, "sound", false, "Play sound cues")
	flag.StringVar(&logPath, "log", "", "Log file for terminal mode (default: discard)")
	flag.Parse()

	log.SetPrefix("[laststanding] ")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if imageDir != "" {
		cfg.ImageDir = imageDir
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	cfg.Sound = cfg.Sound || sound
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if useTUI {
		closeLog := redirectLog(logPath)
		defer closeLog()
	}

	pool, err := gallery.LoadAll(cfg.ImageDir)
	if err != nil {
		var le *gallery.LoadError
		if errors.As(err, &le) {
			log.Fatalf("Cannot load images from %s: %v", cfg.ImageDir, le)
		}
		log.Fatal(err)
	}
	log.Printf("Loaded %d images from %s", len(pool), cfg.ImageDir)

	opts := []match.Option{match.WithListener(roundLogger{})}
	if cfg.Seed != 0 {
		opts = append(opts, match.WithRandomSource(match.NewSeededRNG(cfg.Seed)))
	}
	if cfg.Sound {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			// Non-fatal, the round works without sound
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer sm.Cleanup()
			opts = append(opts, match.WithListener(sm))
		}
	}

	if useTUI {
		if err := runTerminal(cfg, pool, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	m := match.New(pool, cfg.Window.Width, cfg.Window.Height, matchConfig(cfg), opts...)
	if err := m.Reset(); err != nil {
		logResetError(err)
	}

	app := &LastStanding{
		match:        m,
		surface:      render.NewSurface(),
		debugMode:    cfg.Render.Debug,
		winnerFrame:  cfg.Render.WinnerFrame,
		screenWidth:  cfg.Window.Width,
		screenHeight: cfg.Window.Height,
		lastUpdate:   time.Now(),
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Render.TPS)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}

// matchConfig maps the file configuration onto the controller tuning.
func matchConfig(cfg config.Config) match.Config {
	var smoothing item.Smoothing = item.FrameSmoothing{}
	if cfg.Animation.TimeBased {
		smoothing = item.TimeSmoothing{Reference: item.ReferenceFrame}
	}
	return match.Config{
		Cols:             cfg.Grid.Cols,
		Rows:             cfg.Grid.Rows,
		EdgePadding:      cfg.Grid.EdgePadding,
		CellPadding:      cfg.Grid.CellPadding,
		EliminationDelay: cfg.EliminationDelay(),
		WinnerScale:      cfg.Animation.WinnerScale,
		Motion: item.Motion{
			MoveRate:  cfg.Animation.MoveRate,
			ScaleRate: cfg.Animation.ScaleRate,
			FadeStep:  cfg.Animation.FadeStep,
			FadeFloor: cfg.Animation.FadeFloor,
			Smoothing: smoothing,
		},
	}
}

func logResetError(err error) {
	switch {
	case errors.Is(err, match.ErrEmptyPool):
		log.Printf("No supported images found; nothing to show")
	case errors.Is(err, layout.ErrInvalidLayout):
		log.Printf("Keeping previous layout: %v", err)
	default:
		log.Printf("Error dealing a round: %v", err)
	}
}

// roundLogger writes round milestones to the log.
type roundLogger struct{}

func (roundLogger) RoundReset(n int) {
	log.Printf("New round with %d participants", n)
}

func (roundLogger) Eliminated(*item.Item, int) {}

func (roundLogger) Crowned(w *item.Item) {
	log.Printf("Winner: %s", w.Asset.Name)
}
