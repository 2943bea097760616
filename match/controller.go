package match

import (
	"errors"
	"time"

	"github.com/OpticalFlyer/laststanding/gallery"
	"github.com/OpticalFlyer/laststanding/item"
	"github.com/OpticalFlyer/laststanding/layout"
)

// ErrEmptyPool is returned by Reset when there is nothing to select from.
var ErrEmptyPool = errors.New("no images to select from")

// Phase is the round lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Running
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Listener is notified of round events. Calls happen on the loop goroutine.
type Listener interface {
	RoundReset(participants int)
	Eliminated(victim *item.Item, remaining int)
	Crowned(winner *item.Item)
}

// Config tunes a Controller.
type Config struct {
	Cols, Rows       int
	EdgePadding      float64
	CellPadding      float64
	EliminationDelay time.Duration
	WinnerScale      float64
	Motion           item.Motion
}

// DefaultConfig is a 4x4 grid eliminating every 200ms.
func DefaultConfig() Config {
	return Config{
		Cols:             4,
		Rows:             4,
		EdgePadding:      24,
		CellPadding:      8,
		EliminationDelay: 200 * time.Millisecond,
		WinnerScale:      4,
		Motion:           item.DefaultMotion(),
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithRandomSource replaces the default generator.
func WithRandomSource(rng RandomSource) Option {
	return func(c *Controller) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithListener registers a round event listener.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		c.listeners = append(c.listeners, l)
	}
}

// Controller owns one round at a time: its participants, which of them are
// still in, the phase, and the elimination timer.
type Controller struct {
	cfg  Config
	pool []*gallery.Asset
	rng  RandomSource

	participants []*item.Item
	active       []*item.Item
	phase        Phase
	winner       *item.Item
	elapsed      time.Duration
	round        int

	viewW, viewH int
	cells        []layout.Cell

	listeners []Listener
}

// New creates a controller over the asset pool for a viewport. Call Reset to
// deal the first round.
func New(pool []*gallery.Asset, viewW, viewH int, cfg Config, opts ...Option) *Controller {
	c := &Controller{
		cfg:   cfg,
		pool:  pool,
		rng:   DefaultRNG(),
		viewW: viewW,
		viewH: viewH,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capacity is the number of grid slots.
func (c *Controller) Capacity() int {
	return layout.Capacity(c.cfg.Cols, c.cfg.Rows)
}

// Reset discards the current round and deals a new one in the Idle phase.
// With an empty pool the new round has no participants and ErrEmptyPool is
// returned; the controller remains usable.
func (c *Controller) Reset() error {
	c.phase = Idle
	c.winner = nil
	c.elapsed = 0
	c.round++

	n := min(c.Capacity(), len(c.pool))
	picked := sample(c.rng, len(c.pool), n)
	shuffle(c.rng, picked)

	c.participants = make([]*item.Item, 0, len(picked))
	for _, i := range picked {
		c.participants = append(c.participants, item.New(c.pool[i], c.cfg.Motion))
	}
	c.active = make([]*item.Item, len(c.participants))
	copy(c.active, c.participants)

	err := c.relayout()
	for _, l := range c.listeners {
		l.RoundReset(len(c.participants))
	}

	if len(c.pool) == 0 {
		return ErrEmptyPool
	}
	return err
}

// Start begins eliminating. It is ignored unless the round is Idle with at
// least one participant.
func (c *Controller) Start() {
	if c.phase != Idle || len(c.participants) == 0 {
		return
	}
	c.phase = Running
	c.elapsed = 0
}

// PrimaryAction is what a click does: start an idle round or deal a new one
// after a finished round.
func (c *Controller) PrimaryAction() error {
	switch c.phase {
	case Finished:
		return c.Reset()
	case Idle:
		c.Start()
	}
	return nil
}

// Tick advances the elimination timer by elapsed.
func (c *Controller) Tick(elapsed time.Duration) {
	if c.phase != Running {
		return
	}
	c.elapsed += elapsed
	if c.elapsed >= c.cfg.EliminationDelay {
		c.elapsed = 0
		c.Step()
	}
}

// Step runs one elimination: a uniformly random active item is knocked out.
// When one item is left the round finishes.
func (c *Controller) Step() {
	if c.phase != Running {
		return
	}
	if len(c.active) <= 1 {
		c.finish()
		return
	}

	i := c.rng.IntN(len(c.active))
	victim := c.active[i]
	c.active = append(c.active[:i], c.active[i+1:]...)
	victim.Eliminate()
	for _, l := range c.listeners {
		l.Eliminated(victim, len(c.active))
	}

	if len(c.active) == 1 {
		c.finish()
	}
}

func (c *Controller) finish() {
	if len(c.active) == 0 {
		return
	}
	c.phase = Finished
	c.winner = c.active[0]
	x, y := layout.Center(c.viewW, c.viewH)
	c.winner.Crown(x, y, c.cfg.WinnerScale)
	for _, l := range c.listeners {
		l.Crowned(c.winner)
	}
}

// Resize applies a new viewport. A finished round recenters its winner; any
// other round recomputes the grid. An ErrInvalidLayout leaves the previous
// layout in place.
func (c *Controller) Resize(w, h int) error {
	c.viewW, c.viewH = w, h
	if c.phase == Finished && c.winner != nil {
		x, y := layout.Center(w, h)
		c.winner.TX, c.winner.TY = x, y
		return nil
	}
	return c.relayout()
}

func (c *Controller) relayout() error {
	cells, err := layout.Compute(c.viewW, c.viewH, c.cfg.Cols, c.cfg.Rows, c.cfg.EdgePadding, c.cfg.CellPadding)
	if err != nil {
		if c.cells != nil {
			c.assignCells(c.cells)
		}
		return err
	}
	c.cells = cells
	c.assignCells(cells)
	return nil
}

func (c *Controller) assignCells(cells []layout.Cell) {
	for i, it := range c.participants {
		if i < len(cells) {
			it.SetCell(cells[i])
		}
	}
}

// Visible returns the items to draw, back to front.
func (c *Controller) Visible() []*item.Item {
	if c.phase == Finished && c.winner != nil {
		return []*item.Item{c.winner}
	}
	return c.participants
}

// Update advances the animation of every visible item.
func (c *Controller) Update(dt time.Duration) {
	for _, it := range c.Visible() {
		it.Update(dt)
	}
}

// Draw draws every visible item onto surface.
func (c *Controller) Draw(surface item.Surface) {
	for _, it := range c.Visible() {
		it.Draw(surface)
	}
}

func (c *Controller) Phase() Phase                { return c.phase }
func (c *Controller) Participants() []*item.Item { return c.participants }
func (c *Controller) Winner() *item.Item         { return c.winner }
func (c *Controller) Round() int                 { return c.round }

// Active returns how many participants are still in.
func (c *Controller) Active() int { return len(c.active) }

// Viewport returns the current viewport size.
func (c *Controller) Viewport() (int, int) { return c.viewW, c.viewH }
