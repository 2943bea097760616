package match

import (
	"errors"
	"fmt"
	"image"
	"math"
	"testing"
	"time"

	"github.com/OpticalFlyer/laststanding/gallery"
	"github.com/OpticalFlyer/laststanding/item"
	"github.com/OpticalFlyer/laststanding/layout"
)

func testPool(n int) []*gallery.Asset {
	pool := make([]*gallery.Asset, n)
	for i := range pool {
		pool[i] = &gallery.Asset{
			Name:   fmt.Sprintf("img%02d.png", i),
			Pixels: image.NewRGBA(image.Rect(0, 0, 40+i, 30)),
		}
	}
	return pool
}

func newTestController(t *testing.T, poolSize int, seed uint64, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithRandomSource(NewSeededRNG(seed))}, opts...)
	c := New(testPool(poolSize), 1200, 800, DefaultConfig(), opts...)
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return c
}

type recorder struct {
	resets  []int
	victims []*item.Item
	crowned []*item.Item
}

func (r *recorder) RoundReset(n int)               { r.resets = append(r.resets, n) }
func (r *recorder) Eliminated(v *item.Item, _ int) { r.victims = append(r.victims, v) }
func (r *recorder) Crowned(w *item.Item)           { r.crowned = append(r.crowned, w) }

func TestResetSelectsDistinctAssets(t *testing.T) {
	tests := []struct {
		name     string
		poolSize int
		want     int
	}{
		{"pool larger than grid", 20, 16},
		{"pool equal to grid", 16, 16},
		{"pool smaller than grid", 5, 5},
		{"single image", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, tt.poolSize, 1)
			if got := len(c.Participants()); got != tt.want {
				t.Fatalf("participants = %d, want %d", got, tt.want)
			}
			if c.Active() != tt.want {
				t.Errorf("active = %d, want %d", c.Active(), tt.want)
			}
			if c.Phase() != Idle {
				t.Errorf("phase = %v, want idle", c.Phase())
			}
			seen := make(map[*gallery.Asset]bool)
			for _, it := range c.Participants() {
				if seen[it.Asset] {
					t.Fatalf("asset %s selected twice", it.Asset.Name)
				}
				seen[it.Asset] = true
			}
		})
	}
}

func TestResetAssignsLayout(t *testing.T) {
	c := newTestController(t, 20, 2)
	cells, err := layout.Compute(1200, 800, 4, 4, 24, 8)
	if err != nil {
		t.Fatal(err)
	}
	for i, it := range c.Participants() {
		if it.TX != cells[i].X || it.TY != cells[i].Y || it.BoxW != cells[i].W || it.BoxH != cells[i].H {
			t.Errorf("item %d target (%f, %f %dx%d), want cell %+v", i, it.TX, it.TY, it.BoxW, it.BoxH, cells[i])
		}
	}
}

func TestResetEmptyPool(t *testing.T) {
	c := New(nil, 1200, 800, DefaultConfig())
	if err := c.Reset(); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("Reset() = %v, want ErrEmptyPool", err)
	}
	if len(c.Participants()) != 0 || c.Phase() != Idle {
		t.Fatalf("participants=%d phase=%v", len(c.Participants()), c.Phase())
	}

	c.Start()
	c.Tick(time.Second)
	c.Step()
	if c.Phase() != Idle {
		t.Errorf("phase = %v after start on empty round, want idle", c.Phase())
	}
	if len(c.Visible()) != 0 {
		t.Errorf("visible = %d, want 0", len(c.Visible()))
	}
}

func TestStartOnlyFromIdle(t *testing.T) {
	c := newTestController(t, 3, 3)
	c.Start()
	if c.Phase() != Running {
		t.Fatalf("phase = %v, want running", c.Phase())
	}
	c.Start()
	if c.Phase() != Running {
		t.Fatalf("second Start changed phase to %v", c.Phase())
	}
}

func TestTickWaitsForDelay(t *testing.T) {
	c := newTestController(t, 16, 4)

	c.Tick(time.Second)
	if c.Active() != 16 {
		t.Fatalf("idle round eliminated: active = %d", c.Active())
	}

	c.Start()
	for i := 0; i < 11; i++ {
		c.Tick(17 * time.Millisecond)
	}
	if c.Active() != 16 {
		t.Fatalf("eliminated before 200ms: active = %d", c.Active())
	}
	c.Tick(17 * time.Millisecond)
	if c.Active() != 15 {
		t.Fatalf("active after 204ms = %d, want 15", c.Active())
	}
	// The accumulator restarts from zero after each elimination.
	c.Tick(190 * time.Millisecond)
	if c.Active() != 15 {
		t.Fatalf("active = %d, want 15", c.Active())
	}
}

func TestEliminationRemovesExactlyOne(t *testing.T) {
	rec := &recorder{}
	c := newTestController(t, 16, 5, WithListener(rec))
	c.Start()

	seen := make(map[*item.Item]bool)
	for c.Phase() == Running {
		before := c.Active()
		c.Step()
		if c.Active() != before-1 {
			t.Fatalf("active went %d -> %d", before, c.Active())
		}
		victim := rec.victims[len(rec.victims)-1]
		if seen[victim] {
			t.Fatalf("item %s eliminated twice", victim.Asset.Name)
		}
		if !victim.Eliminated() && victim != c.Winner() {
			t.Fatalf("victim %s not marked eliminated", victim.Asset.Name)
		}
		seen[victim] = true
	}
}

func TestTermination(t *testing.T) {
	for n := 1; n <= 16; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			rec := &recorder{}
			c := newTestController(t, n, uint64(n), WithListener(rec))
			c.Start()

			steps := 0
			for c.Phase() == Running && steps < 100 {
				c.Step()
				steps++
			}
			if c.Phase() != Finished {
				t.Fatalf("phase = %v after %d steps", c.Phase(), steps)
			}
			if len(rec.victims) != n-1 {
				t.Errorf("eliminations = %d, want %d", len(rec.victims), n-1)
			}
			if len(rec.crowned) != 1 || rec.crowned[0] != c.Winner() {
				t.Fatalf("crowned = %v, winner = %v", rec.crowned, c.Winner())
			}
			if c.Active() != 1 {
				t.Errorf("active = %d, want 1", c.Active())
			}
			if c.Winner().Eliminated() {
				t.Error("winner is marked eliminated")
			}
			if n >= 2 && steps != n-1 {
				t.Errorf("steps = %d, want %d", steps, n-1)
			}
		})
	}
}

func TestWinnerScenario(t *testing.T) {
	c := newTestController(t, 20, 42)
	if len(c.Participants()) != 16 {
		t.Fatalf("participants = %d, want 16", len(c.Participants()))
	}
	if err := c.PrimaryAction(); err != nil {
		t.Fatal(err)
	}
	if c.Phase() != Running {
		t.Fatalf("phase = %v, want running", c.Phase())
	}

	// Drive the loop at 60 Hz, ticking the items as the frame loop would.
	frame := time.Second / 60
	frames := 0
	for c.Phase() == Running && frames < 10000 {
		c.Tick(frame)
		c.Update(frame)
		frames++
	}
	if c.Phase() != Finished {
		t.Fatalf("round did not finish")
	}

	w := c.Winner()
	if w.TargetScale != 4 {
		t.Errorf("target scale = %f, want 4", w.TargetScale)
	}
	if w.TX != 600 || w.TY != 400 {
		t.Errorf("target = (%f, %f), want (600, 400)", w.TX, w.TY)
	}
	if w.Opacity != item.MaxOpacity {
		t.Errorf("winner opacity = %d, want 255", w.Opacity)
	}
	if vis := c.Visible(); len(vis) != 1 || vis[0] != w {
		t.Errorf("visible = %d items, want only the winner", len(vis))
	}

	losers := 0
	for _, it := range c.Participants() {
		if it != w && it.Eliminated() {
			losers++
		}
	}
	if losers != 15 {
		t.Errorf("eliminated = %d, want 15", losers)
	}

	for i := 0; i < 300; i++ {
		c.Update(frame)
	}
	if math.Abs(w.X-600) > 0.5 || math.Abs(w.Y-400) > 0.5 || math.Abs(w.Scale-4) > 0.01 {
		t.Errorf("winner settled at (%f, %f) scale %f", w.X, w.Y, w.Scale)
	}
}

func TestPrimaryActionIgnoredWhileRunning(t *testing.T) {
	c := newTestController(t, 4, 6)
	c.PrimaryAction()
	round := c.Round()
	c.PrimaryAction()
	if c.Phase() != Running || c.Round() != round {
		t.Errorf("phase=%v round=%d, want running round %d", c.Phase(), c.Round(), round)
	}
}

func TestResetAfterFinish(t *testing.T) {
	c := newTestController(t, 20, 7)
	c.Start()
	for c.Phase() == Running {
		c.Step()
	}
	old := c.Participants()

	if err := c.PrimaryAction(); err != nil {
		t.Fatal(err)
	}
	if c.Phase() != Idle || c.Winner() != nil {
		t.Fatalf("phase=%v winner=%v after reset", c.Phase(), c.Winner())
	}
	if c.Active() != 16 {
		t.Errorf("active = %d, want 16", c.Active())
	}
	for _, it := range c.Participants() {
		for _, o := range old {
			if it == o {
				t.Fatal("item carried over from previous round")
			}
		}
		if it.Eliminated() || it.Opacity != item.MaxOpacity || it.Scale != 1 || it.TargetScale != 1 {
			t.Fatalf("item %s not at defaults: %+v", it.Asset.Name, it)
		}
	}
}

func TestResetIndependence(t *testing.T) {
	c := New(testPool(20), 1200, 800, DefaultConfig(), WithRandomSource(NewSeededRNG(99)))
	key := func() string {
		s := ""
		for _, it := range c.Participants() {
			s += it.Asset.Name
		}
		return s
	}

	rounds := make(map[string]bool)
	for i := 0; i < 20; i++ {
		if err := c.Reset(); err != nil {
			t.Fatal(err)
		}
		rounds[key()] = true
	}
	if len(rounds) < 2 {
		t.Errorf("20 resets produced %d distinct selections", len(rounds))
	}
}

func TestResizeRelayouts(t *testing.T) {
	c := newTestController(t, 16, 8)
	if err := c.Resize(800, 600); err != nil {
		t.Fatal(err)
	}
	cells, _ := layout.Compute(800, 600, 4, 4, 24, 8)
	first := c.Participants()[0]
	if first.TX != cells[0].X || first.BoxW != cells[0].W {
		t.Errorf("first item target %f box %d, want %f %d", first.TX, first.BoxW, cells[0].X, cells[0].W)
	}
}

func TestResizeInvalidKeepsLayout(t *testing.T) {
	c := newTestController(t, 16, 9)
	before := *c.Participants()[3]

	err := c.Resize(0, 0)
	if !errors.Is(err, layout.ErrInvalidLayout) {
		t.Fatalf("Resize(0, 0) = %v, want ErrInvalidLayout", err)
	}
	after := c.Participants()[3]
	if after.TX != before.TX || after.TY != before.TY || after.BoxW != before.BoxW {
		t.Errorf("layout changed on invalid resize")
	}

	// A reset while minimized still places the new items in the last good grid.
	c.Reset()
	if c.Participants()[3].TX != before.TX {
		t.Errorf("reset during invalid viewport lost the layout")
	}
}

func TestResizeRecentersWinner(t *testing.T) {
	c := newTestController(t, 5, 10)
	c.Start()
	for c.Phase() == Running {
		c.Step()
	}
	box := c.Winner().BoxW
	if err := c.Resize(1000, 500); err != nil {
		t.Fatal(err)
	}
	w := c.Winner()
	if w.TX != 500 || w.TY != 250 {
		t.Errorf("winner target = (%f, %f), want (500, 250)", w.TX, w.TY)
	}
	if w.BoxW != box {
		t.Errorf("winner box changed from %d to %d", box, w.BoxW)
	}
}

type countingSurface struct{ n int }

func (s *countingSurface) Blit(*gallery.Asset, float64, float64, int, int, uint8) { s.n++ }

func TestDrawVisible(t *testing.T) {
	c := newTestController(t, 16, 11)
	var s countingSurface
	c.Draw(&s)
	if s.n != 16 {
		t.Errorf("drew %d items, want 16", s.n)
	}

	c.Start()
	for c.Phase() == Running {
		c.Step()
	}
	s.n = 0
	c.Draw(&s)
	if s.n != 1 {
		t.Errorf("drew %d items after finish, want 1", s.n)
	}
}

func TestSample(t *testing.T) {
	rng := NewSeededRNG(12)
	for i := 0; i < 100; i++ {
		got := sample(rng, 20, 16)
		if len(got) != 16 {
			t.Fatalf("len = %d", len(got))
		}
		seen := make(map[int]bool)
		for _, v := range got {
			if v < 0 || v >= 20 || seen[v] {
				t.Fatalf("bad sample %v", got)
			}
			seen[v] = true
		}
	}
	if got := sample(rng, 3, 10); len(got) != 3 {
		t.Errorf("sample(3, 10) len = %d, want 3", len(got))
	}
}
