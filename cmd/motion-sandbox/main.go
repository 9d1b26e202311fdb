package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/kinetre/motive/adapter"
	"github.com/kinetre/motive/ease"
	"github.com/kinetre/motive/engine"
	"github.com/kinetre/motive/motion"
	"github.com/kinetre/motive/sequence"
)

const frameInterval = 16 * time.Millisecond

type sprite struct {
	glyph rune
	row   int
	label string
	x     float64
	color colorful.Color
}

type Demo struct {
	screen        tcell.Screen
	width, height int

	clock  *engine.Clock
	runner *engine.Runner
	floats *engine.Store[float64, struct{}]
	colors *engine.Store[colorful.Color, adapter.ColorOptions]

	sprites []*sprite

	// Sequence wave across the bottom row
	wave       [3]*sprite
	waveDriver engine.Handle
}

func NewDemo() (*Demo, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	d := &Demo{
		screen: screen,
		clock:  engine.NewClock(),
		floats: engine.NewStore[float64, struct{}](adapter.Float{}),
		colors: engine.NewStore[colorful.Color, adapter.ColorOptions](adapter.Color{}),
	}
	d.width, d.height = screen.Size()

	d.runner = engine.NewRunner(d.clock, frameInterval)
	d.runner.Add(d.floats)
	d.runner.Add(d.colors)

	d.spawnSprites()
	d.spawnWave()

	return d, nil
}

// spawnSprites launches one looping motion per easing showcase row
func (d *Demo) spawnSprites() {
	span := float64(d.width - 2)

	rows := []struct {
		glyph rune
		label string
		p     motion.Params
	}{
		{'o', "yoyo quad", motion.Params{
			Duration: 2, Loops: -1, LoopType: motion.LoopYoyo,
			Ease: ease.InOutQuad,
		}},
		{'*', "restart elastic", motion.Params{
			Duration: 3, Loops: -1, LoopType: motion.LoopRestart,
			Ease: ease.OutElastic,
		}},
		{'#', "yoyo bounce, delayed", motion.Params{
			Duration: 2, Delay: 0.5, DelayType: motion.DelayEveryLoop,
			Loops: -1, LoopType: motion.LoopYoyo,
			Ease: ease.OutBounce,
		}},
		{'@', "back, unscaled time", motion.Params{
			Duration: 2.5, Loops: -1, LoopType: motion.LoopYoyo,
			Ease: ease.InOutBack, TimeKind: motion.TimeUnscaled,
		}},
	}

	for i, r := range rows {
		s := &sprite{glyph: r.glyph, row: 2 + i*2, label: r.label}
		s.color = colorful.Color{R: 0.9, G: 0.9, B: 0.9}
		h := d.floats.Create(1, span, struct{}{}, r.p)
		d.floats.Bind(h, func(v float64) { s.x = v })
		d.sprites = append(d.sprites, s)
	}

	// Hue sweep shared by the whole column of glyphs
	ch := d.colors.Create(
		colorful.Hcl(0, 0.6, 0.6),
		colorful.Hcl(320, 0.6, 0.6),
		adapter.ColorOptions{Space: adapter.ColorSpaceHCL},
		motion.Params{Duration: 6, Loops: -1, LoopType: motion.LoopYoyo},
	)
	d.colors.Bind(ch, func(c colorful.Color) {
		for _, s := range d.sprites {
			s.color = c
		}
	})
}

// spawnWave builds a three stage sequence sweeping glyphs across the
// bottom row, rebuilt whenever the driver finishes
func (d *Demo) spawnWave() {
	span := float64(d.width-2) / 3

	builder := sequence.Rent()
	for i := range d.wave {
		s := &sprite{glyph: '>', row: d.height - 2, x: -1}
		d.wave[i] = s

		lo := 1 + span*float64(i)
		h := d.floats.Create(lo, lo+span, struct{}{}, motion.Params{
			Duration: 1.5, Loops: 1, Ease: ease.OutCubic,
		})
		d.floats.Bind(h, func(v float64) { s.x = v })
		if err := builder.Append(h); err != nil {
			builder.Dispose()
			return
		}
	}

	driver, err := builder.Run(d.floats)
	if err != nil {
		return
	}
	d.waveDriver = driver
}

func (d *Demo) step() {
	d.runner.StepOnce(time.Now())

	// Restart the wave once the previous run drains
	if _, err := engine.StatusOf(d.waveDriver); err != nil {
		d.spawnWave()
	}
}

func (d *Demo) draw() {
	d.screen.Clear()

	header := fmt.Sprintf("motion sandbox  scale %.2f  paused %v  [space] pause  [+/-] scale  [q] quit",
		d.clock.Scale(), d.clock.IsPaused())
	d.puts(1, 0, header, tcell.StyleDefault.Foreground(tcell.ColorGray))

	for _, s := range d.sprites {
		d.puts(1, s.row-1, s.label, tcell.StyleDefault.Foreground(tcell.ColorGray))
		d.putSprite(s)
	}
	for _, s := range d.wave {
		if s != nil && s.x >= 0 {
			d.putSprite(s)
		}
	}

	d.screen.Show()
}

func (d *Demo) putSprite(s *sprite) {
	x := int(s.x)
	if x < 0 || x >= d.width || s.row < 0 || s.row >= d.height {
		return
	}
	r, g, b := s.color.RGB255()
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	d.screen.SetContent(x, s.row, s.glyph, nil, style)
}

func (d *Demo) puts(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		if x+i >= d.width {
			break
		}
		d.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (d *Demo) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				if d.clock.IsPaused() {
					d.clock.Resume()
				} else {
					d.clock.Pause()
				}
			case '+', '=':
				d.clock.SetScale(d.clock.Scale() + 0.25)
			case '-':
				s := d.clock.Scale() - 0.25
				if s < 0 {
					s = 0
				}
				d.clock.SetScale(s)
			}
		}

	case *tcell.EventResize:
		d.width, d.height = d.screen.Size()
	}

	return true
}

func (d *Demo) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- d.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !d.handleInput(ev) {
				return
			}

		case <-ticker.C:
			d.step()
			d.draw()
		}
	}
}

func (d *Demo) cleanup() {
	d.screen.Fini()
}

func main() {
	demo, err := NewDemo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer demo.cleanup()

	demo.run()
}
