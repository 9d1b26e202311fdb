package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/kinetre/motive/adapter"
	"github.com/kinetre/motive/ease"
	"github.com/kinetre/motive/engine"
	"github.com/kinetre/motive/motion"
)

const (
	sampleRate = beep.SampleRate(48000)
	runFor     = 10 * time.Second
	fadeOut    = 1500 * time.Millisecond
)

func main() {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		fmt.Fprintf(os.Stderr, "speaker init: %v\n", err)
		os.Exit(1)
	}

	sine, err := generators.SineTone(sampleRate, 220)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tone: %v\n", err)
		os.Exit(1)
	}

	vol := &effects.Volume{Streamer: sine, Base: 2, Volume: -4}
	pan := &effects.Pan{Streamer: vol, Pan: 0}
	speaker.Play(pan)

	clock := engine.NewClock()
	store := engine.NewStore[float64, struct{}](adapter.Float{})
	runner := engine.NewRunner(clock, 16*time.Millisecond)
	runner.Add(store)

	// Volume swell, log2 gain from -4 up to 0 and back, forever
	swell := store.Create(-4, 0, struct{}{}, motion.Params{
		Duration: 2, Loops: -1, LoopType: motion.LoopYoyo,
		Ease: ease.InOutSine,
	})
	store.Bind(swell, func(v float64) {
		speaker.Lock()
		vol.Volume = v
		speaker.Unlock()
	})

	// Slow stereo sweep
	sweep := store.Create(-1, 1, struct{}{}, motion.Params{
		Duration: 3, Loops: -1, LoopType: motion.LoopYoyo,
		Ease: ease.InOutQuad,
	})
	store.Bind(sweep, func(v float64) {
		speaker.Lock()
		pan.Pan = v
		speaker.Unlock()
	})

	runner.Start()
	fmt.Printf("playing %v of eased sine swell, ctrl-c to stop early\n", runFor)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-time.After(runFor):
	case <-sigCh:
	}

	// Replace the loops with a one shot fade to silence, then leave
	engine.Cancel(swell)
	engine.Cancel(sweep)

	speaker.Lock()
	level := vol.Volume
	speaker.Unlock()

	done := make(chan struct{})
	fade := store.Create(level, -10, struct{}{}, motion.Params{
		Duration: fadeOut.Seconds(), Loops: 1,
		Ease: ease.OutQuad,
	})
	store.Bind(fade, func(v float64) {
		speaker.Lock()
		vol.Volume = v
		speaker.Unlock()
	})
	store.WithOnComplete(fade, func() { close(done) })

	select {
	case <-done:
	case <-time.After(fadeOut + time.Second):
	}

	runner.Stop()
	speaker.Close()
}
