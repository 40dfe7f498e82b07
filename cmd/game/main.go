package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
)

const (
	backendANSI  = "ansi"
	backendTcell = "tcell"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	backend := flag.String("backend", config.GetEnv("INVADERS_BACKEND", backendANSI),
		"terminal backend: ansi or tcell")
	flag.Parse()

	// Deferred terminal restores have already run by the time this fires.
	defer func() {
		if r := recover(); r != nil {
			draw.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "panic: %v\n%s", r, debug.Stack())
			code = 1
		}
	}()

	cfg, err := config.GameFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	logger, closeLog, err := openLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	player, finishAudio := openAudio(cfg, logger)

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sig)
	go func() {
		s := <-sig
		logger.Info("stopping on signal", "signal", s)
		close(stop)
	}()

	opts := loop.Options{Config: cfg, Audio: player, Logger: logger}

	var res loop.Result
	switch *backend {
	case backendANSI:
		res, err = playANSI(opts, stop)
	case backendTcell:
		res, err = playTcell(opts, stop)
	default:
		err = fmt.Errorf("unknown backend %q", *backend)
	}
	finishAudio()

	if err != nil {
		logger.Error("game failed", "err", err)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		return 1
	}
	fmt.Println(res)
	return 0
}

// playANSI runs the game on the controlling terminal in raw mode.
func playANSI(opts loop.Options, stop <-chan struct{}) (res loop.Result, err error) {
	t, err := draw.OpenTerminal(os.Stdin, os.Stdout, opts.Config.Grid, nil)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := t.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	painter := t.Painter()
	painter.DrawBorder(opts.Config.Grid)

	opts.Input = input.WithStop(input.StartStream(bufio.NewReader(os.Stdin)), stop)
	return loop.Play(painter, opts)
}

// playTcell runs the game through a tcell screen.
func playTcell(opts loop.Options, stop <-chan struct{}) (loop.Result, error) {
	screen, err := draw.OpenTcell()
	if err != nil {
		return loop.Result{}, err
	}
	defer screen.Fini()

	painter, err := draw.NewTcellPainter(screen, opts.Config.Grid)
	if err != nil {
		return loop.Result{}, err
	}
	painter.DrawBorder(opts.Config.Grid)

	opts.Input = input.WithStop(input.StartTcell(screen), stop)
	return loop.Play(painter, opts)
}

// openLog returns a file logger when INVADERS_LOG names a file. The terminal
// belongs to the game, so logging is discarded otherwise.
func openLog() (*log.Logger, func(), error) {
	path := config.GetEnv("INVADERS_LOG", "")
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           config.GetEnvLogLevel("INVADERS_LOG_LEVEL", log.InfoLevel),
		Prefix:          "invaders",
		ReportTimestamp: true,
	})
	return logger, func() { _ = f.Close() }, nil
}

// openAudio returns the cue player and a function that lets queued cues finish
// before exit. Any failure falls back to silence.
func openAudio(cfg config.Game, logger *log.Logger) (audio.Player, func()) {
	if cfg.Mute {
		return audio.Silent{}, func() {}
	}
	synth, err := audio.NewSynth(cfg.Volume)
	if err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
		return audio.Silent{}, func() {}
	}
	return synth, func() {
		if !synth.Wait(config.AudioDrainLimit) {
			logger.Warn("cues still playing at exit")
		}
		synth.Close()
	}
}
