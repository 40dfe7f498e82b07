package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/session"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = ".ssh/invaders_ed25519"
	defaultMaxSessions = 32
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           config.GetEnvLogLevel("INVADERS_LOG_LEVEL", log.InfoLevel),
		Prefix:          "arcade",
		ReportTimestamp: true,
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	maxSessions := config.GetEnvInt("SSH_MAX_SESSIONS", defaultMaxSessions)

	cfg, err := config.GameFromEnv()
	if err != nil {
		logger.Fatal("invalid game configuration", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "maxSessions", maxSessions)

	registry := session.NewRegistry(maxSessions)
	a := &arcade{registry: registry, cfg: cfg, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "sessions", registry.Len())

	// Running games are told to quit; each player sees their summary before disconnecting.
	if !registry.Shutdown(15 * time.Second) {
		logger.Warn("sessions still open after shutdown timeout", "sessions", registry.Len())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// arcade hands every SSH connection its own game.
type arcade struct {
	registry *session.Registry
	cfg      config.Game
	logger   *log.Logger
}

func (a *arcade) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, _, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		s, err := a.registry.Open(sess.User())
		if err != nil {
			a.logger.Warn("session refused", "user", sess.User(), "err", err)
			fmt.Fprintf(sess, "Sorry: %v. Please try again later.\r\n", err)
			return
		}
		defer a.registry.Close(s)

		logger := a.logger.With("session", s.ID, "user", sess.User())
		logger.Info("game session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		res, err := session.Play(sess, s, session.Options{
			Config: a.cfg,
			Width:  pty.Window.Width,
			Height: pty.Window.Height,
			Logger: logger,
		})
		if err != nil {
			logger.Warn("game ended with error", "err", err)
		} else {
			logger.Info("game session ended", "outcome", res.Outcome, "kills", res.Kills)
		}
		next(sess)
	}
}
