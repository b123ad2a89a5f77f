package session

import (
	"context"
	"errors"
	"net"

	"github.com/sirupsen/logrus"

	"github.com/vintagecraft/vintage/internal/actor"
)

// Server is the TCP accept loop: one Session per accepted connection,
// each handed the same WorldActor event queue. Honors ctx cancellation
// for orderly shutdown instead of running forever.
type Server struct {
	ListenAddr string
	Events     chan<- actor.Event
	Log        logrus.FieldLogger
}

// ListenAndServe binds ListenAddr and accepts connections until ctx is
// cancelled, at which point the listener is closed and ListenAndServe
// returns nil. Each accepted connection gets its own goroutine running
// Session.Run with the same ctx, so a server-wide shutdown also
// unblocks every in-flight session's blocked read.
func (s *Server) ListenAndServe(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.ListenAddr)
	if err != nil {
		return err
	}
	s.Log.WithField("addr", s.ListenAddr).Info("listening")

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				if errors.Is(err, net.ErrClosed) {
					return nil
				}
				s.Log.WithError(err).Warn("accept failed")
				continue
			}
		}

		sess := New(conn, s.Events, s.Log)
		go sess.Run(ctx)
	}
}
