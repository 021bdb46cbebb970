// Package server is the browser host: an HTTP API plus a single websocket
// control connection that drives the App.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/boxstage/internal/app"
	"github.com/Faultbox/boxstage/internal/placement"
	"github.com/Faultbox/boxstage/internal/web"
)

const shutdownTimeout = 5 * time.Second

// Server serialises every App call behind one mutex.
type Server struct {
	mu  sync.Mutex // guards app
	app *app.App

	connMu sync.Mutex // guards active
	active bool

	upgrader  websocket.Upgrader
	staticDir string
	log       *zap.Logger
}

// New creates a server for a. staticDir overrides the embedded client when
// it names an existing directory. log may be nil.
func New(a *app.App, staticDir string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		app:       a,
		staticDir: staticDir,
		log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/", s.staticFileServer())
	return mux
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	st := s.app.Snapshot()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

// handleWS upgrades the control connection and processes messages until the
// client goes away or sends something undecodable.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.acquire() {
		http.Error(w, "control connection already active", http.StatusConflict)
		return
	}
	defer s.release()
	defer s.endDrag()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := s.log.With(zap.String("remote", r.RemoteAddr))
	log.Info("control connected")
	defer log.Info("control disconnected")

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("read failed", zap.Error(err))
			}
			return
		}

		reply, ok := s.handleMessage(msg)
		if !ok {
			continue
		}
		if err := conn.WriteJSON(reply); err != nil {
			log.Debug("write failed", zap.Error(err))
			return
		}
	}
}

// acquire claims the single control slot.
func (s *Server) acquire() bool {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.active {
		return false
	}
	s.active = true
	return true
}

func (s *Server) release() {
	s.connMu.Lock()
	s.active = false
	s.connMu.Unlock()
}

// endDrag releases a drag left open by a client that went away, so the next
// connection starts Idle with the camera controls enabled.
func (s *Server) endDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.app.Selected() == nil {
		return
	}
	s.app.HandlePointer(placement.PointerEvent{Action: placement.Release})
	s.log.Debug("released drag of disconnected client")
}

// handleMessage applies one message. ok is false for unknown types, which
// get no reply.
func (s *Server) handleMessage(msg Message) (reply Reply, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch msg.T {
	case "down":
		s.pointer(placement.Press, msg)
	case "move":
		s.pointer(placement.Move, msg)
	case "up":
		s.pointer(placement.Release, msg)
	case "outer":
		err = s.setOuter(msg)
	case "spawn":
		_, err = s.app.Spawn(placement.SpawnRequest{
			Width:  msg.W,
			Height: msg.H,
			Depth:  msg.D,
			Color:  msg.Color,
		})
	case "camera":
		err = s.app.CameraCommand(app.CameraCommand(msg.Op))
	case "resize":
		s.app.Resize(msg.W, msg.H)
	case "orbit":
		s.app.Orbit(msg.X, msg.Y)
	case "zoom":
		s.app.Zoom(msg.Value)
	default:
		s.log.Debug("ignoring message", zap.String("t", msg.T))
		return Reply{}, false
	}

	reply = Reply{T: "state", State: s.app.Snapshot()}
	if err != nil {
		reply.Error = err.Error()
	}
	return reply, true
}

func (s *Server) pointer(action placement.Action, msg Message) {
	if msg.W > 0 && msg.H > 0 {
		s.app.Resize(msg.W, msg.H)
	}
	s.app.HandlePointer(placement.PointerEvent{Action: action, X: msg.X, Y: msg.Y})
}

func (s *Server) setOuter(msg Message) error {
	axis, err := placement.ParseAxis(msg.Axis)
	if err != nil {
		return err
	}
	if !s.app.SetOuterDimension(axis, msg.Value) {
		return fmt.Errorf("outer %s: value %v ignored", axis, msg.Value)
	}
	return nil
}

func (s *Server) staticFileServer() http.Handler {
	if s.staticDir != "" {
		if info, err := os.Stat(s.staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(s.staticDir))
		}
		s.log.Warn("static dir unavailable, using embedded client", zap.String("dir", s.staticDir))
	}

	embedded, err := web.StaticFS()
	if err != nil {
		s.log.Error("static assets unavailable", zap.Error(err))
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}
