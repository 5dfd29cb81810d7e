// Package control exposes the animation engine over a WebSocket command
// channel so external processes can drive emotions, wind, blinks, and
// hand poses at runtime.
package control

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/normanking/animrig/internal/anim"
	"github.com/normanking/animrig/internal/character"
)

// Command is a single inbound control frame.
type Command struct {
	Type      string      `json:"type"`
	Character string      `json:"character,omitempty"`
	Emotion   string      `json:"emotion,omitempty"`
	Intensity float64     `json:"intensity,omitempty"`
	Wind      *[3]float64 `json:"wind,omitempty"`
	Hand      string      `json:"hand,omitempty"`
	Bends     *[5]float64 `json:"bends,omitempty"`
	ID        interface{} `json:"id,omitempty"`
}

// Response acknowledges a command, echoing its ID when one was sent.
type Response struct {
	OK     bool        `json:"ok"`
	Error  string      `json:"error,omitempty"`
	Result interface{} `json:"result,omitempty"`
	ID     interface{} `json:"id,omitempty"`
}

// Server accepts WebSocket connections and applies commands to the
// character manager. Command handling runs on the connection goroutine;
// the manager serializes access to the characters.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	chars    *character.Manager
	log      zerolog.Logger
	httpSrv  *http.Server
}

// NewServer creates a control server bound to the given manager.
func NewServer(addr string, chars *character.Manager, log zerolog.Logger) *Server {
	return &Server{
		addr:     addr,
		chars:    chars,
		log:      log,
		upgrader: websocket.Upgrader{},
	}
}

// Handler returns the HTTP routes served by the control endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{Addr: s.addr, Handler: s.Handler()}
	s.log.Info().Str("addr", s.addr).Msg("Control server listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and drains active ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	s.log.Debug().Str("remote", r.RemoteAddr).Msg("Control client connected")

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			s.writeResponse(conn, Response{OK: false, Error: "parse error"})
			continue
		}

		s.writeResponse(conn, s.handle(cmd))
	}

	s.log.Debug().Str("remote", r.RemoteAddr).Msg("Control client disconnected")
}

func (s *Server) handle(cmd Command) Response {
	resp := Response{ID: cmd.ID}

	result, err := s.dispatch(cmd)
	if err != nil {
		resp.Error = err.Error()
		return resp
	}

	resp.OK = true
	resp.Result = result
	return resp
}

func (s *Server) dispatch(cmd Command) (interface{}, error) {
	switch cmd.Type {
	case "list_characters":
		return s.chars.IDs(), nil

	case "set_emotion":
		emotion, ok := anim.ParseEmotion(cmd.Emotion)
		if !ok {
			return nil, fmt.Errorf("unknown emotion %q", cmd.Emotion)
		}
		return nil, s.chars.SetEmotion(character.ID(cmd.Character), emotion, float32(cmd.Intensity))

	case "set_wind":
		if cmd.Wind == nil {
			return nil, fmt.Errorf("set_wind requires a wind vector")
		}
		wind := mgl32.Vec3{float32(cmd.Wind[0]), float32(cmd.Wind[1]), float32(cmd.Wind[2])}
		return nil, s.chars.SetWindForce(character.ID(cmd.Character), wind)

	case "trigger_blink":
		return nil, s.chars.TriggerBlink(character.ID(cmd.Character))

	case "animate_fingers":
		hand, ok := parseHand(cmd.Hand)
		if !ok {
			return nil, fmt.Errorf("unknown hand %q", cmd.Hand)
		}
		if cmd.Bends == nil {
			return nil, fmt.Errorf("animate_fingers requires bends")
		}
		pose := anim.RestFingerPose()
		for i, b := range cmd.Bends {
			pose.Bends[i] = float32(b)
		}
		return nil, s.chars.AnimateFingers(character.ID(cmd.Character), hand, pose)

	default:
		return nil, fmt.Errorf("unknown command type %q", cmd.Type)
	}
}

func parseHand(s string) (anim.Hand, bool) {
	switch s {
	case "left":
		return anim.HandLeft, true
	case "right":
		return anim.HandRight, true
	}
	return anim.HandLeft, false
}

func (s *Server) writeResponse(conn *websocket.Conn, resp Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		s.log.Warn().Err(err).Msg("Control response write failed")
	}
}
