// Package chat implements the websocket session relay: one long-lived
// connection per client, turns streamed chunk by chunk from the completion
// provider, one billing record per completed turn.
//
// Privacy rule for this package: user text and model output exist only on
// the live streaming path. Nothing content-derived is logged or stored.
package chat

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mindwell-labs/mindwell/backend/internal/model/billing"
	chatmodel "github.com/mindwell-labs/mindwell/backend/internal/model/chat"
	"github.com/mindwell-labs/mindwell/backend/internal/provider"
	"github.com/mindwell-labs/mindwell/backend/internal/service/ai"
)

// CompletionStreamer abstracts the completion provider so the relay can be
// exercised with a fake stream in tests.
type CompletionStreamer interface {
	StreamReply(ctx context.Context, messages []*schema.Message) (*schema.StreamReader[*schema.Message], error)
	Model() string
}

// Handler upgrades relay connections and runs one session per connection.
type Handler struct {
	ai       CompletionStreamer
	ledger   *billing.Ledger
	whisper  string
	upgrader websocket.Upgrader
}

// New creates the relay handler. The ledger is the only state shared across
// sessions; everything else is per-connection.
func New(aiSvc CompletionStreamer, ledger *billing.Ledger, whisper string) *Handler {
	return &Handler{
		ai:      aiSvc,
		ledger:  ledger,
		whisper: whisper,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the streaming endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/chat", h.handleWebSocket)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[relay] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sess := newSession(uuid.NewString(), conn, h.ai, h.ledger, h.whisper)

	// Metadata only; never the conversation.
	log.Printf("[relay] session %s: connection opened", sess.meta.ID)
	sess.run(r.Context())
	log.Printf("[relay] session %s: connection closed", sess.meta.ID)
}

// frameConn is the slice of *websocket.Conn the session needs.
type frameConn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v interface{}) error
}

// session owns one connection's lifecycle. States: idle between turns,
// streaming while a turn is in flight, closed on disconnect.
type session struct {
	meta    chatmodel.Session
	conn    frameConn
	ai      CompletionStreamer
	ledger  *billing.Ledger
	whisper string
}

func newSession(id string, conn frameConn, aiSvc CompletionStreamer, ledger *billing.Ledger, whisper string) *session {
	return &session{
		meta: chatmodel.Session{
			ID:        id,
			Model:     aiSvc.Model(),
			CreatedAt: time.Now().UTC(),
		},
		conn:    conn,
		ai:      aiSvc,
		ledger:  ledger,
		whisper: whisper,
	}
}

// run processes inbound frames sequentially until the connection drops. The
// read pump is the only reader; this goroutine is the only writer, so no
// two goroutines ever write the connection concurrently.
func (s *session) run(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	frames := make(chan chatmodel.Frame)
	go s.readPump(ctx, cancel, frames)

	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-frames:
			switch frame.Type {
			case chatmodel.FrameUserMessage:
				s.runTurn(ctx, frame.Text)
			default:
				// Malformed and unrecognized frames get an explicit
				// protocol error instead of a silent drop.
				s.writeError("unrecognized frame")
			}
		}
	}
}

// readPump decodes inbound frames and forwards them to the relay goroutine.
// A read failure means the client disconnected: cancel the session context
// so any in-flight provider stream is released promptly.
func (s *session) readPump(ctx context.Context, cancel context.CancelFunc, frames chan<- chatmodel.Frame) {
	defer cancel()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		select {
		case frames <- chatmodel.DecodeFrame(data):
		case <-ctx.Done():
			return
		}
	}
}

// runTurn drives one user-message-to-reply cycle: compose, stream chunks in
// provider order, then either bill and signal done, or surface a normalized
// error and bill nothing. Either way the session returns to idle.
func (s *session) runTurn(ctx context.Context, utterance string) {
	start := time.Now()

	messages := ai.Compose(utterance, s.whisper)

	stream, err := s.ai.StreamReply(ctx, messages)
	if err != nil {
		s.writeError(provider.Normalize(err))
		return
	}
	defer stream.Close()

	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			// Partial delivery still counts as a failed turn: no billing.
			// After a disconnect-triggered cancel there is nobody left to
			// receive an error frame.
			if ctx.Err() == nil {
				s.writeError(provider.Normalize(recvErr))
			}
			return
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}

		if err := s.writeFrame(chatmodel.ChunkFrame(chunk.Content)); err != nil {
			return
		}
	}

	if ctx.Err() != nil {
		// Disconnected while the stream was draining; the turn never
		// completed from the client's perspective.
		return
	}

	elapsed := time.Since(start)
	s.ledger.Append(billing.NewRecord(s.meta.ID, elapsed, s.meta.Model))

	if err := s.writeFrame(chatmodel.DoneFrame()); err != nil {
		return
	}

	log.Printf("[relay] session %s: turn completed duration=%.2fs", s.meta.ID, elapsed.Seconds())
}

func (s *session) writeFrame(frame chatmodel.Frame) error {
	if err := s.conn.WriteJSON(frame); err != nil {
		log.Printf("[relay] session %s: write failed: %v", s.meta.ID, err)
		return err
	}
	return nil
}

func (s *session) writeError(message string) {
	_ = s.writeFrame(chatmodel.ErrorFrame(message))
}
