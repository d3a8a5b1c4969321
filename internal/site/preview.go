package site

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/folioworks/folio/internal/events"
	"github.com/folioworks/folio/internal/readme"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// previewRequest is the incoming WebSocket message format.
type previewRequest struct {
	Type    string `json:"type"` // "render"
	Content string `json:"content"`
}

// previewMessage is the outgoing WebSocket message format.
type previewMessage struct {
	Type  string   `json:"type"` // "rendered", "content_changed" or "error"
	HTML  string   `json:"html,omitempty"`
	Paths []string `json:"paths,omitempty"`
	Error string   `json:"error,omitempty"`
}

// previewConn serialises writes; gorilla allows one writer at a time.
type previewConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (p *previewConn) send(msg previewMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.conn.WriteJSON(msg); err != nil {
		log.Printf("site: preview write: %v", err)
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("site: preview upgrade: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(readme.MaxBytes)

	s.previewClients.Add(1)
	defer s.previewClients.Add(-1)

	pc := &previewConn{conn: conn}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	if s.events != nil {
		s.events.Handle(ctx, func(ev events.Event[events.ContentChange]) {
			pc.send(previewMessage{Type: string(ev.Type), Paths: ev.Payload.Paths})
		})
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("site: preview read: %v", err)
			}
			return
		}

		var req previewRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			pc.send(previewMessage{Type: "error", Error: "invalid message format"})
			continue
		}

		switch req.Type {
		case "render":
			pc.send(previewMessage{Type: "rendered", HTML: s.renderer.Render(req.Content)})
		default:
			pc.send(previewMessage{Type: "error", Error: "unknown message type: " + req.Type})
		}
	}
}
