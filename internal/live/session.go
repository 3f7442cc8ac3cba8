package live

import (
	"context"
	"encoding/json"
	"errors"
	"hos-log-service/internal/geometry"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Change lists and buckets for a full day fit comfortably.
	maxMessageSize = 64 << 10
)

// Session hosts the grid engine for one websocket client. Inbound messages
// update the inputs immediately; recomputation runs on its own goroutine and
// always works from the latest inputs, dropping intermediate states.
type Session struct {
	conn     *websocket.Conn
	renderer *Renderer
	updates  *Coalescer[Inputs]
	problems *Coalescer[string]
	send     chan []byte
	now      func() time.Time
}

func NewSession(conn *websocket.Conn, layouts map[string]geometry.Layout) *Session {
	return &Session{
		conn:     conn,
		renderer: NewRenderer(layouts),
		updates:  NewCoalescer[Inputs](),
		problems: NewCoalescer[string](),
		send:     make(chan []byte, 16),
		now:      time.Now,
	}
}

// Run blocks until the client disconnects or ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		s.renderLoop(ctx)
	}()
	go s.writePump()

	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	s.readPump()
	cancel()
	<-rendered
}

func (s *Session) readPump() {
	defer s.conn.Close()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	var inputs Inputs
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("live: read failed: err=%v", err)
			}
			return
		}

		var msg Inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.problems.Offer("invalid message: " + err.Error())
			continue
		}

		next := inputs
		if err := next.Apply(msg, s.now()); err != nil {
			s.problems.Offer(err.Error())
			continue
		}
		inputs = next
		s.updates.Offer(inputs)
	}
}

func (s *Session) renderLoop(ctx context.Context) {
	defer close(s.send)

	for {
		select {
		case <-ctx.Done():
			return

		case <-s.problems.Ready():
			if p, ok := s.problems.Take(); ok {
				if !s.emit(ctx, Outbound{Type: TypeError, Data: map[string]string{"error": p}}) {
					return
				}
			}

		case <-s.updates.Ready():
			in, ok := s.updates.Take()
			if !ok {
				continue
			}
			out, err := s.renderer.Render(in)
			if errors.Is(err, geometry.ErrUnmeasured) {
				log.Printf("live: keeping previous geometry: err=%v", err)
			} else if err != nil {
				log.Printf("live: render failed: err=%v", err)
			}
			for _, m := range out {
				if !s.emit(ctx, m) {
					return
				}
			}
		}
	}
}

func (s *Session) emit(ctx context.Context, m Outbound) bool {
	b, err := json.Marshal(m)
	if err != nil {
		log.Printf("live: encode failed: type=%s err=%v", m.Type, err)
		return true
	}
	select {
	case s.send <- b:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
