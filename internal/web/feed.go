package web

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"unoserver/internal/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// spectator is one read-only websocket viewer with its own write queue,
// so a slow viewer never stalls the publisher.
type spectator struct {
	ws   *websocket.Conn
	send chan []byte
}

func (s *spectator) writePump() {
	defer s.ws.Close()
	for msg := range s.send {
		if err := s.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Feed fans redacted snapshots out to websocket spectators.
type Feed struct {
	log *zap.SugaredLogger

	mu       sync.Mutex
	watchers map[*spectator]struct{}
}

func NewFeed(log *zap.SugaredLogger) *Feed {
	return &Feed{log: log, watchers: make(map[*spectator]struct{})}
}

// Publish sends the snapshot to every spectator. Full queues drop the
// frame for that viewer; the next snapshot supersedes it anyway.
func (f *Feed) Publish(snap *protocol.GameSnapshot) {
	b, err := protocolStateBytes(snap)
	if err != nil {
		f.log.Warnw("snapshot encode failed", "err", err)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for s := range f.watchers {
		select {
		case s.send <- b:
		default:
		}
	}
}

func (f *Feed) handleWatch(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warnw("websocket upgrade failed", "err", err)
		return
	}
	s := &spectator{ws: ws, send: make(chan []byte, 16)}
	f.mu.Lock()
	f.watchers[s] = struct{}{}
	f.mu.Unlock()
	f.log.Infow("spectator connected", "addr", ws.RemoteAddr().String())

	go s.writePump()
	go func() {
		// spectators send nothing; the read loop only detects closure
		defer func() {
			f.mu.Lock()
			delete(f.watchers, s)
			f.mu.Unlock()
			close(s.send)
			f.log.Infow("spectator disconnected", "addr", ws.RemoteAddr().String())
		}()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
