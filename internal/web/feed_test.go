package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"unoserver/internal/protocol"
)

func TestFeedPublishesToSpectators(t *testing.T) {
	feed := NewFeed(zap.NewNop().Sugar())
	srv := httptest.NewServer(http.HandlerFunc(feed.handleWatch))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/watch"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	// registration races the dial returning; wait for the watcher
	deadline := time.Now().Add(2 * time.Second)
	for {
		feed.mu.Lock()
		n := len(feed.watchers)
		feed.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("spectator never registered")
		}
		time.Sleep(2 * time.Millisecond)
	}

	feed.Publish(&protocol.GameSnapshot{
		Players:     []protocol.SeatSummary{{ID: 0, HandCount: 7}},
		CurrentCard: "red 5",
		IsActive:    true,
	})

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m protocol.ServerMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		t.Fatalf("decode %q: %v", payload, err)
	}
	if m.Type != protocol.MsgState || m.State == nil || m.State.CurrentCard != "red 5" {
		t.Fatalf("spectator frame = %+v", m)
	}
	if m.State.YourHand != nil {
		t.Fatal("spectator frame carries hand contents")
	}
}
