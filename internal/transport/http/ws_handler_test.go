package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"skilltrack-service/internal/domain"
)

func TestMasteryStream(t *testing.T) {
	server, hub := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/mastery"
	header := http.Header{}
	header.Set("X-User-ID", "u1")
	conn, _, err := websocket.DefaultDialer.Dial(u, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The handshake response races the server-side subscription, so keep
	// publishing until the subscriber picks one up.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(25 * time.Millisecond)
		defer ticker.Stop()
		for {
			hub.Publish(domain.MasteryScore{UserID: "u1", Topic: "Python", Score: 64.0})
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg struct {
		Type    string              `json:"type"`
		Payload domain.MasteryScore `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "mastery" || msg.Payload.Topic != "Python" || msg.Payload.Score != 64.0 {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestMasteryStreamRequiresUser(t *testing.T) {
	server, _ := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws/mastery"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatalf("expected dial failure without identity")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}
}
