package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Krimson/stress-monitory/pkg/models"
)

func dialHub(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial hub: %v", err)
	}
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for hub.clientCount() < n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d registered clients, got %d", n, hub.clientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHub_BroadcastsAlert(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	conn := dialHub(t, server)
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.NotifyAlert(models.AlertView{
		RecordID:    "student-1",
		StressScore: 80,
		Timestamp:   "2025-07-27T12:00:00Z",
	})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read notification: %v", err)
	}

	var view models.AlertView
	if err := json.Unmarshal(data, &view); err != nil {
		t.Fatalf("Failed to decode notification: %v", err)
	}
	if view.RecordID != "student-1" {
		t.Errorf("Expected record_id student-1, got %q", view.RecordID)
	}
	if view.StressScore != 80 {
		t.Errorf("Expected stress_score 80, got %g", view.StressScore)
	}
}

func TestHub_ShutdownReleasesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	conn := dialHub(t, server)
	defer conn.Close()
	waitForClients(t, hub, 1)

	cancel()

	select {
	case <-hub.done:
	case <-time.After(time.Second):
		t.Fatal("Hub loop did not stop after context cancel")
	}

	// Существующий клиент получает close, а не висящее соединение
	conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("Expected connection to be closed after shutdown")
	}

	// Попытка подключения после остановки не блокируется на регистрации
	attempted := make(chan struct{})
	go func() {
		defer close(attempted)
		url := "ws" + strings.TrimPrefix(server.URL, "http")
		if conn2, _, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
			conn2.Close()
		}
	}()

	select {
	case <-attempted:
	case <-time.After(time.Second):
		t.Fatal("ServeWS blocked after hub shutdown")
	}
}
