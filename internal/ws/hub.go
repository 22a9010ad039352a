package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/Krimson/stress-monitory/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Источник проверяется на уровне CORS middleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub рассылает уведомления о новых алертах всем подключенным клиентам
type Hub struct {
	// Зарегистрированные клиенты
	clients map[*Client]bool

	// Канал для регистрации клиентов
	register chan *Client

	// Канал для отмены регистрации клиентов
	unregister chan *Client

	// Канал для исходящих уведомлений
	broadcast chan []byte

	// Закрывается при остановке цикла хаба; разблокирует регистрацию
	done chan struct{}

	mu sync.RWMutex
}

// NewHub создает новый хаб уведомлений
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// Run запускает цикл хаба; блокирует до отмены контекста
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("[WS] Client connected, total=%d", h.clientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("[WS] Client disconnected, total=%d", h.clientCount())

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Медленный клиент не должен тормозить рассылку
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NotifyAlert публикует новый алерт всем подписчикам. Не блокирует
// вызывающий пайплайн: при переполнении буфера уведомление отбрасывается.
func (h *Hub) NotifyAlert(view models.AlertView) {
	data, err := json.Marshal(view)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal alert notification: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("[WARN] Alert broadcast channel full, dropping notification")
	}
}

// ServeWS апгрейдит HTTP соединение и регистрирует клиента
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ERROR] WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 16),
	}

	select {
	case h.register <- client:
	case <-h.done:
		// Хаб уже остановлен, подключение не принимается
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// drop снимает регистрацию клиента; не блокирует после остановки хаба
func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}
