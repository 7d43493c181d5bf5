package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/radholm/Scampea-Backend/internal/types"
)

// newsClient serializes writes to one connection; gorilla/websocket
// allows only a single concurrent writer per conn.
type newsClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *newsClient) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

var (
	newsClients   = make(map[*newsClient]bool)
	newsClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 512
)

// BroadcastNews pushes a news frame to every connected feed client after a
// broadcast commits. Failed connections are dropped.
func BroadcastNews(title, text string) {
	newsClientsMu.RLock()
	if len(newsClients) == 0 {
		newsClientsMu.RUnlock()
		return
	}

	clients := make([]*newsClient, 0, len(newsClients))
	for client := range newsClients {
		clients = append(clients, client)
	}
	newsClientsMu.RUnlock()

	for _, client := range clients {
		err := client.writeJSON(map[string]string{
			"type":  "news",
			"title": title,
			"text":  text,
		})

		if err != nil {
			log.Printf("Failed to broadcast news to client: %v", err)
			newsClientsMu.Lock()
			delete(newsClients, client)
			newsClientsMu.Unlock()
			client.conn.Close()
		}
	}
}

// NewsFeed upgrades the request to a websocket and keeps the client
// registered until it disconnects.
func NewsFeed(ctx *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	client := &newsClient{conn: conn}

	newsClientsMu.Lock()
	newsClients[client] = true
	newsClientsMu.Unlock()

	defer func() {
		newsClientsMu.Lock()
		delete(newsClients, client)
		newsClientsMu.Unlock()
		conn.Close()
	}()

	err = client.writeJSON(map[string]string{
		"type":    "connected",
		"message": "News feed connection established",
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
