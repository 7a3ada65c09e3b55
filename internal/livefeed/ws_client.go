package livefeed

import (
	"encoding/json"
	"log"
	"time"

	"justiciaverde/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// Buffer de eventos por conexión. Si se llena, el hub desconecta al
	// cliente en lugar de bloquearse.
	sendBufferSize = 16
)

// WebSocketCliente implementa Cliente sobre gorilla/websocket.
type WebSocketCliente struct {
	ID   string
	Conn *websocket.Conn
	Hub  *Manager
	Send chan models.EventoDenuncia
}

// NewWebSocketCliente crea la conexión con su buffer de envío.
func NewWebSocketCliente(id string, conn *websocket.Conn, hub *Manager) *WebSocketCliente {
	return &WebSocketCliente{
		ID:   id,
		Conn: conn,
		Hub:  hub,
		Send: make(chan models.EventoDenuncia, sendBufferSize),
	}
}

func (c *WebSocketCliente) GetID() string                                { return c.ID }
func (c *WebSocketCliente) GetSendChannel() chan<- models.EventoDenuncia { return c.Send }

// Run arranca las bombas de lectura y escritura.
func (c *WebSocketCliente) Run() {
	go c.writePump()
	go c.readPump()
}

// Close cierra el canal Send, lo que detiene writePump.
func (c *WebSocketCliente) Close() {
	close(c.Send)
	// readPump termina solo cuando Conn.Close() corre en su defer
}

// readPump no espera mensajes del cliente: el feed es unidireccional. Su
// única función es mantener los pongs y detectar la desconexión.
func (c *WebSocketCliente) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}
		// Cualquier payload entrante se descarta.
	}
}

// writePump lee eventos del canal Send y los escribe en el WebSocket.
func (c *WebSocketCliente) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// El hub cerró el canal, cerramos la conexión WS
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			dataToWrite, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.ID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(dataToWrite)

			// Vaciamos lo que quede en el canal en el mismo frame
			n := len(c.Send)
			for i := 0; i < n; i++ {
				extra, _ := json.Marshal(<-c.Send)
				w.Write(extra)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			// Ping periódico para mantener viva la conexión
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
