package handler

import (
	"net/http"

	"justiciaverde/backend/internal/livefeed"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Permite conexiones desde cualquier origen. ¡Configurar en producción!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket eleva la conexión HTTP a WebSocket y la suscribe al feed en
// vivo. El feed es público: no requiere token, solo difunde denuncias con
// visibilidad pública.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "no se pudo elevar la conexión"})
		return
	}

	cliente := livefeed.NewWebSocketCliente(uuid.New().String(), conn, h.Hub)
	h.Hub.RegisterCh <- cliente
	cliente.Run()
}
