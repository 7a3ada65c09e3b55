// Package livefeed implementa el hub de WebSockets del feed en vivo: el mapa
// público recibe en tiempo real las denuncias nuevas y los cambios de estado.
// El flujo es unidireccional, del servidor hacia los clientes; los eventos
// llegan al hub por Redis Pub/Sub, lo que permite correr varias instancias
// del servidor detrás de un balanceador.
package livefeed

import "justiciaverde/backend/internal/models"

// Cliente es la interfaz de una conexión suscrita al feed. Abstrae el
// transporte para que el hub gestione las conexiones de manera uniforme y los
// tests no necesiten un WebSocket real.
type Cliente interface {
	// GetID devuelve el identificador único de la conexión.
	GetID() string

	// GetSendChannel devuelve el canal por el que el hub entrega eventos a
	// esta conexión. Es de solo envío.
	GetSendChannel() chan<- models.EventoDenuncia

	// Run arranca las bombas de lectura y escritura de la conexión.
	Run()
	// Close cierra la conexión y sus canales asociados.
	Close()
}
