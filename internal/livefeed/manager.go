package livefeed

import (
	"encoding/json"
	"log"

	"justiciaverde/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Suscriptor abre la suscripción al canal de eventos de denuncias. Lo
// implementa el almacén; en tests se deja nil y los eventos se inyectan
// directo en el canal interno.
type Suscriptor interface {
	SubscribirEventos() *redis.PubSub
}

// Manager es el hub del feed en vivo. Mantiene el conjunto de conexiones
// suscritas y les difunde cada evento recibido por Redis. Todo el estado se
// toca únicamente desde la goroutine de Run: los canales son la única vía de
// entrada.
type Manager struct {
	Clients map[string]Cliente

	RegisterCh   chan Cliente
	UnregisterCh chan Cliente

	Suscriptor Suscriptor

	// EventosCh recibe los eventos ya decodificados. Normalmente lo alimenta
	// el listener de Redis; los tests lo alimentan directo.
	EventosCh chan models.EventoDenuncia
}

// NewManager crea el hub del feed.
func NewManager(sub Suscriptor) *Manager {
	return &Manager{
		Clients:      make(map[string]Cliente),
		RegisterCh:   make(chan Cliente),
		UnregisterCh: make(chan Cliente),
		Suscriptor:   sub,
		EventosCh:    make(chan models.EventoDenuncia),
	}
}

// startPubSubListener arranca la goroutine que escucha Redis Pub/Sub y vuelca
// los eventos en el canal interno del hub.
func (m *Manager) startPubSubListener() {
	if m.Suscriptor == nil {
		return
	}
	go func() {
		pubsub := m.Suscriptor.SubscribirEventos()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.EventoDenuncia
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("ERROR: Failed to decode evento from Redis: %v", err)
				continue
			}
			m.EventosCh <- ev
		}
	}()
}

// Run es el bucle principal del hub. Debe correr en su propia goroutine.
func (m *Manager) Run() {
	m.startPubSubListener()

	for {
		select {
		case c := <-m.RegisterCh:
			m.Clients[c.GetID()] = c
			log.Printf("Livefeed client %s connected (%d total)", c.GetID(), len(m.Clients))

		case c := <-m.UnregisterCh:
			if _, ok := m.Clients[c.GetID()]; ok {
				delete(m.Clients, c.GetID())
				c.Close()
				log.Printf("Livefeed client %s disconnected (%d total)", c.GetID(), len(m.Clients))
			}

		case ev := <-m.EventosCh:
			m.difundir(ev)
		}
	}
}

// difundir entrega el evento a cada conexión. Un cliente cuyo buffer está
// lleno se desconecta en el acto: el feed no acumula backlog por conexiones
// lentas.
func (m *Manager) difundir(ev models.EventoDenuncia) {
	for id, c := range m.Clients {
		select {
		case c.GetSendChannel() <- ev:
		default:
			delete(m.Clients, id)
			c.Close()
			log.Printf("Livefeed client %s dropped: send buffer full", id)
		}
	}
}
