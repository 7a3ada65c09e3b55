package livefeed_test

import (
	"testing"
	"time"

	"justiciaverde/backend/internal/livefeed"
	"justiciaverde/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestManager_RegisterUnregister(t *testing.T) {
	hub := livefeed.NewManager(nil)

	clientA := newMockClient("conn_A", 10)

	go hub.Run()

	hub.RegisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, hub.Clients, "conn_A")

	hub.UnregisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, hub.Clients, "conn_A")
}

func TestManager_DifundeATodos(t *testing.T) {
	hub := livefeed.NewManager(nil)

	clientA := newMockClient("conn_A", 10)
	clientB := newMockClient("conn_B", 10)

	go hub.Run()

	hub.RegisterCh <- clientA
	hub.RegisterCh <- clientB
	time.Sleep(100 * time.Millisecond)

	hub.EventosCh <- models.EventoDenuncia{
		Tipo:       models.EventoDenunciaNueva,
		DenunciaID: "d1",
		Titulo:     "Vertimiento en el río",
		Estado:     models.EstadoRecibida,
	}
	time.Sleep(100 * time.Millisecond)

	for _, c := range []*MockClient{clientA, clientB} {
		select {
		case ev := <-c.RecvChannel:
			assert.Equal(t, "d1", ev.DenunciaID)
			assert.Equal(t, models.EventoDenunciaNueva, ev.Tipo)
		default:
			t.Errorf("client %s did not receive evento", c.GetID())
		}
	}
}

func TestManager_DesconectaClienteLento(t *testing.T) {
	hub := livefeed.NewManager(nil)

	// Buffer cero: el primer evento no cabe y el hub debe soltar al cliente
	// en lugar de bloquearse.
	lento := newMockClient("conn_lento", 0)

	go hub.Run()

	hub.RegisterCh <- lento
	time.Sleep(100 * time.Millisecond)

	hub.EventosCh <- models.EventoDenuncia{Tipo: models.EventoCambioEstado, DenunciaID: "d1"}
	time.Sleep(100 * time.Millisecond)

	assert.NotContains(t, hub.Clients, "conn_lento")
	// Soltar al cliente también cierra su conexión.
	assert.True(t, lento.cerrado)
}
