package telegram_test

import (
	"testing"

	"justiciaverde/backend/internal/models"
	"justiciaverde/backend/internal/telegram"

	"github.com/stretchr/testify/assert"
)

func TestFormatearDenunciaNueva(t *testing.T) {
	d := &models.Denuncia{
		Titulo:    "Vertimiento en el río",
		Prioridad: models.PrioridadAlta,
		Ubicacion: models.Ubicacion{Direccion: "Km 3 vía al río"},
	}

	texto := telegram.FormatearDenunciaNueva(d)
	assert.Contains(t, texto, "Vertimiento en el río")
	assert.Contains(t, texto, "alta")
	assert.Contains(t, texto, "Km 3 vía al río")
	assert.Contains(t, texto, "identificada")
}

func TestFormatearDenunciaNueva_Anonima(t *testing.T) {
	d := &models.Denuncia{Titulo: "Quema de bosque", Anonima: true}

	texto := telegram.FormatearDenunciaNueva(d)
	assert.Contains(t, texto, "anónima")
	assert.NotContains(t, texto, "identificada")
}

func TestFormatearCambioEstado(t *testing.T) {
	d := &models.Denuncia{Titulo: "Minería ilegal en la reserva"}

	resuelta := telegram.FormatearCambioEstado(d, models.EstadoEnProceso, models.EstadoResuelta)
	assert.Contains(t, resuelta, "✅")
	assert.Contains(t, resuelta, "EN_PROCESO")
	assert.Contains(t, resuelta, "RESUELTA")

	rechazada := telegram.FormatearCambioEstado(d, models.EstadoRecibida, models.EstadoRechazada)
	assert.Contains(t, rechazada, "❌")

	enProceso := telegram.FormatearCambioEstado(d, models.EstadoRecibida, models.EstadoEnProceso)
	assert.Contains(t, enProceso, "🔄")
}
