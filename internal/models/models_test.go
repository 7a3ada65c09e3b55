package models_test

import (
	"testing"
	"time"

	"justiciaverde/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBeforeCreateGeneraUUID(t *testing.T) {
	u := &models.Usuario{Nombre: "Ana", Email: "ana@example.com"}
	assert.NoError(t, u.BeforeCreate(nil))
	_, err := uuid.Parse(u.ID)
	assert.NoError(t, err)

	d := &models.Denuncia{Titulo: "t"}
	assert.NoError(t, d.BeforeCreate(nil))
	_, err = uuid.Parse(d.ID)
	assert.NoError(t, err)
}

func TestBeforeCreateRespetaIDExistente(t *testing.T) {
	u := &models.Usuario{ID: "id-fijado"}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, "id-fijado", u.ID)
}

func TestEstadoEsTerminal(t *testing.T) {
	assert.False(t, models.EstadoRecibida.EsTerminal())
	assert.False(t, models.EstadoEnProceso.EsTerminal())
	assert.True(t, models.EstadoResuelta.EsTerminal())
	assert.True(t, models.EstadoRechazada.EsTerminal())
}

func TestRolesDeUsuario(t *testing.T) {
	admin := &models.Usuario{Rol: models.RolAdmin}
	revisor := &models.Usuario{Rol: models.RolRevisor}
	demandante := &models.Usuario{Rol: models.RolDemandante}

	assert.True(t, admin.EsAdmin())
	assert.False(t, admin.EsRevisor())
	assert.True(t, revisor.EsRevisor())
	assert.False(t, demandante.EsAdmin())
	assert.False(t, demandante.EsRevisor())
}

func TestAsignacionActiva(t *testing.T) {
	a := &models.Asignacion{}
	assert.True(t, a.Activa())

	fin := time.Now()
	a.FechaFinalizacion = &fin
	assert.False(t, a.Activa())
}

func TestNombresDeTablaEnEspanol(t *testing.T) {
	// GORM pluralizaría mal los sustantivos en español.
	assert.Equal(t, "asignaciones", models.Asignacion{}.TableName())
	assert.Equal(t, "reacciones", models.Reaccion{}.TableName())
}
