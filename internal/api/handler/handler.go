// Package handler expone la API JSON de la plataforma sobre Gin y traduce la
// taxonomía de errores del core a códigos HTTP. Aquí no vive ninguna regla de
// negocio: los handlers validan el formato de entrada, resuelven al actor
// autenticado y delegan en los servicios.
package handler

import (
	"errors"
	"net/http"

	"justiciaverde/backend/internal/denuncia"
	"justiciaverde/backend/internal/estadisticas"
	"justiciaverde/backend/internal/livefeed"
	"justiciaverde/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler agrupa las dependencias de la API.
type Handler struct {
	Denuncias    *denuncia.Service
	Estadisticas *estadisticas.Service
	Storage      storage.Storage
	Hub          *livefeed.Manager
	JWTSecret    []byte
}

// NewHandler crea el handler de la API.
func NewHandler(d *denuncia.Service, e *estadisticas.Service, s storage.Storage, hub *livefeed.Manager, jwtSecret []byte) *Handler {
	return &Handler{
		Denuncias:    d,
		Estadisticas: e,
		Storage:      s,
		Hub:          hub,
		JWTSecret:    jwtSecret,
	}
}

// responderError mapea la taxonomía del core a códigos HTTP. Cualquier error
// fuera de la taxonomía es un 500 genérico: el detalle queda en el log, nunca
// en la respuesta.
func responderError(c *gin.Context, err error) {
	var ev *denuncia.ErrorValidacion

	switch {
	case errors.As(err, &ev):
		c.JSON(http.StatusBadRequest, gin.H{"error": ev.Error()})
	case errors.Is(err, denuncia.ErrNoEncontrada):
		c.JSON(http.StatusNotFound, gin.H{"error": "denuncia no encontrada"})
	case errors.Is(err, denuncia.ErrNoAutorizado):
		c.JSON(http.StatusForbidden, gin.H{"error": "no autorizado"})
	case errors.Is(err, denuncia.ErrTransicionInvalida):
		c.JSON(http.StatusConflict, gin.H{"error": "transición de estado inválida"})
	case errors.Is(err, denuncia.ErrYaAsignada):
		c.JSON(http.StatusConflict, gin.H{"error": "la denuncia ya tiene un revisor asignado"})
	case errors.Is(err, denuncia.ErrComentarioVacio):
		c.JSON(http.StatusBadRequest, gin.H{"error": "el contenido está vacío"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
	}
}
