package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetEstadisticas devuelve los agregados de la portada. Los números pueden
// tener hasta el TTL del caché de atraso.
func (h *Handler) GetEstadisticas(c *gin.Context) {
	e, err := h.Estadisticas.Obtener()
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}
