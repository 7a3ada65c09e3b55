package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListarSeguimientos devuelve la bitácora de una denuncia, más reciente
// primero. Ruta pública: la bitácora forma parte de la transparencia del
// caso.
func (h *Handler) ListarSeguimientos(c *gin.Context) {
	denunciaID := c.Query("denunciaId")
	if denunciaID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "denunciaId es requerido"})
		return
	}

	segs, err := h.Denuncias.ListarSeguimientos(denunciaID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, segs)
}

type crearSeguimientoRequest struct {
	DenunciaID string `json:"denunciaId" binding:"required"`
	Contenido  string `json:"contenido" binding:"required"`
}

// CrearSeguimiento agrega un comentario a la bitácora.
func (h *Handler) CrearSeguimiento(c *gin.Context) {
	var req crearSeguimientoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seg, err := h.Denuncias.AgregarSeguimiento(actorDesde(c), req.DenunciaID, req.Contenido)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, seg)
}
