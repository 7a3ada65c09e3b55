package handler

import (
	"net/http"

	"justiciaverde/backend/internal/denuncia"
	"justiciaverde/backend/internal/models"
	"justiciaverde/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type crearDenunciaRequest struct {
	Titulo      string           `json:"titulo" binding:"required"`
	Descripcion string           `json:"descripcion" binding:"required"`
	Ubicacion   models.Ubicacion `json:"ubicacion" binding:"required"`
	Categorias  []string         `json:"categorias" binding:"required"`
	Evidencias  []string         `json:"evidencias"`
	Prioridad   string           `json:"prioridad"`
	Anonima     bool             `json:"anonima"`
}

// CrearDenuncia registra una denuncia nueva. La ruta lleva AuthOptional: sin
// token, o con anonima=true, la denuncia se guarda sin identidad alguna.
func (h *Handler) CrearDenuncia(c *gin.Context) {
	var req crearDenunciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.Denuncias.Crear(actorDesde(c), denuncia.CrearDenunciaInput{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		Ubicacion:   req.Ubicacion,
		Categorias:  req.Categorias,
		Evidencias:  req.Evidencias,
		Prioridad:   req.Prioridad,
		Anonima:     req.Anonima,
	})
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// ListarDenuncias lista las denuncias públicas con filtros opcionales de
// texto, estado y prioridad.
func (h *Handler) ListarDenuncias(c *gin.Context) {
	f := storage.FiltroDenuncias{Texto: c.Query("texto")}
	if v := c.Query("estado"); v != "" {
		estado := models.EstadoDenuncia(v)
		f.Estado = &estado
	}
	if v := c.Query("prioridad"); v != "" {
		prioridad := models.Prioridad(v)
		f.Prioridad = &prioridad
	}

	denuncias, err := h.Denuncias.ListarPublicas(f)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, denuncias)
}

// ListarMias lista las denuncias creadas por el actor.
func (h *Handler) ListarMias(c *gin.Context) {
	denuncias, err := h.Denuncias.ListarMias(actorDesde(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, denuncias)
}

// ListarAsignadas lista los casos activos del revisor.
func (h *Handler) ListarAsignadas(c *gin.Context) {
	denuncias, err := h.Denuncias.ListarAsignadas(actorDesde(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, denuncias)
}

// ListarDisponibles lista el pool autoasignable para revisores.
func (h *Handler) ListarDisponibles(c *gin.Context) {
	denuncias, err := h.Denuncias.ListarDisponibles(actorDesde(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, denuncias)
}

// GetDenuncia devuelve el detalle. La vista se cuenta en background.
func (h *Handler) GetDenuncia(c *gin.Context) {
	d, err := h.Denuncias.Obtener(c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type cambiarEstadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// CambiarEstado ejecuta una transición del ciclo de vida.
func (h *Handler) CambiarEstado(c *gin.Context) {
	var req cambiarEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Denuncias.CambiarEstado(actorDesde(c), c.Param("id"), models.EstadoDenuncia(req.Estado)); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"estado": req.Estado})
}

type asignarRequest struct {
	// Si falta, el revisor se asigna a sí mismo.
	RevisorID string `json:"revisorId"`
}

// Asignar registra a un revisor como responsable del caso.
func (h *Handler) Asignar(c *gin.Context) {
	var req asignarRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := actorDesde(c)
	revisorID := req.RevisorID
	if revisorID == "" {
		revisorID = actor.ID
	}

	asignacion, err := h.Denuncias.Asignar(actor, c.Param("id"), revisorID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asignacion)
}

// ToggleLike agrega o quita el like del actor.
func (h *Handler) ToggleLike(c *gin.Context) {
	liked, likes, err := h.Denuncias.ToggleLike(actorDesde(c), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": likes})
}

// RegistrarCompartido incrementa el contador de compartidos. Ruta pública:
// compartir no requiere cuenta.
func (h *Handler) RegistrarCompartido(c *gin.Context) {
	compartidos, err := h.Denuncias.RegistrarCompartido(c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"compartidos": compartidos})
}

type cambiarPrioridadRequest struct {
	Prioridad string `json:"prioridad" binding:"required"`
}

// CambiarPrioridad ajusta la prioridad (solo admin).
func (h *Handler) CambiarPrioridad(c *gin.Context) {
	var req cambiarPrioridadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Denuncias.CambiarPrioridad(actorDesde(c), c.Param("id"), req.Prioridad); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prioridad": req.Prioridad})
}

type cambiarVisibilidadRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// CambiarVisibilidad oculta o muestra la denuncia (solo admin).
func (h *Handler) CambiarVisibilidad(c *gin.Context) {
	var req cambiarVisibilidadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Denuncias.CambiarVisibilidad(actorDesde(c), c.Param("id"), *req.Visible); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visible": *req.Visible})
}

// ArchivarDenuncia elimina la denuncia (solo admin).
func (h *Handler) ArchivarDenuncia(c *gin.Context) {
	if err := h.Denuncias.Archivar(actorDesde(c), c.Param("id")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
