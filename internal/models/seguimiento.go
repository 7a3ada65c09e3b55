package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TipoSeguimiento distingue comentarios libres de registros de auditoría
// generados por el sistema al cambiar de estado.
type TipoSeguimiento string

const (
	SeguimientoComentario   TipoSeguimiento = "comentario"
	SeguimientoCambioEstado TipoSeguimiento = "cambio_estado"
)

// Seguimiento es una entrada de la bitácora de una denuncia: un comentario de
// un actor o el registro automático de un cambio de estado. Es append-only:
// nunca se edita ni se borra.
type Seguimiento struct {
	ID         string   `gorm:"primaryKey" json:"id"`
	DenunciaID string   `gorm:"not null;index" json:"denunciaId"`
	Denuncia   Denuncia `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	// Identidad del actor capturada en el momento de la acción. El rol es un
	// snapshot: no se vuelve a consultar aunque el usuario cambie después.
	UsuarioID     string `gorm:"not null;index" json:"usuarioId"`
	UsuarioNombre string `gorm:"not null" json:"usuarioNombre"`
	UsuarioRol    Rol    `gorm:"size:20;not null" json:"usuarioRole"`

	Tipo      TipoSeguimiento `gorm:"size:20;not null;default:'comentario'" json:"tipo"`
	Contenido string          `gorm:"type:text;not null" json:"contenido"`

	// Solo para tipo cambio_estado.
	EstadoAnterior *EstadoDenuncia `gorm:"size:20" json:"estadoAnterior,omitempty"`
	EstadoNuevo    *EstadoDenuncia `gorm:"size:20" json:"estadoNuevo,omitempty"`

	FechaCreacion time.Time `gorm:"autoCreateTime;index" json:"fechaCreacion"`
}

// BeforeCreate genera un UUID si el ID no fue establecido.
func (s *Seguimiento) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
