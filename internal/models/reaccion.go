package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reaccion es un like de un usuario sobre una denuncia. El índice único
// compuesto (denuncia_id, usuario_id) impone "un like por actor" en la base:
// dos toggles concurrentes del mismo usuario jamás pueden duplicar la fila.
type Reaccion struct {
	ID         string `gorm:"primaryKey" json:"id"`
	DenunciaID string `gorm:"not null;uniqueIndex:idx_reaccion_unica" json:"denunciaId"`
	UsuarioID  string `gorm:"not null;uniqueIndex:idx_reaccion_unica" json:"usuarioId"`

	FechaCreacion time.Time `gorm:"autoCreateTime" json:"fechaCreacion"`
}

// TableName fija el nombre en español; el plural automático de GORM no
// conoce las reglas del idioma.
func (Reaccion) TableName() string { return "reacciones" }

// BeforeCreate genera un UUID si el ID no fue establecido.
func (r *Reaccion) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
