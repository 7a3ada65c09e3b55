package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asignacion vincula una denuncia con el revisor que la acompaña durante un
// período. FechaFinalizacion en NULL significa que la asignación está activa;
// un índice único parcial sobre (denuncia_id) WHERE fecha_finalizacion IS NULL
// garantiza a nivel de almacenamiento que nunca haya más de una activa.
type Asignacion struct {
	ID         string   `gorm:"primaryKey" json:"id"`
	DenunciaID string   `gorm:"not null;index" json:"denunciaId"`
	Denuncia   Denuncia `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	RevisorID  string   `gorm:"not null;index" json:"revisorId"`
	Revisor    Usuario  `gorm:"foreignKey:RevisorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Notas string `json:"notas,omitempty"`

	FechaAsignacion   time.Time  `gorm:"autoCreateTime" json:"fechaAsignacion"`
	FechaFinalizacion *time.Time `gorm:"index" json:"fechaFinalizacion,omitempty"`
}

// TableName fija el nombre en español; el plural automático de GORM no
// conoce las reglas del idioma.
func (Asignacion) TableName() string { return "asignaciones" }

// Activa indica si la asignación sigue vigente.
func (a *Asignacion) Activa() bool { return a.FechaFinalizacion == nil }

// BeforeCreate genera un UUID si el ID no fue establecido.
func (a *Asignacion) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
