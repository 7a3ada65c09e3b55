package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // Necesario para pq.StringArray
	"gorm.io/gorm"
)

// EstadoDenuncia es el estado de una denuncia dentro de su ciclo de vida.
type EstadoDenuncia string

const (
	EstadoRecibida  EstadoDenuncia = "RECIBIDA"
	EstadoEnProceso EstadoDenuncia = "EN_PROCESO"
	EstadoResuelta  EstadoDenuncia = "RESUELTA"
	EstadoRechazada EstadoDenuncia = "RECHAZADA"
)

// EsTerminal indica si el estado ya no admite más transiciones.
func (e EstadoDenuncia) EsTerminal() bool {
	return e == EstadoResuelta || e == EstadoRechazada
}

// Prioridad de atención de una denuncia. La asigna el denunciante al crear
// y solo un administrador puede cambiarla después.
type Prioridad string

const (
	PrioridadBaja    Prioridad = "baja"
	PrioridadMedia   Prioridad = "media"
	PrioridadAlta    Prioridad = "alta"
	PrioridadCritica Prioridad = "critica"
)

// Ubicacion es el punto geográfico de la denuncia. El mapa la consume tal
// cual; aquí solo se almacena.
type Ubicacion struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Direccion string  `json:"direccion,omitempty"`
}

// Denuncia representa un reporte ciudadano de un incidente ambiental.
type Denuncia struct {
	ID          string      `gorm:"primaryKey" json:"id"`
	Categorias  []Categoria `gorm:"many2many:denuncia_categoria" json:"categorias"`
	Titulo      string      `gorm:"not null" json:"titulo"`
	Descripcion string      `gorm:"type:text;not null" json:"descripcion"`
	Ubicacion   Ubicacion   `gorm:"embedded;embeddedPrefix:ubicacion_" json:"ubicacion"`

	// Evidencias son localizadores opacos (URLs) ya subidos por la capa de
	// archivos; el core nunca interpreta su contenido.
	Evidencias pq.StringArray `gorm:"type:text[]" json:"evidencias"`

	// UsuarioID queda en NULL para denuncias anónimas: una denuncia anónima
	// no retiene identidad alguna, ni siquiera internamente.
	UsuarioID *string  `gorm:"index" json:"-"`
	Usuario   *Usuario `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Anonima   bool     `gorm:"not null;default:false" json:"-"`

	Estado             EstadoDenuncia `gorm:"size:20;not null;default:'RECIBIDA';index" json:"status"`
	Prioridad          Prioridad      `gorm:"size:10;not null;default:'media';index" json:"prioridad"`
	VisibilidadPublica bool           `gorm:"not null;default:true;index" json:"visibilidadPublica"`

	Vistas      int `gorm:"not null;default:0" json:"vistas"`
	Compartidos int `gorm:"not null;default:0" json:"compartidos"`

	FechaCreacion      time.Time `gorm:"autoCreateTime;index" json:"fechaCreacion"`
	FechaActualizacion time.Time `gorm:"autoUpdateTime" json:"fechaActualizacion"`

	// Campos calculados al leer, nunca persistidos. El contador de likes se
	// deriva siempre del conjunto de reacciones para que no pueda divergir.
	Reacciones  ReaccionesResumen `gorm:"-" json:"reacciones"`
	Denunciante *Denunciante      `gorm:"-" json:"denunciante,omitempty"`
	Revisor     *RevisorAsignado  `gorm:"-" json:"revisor,omitempty"`
}

// Denunciante es la vista pública del autor de la denuncia.
type Denunciante struct {
	ID      string `json:"id,omitempty"`
	Nombre  string `json:"nombre,omitempty"`
	Email   string `json:"email,omitempty"`
	Anonimo bool   `json:"anonimo"`
}

// RevisorAsignado describe la asignación activa de la denuncia, si existe.
type RevisorAsignado struct {
	ID              string    `json:"id"`
	Nombre          string    `json:"nombre"`
	Organizacion    string    `json:"organizacion"`
	FechaAsignacion time.Time `json:"fechaAsignacion"`
}

// ReaccionesResumen agrega el conjunto de likes de una denuncia.
type ReaccionesResumen struct {
	Likes        int      `json:"likes"`
	UsuariosLike []string `json:"usuariosLike"`
}

// BeforeCreate genera un UUID si el ID no fue establecido.
func (d *Denuncia) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return
}
