package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rol define el nivel de permisos de un usuario dentro de la plataforma.
type Rol string

const (
	RolAdmin      Rol = "admin"
	RolRevisor    Rol = "revisor"
	RolDemandante Rol = "demandante"
)

// Usuario representa a un actor de la plataforma: demandante (ciudadano),
// revisor (organización acompañante) o administrador.
type Usuario struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Nombre   string `gorm:"not null" json:"nombre"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // hash bcrypt
	Rol      Rol    `gorm:"size:20;not null;default:'demandante';index" json:"role"`

	// Campos opcionales, principalmente para revisores
	Organizacion *string `json:"organizacion,omitempty"`
	Especialidad *string `json:"especialidad,omitempty"`
	Telefono     *string `json:"telefono,omitempty"`
	Avatar       *string `json:"avatar,omitempty"`

	Activo        bool      `gorm:"not null;default:true;index" json:"activo"`
	FechaRegistro time.Time `gorm:"autoCreateTime" json:"fechaRegistro"`

	// Contadores derivados, calculados al leer el perfil. Nunca se persisten.
	DenunciasCreadas    int64 `gorm:"-" json:"denunciasCreadas,omitempty"`
	DenunciasResueltas  int64 `gorm:"-" json:"denunciasResueltas,omitempty"`
	DenunciasEnRevision int64 `gorm:"-" json:"denunciasEnRevision,omitempty"`
}

// BeforeCreate genera un UUID si el ID no fue establecido.
func (u *Usuario) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// EsRevisor indica si el usuario puede tomar casos.
func (u *Usuario) EsRevisor() bool { return u.Rol == RolRevisor }

// EsAdmin indica si el usuario tiene permisos de administración.
func (u *Usuario) EsAdmin() bool { return u.Rol == RolAdmin }
