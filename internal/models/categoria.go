package models

// Categoria es una de las categorías ambientales fijas de la plataforma.
// El catálogo se siembra al arrancar y no crece desde la API.
type Categoria struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"uniqueIndex;not null" json:"nombre"`
}
