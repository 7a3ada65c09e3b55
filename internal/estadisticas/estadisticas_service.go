// Package estadisticas expone los agregados de la plataforma para la
// portada pública. Los números se recalculan bajo demanda desde las tablas
// y se amortiguan con un caché corto en Redis.
package estadisticas

import (
	"log"

	"justiciaverde/backend/internal/models"
)

// Almacen es la porción del almacén que necesita este servicio.
type Almacen interface {
	ObtenerEstadisticas() (*models.Estadisticas, error)
	EstadisticasCacheGet() (*models.Estadisticas, error)
	EstadisticasCacheSet(e *models.Estadisticas) error
}

// Service calcula y cachea las estadísticas generales.
type Service struct {
	Storage Almacen
}

// NewService crea el servicio de estadísticas.
func NewService(s Almacen) *Service {
	return &Service{Storage: s}
}

// Obtener devuelve los agregados vigentes. Primero intenta el caché; si no
// hay entrada (o Redis falla) recalcula contra PostgreSQL y repone el caché.
// Los fallos de caché se registran y no interrumpen la respuesta: el caché es
// una optimización, nunca la fuente de verdad.
func (s *Service) Obtener() (*models.Estadisticas, error) {
	e, err := s.Storage.EstadisticasCacheGet()
	if err != nil {
		log.Printf("WARN: Failed to read estadisticas cache: %v", err)
	}
	if e != nil {
		return e, nil
	}

	e, err = s.Storage.ObtenerEstadisticas()
	if err != nil {
		return nil, err
	}

	if err := s.Storage.EstadisticasCacheSet(e); err != nil {
		log.Printf("WARN: Failed to write estadisticas cache: %v", err)
	}
	return e, nil
}
