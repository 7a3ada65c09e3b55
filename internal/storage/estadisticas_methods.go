package storage

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"justiciaverde/backend/internal/config"
	"justiciaverde/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// ObtenerEstadisticas recalcula los agregados desde cero contra las tablas.
// No hay contadores incrementales: cada llamada refleja el estado real del
// almacén en ese momento.
func (s *Service) ObtenerEstadisticas() (*models.Estadisticas, error) {
	e := &models.Estadisticas{}

	if err := s.DB.Model(&models.Denuncia{}).Count(&e.TotalDenuncias).Error; err != nil {
		return nil, err
	}

	// Denuncias del mes calendario en curso.
	ahora := time.Now()
	inicioMes := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())
	if err := s.DB.Model(&models.Denuncia{}).
		Where("fecha_creacion >= ?", inicioMes).
		Count(&e.DenunciasMes).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Denuncia{}).
		Where("estado = ?", models.EstadoResuelta).
		Count(&e.DenunciasResueltas).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Denuncia{}).
		Where("estado = ?", models.EstadoEnProceso).
		Count(&e.DenunciasEnProceso).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Usuario{}).
		Where("activo = ?", true).
		Count(&e.UsuariosActivos).Error; err != nil {
		return nil, err
	}

	var acompanadas int64
	if err := s.DB.Model(&models.Asignacion{}).
		Where("fecha_finalizacion IS NULL").
		Count(&acompanadas).Error; err != nil {
		return nil, err
	}

	// Guardia contra división por cero: sin denuncias el porcentaje es 0.
	if e.TotalDenuncias > 0 {
		e.PorcentajeAcompanamiento = int(math.Round(float64(acompanadas) / float64(e.TotalDenuncias) * 100))
	}

	return e, nil
}

// EstadisticasCacheGet lee los agregados cacheados en Redis. Devuelve
// (nil, nil) si no hay entrada vigente.
func (s *Service) EstadisticasCacheGet() (*models.Estadisticas, error) {
	payload, err := s.Redis.Get(s.Ctx, config.EstadisticasCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var e models.Estadisticas
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// EstadisticasCacheSet guarda los agregados con TTL corto. Al expirar se
// fuerza siempre un recálculo completo.
func (s *Service) EstadisticasCacheSet(e *models.Estadisticas) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.Redis.Set(s.Ctx, config.EstadisticasCacheKey, payload, config.EstadisticasCacheTTL).Err()
}
