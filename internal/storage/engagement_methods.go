package storage

import (
	"encoding/json"
	"errors"
	"log"

	"justiciaverde/backend/internal/config"
	"justiciaverde/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ToggleReaccion quita el like si existe y lo agrega si no. Devuelve si el
// usuario quedó con like y el total actual, contado siempre desde el conjunto
// de reacciones. Frente a dos toggles concurrentes del mismo usuario el
// índice único (denuncia_id, usuario_id) deja ganar a uno solo: el INSERT
// perdedor vuelve como gorm.ErrDuplicatedKey y se interpreta como "el like ya
// quedó puesto". El contador no puede divergir porque nunca se almacena.
func (s *Service) ToggleReaccion(denunciaID, usuarioID string) (bool, int64, error) {
	var liked bool

	res := s.DB.Where("denuncia_id = ? AND usuario_id = ?", denunciaID, usuarioID).
		Delete(&models.Reaccion{})
	if res.Error != nil {
		return false, 0, res.Error
	}

	if res.RowsAffected == 0 {
		r := models.Reaccion{DenunciaID: denunciaID, UsuarioID: usuarioID}
		err := s.DB.Create(&r).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, 0, err
		}
		liked = true
	}

	var total int64
	if err := s.DB.Model(&models.Reaccion{}).
		Where("denuncia_id = ?", denunciaID).
		Count(&total).Error; err != nil {
		return liked, 0, err
	}
	return liked, total, nil
}

// CrearSeguimiento agrega una entrada a la bitácora. Append-only: no existe
// ninguna operación de edición ni borrado de seguimientos.
func (s *Service) CrearSeguimiento(seg *models.Seguimiento) error {
	return s.DB.Create(seg).Error
}

// ListarSeguimientosPorDenuncia devuelve la bitácora, más reciente primero
// (orden de presentación; internamente se conserva el orden de inserción).
func (s *Service) ListarSeguimientosPorDenuncia(denunciaID string) ([]models.Seguimiento, error) {
	var segs []models.Seguimiento
	err := s.DB.Where("denuncia_id = ?", denunciaID).
		Order("fecha_creacion DESC").
		Find(&segs).Error
	if err != nil {
		return nil, err
	}
	return segs, nil
}

// IncrementarVistas suma una vista. Es fire-and-forget: un fallo aquí se
// registra en el log y jamás interrumpe la lectura que lo disparó.
func (s *Service) IncrementarVistas(denunciaID string) {
	err := s.DB.Model(&models.Denuncia{}).
		Where("id = ?", denunciaID).
		UpdateColumn("vistas", gorm.Expr("vistas + 1")).Error
	if err != nil {
		log.Printf("ERROR: Failed to increment vistas for denuncia %s: %v", denunciaID, err)
	}
}

// IncrementarCompartidos suma un compartido y devuelve el total nuevo.
func (s *Service) IncrementarCompartidos(denunciaID string) (int, error) {
	res := s.DB.Model(&models.Denuncia{}).
		Where("id = ?", denunciaID).
		UpdateColumn("compartidos", gorm.Expr("compartidos + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrNoEncontrada
	}

	var compartidos int
	err := s.DB.Model(&models.Denuncia{}).
		Where("id = ?", denunciaID).
		Pluck("compartidos", &compartidos).Error
	return compartidos, err
}

// PublicarEvento publica un evento del feed en Redis Pub/Sub.
func (s *Service) PublicarEvento(ev models.EventoDenuncia) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, config.CanalEventosDenuncias, payload).Err()
}

// SubscribirEventos abre la suscripción al canal del feed en vivo. Lo usa el
// hub de WebSockets; no forma parte de la interfaz Storage porque devuelve un
// tipo concreto de Redis.
func (s *Service) SubscribirEventos() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, config.CanalEventosDenuncias)
}
