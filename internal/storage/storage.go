// Package storage implementa el almacén canónico de la plataforma sobre
// PostgreSQL (GORM) y Redis (caché de estadísticas y Pub/Sub del feed en
// vivo). Toda mutación compuesta se aplica como una única transacción o
// sentencia condicional: nunca se expone un estado parcial.
package storage

import (
	"context"
	"errors"

	"justiciaverde/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Errores centinela del almacén. La capa de servicio los traduce a la
// taxonomía de la API.
var (
	ErrNoEncontrada = errors.New("storage: registro no encontrado")
	// ErrYaAsignada: la escritura condicional de asignación no insertó fila
	// porque ya existe una asignación activa (carrera perdida incluida).
	ErrYaAsignada = errors.New("storage: la denuncia ya tiene una asignación activa")
	// ErrConflictoEstado: el estado cambió entre la lectura y la escritura
	// condicional; el cambio no se aplicó.
	ErrConflictoEstado = errors.New("storage: el estado de la denuncia cambió de forma concurrente")
)

// FiltroDenuncias compone predicados de búsqueda sobre el listado público.
// Un campo en nil/vacío no filtra.
type FiltroDenuncias struct {
	Texto     string
	Estado    *models.EstadoDenuncia
	Prioridad *models.Prioridad
}

type Storage interface {
	// Usuarios
	CrearUsuario(u *models.Usuario) error
	GetUsuarioPorID(id string) (*models.Usuario, error)
	GetUsuarioPorEmail(email string) (*models.Usuario, error)
	ActualizarUsuario(u *models.Usuario) error
	PerfilUsuario(id string) (*models.Usuario, error)

	// Categorías
	GetCategoriasPorNombre(nombres []string) ([]models.Categoria, error)

	// Denuncias
	CrearDenuncia(d *models.Denuncia) error
	GetDenunciaPorID(id string) (*models.Denuncia, error)
	ListarPublicas(f FiltroDenuncias) ([]models.Denuncia, error)
	ListarPorUsuario(usuarioID string) ([]models.Denuncia, error)
	ListarPorRevisor(revisorID string) ([]models.Denuncia, error)
	ListarDisponibles() ([]models.Denuncia, error)
	ActualizarPrioridad(denunciaID string, p models.Prioridad) error
	ActualizarVisibilidad(denunciaID string, visible bool) error
	EliminarDenuncia(denunciaID string) error

	// Ciclo de vida y asignaciones (operaciones compuestas atómicas)
	RegistrarCambioEstado(d *models.Denuncia, nuevo models.EstadoDenuncia, actor *models.Usuario) error
	CrearAsignacion(denunciaID string, revisor *models.Usuario, actor *models.Usuario, reasignar bool) (*models.Asignacion, error)
	GetAsignacionActiva(denunciaID string) (*models.Asignacion, error)

	// Interacción social
	ToggleReaccion(denunciaID, usuarioID string) (bool, int64, error)
	CrearSeguimiento(s *models.Seguimiento) error
	ListarSeguimientosPorDenuncia(denunciaID string) ([]models.Seguimiento, error)
	IncrementarVistas(denunciaID string)
	IncrementarCompartidos(denunciaID string) (int, error)

	// Estadísticas
	ObtenerEstadisticas() (*models.Estadisticas, error)
	EstadisticasCacheGet() (*models.Estadisticas, error)
	EstadisticasCacheSet(e *models.Estadisticas) error

	// Tiempo real
	PublicarEvento(ev models.EventoDenuncia) error
}

// Service implementa Storage sobre PostgreSQL y Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CrearUsuario guarda un usuario nuevo en PostgreSQL.
func (s *Service) CrearUsuario(u *models.Usuario) error {
	return s.DB.Create(u).Error
}

// GetUsuarioPorID busca un usuario por su UUID.
func (s *Service) GetUsuarioPorID(id string) (*models.Usuario, error) {
	var u models.Usuario
	err := s.DB.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUsuarioPorEmail busca un usuario por correo (para login).
func (s *Service) GetUsuarioPorEmail(email string) (*models.Usuario, error) {
	var u models.Usuario
	err := s.DB.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ActualizarUsuario persiste los campos mutables del usuario.
func (s *Service) ActualizarUsuario(u *models.Usuario) error {
	return s.DB.Save(u).Error
}

// PerfilUsuario devuelve el usuario con sus contadores de actividad.
// Los contadores se derivan siempre de las tablas de denuncias y
// asignaciones; no existen columnas redundantes que puedan divergir.
func (s *Service) PerfilUsuario(id string) (*models.Usuario, error) {
	u, err := s.GetUsuarioPorID(id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.Denuncia{}).
		Where("usuario_id = ?", id).
		Count(&u.DenunciasCreadas).Error; err != nil {
		return nil, err
	}

	if u.Rol == models.RolRevisor {
		// Un caso reasignado varias veces al mismo revisor (de ida y vuelta
		// por un admin) tiene varias filas de asignación: cuenta una sola vez.
		var resueltas []string
		if err := s.DB.Model(&models.Asignacion{}).
			Joins("JOIN denuncias ON denuncias.id = asignaciones.denuncia_id").
			Where("asignaciones.revisor_id = ? AND denuncias.estado = ?", id, models.EstadoResuelta).
			Pluck("asignaciones.denuncia_id", &resueltas).Error; err != nil {
			return nil, err
		}
		u.DenunciasResueltas = contarDistintas(resueltas)
		if err := s.DB.Model(&models.Asignacion{}).
			Where("revisor_id = ? AND fecha_finalizacion IS NULL", id).
			Count(&u.DenunciasEnRevision).Error; err != nil {
			return nil, err
		}
	}

	return u, nil
}

// contarDistintas cuenta los identificadores únicos de la lista.
func contarDistintas(ids []string) int64 {
	vistos := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		vistos[id] = struct{}{}
	}
	return int64(len(vistos))
}

// GetCategoriasPorNombre resuelve nombres del catálogo a registros.
// Nombres desconocidos simplemente no aparecen en el resultado.
func (s *Service) GetCategoriasPorNombre(nombres []string) ([]models.Categoria, error) {
	var cats []models.Categoria
	if len(nombres) == 0 {
		return cats, nil
	}
	if err := s.DB.Where("nombre IN ?", nombres).Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}
