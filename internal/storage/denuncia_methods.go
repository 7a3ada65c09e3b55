package storage

import (
	"errors"
	"fmt"
	"log"
	"time"

	"justiciaverde/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CrearDenuncia inserta la denuncia junto con sus categorías (many2many) en
// una sola transacción implícita de GORM.
func (s *Service) CrearDenuncia(d *models.Denuncia) error {
	if err := s.DB.Create(d).Error; err != nil {
		log.Printf("ERROR: Failed to create denuncia %q: %v", d.Titulo, err)
		return err
	}
	return nil
}

// GetDenunciaPorID devuelve la denuncia hidratada (reacciones, denunciante,
// revisor activo) o ErrNoEncontrada.
func (s *Service) GetDenunciaPorID(id string) (*models.Denuncia, error) {
	var d models.Denuncia
	err := s.DB.Preload("Usuario").Preload("Categorias").First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoEncontrada
	}
	if err != nil {
		return nil, err
	}
	if err := s.hidratarDenuncia(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListarPublicas devuelve las denuncias visibles, más recientes primero,
// aplicando los predicados del filtro. Nunca muta nada.
func (s *Service) ListarPublicas(f FiltroDenuncias) ([]models.Denuncia, error) {
	q := s.DB.Preload("Usuario").Preload("Categorias").
		Where("visibilidad_publica = ?", true)

	if f.Texto != "" {
		patron := "%" + f.Texto + "%"
		q = q.Where("titulo ILIKE ? OR descripcion ILIKE ?", patron, patron)
	}
	if f.Estado != nil {
		q = q.Where("estado = ?", *f.Estado)
	}
	if f.Prioridad != nil {
		q = q.Where("prioridad = ?", *f.Prioridad)
	}

	var denuncias []models.Denuncia
	if err := q.Order("fecha_creacion DESC").Find(&denuncias).Error; err != nil {
		return nil, err
	}
	return s.hidratarTodas(denuncias)
}

// ListarPorUsuario devuelve las denuncias creadas por un demandante.
func (s *Service) ListarPorUsuario(usuarioID string) ([]models.Denuncia, error) {
	var denuncias []models.Denuncia
	err := s.DB.Preload("Usuario").Preload("Categorias").
		Where("usuario_id = ?", usuarioID).
		Order("fecha_creacion DESC").
		Find(&denuncias).Error
	if err != nil {
		return nil, err
	}
	return s.hidratarTodas(denuncias)
}

// ListarPorRevisor devuelve los casos del revisor: los de asignación activa y
// los históricos ya resueltos o rechazados. Una denuncia reasignada varias
// veces al mismo revisor aparece una sola vez.
func (s *Service) ListarPorRevisor(revisorID string) ([]models.Denuncia, error) {
	var denuncias []models.Denuncia
	err := s.DB.Preload("Usuario").Preload("Categorias").
		Distinct("denuncias.*").
		Joins("JOIN asignaciones ON asignaciones.denuncia_id = denuncias.id").
		Where("asignaciones.revisor_id = ?", revisorID).
		Order("denuncias.fecha_creacion DESC").
		Find(&denuncias).Error
	if err != nil {
		return nil, err
	}
	return s.hidratarTodas(denuncias)
}

// ListarDisponibles devuelve el pool de casos que un revisor puede tomar:
// estado RECIBIDA y sin asignación activa.
func (s *Service) ListarDisponibles() ([]models.Denuncia, error) {
	var denuncias []models.Denuncia
	err := s.DB.Preload("Usuario").Preload("Categorias").
		Where("estado = ?", models.EstadoRecibida).
		Where("NOT EXISTS (SELECT 1 FROM asignaciones a WHERE a.denuncia_id = denuncias.id AND a.fecha_finalizacion IS NULL)").
		Order("fecha_creacion DESC").
		Find(&denuncias).Error
	if err != nil {
		return nil, err
	}
	return s.hidratarTodas(denuncias)
}

// ActualizarPrioridad cambia la prioridad (solo la llama un administrador).
func (s *Service) ActualizarPrioridad(denunciaID string, p models.Prioridad) error {
	return s.actualizarCampo(denunciaID, "prioridad", p)
}

// ActualizarVisibilidad oculta o muestra la denuncia en listados públicos.
func (s *Service) ActualizarVisibilidad(denunciaID string, visible bool) error {
	return s.actualizarCampo(denunciaID, "visibilidad_publica", visible)
}

func (s *Service) actualizarCampo(denunciaID, campo string, valor interface{}) error {
	res := s.DB.Model(&models.Denuncia{}).
		Where("id = ?", denunciaID).
		Updates(map[string]interface{}{
			campo:                 valor,
			"fecha_actualizacion": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrada
	}
	return nil
}

// EliminarDenuncia borra la denuncia y, por las restricciones de clave
// foránea, sus seguimientos, asignaciones y reacciones. Acción administrativa.
func (s *Service) EliminarDenuncia(denunciaID string) error {
	res := s.DB.Delete(&models.Denuncia{}, "id = ?", denunciaID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoEncontrada
	}
	return nil
}

// RegistrarCambioEstado aplica una transición validada por la capa de
// servicio. Los tres efectos (estado nuevo, seguimiento de auditoría y cierre
// de la asignación activa si el estado es terminal) ocurren en una sola
// transacción: o se ven todos o no se ve ninguno. La cláusula
// `WHERE estado = <anterior>` hace la escritura condicional: si otra petición
// cambió el estado primero, no se afecta ninguna fila y se devuelve
// ErrConflictoEstado.
func (s *Service) RegistrarCambioEstado(d *models.Denuncia, nuevo models.EstadoDenuncia, actor *models.Usuario) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return cambiarEstadoTx(tx, d.ID, d.Estado, nuevo, actor)
	})
}

// cambiarEstadoTx es el único punto que escribe la columna estado.
func cambiarEstadoTx(tx *gorm.DB, denunciaID string, anterior, nuevo models.EstadoDenuncia, actor *models.Usuario) error {
	res := tx.Model(&models.Denuncia{}).
		Where("id = ? AND estado = ?", denunciaID, anterior).
		Updates(map[string]interface{}{
			"estado":              nuevo,
			"fecha_actualizacion": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflictoEstado
	}

	seg := models.Seguimiento{
		DenunciaID:     denunciaID,
		UsuarioID:      actor.ID,
		UsuarioNombre:  actor.Nombre,
		UsuarioRol:     actor.Rol,
		Tipo:           models.SeguimientoCambioEstado,
		Contenido:      fmt.Sprintf("Estado cambiado de %s a %s", anterior, nuevo),
		EstadoAnterior: &anterior,
		EstadoNuevo:    &nuevo,
	}
	if err := tx.Create(&seg).Error; err != nil {
		return err
	}

	// Resolver o rechazar cierra automáticamente la asignación activa.
	if nuevo.EsTerminal() {
		if err := tx.Model(&models.Asignacion{}).
			Where("denuncia_id = ? AND fecha_finalizacion IS NULL", denunciaID).
			Update("fecha_finalizacion", time.Now()).Error; err != nil {
			return err
		}
	}
	return nil
}

// CrearAsignacion registra al revisor como responsable del caso. La inserción
// es condicional (INSERT ... WHERE NOT EXISTS asignación activa), de modo que
// dos revisores compitiendo por el mismo caso nunca pueden ganar ambos: el
// perdedor recibe ErrYaAsignada. El índice único parcial sobre asignaciones
// respalda el invariante a nivel de esquema.
//
// Con reasignar=true (solo administradores) la asignación previa se cierra
// dentro de la misma transacción antes de insertar la nueva.
func (s *Service) CrearAsignacion(denunciaID string, revisor *models.Usuario, actor *models.Usuario, reasignar bool) (*models.Asignacion, error) {
	asignacion := models.Asignacion{
		ID:              uuid.New().String(),
		DenunciaID:      denunciaID,
		RevisorID:       revisor.ID,
		Notas:           "Caso asignado para revisión",
		FechaAsignacion: time.Now(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if reasignar {
			if err := tx.Model(&models.Asignacion{}).
				Where("denuncia_id = ? AND fecha_finalizacion IS NULL", denunciaID).
				Update("fecha_finalizacion", time.Now()).Error; err != nil {
				return err
			}
		}

		res := tx.Exec(`INSERT INTO asignaciones (id, denuncia_id, revisor_id, notas, fecha_asignacion)
			SELECT ?, ?, ?, ?, ?
			WHERE NOT EXISTS (
				SELECT 1 FROM asignaciones
				WHERE denuncia_id = ? AND fecha_finalizacion IS NULL
			)`,
			asignacion.ID, denunciaID, revisor.ID, asignacion.Notas, asignacion.FechaAsignacion,
			denunciaID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrYaAsignada
		}

		// Tomar un caso RECIBIDA lo pasa a EN_PROCESO con su registro de
		// auditoría, dentro de la misma transacción. La condición sobre el
		// estado hace la escritura segura frente a carreras.
		res = tx.Model(&models.Denuncia{}).
			Where("id = ? AND estado = ?", denunciaID, models.EstadoRecibida).
			Updates(map[string]interface{}{
				"estado":              models.EstadoEnProceso,
				"fecha_actualizacion": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			anterior := models.EstadoRecibida
			nuevo := models.EstadoEnProceso
			seg := models.Seguimiento{
				DenunciaID:     denunciaID,
				UsuarioID:      actor.ID,
				UsuarioNombre:  actor.Nombre,
				UsuarioRol:     actor.Rol,
				Tipo:           models.SeguimientoCambioEstado,
				Contenido:      fmt.Sprintf("Estado cambiado de %s a %s", anterior, nuevo),
				EstadoAnterior: &anterior,
				EstadoNuevo:    &nuevo,
			}
			if err := tx.Create(&seg).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &asignacion, nil
}

// GetAsignacionActiva devuelve la asignación vigente de la denuncia, o nil
// si no hay ninguna.
func (s *Service) GetAsignacionActiva(denunciaID string) (*models.Asignacion, error) {
	var a models.Asignacion
	err := s.DB.Where("denuncia_id = ? AND fecha_finalizacion IS NULL", denunciaID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// hidratarTodas aplica hidratarDenuncia a cada elemento del listado.
func (s *Service) hidratarTodas(denuncias []models.Denuncia) ([]models.Denuncia, error) {
	for i := range denuncias {
		if err := s.hidratarDenuncia(&denuncias[i]); err != nil {
			return nil, err
		}
	}
	return denuncias, nil
}

// hidratarDenuncia rellena los campos calculados: reacciones (derivadas del
// conjunto real de likes), denunciante y revisor activo.
func (s *Service) hidratarDenuncia(d *models.Denuncia) error {
	var usuariosLike []string
	if err := s.DB.Model(&models.Reaccion{}).
		Where("denuncia_id = ?", d.ID).
		Order("fecha_creacion ASC").
		Pluck("usuario_id", &usuariosLike).Error; err != nil {
		return err
	}
	d.Reacciones = models.ReaccionesResumen{
		Likes:        len(usuariosLike),
		UsuariosLike: usuariosLike,
	}

	if d.Anonima {
		d.Denunciante = &models.Denunciante{Anonimo: true}
	} else if d.Usuario != nil {
		d.Denunciante = &models.Denunciante{
			ID:      d.Usuario.ID,
			Nombre:  d.Usuario.Nombre,
			Email:   d.Usuario.Email,
			Anonimo: false,
		}
	}

	type revisorRow struct {
		ID              string
		Nombre          string
		Organizacion    *string
		FechaAsignacion time.Time
	}
	var row revisorRow
	err := s.DB.Model(&models.Asignacion{}).
		Select("usuarios.id, usuarios.nombre, usuarios.organizacion, asignaciones.fecha_asignacion").
		Joins("JOIN usuarios ON usuarios.id = asignaciones.revisor_id").
		Where("asignaciones.denuncia_id = ? AND asignaciones.fecha_finalizacion IS NULL", d.ID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	organizacion := ""
	if row.Organizacion != nil {
		organizacion = *row.Organizacion
	}
	d.Revisor = &models.RevisorAsignado{
		ID:              row.ID,
		Nombre:          row.Nombre,
		Organizacion:    organizacion,
		FechaAsignacion: row.FechaAsignacion,
	}
	return nil
}
