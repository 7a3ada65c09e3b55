// Package denuncia contiene la lógica central de la plataforma: el ciclo de
// vida de una denuncia, la gestión de asignaciones a revisores y la
// interacción social (likes y seguimientos). Toda autorización por rol vive
// aquí, nunca repartida por la capa de presentación, y la identidad del actor
// llega siempre como parámetro explícito.
package denuncia

import (
	"errors"
	"log"
	"strings"
	"time"

	"justiciaverde/backend/internal/config"
	"justiciaverde/backend/internal/models"
	"justiciaverde/backend/internal/storage"
)

// Notificador recibe avisos de eventos relevantes (canal de operaciones,
// p. ej. Telegram). Todas las llamadas son best-effort.
type Notificador interface {
	DenunciaCreada(d *models.Denuncia)
	CambioEstado(d *models.Denuncia, anterior, nuevo models.EstadoDenuncia)
}

// Service orquesta las operaciones del core sobre el almacén.
type Service struct {
	Storage     storage.Storage
	Notificador Notificador // puede ser nil
}

// NewService crea un nuevo servicio de denuncias.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// CrearDenunciaInput es la entrada de creación tal como llega de la API.
type CrearDenunciaInput struct {
	Titulo      string
	Descripcion string
	Ubicacion   models.Ubicacion
	Categorias  []string
	Evidencias  []string
	Prioridad   string
	Anonima     bool
}

// Crear registra una denuncia nueva en estado RECIBIDA. Con actor nil, o con
// Anonima=true, la denuncia no retiene identidad alguna del denunciante.
func (s *Service) Crear(actor *models.Usuario, in CrearDenunciaInput) (*models.Denuncia, error) {
	titulo := strings.TrimSpace(in.Titulo)
	descripcion := strings.TrimSpace(in.Descripcion)

	if titulo == "" {
		return nil, &ErrorValidacion{Campo: "titulo", Motivo: "es requerido"}
	}
	if len(titulo) > config.TituloMaxLen {
		return nil, &ErrorValidacion{Campo: "titulo", Motivo: "supera el largo máximo"}
	}
	if descripcion == "" {
		return nil, &ErrorValidacion{Campo: "descripcion", Motivo: "es requerida"}
	}
	if len(descripcion) > config.DescripcionMaxLen {
		return nil, &ErrorValidacion{Campo: "descripcion", Motivo: "supera el largo máximo"}
	}
	if in.Ubicacion.Lat < -90 || in.Ubicacion.Lat > 90 {
		return nil, &ErrorValidacion{Campo: "ubicacion.lat", Motivo: "fuera de rango"}
	}
	if in.Ubicacion.Lng < -180 || in.Ubicacion.Lng > 180 {
		return nil, &ErrorValidacion{Campo: "ubicacion.lng", Motivo: "fuera de rango"}
	}
	if len(in.Evidencias) > config.EvidenciasMax {
		return nil, &ErrorValidacion{Campo: "evidencias", Motivo: "demasiadas evidencias"}
	}

	prioridad := models.PrioridadMedia
	if in.Prioridad != "" {
		if !config.PrioridadesValidas[in.Prioridad] {
			return nil, &ErrorValidacion{Campo: "prioridad", Motivo: "valor desconocido"}
		}
		prioridad = models.Prioridad(in.Prioridad)
	}

	categorias, err := s.Storage.GetCategoriasPorNombre(in.Categorias)
	if err != nil {
		return nil, err
	}
	if len(categorias) == 0 {
		return nil, &ErrorValidacion{Campo: "categorias", Motivo: "se requiere al menos una categoría del catálogo"}
	}

	d := &models.Denuncia{
		Titulo:             titulo,
		Descripcion:        descripcion,
		Ubicacion:          in.Ubicacion,
		Categorias:         categorias,
		Evidencias:         in.Evidencias,
		Estado:             models.EstadoRecibida,
		Prioridad:          prioridad,
		VisibilidadPublica: true,
	}

	// Las denuncias anónimas no retienen identidad, ni siquiera internamente.
	if actor != nil && !in.Anonima {
		d.UsuarioID = &actor.ID
	} else {
		d.Anonima = true
	}

	if err := s.Storage.CrearDenuncia(d); err != nil {
		return nil, err
	}

	s.difundir(d, models.EventoDenunciaNueva)
	if s.Notificador != nil {
		go s.Notificador.DenunciaCreada(d)
	}
	return d, nil
}

// Obtener devuelve la denuncia e incrementa el contador de vistas en
// background: la lectura nunca espera ni falla por el contador.
func (s *Service) Obtener(id string) (*models.Denuncia, error) {
	d, err := s.Storage.GetDenunciaPorID(id)
	if err != nil {
		return nil, traducir(err)
	}
	go s.Storage.IncrementarVistas(id)
	return d, nil
}

// ListarPublicas lista las denuncias visibles aplicando el filtro.
func (s *Service) ListarPublicas(f storage.FiltroDenuncias) ([]models.Denuncia, error) {
	return s.Storage.ListarPublicas(f)
}

// ListarMias lista las denuncias creadas por el actor autenticado.
func (s *Service) ListarMias(actor *models.Usuario) ([]models.Denuncia, error) {
	return s.Storage.ListarPorUsuario(actor.ID)
}

// ListarAsignadas lista los casos activos del revisor.
func (s *Service) ListarAsignadas(actor *models.Usuario) ([]models.Denuncia, error) {
	if !actor.EsRevisor() && !actor.EsAdmin() {
		return nil, ErrNoAutorizado
	}
	return s.Storage.ListarPorRevisor(actor.ID)
}

// ListarDisponibles lista el pool que un revisor puede autoasignarse:
// RECIBIDA y sin asignación activa.
func (s *Service) ListarDisponibles(actor *models.Usuario) ([]models.Denuncia, error) {
	if !actor.EsRevisor() && !actor.EsAdmin() {
		return nil, ErrNoAutorizado
	}
	return s.Storage.ListarDisponibles()
}

// CambiarEstado ejecuta una transición del ciclo de vida. Solo el revisor con
// asignación activa o un administrador pueden transicionar; un demandante
// jamás. El almacén aplica estado + seguimiento + cierre de asignación como
// unidad atómica.
func (s *Service) CambiarEstado(actor *models.Usuario, denunciaID string, nuevo models.EstadoDenuncia) error {
	if !EstadoConocido(nuevo) {
		return &ErrorValidacion{Campo: "estado", Motivo: "valor desconocido"}
	}

	d, err := s.Storage.GetDenunciaPorID(denunciaID)
	if err != nil {
		return traducir(err)
	}

	if err := s.autorizarTransicion(actor, d); err != nil {
		return err
	}
	if !TransicionValida(d.Estado, nuevo) {
		return ErrTransicionInvalida
	}

	if err := s.Storage.RegistrarCambioEstado(d, nuevo, actor); err != nil {
		// La escritura condicional no afectó filas: otra petición cambió el
		// estado primero. Para el llamador es la misma arista inválida.
		if errors.Is(err, storage.ErrConflictoEstado) {
			return ErrTransicionInvalida
		}
		return err
	}

	anterior := d.Estado
	d.Estado = nuevo
	s.difundir(d, models.EventoCambioEstado)
	if s.Notificador != nil {
		go s.Notificador.CambioEstado(d, anterior, nuevo)
	}
	return nil
}

// autorizarTransicion concentra la regla de roles del ciclo de vida.
func (s *Service) autorizarTransicion(actor *models.Usuario, d *models.Denuncia) error {
	if actor.EsAdmin() {
		return nil
	}
	if !actor.EsRevisor() {
		return ErrNoAutorizado
	}
	activa, err := s.Storage.GetAsignacionActiva(d.ID)
	if err != nil {
		return err
	}
	if activa == nil || activa.RevisorID != actor.ID {
		return ErrNoAutorizado
	}
	return nil
}

// Asignar registra a un revisor como responsable del caso. Un administrador
// puede asignar a cualquier revisor y reasignar casos ya tomados; un revisor
// solo puede autoasignarse casos del pool disponible. La anonimia de la
// denuncia no afecta su elegibilidad.
func (s *Service) Asignar(actor *models.Usuario, denunciaID, revisorID string) (*models.Asignacion, error) {
	if !actor.EsAdmin() && !actor.EsRevisor() {
		return nil, ErrNoAutorizado
	}

	d, err := s.Storage.GetDenunciaPorID(denunciaID)
	if err != nil {
		return nil, traducir(err)
	}

	// Un caso terminal no vuelve a acompañamiento: los estados terminales no
	// admiten transición, así que la asignación nunca podría cerrarse.
	if d.Estado.EsTerminal() {
		return nil, ErrTransicionInvalida
	}

	revisor, err := s.Storage.GetUsuarioPorID(revisorID)
	if err != nil {
		return nil, traducir(err)
	}
	if !revisor.EsRevisor() || !revisor.Activo {
		return nil, &ErrorValidacion{Campo: "revisorId", Motivo: "no es un revisor activo"}
	}

	reasignar := false
	if actor.EsAdmin() {
		// La reasignación administrativa cierra la asignación previa dentro
		// de la misma transacción.
		reasignar = true
	} else {
		if actor.ID != revisorID {
			return nil, ErrNoAutorizado
		}
		if d.Estado != models.EstadoRecibida {
			return nil, ErrYaAsignada
		}
	}

	asignacion, err := s.Storage.CrearAsignacion(denunciaID, revisor, actor, reasignar)
	if err != nil {
		if errors.Is(err, storage.ErrYaAsignada) {
			return nil, ErrYaAsignada
		}
		return nil, err
	}

	// Tomar un caso RECIBIDA lo mueve a EN_PROCESO; difundimos el cambio.
	if d.Estado == models.EstadoRecibida {
		anterior := d.Estado
		d.Estado = models.EstadoEnProceso
		s.difundir(d, models.EventoCambioEstado)
		if s.Notificador != nil {
			go s.Notificador.CambioEstado(d, anterior, models.EstadoEnProceso)
		}
	}
	return asignacion, nil
}

// ToggleLike agrega o quita el like del actor y devuelve la membresía
// resultante junto al total, siempre derivado del conjunto real.
func (s *Service) ToggleLike(actor *models.Usuario, denunciaID string) (bool, int64, error) {
	if _, err := s.Storage.GetDenunciaPorID(denunciaID); err != nil {
		return false, 0, traducir(err)
	}
	return s.Storage.ToggleReaccion(denunciaID, actor.ID)
}

// AgregarSeguimiento agrega un comentario a la bitácora con un snapshot del
// rol del actor. Nunca toca el estado de la denuncia.
func (s *Service) AgregarSeguimiento(actor *models.Usuario, denunciaID, contenido string) (*models.Seguimiento, error) {
	contenido = strings.TrimSpace(contenido)
	if contenido == "" {
		return nil, ErrComentarioVacio
	}
	if len(contenido) > config.SeguimientoMaxLen {
		return nil, &ErrorValidacion{Campo: "contenido", Motivo: "supera el largo máximo"}
	}

	if _, err := s.Storage.GetDenunciaPorID(denunciaID); err != nil {
		return nil, traducir(err)
	}

	seg := &models.Seguimiento{
		DenunciaID:    denunciaID,
		UsuarioID:     actor.ID,
		UsuarioNombre: actor.Nombre,
		UsuarioRol:    actor.Rol,
		Tipo:          models.SeguimientoComentario,
		Contenido:     contenido,
	}
	if err := s.Storage.CrearSeguimiento(seg); err != nil {
		return nil, err
	}
	return seg, nil
}

// ListarSeguimientos devuelve la bitácora, más reciente primero.
func (s *Service) ListarSeguimientos(denunciaID string) ([]models.Seguimiento, error) {
	if _, err := s.Storage.GetDenunciaPorID(denunciaID); err != nil {
		return nil, traducir(err)
	}
	return s.Storage.ListarSeguimientosPorDenuncia(denunciaID)
}

// RegistrarCompartido incrementa el contador de compartidos.
func (s *Service) RegistrarCompartido(denunciaID string) (int, error) {
	n, err := s.Storage.IncrementarCompartidos(denunciaID)
	if err != nil {
		return 0, traducir(err)
	}
	return n, nil
}

// CambiarPrioridad es una acción exclusiva de administradores.
func (s *Service) CambiarPrioridad(actor *models.Usuario, denunciaID, prioridad string) error {
	if !actor.EsAdmin() {
		return ErrNoAutorizado
	}
	if !config.PrioridadesValidas[prioridad] {
		return &ErrorValidacion{Campo: "prioridad", Motivo: "valor desconocido"}
	}
	return traducir(s.Storage.ActualizarPrioridad(denunciaID, models.Prioridad(prioridad)))
}

// CambiarVisibilidad oculta o muestra la denuncia en los listados públicos.
func (s *Service) CambiarVisibilidad(actor *models.Usuario, denunciaID string, visible bool) error {
	if !actor.EsAdmin() {
		return ErrNoAutorizado
	}
	return traducir(s.Storage.ActualizarVisibilidad(denunciaID, visible))
}

// Archivar elimina la denuncia de la plataforma. Acción administrativa,
// fuera del ciclo de vida normal.
func (s *Service) Archivar(actor *models.Usuario, denunciaID string) error {
	if !actor.EsAdmin() {
		return ErrNoAutorizado
	}
	return traducir(s.Storage.EliminarDenuncia(denunciaID))
}

// difundir publica el evento en el feed en vivo si la denuncia es pública.
// Best-effort: un fallo se registra y no interrumpe la operación.
func (s *Service) difundir(d *models.Denuncia, tipo string) {
	if !d.VisibilidadPublica {
		return
	}
	ev := models.EventoDenuncia{
		Tipo:       tipo,
		DenunciaID: d.ID,
		Titulo:     d.Titulo,
		Estado:     d.Estado,
		Prioridad:  d.Prioridad,
		Ubicacion:  d.Ubicacion,
		Fecha:      time.Now(),
	}
	go func() {
		if err := s.Storage.PublicarEvento(ev); err != nil {
			log.Printf("ERROR: Failed to publish evento %s for denuncia %s: %v", tipo, d.ID, err)
		}
	}()
}

// traducir mapea los centinelas del almacén a la taxonomía del core.
func traducir(err error) error {
	if errors.Is(err, storage.ErrNoEncontrada) {
		return ErrNoEncontrada
	}
	return err
}
