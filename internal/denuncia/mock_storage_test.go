package denuncia_test

import (
	"justiciaverde/backend/internal/models"
	"justiciaverde/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CrearUsuario(u *models.Usuario) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockStorage) GetUsuarioPorID(id string) (*models.Usuario, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Usuario), args.Error(1)
}

func (m *MockStorage) GetUsuarioPorEmail(email string) (*models.Usuario, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Usuario), args.Error(1)
}

func (m *MockStorage) ActualizarUsuario(u *models.Usuario) error {
	args := m.Called(u)
	return args.Error(0)
}

func (m *MockStorage) PerfilUsuario(id string) (*models.Usuario, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Usuario), args.Error(1)
}

func (m *MockStorage) GetCategoriasPorNombre(nombres []string) ([]models.Categoria, error) {
	args := m.Called(nombres)
	return args.Get(0).([]models.Categoria), args.Error(1)
}

func (m *MockStorage) CrearDenuncia(d *models.Denuncia) error {
	args := m.Called(d)
	return args.Error(0)
}

func (m *MockStorage) GetDenunciaPorID(id string) (*models.Denuncia, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Denuncia), args.Error(1)
}

func (m *MockStorage) ListarPublicas(f storage.FiltroDenuncias) ([]models.Denuncia, error) {
	args := m.Called(f)
	return args.Get(0).([]models.Denuncia), args.Error(1)
}

func (m *MockStorage) ListarPorUsuario(usuarioID string) ([]models.Denuncia, error) {
	args := m.Called(usuarioID)
	return args.Get(0).([]models.Denuncia), args.Error(1)
}

func (m *MockStorage) ListarPorRevisor(revisorID string) ([]models.Denuncia, error) {
	args := m.Called(revisorID)
	return args.Get(0).([]models.Denuncia), args.Error(1)
}

func (m *MockStorage) ListarDisponibles() ([]models.Denuncia, error) {
	args := m.Called()
	return args.Get(0).([]models.Denuncia), args.Error(1)
}

func (m *MockStorage) ActualizarPrioridad(denunciaID string, p models.Prioridad) error {
	args := m.Called(denunciaID, p)
	return args.Error(0)
}

func (m *MockStorage) ActualizarVisibilidad(denunciaID string, visible bool) error {
	args := m.Called(denunciaID, visible)
	return args.Error(0)
}

func (m *MockStorage) EliminarDenuncia(denunciaID string) error {
	args := m.Called(denunciaID)
	return args.Error(0)
}

func (m *MockStorage) RegistrarCambioEstado(d *models.Denuncia, nuevo models.EstadoDenuncia, actor *models.Usuario) error {
	args := m.Called(d, nuevo, actor)
	return args.Error(0)
}

func (m *MockStorage) CrearAsignacion(denunciaID string, revisor *models.Usuario, actor *models.Usuario, reasignar bool) (*models.Asignacion, error) {
	args := m.Called(denunciaID, revisor, actor, reasignar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asignacion), args.Error(1)
}

func (m *MockStorage) GetAsignacionActiva(denunciaID string) (*models.Asignacion, error) {
	args := m.Called(denunciaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asignacion), args.Error(1)
}

func (m *MockStorage) ToggleReaccion(denunciaID, usuarioID string) (bool, int64, error) {
	args := m.Called(denunciaID, usuarioID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) CrearSeguimiento(s *models.Seguimiento) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockStorage) ListarSeguimientosPorDenuncia(denunciaID string) ([]models.Seguimiento, error) {
	args := m.Called(denunciaID)
	return args.Get(0).([]models.Seguimiento), args.Error(1)
}

func (m *MockStorage) IncrementarVistas(denunciaID string) {
	m.Called(denunciaID)
}

func (m *MockStorage) IncrementarCompartidos(denunciaID string) (int, error) {
	args := m.Called(denunciaID)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) ObtenerEstadisticas() (*models.Estadisticas, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Estadisticas), args.Error(1)
}

func (m *MockStorage) EstadisticasCacheGet() (*models.Estadisticas, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Estadisticas), args.Error(1)
}

func (m *MockStorage) EstadisticasCacheSet(e *models.Estadisticas) error {
	args := m.Called(e)
	return args.Error(0)
}

func (m *MockStorage) PublicarEvento(ev models.EventoDenuncia) error {
	args := m.Called(ev)
	return args.Error(0)
}
