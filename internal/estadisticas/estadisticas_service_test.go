package estadisticas_test

import (
	"errors"
	"testing"

	"justiciaverde/backend/internal/estadisticas"
	"justiciaverde/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStorage cubre solo los métodos que usa el servicio de estadísticas.
type MockStorage struct {
	mock.Mock
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

func TestObtener_CacheHit(t *testing.T) {
	storageMock := new(MockStorage)
	svc := estadisticas.NewService(storageMock)

	cacheadas := &models.Estadisticas{TotalDenuncias: 42}
	storageMock.On("EstadisticasCacheGet").Return(cacheadas, nil)

	e, err := svc.Obtener()
	assert.NoError(t, err)
	assert.Equal(t, int64(42), e.TotalDenuncias)
	storageMock.AssertNotCalled(t, "ObtenerEstadisticas")
}

func TestObtener_CacheMissRecalculaYRepone(t *testing.T) {
	storageMock := new(MockStorage)
	svc := estadisticas.NewService(storageMock)

	frescas := &models.Estadisticas{TotalDenuncias: 7, DenunciasResueltas: 3}
	storageMock.On("EstadisticasCacheGet").Return(nil, nil)
	storageMock.On("ObtenerEstadisticas").Return(frescas, nil)
	storageMock.On("EstadisticasCacheSet", frescas).Return(nil)

	e, err := svc.Obtener()
	assert.NoError(t, err)
	assert.Equal(t, int64(7), e.TotalDenuncias)
	storageMock.AssertCalled(t, "EstadisticasCacheSet", frescas)
}

func TestObtener_FalloDeCacheNoInterrumpe(t *testing.T) {
	storageMock := new(MockStorage)
	svc := estadisticas.NewService(storageMock)

	frescas := &models.Estadisticas{TotalDenuncias: 1}
	storageMock.On("EstadisticasCacheGet").Return(nil, errors.New("redis down"))
	storageMock.On("ObtenerEstadisticas").Return(frescas, nil)
	storageMock.On("EstadisticasCacheSet", frescas).Return(errors.New("redis down"))

	e, err := svc.Obtener()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), e.TotalDenuncias)
}

func TestObtener_AlmacenVacio(t *testing.T) {
	storageMock := new(MockStorage)
	svc := estadisticas.NewService(storageMock)

	storageMock.On("EstadisticasCacheGet").Return(nil, nil)
	storageMock.On("ObtenerEstadisticas").Return(&models.Estadisticas{}, nil)
	storageMock.On("EstadisticasCacheSet", mock.Anything).Return(nil)

	e, err := svc.Obtener()
	assert.NoError(t, err)
	assert.Zero(t, e.TotalDenuncias)
	assert.Zero(t, e.PorcentajeAcompanamiento)
}
