package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"justiciaverde/backend/internal/denuncia"
	"justiciaverde/backend/internal/models"
	"justiciaverde/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// stubStorage cubre solo CrearUsuario; el resto de la interfaz no se toca en
// estos tests.
type stubStorage struct {
	storage.Storage
	crearUsuarioErr error
}

func (s *stubStorage) CrearUsuario(u *models.Usuario) error { return s.crearUsuarioErr }

func postRegistro(h *Handler) *httptest.ResponseRecorder {
	body := `{"nombre":"Ana","email":"ana@example.com","password":"secreta123"}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/registro", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Registro(c)
	return w
}

func TestRegistro_EmailDuplicado(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		JWTSecret: []byte("secreto"),
		Storage:   &stubStorage{crearUsuarioErr: gorm.ErrDuplicatedKey},
	}
	assert.Equal(t, http.StatusConflict, postRegistro(h).Code)
}

func TestRegistro_FalloDelAlmacenNoEsConflicto(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		JWTSecret: []byte("secreto"),
		Storage:   &stubStorage{crearUsuarioErr: errors.New("connection refused")},
	}
	// Una caída del almacén jamás debe reportarse como email duplicado.
	assert.Equal(t, http.StatusInternalServerError, postRegistro(h).Code)
}

func TestRegistro_Exitoso(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{JWTSecret: []byte("secreto"), Storage: &stubStorage{}}
	assert.Equal(t, http.StatusCreated, postRegistro(h).Code)
}

func TestJWT_RoundTrip(t *testing.T) {
	h := &Handler{JWTSecret: []byte("secreto-de-test")}
	u := &models.Usuario{ID: "u1", Rol: models.RolRevisor}

	token, err := h.generarJWT(u)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	sub, err := h.validarJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", sub)
}

func TestJWT_FirmaIncorrecta(t *testing.T) {
	emisor := &Handler{JWTSecret: []byte("secreto-a")}
	receptor := &Handler{JWTSecret: []byte("secreto-b")}

	token, err := emisor.generarJWT(&models.Usuario{ID: "u1"})
	assert.NoError(t, err)

	_, err = receptor.validarJWT(token)
	assert.Error(t, err)
}

func TestJWT_TokenBasura(t *testing.T) {
	h := &Handler{JWTSecret: []byte("secreto")}
	_, err := h.validarJWT("no-es-un-jwt")
	assert.Error(t, err)
}

func TestTokenDesdeRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Header Authorization
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/denuncias", nil)
	c.Request.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", tokenDesdeRequest(c))

	// Query string (handshake de WebSocket)
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/ws/denuncias?token=xyz", nil)
	assert.Equal(t, "xyz", tokenDesdeRequest(c))

	// Sin token
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/denuncias", nil)
	assert.Empty(t, tokenDesdeRequest(c))
}

func TestResponderError_MapeoHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	casos := []struct {
		nombre string
		err    error
		status int
	}{
		{"validación", &denuncia.ErrorValidacion{Campo: "titulo", Motivo: "es requerido"}, http.StatusBadRequest},
		{"no encontrada", denuncia.ErrNoEncontrada, http.StatusNotFound},
		{"no autorizado", denuncia.ErrNoAutorizado, http.StatusForbidden},
		{"transición inválida", denuncia.ErrTransicionInvalida, http.StatusConflict},
		{"ya asignada", denuncia.ErrYaAsignada, http.StatusConflict},
		{"comentario vacío", denuncia.ErrComentarioVacio, http.StatusBadRequest},
		{"error desconocido", assert.AnError, http.StatusInternalServerError},
	}

	for _, caso := range casos {
		t.Run(caso.nombre, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			responderError(c, caso.err)
			assert.Equal(t, caso.status, w.Code)
		})
	}
}
