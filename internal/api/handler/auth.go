package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"justiciaverde/backend/internal/config"
	"justiciaverde/backend/internal/models"
	"justiciaverde/backend/internal/storage"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const claveActor = "actor"

// generarJWT emite el token de sesión del usuario.
func (h *Handler) generarJWT(u *models.Usuario) (string, error) {
	claims := jwt.MapClaims{
		"sub": u.ID,
		"rol": string(u.Rol),
		"exp": time.Now().Add(config.TokenDuracion).Unix(),
		"iss": config.TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// validarJWT verifica firma, expiración y emisor, y devuelve el ID del sujeto.
func (h *Handler) validarJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de firma inesperado")
		}
		return h.JWTSecret, nil
	}, jwt.WithIssuer(config.TokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("token inválido")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token sin sujeto")
	}
	return sub, nil
}

// tokenDesdeRequest extrae el bearer token del header o, para WebSockets, del
// query string (los navegadores no permiten headers en el handshake WS).
func tokenDesdeRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// AuthRequired exige un token válido de un usuario activo y deja al actor en
// el contexto. Sin token válido la cadena se corta con 401.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenDesdeRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token requerido"})
			return
		}

		userID, err := h.validarJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token inválido o expirado"})
			return
		}

		u, err := h.Storage.GetUsuarioPorID(userID)
		if err != nil || !u.Activo {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "cuenta no disponible"})
			return
		}

		c.Set(claveActor, u)
		c.Next()
	}
}

// AuthOptional resuelve al actor si hay token válido, pero nunca corta la
// cadena: las rutas públicas aceptan visitantes anónimos.
func (h *Handler) AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenDesdeRequest(c)
		if tokenString == "" {
			c.Next()
			return
		}
		userID, err := h.validarJWT(tokenString)
		if err != nil {
			c.Next()
			return
		}
		if u, err := h.Storage.GetUsuarioPorID(userID); err == nil && u.Activo {
			c.Set(claveActor, u)
		}
		c.Next()
	}
}

// actorDesde devuelve el usuario autenticado del contexto, o nil.
func actorDesde(c *gin.Context) *models.Usuario {
	v, ok := c.Get(claveActor)
	if !ok {
		return nil
	}
	u, _ := v.(*models.Usuario)
	return u
}

type registroRequest struct {
	Nombre       string  `json:"nombre" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Organizacion *string `json:"organizacion"`
	Telefono     *string `json:"telefono"`
}

// Registro crea una cuenta de demandante. Los revisores y administradores se
// crean únicamente desde la CLI de administración.
func (h *Handler) Registro(c *gin.Context) {
	var req registroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}

	u := &models.Usuario{
		Nombre:       strings.TrimSpace(req.Nombre),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     string(hash),
		Rol:          models.RolDemandante,
		Organizacion: req.Organizacion,
		Telefono:     req.Telefono,
		Activo:       true,
	}
	if err := h.Storage.CrearUsuario(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "el email ya está registrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}

	token, err := h.generarJWT(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "usuario": u})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login valida credenciales y emite un token. La respuesta a credenciales
// malas es idéntica exista o no la cuenta.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.Storage.GetUsuarioPorEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !u.Activo {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenciales inválidas"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "credenciales inválidas"})
		return
	}

	token, err := h.generarJWT(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "usuario": u})
}

// Perfil devuelve al actor con sus contadores de actividad derivados.
func (h *Handler) Perfil(c *gin.Context) {
	actor := actorDesde(c)
	u, err := h.Storage.PerfilUsuario(actor.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNoEncontrada) {
			c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, u)
}
