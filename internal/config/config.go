package config

import "time"

const (
	// Validación de denuncias
	TituloMaxLen      = 200
	DescripcionMaxLen = 5000
	EvidenciasMax     = 10

	// Validación de seguimientos
	SeguimientoMaxLen = 2000

	// Autenticación
	TokenDuracion = 72 * time.Hour
	TokenIssuer   = "justiciaverde-api"

	// Estadísticas: caché de lectura en Redis. El TTL es corto a propósito:
	// cada expiración fuerza un recálculo completo desde el almacén.
	EstadisticasCacheKey = "estadisticas:generales"
	EstadisticasCacheTTL = 30 * time.Second

	// Canal Redis Pub/Sub para el feed en vivo
	CanalEventosDenuncias = "denuncias:eventos"
)

// PrioridadesValidas son los valores de prioridad aceptados por la API.
var PrioridadesValidas = map[string]bool{
	"baja":    true,
	"media":   true,
	"alta":    true,
	"critica": true,
}

// CategoriasIniciales es el catálogo fijo que se siembra al arrancar.
var CategoriasIniciales = []string{
	"Deforestación",
	"Contaminación hídrica",
	"Contaminación del aire",
	"Minería ilegal",
	"Tráfico de fauna",
	"Quema de bosques",
	"Vertimiento de residuos",
	"Otro",
}
