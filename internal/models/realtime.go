package models

import "time"

// Tipos de evento publicados en el canal de denuncias.
const (
	EventoDenunciaNueva = "denuncia_nueva"
	EventoCambioEstado  = "cambio_estado"
)

// EventoDenuncia es el mensaje que viaja por Redis Pub/Sub y se difunde a los
// clientes WebSocket del feed en vivo (el mapa público). Solo lleva datos de
// denuncias con visibilidad pública.
type EventoDenuncia struct {
	Tipo       string         `json:"tipo"`
	DenunciaID string         `json:"denunciaId"`
	Titulo     string         `json:"titulo"`
	Estado     EstadoDenuncia `json:"status"`
	Prioridad  Prioridad      `json:"prioridad"`
	Ubicacion  Ubicacion      `json:"ubicacion"`
	Fecha      time.Time      `json:"fecha"`
}
