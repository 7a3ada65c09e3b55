package denuncia

import "justiciaverde/backend/internal/models"

// Grafo de transiciones del ciclo de vida. RECIBIDA puede pasar a EN_PROCESO
// (un revisor toma el caso) o directo a RECHAZADA (rechazo administrativo sin
// asignación). EN_PROCESO termina en RESUELTA o RECHAZADA. Los estados
// terminales no admiten salida: no existe operación de reapertura.
var transicionesValidas = map[models.EstadoDenuncia][]models.EstadoDenuncia{
	models.EstadoRecibida:  {models.EstadoEnProceso, models.EstadoRechazada},
	models.EstadoEnProceso: {models.EstadoResuelta, models.EstadoRechazada},
}

// TransicionValida indica si la arista desde→hacia pertenece al grafo.
func TransicionValida(desde, hacia models.EstadoDenuncia) bool {
	for _, destino := range transicionesValidas[desde] {
		if destino == hacia {
			return true
		}
	}
	return false
}

// EstadoConocido valida que el valor sea uno de los cuatro estados.
func EstadoConocido(e models.EstadoDenuncia) bool {
	switch e {
	case models.EstadoRecibida, models.EstadoEnProceso, models.EstadoResuelta, models.EstadoRechazada:
		return true
	}
	return false
}
