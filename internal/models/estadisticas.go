package models

// Estadisticas son los agregados de la plataforma. Se recalculan siempre
// desde el almacén bajo demanda; no existen contadores incrementales que
// puedan divergir.
type Estadisticas struct {
	TotalDenuncias     int64 `json:"totalDenuncias"`
	DenunciasMes       int64 `json:"denunciasMes"`
	DenunciasResueltas int64 `json:"denunciasResueltas"`
	DenunciasEnProceso int64 `json:"denunciasEnProceso"`
	UsuariosActivos    int64 `json:"usuariosActivos"`

	// Porcentaje de denuncias con una asignación activa, redondeado al
	// entero más cercano. 0 cuando no hay denuncias.
	PorcentajeAcompanamiento int `json:"porcentajeAcompañamiento"`
}
