package denuncia

import (
	"errors"
	"fmt"
)

// Taxonomía de errores del core. La capa HTTP los traduce a códigos de
// estado; ninguno se traga en silencio.
var (
	ErrNoEncontrada = errors.New("denuncia no encontrada")
	// ErrNoAutorizado: el actor no tiene el rol ni la titularidad necesarios.
	ErrNoAutorizado = errors.New("el actor no está autorizado para esta acción")
	// ErrTransicionInvalida: la máquina de estados rechaza la arista pedida.
	ErrTransicionInvalida = errors.New("transición de estado inválida")
	// ErrYaAsignada: la denuncia ya tiene una asignación activa (incluye la
	// carrera perdida entre dos revisores).
	ErrYaAsignada = errors.New("la denuncia ya tiene un revisor asignado")
	// ErrComentarioVacio: el seguimiento quedó en blanco tras recortar.
	ErrComentarioVacio = errors.New("el contenido del seguimiento está vacío")
)

// ErrorValidacion describe una entrada faltante o malformada. Es totalmente
// recuperable: el llamador corrige el campo y reintenta.
type ErrorValidacion struct {
	Campo  string
	Motivo string
}

func (e *ErrorValidacion) Error() string {
	return fmt.Sprintf("validación: campo %q: %s", e.Campo, e.Motivo)
}
