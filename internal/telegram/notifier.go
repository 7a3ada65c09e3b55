// Package telegram envía avisos operativos al canal interno del equipo vía
// la Bot API. Es un canal de solo salida: el bot no procesa comandos ni
// mensajes entrantes. Toda notificación es best-effort y jamás bloquea la
// operación que la originó.
package telegram

import (
	"fmt"
	"log"

	"justiciaverde/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier publica avisos de denuncias en un chat de Telegram.
type Notifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewNotifier autentica el bot contra la API de Telegram.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Authorized on account %s", bot.Self.UserName)

	return &Notifier{BotAPI: bot, ChatID: chatID}, nil
}

// DenunciaCreada avisa al canal que entró una denuncia nueva.
func (n *Notifier) DenunciaCreada(d *models.Denuncia) {
	n.enviar(FormatearDenunciaNueva(d))
}

// CambioEstado avisa al canal que una denuncia cambió de estado.
func (n *Notifier) CambioEstado(d *models.Denuncia, anterior, nuevo models.EstadoDenuncia) {
	n.enviar(FormatearCambioEstado(d, anterior, nuevo))
}

func (n *Notifier) enviar(texto string) {
	msg := tgbotapi.NewMessage(n.ChatID, texto)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := n.BotAPI.Send(msg); err != nil {
		log.Printf("ERROR: Failed to send Telegram notification: %v", err)
	}
}

// FormatearDenunciaNueva arma el texto del aviso de denuncia nueva.
// Es una función pura para poder probarla sin la API de Telegram.
func FormatearDenunciaNueva(d *models.Denuncia) string {
	origen := "identificada"
	if d.Anonima {
		origen = "anónima"
	}
	return fmt.Sprintf(
		"🌿 *Nueva denuncia* (%s)\n*%s*\nPrioridad: %s\nUbicación: %s",
		origen, d.Titulo, d.Prioridad, d.Ubicacion.Direccion,
	)
}

// FormatearCambioEstado arma el texto del aviso de cambio de estado.
func FormatearCambioEstado(d *models.Denuncia, anterior, nuevo models.EstadoDenuncia) string {
	icono := "🔄"
	switch nuevo {
	case models.EstadoResuelta:
		icono = "✅"
	case models.EstadoRechazada:
		icono = "❌"
	}
	return fmt.Sprintf(
		"%s *%s*\nEstado: %s → %s",
		icono, d.Titulo, anterior, nuevo,
	)
}
