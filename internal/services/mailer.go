package services

import (
	"fmt"

	"github.com/lexcontract/lexcontract-api/internal/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Notifier delivers best-effort notifications. Implementations must never
// fail the triggering request: delivery errors are logged, not returned.
type Notifier interface {
	SendWelcome(email, fullName string)
	SendPasswordReset(email, fullName, resetLink string)
}

// Mailer sends notification mail over SMTP, detached from the request.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	logger   *zap.Logger
}

// NewMailer creates a new Mailer. When SMTP credentials are not configured
// the mailer stays usable and logs a skip for every send.
func NewMailer(cfg *config.Config, logger *zap.Logger) *Mailer {
	m := &Mailer{
		from:     cfg.MailFrom,
		fromName: cfg.MailFromName,
		logger:   logger,
	}
	if cfg.MailHost != "" && cfg.MailUsername != "" {
		m.dialer = gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword)
	}
	return m
}

// SendWelcome sends the account-created mail in the background.
func (m *Mailer) SendWelcome(email, fullName string) {
	body := fmt.Sprintf(
		"Hola %s,\n\n¡Bienvenido a LexContract! Tu cuenta ha sido creada exitosamente.\n"+
			"Ya puedes acceder a la plataforma con tu correo electrónico.\n\n"+
			"Atentamente,\nEl equipo de LexContract\n",
		fullName,
	)
	go m.send(email, "¡Bienvenido a LexContract!", body)
}

// SendPasswordReset sends the reset-link mail in the background.
func (m *Mailer) SendPasswordReset(email, fullName, resetLink string) {
	body := fmt.Sprintf(
		"Hola %s,\n\nHas solicitado restablecer tu contraseña en LexContract.\n"+
			"Haz clic en el siguiente enlace para crear una nueva contraseña:\n\n%s\n\n"+
			"Este enlace expirará en 30 minutos. Si no solicitaste este cambio, puedes ignorar este correo.\n\n"+
			"Atentamente,\nEl equipo de LexContract\n",
		fullName, resetLink,
	)
	go m.send(email, "Restablece tu contraseña - LexContract", body)
}

func (m *Mailer) send(to, subject, body string) {
	if m.dialer == nil {
		m.logger.Warn("mail credentials not configured, skipping send",
			zap.String("to", to), zap.String("subject", subject))
		return
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("failed to send mail", zap.String("to", to), zap.Error(err))
		return
	}
	m.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
}
