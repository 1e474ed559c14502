package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendAlertEmail(toEmail, alertTitle, updateTitle, updateURL string) error
	SendReportReadyEmail(toEmail, reportTitle string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	frontendURL string // Added to construct links
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	// Get Frontend URL from ENV or default to a safe placeholder
	frontendURL := os.Getenv("FRONTEND_URL")

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		frontendURL: frontendURL,
	}
}

func (s *emailService) SendAlertEmail(toEmail, alertTitle, updateTitle, updateURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Alerta regulatoria: %s", alertTitle))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>Una nueva publicación coincide con tu alerta:</p>
			<p><strong>%s</strong></p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Ver publicación</a>
			<p>Puedes gestionar tus alertas desde el panel de cumplimiento.</p>
		</div>
	`, alertTitle, updateTitle, updateURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Alert sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendReportReadyEmail(toEmail, reportTitle string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Tu informe está listo")

	reportsLink := fmt.Sprintf("%s/reports", s.frontendURL)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Informe generado</h2>
			<p>El informe <strong>%s</strong> ha terminado de generarse.</p>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Abrir informes</a>
		</div>
	`, reportTitle, reportsLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send report notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Report notice sent to %s\n", toEmail)
	return nil
}
