package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     "nao-responda@imobsys.com.br",
	}
}

var staleAlertTmpl = template.Must(template.New("stale").Parse(`
<p>O lead <strong>{{.LeadName}}</strong> está parado há {{.HoursSinceUpdate}} horas
no status <strong>{{.Status}}</strong> e precisa de atenção imediata.</p>
<p>Acesse o painel para retomar o atendimento.</p>
`))

var statusChangeTmpl = template.Must(template.New("status").Parse(`
<p>O lead <strong>{{.LeadName}}</strong> mudou de <strong>{{.OldStatus}}</strong>
para <strong>{{.NewStatus}}</strong>.</p>
`))

func (s *EmailSender) SendStaleLeadAlert(to, leadName string, status string, hoursSinceUpdate int64) error {
	data := StaleLeadAlertData{
		LeadName:         leadName,
		Status:           status,
		HoursSinceUpdate: hoursSinceUpdate,
	}

	var body bytes.Buffer
	if err := staleAlertTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	subject := fmt.Sprintf("🚨 Lead parado: %s (%dh sem atendimento)", leadName, hoursSinceUpdate)
	return s.send(to, subject, body.String())
}

func (s *EmailSender) SendStatusChangeNotice(to, leadName, oldStatus, newStatus string) error {
	data := StatusChangeData{
		LeadName:  leadName,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}

	var body bytes.Buffer
	if err := statusChangeTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	subject := fmt.Sprintf("Lead %s movido para %s", leadName, newStatus)
	return s.send(to, subject, body.String())
}

func (s *EmailSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
