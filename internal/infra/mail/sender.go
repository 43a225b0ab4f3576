package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

// Template inline: o resumo é curto demais para merecer arquivo próprio.
var summaryTemplate = template.Must(template.New("summary").Parse(
	`Sessão de prospecção finalizada!

Leads abordados: {{.LeadsActioned}}
Tempo de sessão: {{.Elapsed}}

Continue assim. Consistência fecha contrato. 💪
`))

type summaryData struct {
	LeadsActioned int
	Elapsed       string
}

// SendSessionSummary manda o fechamento da sessão para o próprio operador.
func (s *EmailSender) SendSessionSummary(leadsActioned, elapsedSeconds int) error {
	data := summaryData{
		LeadsActioned: leadsActioned,
		Elapsed:       (time.Duration(elapsedSeconds) * time.Second).String(),
	}

	var body bytes.Buffer
	if err := summaryTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("Resumo da sessão: %d leads abordados 🚀", leadsActioned))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
