package mail

import (
	"io"

	"github.com/lamiarosa/store-api/internal/config"
	"gopkg.in/gomail.v2"
)

// InlineImage is an image embedded in an HTML body. The HTML references it
// as "cid:<Name>".
type InlineImage struct {
	Name    string
	Content []byte
}

// Mailer sends transactional HTML email.
type Mailer interface {
	Send(to, subject, htmlBody string, inline []InlineImage) error
}

type mailer struct {
	host     string
	port     int
	from     string
	fromName string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		fromName: cfg.SMTPFromName,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) Send(to, subject, htmlBody string, inline []InlineImage) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	for _, img := range inline {
		content := img.Content
		msg.Embed(img.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}
