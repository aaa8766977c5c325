package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/secsim/phishing-gateway/pkg/logger"
)

// Config carries the SMTP relay settings plus the external base URL used to
// build tracking links. Constructed once from the process configuration and
// passed in, never read from ambient state.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	BaseURL   string
}

type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SimulationMode reports whether sends are simulated. Without credentials no
// network call is made and a send only records the attempt.
func (m *Mailer) SimulationMode() bool {
	return m.cfg.Username == "" || m.cfg.Password == ""
}

// Send builds the phishing email for one target and delivers it. The caller
// is responsible for stamping sent_at on success; a failed send is logged and
// reported, never retried.
func (m *Mailer) Send(target *model.Target, template *model.Template, campaign *model.Campaign) error {
	body := m.BuildBody(target, template)
	msg := m.buildMessage(target.Email, template.Subject, body)

	if m.SimulationMode() {
		logger.Info("[simulation] email would be sent",
			"to", target.Email,
			"campaign", campaign.Name,
		)
		return nil
	}

	if err := m.deliver(target.Email, msg); err != nil {
		logger.Error("failed sending email",
			"to", target.Email,
			"campaign", campaign.Name,
			"error", err,
		)
		return err
	}
	return nil
}

// BuildBody copies the template body, substitutes the three placeholders
// literally and appends the invisible tracking pixel.
func (m *Mailer) BuildBody(target *model.Target, template *model.Template) string {
	body := template.Body
	body = strings.ReplaceAll(body, model.PlaceholderTrackingURL, m.TrackingURL(target.Token))
	body = strings.ReplaceAll(body, model.PlaceholderTargetEmail, target.Email)
	body = strings.ReplaceAll(body, model.PlaceholderTargetName, target.DisplayName())

	body += fmt.Sprintf(`<img src="%s" width="1" height="1" style="display:none;" />`, m.PixelURL(target.Token))
	return body
}

func (m *Mailer) TrackingURL(token string) string {
	return m.cfg.BaseURL + "/track/click/" + token
}

func (m *Mailer) PixelURL(token string) string {
	return m.cfg.BaseURL + "/track/open/" + token
}

func (m *Mailer) buildMessage(to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + m.cfg.FromName + " <" + m.cfg.FromEmail + ">\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// deliver pushes the message to the relay over a TLS-upgraded connection.
func (m *Mailer) deliver(to string, msg []byte) error {
	server := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	conn, err := net.Dial("tcp", server)
	if err != nil {
		return errors.Wrap(err, "dial error")
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return errors.Wrap(err, "newclient error")
	}
	defer client.Close()

	tlsconfig := &tls.Config{ServerName: m.cfg.Host}
	if err = client.StartTLS(tlsconfig); err != nil {
		return errors.Wrap(err, "starttls error")
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err = client.Auth(auth); err != nil {
		return errors.Wrap(err, "auth error")
	}

	if err = client.Mail(m.cfg.FromEmail); err != nil {
		return errors.Wrap(err, "mail error")
	}
	if err = client.Rcpt(to); err != nil {
		return errors.Wrap(err, "rcpt error")
	}

	writer, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "data error")
	}
	if _, err = writer.Write(msg); err != nil {
		writer.Close()
		return errors.Wrap(err, "write error")
	}
	if err = writer.Close(); err != nil {
		return errors.Wrap(err, "close error")
	}

	return errors.Wrap(client.Quit(), "quit error")
}
