package mailer

import (
	"testing"

	"github.com/secsim/phishing-gateway/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMailer() *Mailer {
	return New(Config{
		Host:      "smtp.example.com",
		Port:      587,
		FromName:  "Security Training",
		FromEmail: "security@example.com",
		BaseURL:   "http://phish.local",
	})
}

func TestMailer_SimulationMode(t *testing.T) {
	m := testMailer()
	assert.True(t, m.SimulationMode())

	withCreds := New(Config{Username: "u", Password: "p"})
	assert.False(t, withCreds.SimulationMode())
}

func TestMailer_BuildBody(t *testing.T) {
	m := testMailer()
	target := &model.Target{
		Email: "jane@corp.example",
		Name:  "Jane",
		Token: "tok123",
	}
	template := &model.Template{
		Body: `<p>Hi {{target_name}} ({{target_email}}), <a href="{{tracking_url}}">verify now</a></p>`,
	}

	body := m.BuildBody(target, template)

	assert.Contains(t, body, "Hi Jane (jane@corp.example)")
	assert.Contains(t, body, `href="http://phish.local/track/click/tok123"`)
	// pixel is appended at the end, hidden
	assert.Contains(t, body, `<img src="http://phish.local/track/open/tok123" width="1" height="1" style="display:none;" />`)
	assert.NotContains(t, body, "{{")
}

func TestMailer_BuildBody_NameFallsBackToEmail(t *testing.T) {
	m := testMailer()
	target := &model.Target{Email: "bob@corp.example", Token: "tok"}
	template := &model.Template{Body: "Dear {{target_name}}"}

	body := m.BuildBody(target, template)
	assert.Contains(t, body, "Dear bob@corp.example")
}

func TestMailer_Send_Simulation_NoNetworkCall(t *testing.T) {
	// host that would fail instantly if dialed; simulation mode must not
	// touch the network
	m := New(Config{Host: "invalid.invalid", Port: 1, BaseURL: "http://phish.local"})

	target := &model.Target{Email: "a@x.com", Token: "tok"}
	template := &model.Template{Subject: "s", Body: "b"}
	campaign := &model.Campaign{Name: "c"}

	err := m.Send(target, template, campaign)
	require.NoError(t, err)
}

func TestMailer_BuildMessage(t *testing.T) {
	m := testMailer()
	msg := string(m.buildMessage("a@x.com", "Hello", "<p>body</p>"))

	assert.Contains(t, msg, "From: Security Training <security@example.com>\r\n")
	assert.Contains(t, msg, "To: a@x.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	assert.Contains(t, msg, "\r\n\r\n<p>body</p>")
}
