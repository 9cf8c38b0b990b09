package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/chaigney/golftrip/internal/config"
)

// Sender delivers trip invites over SMTP. A zero-config sender reports
// itself unconfigured instead of failing at dial time.
type Sender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.From != ""
}

// SendInvite mails a join link for a trip room.
func (s *Sender) SendInvite(to, tripName, tripID, appURL string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	joinURL := strings.TrimRight(appURL, "/") + "/trip/" + tripID

	subject := fmt.Sprintf("You're invited to %s", tripName)
	body := fmt.Sprintf(
		"You've been invited to follow the scores for %s.\r\n\r\n"+
			"Open the trip here:\r\n\r\n"+
			"%s\r\n\r\n"+
			"If the room has a PIN, whoever invited you can share it.",
		tripName, joinURL,
	)

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		s.cfg.From, to, subject, body,
	)

	addr := s.cfg.Host + ":" + s.cfg.Port

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}
