package mailer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"coachdesk/internal/domain/redemption"
	"coachdesk/internal/pkg/config"
	"coachdesk/internal/usecase/shared"

	"github.com/mailersend/mailersend-go"
)

// New returns a MailerSend-backed mailer, or a log-only mailer when no API key is set.
func New(cfg config.MailConfig) shared.Mailer {
	if strings.TrimSpace(cfg.APIKey) == "" {
		slog.Warn("MAILERSEND_API_KEY not set, redemption codes will only be logged")
		return &LogMailer{siteURL: cfg.SiteURL}
	}
	return &MailerSend{
		client:  mailersend.NewMailersend(cfg.APIKey),
		from:    mailersend.From{Name: cfg.FromName, Email: cfg.FromEmail},
		siteURL: cfg.SiteURL,
		timeout: cfg.Timeout,
	}
}

type MailerSend struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	siteURL string
	timeout time.Duration
}

func (m *MailerSend) SendRedemptionCode(ctx context.Context, mail shared.RedemptionMail) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	content := Render(mail, m.siteURL)

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: mail.To}})
	msg.SetSubject(content.Subject)
	msg.SetText(content.Text)
	msg.SetHTML(content.HTML)

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("mailersend send failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	slog.Info("redemption code mailed", "message_id", res.Header.Get("X-Message-Id"), "kind", mail.Kind)
	return nil
}

// LogMailer writes the mail to the log instead of sending it. Only a code
// prefix is logged; the full code and link never reach the log.
type LogMailer struct {
	siteURL string
}

func (l *LogMailer) SendRedemptionCode(_ context.Context, mail shared.RedemptionMail) error {
	content := Render(mail, l.siteURL)
	slog.Info("[DEV MAIL] redemption code",
		"to", mail.To,
		"subject", content.Subject,
		"code", redactCode(mail.Code),
	)
	return nil
}

func redactCode(raw string) string {
	code, err := redemption.ParseCode(raw)
	if err != nil {
		return "****"
	}
	return code.Redacted()
}

type Content struct {
	Subject string
	Text    string
	HTML    string
	Link    string
}

// Render builds the redemption mail body. The link pre-fills the code on the redeem page.
func Render(mail shared.RedemptionMail, siteURL string) Content {
	link := strings.TrimRight(siteURL, "/") + "/redeem?code=" + url.QueryEscape(mail.Code)
	expires := mail.ExpiresAt.UTC().Format("2006-01-02 15:04 MST")

	var subject, what string
	switch mail.Kind {
	case "call":
		subject = "Your free call code"
		what = "book your free call"
	default:
		subject = "Your download code"
		what = "download " + mail.Resource
	}

	text := fmt.Sprintf("Use code %s to %s.\nRedeem it here: %s\nThe code expires at %s and works once.",
		mail.Code, what, link, expires)
	html := fmt.Sprintf(`<p>Use code <b>%s</b> to %s.</p><p><a href="%s">Redeem your code</a></p><p>The code expires at %s and works once.</p>`,
		mail.Code, what, link, expires)

	return Content{Subject: subject, Text: text, HTML: html, Link: link}
}
