package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/errs"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Notification is a message for the studio operators about new activity.
type Notification struct {
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

type Notifier interface {
	Channel() string
	Notify(ctx context.Context, n Notification) error
}

type emailSender interface {
	SendEmail(ctx context.Context, subject, htmlBody, textBody, replyTo string, recipients []string) error
}

type smsSender interface {
	SendSMS(to, body string) error
}

// EmailNotifier emails a notification to a fixed list of operators.
type EmailNotifier struct {
	sender     emailSender
	recipients []string
}

func NewEmailNotifier(sender emailSender, recipients []string) EmailNotifier {
	return EmailNotifier{sender: sender, recipients: recipients}
}

func (n EmailNotifier) Channel() string { return "email" }

func (n EmailNotifier) Notify(ctx context.Context, msg Notification) error {
	return n.sender.SendEmail(ctx, msg.Subject, msg.HTML, msg.Text, msg.ReplyTo, n.recipients)
}

// SMSNotifier texts the notification subject to a fixed list of operators.
type SMSNotifier struct {
	sender     smsSender
	recipients []string
}

func NewSMSNotifier(sender smsSender, recipients []string) SMSNotifier {
	return SMSNotifier{sender: sender, recipients: recipients}
}

func (n SMSNotifier) Channel() string { return "sms" }

func (n SMSNotifier) Notify(ctx context.Context, msg Notification) error {
	var failed []string
	for _, to := range n.recipients {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := n.sender.SendSMS(to, msg.Subject); err != nil {
			failed = append(failed, err.Error())
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%s", strings.Join(failed, "; "))
	}
	return nil
}

// Dispatcher fans a notification out to every configured channel.
type Dispatcher struct {
	notifiers []Notifier
	logger    zerolog.Logger
}

func NewDispatcher(notifiers ...Notifier) *Dispatcher {
	return &Dispatcher{
		notifiers: notifiers,
		logger:    log.With().Str("component", "notificationDispatcher").Logger(),
	}
}

// NewDispatcherFromConfig enables each channel whose credentials and
// NOTIFY_* recipients are configured. Missing channels are skipped.
func NewDispatcherFromConfig(c map[string]string) *Dispatcher {
	var notifiers []Notifier

	if recipients := config.GetStrings(c, "NOTIFY_EMAILS"); len(recipients) > 0 {
		if client, err := NewResendClient(c); err != nil {
			log.Warn().Err(err).Msg("Email notifications disabled")
		} else {
			notifiers = append(notifiers, NewEmailNotifier(client, recipients))
		}
	}

	if recipients := config.GetStrings(c, "NOTIFY_PHONES"); len(recipients) > 0 {
		if client, err := NewTwilioClient(c); err != nil {
			log.Warn().Err(err).Msg("SMS notifications disabled")
		} else {
			notifiers = append(notifiers, NewSMSNotifier(client, recipients))
		}
	}

	return NewDispatcher(notifiers...)
}

// Channels lists the enabled channels.
func (d *Dispatcher) Channels() []string {
	channels := make([]string, 0, len(d.notifiers))
	for _, n := range d.notifiers {
		channels = append(channels, n.Channel())
	}
	return channels
}

// Dispatch attempts every channel even when some fail.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Notification) error {
	var failures []string
	var delivered []string

	for _, n := range d.notifiers {
		if err := n.Notify(ctx, msg); err != nil {
			d.logger.Error().Err(err).Str("channel", n.Channel()).Msg("Failed to deliver notification")
			failures = append(failures, fmt.Sprintf("%s: %v", n.Channel(), err))
			continue
		}
		delivered = append(delivered, n.Channel())
	}

	if len(delivered) > 0 {
		d.logger.Info().Strs("channels", delivered).Str("subject", msg.Subject).Msg("Notification delivered")
	}
	if len(failures) > 0 {
		return errs.NewNotificationError(strings.Join(failures, ", "), nil)
	}
	return nil
}

// OrderNotification describes a newly submitted order.
func OrderNotification(o models.Order) Notification {
	lines := [][2]string{
		{"Client", o.ClientName},
		{"Email", o.ClientEmail},
		{"Phone", derefString(o.Phone)},
		{"Service", o.ServiceType},
		{"Budget", derefString(o.Budget)},
		{"Deadline", formatDeadline(o)},
		{"Description", o.Description},
	}
	return Notification{
		Subject: fmt.Sprintf("New order from %s: %s", o.ClientName, o.ServiceType),
		Text:    textBody(lines),
		HTML:    htmlBody("New order", lines),
		ReplyTo: o.ClientEmail,
	}
}

// MessageNotification describes a newly received contact message.
func MessageNotification(m models.ContactMessage) Notification {
	subject := derefString(m.Subject)
	if subject == "" {
		subject = "(no subject)"
	}
	lines := [][2]string{
		{"From", m.Name},
		{"Email", m.Email},
		{"Subject", subject},
		{"Message", m.Message},
	}
	return Notification{
		Subject: fmt.Sprintf("New message from %s", m.Name),
		Text:    textBody(lines),
		HTML:    htmlBody("New contact message", lines),
		ReplyTo: m.Email,
	}
}

func formatDeadline(o models.Order) string {
	if o.Deadline == nil {
		return ""
	}
	return o.Deadline.Format("2006-01-02")
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func textBody(lines [][2]string) string {
	var b strings.Builder
	for _, l := range lines {
		if l[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", l[0], l[1])
	}
	return b.String()
}

func htmlBody(heading string, lines [][2]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2><table>", html.EscapeString(heading))
	for _, l := range lines {
		if l[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "<tr><td><strong>%s</strong></td><td>%s</td></tr>",
			html.EscapeString(l[0]), strings.ReplaceAll(html.EscapeString(l[1]), "\n", "<br>"))
	}
	b.WriteString("</table>")
	return b.String()
}
