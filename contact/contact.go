// Package contact relays contact-form submissions to a mail provider.
//
// The relay validates a submission, renders the notification email and
// hands it to a Mailer. Delivery failures surface as ErrDelivery; the
// caller decides what to tell the visitor. Submissions are never retried.
package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/A5-Website/atom-5-nexus/logging"
)

// MaxMessageLength bounds the message body in characters.
const MaxMessageLength = 5000

// Default addresses of the notification email.
const (
	DefaultFrom = "Atom 5 Contact <onboarding@resend.dev>"
	DefaultTo   = "info@atom5engineering.com"
)

var (
	// ErrInvalid is returned for submissions that fail validation.
	ErrInvalid = errors.New("contact: invalid submission")
	// ErrDelivery is returned when the Mailer fails.
	ErrDelivery = errors.New("contact: delivery failed")
)

// Validation messages shown to visitors.
const (
	MsgRequired     = "Email and message are required"
	MsgTooLong      = "Message is too long"
	MsgInvalidEmail = "Email address is invalid"
)

var validate = validator.New()

// Request is a contact-form submission.
type Request struct {
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ValidationError carries the visitor-facing reason for ErrInvalid.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "contact: " + e.Reason }

// Unwrap makes errors.Is(err, ErrInvalid) hold.
func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Validate checks r and returns a *ValidationError on failure.
func (r Request) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Message == "" {
		return &ValidationError{Reason: MsgRequired}
	}
	// max counts runes, matching the form's character limit
	err := validate.Struct(&r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "max":
			return &ValidationError{Reason: MsgTooLong}
		case "email":
			return &ValidationError{Reason: MsgInvalidEmail}
		}
	}
	return &ValidationError{Reason: MsgRequired}
}

// Message is one outgoing email.
type Message struct {
	ID      string
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// MailerFunc adapts a function to Mailer.
type MailerFunc func(ctx context.Context, m Message) error

// Send calls f.
func (f MailerFunc) Send(ctx context.Context, m Message) error { return f(ctx, m) }

// LogMailer writes messages to a logger instead of sending them.
type LogMailer struct {
	Log logging.Logger
}

// Send logs m at info level.
func (l LogMailer) Send(_ context.Context, m Message) error {
	logging.OrNop(l.Log).Info("contact message",
		logging.String("id", m.ID),
		logging.String("reply_to", m.ReplyTo),
		logging.String("subject", m.Subject),
		logging.Int("html_bytes", len(m.HTML)))
	return nil
}

// Option configures a Relay.
type Option func(*Relay)

// WithAddresses overrides the sender and recipients.
func WithAddresses(from string, to ...string) Option {
	return func(r *Relay) {
		if from != "" {
			r.from = from
		}
		if len(to) > 0 {
			r.to = append([]string(nil), to...)
		}
	}
}

// WithLogger sets the relay logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Relay) { r.log = logging.OrNop(l) }
}

// WithIDs replaces the message id generator.
func WithIDs(next func() string) Option {
	return func(r *Relay) {
		if next != nil {
			r.nextID = next
		}
	}
}

// Relay validates submissions and forwards them to a Mailer.
type Relay struct {
	mailer Mailer
	from   string
	to     []string
	log    logging.Logger
	nextID func() string
}

// NewRelay creates a relay delivering through m.
func NewRelay(m Mailer, opts ...Option) *Relay {
	r := &Relay{
		mailer: m,
		from:   DefaultFrom,
		to:     []string{DefaultTo},
		log:    logging.Nop(),
		nextID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(logging.Component("contact"))
	return r
}

// Submit validates req and delivers the notification email.
// It returns the message id on success.
func (r *Relay) Submit(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if r.mailer == nil {
		return "", fmt.Errorf("%w: no mailer configured", ErrDelivery)
	}

	msg := Compose(req)
	msg.ID = r.nextID()
	msg.From = r.from
	msg.To = r.to

	r.log.Info("sending contact email", logging.String("id", msg.ID), logging.String("from", req.Email))
	if err := r.mailer.Send(ctx, msg); err != nil {
		r.log.Error("contact email failed", logging.String("id", msg.ID), logging.Err(err))
		return "", fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	return msg.ID, nil
}

// Compose renders the notification for req. Email and message are
// HTML-escaped and message newlines become <br>.
func Compose(req Request) Message {
	email := strings.TrimSpace(req.Email)
	esc := html.EscapeString(email)
	body := strings.ReplaceAll(html.EscapeString(req.Message), "\n", "<br>")

	var b strings.Builder
	b.WriteString("<h2>New Contact Form Submission</h2>\n")
	fmt.Fprintf(&b, "<p><strong>From:</strong> %s</p>\n", esc)
	b.WriteString("<p><strong>Message:</strong></p>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", body)

	return Message{
		ReplyTo: email,
		Subject: "New Contact Form Submission from " + email,
		HTML:    b.String(),
	}
}
