package contact_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A5-Website/atom-5-nexus/contact"
)

type recorder struct {
	sent []contact.Message
	err  error
}

func (r *recorder) Send(_ context.Context, m contact.Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, m)
	return nil
}

func TestRequest_Validate(t *testing.T) {
	cases := []struct {
		name   string
		req    contact.Request
		reason string
	}{
		{"ok", contact.Request{Email: "a@b.co", Message: "hi"}, ""},
		{"no email", contact.Request{Message: "hi"}, contact.MsgRequired},
		{"blank email", contact.Request{Email: "   ", Message: "hi"}, contact.MsgRequired},
		{"no message", contact.Request{Email: "a@b.co"}, contact.MsgRequired},
		{"bad email", contact.Request{Email: "nope", Message: "hi"}, contact.MsgInvalidEmail},
		{"at limit", contact.Request{Email: "a@b.co", Message: strings.Repeat("x", contact.MaxMessageLength)}, ""},
		{"too long", contact.Request{Email: "a@b.co", Message: strings.Repeat("x", contact.MaxMessageLength+1)}, contact.MsgTooLong},
		{"multibyte at limit", contact.Request{Email: "a@b.co", Message: strings.Repeat("é", contact.MaxMessageLength)}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.reason == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, contact.ErrInvalid)
			var verr *contact.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.reason, verr.Reason)
		})
	}
}

func TestCompose_EscapesAndBreaksLines(t *testing.T) {
	m := contact.Compose(contact.Request{
		Email:   "eve@example.com",
		Message: "line one\n<script>alert(1)</script>\nline & three",
	})
	assert.Equal(t, "eve@example.com", m.ReplyTo)
	assert.Equal(t, "New Contact Form Submission from eve@example.com", m.Subject)
	assert.Contains(t, m.HTML, "line one<br>&lt;script&gt;alert(1)&lt;/script&gt;<br>line &amp; three")
	assert.NotContains(t, m.HTML, "<script>")
	assert.Contains(t, m.HTML, "<strong>From:</strong> eve@example.com")
}

func TestRelay_Submit(t *testing.T) {
	rec := &recorder{}
	r := contact.NewRelay(rec,
		contact.WithAddresses("site <no-reply@example.com>", "ops@example.com"),
		contact.WithIDs(func() string { return "id-1" }))

	id, err := r.Submit(context.Background(), contact.Request{Email: "a@b.co", Message: "hello\nthere"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	require.Len(t, rec.sent, 1)

	m := rec.sent[0]
	assert.Equal(t, "id-1", m.ID)
	assert.Equal(t, "site <no-reply@example.com>", m.From)
	assert.Equal(t, []string{"ops@example.com"}, m.To)
	assert.Equal(t, "a@b.co", m.ReplyTo)
	assert.Contains(t, m.HTML, "hello<br>there")
}

func TestRelay_DefaultsAndIDs(t *testing.T) {
	rec := &recorder{}
	r := contact.NewRelay(rec)
	id1, err := r.Submit(context.Background(), contact.Request{Email: "a@b.co", Message: "x"})
	require.NoError(t, err)
	id2, err := r.Submit(context.Background(), contact.Request{Email: "a@b.co", Message: "y"})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Len(t, id1, 36)
	assert.Equal(t, contact.DefaultFrom, rec.sent[0].From)
	assert.Equal(t, []string{contact.DefaultTo}, rec.sent[0].To)
}

func TestRelay_Failures(t *testing.T) {
	boom := errors.New("provider down")
	r := contact.NewRelay(&recorder{err: boom})

	_, err := r.Submit(context.Background(), contact.Request{Email: "a@b.co", Message: "x"})
	assert.ErrorIs(t, err, contact.ErrDelivery)
	assert.ErrorIs(t, err, boom)

	_, err = r.Submit(context.Background(), contact.Request{})
	assert.ErrorIs(t, err, contact.ErrInvalid)
	assert.NotErrorIs(t, err, contact.ErrDelivery)

	_, err = contact.NewRelay(nil).Submit(context.Background(), contact.Request{Email: "a@b.co", Message: "x"})
	assert.ErrorIs(t, err, contact.ErrDelivery)
}

func TestLogMailer(t *testing.T) {
	r := contact.NewRelay(contact.LogMailer{})
	_, err := r.Submit(context.Background(), contact.Request{Email: "a@b.co", Message: "x"})
	assert.NoError(t, err)
}
