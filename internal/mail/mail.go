// Package mail provides outbound email delivery for the contact form through
// the ZeptoMail REST API.
package mail

import "context"

// Attachment is a file attached to an outbound message.
type Attachment struct {
	Name     string
	MIMEType string
	Content  []byte
}

// Message is an outbound contact email.
type Message struct {
	ReplyTo     string
	Subject     string
	TextBody    string
	Attachments []Attachment
}

// Sender delivers outbound messages. Implementations must honor the context
// deadline; a non-success upstream response surfaces as an upstream_failure
// error carrying the upstream body for diagnostics.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}
