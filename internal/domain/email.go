package domain

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// ShareEmailData holds data for the invite-link email sent when an owner
// shares an event.
type ShareEmailData struct {
	EventName string
	EventDate string
	InviteURL string
	FromName  string
}
