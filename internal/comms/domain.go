package comms

import (
	"strings"
	"time"
)

// Template is a reusable message with personalization tokens. Supported
// tokens are {{name}} (contact name) and {{brand}} (brand name).
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Subject   string    `json:"subject" validate:"required"`
	Body      string    `json:"body" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmailPayload is a fully rendered message addressed to one recipient.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Render fills the template tokens for one recipient.
func (t Template) Render(contactName, brandName string) (subject, body string) {
	replacer := strings.NewReplacer(
		"{{name}}", contactName,
		"{{brand}}", brandName,
	)
	return replacer.Replace(t.Subject), replacer.Replace(t.Body)
}
