package crm

import "time"

// PaymentStatus tracks where a registration invoice sits in the billing cycle.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPartial PaymentStatus = "Partial"
	PaymentPaid    PaymentStatus = "Paid"
)

// ReminderKind is the follow-up channel the account manager committed to.
type ReminderKind string

const (
	ReminderCall    ReminderKind = "call"
	ReminderMessage ReminderKind = "message"
	ReminderEmail   ReminderKind = "email"
)

// ReminderStatus is the lifecycle of a follow-up reminder.
type ReminderStatus string

const (
	ReminderPlanned ReminderStatus = "Planned"
	ReminderSent    ReminderStatus = "Sent"
	ReminderDone    ReminderStatus = "Done"
)

// Brand is a client company managed by the communications team.
type Brand struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Industry     string    `json:"industry"`
	ContactName  string    `json:"contactName" validate:"required"`
	ContactEmail string    `json:"contactEmail" validate:"required,email"`
	ContactPhone string    `json:"contactPhone"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Registration records a brand signing up for an event package.
type Registration struct {
	ID            string        `json:"id"`
	BrandID       string        `json:"brandId" validate:"required"`
	EventName     string        `json:"eventName" validate:"required"`
	Package       string        `json:"package" validate:"required"`
	InvoiceNumber string        `json:"invoiceNumber" validate:"required"`
	InvoiceAmount float64       `json:"invoiceAmount" validate:"gt=0"`
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"oneof=Pending Partial Paid"`
	Reminders     []Reminder    `json:"reminders"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Reminder is a follow-up commitment attached to a registration.
type Reminder struct {
	ID             string         `json:"id"`
	RegistrationID string         `json:"registrationId"`
	Kind           ReminderKind   `json:"kind" validate:"oneof=call message email"`
	DueAt          time.Time      `json:"dueAt" validate:"required"`
	Note           string         `json:"note"`
	Status         ReminderStatus `json:"status" validate:"oneof=Planned Sent Done"`
	CreatedAt      time.Time      `json:"createdAt"`
}
