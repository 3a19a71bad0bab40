// Package notify holds the order notification capability. Two
// implementations are registered under the keys "email" and "sms"; the
// configuration picks which one order handlers resolve.
package notify

import (
	"context"
	"fmt"
)

// Notifier confirms an order to a customer and returns the confirmation
// message that was sent.
type Notifier interface {
	Confirm(ctx context.Context, customer, pie string) string
}

// EmailNotifier confirms orders over email.
type EmailNotifier struct{}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{}
}

func (n *EmailNotifier) Confirm(ctx context.Context, customer, pie string) string {
	return fmt.Sprintf("order confirmation for %q emailed to %s", pie, customer)
}

// SMSNotifier confirms orders over SMS.
type SMSNotifier struct{}

func NewSMSNotifier() *SMSNotifier {
	return &SMSNotifier{}
}

func (n *SMSNotifier) Confirm(ctx context.Context, customer, pie string) string {
	return fmt.Sprintf("order confirmation for %q texted to %s", pie, customer)
}
