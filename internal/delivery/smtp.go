// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/gomail.v2"

	"github.com/staffpass/staffpass/internal/auth"
)

// SMTPDelivery sends reset tokens by email. Employee IDs double as the local
// part of the recipient address under the configured domain, or the address
// resolver can be replaced for directory-backed lookups.
type SMTPDelivery struct {
	dialer  *gomail.Dialer
	from    string
	resolve AddressResolver
}

// AddressResolver maps an employee ID to a recipient email address.
type AddressResolver func(employeeID string) (string, error)

// DomainResolver returns an AddressResolver that uses the employee ID as the
// local part of an address under domain. Employee IDs that already look like
// full addresses pass through unchanged.
func DomainResolver(domain string) AddressResolver {
	return func(employeeID string) (string, error) {
		if strings.Contains(employeeID, "@") {
			return employeeID, nil
		}
		if domain == "" {
			return "", oops.Code("DELIVERY_NO_DOMAIN").
				With("employee_id", employeeID).
				Errorf("no email domain configured")
		}
		return strings.ToLower(employeeID) + "@" + domain, nil
	}
}

// NewSMTPDelivery creates an SMTPDelivery.
func NewSMTPDelivery(host string, port int, username, password, from string, resolve AddressResolver) *SMTPDelivery {
	return &SMTPDelivery{
		dialer:  gomail.NewDialer(host, port, username, password),
		from:    from,
		resolve: resolve,
	}
}

// Deliver emails the plaintext token to the employee.
func (d *SMTPDelivery) Deliver(ctx context.Context, employeeID, token string) error {
	if d.resolve == nil {
		return oops.Code("DELIVERY_NO_RESOLVER").Errorf("no address resolver configured")
	}
	to, err := d.resolve(employeeID)
	if err != nil {
		return oops.Code("DELIVERY_RESOLVE_FAILED").
			With("employee_id", employeeID).
			Wrap(err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password reset request")
	m.SetBody("text/html", fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for employee ID <strong>%s</strong>.</p>
		<p>Use the following token to reset your password: <strong>%s</strong></p>
		<p>The token expires in one hour. If you did not request this change, you can ignore this email.</p>
	`, employeeID, token))

	if err := d.dialer.DialAndSend(m); err != nil {
		return oops.Code("DELIVERY_SEND_FAILED").
			With("employee_id", employeeID).
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ auth.TokenDelivery = (*SMTPDelivery)(nil)
