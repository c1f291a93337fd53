package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrMarkInvoicePaidCommandIsNotConstructed = errors.New(
	"MarkInvoicePaidCommand must be created via NewMarkInvoicePaidCommand constructor",
)

// MarkInvoicePaidCommand records an external payment against an invoice.
// The external reference makes payment webhooks safe to retry.
type MarkInvoicePaidCommand struct { //nolint:recvcheck //using for validation
	invoiceID   kernel.UUID
	amount      kernel.Money
	externalRef string
	actorID     kernel.UUID
	actorRole   access.Role

	guard guard.ConstructorGuard
}

// NewMarkInvoicePaidCommand creates a command to record an invoice payment.
func NewMarkInvoicePaidCommand(
	invoiceID kernel.UUID,
	amount kernel.Money,
	externalRef string,
	actorID kernel.UUID,
	actorRole access.Role,
) (MarkInvoicePaidCommand, error) {
	cmd := MarkInvoicePaidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		invoiceID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return MarkInvoicePaidCommand{}, err
	}

	if externalRef == "" {
		return MarkInvoicePaidCommand{}, errs.NewValueIsRequiredError("externalRef")
	}

	if !actorRole.IsInternal() {
		return MarkInvoicePaidCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not record payments",
		)
	}

	cmd.invoiceID = invoiceID
	cmd.amount = amount
	cmd.externalRef = externalRef
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkInvoicePaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkInvoicePaidCommandIsNotConstructed)
}

// InvoiceID returns the invoice being paid.
func (c MarkInvoicePaidCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

// Amount returns the paid amount.
func (c MarkInvoicePaidCommand) Amount() kernel.Money {
	return c.amount
}

// ExternalRef returns the payment provider's reference.
func (c MarkInvoicePaidCommand) ExternalRef() string {
	return c.externalRef
}

// ActorID returns the acting user's identifier.
func (c MarkInvoicePaidCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c MarkInvoicePaidCommand) ActorRole() access.Role {
	return c.actorRole
}
