package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrCreateInvoiceCommandIsNotConstructed = errors.New(
	"CreateInvoiceCommand must be created via NewCreateInvoiceCommand constructor",
)

// InvoiceLine is one billed line on a new invoice.
type InvoiceLine struct {
	Description string
	Amount      kernel.Money
	Quantity    int
}

// CreateInvoiceCommand issues an invoice against an order. When isSampleFee
// is set the invoice is attached to the order as its sample-fee invoice, so
// a later payment can unblock sample approval.
type CreateInvoiceCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	amount      kernel.Money
	lines       []InvoiceLine
	isSampleFee bool
	actorID     kernel.UUID
	actorRole   access.Role

	guard guard.ConstructorGuard
}

// NewCreateInvoiceCommand creates a command to issue an invoice.
func NewCreateInvoiceCommand(
	orderID kernel.UUID,
	amount kernel.Money,
	lines []InvoiceLine,
	isSampleFee bool,
	actorID kernel.UUID,
	actorRole access.Role,
) (CreateInvoiceCommand, error) {
	cmd := CreateInvoiceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return CreateInvoiceCommand{}, err
	}

	if !actorRole.IsInternal() {
		return CreateInvoiceCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not issue invoices",
		)
	}

	for _, line := range lines {
		if line.Description == "" {
			return CreateInvoiceCommand{}, errs.NewValueIsRequiredError("description")
		}
		if line.Quantity <= 0 {
			return CreateInvoiceCommand{}, errs.NewValueIsInvalidError("quantity")
		}
	}

	cmd.orderID = orderID
	cmd.amount = amount
	cmd.lines = lines
	cmd.isSampleFee = isSampleFee
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrCreateInvoiceCommandIsNotConstructed)
}

// OrderID returns the billed order.
func (c CreateInvoiceCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the invoice total.
func (c CreateInvoiceCommand) Amount() kernel.Money {
	return c.amount
}

// Lines returns the invoice lines.
func (c CreateInvoiceCommand) Lines() []InvoiceLine {
	return c.lines
}

// IsSampleFee reports whether this invoice bills the order's sample fee.
func (c CreateInvoiceCommand) IsSampleFee() bool {
	return c.isSampleFee
}

// ActorID returns the acting user's identifier.
func (c CreateInvoiceCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c CreateInvoiceCommand) ActorRole() access.Role {
	return c.actorRole
}
