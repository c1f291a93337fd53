package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrAddProductCommandIsNotConstructed = errors.New(
	"AddProductCommand must be created via NewAddProductCommand constructor",
)

// ItemSpec is one variant line requested when adding a product.
type ItemSpec struct {
	Variant  string
	Quantity int
}

// AddProductCommand represents a request to attach a product line, with its
// variant items, to an existing order.
type AddProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	orderID   kernel.UUID
	name      string
	items     []ItemSpec
	actorID   kernel.UUID
	actorRole access.Role

	guard guard.ConstructorGuard
}

// NewAddProductCommand creates a command to attach a product to an order.
// Item quantities must be non-negative and variants non-empty.
func NewAddProductCommand(
	productID kernel.UUID,
	orderID kernel.UUID,
	name string,
	items []ItemSpec,
	actorID kernel.UUID,
	actorRole access.Role,
) (AddProductCommand, error) {
	cmd := AddProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productID.Validate(),
		orderID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return AddProductCommand{}, err
	}

	if name == "" {
		return AddProductCommand{}, errs.NewValueIsRequiredError("product name")
	}

	for _, item := range items {
		if item.Variant == "" {
			return AddProductCommand{}, errs.NewValueIsRequiredError("item variant")
		}
		if item.Quantity < 0 {
			return AddProductCommand{}, errs.NewValueIsOutOfRangeError("item quantity", item.Quantity, 0, int(^uint(0)>>1))
		}
	}

	cmd.productID = productID
	cmd.orderID = orderID
	cmd.name = name
	cmd.items = items
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddProductCommand) Validate() error {
	return c.guard.Validate(ErrAddProductCommandIsNotConstructed)
}

// ProductID returns the identifier the new product will carry.
func (c AddProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// OrderID returns the owning order's identifier.
func (c AddProductCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Name returns the product's display name.
func (c AddProductCommand) Name() string {
	return c.name
}

// Items returns the requested variant lines.
func (c AddProductCommand) Items() []ItemSpec {
	return c.items
}

// ActorID returns the acting user's identifier.
func (c AddProductCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c AddProductCommand) ActorRole() access.Role {
	return c.actorRole
}
