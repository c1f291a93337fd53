package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrRouteProductCommandIsNotConstructed = errors.New(
	"RouteProductCommand must be created via NewRouteProductCommand constructor",
)

// RouteProductCommand changes which audience a product is visible to.
type RouteProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	audience  product.Audience
	actorID   kernel.UUID
	actorRole access.Role

	guard guard.ConstructorGuard
}

// NewRouteProductCommand creates a command to route a product to an audience.
func NewRouteProductCommand(
	productID kernel.UUID,
	audience product.Audience,
	actorID kernel.UUID,
	actorRole access.Role,
) (RouteProductCommand, error) {
	cmd := RouteProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productID.Validate(),
		audience.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
	); err != nil {
		return RouteProductCommand{}, err
	}

	if !access.Can(actorRole, access.CapRouteProducts) {
		return RouteProductCommand{}, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role may not route products",
		)
	}

	cmd.productID = productID
	cmd.audience = audience
	cmd.actorID = actorID
	cmd.actorRole = actorRole

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RouteProductCommand) Validate() error {
	return c.guard.Validate(ErrRouteProductCommandIsNotConstructed)
}

// ProductID returns the product being routed.
func (c RouteProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Audience returns the target audience.
func (c RouteProductCommand) Audience() product.Audience {
	return c.audience
}

// ActorID returns the acting user's identifier.
func (c RouteProductCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c RouteProductCommand) ActorRole() access.Role {
	return c.actorRole
}
