package commands

import (
	"errors"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

// TransitionOrderStatusCommand represents a request to move an order to a new
// lifecycle status on behalf of an actor.
type TransitionOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	requested order.Status
	actorID   kernel.UUID
	actorRole access.Role

	guard guard.ConstructorGuard
}

// NewTransitionOrderStatusCommand creates a command to transition an order's status.
// Validates identifiers, the requested status, and the actor role.
func NewTransitionOrderStatusCommand(
	orderID kernel.UUID,
	requested order.Status,
	actorID kernel.UUID,
	actorRole access.Role,
) (TransitionOrderStatusCommand, error) {
	cmd := TransitionOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequested(requested),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Requested returns the target status.
func (c TransitionOrderStatusCommand) Requested() order.Status {
	return c.requested
}

// ActorID returns the acting user's identifier.
func (c TransitionOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the acting user's role.
func (c TransitionOrderStatusCommand) ActorRole() access.Role {
	return c.actorRole
}

func (c *TransitionOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderStatusCommand) setRequested(requested order.Status) error {
	if err := requested.Validate(); err != nil {
		return err
	}
	c.requested = requested
	return nil
}

func (c *TransitionOrderStatusCommand) setActor(actorID kernel.UUID, actorRole access.Role) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := actorRole.Validate(); err != nil {
		return err
	}
	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
