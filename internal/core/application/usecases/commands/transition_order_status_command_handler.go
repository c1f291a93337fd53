package commands

import (
	"context"
	"fmt"
	"time"

	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/core/domain/services"
	"factoryorders/internal/core/ports"
)

// TransitionOrderStatusCommandHandler drives order lifecycle transitions.
//
// The handler enforces three guards in order: the status successor table,
// the actor's role rules, and pricing completeness for the submission steps.
// Reachability and role are judged first, so a request for an illegal target
// status is always refused as unreachable even when its pricing precondition
// would also fail.
// Persistence uses compare-and-set on the previous status, so when two
// transitions race, exactly one wins and the loser gets a
// PreconditionFailedError with ReasonStaleState.
//
// Every successful transition is audited with the old and new status.
// Refused transitions are audited as rejected attempts; the audit channel
// never fails the command either way.
type TransitionOrderStatusCommandHandler struct {
	uowFactory  OrderUoWFactory
	guard       services.TransitionGuard
	auditLogger ports.AuditLogger
	notifier    ports.Notifier
}

// NewTransitionOrderStatusCommandHandler creates a handler for status transitions.
func NewTransitionOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	auditLogger ports.AuditLogger,
	notifier ports.Notifier,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory:  uowFactory,
		guard:       services.NewTransitionGuard(),
		auditLogger: auditLogger,
		notifier:    notifier,
	}
}

// Handle processes the transition command.
func (h TransitionOrderStatusCommandHandler) Handle(ctx context.Context, cmd TransitionOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	productRepo := uow.ProductRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	oldStatus := ord.Status()

	products, err := productRepo.GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = ord.TransitionTo(cmd.Requested(), cmd.ActorRole()); err != nil {
		h.recordRejected(ctx, cmd, oldStatus, err)
		return err
	}

	if err = h.guard.CheckPricingComplete(cmd.Requested(), products); err != nil {
		h.recordRejected(ctx, cmd, oldStatus, err)
		return err
	}

	if err = orderRepo.UpdateStatus(ctx, ord, oldStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.recordTransition(ctx, cmd, oldStatus)
	h.notifyParties(ctx, cmd, ord.ClientID(), ord.ManufacturerID())

	return nil
}

func (h TransitionOrderStatusCommandHandler) recordTransition(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
	oldStatus order.Status,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionStatusChanged,
		audit.TargetOrder,
		cmd.OrderID().String(),
		oldStatus.String(),
		cmd.Requested().String(),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}

func (h TransitionOrderStatusCommandHandler) recordRejected(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
	oldStatus order.Status,
	cause error,
) {
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		cmd.ActorID(),
		cmd.ActorRole(),
		audit.ActionTransitionRejected,
		audit.TargetOrder,
		cmd.OrderID().String(),
		oldStatus.String(),
		fmt.Sprintf("%s (refused: %s)", cmd.Requested(), cause),
		time.Now().UTC(),
	)
	if err != nil {
		return
	}
	h.auditLogger.Record(ctx, entry)
}

func (h TransitionOrderStatusCommandHandler) notifyParties(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
	clientID kernel.UUID,
	manufacturerID kernel.UUID,
) {
	message := fmt.Sprintf("Order moved to %s", cmd.Requested())
	h.notifier.Notify(ctx, clientID, ports.NotifyStatusChanged, message, cmd.OrderID())
	h.notifier.Notify(ctx, manufacturerID, ports.NotifyStatusChanged, message, cmd.OrderID())
}
