// Package audit provides the append-only audit record written for every
// mutating action. Entries are immutable, never updated or deleted by normal
// flow, and deliberately outlive their targets: target IDs may reference
// removed rows.
package audit

import (
	"errors"
	"time"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through NewEntry.
var ErrEntryIsNotConstructed = errors.New("audit Entry must be created via NewEntry constructor")

// ActionType names the mutating action an audit entry records.
type ActionType string

// Audit action types. One constant per mutating operation in the core.
const (
	ActionStatusChanged       ActionType = "order.status_changed"
	ActionTransitionRejected  ActionType = "order.transition_rejected"
	ActionOrderCreated        ActionType = "order.created"
	ActionOrderPurged         ActionType = "order.purged"
	ActionSampleFeePaid       ActionType = "order.sample_fee_paid"
	ActionProductAdded        ActionType = "product.added"
	ActionProductPriced       ActionType = "product.manufacturer_priced"
	ActionPriceResolved       ActionType = "product.client_price_resolved"
	ActionMarginChanged       ActionType = "product.margin_changed"
	ActionProductRouted       ActionType = "product.routed"
	ActionProductLocked       ActionType = "product.locked"
	ActionProductUnlocked     ActionType = "product.unlocked"
	ActionProductDeleted      ActionType = "product.soft_deleted"
	ActionOrderMarginChanged  ActionType = "order.margin_changed"
	ActionSystemConfigChanged ActionType = "config.changed"
	ActionItemApproved        ActionType = "item.approved"
	ActionInvoiceCreated      ActionType = "invoice.created"
	ActionInvoicePaid         ActionType = "invoice.paid"
)

// TargetType names the kind of record an audit entry points at.
type TargetType string

// Audit target types.
const (
	TargetOrder        TargetType = "order"
	TargetOrderProduct TargetType = "order_product"
	TargetOrderItem    TargetType = "order_item"
	TargetOrderMargin  TargetType = "order_margin"
	TargetSystemConfig TargetType = "system_config"
	TargetInvoice      TargetType = "invoice"
)

// Entry is one immutable audit record: who did what to which record, with
// opaque serialized before/after snapshots. Snapshots are display-only, not
// replay material.
type Entry struct {
	id         kernel.UUID
	actorID    kernel.UUID
	actorRole  access.Role
	action     ActionType
	targetType TargetType
	targetID   string
	oldValue   string
	newValue   string
	occurredAt time.Time

	isConstructed bool
}

// NewEntry creates an audit entry. System-initiated actions (jobs, sweeps)
// pass the job's service identity as the actor.
func NewEntry(
	id kernel.UUID,
	actorID kernel.UUID,
	actorRole access.Role,
	action ActionType,
	targetType TargetType,
	targetID string,
	oldValue string,
	newValue string,
	occurredAt time.Time,
) (*Entry, error) {
	e := &Entry{isConstructed: true}

	if err := errors.Join(
		e.setID(id),
		e.setActorID(actorID),
		e.setAction(action),
		e.setTarget(targetType, targetID),
	); err != nil {
		return nil, err
	}

	e.actorRole = actorRole
	e.oldValue = oldValue
	e.newValue = newValue
	e.occurredAt = occurredAt

	return e, nil
}

// RestoreEntry reconstructs an entry from storage.
func RestoreEntry(
	id kernel.UUID,
	actorID kernel.UUID,
	actorRole access.Role,
	action ActionType,
	targetType TargetType,
	targetID string,
	oldValue string,
	newValue string,
	occurredAt time.Time,
) (*Entry, error) {
	return NewEntry(id, actorID, actorRole, action, targetType, targetID, oldValue, newValue, occurredAt)
}

// Validate ensures the entry was created through the constructor.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// ActorID returns who performed the action.
func (e *Entry) ActorID() kernel.UUID {
	return e.actorID
}

// ActorRole returns the role the actor held at the time.
func (e *Entry) ActorRole() access.Role {
	return e.actorRole
}

// Action returns the recorded action type.
func (e *Entry) Action() ActionType {
	return e.action
}

// TargetType returns the kind of record acted on.
func (e *Entry) TargetType() TargetType {
	return e.targetType
}

// TargetID returns the identity of the record acted on. It may reference a
// record that has since been deleted.
func (e *Entry) TargetID() string {
	return e.targetID
}

// OldValue returns the serialized before-snapshot.
func (e *Entry) OldValue() string {
	return e.oldValue
}

// NewValue returns the serialized after-snapshot.
func (e *Entry) NewValue() string {
	return e.newValue
}

// OccurredAt returns when the action happened.
func (e *Entry) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	e.actorID = actorID
	return nil
}

func (e *Entry) setAction(action ActionType) error {
	if action == "" {
		return errs.NewValueIsRequiredError("audit action")
	}
	e.action = action
	return nil
}

func (e *Entry) setTarget(targetType TargetType, targetID string) error {
	if targetType == "" {
		return errs.NewValueIsRequiredError("audit target type")
	}
	if targetID == "" {
		return errs.NewValueIsRequiredError("audit target id")
	}
	e.targetType = targetType
	e.targetID = targetID
	return nil
}
