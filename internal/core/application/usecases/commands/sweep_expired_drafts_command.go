package commands

import (
	"errors"
	"time"

	"factoryorders/internal/pkg/errs"
	"factoryorders/internal/pkg/guard"
)

var ErrSweepExpiredDraftsCommandIsNotConstructed = errors.New(
	"SweepExpiredDraftsCommand must be created via NewSweepExpiredDraftsCommand constructor",
)

// SweepExpiredDraftsCommand purges draft orders that were never submitted
// within the retention window. Issued by the scheduler, not by users.
type SweepExpiredDraftsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewSweepExpiredDraftsCommand creates a sweep command for the given
// retention window.
func NewSweepExpiredDraftsCommand(retention time.Duration) (SweepExpiredDraftsCommand, error) {
	if retention <= 0 {
		return SweepExpiredDraftsCommand{}, errs.NewValueIsInvalidError("retention")
	}

	return SweepExpiredDraftsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepExpiredDraftsCommand) Validate() error {
	return c.guard.Validate(ErrSweepExpiredDraftsCommandIsNotConstructed)
}

// Retention returns how long a draft may stay unsubmitted before purging.
func (c SweepExpiredDraftsCommand) Retention() time.Duration {
	return c.retention
}
