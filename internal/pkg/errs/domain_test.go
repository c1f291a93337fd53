package errs_test

import (
	"errors"
	"testing"

	"factoryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreconditionFailedError(t *testing.T) {
	t.Run("carries reason and message", func(t *testing.T) {
		err := errs.NewPreconditionFailedError(errs.ReasonStateNotReachable, "completed is not reachable from draft")

		assert.Equal(t, errs.ReasonStateNotReachable, err.Reason)
		assert.Equal(t,
			"precondition failed (state not reachable): completed is not reachable from draft",
			err.Error())
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("reasons are distinguishable", func(t *testing.T) {
		reasons := []errs.PreconditionReason{
			errs.ReasonStateNotReachable,
			errs.ReasonPermissionDenied,
			errs.ReasonUnresolvedPricing,
			errs.ReasonStaleState,
		}

		seen := map[string]bool{}
		for _, r := range reasons {
			assert.False(t, seen[r.String()], "duplicate reason string %q", r.String())
			seen[r.String()] = true
		}
	})

	t.Run("wraps a cause", func(t *testing.T) {
		cause := errors.New("row changed")
		err := errs.NewPreconditionFailedErrorWithCause(errs.ReasonStaleState, "order updated concurrently", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Contains(t, err.Error(), "cause: row changed")
	})
}

func TestLockedError(t *testing.T) {
	err := errs.NewLockedError("manufacturer price", "6ba7b810")

	require.ErrorIs(t, err, errs.ErrLocked)
	assert.Equal(t, "product is locked: manufacturer price on 6ba7b810", err.Error())
}

func TestConfigurationMissingError(t *testing.T) {
	err := errs.NewConfigurationMissingError("default_margin_percentage")

	require.ErrorIs(t, err, errs.ErrConfigurationMissing)
	assert.Equal(t, "configuration missing: default_margin_percentage", err.Error())
}

func TestIntegrityError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewIntegrityError("cascade left orphaned order items")

		require.ErrorIs(t, err, errs.ErrIntegrity)
		assert.Equal(t, "integrity violation: cascade left orphaned order items", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("foreign key violated")
		err := errs.NewIntegrityErrorWithCause("purge aborted", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Contains(t, err.Error(), "cause: foreign key violated")
	})
}
