package order_test

import (
	"fmt"
	"testing"

	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Draft,
		order.SubmittedToManufacturer,
		order.PricedByManufacturer,
		order.SubmittedToClient,
		order.ClientApproved,
		order.ReadyForProduction,
		order.InProduction,
		order.Completed,
		order.Rejected,
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept all defined statuses", func(t *testing.T) {
		for _, s := range allStatuses() {
			assert.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("should reject unknown", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject out-of-range values", func(t *testing.T) {
		err := order.Status(100).Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Unknown:                 "Unknown",
		order.Draft:                   "Draft",
		order.SubmittedToManufacturer: "SubmittedToManufacturer",
		order.PricedByManufacturer:    "PricedByManufacturer",
		order.SubmittedToClient:       "SubmittedToClient",
		order.ClientApproved:          "ClientApproved",
		order.ReadyForProduction:      "ReadyForProduction",
		order.InProduction:            "InProduction",
		order.Completed:               "Completed",
		order.Rejected:                "Rejected",
	}

	for status, expected := range cases {
		t.Run(fmt.Sprintf("should format %s", expected), func(t *testing.T) {
			assert.Equal(t, expected, status.String())
		})
	}

	t.Run("should format invalid values as Unknown", func(t *testing.T) {
		assert.Equal(t, "Unknown", order.Status(42).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round-trip every valid status", func(t *testing.T) {
		for _, s := range allStatuses() {
			parsed, err := order.StatusFromString(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("Shipped")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark completed and rejected terminal", func(t *testing.T) {
		assert.True(t, order.Completed.IsTerminal())
		assert.True(t, order.Rejected.IsTerminal())
	})

	t.Run("should mark every other status non-terminal", func(t *testing.T) {
		for _, s := range allStatuses() {
			if s == order.Completed || s == order.Rejected {
				continue
			}
			assert.False(t, s.IsTerminal(), s.String())
		}
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	forward := []struct {
		from order.Status
		to   order.Status
	}{
		{order.Draft, order.SubmittedToManufacturer},
		{order.SubmittedToManufacturer, order.PricedByManufacturer},
		{order.PricedByManufacturer, order.SubmittedToClient},
		{order.SubmittedToClient, order.ClientApproved},
		{order.ClientApproved, order.ReadyForProduction},
		{order.ReadyForProduction, order.InProduction},
		{order.InProduction, order.Completed},
	}

	t.Run("should allow each forward step", func(t *testing.T) {
		for _, tc := range forward {
			assert.True(t, tc.from.CanTransitionTo(tc.to),
				"%s -> %s", tc.from, tc.to)
		}
	})

	t.Run("should forbid skipping a step", func(t *testing.T) {
		assert.False(t, order.Draft.CanTransitionTo(order.PricedByManufacturer))
		assert.False(t, order.SubmittedToManufacturer.CanTransitionTo(order.ClientApproved))
		assert.False(t, order.ClientApproved.CanTransitionTo(order.Completed))
	})

	t.Run("should forbid moving backwards", func(t *testing.T) {
		assert.False(t, order.SubmittedToManufacturer.CanTransitionTo(order.Draft))
		assert.False(t, order.Completed.CanTransitionTo(order.InProduction))
	})

	t.Run("should allow rejection from any non-terminal status", func(t *testing.T) {
		for _, s := range allStatuses() {
			if s.IsTerminal() {
				continue
			}
			assert.True(t, s.CanTransitionTo(order.Rejected), s.String())
		}
	})

	t.Run("should forbid leaving terminal statuses", func(t *testing.T) {
		for _, target := range allStatuses() {
			assert.False(t, order.Completed.CanTransitionTo(target), target.String())
			assert.False(t, order.Rejected.CanTransitionTo(target), target.String())
		}
	})
}

func TestStatus_AllowedForRole(t *testing.T) {
	t.Run("should let internal staff drive any transition", func(t *testing.T) {
		for _, role := range []access.Role{access.RoleAdmin, access.RoleStaff} {
			assert.True(t, order.Draft.AllowedForRole(role, order.SubmittedToManufacturer))
			assert.True(t, order.InProduction.AllowedForRole(role, order.Completed))
			assert.True(t, order.SubmittedToClient.AllowedForRole(role, order.Rejected))
		}
	})

	t.Run("should limit manufacturers to pricing their submission", func(t *testing.T) {
		role := access.RoleManufacturer

		assert.True(t, order.SubmittedToManufacturer.AllowedForRole(role, order.PricedByManufacturer))
		assert.True(t, order.SubmittedToManufacturer.AllowedForRole(role, order.Rejected))

		assert.False(t, order.Draft.AllowedForRole(role, order.SubmittedToManufacturer))
		assert.False(t, order.SubmittedToClient.AllowedForRole(role, order.ClientApproved))
		assert.False(t, order.InProduction.AllowedForRole(role, order.Completed))
	})

	t.Run("should limit clients to approving their submission", func(t *testing.T) {
		role := access.RoleClient

		assert.True(t, order.SubmittedToClient.AllowedForRole(role, order.ClientApproved))
		assert.True(t, order.SubmittedToClient.AllowedForRole(role, order.Rejected))

		assert.False(t, order.SubmittedToManufacturer.AllowedForRole(role, order.PricedByManufacturer))
		assert.False(t, order.ClientApproved.AllowedForRole(role, order.ReadyForProduction))
	})

	t.Run("should deny unknown roles everything", func(t *testing.T) {
		assert.False(t, order.Draft.AllowedForRole(access.RoleUnknown, order.SubmittedToManufacturer))
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("should return the requested status on a legal move", func(t *testing.T) {
		next, err := order.Draft.TransitionTo(order.SubmittedToManufacturer, access.RoleStaff)

		require.NoError(t, err)
		assert.Equal(t, order.SubmittedToManufacturer, next)
	})

	t.Run("should report unreachable states", func(t *testing.T) {
		_, err := order.Draft.TransitionTo(order.Completed, access.RoleAdmin)

		require.Error(t, err)
		var precondition *errs.PreconditionFailedError
		require.ErrorAs(t, err, &precondition)
		assert.Equal(t, errs.ReasonStateNotReachable, precondition.Reason)
	})

	t.Run("should report missing permission", func(t *testing.T) {
		_, err := order.Draft.TransitionTo(order.SubmittedToManufacturer, access.RoleClient)

		require.Error(t, err)
		var precondition *errs.PreconditionFailedError
		require.ErrorAs(t, err, &precondition)
		assert.Equal(t, errs.ReasonPermissionDenied, precondition.Reason)
	})

	t.Run("should reject invalid target statuses", func(t *testing.T) {
		_, err := order.Draft.TransitionTo(order.Unknown, access.RoleAdmin)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
