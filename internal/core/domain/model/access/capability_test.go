package access_test

import (
	"fmt"
	"testing"

	"factoryorders/internal/core/domain/model/access"

	"github.com/stretchr/testify/assert"
)

func allCapabilities() []access.Capability {
	return []access.Capability{
		access.CapUpdateOrderStatus,
		access.CapSetManufacturerPrice,
		access.CapApproveItems,
		access.CapManageMargins,
		access.CapRouteProducts,
		access.CapDeleteProducts,
		access.CapPurgeOrders,
		access.CapViewDiagnostics,
	}
}

func TestCan_CapabilityTable(t *testing.T) {
	// One row per role, every capability listed, so a table edit that drops or
	// grants a capability fails loudly here.
	expected := map[access.Role]map[access.Capability]bool{
		access.RoleAdmin: {
			access.CapUpdateOrderStatus:    true,
			access.CapSetManufacturerPrice: false,
			access.CapApproveItems:         true,
			access.CapManageMargins:        true,
			access.CapRouteProducts:        true,
			access.CapDeleteProducts:       true,
			access.CapPurgeOrders:          true,
			access.CapViewDiagnostics:      true,
		},
		access.RoleStaff: {
			access.CapUpdateOrderStatus:    true,
			access.CapSetManufacturerPrice: false,
			access.CapApproveItems:         true,
			access.CapManageMargins:        true,
			access.CapRouteProducts:        true,
			access.CapDeleteProducts:       true,
			access.CapPurgeOrders:          false,
			access.CapViewDiagnostics:      true,
		},
		access.RoleManufacturer: {
			access.CapUpdateOrderStatus:    true,
			access.CapSetManufacturerPrice: true,
			access.CapApproveItems:         true,
			access.CapManageMargins:        false,
			access.CapRouteProducts:        false,
			access.CapDeleteProducts:       false,
			access.CapPurgeOrders:          false,
			access.CapViewDiagnostics:      false,
		},
		access.RoleClient: {
			access.CapUpdateOrderStatus:    true,
			access.CapSetManufacturerPrice: false,
			access.CapApproveItems:         false,
			access.CapManageMargins:        false,
			access.CapRouteProducts:        false,
			access.CapDeleteProducts:       false,
			access.CapPurgeOrders:          false,
			access.CapViewDiagnostics:      false,
		},
	}

	for role, caps := range expected {
		for _, capability := range allCapabilities() {
			name := fmt.Sprintf("%s/%d", role.String(), capability)
			assert.Equal(t, caps[capability], access.Can(role, capability), name)
		}
	}

	for role := range expected {
		assert.Len(t, expected[role], len(allCapabilities()),
			"expectation table must cover every capability for %s", role)
	}
}

func TestCan_SideAsymmetry(t *testing.T) {
	t.Run("internal side never sets the factory price", func(t *testing.T) {
		assert.False(t, access.Can(access.RoleAdmin, access.CapSetManufacturerPrice))
		assert.False(t, access.Can(access.RoleStaff, access.CapSetManufacturerPrice))
	})

	t.Run("factory side never touches margins", func(t *testing.T) {
		assert.False(t, access.Can(access.RoleManufacturer, access.CapManageMargins))
	})

	t.Run("only admin purges", func(t *testing.T) {
		for _, role := range []access.Role{access.RoleStaff, access.RoleManufacturer, access.RoleClient} {
			assert.False(t, access.Can(role, access.CapPurgeOrders), role.String())
		}
		assert.True(t, access.Can(access.RoleAdmin, access.CapPurgeOrders))
	})
}

func TestCan_UnknownRoleHoldsNothing(t *testing.T) {
	for _, capability := range allCapabilities() {
		assert.False(t, access.Can(access.RoleUnknown, capability))
		assert.False(t, access.Can(access.Role(42), capability))
	}
}
