package access

// Capability names a single permitted action. Roles map to capability sets
// through a static table, so adding a role is one table entry rather than a
// change at every call site.
type Capability int

const (
	// CapUpdateOrderStatus allows driving forward order status transitions.
	CapUpdateOrderStatus Capability = iota

	// CapSetManufacturerPrice allows setting the factory-facing price on a product.
	CapSetManufacturerPrice

	// CapApproveItems allows approving or rejecting order items.
	CapApproveItems

	// CapManageMargins allows editing margin overrides, order margins, and
	// system-wide margin defaults.
	CapManageMargins

	// CapRouteProducts allows assigning a product to an audience and
	// locking or unlocking it.
	CapRouteProducts

	// CapDeleteProducts allows soft-deleting order products.
	CapDeleteProducts

	// CapPurgeOrders allows running the expired-draft cascade sweep.
	CapPurgeOrders

	// CapViewDiagnostics allows reading the diagnostics and audit surfaces.
	CapViewDiagnostics
)

// capabilitySets is the static role-to-capability table. Pure data, no state:
// lookup is the whole permission model.
//
// The asymmetry between the internal and factory sides is intended: staff
// owns margins, routing, and deletion but never sets the factory-facing
// price, while a manufacturer prices its own products and approves items
// without ever seeing margin machinery. Only admin purges.
func capabilitySets() map[Role]map[Capability]bool {
	staff := map[Capability]bool{
		CapUpdateOrderStatus: true,
		CapApproveItems:      true,
		CapManageMargins:     true,
		CapRouteProducts:     true,
		CapDeleteProducts:    true,
		CapViewDiagnostics:   true,
	}

	admin := map[Capability]bool{
		CapUpdateOrderStatus: true,
		CapApproveItems:      true,
		CapManageMargins:     true,
		CapRouteProducts:     true,
		CapDeleteProducts:    true,
		CapPurgeOrders:       true,
		CapViewDiagnostics:   true,
	}

	manufacturer := map[Capability]bool{
		CapUpdateOrderStatus:    true,
		CapSetManufacturerPrice: true,
		CapApproveItems:         true,
	}

	client := map[Capability]bool{
		CapUpdateOrderStatus: true,
	}

	return map[Role]map[Capability]bool{
		RoleAdmin:        admin,
		RoleStaff:        staff,
		RoleManufacturer: manufacturer,
		RoleClient:       client,
	}
}

// Can reports whether the role holds the given capability.
// Unknown roles hold nothing.
func Can(role Role, capability Capability) bool {
	set, ok := capabilitySets()[role]
	if !ok {
		return false
	}
	return set[capability]
}
