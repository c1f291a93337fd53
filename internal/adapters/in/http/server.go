// Package http exposes the order service over REST. Handlers translate
// between JSON payloads and the command/query layer; all business rules stay
// in the core.
//
// Authentication is out of scope here: the gateway in front of the service
// resolves the session and passes the actor through the X-Actor-Id and
// X-Actor-Role headers.
package http

import (
	"errors"
	"net/http"
	"time"

	"factoryorders/internal/core/application/usecases/commands"
	"factoryorders/internal/core/application/usecases/queries"
	"factoryorders/internal/core/domain/model/access"
	"factoryorders/internal/core/domain/model/audit"
	"factoryorders/internal/core/domain/model/kernel"
	"factoryorders/internal/core/domain/model/order"
	"factoryorders/internal/core/domain/model/product"
	"factoryorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires the HTTP surface to command and query handlers.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	transitionHandler         commands.TransitionOrderStatusCommandHandler
	addProductHandler         commands.AddProductCommandHandler
	setPriceHandler           commands.SetManufacturerPriceCommandHandler
	setMarginOverrideHandler  commands.SetMarginOverrideCommandHandler
	setOrderMarginHandler     commands.SetOrderMarginCommandHandler
	updateConfigHandler       commands.UpdateSystemConfigCommandHandler
	repairMarginsHandler      commands.RepairMarginsCommandHandler
	routeProductHandler       commands.RouteProductCommandHandler
	lockProductHandler        commands.LockProductCommandHandler
	softDeleteProductHandler  commands.SoftDeleteProductCommandHandler
	createInvoiceHandler      commands.CreateInvoiceCommandHandler
	markInvoicePaidHandler    commands.MarkInvoicePaidCommandHandler
	approveItemHandler        commands.ApproveItemCommandHandler
	sweepDraftsHandler        commands.SweepExpiredDraftsCommandHandler

	// Query handlers
	unpricedProductsHandler   queries.GetUnpricedProductsQueryHandler
	deletedProductsHandler    queries.GetDeletedProductsQueryHandler
	auditTrailHandler         queries.GetAuditTrailQueryHandler
	pricingDiagnosticsHandler queries.GetPricingDiagnosticsQueryHandler

	draftRetention time.Duration
}

// NewServer creates the HTTP server over the given handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionHandler commands.TransitionOrderStatusCommandHandler,
	addProductHandler commands.AddProductCommandHandler,
	setPriceHandler commands.SetManufacturerPriceCommandHandler,
	setMarginOverrideHandler commands.SetMarginOverrideCommandHandler,
	setOrderMarginHandler commands.SetOrderMarginCommandHandler,
	updateConfigHandler commands.UpdateSystemConfigCommandHandler,
	repairMarginsHandler commands.RepairMarginsCommandHandler,
	routeProductHandler commands.RouteProductCommandHandler,
	lockProductHandler commands.LockProductCommandHandler,
	softDeleteProductHandler commands.SoftDeleteProductCommandHandler,
	createInvoiceHandler commands.CreateInvoiceCommandHandler,
	markInvoicePaidHandler commands.MarkInvoicePaidCommandHandler,
	approveItemHandler commands.ApproveItemCommandHandler,
	sweepDraftsHandler commands.SweepExpiredDraftsCommandHandler,
	unpricedProductsHandler queries.GetUnpricedProductsQueryHandler,
	deletedProductsHandler queries.GetDeletedProductsQueryHandler,
	auditTrailHandler queries.GetAuditTrailQueryHandler,
	pricingDiagnosticsHandler queries.GetPricingDiagnosticsQueryHandler,
	draftRetention time.Duration,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		transitionHandler:         transitionHandler,
		addProductHandler:         addProductHandler,
		setPriceHandler:           setPriceHandler,
		setMarginOverrideHandler:  setMarginOverrideHandler,
		setOrderMarginHandler:     setOrderMarginHandler,
		updateConfigHandler:       updateConfigHandler,
		repairMarginsHandler:      repairMarginsHandler,
		routeProductHandler:       routeProductHandler,
		lockProductHandler:        lockProductHandler,
		softDeleteProductHandler:  softDeleteProductHandler,
		createInvoiceHandler:      createInvoiceHandler,
		markInvoicePaidHandler:    markInvoicePaidHandler,
		approveItemHandler:        approveItemHandler,
		sweepDraftsHandler:        sweepDraftsHandler,
		unpricedProductsHandler:   unpricedProductsHandler,
		deletedProductsHandler:    deletedProductsHandler,
		auditTrailHandler:         auditTrailHandler,
		pricingDiagnosticsHandler: pricingDiagnosticsHandler,
		draftRetention:            draftRetention,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/status", s.TransitionOrderStatus)
	api.POST("/orders/:orderID/products", s.AddProduct)
	api.PUT("/orders/:orderID/margin", s.SetOrderMargin)
	api.POST("/orders/:orderID/invoices", s.CreateInvoice)
	api.GET("/orders/:orderID/deleted-products", s.GetDeletedProducts)

	api.PUT("/products/:productID/manufacturer-price", s.SetManufacturerPrice)
	api.PUT("/products/:productID/margin", s.SetMarginOverride)
	api.PUT("/products/:productID/audience", s.RouteProduct)
	api.PUT("/products/:productID/lock", s.LockProduct)
	api.DELETE("/products/:productID", s.SoftDeleteProduct)

	api.PUT("/items/:itemID/approval", s.ApproveItem)

	api.POST("/invoices/:invoiceID/payment", s.MarkInvoicePaid)

	api.PUT("/config/:key", s.UpdateSystemConfig)
	api.POST("/pricing/repair", s.RepairMargins)
	api.POST("/maintenance/draft-sweep", s.SweepExpiredDrafts)

	api.GET("/diagnostics/unpriced", s.GetUnpricedProducts)
	api.GET("/diagnostics/pricing", s.GetPricingDiagnostics)
	api.GET("/audit/:targetType/:targetID", s.GetAuditTrail)
}

// errorResponse is the uniform error payload.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps the domain error taxonomy onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	var notFound *errs.ObjectNotFoundError
	var precondition *errs.PreconditionFailedError
	var locked *errs.LockedError
	var configMissing *errs.ConfigurationMissingError

	switch {
	case errors.As(err, &notFound):
		code = http.StatusNotFound
	case errors.As(err, &locked):
		code = http.StatusLocked
	case errors.As(err, &configMissing):
		code = http.StatusInternalServerError
	case errors.As(err, &precondition):
		switch precondition.Reason {
		case errs.ReasonPermissionDenied:
			code = http.StatusForbidden
		case errs.ReasonStaleState:
			code = http.StatusConflict
		default:
			code = http.StatusUnprocessableEntity
		}
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, errorResponse{Code: code, Message: err.Error()})
}

// actor extracts the acting user from the gateway headers.
func actor(ctx echo.Context) (kernel.UUID, access.Role, error) {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Actor-Id"))
	if err != nil {
		return kernel.UUID{}, access.RoleUnknown, err
	}

	role, err := access.RoleFromString(ctx.Request().Header.Get("X-Actor-Role"))
	if err != nil {
		return kernel.UUID{}, access.RoleUnknown, err
	}

	return actorID, role, nil
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req struct {
		ClientID       string `json:"clientId"`
		ManufacturerID string `json:"manufacturerId"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	clientID, err := kernel.UUIDFromString(req.ClientID)
	if err != nil {
		return writeError(ctx, err)
	}
	manufacturerID, err := kernel.UUIDFromString(req.ManufacturerID)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, clientID, manufacturerID, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// TransitionOrderStatus handles POST /api/v1/orders/:orderID/status.
func (s *Server) TransitionOrderStatus(ctx echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	requested, err := order.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, requested, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.transitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddProduct handles POST /api/v1/orders/:orderID/products.
func (s *Server) AddProduct(ctx echo.Context) error {
	var req struct {
		Name  string `json:"name"`
		Items []struct {
			Variant  string `json:"variant"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.ItemSpec, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.ItemSpec{Variant: item.Variant, Quantity: item.Quantity})
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewAddProductCommand(productID, orderID, req.Name, items, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.addProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": productID.String()})
}

// SetManufacturerPrice handles PUT /api/v1/products/:productID/manufacturer-price.
func (s *Server) SetManufacturerPrice(ctx echo.Context) error {
	var req struct {
		PriceCents         int64  `json:"priceCents"`
		ShippingPriceCents *int64 `json:"shippingPriceCents"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	productID, err := pathUUID(ctx, "productID")
	if err != nil {
		return writeError(ctx, err)
	}

	price, err := kernel.NewMoneyFromCents(req.PriceCents)
	if err != nil {
		return writeError(ctx, err)
	}

	var shippingPrice *kernel.Money
	if req.ShippingPriceCents != nil {
		shipping, shipErr := kernel.NewMoneyFromCents(*req.ShippingPriceCents)
		if shipErr != nil {
			return writeError(ctx, shipErr)
		}
		shippingPrice = &shipping
	}

	cmd, err := commands.NewSetManufacturerPriceCommand(productID, price, shippingPrice, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setPriceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// marginBody is the shared payload for margin endpoints. Null percentages
// clear the corresponding override.
type marginBody struct {
	MarginPercent         *float64 `json:"marginPercent"`
	ShippingMarginPercent *float64 `json:"shippingMarginPercent"`
}

func (b marginBody) percents() (*kernel.Percent, *kernel.Percent, error) {
	var margin, shipping *kernel.Percent

	if b.MarginPercent != nil {
		pct, err := kernel.NewPercent(*b.MarginPercent)
		if err != nil {
			return nil, nil, err
		}
		margin = &pct
	}
	if b.ShippingMarginPercent != nil {
		pct, err := kernel.NewPercent(*b.ShippingMarginPercent)
		if err != nil {
			return nil, nil, err
		}
		shipping = &pct
	}

	return margin, shipping, nil
}

// SetMarginOverride handles PUT /api/v1/products/:productID/margin.
func (s *Server) SetMarginOverride(ctx echo.Context) error {
	var req marginBody
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	productID, err := pathUUID(ctx, "productID")
	if err != nil {
		return writeError(ctx, err)
	}

	margin, shipping, err := req.percents()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSetMarginOverrideCommand(productID, margin, shipping, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setMarginOverrideHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetOrderMargin handles PUT /api/v1/orders/:orderID/margin.
func (s *Server) SetOrderMargin(ctx echo.Context) error {
	var req marginBody
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	margin, shipping, err := req.percents()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSetOrderMarginCommand(orderID, margin, shipping, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.setOrderMarginHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateSystemConfig handles PUT /api/v1/config/:key.
func (s *Server) UpdateSystemConfig(ctx echo.Context) error {
	var req struct {
		Value float64 `json:"value"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	value, err := kernel.NewPercent(req.Value)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateSystemConfigCommand(ctx.Param("key"), value, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.updateConfigHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RepairMargins handles POST /api/v1/pricing/repair.
func (s *Server) RepairMargins(ctx echo.Context) error {
	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRepairMarginsCommand(actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	report, err := s.repairMarginsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	type failure struct {
		ProductID string `json:"productId"`
		Reason    string `json:"reason"`
	}
	failures := make([]failure, 0, len(report.Failures))
	for _, f := range report.Failures {
		failures = append(failures, failure{ProductID: f.ProductID.String(), Reason: f.Reason})
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"examined": report.Examined,
		"repaired": report.Repaired,
		"failures": failures,
	})
}

// SweepExpiredDrafts handles POST /api/v1/maintenance/draft-sweep. The same
// sweep the scheduler runs nightly, triggered on demand.
func (s *Server) SweepExpiredDrafts(ctx echo.Context) error {
	_, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	if !access.Can(role, access.CapPurgeOrders) {
		return writeError(ctx, errs.NewPreconditionFailedError(
			errs.ReasonPermissionDenied,
			"role is not allowed to purge orders",
		))
	}

	cmd, err := commands.NewSweepExpiredDraftsCommand(s.draftRetention)
	if err != nil {
		return writeError(ctx, err)
	}

	report, err := s.sweepDraftsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	type failure struct {
		OrderID string `json:"orderId"`
		Reason  string `json:"reason"`
	}
	failures := make([]failure, 0, len(report.Failures))
	for _, f := range report.Failures {
		failures = append(failures, failure{OrderID: f.OrderID.String(), Reason: f.Reason})
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"examined": report.Examined,
		"purged":   report.Purged,
		"failures": failures,
	})
}

// RouteProduct handles PUT /api/v1/products/:productID/audience.
func (s *Server) RouteProduct(ctx echo.Context) error {
	var req struct {
		Audience string `json:"audience"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	productID, err := pathUUID(ctx, "productID")
	if err != nil {
		return writeError(ctx, err)
	}

	audience, err := product.AudienceFromString(req.Audience)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRouteProductCommand(productID, audience, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.routeProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LockProduct handles PUT /api/v1/products/:productID/lock.
func (s *Server) LockProduct(ctx echo.Context) error {
	var req struct {
		Locked bool `json:"locked"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	productID, err := pathUUID(ctx, "productID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewLockProductCommand(productID, req.Locked, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.lockProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SoftDeleteProduct handles DELETE /api/v1/products/:productID.
// The mandatory reason arrives as a query parameter because DELETE bodies
// are not reliably forwarded by intermediaries.
func (s *Server) SoftDeleteProduct(ctx echo.Context) error {
	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	productID, err := pathUUID(ctx, "productID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSoftDeleteProductCommand(productID, ctx.QueryParam("reason"), actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.softDeleteProductHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateInvoice handles POST /api/v1/orders/:orderID/invoices.
func (s *Server) CreateInvoice(ctx echo.Context) error {
	var req struct {
		AmountCents int64 `json:"amountCents"`
		IsSampleFee bool  `json:"isSampleFee"`
		Lines       []struct {
			Description string `json:"description"`
			AmountCents int64  `json:"amountCents"`
			Quantity    int    `json:"quantity"`
		} `json:"lines"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	amount, err := kernel.NewMoneyFromCents(req.AmountCents)
	if err != nil {
		return writeError(ctx, err)
	}

	lines := make([]commands.InvoiceLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lineAmount, lineErr := kernel.NewMoneyFromCents(line.AmountCents)
		if lineErr != nil {
			return writeError(ctx, lineErr)
		}
		lines = append(lines, commands.InvoiceLine{
			Description: line.Description,
			Amount:      lineAmount,
			Quantity:    line.Quantity,
		})
	}

	cmd, err := commands.NewCreateInvoiceCommand(orderID, amount, lines, req.IsSampleFee, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	invoiceID, err := s.createInvoiceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": invoiceID.String()})
}

// MarkInvoicePaid handles POST /api/v1/invoices/:invoiceID/payment.
func (s *Server) MarkInvoicePaid(ctx echo.Context) error {
	var req struct {
		AmountCents int64  `json:"amountCents"`
		ExternalRef string `json:"externalRef"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	invoiceID, err := pathUUID(ctx, "invoiceID")
	if err != nil {
		return writeError(ctx, err)
	}

	amount, err := kernel.NewMoneyFromCents(req.AmountCents)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkInvoicePaidCommand(invoiceID, amount, req.ExternalRef, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.markInvoicePaidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApproveItem handles PUT /api/v1/items/:itemID/approval.
func (s *Server) ApproveItem(ctx echo.Context) error {
	var req struct {
		Decision string `json:"decision"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	actorID, role, err := actor(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	itemID, err := pathUUID(ctx, "itemID")
	if err != nil {
		return writeError(ctx, err)
	}

	decision, err := product.ApprovalFromString(req.Decision)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewApproveItemCommand(itemID, decision, actorID, role)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.approveItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetUnpricedProducts handles GET /api/v1/diagnostics/unpriced.
func (s *Server) GetUnpricedProducts(ctx echo.Context) error {
	query := queries.NewGetUnpricedProductsQuery()

	products, err := s.unpricedProductsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	type row struct {
		ProductID              string `json:"productId"`
		OrderID                string `json:"orderId"`
		Name                   string `json:"name"`
		ManufacturerPriceCents int64  `json:"manufacturerPriceCents"`
		Locked                 bool   `json:"locked"`
	}
	response := make([]row, 0, len(products))
	for _, p := range products {
		response = append(response, row{
			ProductID:              p.ProductID.String(),
			OrderID:                p.OrderID.String(),
			Name:                   p.Name,
			ManufacturerPriceCents: p.ManufacturerPrice.Cents(),
			Locked:                 p.Locked,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDeletedProducts handles GET /api/v1/orders/:orderID/deleted-products.
func (s *Server) GetDeletedProducts(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDeletedProductsQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	report, err := s.deletedProductsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	type row struct {
		ProductID string `json:"productId"`
		Name      string `json:"name"`
		DeletedAt string `json:"deletedAt"`
		DeletedBy string `json:"deletedBy"`
		Reason    string `json:"reason"`
	}
	response := make([]row, 0, len(report))
	for _, r := range report {
		response = append(response, row{
			ProductID: r.ProductID.String(),
			Name:      r.Name,
			DeletedAt: r.DeletedAt.Format("2006-01-02T15:04:05Z07:00"),
			DeletedBy: r.DeletedBy.String(),
			Reason:    r.Reason,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAuditTrail handles GET /api/v1/audit/:targetType/:targetID.
func (s *Server) GetAuditTrail(ctx echo.Context) error {
	query, err := queries.NewGetAuditTrailQuery(
		audit.TargetType(ctx.Param("targetType")),
		ctx.Param("targetID"),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	trail, err := s.auditTrailHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	type row struct {
		EntryID    string `json:"entryId"`
		ActorID    string `json:"actorId"`
		ActorRole  string `json:"actorRole"`
		Action     string `json:"action"`
		OldValue   string `json:"oldValue"`
		NewValue   string `json:"newValue"`
		OccurredAt string `json:"occurredAt"`
	}
	response := make([]row, 0, len(trail))
	for _, entry := range trail {
		response = append(response, row{
			EntryID:    entry.EntryID.String(),
			ActorID:    entry.ActorID.String(),
			ActorRole:  entry.ActorRole.String(),
			Action:     string(entry.Action),
			OldValue:   entry.OldValue,
			NewValue:   entry.NewValue,
			OccurredAt: entry.OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPricingDiagnostics handles GET /api/v1/diagnostics/pricing.
func (s *Server) GetPricingDiagnostics(ctx echo.Context) error {
	query := queries.NewGetPricingDiagnosticsQuery()

	diag, err := s.pricingDiagnosticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"unpricedProducts":      diag.UnpricedProducts,
		"lockedProducts":        diag.LockedProducts,
		"defaultMargin":         diag.DefaultMargin,
		"defaultShippingMargin": diag.DefaultShippingMargin,
		"missingDefaults":       diag.ConfiguredDefaultsMissed,
	})
}
