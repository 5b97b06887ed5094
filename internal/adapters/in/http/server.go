package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/core/domain/model/suborder"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Carriers redeliver webhooks for up to a day; keys older than that are safe
// to forget.
const webhookDedupeTTL = 24 * time.Hour

// Server exposes the fulfillment engine over HTTP. It coordinates between
// echo handlers and application use cases and owns the webhook replay check.
type Server struct {
	// Command handlers
	decomposeOrderHandler        commands.DecomposeOrderCommandHandler
	acceptSubOrderHandler        commands.AcceptSubOrderCommandHandler
	rejectSubOrderHandler        commands.RejectSubOrderCommandHandler
	cancelSubOrderHandler        commands.CancelSubOrderCommandHandler
	applyCarrierUpdateHandler    commands.ApplyCarrierUpdateCommandHandler
	releasePaymentHandler        commands.ReleasePaymentCommandHandler
	createReturnRequestHandler   commands.CreateReturnRequestCommandHandler
	approveReturnHandler         commands.ApproveReturnCommandHandler
	rejectReturnHandler          commands.RejectReturnCommandHandler
	startReturnProcessingHandler commands.StartReturnProcessingCommandHandler
	completeReturnHandler        commands.CompleteReturnCommandHandler
	updateReturnSettingsHandler  commands.UpdateReturnSettingsCommandHandler

	// Query handlers
	getOrderHandler               queries.GetOrderQueryHandler
	getSellerSubOrdersHandler     queries.GetSellerSubOrdersQueryHandler
	getReleasablePaymentsHandler  queries.GetReleasablePaymentsQueryHandler
	getReturnRequestsHandler      queries.GetReturnRequestsQueryHandler

	dedupeStore ports.DedupeStore
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	decomposeOrderHandler commands.DecomposeOrderCommandHandler,
	acceptSubOrderHandler commands.AcceptSubOrderCommandHandler,
	rejectSubOrderHandler commands.RejectSubOrderCommandHandler,
	cancelSubOrderHandler commands.CancelSubOrderCommandHandler,
	applyCarrierUpdateHandler commands.ApplyCarrierUpdateCommandHandler,
	releasePaymentHandler commands.ReleasePaymentCommandHandler,
	createReturnRequestHandler commands.CreateReturnRequestCommandHandler,
	approveReturnHandler commands.ApproveReturnCommandHandler,
	rejectReturnHandler commands.RejectReturnCommandHandler,
	startReturnProcessingHandler commands.StartReturnProcessingCommandHandler,
	completeReturnHandler commands.CompleteReturnCommandHandler,
	updateReturnSettingsHandler commands.UpdateReturnSettingsCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getSellerSubOrdersHandler queries.GetSellerSubOrdersQueryHandler,
	getReleasablePaymentsHandler queries.GetReleasablePaymentsQueryHandler,
	getReturnRequestsHandler queries.GetReturnRequestsQueryHandler,
	dedupeStore ports.DedupeStore,
	logger *slog.Logger,
) *Server {
	return &Server{
		decomposeOrderHandler:        decomposeOrderHandler,
		acceptSubOrderHandler:        acceptSubOrderHandler,
		rejectSubOrderHandler:        rejectSubOrderHandler,
		cancelSubOrderHandler:        cancelSubOrderHandler,
		applyCarrierUpdateHandler:    applyCarrierUpdateHandler,
		releasePaymentHandler:        releasePaymentHandler,
		createReturnRequestHandler:   createReturnRequestHandler,
		approveReturnHandler:         approveReturnHandler,
		rejectReturnHandler:          rejectReturnHandler,
		startReturnProcessingHandler: startReturnProcessingHandler,
		completeReturnHandler:        completeReturnHandler,
		updateReturnSettingsHandler:  updateReturnSettingsHandler,
		getOrderHandler:              getOrderHandler,
		getSellerSubOrdersHandler:    getSellerSubOrdersHandler,
		getReleasablePaymentsHandler: getReleasablePaymentsHandler,
		getReturnRequestsHandler:     getReturnRequestsHandler,
		dedupeStore:                  dedupeStore,
		logger:                       logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts every endpoint on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.Checkout)
	api.GET("/orders/:orderID", s.GetOrder)

	api.POST("/suborders/:subOrderID/accept", s.AcceptSubOrder)
	api.POST("/suborders/:subOrderID/reject", s.RejectSubOrder)
	api.POST("/suborders/:subOrderID/cancel", s.CancelSubOrder)
	api.POST("/suborders/:subOrderID/release", s.ReleasePaymentBySubOrder)
	api.GET("/sellers/:sellerID/suborders", s.GetSellerSubOrders)

	api.POST("/carrier/webhook", s.CarrierWebhook)

	api.POST("/payments/:paymentID/release", s.ReleasePayment)
	api.GET("/payments/releasable", s.GetReleasablePayments)

	api.POST("/returns", s.CreateReturnRequest)
	api.POST("/returns/:requestID/approve", s.ApproveReturn)
	api.POST("/returns/:requestID/reject", s.RejectReturn)
	api.POST("/returns/:requestID/start-processing", s.StartReturnProcessing)
	api.POST("/returns/:requestID/complete", s.CompleteReturn)
	api.PUT("/returns/settings", s.UpdateReturnSettings)
	api.GET("/sellers/:sellerID/returns", s.GetReturnRequests)
	api.GET("/customers/:customerID/returns", s.GetCustomerReturnRequests)
}

// Checkout handles POST /api/v1/orders - decomposes a paid cart into
// per-seller suborders and escrow payments.
func (s *Server) Checkout(ctx echo.Context) error {
	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID")
	}

	items := make([]commands.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		sellerID, sellerErr := kernel.UUIDFromString(item.SellerID)
		if sellerErr != nil {
			return badRequest(ctx, "Invalid seller ID")
		}

		items = append(items, commands.CartItem{
			ProductID: item.ProductID,
			SellerID:  sellerID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	cmd, err := commands.NewDecomposeOrderCommand(
		customerID,
		req.CustomerName,
		req.CustomerEmail,
		req.Address.Line1,
		req.Address.City,
		req.Address.PostalCode,
		req.Address.Region,
		req.Address.Country,
		items,
		req.PaymentVerified,
	)
	if err != nil {
		return badRequest(ctx, "Invalid checkout data: "+err.Error())
	}

	orderID, err := s.decomposeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotVerified) {
			return unprocessable(ctx, "Payment is not verified")
		}

		return s.mapError(ctx, err, "Failed to decompose order")
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderID - the buyer-facing rollup view.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	order, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(order))
}

// AcceptSubOrder handles POST /api/v1/suborders/:subOrderID/accept.
func (s *Server) AcceptSubOrder(ctx echo.Context) error {
	subOrderID, sellerID, err := s.bindSellerAction(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptSubOrderCommand(subOrderID, sellerID)
	if err != nil {
		return badRequest(ctx, "Invalid accept data: "+err.Error())
	}

	if err := s.acceptSubOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err, "Failed to accept suborder")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectSubOrder handles POST /api/v1/suborders/:subOrderID/reject.
func (s *Server) RejectSubOrder(ctx echo.Context) error {
	subOrderID, sellerID, err := s.bindSellerAction(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRejectSubOrderCommand(subOrderID, sellerID)
	if err != nil {
		return badRequest(ctx, "Invalid reject data: "+err.Error())
	}

	if err := s.rejectSubOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err, "Failed to reject suborder")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelSubOrder handles POST /api/v1/suborders/:subOrderID/cancel - the
// administrative override.
func (s *Server) CancelSubOrder(ctx echo.Context) error {
	subOrderID, err := kernel.UUIDFromString(ctx.Param("subOrderID"))
	if err != nil {
		return badRequest(ctx, "Invalid suborder ID")
	}

	var req CancelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelSubOrderCommand(subOrderID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid cancel data: "+err.Error())
	}

	if err := s.cancelSubOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err, "Failed to cancel suborder")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CarrierWebhook handles POST /api/v1/carrier/webhook - the carrier's push
// channel. Replayed deliveries are acknowledged without processing so the
// carrier stops retrying.
func (s *Server) CarrierWebhook(ctx echo.Context) error {
	var req CarrierWebhookRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if req.EventID == "" {
		return badRequest(ctx, "Missing event ID")
	}

	subOrderID, err := kernel.UUIDFromString(req.SubOrderID)
	if err != nil {
		return badRequest(ctx, "Invalid suborder ID")
	}

	first, err := s.dedupeStore.FirstSeen(ctx.Request().Context(), req.EventID, webhookDedupeTTL)
	if err != nil {
		// Losing the dedupe store only risks duplicate processing, which the
		// lifecycle machine tolerates. Process the delivery anyway.
		s.logger.WarnContext(ctx.Request().Context(), "webhook dedupe check failed",
			slog.String("event_id", req.EventID), slog.Any("error", err))
		first = true
	}

	if !first {
		return ctx.NoContent(http.StatusOK)
	}

	cmd, err := commands.NewApplyCarrierUpdateCommand(subOrderID, req.Status, req.NDRReason)
	if err != nil {
		return badRequest(ctx, "Invalid carrier update: "+err.Error())
	}

	if err := s.applyCarrierUpdateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err, "Failed to apply carrier update")
	}

	return ctx.NoContent(http.StatusOK)
}

// ReleasePayment handles POST /api/v1/payments/:paymentID/release - a manual
// escrow release by an operator.
func (s *Server) ReleasePayment(ctx echo.Context) error {
	paymentID, err := kernel.UUIDFromString(ctx.Param("paymentID"))
	if err != nil {
		return badRequest(ctx, "Invalid payment ID")
	}

	var req ReleasePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReleasePaymentCommand(paymentID, payment.ActorAdmin, req.Note, req.Force)
	if err != nil {
		return badRequest(ctx, "Invalid release data: "+err.Error())
	}

	return s.handleRelease(ctx, cmd)
}

// ReleasePaymentBySubOrder handles POST /api/v1/suborders/:subOrderID/release -
// the same release addressed through the suborder.
func (s *Server) ReleasePaymentBySubOrder(ctx echo.Context) error {
	subOrderID, err := kernel.UUIDFromString(ctx.Param("subOrderID"))
	if err != nil {
		return badRequest(ctx, "Invalid suborder ID")
	}

	var req ReleasePaymentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReleasePaymentCommandBySubOrder(subOrderID, payment.ActorAdmin, req.Note, req.Force)
	if err != nil {
		return badRequest(ctx, "Invalid release data: "+err.Error())
	}

	return s.handleRelease(ctx, cmd)
}

func (s *Server) handleRelease(ctx echo.Context, cmd commands.ReleasePaymentCommand) error {
	pay, err := s.releasePaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err, "Failed to release payment")
	}

	return ctx.JSON(http.StatusOK, ReleasePaymentResponse{
		PaymentID:  pay.ID().String(),
		Status:     pay.Status().String(),
		ReleasedAt: pay.ReleasedAt(),
	})
}

// GetReleasablePayments handles GET /api/v1/payments/releasable - the
// settlement worklist.
func (s *Server) GetReleasablePayments(ctx echo.Context) error {
	worklist, err := s.getReleasablePaymentsHandler.Handle(
		ctx.Request().Context(), queries.NewGetReleasablePaymentsQuery(),
	)
	if err != nil {
		return s.mapError(ctx, err, "Failed to retrieve releasable payments")
	}

	response := make([]ReleasablePaymentResponse, len(worklist))
	for i, item := range worklist {
		response[i] = ReleasablePaymentResponse{
			ID:          item.ID.String(),
			OrderID:     item.OrderID.String(),
			SubOrderID:  item.SubOrderID.String(),
			SellerID:    item.SellerID.String(),
			Amount:      item.Amount,
			DeliveredAt: item.DeliveredAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetSellerSubOrders handles GET /api/v1/sellers/:sellerID/suborders with an
// optional ?status= filter.
func (s *Server) GetSellerSubOrders(ctx echo.Context) error {
	sellerID, err := kernel.UUIDFromString(ctx.Param("sellerID"))
	if err != nil {
		return badRequest(ctx, "Invalid seller ID")
	}

	var query queries.GetSellerSubOrdersQuery
	if statusParam := ctx.QueryParam("status"); statusParam != "" {
		status, statusErr := suborder.StatusFromString(statusParam)
		if statusErr != nil {
			return badRequest(ctx, "Invalid status filter")
		}

		query, err = queries.NewGetSellerSubOrdersQueryWithStatus(sellerID, status)
	} else {
		query, err = queries.NewGetSellerSubOrdersQuery(sellerID)
	}
	if err != nil {
		return badRequest(ctx, "Invalid seller ID")
	}

	subOrders, err := s.getSellerSubOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err, "Failed to retrieve suborders")
	}

	response := make([]SellerSubOrderResponse, len(subOrders))
	for i, sub := range subOrders {
		response[i] = SellerSubOrderResponse{
			ID:         sub.ID.String(),
			OrderID:    sub.OrderID.String(),
			Total:      sub.Total,
			Status:     sub.Status,
			TrackingID: sub.TrackingID,
			NDRReason:  sub.NDRReason,
			CreatedAt:  sub.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateReturnRequest handles POST /api/v1/returns - a buyer opening a claim.
func (s *Server) CreateReturnRequest(ctx echo.Context) error {
	var req CreateReturnRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	subOrderID, err := kernel.UUIDFromString(req.SubOrderID)
	if err != nil {
		return badRequest(ctx, "Invalid suborder ID")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID")
	}

	cmd, err := commands.NewCreateReturnRequestCommand(
		subOrderID, customerID, req.Reason, req.Description, req.Evidence,
	)
	if err != nil {
		return badRequest(ctx, "Invalid return data: "+err.Error())
	}

	requestID, err := s.createReturnRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapError(ctx, err, "Failed to create return request")
	}

	return ctx.JSON(http.StatusCreated, CreateReturnResponse{RequestID: requestID.String()})
}

// ApproveReturn handles POST /api/v1/returns/:requestID/approve.
func (s *Server) ApproveReturn(ctx echo.Context) error {
	requestID, actor, note, err := s.bindReturnDecision(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApproveReturnCommand(requestID, actor, note)
	if err != nil {
		return badRequest(ctx, "Invalid approve data: "+err.Error())
	}

	if err := s.approveReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err, "Failed to approve return")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectReturn handles POST /api/v1/returns/:requestID/reject.
func (s *Server) RejectReturn(ctx echo.Context) error {
	requestID, actor, note, err := s.bindReturnDecision(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRejectReturnCommand(requestID, actor, note)
	if err != nil {
		return badRequest(ctx, "Invalid reject data: "+err.Error())
	}

	if err := s.rejectReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err, "Failed to reject return")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartReturnProcessing handles POST /api/v1/returns/:requestID/start-processing.
func (s *Server) StartReturnProcessing(ctx echo.Context) error {
	requestID, actor, note, err := s.bindReturnDecision(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartReturnProcessingCommand(requestID, actor, note)
	if err != nil {
		return badRequest(ctx, "Invalid processing data: "+err.Error())
	}

	if err := s.startReturnProcessingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err, "Failed to start return processing")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteReturn handles POST /api/v1/returns/:requestID/complete.
func (s *Server) CompleteReturn(ctx echo.Context) error {
	requestID, actor, note, err := s.bindReturnDecision(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteReturnCommand(requestID, actor, note)
	if err != nil {
		return badRequest(ctx, "Invalid complete data: "+err.Error())
	}

	if err := s.completeReturnHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err, "Failed to complete return")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateReturnSettings handles PUT /api/v1/returns/settings.
func (s *Server) UpdateReturnSettings(ctx echo.Context) error {
	var req ReturnSettingsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateReturnSettingsCommand(req.Enabled, req.WindowDays)
	if err != nil {
		return badRequest(ctx, "Invalid settings: "+err.Error())
	}

	if err := s.updateReturnSettingsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.mapError(ctx, err, "Failed to update return settings")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetReturnRequests handles GET /api/v1/sellers/:sellerID/returns.
func (s *Server) GetReturnRequests(ctx echo.Context) error {
	sellerID, err := kernel.UUIDFromString(ctx.Param("sellerID"))
	if err != nil {
		return badRequest(ctx, "Invalid seller ID")
	}

	query, err := queries.NewGetReturnRequestsQuery(sellerID)
	if err != nil {
		return badRequest(ctx, "Invalid seller ID")
	}

	return s.respondReturnRequests(ctx, query)
}

// GetCustomerReturnRequests handles GET /api/v1/customers/:customerID/returns.
func (s *Server) GetCustomerReturnRequests(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("customerID"))
	if err != nil {
		return badRequest(ctx, "Invalid customer ID")
	}

	query, err := queries.NewGetReturnRequestsQueryByCustomer(customerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer ID")
	}

	return s.respondReturnRequests(ctx, query)
}

func (s *Server) respondReturnRequests(ctx echo.Context, query queries.GetReturnRequestsQuery) error {
	requests, err := s.getReturnRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapError(ctx, err, "Failed to retrieve return requests")
	}

	response := make([]ReturnRequestResponse, len(requests))
	for i, request := range requests {
		response[i] = ReturnRequestResponse{
			ID:           request.ID.String(),
			SubOrderID:   request.SubOrderID.String(),
			CustomerID:   request.CustomerID.String(),
			Status:       request.Status,
			Reason:       request.Reason,
			RefundAmount: request.RefundAmount,
			RequestedAt:  request.RequestedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) bindSellerAction(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	subOrderID, err := kernel.UUIDFromString(ctx.Param("subOrderID"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, badRequest(ctx, "Invalid suborder ID")
	}

	var req SellerActionRequest
	if err := ctx.Bind(&req); err != nil {
		return kernel.UUID{}, kernel.UUID{}, badRequest(ctx, "Invalid request body")
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, badRequest(ctx, "Invalid seller ID")
	}

	return subOrderID, sellerID, nil
}

func (s *Server) bindReturnDecision(ctx echo.Context) (kernel.UUID, returns.ActorType, string, error) {
	requestID, err := kernel.UUIDFromString(ctx.Param("requestID"))
	if err != nil {
		return kernel.UUID{}, returns.ActorUnknown, "", badRequest(ctx, "Invalid request ID")
	}

	var req ReturnDecisionRequest
	if err := ctx.Bind(&req); err != nil {
		return kernel.UUID{}, returns.ActorUnknown, "", badRequest(ctx, "Invalid request body")
	}

	actor, err := parseReturnActor(req.Actor)
	if err != nil {
		return kernel.UUID{}, returns.ActorUnknown, "", badRequest(ctx, "Invalid actor")
	}

	return requestID, actor, req.Note, nil
}

// mapError translates application errors into HTTP status codes. Unmapped
// errors are logged and reported as 500 with a generic message.
func (s *Server) mapError(ctx echo.Context, err error, message string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return jsonError(ctx, http.StatusNotFound, message+": not found")
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return jsonError(ctx, http.StatusConflict, message+": state changed concurrently, retry")
	case errors.Is(err, commands.ErrSellerMismatch):
		return jsonError(ctx, http.StatusForbidden, "Suborder belongs to another seller")
	case errors.Is(err, commands.ErrOrderIsNotPaid),
		errors.Is(err, commands.ErrSubOrderIsNotDelivered),
		errors.Is(err, commands.ErrReturnsDisabled),
		errors.Is(err, commands.ErrReturnWindowClosed),
		errors.Is(err, commands.ErrReturnAlreadyOpen),
		errors.Is(err, payment.ErrPaymentAlreadyRefunded),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return unprocessable(ctx, message+": "+err.Error())
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			slog.String("path", ctx.Path()), slog.Any("error", err))
		return jsonError(ctx, http.StatusInternalServerError, message)
	}
}

func badRequest(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusBadRequest, message)
}

func unprocessable(ctx echo.Context, message string) error {
	return jsonError(ctx, http.StatusUnprocessableEntity, message)
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
