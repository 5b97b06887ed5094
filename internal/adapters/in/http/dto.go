package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/errs"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CheckoutRequest is a paid cart to decompose into per-seller suborders.
type CheckoutRequest struct {
	CustomerID      string             `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	Address         AddressRequest     `json:"address"`
	Items           []CartItemRequest  `json:"items"`
	PaymentVerified bool               `json:"payment_verified"`
}

// AddressRequest is the delivery address snapshot captured at checkout.
type AddressRequest struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Region     string `json:"region"`
	Country    string `json:"country"`
}

// CartItemRequest is one cart position. UnitPrice is in minor currency units.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	SellerID  string `json:"seller_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// CheckoutResponse carries the identifier of the decomposed order.
type CheckoutResponse struct {
	OrderID string `json:"order_id"`
}

// SellerActionRequest identifies the seller performing an accept or reject.
type SellerActionRequest struct {
	SellerID string `json:"seller_id"`
}

// CancelRequest is an administrative cancellation with an optional reason.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// CarrierWebhookRequest is one carrier delivery notification. EventID is the
// carrier's delivery identifier and drives replay deduplication; Status and
// NDRReason are in the carrier's raw vocabulary.
type CarrierWebhookRequest struct {
	EventID    string `json:"event_id"`
	SubOrderID string `json:"suborder_id"`
	Status     string `json:"status"`
	NDRReason  string `json:"ndr_reason"`
}

// ReleasePaymentRequest is a manual escrow release by an operator.
type ReleasePaymentRequest struct {
	Note  string `json:"note"`
	Force bool   `json:"force"`
}

// ReleasePaymentResponse reports the payment state after the release attempt.
type ReleasePaymentResponse struct {
	PaymentID  string     `json:"payment_id"`
	Status     string     `json:"status"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
}

// CreateReturnRequest opens a return claim against a delivered suborder.
type CreateReturnRequest struct {
	SubOrderID  string   `json:"suborder_id"`
	CustomerID  string   `json:"customer_id"`
	Reason      string   `json:"reason"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence"`
}

// CreateReturnResponse carries the identifier of the opened claim.
type CreateReturnResponse struct {
	RequestID string `json:"request_id"`
}

// ReturnDecisionRequest is a seller or operator decision on a return claim.
type ReturnDecisionRequest struct {
	Actor string `json:"actor"`
	Note  string `json:"note"`
}

// ReturnSettingsRequest configures the marketplace return policy.
type ReturnSettingsRequest struct {
	Enabled    bool `json:"enabled"`
	WindowDays int  `json:"window_days"`
}

// OrderResponse is the buyer-facing order read model.
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	Shipping      int64               `json:"shipping"`
	Total         int64               `json:"total"`
	PaymentStatus string              `json:"payment_status"`
	Status        string              `json:"status"`
	PlacedAt      time.Time           `json:"placed_at"`
	SubOrders     []SubOrderResponse  `json:"suborders"`
}

// SubOrderResponse is one suborder row inside an order read model.
type SubOrderResponse struct {
	ID            string `json:"id"`
	SellerID      string `json:"seller_id"`
	Total         int64  `json:"total"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status,omitempty"`
	TrackingID    string `json:"tracking_id,omitempty"`
	NDRReason     string `json:"ndr_reason,omitempty"`
}

// SellerSubOrderResponse is one row of a seller's fulfillment worklist.
type SellerSubOrderResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Total      int64     `json:"total"`
	Status     string    `json:"status"`
	TrackingID string    `json:"tracking_id,omitempty"`
	NDRReason  string    `json:"ndr_reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReturnRequestResponse is one row of a seller's return claim worklist.
type ReturnRequestResponse struct {
	ID           string    `json:"id"`
	SubOrderID   string    `json:"suborder_id"`
	CustomerID   string    `json:"customer_id"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason"`
	RefundAmount int64     `json:"refund_amount"`
	RequestedAt  time.Time `json:"requested_at"`
}

// ReleasablePaymentResponse is one escrowed payment ready for release.
type ReleasablePaymentResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	SubOrderID  string    `json:"suborder_id"`
	SellerID    string    `json:"seller_id"`
	Amount      int64     `json:"amount"`
	DeliveredAt time.Time `json:"delivered_at"`
}

func toOrderResponse(order queries.GetOrderQueryResponse) OrderResponse {
	subOrders := make([]SubOrderResponse, len(order.SubOrders))
	for i, sub := range order.SubOrders {
		subOrders[i] = SubOrderResponse{
			ID:            sub.ID.String(),
			SellerID:      sub.SellerID.String(),
			Total:         sub.Total,
			Status:        sub.Status,
			PaymentStatus: sub.PaymentStatus,
			TrackingID:    sub.TrackingID,
			NDRReason:     sub.NDRReason,
		}
	}

	return OrderResponse{
		ID:            order.ID.String(),
		CustomerID:    order.CustomerID.String(),
		CustomerName:  order.CustomerName,
		Shipping:      order.Shipping,
		Total:         order.Total,
		PaymentStatus: order.PaymentStatus,
		Status:        order.Status,
		PlacedAt:      order.PlacedAt,
		SubOrders:     subOrders,
	}
}

func parseReturnActor(value string) (returns.ActorType, error) {
	switch value {
	case "Customer":
		return returns.ActorCustomer, nil
	case "Seller":
		return returns.ActorSeller, nil
	case "Admin":
		return returns.ActorAdmin, nil
	default:
		return returns.ActorUnknown, errs.NewValueIsInvalidError("actor")
	}
}
