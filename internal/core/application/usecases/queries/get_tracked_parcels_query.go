package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetTrackedParcelsQueryIsNotConstructed = errors.New(
	"GetTrackedParcelsQuery must be created via NewGetTrackedParcelsQuery constructor",
)

// GetTrackedParcelsQuery retrieves every suborder currently in the hands of
// the carrier together with its tracking reference. This is the reconciliation
// job's worklist for pulling state the carrier never pushed.
type GetTrackedParcelsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetTrackedParcelsQuery creates a query for externally tracked suborders.
func NewGetTrackedParcelsQuery() GetTrackedParcelsQuery {
	return GetTrackedParcelsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetTrackedParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackedParcelsQueryIsNotConstructed)
}

// GetTrackedParcelsQueryResponse is one parcel the carrier is tracking.
type GetTrackedParcelsQueryResponse struct {
	SubOrderID kernel.UUID
	TrackingID string
}
