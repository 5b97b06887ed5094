package ports

import (
	"context"
)

// TrackingReport is the carrier's view of one parcel, in the carrier's own
// vocabulary. Reports are fed through the status normalizer before they touch
// a suborder; nothing in a report is trusted as canonical.
type TrackingReport struct {
	TrackingID string
	RawStatus  string
	RawNDR     string
}

// CarrierTracker defines the outbound contract for pulling tracking state
// from the logistics collaborator. Used by the reconciliation job to catch
// webhooks the carrier failed to deliver.
type CarrierTracker interface {
	// Track fetches the carrier's current view of the given tracking reference.
	Track(ctx context.Context, trackingID string) (TrackingReport, error)
}
