package services

import (
	"strings"

	"marketplace/internal/core/domain/model/suborder"
)

// CarrierSignal is the result of normalizing one raw carrier status string.
// Recognized reports whether the raw status belongs to the carrier's known
// vocabulary at all; Target is the canonical status it maps to. NDRReason
// carries the canonical non-delivery reason when the carrier reported a
// failed attempt, independent of whether the primary status moved.
type CarrierSignal struct {
	Target     suborder.Status
	Recognized bool
	NDRReason  string
}

// StatusNormalizer is a domain service translating carrier status vocabulary
// into the canonical fulfillment statuses. It is a pure function over the
// carrier's documented vocabulary plus a catch-all for everything else, so an
// unknown future carrier status degrades to "unrecognized" instead of
// breaking the ingest pipeline.
//
// The normalizer never decides whether a signal applies to a particular
// suborder; that is the lifecycle machine's job. It only answers "what does
// this string mean".
type StatusNormalizer struct{}

// NewStatusNormalizer creates a new StatusNormalizer instance.
func NewStatusNormalizer() StatusNormalizer {
	return StatusNormalizer{}
}

// carrier vocabulary, lower-cased. Failed-attempt labels map to the current
// stage (no primary move) but still produce an NDR reason.
func getCarrierVocabulary() map[string]suborder.Status {
	return map[string]suborder.Status{
		"ready_to_ship":    suborder.ReadyForPickup,
		"pickup_scheduled": suborder.ReadyForPickup,
		"picked_up":        suborder.Shipped,
		"shipped":          suborder.Shipped,
		"in_transit":       suborder.Shipped,
		"out_for_delivery": suborder.Shipped,
		"delivered":        suborder.Delivered,
	}
}

// failed-attempt vocabulary: raw NDR labels to canonical reasons.
func getNDRVocabulary() map[string]string {
	return map[string]string{
		"customer_unavailable": "customer unavailable",
		"address_not_found":    "address not found",
		"refused_by_customer":  "refused by customer",
		"attempt_failed":       "delivery attempt failed",
	}
}

// Normalize maps a raw carrier status string plus an optional raw NDR label
// to a canonical signal.
//
// Parameters:
//   - rawStatus: the carrier's primary status string, matched case-insensitively
//   - rawNDR: the carrier's non-delivery label, empty when none was reported
//
// Returns a CarrierSignal. When rawStatus is outside the known vocabulary,
// Recognized is false and Target is suborder.Unknown; callers log and drop
// such signals. A recognized NDR label is canonicalized even when the primary
// status is unrecognized, so failed-attempt information is never lost.
func (n StatusNormalizer) Normalize(rawStatus, rawNDR string) CarrierSignal {
	signal := CarrierSignal{
		NDRReason: n.normalizeNDR(rawNDR),
	}

	target, ok := getCarrierVocabulary()[normalizeKey(rawStatus)]
	if !ok {
		return signal
	}

	signal.Target = target
	signal.Recognized = true
	return signal
}

func (n StatusNormalizer) normalizeNDR(rawNDR string) string {
	if rawNDR == "" {
		return ""
	}

	if reason, ok := getNDRVocabulary()[normalizeKey(rawNDR)]; ok {
		return reason
	}

	// Unknown NDR labels pass through lower-cased rather than being dropped:
	// losing the reason is worse than an uncanonical one.
	return normalizeKey(rawNDR)
}

func normalizeKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
