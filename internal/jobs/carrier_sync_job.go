package jobs

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// CarrierSyncJob reconciles suborder state with the carrier. Runs every
// minute, pulls tracking for every parcel the carrier holds, and routes each
// report through the same normalization path webhooks use. This catches
// webhooks the carrier dropped.
type CarrierSyncJob struct {
	parcelsHandler queries.GetTrackedParcelsQueryHandler
	tracker        ports.CarrierTracker
	applyHandler   commands.ApplyCarrierUpdateCommandHandler
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewCarrierSyncJob creates a new job for carrier reconciliation.
func NewCarrierSyncJob(
	parcelsHandler queries.GetTrackedParcelsQueryHandler,
	tracker ports.CarrierTracker,
	applyHandler commands.ApplyCarrierUpdateCommandHandler,
	logger *slog.Logger,
) *CarrierSyncJob {
	return &CarrierSyncJob{
		parcelsHandler: parcelsHandler,
		tracker:        tracker,
		applyHandler:   applyHandler,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "carrier_sync_job"),
	}
}

// Start begins the carrier sync job to run every minute.
func (j *CarrierSyncJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		j.syncOnce(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Carrier sync job started (running every minute)")
	return nil
}

// Stop stops the carrier sync job.
func (j *CarrierSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Carrier sync job stopped")
}

func (j *CarrierSyncJob) syncOnce(ctx context.Context) {
	parcels, err := j.parcelsHandler.Handle(ctx, queries.NewGetTrackedParcelsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Carrier sync job failed to list tracked parcels", "error", err)
		return
	}

	for _, parcel := range parcels {
		if err := j.syncParcel(ctx, parcel); err != nil {
			// A conflict means a webhook landed between the read and the
			// write; the next tick picks the parcel up again.
			if errors.Is(err, errs.ErrConcurrencyConflict) {
				continue
			}

			j.logger.ErrorContext(ctx, "Carrier sync job failed to sync parcel",
				"suborder_id", parcel.SubOrderID.String(),
				"tracking_id", parcel.TrackingID,
				"error", err,
			)
		}
	}
}

func (j *CarrierSyncJob) syncParcel(ctx context.Context, parcel queries.GetTrackedParcelsQueryResponse) error {
	report, err := j.tracker.Track(ctx, parcel.TrackingID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApplyCarrierUpdateCommand(parcel.SubOrderID, report.RawStatus, report.RawNDR)
	if err != nil {
		return err
	}

	return j.applyHandler.Handle(ctx, cmd)
}
