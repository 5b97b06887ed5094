package jobs

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// SettlementJob releases escrow for delivered suborders. Runs every minute,
// loads the releasable worklist, and issues one release command per payment.
// Release is idempotent, so a payment swept twice settles once.
type SettlementJob struct {
	worklistHandler queries.GetReleasablePaymentsQueryHandler
	releaseHandler  commands.ReleasePaymentCommandHandler
	cron            *cron.Cron
	logger          *slog.Logger
}

// NewSettlementJob creates a new job for automatic escrow release.
func NewSettlementJob(
	worklistHandler queries.GetReleasablePaymentsQueryHandler,
	releaseHandler commands.ReleasePaymentCommandHandler,
	logger *slog.Logger,
) *SettlementJob {
	return &SettlementJob{
		worklistHandler: worklistHandler,
		releaseHandler:  releaseHandler,
		cron:            cron.New(cron.WithSeconds()),
		logger:          logger.With("component", "settlement_job"),
	}
}

// Start begins the settlement job to run every minute.
func (j *SettlementJob) Start() error {
	_, err := j.cron.AddFunc("30 * * * * *", func() {
		ctx := context.Background()
		j.settleOnce(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement job started (running every minute)")
	return nil
}

// Stop stops the settlement job.
func (j *SettlementJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Settlement job stopped")
}

func (j *SettlementJob) settleOnce(ctx context.Context) {
	worklist, err := j.worklistHandler.Handle(ctx, queries.NewGetReleasablePaymentsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Settlement job failed to load worklist", "error", err)
		return
	}

	for _, item := range worklist {
		cmd, err := commands.NewReleasePaymentCommand(
			item.ID, payment.ActorSystem, "released after delivery", false,
		)
		if err != nil {
			j.logger.ErrorContext(ctx, "Settlement job built an invalid command",
				"payment_id", item.ID.String(), "error", err)
			continue
		}

		if _, err := j.releaseHandler.Handle(ctx, cmd); err != nil {
			// A conflict means someone else settled or refunded this payment
			// first; the worklist reflects it on the next tick.
			if errors.Is(err, errs.ErrConcurrencyConflict) {
				continue
			}

			j.logger.ErrorContext(ctx, "Settlement job failed to release payment",
				"payment_id", item.ID.String(),
				"suborder_id", item.SubOrderID.String(),
				"error", err,
			)
		}
	}
}
