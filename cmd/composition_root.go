package cmd

import (
	"log/slog"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	decomposer services.OrderDecomposer
	normalizer services.StatusNormalizer
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	shippingFee, err := kernel.NewMoney(config.ShippingFeeCents)
	if err != nil {
		return CompositionRoot{}, err
	}

	decomposer, err := services.NewOrderDecomposer(shippingFee)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		decomposer: decomposer,
		normalizer: services.NewStatusNormalizer(),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateDecomposeOrderCommandHandler() commands.DecomposeOrderCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDecomposeOrderCommandHandler(f, c.decomposer)
}

func (c *CompositionRoot) CreateAcceptSubOrderCommandHandler() commands.AcceptSubOrderCommandHandler {
	return commands.NewAcceptSubOrderCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateRejectSubOrderCommandHandler() commands.RejectSubOrderCommandHandler {
	return commands.NewRejectSubOrderCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateCancelSubOrderCommandHandler() commands.CancelSubOrderCommandHandler {
	return commands.NewCancelSubOrderCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateApplyCarrierUpdateCommandHandler() commands.ApplyCarrierUpdateCommandHandler {
	return commands.NewApplyCarrierUpdateCommandHandler(c.fulfillmentUoWFactory(), c.normalizer, c.logger)
}

func (c *CompositionRoot) CreateReleasePaymentCommandHandler() commands.ReleasePaymentCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleasePaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateReturnRequestCommandHandler() commands.CreateReturnRequestCommandHandler {
	return commands.NewCreateReturnRequestCommandHandler(c.returnUoWFactory())
}

func (c *CompositionRoot) CreateApproveReturnCommandHandler() commands.ApproveReturnCommandHandler {
	return commands.NewApproveReturnCommandHandler(c.returnUoWFactory())
}

func (c *CompositionRoot) CreateRejectReturnCommandHandler() commands.RejectReturnCommandHandler {
	return commands.NewRejectReturnCommandHandler(c.returnUoWFactory())
}

func (c *CompositionRoot) CreateStartReturnProcessingCommandHandler() commands.StartReturnProcessingCommandHandler {
	return commands.NewStartReturnProcessingCommandHandler(c.returnUoWFactory())
}

func (c *CompositionRoot) CreateCompleteReturnCommandHandler() commands.CompleteReturnCommandHandler {
	return commands.NewCompleteReturnCommandHandler(c.returnUoWFactory())
}

func (c *CompositionRoot) CreateUpdateReturnSettingsCommandHandler() commands.UpdateReturnSettingsCommandHandler {
	return commands.NewUpdateReturnSettingsCommandHandler(c.returnUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSellerSubOrdersQueryHandler() queries.GetSellerSubOrdersQueryHandler {
	return queries.NewGetSellerSubOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReleasablePaymentsQueryHandler() queries.GetReleasablePaymentsQueryHandler {
	return queries.NewGetReleasablePaymentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReturnRequestsQueryHandler() queries.GetReturnRequestsQueryHandler {
	return queries.NewGetReturnRequestsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackedParcelsQueryHandler() queries.GetTrackedParcelsQueryHandler {
	return queries.NewGetTrackedParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) returnUoWFactory() commands.ReturnUoWFactory {
	return FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}
