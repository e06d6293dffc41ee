package cmd

import (
	"gorm.io/gorm"

	"foodcourt/internal/adapters/out/postgres"
	"foodcourt/internal/core/application/usecases/commands"
	"foodcourt/internal/core/application/usecases/queries"
	"foodcourt/internal/core/domain/model/order"
)

// CompositionRoot wires the application graph: one shared GORM connection,
// one unit-of-work factory, and the transition table built from the
// configured policy. Handlers are created per call; they are cheap and
// stateless.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	table      order.TransitionTable
}

// NewCompositionRoot builds the root from the loaded configuration. An
// unrecognized ORDER_STATUS_POLICY value is an error; an empty one selects
// the ordered policy.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	policyValue := config.OrderStatusPolicy
	if policyValue == "" {
		policyValue = string(order.PolicyOrdered)
	}

	policy, err := order.ParseTransitionPolicy(policyValue)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		table:      policy.Table(),
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.table)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.AssignCourierUoWFactory = FuncAssignCourierUoWFactory(func() commands.AssignCourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAssignCourierUoWFactory func() commands.AssignCourierUoW

func (f FuncAssignCourierUoWFactory) Create() commands.AssignCourierUoW {
	return f()
}
