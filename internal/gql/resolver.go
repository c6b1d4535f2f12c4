package gql

import (
	"context"

	"go.uber.org/zap"

	"crm/internal/domain"
	"crm/internal/dto"
	apperrors "crm/internal/errors"
)

const helloMessage = "Hello, GraphQL!"

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, in dto.CustomerInput) (*domain.Customer, error)
	BulkCreateCustomers(ctx context.Context, inputs []dto.CustomerInput) (*dto.BulkCreateResult, error)
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in dto.ProductInput) (*domain.Product, error)
}

type OrderLister interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, in dto.OrderInput) (*domain.Order, error)
}

// Resolver is the root of both the query and mutation types.
type Resolver struct {
	customers CustomerService
	products  ProductService
	orders    OrderLister
	creator   OrderCreator
	logger    *zap.Logger
}

func NewResolver(
	customers CustomerService,
	products ProductService,
	orders OrderLister,
	creator OrderCreator,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		customers: customers,
		products:  products,
		orders:    orders,
		creator:   creator,
		logger:    logger,
	}
}

func (r *Resolver) Hello() string {
	return helloMessage
}

func (r *Resolver) Customers(ctx context.Context) ([]*customerResolver, error) {
	customers, err := r.customers.ListCustomers(ctx)
	if err != nil {
		return nil, toResolverError(r.logger, err, nil)
	}
	return customerResolvers(customers), nil
}

func (r *Resolver) Products(ctx context.Context) ([]*productResolver, error) {
	products, err := r.products.ListProducts(ctx)
	if err != nil {
		return nil, toResolverError(r.logger, err, nil)
	}

	out := make([]*productResolver, 0, len(products))
	for _, p := range products {
		out = append(out, &productResolver{p: p})
	}
	return out, nil
}

func (r *Resolver) Orders(ctx context.Context) ([]*orderResolver, error) {
	orders, err := r.orders.ListOrders(ctx)
	if err != nil {
		return nil, toResolverError(r.logger, err, nil)
	}

	out := make([]*orderResolver, 0, len(orders))
	for _, o := range orders {
		out = append(out, &orderResolver{o: o})
	}
	return out, nil
}

func (r *Resolver) CreateCustomer(ctx context.Context, args struct{ Input customerInput }) (*createCustomerPayload, error) {
	customer, err := r.customers.CreateCustomer(ctx, toCustomerInput(args.Input))
	if err != nil {
		return nil, toResolverError(r.logger, err, nil)
	}

	return &createCustomerPayload{
		Customer: &customerResolver{c: *customer},
		Message:  "Customer created successfully",
	}, nil
}

// BulkCreateCustomers reports rejected rows as data. Only a storage failure
// becomes a GraphQL error, and it still carries the row errors.
func (r *Resolver) BulkCreateCustomers(ctx context.Context, args struct{ Input []customerInput }) (*bulkCreateCustomersPayload, error) {
	inputs := make([]dto.CustomerInput, 0, len(args.Input))
	for _, in := range args.Input {
		inputs = append(inputs, toCustomerInput(in))
	}

	result, err := r.customers.BulkCreateCustomers(ctx, inputs)
	if err != nil {
		var rowErrors []string
		if result != nil {
			rowErrors = result.Errors
		}
		return nil, toResolverError(r.logger, err, rowErrors)
	}

	rowErrors := result.Errors
	if rowErrors == nil {
		rowErrors = []string{}
	}

	return &bulkCreateCustomersPayload{
		Status:    string(result.Status),
		Customers: customerResolvers(result.Customers),
		Errors:    rowErrors,
	}, nil
}

func (r *Resolver) CreateProduct(ctx context.Context, args struct{ Input productInput }) (*createProductPayload, error) {
	in := dto.ProductInput{
		Name:  args.Input.Name,
		Price: dto.Amount(args.Input.Price),
	}
	if args.Input.Description != nil {
		in.Description = *args.Input.Description
	}
	if args.Input.Stock != nil {
		stock := int(*args.Input.Stock)
		in.Stock = &stock
	}

	product, err := r.products.CreateProduct(ctx, in)
	if err != nil {
		return nil, toResolverError(r.logger, err, nil)
	}

	return &createProductPayload{
		Product: &productResolver{p: *product},
		Message: "Product created successfully",
	}, nil
}

func (r *Resolver) CreateOrder(ctx context.Context, args struct{ Input orderInput }) (*createOrderPayload, error) {
	customerID, ok := parseID(args.Input.CustomerID)
	if !ok {
		return nil, toResolverError(r.logger, apperrors.NewInvalidFormatError("customerId", "Invalid customer ID"), nil)
	}

	productIDs := make([]uint, 0, len(args.Input.ProductIDs))
	for _, raw := range args.Input.ProductIDs {
		id, ok := parseID(raw)
		if !ok {
			return nil, toResolverError(r.logger, apperrors.NewInvalidFormatError("productIds", "Some product IDs are invalid"), nil)
		}
		productIDs = append(productIDs, id)
	}

	in := dto.OrderInput{CustomerID: customerID, ProductIDs: productIDs}
	if args.Input.OrderDate != nil {
		in.OrderDate = &args.Input.OrderDate.Time
	}

	order, err := r.creator.CreateOrder(ctx, in)
	if err != nil {
		return nil, toResolverError(r.logger, err, nil)
	}

	return &createOrderPayload{
		Order:   &orderResolver{o: *order},
		Message: "Order created successfully",
	}, nil
}

func toCustomerInput(in customerInput) dto.CustomerInput {
	return dto.CustomerInput{Name: in.Name, Email: in.Email, Phone: in.Phone}
}
