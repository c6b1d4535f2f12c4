package gql

import (
	"strconv"

	"github.com/graph-gophers/graphql-go"

	"crm/internal/domain"
)

type customerResolver struct {
	c domain.Customer
}

func (r *customerResolver) ID() graphql.ID { return toID(r.c.ID) }
func (r *customerResolver) Name() string   { return r.c.Name }
func (r *customerResolver) Email() string  { return r.c.Email }
func (r *customerResolver) Phone() *string { return r.c.Phone }

type productResolver struct {
	p domain.Product
}

func (r *productResolver) ID() graphql.ID      { return toID(r.p.ID) }
func (r *productResolver) Name() string        { return r.p.Name }
func (r *productResolver) Description() string { return r.p.Description }
func (r *productResolver) Price() string       { return r.p.Price.StringFixed(2) }
func (r *productResolver) Stock() int32        { return int32(r.p.Stock) }

type orderResolver struct {
	o domain.Order
}

func (r *orderResolver) ID() graphql.ID         { return toID(r.o.ID) }
func (r *orderResolver) CustomerID() graphql.ID { return toID(r.o.CustomerID) }
func (r *orderResolver) TotalAmount() string    { return r.o.TotalAmount.StringFixed(2) }
func (r *orderResolver) OrderDate() graphql.Time {
	return graphql.Time{Time: r.o.OrderDate}
}

func (r *orderResolver) ProductIDs() []graphql.ID {
	ids := make([]graphql.ID, 0, len(r.o.ProductIDs))
	for _, id := range r.o.ProductIDs {
		ids = append(ids, toID(id))
	}
	return ids
}

type createCustomerPayload struct {
	Customer *customerResolver
	Message  string
}

type bulkCreateCustomersPayload struct {
	Status    string
	Customers []*customerResolver
	Errors    []string
}

type createProductPayload struct {
	Product *productResolver
	Message string
}

type createOrderPayload struct {
	Order   *orderResolver
	Message string
}

type customerInput struct {
	Name  string
	Email string
	Phone *string
}

type productInput struct {
	Name        string
	Description *string
	Price       string
	Stock       *int32
}

type orderInput struct {
	CustomerID graphql.ID
	ProductIDs []graphql.ID
	OrderDate  *graphql.Time
}

func toID(id uint) graphql.ID {
	return graphql.ID(strconv.FormatUint(uint64(id), 10))
}

// parseID accepts any non-negative decimal integer. Whether the id exists is
// decided by the lookup.
func parseID(id graphql.ID) (uint, bool) {
	n, err := strconv.ParseUint(string(id), 10, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func customerResolvers(customers []domain.Customer) []*customerResolver {
	out := make([]*customerResolver, 0, len(customers))
	for _, c := range customers {
		out = append(out, &customerResolver{c: c})
	}
	return out
}
