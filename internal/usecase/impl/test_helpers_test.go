package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- In-memory repository fakes ---

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) add(name string, priceCents int64) *entity.Product {
	p := &entity.Product{ID: uuid.New(), Name: name, PriceCents: priceCents}
	r.products[p.ID] = p

	return p
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}

	return p, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}

	return out, nil
}

func (r *fakeProductRepo) FindByCategory(_ context.Context, categoryID uuid.UUID) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}

	return out, nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]entity.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]entity.Cart)}
}

func (r *fakeCartRepo) Read(_ context.Context, sessionID string) (entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[sessionID]
	if !ok {
		return entity.NewCart(), nil
	}

	return cart.Clone(), nil
}

func (r *fakeCartRepo) Write(_ context.Context, sessionID string, cart entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart.IsEmpty() {
		delete(r.carts, sessionID)

		return nil
	}
	r.carts[sessionID] = cart.Clone()

	return nil
}

func (r *fakeCartRepo) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)

	return nil
}

type fakeStockRepo struct {
	quantities map[uuid.UUID]int

	// failOn forces an arbitrary error for one product's decrement,
	// simulating an infrastructure failure mid-transaction.
	failOn  uuid.UUID
	failErr error
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{quantities: make(map[uuid.UUID]int)}
}

func (r *fakeStockRepo) FindByProductID(_ context.Context, productID uuid.UUID) (*entity.Stock, error) {
	qty, ok := r.quantities[productID]
	if !ok {
		return nil, repository.ErrStockNotFound
	}

	return &entity.Stock{ProductID: productID, Quantity: qty}, nil
}

func (r *fakeStockRepo) DecrementIfAvailable(_ context.Context, productID uuid.UUID, quantity int) error {
	if r.failErr != nil && productID == r.failOn {
		return r.failErr
	}

	current, ok := r.quantities[productID]
	if !ok {
		return repository.ErrStockNotFound
	}
	if current < quantity {
		return repository.ErrInsufficientStock
	}
	r.quantities[productID] = current - quantity

	return nil
}

func (r *fakeStockRepo) Set(_ context.Context, productID uuid.UUID, quantity int) error {
	r.quantities[productID] = quantity

	return nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.orders[order.ID] = order

	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return order, nil
}

func (r *fakeOrderRepo) FindByPaymentReference(_ context.Context, reference string) (*entity.Order, error) {
	for _, order := range r.orders {
		if order.PaymentReference == reference {
			return order, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0)
	for _, order := range r.orders {
		if order.UserID != nil && *order.UserID == userID {
			out = append(out, order)
		}
	}

	return out, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, order)
	}

	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	order, ok := r.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = status

	return nil
}

type fakeShipmentRepo struct {
	shipments map[uuid.UUID]*entity.Shipment // keyed by order ID
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{shipments: make(map[uuid.UUID]*entity.Shipment)}
}

func (r *fakeShipmentRepo) Create(_ context.Context, shipment *entity.Shipment) error {
	shipment.ID = uuid.New()
	r.shipments[shipment.OrderID] = shipment

	return nil
}

func (r *fakeShipmentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*entity.Shipment, error) {
	shipment, ok := r.shipments[orderID]
	if !ok {
		return nil, repository.ErrShipmentNotFound
	}

	return shipment, nil
}

type fakeAddressRepo struct {
	addresses map[uuid.UUID]*entity.Address
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[uuid.UUID]*entity.Address)}
}

func (r *fakeAddressRepo) add(userID uuid.UUID) *entity.Address {
	a := &entity.Address{ID: uuid.New(), UserID: userID, FullAddress: "somewhere 1"}
	r.addresses[a.ID] = a

	return a
}

func (r *fakeAddressRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Address, error) {
	a, ok := r.addresses[id]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}

	return a, nil
}

func (r *fakeAddressRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	out := make([]*entity.Address, 0)
	for _, a := range r.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}

	return out, nil
}

// --- Transaction fake ---

// fakeFactory hands out the shared in-memory fakes as transaction-bound repos.
type fakeFactory struct {
	products  *fakeProductRepo
	stocks    *fakeStockRepo
	orders    *fakeOrderRepo
	shipments *fakeShipmentRepo
	addresses *fakeAddressRepo
}

func (f *fakeFactory) ProductRepo() repository.ProductRepository   { return f.products }
func (f *fakeFactory) StockRepo() repository.StockRepository       { return f.stocks }
func (f *fakeFactory) OrderRepo() repository.OrderRepository       { return f.orders }
func (f *fakeFactory) ShipmentRepo() repository.ShipmentRepository { return f.shipments }
func (f *fakeFactory) AddressRepo() repository.AddressRepository   { return f.addresses }

// fakeTxManager snapshots the mutable stores before running the callback and
// restores them when it fails, mimicking a database rollback.
type fakeTxManager struct {
	factory *fakeFactory
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	stockBackup := make(map[uuid.UUID]int, len(tm.factory.stocks.quantities))
	for id, qty := range tm.factory.stocks.quantities {
		stockBackup[id] = qty
	}
	orderBackup := make(map[uuid.UUID]*entity.Order, len(tm.factory.orders.orders))
	for id, order := range tm.factory.orders.orders {
		orderBackup[id] = order
	}
	shipmentBackup := make(map[uuid.UUID]*entity.Shipment, len(tm.factory.shipments.shipments))
	for id, shipment := range tm.factory.shipments.shipments {
		shipmentBackup[id] = shipment
	}

	if err := fn(tm.factory); err != nil {
		tm.factory.stocks.quantities = stockBackup
		tm.factory.orders.orders = orderBackup
		tm.factory.shipments.shipments = shipmentBackup

		return err
	}

	return nil
}

// --- Service fakes ---

type fakePaymentGateway struct {
	intents map[string]*service.PaymentIntent

	createErr   error
	retrieveErr error
}

func newFakePaymentGateway() *fakePaymentGateway {
	return &fakePaymentGateway{intents: make(map[string]*service.PaymentIntent)}
}

func (g *fakePaymentGateway) confirm(reference string, amountCents int64, currency string) {
	g.intents[reference] = &service.PaymentIntent{
		Reference:   reference,
		Status:      service.PaymentStatusSucceeded,
		AmountCents: amountCents,
		Currency:    currency,
	}
}

func (g *fakePaymentGateway) CreateIntent(_ context.Context, amountCents int64, currency string) (string, string, error) {
	if g.createErr != nil {
		return "", "", g.createErr
	}
	reference := "pi_" + uuid.NewString()
	g.intents[reference] = &service.PaymentIntent{
		Reference:   reference,
		Status:      service.PaymentStatusPending,
		AmountCents: amountCents,
		Currency:    currency,
	}

	return "secret_" + reference, reference, nil
}

func (g *fakePaymentGateway) RetrieveIntent(_ context.Context, reference string) (*service.PaymentIntent, error) {
	if g.retrieveErr != nil {
		return nil, g.retrieveErr
	}
	intent, ok := g.intents[reference]
	if !ok {
		return &service.PaymentIntent{Reference: reference, Status: service.PaymentStatusUnknown}, nil
	}

	return intent, nil
}

type fakePublisher struct {
	events     []*service.OrderFinalizedEvent
	publishErr error
}

func (p *fakePublisher) PublishOrderFinalized(_ context.Context, event *service.OrderFinalizedEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }
