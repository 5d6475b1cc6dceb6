package services

import (
	"context"
	"errors"
	"fmt"
	"promo_store_server/database"
	"promo_store_server/lib"
	"promo_store_server/structs"
	"promo_store_server/structs/tables"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

const notifyTimeout = 30 * time.Second

type OrderService struct {
	logger        *gecho.Logger
	db            *database.DB
	cartService   *CartService
	notifier      OrderNotifier
	encryptionKey string

	pending sync.WaitGroup
}

// NewOrderService wires checkout. notifier may be nil. When encryptionKey is
// set, customer contact fields are stored encrypted and decrypted on read.
func NewOrderService(
	logger *gecho.Logger,
	db *database.DB,
	cartService *CartService,
	notifier OrderNotifier,
	encryptionKey string,
) *OrderService {
	return &OrderService{
		logger:        logger,
		db:            db,
		cartService:   cartService,
		notifier:      notifier,
		encryptionKey: encryptionKey,
	}
}

// Checkout turns the cart into a pending order. The order, its items and the
// removal of the cart lines commit together or not at all. Each item keeps
// the unit price and name the product had at this moment.
func (os *OrderService) Checkout(ctx context.Context, cartToken string, req *structs.CheckoutRequest) (*tables.Order, error) {
	if err := lib.Validate(req); err != nil {
		CheckoutFailures.WithLabelValues("validation").Inc()
		return nil, err
	}
	if cartToken == "" {
		CheckoutFailures.WithLabelValues("empty_cart").Inc()
		return nil, lib.ErrEmptyCart
	}

	order, err := database.TransactionWithResult(ctx, os.db, func(ctx context.Context, tx bun.Tx) (*tables.Order, error) {
		return os.placeOrder(ctx, tx, cartToken, req)
	})
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrEmptyCart):
			CheckoutFailures.WithLabelValues("empty_cart").Inc()
		case errors.Is(err, lib.ErrCartChanged):
			CheckoutFailures.WithLabelValues("cart_changed").Inc()
			os.logger.Warn("Cart changed during checkout, rolled back", gecho.Field("error", err))
		default:
			CheckoutFailures.WithLabelValues("error").Inc()
			os.logger.Error("Checkout failed", gecho.Field("error", err))
		}
		return nil, err
	}

	CheckoutOrders.Inc()
	os.logger.Info("Order placed",
		gecho.Field("order_id", order.ID),
		gecho.Field("items", len(order.Items)),
		gecho.Field("total", order.Total),
	)

	os.notify(order)
	return order, nil
}

func (os *OrderService) placeOrder(ctx context.Context, tx bun.Tx, cartToken string, req *structs.CheckoutRequest) (*tables.Order, error) {
	lines, err := cartItems(ctx, tx, cartToken)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, lib.ErrEmptyCart
	}

	order := &tables.Order{
		SessionID:       cartToken,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		Status:          tables.OrderStatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	items := make([]*tables.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Product == nil || line.Product.ID == 0 {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, lib.ErrNotFound)
		}
		order.Total += line.LineTotal()
		items = append(items, &tables.OrderItem{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			Price:       line.Product.Price,
			ProductName: line.Product.Name,
		})
	}

	stored, err := os.sealContact(*order)
	if err != nil {
		return nil, err
	}
	if _, err := database.Create(tx, ctx, &stored); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", lib.MapDBError(err))
	}
	order.ID = stored.ID

	for _, item := range items {
		item.OrderID = order.ID
		if _, err := database.Create(tx, ctx, item); err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", lib.MapDBError(err))
		}
	}

	cleared, err := os.cartService.Clear(ctx, tx, cartToken)
	if err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	if cleared != len(lines) {
		return nil, fmt.Errorf("%w: read %d lines, removed %d", lib.ErrCartChanged, len(lines), cleared)
	}

	order.Items = items
	return order, nil
}

// notify sends the confirmation in the background so a slow mail provider
// never holds up checkout.
func (os *OrderService) notify(order *tables.Order) {
	if os.notifier == nil {
		return
	}

	snapshot := *order
	os.pending.Add(1)
	go func() {
		defer os.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := os.notifier.SendOrderConfirmationEmail(ctx, &snapshot); err != nil {
			os.logger.Warn("Failed to send order confirmation",
				gecho.Field("error", err),
				gecho.Field("order_id", snapshot.ID),
			)
		}
	}()
}

// Wait blocks until every pending confirmation has been handed off.
func (os *OrderService) Wait() {
	os.pending.Wait()
}

// ListOrders returns orders newest first with their items.
func (os *OrderService) ListOrders(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.Order], error) {
	page, pageSize = database.NormalizePage(page, pageSize)

	total, err := database.Query[tables.Order](os.db).Count(ctx)
	if err != nil {
		os.logger.Error("Failed to count orders", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	orders, err := database.Query[tables.Order](os.db).
		Relation("Items", orderItemsByID).
		OrderBy("o.created_at", database.DESC).
		OrderBy("o.id", database.DESC).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		All(ctx)
	if err != nil {
		os.logger.Error("Failed to list orders", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		if err := os.openContact(&orders[i]); err != nil {
			return nil, err
		}
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return &database.PaginationResult[tables.Order]{
		Data: orders,
		Pagination: database.Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (os *OrderService) GetOrder(ctx context.Context, id int64) (*tables.Order, error) {
	order, err := database.Query[tables.Order](os.db).
		Relation("Items", orderItemsByID).
		WhereRaw("?TableAlias.id = ?", id).
		First(ctx)
	if err != nil {
		os.logger.Error("Failed to fetch order", gecho.Field("error", err), gecho.Field("order_id", id))
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", id, lib.ErrNotFound)
	}

	if err := os.openContact(order); err != nil {
		return nil, err
	}
	return order, nil
}

func orderItemsByID(q *bun.SelectQuery) *bun.SelectQuery {
	return q.OrderExpr("? ASC", bun.Ident("oi.id"))
}

// sealContact returns a copy of order with the contact fields encrypted.
func (os *OrderService) sealContact(order tables.Order) (tables.Order, error) {
	if os.encryptionKey == "" {
		return order, nil
	}

	fields := []*string{&order.CustomerEmail, &order.CustomerPhone, &order.ShippingAddress}
	for _, field := range fields {
		sealed, err := lib.Encrypt(*field, os.encryptionKey)
		if err != nil {
			return order, fmt.Errorf("failed to encrypt order contact: %w", err)
		}
		*field = sealed
	}
	return order, nil
}

func (os *OrderService) openContact(order *tables.Order) error {
	if os.encryptionKey == "" {
		return nil
	}

	fields := []*string{&order.CustomerEmail, &order.CustomerPhone, &order.ShippingAddress}
	for _, field := range fields {
		opened, err := lib.Decrypt(*field, os.encryptionKey)
		if err != nil {
			return fmt.Errorf("failed to decrypt order %d contact: %w", order.ID, err)
		}
		*field = opened
	}
	return nil
}
