package usecase

import (
	"context"
	"fmt"
	"strings"

	"tabreed-backend/internal/collection"
	"tabreed-backend/internal/domain"
	"tabreed-backend/internal/notification"
	"tabreed-backend/pkg/logger"
)

type OrderUsecase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	shopper     *ShopperUsecase
	settings    *SettingsUsecase
	txManager   domain.TransactionManager
	mailer      *notification.Mailer
}

func NewOrderUsecase(orderRepo domain.OrderRepository, productRepo domain.ProductRepository, shopper *ShopperUsecase, settings *SettingsUsecase, txManager domain.TransactionManager, mailer *notification.Mailer) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		shopper:     shopper,
		settings:    settings,
		txManager:   txManager,
		mailer:      mailer,
	}
}

type CheckoutReq struct {
	Customer      domain.Customer `json:"customer"`
	PaymentMethod string          `json:"paymentMethod"`
}

// Checkout turns the session cart snapshot into a persisted order.
// The snapshot's prices are authoritative: catalog changes after an
// item was added are not re-applied. Stock, however, is re-verified
// and decremented inside the transaction. The cart is cleared only
// after the transaction commits; emails go out after that,
// fire-and-forget.
func (u *OrderUsecase) Checkout(ctx context.Context, sessionID string, userID *string, req CheckoutReq) (*domain.Order, error) {
	cart := u.shopper.Stores(sessionID).Cart
	items := cart.Snapshot()
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	if req.Customer.Name == "" || req.Customer.Phone == "" {
		return nil, fmt.Errorf("customer name and phone are required")
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.PaymentMethodCOD
	}
	if !validPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("unsupported payment method: %s", req.PaymentMethod)
	}

	subtotal := cart.TotalPrice()

	siteSettings, err := u.settings.Get(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("checkout: settings unavailable, using defaults")
	}
	shippingFee := siteSettings.ShippingFee
	if siteSettings.FreeShippingMin > 0 && subtotal >= siteSettings.FreeShippingMin {
		shippingFee = 0
	}

	order := &domain.Order{
		UserID:        userID,
		Customer:      req.Customer,
		Status:        domain.OrderStatusPending,
		Subtotal:      subtotal,
		ShippingFee:   shippingFee,
		TotalAmount:   subtotal + shippingFee,
		PaymentMethod: req.PaymentMethod,
		Items:         orderItemsFromCart(items),
	}

	err = u.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := u.orderRepo.CreateOrder(txCtx, order); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := u.productRepo.AdjustStock(txCtx, item.ProductID, -item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cart.Clear()

	if u.mailer != nil {
		go u.mailer.SendOrderEmails(order)
	}

	return order, nil
}

func orderItemsFromCart(items []collection.LineItem) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, li := range items {
		image := ""
		if len(li.Product.Images) > 0 {
			image = li.Product.Images[0]
		}
		out = append(out, domain.OrderItem{
			ProductID:   li.Product.ID,
			Name:        li.Product.Name,
			NameAr:      li.Product.NameAr,
			Brand:       li.Product.Brand,
			Model:       li.Product.Model,
			Image:       image,
			CapacityBTU: li.Product.CapacityBTU,
			UnitType:    li.Product.UnitType,
			Quantity:    li.Quantity,
			Price:       li.Product.Price,
		})
	}
	return out
}

func validPaymentMethod(method string) bool {
	for _, m := range domain.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

func (u *OrderUsecase) GetMyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return u.orderRepo.GetByUserID(ctx, userID)
}

// --- Admin ---

func (u *OrderUsecase) GetAllOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	return u.orderRepo.GetAll(ctx, filter)
}

func (u *OrderUsecase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return u.orderRepo.GetByID(ctx, id)
}

// statusWeights defines forward-only order progress. An admin can jump
// ahead (pending -> cancelled) but never move an order backward.
var statusWeights = map[string]int{
	domain.OrderStatusPending:    10,
	domain.OrderStatusConfirmed:  20,
	domain.OrderStatusProcessing: 30,
	domain.OrderStatusShipped:    40,
	domain.OrderStatusDelivered:  50,
	domain.OrderStatusCancelled:  60,
}

func validateStatusTransition(current, next string) error {
	currentWeight, okCurrent := statusWeights[current]
	nextWeight, okNext := statusWeights[next]
	if !okNext {
		return fmt.Errorf("unknown order status: %s", next)
	}
	// Unknown current status means data to fix; allow the update.
	if !okCurrent {
		return nil
	}
	if nextWeight < currentWeight {
		return fmt.Errorf("invalid transition: cannot go backward from '%s' to '%s'", current, next)
	}
	return nil
}

func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, orderID, newStatus, note, actorID string) error {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	oldStatus := order.Status
	if oldStatus == newStatus {
		return nil
	}
	if err := validateStatusTransition(oldStatus, newStatus); err != nil {
		return err
	}

	return u.txManager.Do(ctx, func(txCtx context.Context) error {
		// Cancelling restores the stock the order had reserved.
		if newStatus == domain.OrderStatusCancelled {
			for _, item := range order.Items {
				if err := u.productRepo.AdjustStock(txCtx, item.ProductID, item.Quantity); err != nil {
					logger.Warn().Err(err).Str("product_id", item.ProductID).Msg("cancel: restock failed")
				}
			}
		}

		if err := u.orderRepo.UpdateStatus(txCtx, orderID, newStatus); err != nil {
			return err
		}

		reason := strings.TrimSpace(note)
		if reason == "" {
			reason = fmt.Sprintf("Status changed from %s to %s", oldStatus, newStatus)
		}
		history := domain.OrderHistory{
			OrderID:        orderID,
			PreviousStatus: &oldStatus,
			NewStatus:      newStatus,
			Reason:         &reason,
			CreatedBy:      &actorID,
		}
		if err := u.orderRepo.CreateOrderHistory(txCtx, &history); err != nil {
			return fmt.Errorf("failed to record history: %w", err)
		}
		return nil
	})
}

func (u *OrderUsecase) GetOrderHistory(ctx context.Context, orderID string) ([]domain.OrderHistory, error) {
	return u.orderRepo.GetOrderHistory(ctx, orderID)
}
