package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/internal/domain/repository"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
)

// OrderUseCase records confirmed checkouts. EscrowAmount is stored as a label; no funds move.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
}

func NewOrderUseCase(orderRepo repository.OrderRepository, itemRepo repository.ItemRepository) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
	}
}

type PlaceOrderInput struct {
	ItemID        entity.ItemID          `json:"item_id" validate:"required"`
	Type          entity.TransactionKind `json:"type" validate:"required,oneof=buy rent"`
	Delivery      entity.DeliveryAddress `json:"delivery"`
	PaymentMethod entity.PaymentMethod   `json:"payment_method" validate:"required,oneof=card upi cod"`
	// Amount is the price the buyer saw at checkout. When set it must match the listing.
	Amount        *float64               `json:"amount,omitempty"`
}

func (uc *OrderUseCase) PlaceOrder(ctx context.Context, buyer *entity.User, input PlaceOrderInput) (*entity.Order, error) {
	item, err := uc.itemRepo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, errors.NotFound("Item", err)
	}

	if item.SellerID == buyer.ID {
		return nil, errors.BadRequest("Cannot order your own item", nil)
	}

	order := &entity.Order{
		ID:            uuid.New().String(),
		ItemID:        item.ID,
		BuyerID:       buyer.ID,
		SellerID:      item.SellerID,
		Type:          input.Type,
		Delivery:      input.Delivery,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     time.Now(),
	}

	switch input.Type {
	case entity.KindBuy:
		if !item.Type.OffersSale() || item.SalePrice == nil {
			return nil, errors.BadRequest("Item is not for sale", nil)
		}
		order.EscrowAmount = *item.SalePrice
		order.Status = entity.OrderShipped
	case entity.KindRent:
		if !item.Type.OffersRent() || item.RentPrice == nil {
			return nil, errors.BadRequest("Item is not for rent", nil)
		}
		order.EscrowAmount = *item.RentPrice
		order.DepositLocked = item.Deposit
		order.Status = entity.OrderActiveRental
	default:
		return nil, errors.BadRequest("Invalid order type", nil)
	}
	if input.Amount != nil && *input.Amount != order.EscrowAmount {
		return nil, errors.Conflict("Price has changed since checkout. Please review the listing")
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Internal("Failed to record order", err)
	}

	logger.Info("Order %s placed by %s for item %s", order.ID, buyer.ID, item.ID)
	return order, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, userID string) ([]*entity.Order, error) {
	orders, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to list orders", err)
	}
	return orders, nil
}
