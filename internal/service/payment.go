package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"github.com/homebites/backend/internal/models"
	"github.com/homebites/backend/internal/types"
)

var ErrPaymentSession = errors.New("failed to create payment session")

// PaymentService bridges orders to the Midtrans payment gateway. The
// gateway session id is the order id, so looking a session up also tells
// us which order to mark paid.
type PaymentService struct {
	db      *gorm.DB
	snap    *snap.Client
	coreAPI *coreapi.Client
}

var _ IPaymentService = (*PaymentService)(nil)

func NewPaymentService(db *gorm.DB, serverKey string, production bool) *PaymentService {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	snapClient := &snap.Client{}
	snapClient.New(serverKey, env)

	coreClient := &coreapi.Client{}
	coreClient.New(serverKey, env)

	return &PaymentService{
		db:      db,
		snap:    snapClient,
		coreAPI: coreClient,
	}
}

// CreateCheckoutSession opens a hosted payment page for the order and
// returns its redirect URL.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, req *types.CreateCheckoutSessionRequest) (string, error) {
	var gross int64
	items := make([]midtrans.ItemDetails, 0, len(req.Items))
	for _, item := range req.Items {
		price := int64(item.Price)
		gross += price * int64(item.Quantity)
		items = append(items, midtrans.ItemDetails{
			ID:    item.MealID.String(),
			Name:  truncateItemName(item.Name),
			Price: price,
			Qty:   int32(item.Quantity),
		})
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: gross,
		},
		Items: &items,
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
	}

	resp, err := s.snap.CreateTransaction(snapReq)
	if err != nil {
		log.Printf("midtrans transaction failed for order %s: %v", req.OrderID, err)
		return "", ErrPaymentSession
	}

	return resp.RedirectURL, nil
}

// GetCheckoutSession returns the gateway transaction status and whether it
// counts as paid. A settled session marks the underlying order paid.
func (s *PaymentService) GetCheckoutSession(ctx context.Context, sessionID string) (string, bool, error) {
	resp, err := s.coreAPI.CheckTransaction(sessionID)
	if err != nil {
		return "", false, fmt.Errorf("failed to check transaction %s: %s", sessionID, err.GetMessage())
	}

	paid := resp.TransactionStatus == "settlement" || resp.TransactionStatus == "capture"
	if paid {
		if orderID, parseErr := uuid.Parse(sessionID); parseErr == nil {
			if dbErr := s.db.WithContext(ctx).Model(&models.Order{}).
				Where("id = ?", orderID).
				Update("paid", true).Error; dbErr != nil {
				log.Printf("failed to mark order %s paid: %v", orderID, dbErr)
			}
		}
	}

	return resp.TransactionStatus, paid, nil
}

// Midtrans rejects item names longer than 50 characters.
func truncateItemName(name string) string {
	if len(name) > 50 {
		return name[:50]
	}
	return name
}
