package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jack-T524/oms/internal/domain"
	"github.com/jack-T524/oms/internal/parser"
	"github.com/jack-T524/oms/internal/repository"
	"github.com/jack-T524/oms/pkg/mylogger"
	"go.uber.org/zap"
)

// OrderInput is a validated draft ready for recording. Buyer and item are
// mandatory; qty and price stay raw text and default downstream. Phone and
// address are the optional inline contact info for a buyer the directory
// does not know yet.
type OrderInput struct {
	Buyer   string `json:"buyer" validate:"required"`
	Item    string `json:"item" validate:"required"`
	Qty     string `json:"qty"`
	Price   string `json:"price"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type RecordResult struct {
	Status domain.OrderStatus `json:"status"`
	// Confirmation is the message to forward to the buyer when contact info
	// is still missing. Empty for shippable orders.
	Confirmation string `json:"confirmation,omitempty"`
}

type RepairInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type IntakeService interface {
	ParseDraft(text string) domain.Draft
	RecordOrder(ctx context.Context, input *OrderInput) (*RecordResult, error)
	RepairStatus(ctx context.Context, input *RepairInput) (int, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

type intakeService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewIntakeService(orders repository.OrderRepository, customers repository.CustomerRepository, logger *zap.Logger) IntakeService {
	return &intakeService{
		orders:    orders,
		customers: customers,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *intakeService) ParseDraft(text string) domain.Draft {
	return parser.ParseQuickLine(text)
}

// RecordOrder appends exactly one order row. The status depends on what the
// directory knows about the buyer: complete contact info means shippable,
// anything less means pending_info unless the operator supplied phone and
// address inline, in which case the customer record is upserted and the
// order records as shippable in the same action.
func (s *intakeService) RecordOrder(ctx context.Context, input *OrderInput) (*RecordResult, error) {
	if err := s.validate.Struct(input); err != nil {
		mylogger.Warn(
			ctx,
			s.logger,
			"Order draft rejected",
			zap.Error(err),
		)

		return nil, fmt.Errorf("invalid order draft: %w", err)
	}

	qty := defaultNumeric(input.Qty, "1")
	price := defaultNumeric(input.Price, "0")

	status := domain.OrderStatusPendingInfo
	confirmation := ""

	known, err := s.customers.FindByName(ctx, input.Buyer)
	switch {
	case err == nil && known.HasContactInfo():
		status = domain.OrderStatusShippable
	case err == nil || errors.Is(err, repository.ErrCustomerNotFound):
		if input.Phone != "" && input.Address != "" {
			customer := &domain.Customer{
				Name:    input.Buyer,
				Phone:   input.Phone,
				Address: input.Address,
			}
			if err := s.customers.Upsert(ctx, customer); err != nil {
				return nil, fmt.Errorf("failed to save customer: %w", err)
			}

			status = domain.OrderStatusShippable
		} else {
			confirmation = confirmationMessage(input.Item, price, qty)
		}
	default:
		return nil, err
	}

	order := domain.NewOrder(s.now(), input.Buyer, input.Item, qty, price, status)
	if err := s.orders.Append(ctx, order); err != nil {
		return nil, err
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Order recorded",
		zap.String("buyer", input.Buyer),
		zap.String("item", input.Item),
		zap.String("status", string(status)),
	)

	return &RecordResult{
		Status:       status,
		Confirmation: confirmation,
	}, nil
}

// RepairStatus upserts the buyer's contact info, then flips every pending
// order of that buyer to shippable. Re-running after a partial failure is
// safe: already-flipped rows no longer match.
func (s *intakeService) RepairStatus(ctx context.Context, input *RepairInput) (int, error) {
	if err := s.validate.Struct(input); err != nil {
		mylogger.Warn(
			ctx,
			s.logger,
			"Repair request rejected",
			zap.Error(err),
		)

		return 0, fmt.Errorf("invalid repair request: %w", err)
	}

	customer := &domain.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customers.Upsert(ctx, customer); err != nil {
		return 0, fmt.Errorf("failed to save customer: %w", err)
	}

	orders, err := s.orders.List(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, order := range orders {
		if order.Buyer != input.Name || order.Status != domain.OrderStatusPendingInfo {
			continue
		}

		if err := s.orders.UpdateStatus(ctx, order.Row, domain.OrderStatusShippable); err != nil {
			return repaired, err
		}
		repaired++
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Pending orders repaired",
		zap.String("buyer", input.Name),
		zap.Int("repaired", repaired),
	)

	return repaired, nil
}

func (s *intakeService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *intakeService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

func confirmationMessage(item, price, qty string) string {
	return fmt.Sprintf(
		"Hello! You ordered [%s] (unit price $%s) x%s. Please reply with the recipient's phone number and address so we can arrange shipping. Thank you!",
		item, price, qty,
	)
}

// defaultNumeric keeps the raw token when it already looks like an integer
// and falls back otherwise. Values are stored as text either way.
func defaultNumeric(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return fallback
		}
	}
	return raw
}
