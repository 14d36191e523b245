package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jack-T524/oms/internal/domain"
	"github.com/jack-T524/oms/internal/repository"
	"github.com/jack-T524/oms/pkg/mylogger"
	"go.uber.org/zap"
)

// detailSeparator joins line descriptions inside one consolidated shipment.
const detailSeparator = "、\n"

type ConsolidationService interface {
	Consolidate(ctx context.Context) (*domain.Manifest, error)
}

type consolidationService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	logger    *zap.Logger
}

func NewConsolidationService(orders repository.OrderRepository, customers repository.CustomerRepository, logger *zap.Logger) ConsolidationService {
	return &consolidationService{
		orders:    orders,
		customers: customers,
		logger:    logger,
	}
}

type groupKey struct {
	name    string
	phone   string
	address string
}

type group struct {
	details  []string
	subtotal int64
}

// Consolidate merges all shippable orders into one manifest line per
// (buyer, phone, address) triple. Grouping on the full triple is deliberate:
// two directory rows sharing a name but differing contact info stay separate
// shipments. The pass never mutates the tables, so re-running it against the
// same snapshot yields the same manifest.
//
// Orders whose buyer has no directory row with both phone and address are
// excluded before grouping. That is a data quality condition, not an error;
// the rest of the pass proceeds.
func (s *consolidationService) Consolidate(ctx context.Context) (*domain.Manifest, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}

	// First directory row per name wins, same as the resolver's linear scan.
	directory := make(map[string]*domain.Customer, len(customers))
	for i := range customers {
		if _, ok := directory[customers[i].Name]; !ok {
			directory[customers[i].Name] = &customers[i]
		}
	}

	var keys []groupKey
	groups := make(map[groupKey]*group)

	for _, order := range orders {
		if order.Status != domain.OrderStatusShippable {
			continue
		}

		customer, ok := directory[order.Buyer]
		if !ok || !customer.HasContactInfo() {
			mylogger.Warn(
				ctx,
				s.logger,
				"Shippable order has no complete contact info, excluded from manifest",
				zap.Int("row", order.Row),
				zap.String("buyer", order.Buyer),
			)

			continue
		}

		price := coerceNumeric(order.UnitPrice, 0)
		qty := coerceNumeric(order.Quantity, 1)

		key := groupKey{name: order.Buyer, phone: customer.Phone, address: customer.Address}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			keys = append(keys, key)
		}

		g.details = append(g.details, fmt.Sprintf("%s(unit price $%d x%d)", order.Item, price, qty))
		g.subtotal += price * qty
	}

	manifest := &domain.Manifest{Lines: make([]domain.ManifestLine, 0, len(keys))}
	for _, key := range keys {
		g := groups[key]
		fee, label := domain.ShippingFee(g.subtotal)

		manifest.Lines = append(manifest.Lines, domain.ManifestLine{
			Buyer:      key.name,
			Phone:      key.phone,
			Address:    key.address,
			ItemDetail: strings.Join(g.details, detailSeparator),
			Subtotal:   g.subtotal,
			Fee:        fee,
			FeeLabel:   label,
			GrandTotal: g.subtotal + fee,
		})
		manifest.GrandTotal += g.subtotal + fee
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Manifest consolidated",
		zap.Int("lines", len(manifest.Lines)),
		zap.Int64("grand_total", manifest.GrandTotal),
	)

	return manifest, nil
}

// coerceNumeric parses a text cell into a non-negative integer, falling back
// on the default when the cell is unparsable or negative. A single malformed
// historical row must not block the rest of the pass.
func coerceNumeric(raw string, fallback int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
