package estimator

import (
	"fmt"
	"time"

	"github.com/kmoss/sprout/internal/dosage"
	"github.com/kmoss/sprout/internal/packs"
	"github.com/kmoss/sprout/internal/units"
)

// CartMetadata echoes back the calculation context behind a cart item.
// The shape is part of the contract with the e-commerce layer: every
// field is concrete and typed, and unknown shapes are rejected at the
// boundary rather than passed through.
type CartMetadata struct {
	CalculationID string        `json:"calculation_id"`
	ProductID     string        `json:"product_id"`
	SKU           string        `json:"sku"`
	Inputs        dosage.Inputs `json:"inputs"`
	GeneratedAt   time.Time     `json:"generated_at"`
}

// CartItem is the add-to-cart payload produced from a selected package
// recommendation. The host application owns cart semantics; this is only
// the result object it submits.
type CartItem struct {
	PackageID  string       `json:"package_id"`
	Quantity   int          `json:"quantity"`
	UnitPrice  float64      `json:"unit_price"`
	TotalPrice float64      `json:"total_price"`
	Currency   string       `json:"currency"`
	Metadata   CartMetadata `json:"metadata"`
}

// BuildCartItem assembles the cart payload for one recommendation out of
// result. The recommendation must belong to the result's recommendation
// list; a package id with no catalog entry is rejected.
func (e *Engine) BuildCartItem(result *Result, rec packs.Recommendation) (CartItem, error) {
	if result == nil {
		return CartItem{}, fmt.Errorf("cart item requires a calculation result")
	}

	var option *packs.Option
	for i := range e.product.PackageSizes {
		if e.product.PackageSizes[i].ID == rec.PackageID {
			option = &e.product.PackageSizes[i]
			break
		}
	}
	if option == nil {
		return CartItem{}, fmt.Errorf("package %q is not in the catalog for product %q", rec.PackageID, e.product.ID)
	}

	return CartItem{
		PackageID:  rec.PackageID,
		Quantity:   rec.Quantity,
		UnitPrice:  option.Price,
		TotalPrice: units.Round2(float64(rec.Quantity) * option.Price),
		Currency:   e.product.Currency,
		Metadata: CartMetadata{
			CalculationID: result.CalculationID,
			ProductID:     result.ProductID,
			SKU:           e.product.SKU,
			Inputs:        result.Inputs,
			GeneratedAt:   result.GeneratedAt,
		},
	}, nil
}

// BuildOptimalCartItem builds the cart payload for the result's optimal
// recommendation.
func (e *Engine) BuildOptimalCartItem(result *Result) (CartItem, error) {
	if result == nil {
		return CartItem{}, fmt.Errorf("cart item requires a calculation result")
	}
	optimal, ok := packs.Optimal(result.Recommendations)
	if !ok {
		return CartItem{}, fmt.Errorf("no package recommendations available for product %q", result.ProductID)
	}
	return e.BuildCartItem(result, optimal)
}
