// Package packs ranks retail package sizes against a required concentrate
// volume and flags the most cost-effective purchase.
package packs

import (
	"fmt"
	"math"
	"sort"

	"github.com/kmoss/sprout/internal/units"
)

// Option is one retail package size from the product catalog. Supplied
// externally per calculation; read-only.
type Option struct {
	ID         string           `json:"id" yaml:"id"`
	Volume     float64          `json:"volume" yaml:"volume"`
	VolumeUnit units.VolumeUnit `json:"volume_unit" yaml:"volume_unit"`
	Price      float64          `json:"price" yaml:"price"`
	IsPopular  bool             `json:"is_popular,omitempty" yaml:"is_popular,omitempty"`
}

// Recommendation is the purchase plan for one package size.
type Recommendation struct {
	// PackageID references the catalog option.
	PackageID string `json:"package_id"`

	// Quantity is the smallest whole number of packages covering the
	// requirement. Partial packages are not purchasable.
	Quantity int `json:"quantity"`

	// TotalCost is Quantity x Price.
	TotalCost float64 `json:"total_cost"`

	// Efficiency is cost per fluid ounce actually purchased:
	// TotalCost / (Quantity x volume delivered). Lower is better.
	Efficiency float64 `json:"efficiency"`

	// DeliveredFlOz is the total volume purchased, in fluid ounces.
	DeliveredFlOz float64 `json:"delivered_fl_oz"`

	// IsOptimal marks the single most cost-effective entry.
	IsOptimal bool `json:"is_optimal"`
}

// Recommend ranks every package against requiredFlOz (fluid ounces).
//
// Entries are sorted ascending by Efficiency, ties broken by lower
// TotalCost, then by catalog order for determinism. Exactly one entry is
// flagged optimal when the catalog is non-empty. An empty catalog returns
// an empty list; that is a legitimate "no catalog configured" state, not
// an error.
//
// Returns an error only when a catalog entry carries a volume that cannot
// be normalized, which is a configuration fault rather than user input.
func Recommend(requiredFlOz float64, options []Option) ([]Recommendation, error) {
	if len(options) == 0 {
		return []Recommendation{}, nil
	}

	type ranked struct {
		rec   Recommendation
		order int
	}

	entries := make([]ranked, 0, len(options))
	for i, opt := range options {
		volumeFlOz, err := units.ToStandardVolume(opt.Volume, opt.VolumeUnit)
		if err != nil {
			return nil, fmt.Errorf("package %q: %w", opt.ID, err)
		}
		if volumeFlOz <= 0 {
			return nil, fmt.Errorf("package %q: volume must be positive, got %v", opt.ID, opt.Volume)
		}

		quantity := int(math.Ceil(requiredFlOz / volumeFlOz))
		if quantity < 1 {
			quantity = 1
		}

		delivered := float64(quantity) * volumeFlOz
		totalCost := units.Round2(float64(quantity) * opt.Price)

		entries = append(entries, ranked{
			rec: Recommendation{
				PackageID:     opt.ID,
				Quantity:      quantity,
				TotalCost:     totalCost,
				Efficiency:    totalCost / delivered,
				DeliveredFlOz: delivered,
			},
			order: i,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.rec.Efficiency != b.rec.Efficiency {
			return a.rec.Efficiency < b.rec.Efficiency
		}
		if a.rec.TotalCost != b.rec.TotalCost {
			return a.rec.TotalCost < b.rec.TotalCost
		}
		return a.order < b.order
	})

	recs := make([]Recommendation, len(entries))
	for i, e := range entries {
		recs[i] = e.rec
	}
	recs[0].IsOptimal = true

	return recs, nil
}

// Optimal returns the recommendation flagged optimal, or false when the
// list is empty.
func Optimal(recs []Recommendation) (Recommendation, bool) {
	for _, r := range recs {
		if r.IsOptimal {
			return r, true
		}
	}
	return Recommendation{}, false
}
