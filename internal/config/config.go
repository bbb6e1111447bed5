// Package config loads and validates product catalog configuration.
//
// A product configuration is a YAML document describing one herbicide
// product: identity, pricing, dosing table, and the retail package sizes
// the recommender ranks. The catalog is static per calculation; nothing
// here is mutated at runtime.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kmoss/sprout/internal/dosage"
	"github.com/kmoss/sprout/internal/packs"
	"github.com/kmoss/sprout/internal/units"
)

// WeedSizeRates is one row of the configurable dosing table.
type WeedSizeRates struct {
	WeedSize   dosage.WeedSize  `yaml:"weed_size"`
	Multiplier float64          `yaml:"multiplier"`
	Rate       dosage.RateRange `yaml:"rate"`
}

// ProductConfig describes one product as supplied by the host catalog.
type ProductConfig struct {
	ID                 string  `yaml:"id"`
	Name               string  `yaml:"name"`
	SKU                string  `yaml:"sku"`
	BasePrice          float64 `yaml:"base_price"`
	Currency           string  `yaml:"currency"`
	ConcentrationRatio float64 `yaml:"concentration_ratio"`

	// SprayVolumeGalPer1000SqFt overrides the standard carrier volume.
	// Zero keeps the default.
	SprayVolumeGalPer1000SqFt float64 `yaml:"spray_volume_gal_per_1000_sq_ft"`

	PackageSizes     []packs.Option  `yaml:"package_sizes"`
	ApplicationRates []WeedSizeRates `yaml:"application_rates"`
}

// currencyCodeLen is the required length of ISO 4217 currency codes.
const currencyCodeLen = 3

// Default returns the built-in product so the CLI works without a
// catalog file.
func Default() ProductConfig {
	defaults := dosage.DefaultWeedSizeConfigs()
	rates := make([]WeedSizeRates, 0, len(defaults))
	for _, ws := range dosage.AllWeedSizes() {
		cfg := defaults[ws]
		rates = append(rates, WeedSizeRates{WeedSize: ws, Multiplier: cfg.Multiplier, Rate: cfg.Rate})
	}

	return ProductConfig{
		ID:                 "clearfield-41",
		Name:               "ClearField 41% Concentrate",
		SKU:                "CF-41-CONC",
		BasePrice:          19.99,
		Currency:           "USD",
		ConcentrationRatio: 0.41,
		PackageSizes: []packs.Option{
			{ID: "cf-16oz", Volume: 16, VolumeUnit: units.FluidOunces, Price: 12.99},
			{ID: "cf-32oz", Volume: 32, VolumeUnit: units.FluidOunces, Price: 19.99, IsPopular: true},
			{ID: "cf-1gal", Volume: 1, VolumeUnit: units.Gallons, Price: 54.99},
			{ID: "cf-2.5gal", Volume: 2.5, VolumeUnit: units.Gallons, Price: 109.99},
		},
		ApplicationRates: rates,
	}
}

// Load reads and validates a product configuration from a YAML file.
func Load(path string) (ProductConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProductConfig{}, fmt.Errorf("reading product config: %w", err)
	}

	var cfg ProductConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ProductConfig{}, fmt.Errorf("parsing product config: %w", err)
	}

	result := Validate(&cfg)
	if !result.Valid {
		return ProductConfig{}, fmt.Errorf("invalid product config %s: %s", path, result.Errors[0].Message)
	}

	return cfg, nil
}

// WeedSizeConfigs materializes the dosing table, falling back to the
// label defaults for categories the catalog does not override.
func (c ProductConfig) WeedSizeConfigs() map[dosage.WeedSize]dosage.WeedSizeConfig {
	configs := dosage.DefaultWeedSizeConfigs()
	for _, row := range c.ApplicationRates {
		configs[row.WeedSize] = dosage.WeedSizeConfig{Multiplier: row.Multiplier, Rate: row.Rate}
	}
	return configs
}

// DosageParams builds the calculation parameters for this product.
func (c ProductConfig) DosageParams() dosage.Params {
	return dosage.Params{
		WeedSizes:                 c.WeedSizeConfigs(),
		SprayVolumeGalPer1000SqFt: c.SprayVolumeGalPer1000SqFt,
	}
}
