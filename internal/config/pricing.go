package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Plan identifiers priced by the table. Every plan type appearing in source
// records must resolve here; unknown plans price at zero.
const (
	PlanGold     = "gold"
	PlanPlatinum = "platinum"

	CorporatePlanDynamic    = "dynamic"
	CorporatePlanPower      = "power"
	CorporatePlanElite      = "elite"
	CorporatePlanEnterprise = "enterprise"
)

// PricingTable maps plan identifiers to monthly prices in cents.
type PricingTable struct {
	Individual map[string]int64 `mapstructure:"individual"`
	Corporate  map[string]int64 `mapstructure:"corporate"`
}

// IndividualPrice resolves an individual plan price. The boolean reports
// whether the plan is known; unknown plans price at zero.
func (t PricingTable) IndividualPrice(planType string) (int64, bool) {
	price, ok := t.Individual[normalizePlan(planType)]
	return price, ok
}

// CorporatePrice resolves a corporate plan price.
func (t PricingTable) CorporatePrice(planType string) (int64, bool) {
	price, ok := t.Corporate[normalizePlan(planType)]
	return price, ok
}

func normalizePlan(planType string) string {
	return strings.ToLower(strings.TrimSpace(planType))
}

func DefaultPricingTable() PricingTable {
	return PricingTable{
		Individual: map[string]int64{
			PlanGold:     999,
			PlanPlatinum: 1999,
		},
		Corporate: map[string]int64{
			CorporatePlanDynamic:    19900,
			CorporatePlanPower:      49900,
			CorporatePlanElite:      99900,
			CorporatePlanEnterprise: 199900,
		},
	}
}

// PricingHolder serves the current pricing table. The table is loaded once at
// startup and swapped atomically on config-file change, so a computation in
// flight always sees one consistent table.
type PricingHolder struct {
	current atomic.Value // holds PricingTable
}

func NewPricingHolder() (*PricingHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/fitlane/config")
	v.AddConfigPath("/etc/fitlane")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FITLANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPricingTable()
	v.SetDefault("pricing.individual", defaults.Individual)
	v.SetDefault("pricing.corporate", defaults.Corporate)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var table PricingTable
	if err := v.UnmarshalKey("pricing", &table); err != nil {
		return nil, err
	}
	if err := validatePricingTable(table); err != nil {
		return nil, err
	}

	holder := &PricingHolder{}
	holder.current.Store(normalizeTable(table))

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingTable
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingTable(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(normalizeTable(updated))
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PricingHolder) Get() PricingTable {
	return h.current.Load().(PricingTable)
}

// NewStaticPricingHolder wraps a fixed table, bypassing viper. Used by tests.
func NewStaticPricingHolder(table PricingTable) *PricingHolder {
	holder := &PricingHolder{}
	holder.current.Store(normalizeTable(table))
	return holder
}

func validatePricingTable(table PricingTable) error {
	if len(table.Individual) == 0 {
		return errors.New("pricing.individual cannot be empty")
	}
	if len(table.Corporate) == 0 {
		return errors.New("pricing.corporate cannot be empty")
	}
	for plan, price := range table.Individual {
		if price < 0 {
			return errors.New("pricing.individual." + plan + " cannot be negative")
		}
	}
	for plan, price := range table.Corporate {
		if price < 0 {
			return errors.New("pricing.corporate." + plan + " cannot be negative")
		}
	}
	return nil
}

func normalizeTable(table PricingTable) PricingTable {
	normalized := PricingTable{
		Individual: make(map[string]int64, len(table.Individual)),
		Corporate:  make(map[string]int64, len(table.Corporate)),
	}
	for plan, price := range table.Individual {
		normalized.Individual[normalizePlan(plan)] = price
	}
	for plan, price := range table.Corporate {
		normalized.Corporate[normalizePlan(plan)] = price
	}
	return normalized
}
