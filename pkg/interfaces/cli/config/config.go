package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/vsinha/pharmsim/pkg/application/services/simulation"
)

// EnvPrefix prefixes every environment override, e.g. PHARMSIM_RETAIL_MARGIN
const EnvPrefix = "PHARMSIM"

// LoadParams reads simulation parameters. Defaults come from the reference
// run, then the optional config file (yaml, json or toml by extension), then
// PHARMSIM_* environment variables.
func LoadParams(path string) (simulation.Params, error) {
	v := viper.New()

	defaults := simulation.DefaultParams()
	v.SetDefault("days", defaults.Days)
	v.SetDefault("couriers", defaults.Couriers)
	v.SetDefault("retail_margin", defaults.RetailMargin)
	v.SetDefault("card_discount", defaults.CardDiscount)
	v.SetDefault("base_orders", defaults.BaseOrders)
	v.SetDefault("sensitivity", defaults.Sensitivity)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("max_orders_per_courier", defaults.MaxOrdersPerCourier)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return simulation.Params{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var params simulation.Params
	if err := v.Unmarshal(&params); err != nil {
		return simulation.Params{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return params, params.Validate()
}
