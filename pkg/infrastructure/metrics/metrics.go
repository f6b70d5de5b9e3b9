package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/vsinha/pharmsim/pkg/application/dto"
)

// Registry collects simulation metrics on a private prometheus registry
type Registry struct {
	reg           *prometheus.Registry
	DaysProcessed prometheus.Counter
	Orders        *prometheus.CounterVec
	Revenue       prometheus.Counter
	Profit        prometheus.Gauge
	Losses        prometheus.Counter
	StockUnits    *prometheus.GaugeVec
}

// NewRegistry creates the simulation metrics and registers them
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	days := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pharmsim_days_processed_total",
		Help: "Number of simulated days closed.",
	})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pharmsim_orders_total",
		Help: "Orders by delivery status and order type.",
	}, []string{"status", "type"})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pharmsim_revenue_total",
		Help: "Retail revenue of delivered orders.",
	})
	profit := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pharmsim_profit",
		Help: "Cumulative profit after write-off losses.",
	})
	losses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pharmsim_losses_total",
		Help: "Wholesale value of expired units written off.",
	})
	stock := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pharmsim_stock_units",
		Help: "Units in active batches at the end of the last day.",
	}, []string{"medicine"})

	r.MustRegister(days, orders, revenue, profit, losses, stock)
	return &Registry{
		reg:           r,
		DaysProcessed: days,
		Orders:        orders,
		Revenue:       revenue,
		Profit:        profit,
		Losses:        losses,
		StockUnits:    stock,
	}
}

// ObserveDay folds one day's statistics into the metrics. Profit is a gauge
// because losses can make it go down.
func (r *Registry) ObserveDay(stats dto.DayStatistics) {
	r.DaysProcessed.Inc()
	for _, o := range stats.Orders {
		r.Orders.WithLabelValues(o.Status.String(), o.Type.String()).Inc()
	}
	r.Revenue.Add(stats.Revenue.InexactFloat64())
	r.Profit.Add(stats.Profit.InexactFloat64())
	r.Losses.Add(stats.Losses.InexactFloat64())
	for _, sku := range stats.Warehouse.SKUs {
		r.StockUnits.WithLabelValues(sku.Medicine.Name).Set(float64(sku.Count))
	}
}

// WriteText writes every metric in the prometheus text exposition format
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
