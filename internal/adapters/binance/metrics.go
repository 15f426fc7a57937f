package binance

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type adapterMetrics struct {
	accountType string

	instrumentsNormalized metric.Int64Counter
	instrumentsSkipped    metric.Int64Counter
	instrumentsFailed     metric.Int64Counter
	ordersTranslated      metric.Int64Counter
	ordersRejected        metric.Int64Counter
	reportsTranslated     metric.Int64Counter
	enumMisses            metric.Int64Counter
}

func newAdapterMetrics(accountType AccountType) *adapterMetrics {
	meter := otel.Meter("adapter.binance")

	m := &adapterMetrics{accountType: string(accountType)}

	m.instrumentsNormalized, _ = meter.Int64Counter("binance_adapter_instruments_normalized",
		metric.WithDescription("Instrument definitions normalized from venue exchange info"),
		metric.WithUnit("{instrument}"))

	m.instrumentsSkipped, _ = meter.Int64Counter("binance_adapter_instruments_skipped",
		metric.WithDescription("Venue symbols skipped as not yet tradable"),
		metric.WithUnit("{instrument}"))

	m.instrumentsFailed, _ = meter.Int64Counter("binance_adapter_instruments_failed",
		metric.WithDescription("Venue symbols dropped after trading-rule validation failures"),
		metric.WithUnit("{instrument}"))

	m.ordersTranslated, _ = meter.Int64Counter("binance_adapter_orders_translated",
		metric.WithDescription("Order intents translated into venue wire fields"),
		metric.WithUnit("{order}"))

	m.ordersRejected, _ = meter.Int64Counter("binance_adapter_orders_rejected",
		metric.WithDescription("Order intents rejected before reaching the venue"),
		metric.WithUnit("{order}"))

	m.reportsTranslated, _ = meter.Int64Counter("binance_adapter_reports_translated",
		metric.WithDescription("Venue execution reports translated into the internal model"),
		metric.WithUnit("{report}"))

	m.enumMisses, _ = meter.Int64Counter("binance_adapter_enum_misses",
		metric.WithDescription("Venue enum values with no registered mapping"),
		metric.WithUnit("{value}"))

	return m
}

func (m *adapterMetrics) attrs() metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("account_type", m.accountType))
}

func (m *adapterMetrics) add(counter metric.Int64Counter) {
	if m == nil || counter == nil {
		return
	}
	counter.Add(context.Background(), 1, m.attrs())
}

func (m *adapterMetrics) instrumentNormalized() { m.add(m.instrumentsNormalized) }
func (m *adapterMetrics) instrumentSkipped()    { m.add(m.instrumentsSkipped) }
func (m *adapterMetrics) instrumentFailed()     { m.add(m.instrumentsFailed) }
func (m *adapterMetrics) orderTranslated()      { m.add(m.ordersTranslated) }
func (m *adapterMetrics) orderRejected()        { m.add(m.ordersRejected) }
func (m *adapterMetrics) reportTranslated()     { m.add(m.reportsTranslated) }
func (m *adapterMetrics) enumMiss()             { m.add(m.enumMisses) }
