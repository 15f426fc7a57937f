package schema

// OrderIntent carries the internal fields of an order about to be translated
// into venue wire format. Numeric fields are exchange-precision strings.
type OrderIntent struct {
	ClientOrderID   string      `json:"client_order_id"`
	Symbol          string      `json:"symbol"`
	Side            OrderSide   `json:"side"`
	Type            OrderType   `json:"type"`
	TimeInForce     TimeInForce `json:"time_in_force"`
	Quantity        string      `json:"quantity"`
	Price           string      `json:"price,omitempty"`
	TriggerPrice    string      `json:"trigger_price,omitempty"`
	TriggerType     TriggerType `json:"trigger_type,omitempty"`
	CallbackRate    string      `json:"callback_rate,omitempty"`
	DisplayQuantity string      `json:"display_quantity,omitempty"`
	PostOnly        bool        `json:"post_only"`
	ReduceOnly      bool        `json:"reduce_only"`
	ExpireTimeNS    int64       `json:"expire_time_ns,omitempty"`
}

// ExecutionReport is the internal form of a venue order or fill update.
type ExecutionReport struct {
	ReportID        string      `json:"report_id"`
	ClientOrderID   string      `json:"client_order_id"`
	VenueOrderID    string      `json:"venue_order_id"`
	Symbol          string      `json:"symbol"`
	Side            OrderSide   `json:"side"`
	Type            OrderType   `json:"type"`
	TimeInForce     TimeInForce `json:"time_in_force"`
	Status          OrderStatus `json:"status"`
	Price           string      `json:"price,omitempty"`
	TriggerPrice    string      `json:"trigger_price,omitempty"`
	Quantity        string      `json:"quantity"`
	FilledQuantity  string      `json:"filled_quantity"`
	AvgPrice        string      `json:"avg_price,omitempty"`
	LastPrice       string      `json:"last_price,omitempty"`
	LastQuantity    string      `json:"last_quantity,omitempty"`
	CommissionPaid  string      `json:"commission_paid,omitempty"`
	CommissionAsset string      `json:"commission_asset,omitempty"`
	ReduceOnly      bool        `json:"reduce_only"`
	PostOnly        bool        `json:"post_only"`
	TsEvent         int64       `json:"ts_event"`
	TsInit          int64       `json:"ts_init"`
}
