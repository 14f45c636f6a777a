package types

// CountByKey - количество записей в разрезе значения (статуса, категории и т.п.).
type CountByKey struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type DashboardStats struct {
	DevicesTotal          int64        `json:"devices_total"`
	DevicesByStockStatus  []CountByKey `json:"devices_by_stock_status"`
	DevicesByCategory     []CountByKey `json:"devices_by_category"`
	OpenInterventions     int64        `json:"open_interventions"`
	InterventionsByStatus []CountByKey `json:"interventions_by_status"`
	ClientsTotal          int64        `json:"clients_total"`
	OpenClientOrders      int64        `json:"open_client_orders"`
	UnpaidInvoicesTotal   float64      `json:"unpaid_invoices_total"`
}
