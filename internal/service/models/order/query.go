package order

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	Ids          []string `json:"ids,omitempty"`
	UserIds      []string `json:"userIds,omitempty"`
	OrderNumbers []string `json:"orderNumbers,omitempty"`
	Limit        int      `json:"limit,omitempty"`
	Offset       int      `json:"offset,omitempty"`
}
