// Package http exposes the session's HTTP surface to the agent UI:
// the visible order list, accept and reject actions, and the active route.
package http

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderResponse represents one visible order.
type OrderResponse struct {
	ID              string           `json:"orderId"`
	CustomerName    string           `json:"customerName"`
	DeliveryAddress string           `json:"deliveryAddress"`
	Destination     LocationResponse `json:"destination"`
	TotalAmount     float64          `json:"totalAmount"`
	Status          string           `json:"status"`
}

// LocationResponse is a coordinate pair.
type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// AcceptResponse reports the outcome of an accept action. Accepted and
// RouteAvailable move independently: a position failure after a successful
// accept yields accepted=true with routeAvailable=false and a notice.
type AcceptResponse struct {
	Accepted       bool   `json:"accepted"`
	RouteAvailable bool   `json:"routeAvailable"`
	Notice         string `json:"notice,omitempty"`
}

// RejectResponse reports the outcome of a reject action.
type RejectResponse struct {
	Rejected bool `json:"rejected"`
}

// RouteResponse carries the endpoints of the active route.
type RouteResponse struct {
	Start LocationResponse `json:"start"`
	End   LocationResponse `json:"end"`
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status string `json:"status"`
}
