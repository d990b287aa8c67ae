package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	RouteUsers    = RouteApiV1 + "/users"
	RouteRegister = RouteUsers + "/register"
	RouteUser     = RouteUsers + "/:user_id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
