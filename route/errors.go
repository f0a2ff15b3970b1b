package route

import "errors"

// ErrRouteInsertionFailed indicates a route node could not find a free
// resource slot along its chain; the caller discards this modulo
// schedule and retries §4.4, then increments II after
// ModuloSchedulingAttempts retries (spec §4.5, §7).
var ErrRouteInsertionFailed = errors.New("route: insertion failed, resource exhausted")
