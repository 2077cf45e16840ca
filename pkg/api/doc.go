// Package api serves clique searches over HTTP.
//
// Routes:
//
//	GET  /healthz        liveness probe
//	POST /v1/search      search a DIMACS graph sent as the request body
//	POST /v1/verify      check a vertex set against a DIMACS graph
//	GET  /v1/runs        list recorded runs, newest first
//
// Search options are passed as query parameters (restarts, width, trials,
// swap_budget, tabu_size, seed, eligibility, instance, refresh). Zero selects
// the default; values above [Server.Limits] are rejected. Vertex IDs in
// requests and responses are 0-based.
//
// Errors are written as {"code": ..., "message": ...} with the HTTP status
// derived from the error code: input and graph errors map to 400, not-found
// codes to 404, everything else to 500.
package api
