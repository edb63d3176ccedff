/*
Package server implements msgpack IPC for catalog search services.

The server provides a minimal interface for incremental product search using
msgpack serialization over stdin/stdout, so editor plugins and desktop
frontends can embed the search component through process communication.

# IPC

Clients send one structured message per request and receive one response.
Every message carries an ID field that is echoed back.

Search requests use this structure:

	{"id": "req_001", "op": "search", "q": "asp", "l": 10}

The server responds with candidates in upstream order, each carrying its
similarity tier label:

	{"id": "req_001", "r": [{"n": "Aspirin", "s": 0.97, "t": "high"}], "c": 1, "t": 2}

Detail requests resolve a canonical name to the full product record:

	{"id": "det_001", "op": "detail", "name": "Aspirin"}

Health checks return a plain status:

	{"id": "hb_001", "op": "health"}

Failures are reported through an error payload with an HTTP-style code.
*/
package server

// Request is an incoming IPC message. Op selects the operation:
// "search", "detail" or "health".
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Query string `msgpack:"q,omitempty"`
	Limit int    `msgpack:"l,omitempty"`
	Name  string `msgpack:"name,omitempty"`
}

// ResponseCandidate is one suggestion in a search response.
type ResponseCandidate struct {
	Name       string  `msgpack:"n"`
	ImageURL   string  `msgpack:"i,omitempty"`
	Similarity float64 `msgpack:"s,omitempty"`
	Tier       string  `msgpack:"t,omitempty"`
}

// SearchResponse carries the candidate list for a search request.
type SearchResponse struct {
	ID         string              `msgpack:"id"`
	Candidates []ResponseCandidate `msgpack:"r"`
	Count      int                 `msgpack:"c"`
	TimeTaken  int64               `msgpack:"t"`
}

// DetailResponse carries one full product record.
type DetailResponse struct {
	ID         string `msgpack:"id"`
	Name       string `msgpack:"name"`
	ImageURL   string `msgpack:"i,omitempty"`
	Summary    string `msgpack:"sum,omitempty"`
	Popularity int    `msgpack:"pop,omitempty"`
}

// StatusResponse reports health and readiness.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
