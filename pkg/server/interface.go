/*
Package server implements msgpack IPC for the clue solver.

The server reads a stream of msgpack maps from stdin and writes one msgpack
map per request to stdout. Logs go to stderr so they never mix with frames.

# IPC

Every request carries an id and an action. A request without an id gets a
generated one, echoed in the response.

Solve requests name the clue and any constraints:

	{"id": "req_001", "action": "solve", "clue": "Zoroastrian pairs dancing.", "category": "anagram", "limit": 5}

The server responds with solutions ranked by confidence:

	{"id": "req_001", "solutions": [{"answer": "parsi", "category": "anagram", ...}], "count": 1, "t": 1840, "partial": false}

A solve that runs past its timeout is cancelled and answered with whatever
was found so far, flagged with partial.

Dictionary maintenance rebuilds the word list or the wordplay dictionaries:

	{"id": "dict_001", "action": "rebuild", "target": "wordlist"}
	{"id": "dict_002", "action": "rebuild", "target": "wordplay"}

and health reports the loaded dictionaries:

	{"id": "h_001", "action": "health"}

# Errors

Invalid requests get code 400, failures inside the solver 500:

	{"id": "req_002", "e": "solution length mismatch: ...", "c": 400}
*/
package server

// Actions understood by the server.
const (
	ActionSolve   = "solve"
	ActionRebuild = "rebuild"
	ActionHealth  = "health"
)

// Rebuild targets.
const (
	TargetWordList = "wordlist"
	TargetWordplay = "wordplay"
)

// Request is any client message. Fields are read according to Action.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`

	Clue      string `msgpack:"clue,omitempty"`
	Length    int    `msgpack:"length,omitempty"`
	Category  string `msgpack:"category,omitempty"`
	Known     string `msgpack:"known,omitempty"`
	Brute     bool   `msgpack:"brute,omitempty"`
	Depth     int    `msgpack:"depth,omitempty"`
	Limit     int    `msgpack:"limit,omitempty"`
	TimeoutMs int    `msgpack:"timeout_ms,omitempty"`

	Target string `msgpack:"target,omitempty"`
}

// SolutionItem is one ranked answer.
type SolutionItem struct {
	Answer     string  `msgpack:"answer"`
	Category   string  `msgpack:"category"`
	Definition string  `msgpack:"definition"`
	Wordplay   string  `msgpack:"wordplay"`
	Keyword    string  `msgpack:"keyword"`
	AppliedTo  string  `msgpack:"applied_to"`
	Confidence float64 `msgpack:"confidence"`
}

// SolveResponse answers a solve request. TimeTaken is in microseconds.
type SolveResponse struct {
	ID        string         `msgpack:"id"`
	Solutions []SolutionItem `msgpack:"solutions"`
	Count     int            `msgpack:"count"`
	TimeTaken int64          `msgpack:"t"`
	Partial   bool           `msgpack:"partial"`
}

// StatusResponse answers rebuild and health requests.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	// Stats is only set for health.
	Stats     any   `msgpack:"stats,omitempty"`
	TimeTaken int64 `msgpack:"t,omitempty"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
