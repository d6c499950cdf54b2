package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ritzau/vt-designer/pkg/editor"
	"github.com/ritzau/vt-designer/pkg/graph"
	"github.com/ritzau/vt-designer/pkg/logging"
	"github.com/ritzau/vt-designer/pkg/objectid"
)

// errorBody is the JSON form of a rejected request.
type errorBody struct {
	Error     string              `json:"error"`
	Kind      string              `json:"kind"`
	Referrers []objectid.ObjectID `json:"referrers,omitempty"`
	Attribute string              `json:"attribute,omitempty"`
}

// errBadRequest marks malformed requests: bad JSON, ids or roles.
var errBadRequest = errors.New("bad request")

var errorKinds = []struct {
	err    error
	kind   string
	status int
}{
	{errBadRequest, "bad-request", http.StatusBadRequest},
	{graph.ErrIDNotFound, "id-not-found", http.StatusNotFound},
	{graph.ErrDuplicateID, "duplicate-id", http.StatusConflict},
	{graph.ErrIDInUse, "id-in-use", http.StatusConflict},
	{graph.ErrReferencedElsewhere, "referenced-elsewhere", http.StatusConflict},
	{graph.ErrTypeNotAllowed, "type-not-allowed", http.StatusConflict},
	{graph.ErrCycleDetected, "cycle-detected", http.StatusConflict},
	{editor.ErrNothingToUndo, "nothing-to-undo", http.StatusConflict},
	{editor.ErrNothingToRedo, "nothing-to-redo", http.StatusConflict},
	{graph.ErrValidationFailed, "validation-failed", http.StatusUnprocessableEntity},
	{graph.ErrIntegrity, "integrity", http.StatusUnprocessableEntity},
	{ErrNoProjectFile, "no-project-file", http.StatusConflict},
}

// classify maps an error to its kind and HTTP status.
func classify(err error) (string, int) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind, k.status
		}
	}
	return "internal", http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind, status := classify(err)
	body := errorBody{Error: err.Error(), Kind: kind}

	var referenced *graph.ReferencedElsewhereError
	if errors.As(err, &referenced) {
		body.Referrers = referenced.Referrers
	}
	var invalid *graph.ValidationError
	if errors.As(err, &invalid) {
		body.Attribute = invalid.Attr
	}

	if status == http.StatusInternalServerError {
		logging.ErrorContext(r.Context(), "Request failed", "error", err)
	} else {
		logging.DebugContext(r.Context(), "Request rejected", "kind", kind, "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("Failed to encode response", "error", err)
	}
}
