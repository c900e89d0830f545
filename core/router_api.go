package core

import (
	"net/http"

	"github.com/segmentio/encoding/json"

	"github.com/go-barry/todos/todo"
)

type searchResponse struct {
	Todos []todo.Todo `json:"todos"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleAPISearch is the JSON twin of handleSearch.
func (r *Router) handleAPISearch(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: ErrMethodNotAllowed.Error()})
		return
	}

	term, err := searchTerm(req)
	if err != nil {
		r.logger.Warn("bad api search request", "err", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Todos: todo.Search(r.todos, term)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Server error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
