package timezones

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/goliatone/go-formkit/pkg/fields"
)

type optionsResponse struct {
	Data []fields.Option `json:"data"`
}

// Handler serves GET ?q=<query>&limit=<n> with {"data": [options]}.
func Handler(options ...Option) http.Handler {
	opts := newOptions(options...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		zones, err := opts.zones()
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		results := toOptions(Search(zones, r.URL.Query().Get("q"), limit, opts))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_ = json.NewEncoder(w).Encode(optionsResponse{Data: results})
	})
}
