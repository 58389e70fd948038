package handler

import (
	"net/http"

	"github.com/southgate-leisure/feedback/internal/ctxkeys"
	"github.com/southgate-leisure/feedback/internal/ui"
	"github.com/southgate-leisure/feedback/internal/ui/pages"
)

// serverError renders the generic 500 page. Error detail is only included in
// development mode; production clients never see internals.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	var detail string
	cfg := ctxkeys.Config(r.Context())
	if cfg != nil && cfg.IsDevelopment() && err != nil {
		detail = err.Error()
	}

	w.WriteHeader(http.StatusInternalServerError)
	ui.Render(w, r, pages.ServerError(pages.ErrorData{Detail: detail}))
}
