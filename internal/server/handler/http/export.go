package http

import (
	"net/http"
	"sort"

	"github.com/optifin/optifin/internal/export"
	"github.com/optifin/optifin/internal/middleware"
	"github.com/optifin/optifin/internal/statement"
)

// ExportHandler serves dashboard data as CSV downloads.
type ExportHandler struct{}

// Dashboard handles GET /api/export/dashboard: the statement summary as a
// CSV attachment. An empty statement exports an empty summary.
func (h *ExportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	state := middleware.StateFromContext(r.Context())
	if state == nil {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}

	state.Lock()
	summary := statement.Summarize(state.Statement)
	state.Unlock()

	table := export.Table{
		Header: []string{"metric", "value"},
		Rows: [][]string{
			{"income", summary.Income.StringFixed(2)},
			{"expenses", summary.Expenses.StringFixed(2)},
			{"net", summary.Net.StringFixed(2)},
		},
	}
	categories := make([]string, 0, len(summary.ByCategory))
	for c := range summary.ByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		table.Rows = append(table.Rows, []string{"category:" + c, summary.ByCategory[c].StringFixed(2)})
	}

	data, err := export.CSV(table)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="dashboard.csv"`)
	_, _ = w.Write(data)
}
