package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/mkravets/storeline/internal/search"
	"github.com/mkravets/storeline/internal/util"
	"github.com/mkravets/storeline/pkg/logging"
)

type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_error", "status", 400, "reason", "empty query")
		return jsonError(c, http.StatusBadRequest, "query required")
	}
	if h.ES == nil {
		l.Warn("search_error", "status", 503, "reason", "search unavailable")
		return jsonError(c, http.StatusServiceUnavailable, "search unavailable")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, hits, err := search.Search(ctx, h.ES, h.Index, q, from, limit)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return jsonError(c, http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, map[string]any{"total": total, "products": hits})
}
