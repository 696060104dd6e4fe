package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPagination(t *testing.T) {
	t.Run("Should read page and limit from the query", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		tests := []struct {
			query     string
			wantPage  int
			wantLimit int
		}{
			{"", 1, DefaultLimit},
			{"?page=3&limit=5", 3, 5},
			{"?page=-1&limit=abc", 1, DefaultLimit},
			{"?limit=1000", 1, MaxLimit},
		}

		for _, tt := range tests {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest(http.MethodGet, "/api/alerts"+tt.query, nil)

			p := GetPaginationFromContext(ctx)
			assert.Equal(t, tt.wantPage, p.Page, tt.query)
			assert.Equal(t, tt.wantLimit, p.Limit, tt.query)
		}
	})

	t.Run("Should slice a page", func(t *testing.T) {
		items := []int{1, 2, 3, 4, 5}

		assert.Equal(t, []int{1, 2}, Paginate(items, PaginationRequest{Page: 1, Limit: 2}))
		assert.Equal(t, []int{5}, Paginate(items, PaginationRequest{Page: 3, Limit: 2}))
		assert.Empty(t, Paginate(items, PaginationRequest{Page: 4, Limit: 2}))
	})

	t.Run("Should compute page totals", func(t *testing.T) {
		resp := NewPaginatedResponse([]int{1}, PaginationRequest{Page: 1, Limit: 2}, 5)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
		assert.Equal(t, 5, resp.Pagination.TotalItems)
		assert.Equal(t, 2, resp.Pagination.PerPage)
	})
}
