package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name  string
		query string
		want  []int
		meta  PaginationMeta
	}{
		{"defaults", "", []int{1, 2}, PaginationMeta{Total: 5, TotalPages: 3, Page: 1, PageSize: 2}},
		{"last partial page", "page=3&page_size=2", []int{5}, PaginationMeta{Total: 5, TotalPages: 3, Page: 3, PageSize: 2}},
		{"past the end", "page=9&page_size=2", []int{}, PaginationMeta{Total: 5, TotalPages: 3, Page: 9, PageSize: 2}},
		{"garbage falls back", "page=x&page_size=-1", []int{1, 2}, PaginationMeta{Total: 5, TotalPages: 3, Page: 1, PageSize: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, meta := Paginate(contextWithQuery(tt.query), items, 2)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.meta, meta)
		})
	}
}
