// Package api holds request parsing shared by the HTTP handlers.
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageRequest is the page/pageSize pair parsed from the query string
type PageRequest struct {
	Page     int64 `json:"page"`
	PageSize int64 `json:"pageSize"`
}

// SortRequest names the field and direction to sort by
type SortRequest struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// FilterRequest carries the common list filters
type FilterRequest struct {
	Search   string `json:"search,omitempty"`
	Status   string `json:"status,omitempty"`
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
}

// ListRequest combines pagination, sorting and filtering
type ListRequest struct {
	Pagination PageRequest
	Sort       SortRequest
	Filter     FilterRequest
}

// ParseListRequest reads every list parameter from the query string. Out of
// range values are clamped rather than rejected.
func ParseListRequest(c *gin.Context, defaultSortField string) ListRequest {
	return ListRequest{
		Pagination: parsePagination(c),
		Sort:       parseSort(c, defaultSortField),
		Filter: FilterRequest{
			Search:   c.Query("search"),
			Status:   c.Query("status"),
			DateFrom: c.Query("dateFrom"),
			DateTo:   c.Query("dateTo"),
		},
	}
}

func parsePagination(c *gin.Context) PageRequest {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.ParseInt(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)), 10, 64)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return PageRequest{Page: page, PageSize: pageSize}
}

func parseSort(c *gin.Context, defaultField string) SortRequest {
	field := c.DefaultQuery("sortBy", defaultField)
	order := c.DefaultQuery("sortOrder", "desc")
	return SortRequest{Field: field, Desc: order != "asc"}
}
