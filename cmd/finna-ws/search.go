package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
	"github.com/uvalib/virgo4-finna-ws/internal/view"
)

type searchResponse struct {
	Query           string          `json:"query"`
	Page            int             `json:"page"`
	PageSize        int             `json:"pageSize"`
	Total           int             `json:"total"`
	HasMore         bool            `json:"hasMore"`
	ResultCountText string          `json:"resultCountText"`
	Items           []view.ListItem `json:"items"`
}

// search returns one page of list items for a query
func (svc *ServiceContext) search(c *gin.Context) {
	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Virheellinen sivunumero: %s", pageStr)})
			return
		}
		page = p
	}
	req := finna.SearchRequest{
		Query:       c.Query("q"),
		Page:        page,
		Limit:       finna.DefaultPageSize,
		BooksOnly:   queryFlag(c, "books"),
		FinnishOnly: queryFlag(c, "finnish"),
	}

	log.Printf("INFO: search [%s] page %d (books=%t, finnish=%t)", req.Query, page, req.BooksOnly, req.FinnishOnly)
	resp, err := svc.Finna.Search(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	items := view.NewListItems(resp.Records)
	// everything up to and including this page has been seen
	seen := (page-1)*finna.DefaultPageSize + len(items)
	c.JSON(http.StatusOK, searchResponse{
		Query:           req.Query,
		Page:            page,
		PageSize:        finna.DefaultPageSize,
		Total:           resp.ResultCount,
		HasMore:         len(items) > 0 && seen < resp.ResultCount,
		ResultCountText: view.ResultCountText(resp.ResultCount),
		Items:           items,
	})
}

func queryFlag(c *gin.Context, name string) bool {
	b, _ := strconv.ParseBool(c.Query(name))
	return b
}
