package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
	"github.com/uvalib/virgo4-finna-ws/internal/view"
)

// getRecord returns the detail view of one record. Identical lookups that
// arrive while one is in flight share its result.
func (svc *ServiceContext) getRecord(c *gin.Context) {
	id := strings.TrimPrefix(c.Param("id"), "/")
	if strings.TrimSpace(id) == "" {
		respondError(c, finna.ErrEmptyID)
		return
	}

	// the shared lookup must outlive the first caller going away
	ctx := context.WithoutCancel(c.Request.Context())
	v, err, shared := svc.records.Do(id, func() (interface{}, error) {
		log.Printf("Getting Finna record %s", id)
		resp, err := svc.Finna.Record(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(resp.Records) == 0 {
			return nil, errRecordNotFound
		}
		return &resp.Records[0], nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if shared {
		log.Printf("INFO: record %s lookup was shared", id)
	}

	c.JSON(http.StatusOK, view.NewDetail(v.(*finna.Record), svc.ImageOrigin))
}
