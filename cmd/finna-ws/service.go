package main

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/uvalib/virgo4-finna-ws/internal/finna"
)

// finnaAPI is the part of the Finna client used by the handlers
type finnaAPI interface {
	Search(ctx context.Context, req finna.SearchRequest) (*finna.Response, error)
	Record(ctx context.Context, id string) (*finna.Response, error)
	Ping(ctx context.Context) error
}

// ServiceContext contains common data used by all handlers
type ServiceContext struct {
	Version     string
	ImageOrigin string
	Finna       finnaAPI
	records     singleflight.Group
}

var errRecordNotFound = errors.New("Teosta ei löytynyt")

// intializeService will initialize the service context based on the config parameters
func intializeService(version string, cfg *ServiceConfig) (*ServiceContext, error) {
	timeout := time.Duration(cfg.Finna.Timeout) * time.Second
	ctx := ServiceContext{
		Version:     version,
		ImageOrigin: cfg.ImageOrigin,
		Finna:       finna.NewClient(cfg.Finna.API, timeout, cfg.Finna.RateLimit),
	}
	return &ctx, nil
}

// ignoreFavicon is a dummy to handle browser favicon requests without warnings
func (svc *ServiceContext) ignoreFavicon(c *gin.Context) {
}

// GetVersion reports the version of the serivce
func (svc *ServiceContext) getVersion(c *gin.Context) {
	build := "unknown"
	// cos our CWD is the bin directory
	files, _ := filepath.Glob("../buildtag.*")
	if len(files) == 1 {
		build = strings.Replace(files[0], "../buildtag.", "", 1)
	}

	vMap := make(map[string]string)
	vMap["version"] = svc.Version
	vMap["build"] = build
	c.JSON(http.StatusOK, vMap)
}

// HealthCheck reports the health of the server
func (svc *ServiceContext) healthCheck(c *gin.Context) {
	log.Printf("Got healthcheck request")
	type hcResp struct {
		Healthy bool   `json:"healthy"`
		Message string `json:"message,omitempty"`
	}
	hcMap := make(map[string]hcResp)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	if err := svc.Finna.Ping(ctx); err != nil {
		log.Printf("ERROR: Failed response from Finna PING: %s", err.Error())
		hcMap["finna"] = hcResp{Healthy: false, Message: err.Error()}
	} else {
		hcMap["finna"] = hcResp{Healthy: true}
	}

	c.JSON(http.StatusOK, hcMap)
}

// respondError writes err as a JSON error body with the matching status
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var reqErr *finna.RequestError
	switch {
	case finna.IsPrecondition(err):
		status = http.StatusBadRequest
	case errors.Is(err, errRecordNotFound):
		status = http.StatusNotFound
	case errors.As(err, &reqErr):
		status = reqErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
