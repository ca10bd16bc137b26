package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Version of the service
const version = "1.0.0"

/**
 * MAIN
 */
func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Printf("===> Finna catalog service staring up <===")

	// Get config params and use them to init service context. Any issues are fatal
	cfg, err := loadConfiguration(os.Args[1:])
	if err != nil {
		log.Fatal(err.Error())
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	svc, err := intializeService(version, cfg)
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf("Setup routes...")
	gin.SetMode(gin.ReleaseMode)
	gin.DisableConsoleColor()
	router := newRouter(svc)

	portStr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Start service v%s on port %s", version, portStr)
	log.Fatal(router.Run(portStr))
}

func newRouter(svc *ServiceContext) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger)
	// metrics are excluded so promhttp output is not compressed twice
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AddExposeHeaders(requestIDHeader)
	router.Use(cors.New(corsCfg))

	router.GET("/", svc.getVersion)
	router.GET("/favicon.ico", svc.ignoreFavicon)
	router.GET("/version", svc.getVersion)
	router.GET("/healthcheck", svc.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/search", svc.search)
	router.GET("/record/*id", svc.getRecord)

	return router
}
