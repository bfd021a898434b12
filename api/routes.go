package api

import (
	"net/http"
	"time"

	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	timeout "github.com/vearne/gin-timeout"

	"github.com/getforesight/foresight-backend/usecases"
	"github.com/getforesight/foresight-backend/utils"
)

// Simulation request bodies carry driver distributions and overrides, not
// datasets. Anything bigger than this is a caller bug.
const defaultMaxSimulationRequestSize = 1 * 1024 * 1024 // 1MB

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.Timeout(
		timeout.WithTimeout(duration),
		timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		timeout.WithDefaultMsg("Request timeout"),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe(uc))
	r.GET("/version", handleVersion(conf))

	if conf.EnablePrometheus {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	utils.SetupProfilerEndpoints(r, conf.AppName, conf.ApiVersion, conf.GcpConfig.ProjectId)

	r.GET("/organizations", handleGetOrganizations(uc))
	r.POST("/organizations", handlePostOrganization(uc))
	r.GET("/organizations/:organization_id", handleGetOrganization(uc))

	r.GET("/model-runs", handleListModelRuns(uc))
	r.POST("/model-runs", handlePostModelRun(uc))
	r.GET("/model-runs/:model_run_id", handleGetModelRun(uc))
	r.GET("/model-runs/:model_run_id/simulations", handleListSimulations(uc))

	maxRequestSize := conf.MaxRequestSize
	if maxRequestSize == 0 {
		maxRequestSize = defaultMaxSimulationRequestSize
	}
	r.POST("/simulations",
		limits.RequestSizeLimiter(maxRequestSize),
		timeoutMiddleware(conf.SimulationTimeout),
		handlePostSimulation(uc))
	r.GET("/simulations/:simulation_id", handleGetSimulation(uc))
}
