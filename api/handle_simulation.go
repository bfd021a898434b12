package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getforesight/foresight-backend/dto"
	"github.com/getforesight/foresight-backend/pure_utils"
	"github.com/getforesight/foresight-backend/usecases"
	"github.com/getforesight/foresight-backend/utils"
)

func handlePostSimulation(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		organizationId, err := utils.OrganizationIdFromRequest(c.Request)
		if presentError(ctx, c, err) {
			return
		}
		var data dto.CreateSimulationBody
		if err := c.ShouldBindJSON(&data); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := uc.NewSimulationUsecase()
		creation, err := usecase.RequestSimulation(ctx, usecases.CreateSimulationInput{
			OrganizationId: organizationId,
			ModelRunId:     data.ModelRunId,
			Request:        dto.AdaptSimulationRequest(data.Request),
			CacheTtlDays:   data.CacheTtlDays,
			Force:          data.Force,
		})
		if presentError(ctx, c, err) {
			return
		}

		// serve the created (or cached) simulation through the same
		// reconciliation path as a later poll would use
		viewId := creation.QueueEntryId
		if creation.CacheHit {
			viewId = creation.SimulationResultId
		}
		view, err := uc.NewSimulationViewUsecase().GetSimulationView(ctx, organizationId, viewId)
		if presentError(ctx, c, err) {
			return
		}

		status := http.StatusCreated
		if creation.CacheHit {
			status = http.StatusOK
		}
		c.JSON(status, gin.H{
			"simulation": dto.AdaptSimulationViewDto(view),
			"cache_hit":  creation.CacheHit,
		})
	}
}

func handleGetSimulation(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		organizationId, err := utils.OrganizationIdFromRequest(c.Request)
		if presentError(ctx, c, err) {
			return
		}
		simulationId := c.Param("simulation_id")

		usecase := uc.NewSimulationViewUsecase()
		view, err := usecase.GetSimulationView(ctx, organizationId, simulationId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"simulation": dto.AdaptSimulationViewDto(view),
		})
	}
}

func handleListSimulations(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		organizationId, err := utils.OrganizationIdFromRequest(c.Request)
		if presentError(ctx, c, err) {
			return
		}
		modelRunId := c.Param("model_run_id")

		usecase := uc.NewSimulationViewUsecase()
		views, err := usecase.ListSimulationViews(ctx, organizationId, modelRunId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"simulations": pure_utils.Map(views, dto.AdaptSimulationViewDto),
		})
	}
}
