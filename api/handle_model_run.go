package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getforesight/foresight-backend/dto"
	"github.com/getforesight/foresight-backend/models"
	"github.com/getforesight/foresight-backend/pure_utils"
	"github.com/getforesight/foresight-backend/usecases"
	"github.com/getforesight/foresight-backend/utils"
)

func handleListModelRuns(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		organizationId, err := utils.OrganizationIdFromRequest(c.Request)
		if presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewModelRunUsecase()
		modelRuns, err := usecase.ListModelRuns(ctx, organizationId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"model_runs": pure_utils.Map(modelRuns, dto.AdaptModelRunDto),
		})
	}
}

func handlePostModelRun(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		organizationId, err := utils.OrganizationIdFromRequest(c.Request)
		if presentError(ctx, c, err) {
			return
		}
		var data dto.CreateModelRunBody
		if err := c.ShouldBindJSON(&data); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		usecase := uc.NewModelRunUsecase()
		modelRun, err := usecase.CreateModelRun(ctx, models.CreateModelRunInput{
			OrganizationId: organizationId,
			ModelId:        data.ModelId,
			ModelVersion:   data.ModelVersion,
			Name:           data.Name,
		})
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"model_run": dto.AdaptModelRunDto(modelRun),
		})
	}
}

func handleGetModelRun(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		organizationId, err := utils.OrganizationIdFromRequest(c.Request)
		if presentError(ctx, c, err) {
			return
		}
		modelRunId := c.Param("model_run_id")

		usecase := uc.NewModelRunUsecase()
		modelRun, err := usecase.GetModelRun(ctx, organizationId, modelRunId)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"model_run": dto.AdaptModelRunDto(modelRun),
		})
	}
}
