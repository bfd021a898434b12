package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getforesight/foresight-backend/utils"
)

func handleVersion(conf Configuration) func(c *gin.Context) {
	return func(c *gin.Context) {
		utils.OutdatedMutex.RLock()
		outdated := utils.Outdated
		utils.OutdatedMutex.RUnlock()

		c.JSON(http.StatusOK, gin.H{
			"version":  conf.ApiVersion,
			"app_name": conf.AppName,
			"outdated": outdated,
		})
	}
}
