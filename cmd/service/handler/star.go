package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/resourcehub/resourcehub/app/logic/v1"
	"github.com/resourcehub/resourcehub/app/response"
	"github.com/resourcehub/resourcehub/pkg/utils"
)

type StarRequest struct {
	Repo string `form:"repo" binding:"required"`
}

func (s *HttpSrv) GetStarWidget(c *gin.Context) {
	var req StarRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	data, err := v1.NewStarLogic(c, s.Core).Widget(req.Repo)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, data)
}

// GetLiveStarWidget always succeeds; a failed fetch is reported in data.error.
func (s *HttpSrv) GetLiveStarWidget(c *gin.Context) {
	var req StarRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	data := v1.NewStarLogic(c, s.Core).Live(req.Repo)
	if data.Error != "" {
		data.Error = response.Localize(c, data.Error)
	}
	response.APISuccess(c, data)
}
