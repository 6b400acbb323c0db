package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/resourcehub/resourcehub/app/logic/v1"
	"github.com/resourcehub/resourcehub/app/response"
	"github.com/resourcehub/resourcehub/pkg/utils"
)

func (s *HttpSrv) GetNetwork(c *gin.Context) {
	data, err := v1.NewGraphLogic(c, s.Core).Network()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, data)
}

type GetSelectedNetworkRequest struct {
	Title string `form:"title" binding:"required"`
}

func (s *HttpSrv) GetSelectedNetwork(c *gin.Context) {
	var req GetSelectedNetworkRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	data, err := v1.NewGraphLogic(c, s.Core).Selected(req.Title)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, data)
}
