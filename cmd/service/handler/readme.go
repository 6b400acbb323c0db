package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/resourcehub/resourcehub/app/logic/v1"
	"github.com/resourcehub/resourcehub/app/response"
)

type ReadmeResponse struct {
	Markdown string `json:"markdown"`
}

// GetReadme returns the envelope by default, or plain markdown with ?format=raw.
func (s *HttpSrv) GetReadme(c *gin.Context) {
	md, err := v1.NewReadmeLogic(c, s.Core).Generate(c.Query("group") == "tag")
	if err != nil {
		response.APIError(c, err)
		return
	}

	if c.Query("format") == "raw" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}
	response.APISuccess(c, ReadmeResponse{Markdown: md})
}
