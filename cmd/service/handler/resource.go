package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/resourcehub/resourcehub/app/logic/v1"
	"github.com/resourcehub/resourcehub/app/response"
	"github.com/resourcehub/resourcehub/pkg/errors"
	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/types"
	"github.com/resourcehub/resourcehub/pkg/utils"
)

const maxImportSize = 1 << 20

type ListResourcesRequest struct {
	Tag      string `form:"tag"`
	Query    string `form:"q"`
	Sort     string `form:"sort"`
	Order    string `form:"order"`
	Page     int    `form:"page"`
	PageSize int    `form:"pagesize"`
}

func (r ListResourcesRequest) Options() types.ListResourceOptions {
	return types.ListResourceOptions{
		Tag:   r.Tag,
		Query: r.Query,
		Sort:  types.SortField(r.Sort),
		Order: types.SortOrder(r.Order),
	}
}

func (s *HttpSrv) ListResources(c *gin.Context) {
	var req ListResourcesRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	res, err := v1.NewResourceLogic(c, s.Core).List(req.Options(), req.Page, req.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, res)
}

type GetResourceRequest struct {
	Title string `form:"title" binding:"required"`
}

func (s *HttpSrv) GetResource(c *gin.Context) {
	var req GetResourceRequest
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	data, err := v1.NewResourceLogic(c, s.Core).Get(req.Title)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, data)
}

func (s *HttpSrv) CreateResource(c *gin.Context) {
	var req types.ResourceForm
	if err := utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	data, fieldErrs, err := v1.NewResourceLogic(c, s.Core).Create(req)
	if err != nil {
		response.APIError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		response.APIError(c, errors.New("api.CreateResource.Validate", i18n.ERROR_RESOURCE_INVALID, nil).
			Code(http.StatusBadRequest).WithData(fieldErrs))
		return
	}
	response.APISuccess(c, data)
}

// ImportResource accepts the JSON either as the request body or as a
// multipart "file" field and returns the prefilled form.
func (s *HttpSrv) ImportResource(c *gin.Context) {
	raw, err := readImport(c)
	if err != nil {
		response.APIError(c, err)
		return
	}

	form, err := v1.NewResourceLogic(c, s.Core).Import(raw)
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, form)
}

func readImport(c *gin.Context) ([]byte, error) {
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, errors.New("api.ImportResource.FormFile", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
		}
		if fh.Size > maxImportSize {
			return nil, errors.New("api.ImportResource.Size", i18n.ERROR_IMPORT_MALFORMED, nil).Code(http.StatusBadRequest)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, errors.New("api.ImportResource.Open", i18n.ERROR_INTERNAL, err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize))
	if err != nil {
		return nil, errors.New("api.ImportResource.ReadAll", i18n.ERROR_IMPORT_MALFORMED, err).Code(http.StatusBadRequest)
	}
	return raw, nil
}

func (s *HttpSrv) ListTags(c *gin.Context) {
	tags, err := v1.NewResourceLogic(c, s.Core).Tags()
	if err != nil {
		response.APIError(c, err)
		return
	}
	response.APISuccess(c, tags)
}
