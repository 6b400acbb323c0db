package handler

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	v1 "github.com/resourcehub/resourcehub/app/logic/v1"
	"github.com/resourcehub/resourcehub/app/response"
	"github.com/resourcehub/resourcehub/pkg/errors"
	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/pagination"
	"github.com/resourcehub/resourcehub/pkg/types"
)

const IndexTemplate = "index.html"

type resourceCard struct {
	types.Resource
	TagList []string
	Star    *types.StarWidget
}

type pageLink struct {
	Num      int
	URL      string
	Current  bool
	Ellipsis bool
}

type indexPage struct {
	Lang      string
	Title     string
	Tagline   string
	Message   string
	Filter    ListResourcesRequest
	Tags      []string
	Sorts     []types.SortField
	Result    *types.ResourceListResult
	Cards     []resourceCard
	Pages     []pageLink
	Form      types.ResourceForm
	Errors    types.FieldErrors
	Selected  string
	GraphJSON template.JS
}

// Index renders the catalog page. The form starts empty unless a failed
// submission is being re-rendered.
func (s *HttpSrv) Index(c *gin.Context) {
	var req ListResourcesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.APIError(c, errors.New("page.Index.ShouldBindQuery", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
		return
	}

	var message string
	if c.Query("added") != "" {
		message = response.Localize(c, i18n.MESSAGE_RESOURCE_ADDED)
	}
	s.renderIndex(c, http.StatusOK, req, types.ResourceForm{}, nil, message)
}

// SubmitResource handles the HTML form. A valid submission redirects back to
// the page so the form is cleared; an invalid one re-renders with the input.
func (s *HttpSrv) SubmitResource(c *gin.Context) {
	var form types.ResourceForm
	if err := c.ShouldBind(&form); err != nil {
		response.APIError(c, errors.New("page.SubmitResource.ShouldBind", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest))
		return
	}

	_, fieldErrs, err := v1.NewResourceLogic(c, s.Core).Create(form)
	if err != nil {
		response.APIError(c, err)
		return
	}
	if len(fieldErrs) > 0 {
		s.renderIndex(c, http.StatusBadRequest, ListResourcesRequest{}, form, response.LocalizeFieldErrors(c, fieldErrs), "")
		return
	}
	c.Redirect(http.StatusSeeOther, "/?added=1")
}

func (s *HttpSrv) renderIndex(c *gin.Context, status int, req ListResourcesRequest, form types.ResourceForm, fieldErrs types.FieldErrors, message string) {
	if req.Page < 1 {
		req.Page = 1
	}
	site := s.Core.Cfg().Site

	resourceLogic := v1.NewResourceLogic(c, s.Core)
	result, err := resourceLogic.List(req.Options(), req.Page, site.PageSize)
	if err != nil {
		response.APIError(c, err)
		return
	}
	tags, err := resourceLogic.Tags()
	if err != nil {
		response.APIError(c, err)
		return
	}

	selected := c.Query("selected")
	var graphData *types.NetworkData
	if selected != "" {
		graphData, err = v1.NewGraphLogic(c, s.Core).Selected(selected)
	} else {
		graphData, err = v1.NewGraphLogic(c, s.Core).Network()
	}
	if err != nil {
		response.APIError(c, err)
		return
	}
	graphRaw, err := json.Marshal(graphData)
	if err != nil {
		response.APIError(c, errors.New("page.renderIndex.Marshal", i18n.ERROR_INTERNAL, err))
		return
	}

	starLogic := v1.NewStarLogic(c, s.Core)
	cards := lo.Map(result.List, func(r types.Resource, _ int) resourceCard {
		card := resourceCard{Resource: r, TagList: r.TagSet()}
		if r.Repo != "" {
			star, err := starLogic.Widget(r.Repo)
			if err != nil {
				slog.Warn("failed to load star widget", slog.String("title", r.Title), slog.String("repo", r.Repo), slog.String("error", err.Error()))
			}
			card.Star = star
		}
		return card
	})

	c.HTML(status, IndexTemplate, indexPage{
		Lang:      response.GetLangFromRequestOrDefault(c),
		Title:     site.Title,
		Tagline:   site.Tagline,
		Message:   message,
		Filter:    req,
		Tags:      tags,
		Sorts:     []types.SortField{types.SORT_TITLE, types.SORT_DESCRIPTION, types.SORT_URL, types.SORT_CREATED, types.SORT_UPDATED},
		Result:    result,
		Cards:     cards,
		Pages:     pageLinks(req, result),
		Form:      form,
		Errors:    fieldErrs,
		Selected:  selected,
		GraphJSON: template.JS(graphRaw),
	})
}

func pageLinks(req ListResourcesRequest, result *types.ResourceListResult) []pageLink {
	query := url.Values{}
	for k, v := range map[string]string{"tag": req.Tag, "q": req.Query, "sort": req.Sort, "order": req.Order} {
		if v != "" {
			query.Set(k, v)
		}
	}

	return lo.Map(result.Pages, func(num int, _ int) pageLink {
		if num == pagination.Ellipsis {
			return pageLink{Ellipsis: true}
		}
		query.Set("page", strconv.Itoa(num))
		return pageLink{
			Num:     num,
			URL:     "/?" + query.Encode(),
			Current: num == result.Page,
		}
	})
}
