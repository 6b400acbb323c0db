package response

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcehub/resourcehub/pkg/errors"
	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/types"
)

func newEngine(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(ProvideResponseLocalizer(i18n.NewLocalizer(i18n.LANGUAGE_CN, i18n.DEFAULT_LANG)), NewResponse())
	e.GET("/", handler)
	return e
}

func do(t *testing.T, e *gin.Engine, lang string) (*httptest.ResponseRecorder, Response) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	var res Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return w, res
}

func TestAPISuccess(t *testing.T) {
	e := newEngine(func(c *gin.Context) {
		APISuccess(c, map[string]string{"hello": "world"})
	})

	w, res := do(t, e, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, res.Meta.Code)
	assert.NotEmpty(t, res.Meta.RequestID)
	assert.Equal(t, res.Meta.RequestID, w.Header().Get("X-Request-Id"))
	assert.Equal(t, map[string]any{"hello": "world"}, res.Data)
}

func TestAPIErrorLocalized(t *testing.T) {
	e := newEngine(func(c *gin.Context) {
		err := errors.New("test", i18n.VALIDATE_TITLE_REQUIRED, nil).Code(http.StatusBadRequest).
			WithData(map[string]string{"title": "Title is required"})
		APIError(c, errors.Trace("handler", err))
	})

	w, res := do(t, e, "en-US,en;q=0.9")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title is required", res.Meta.Message)
	assert.Equal(t, map[string]any{"errors": map[string]any{"title": "Title is required"}}, res.Data)

	_, res = do(t, e, "zh-CN")
	assert.Equal(t, "标题不能为空", res.Meta.Message)
}

func TestAPIErrorPlain(t *testing.T) {
	e := newEngine(func(c *gin.Context) {
		APIError(c, stderrors.New("database exploded"))
	})

	w, res := do(t, e, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, res.Meta.Message, "exploded")
}

func TestAPIErrorFieldErrors(t *testing.T) {
	e := newEngine(func(c *gin.Context) {
		APIError(c, errors.New("test", i18n.ERROR_RESOURCE_INVALID, nil).Code(http.StatusBadRequest).
			WithData(types.FieldErrors{"url": i18n.VALIDATE_URL_INVALID}))
	})

	w, res := do(t, e, "en")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fix the highlighted fields", res.Meta.Message)
	assert.Equal(t, map[string]any{"errors": map[string]any{"url": "Invalid URL format"}}, res.Data)
}
