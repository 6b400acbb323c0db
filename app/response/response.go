package response

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resourcehub/resourcehub/pkg/errors"
	"github.com/resourcehub/resourcehub/pkg/i18n"
	"github.com/resourcehub/resourcehub/pkg/types"
	"github.com/resourcehub/resourcehub/pkg/utils"
)

func ProvideResponseLocalizer(l i18n.Localizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("i18n", l)
		c.Set(LangKey, i18n.Match(c.Request.Header.Get("Accept-Language")))
	}
}

func InjectResponseLocalizer(c *gin.Context) i18n.Localizer {
	return c.MustGet("i18n").(i18n.Localizer)
}

// 常量定义
const (
	RequestIDKey = "request_id"
	ResponseKey  = "response_key"
	LangKey      = "lang"
)

// Response 响应结构体定义
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data"`
}

// Meta 响应meta定义
type Meta struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// ErrorData carries per-field validation messages.
type ErrorData struct {
	Errors any `json:"errors"`
}

func GetLangFromRequestOrDefault(c *gin.Context) string {
	if lang := c.GetString(LangKey); lang != "" {
		return lang
	}
	return i18n.Match(c.Request.Header.Get("Accept-Language"))
}

// Localize translates id into the request language.
func Localize(c *gin.Context, id string) string {
	return InjectResponseLocalizer(c).Get(GetLangFromRequestOrDefault(c), id)
}

// LocalizeFieldErrors translates each message key of errs.
func LocalizeFieldErrors(c *gin.Context, errs types.FieldErrors) types.FieldErrors {
	res := make(types.FieldErrors, len(errs))
	for field, id := range errs {
		res[field] = Localize(c, id)
	}
	return res
}

// APIError api响应失败
func APIError(c *gin.Context, err error) {
	c.Abort()

	res := c.MustGet(ResponseKey).(*Response)
	if cerr, ok := errors.As(err); ok {
		res.Meta.Code = cerr.GetCode()
		res.Meta.Message = Localize(c, cerr.Message())
		switch data := cerr.Data().(type) {
		case nil:
		case types.FieldErrors:
			res.Data = ErrorData{Errors: LocalizeFieldErrors(c, data)}
		default:
			res.Data = ErrorData{Errors: data}
		}
	} else {
		res.Meta.Code = http.StatusInternalServerError
		res.Meta.Message = Localize(c, i18n.ERROR_INTERNAL)
	}

	c.JSON(res.Meta.Code, res)
	printErrorLog(c, res, err)
}

func printErrorLog(c *gin.Context, res *Response, err error) {
	slog.Error("response error",
		slog.String("request_uri", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.String("request_id", res.Meta.RequestID),
		slog.Int("code", res.Meta.Code),
		slog.String("client_ip", c.ClientIP()),
		slog.Int64("end_time", time.Now().Unix()),
		slog.String("error", err.Error()),
	)
}

func printSuccessLog(c *gin.Context, res *Response) {
	params := c.Request.URL.Query().Encode()
	if c.Request.Method == http.MethodPost && c.ContentType() == gin.MIMEPOSTForm {
		c.Request.ParseForm()
		params = c.Request.PostForm.Encode()
	}

	slog.Info("request success",
		slog.String("request_uri", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.String("request_id", res.Meta.RequestID),
		slog.String("params", params),
		slog.Int64("end_time", time.Now().Unix()),
	)
}

// APISuccess api响应成功
func APISuccess(c *gin.Context, response interface{}) {
	c.Abort()
	res := c.MustGet(ResponseKey).(*Response)
	res.Meta.Code = http.StatusOK
	if response != nil {
		res.Data = response
	}
	c.JSON(http.StatusOK, res)
	printSuccessLog(c, res)
}

// NewResponse 为每个请求创建响应体并生成请求ID
func NewResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = utils.GenRandomID()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-Id", requestID)
		c.Set(ResponseKey, &Response{
			Meta: Meta{
				RequestID: requestID,
			},
		})
	}
}
