package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resourcehub/resourcehub/app/core"
	"github.com/resourcehub/resourcehub/app/response"
	"github.com/resourcehub/resourcehub/cmd/service/handler"
	"github.com/resourcehub/resourcehub/cmd/service/middleware"
	"github.com/resourcehub/resourcehub/cmd/service/tpls"
	"github.com/resourcehub/resourcehub/pkg/metrics"
)

func serve(core *core.Core) error {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	srv := &http.Server{
		Addr:    core.Cfg().Addr,
		Handler: core.HttpEngine(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sigs:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func GetIPLimitBuilder(appCore *core.Core) middleware.LimiterFunc {
	return func(key string, opts ...core.LimitOption) gin.HandlerFunc {
		return middleware.UseLimit(appCore, key, func(c *gin.Context) string {
			return key + ":" + c.ClientIP()
		}, opts...)
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	ipLimit := GetIPLimitBuilder(s.Core)

	s.Engine.Use(gin.Recovery())
	s.Engine.SetHTMLTemplate(tpls.Load())
	s.Engine.GET("/metrics", metrics.DefaultExportHandler())

	s.Engine.Use(middleware.I18n(), response.NewResponse())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.Metrics(s.Core))

	s.Engine.GET("/", s.Index)
	s.Engine.POST("/resources", ipLimit("write"), s.SubmitResource)

	apiV1 := s.Engine.Group("/api/v1")
	{
		resource := apiV1.Group("/resource")
		{
			resource.GET("/list", s.ListResources)
			resource.GET("", s.GetResource)
			resource.POST("", ipLimit("write"), s.CreateResource)
			resource.POST("/import", ipLimit("write"), s.ImportResource)
		}
		apiV1.GET("/tags", s.ListTags)

		graph := apiV1.Group("/graph")
		{
			graph.GET("", s.GetNetwork)
			graph.GET("/selected", s.GetSelectedNetwork)
		}

		star := apiV1.Group("/star")
		{
			star.GET("", s.GetStarWidget)
			star.GET("/live", ipLimit("star_live"), s.GetLiveStarWidget)
		}

		apiV1.GET("/readme", s.GetReadme)
	}
}
