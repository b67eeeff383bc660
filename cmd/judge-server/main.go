package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minoj/internal/common/http/middleware"
	contestctl "minoj/internal/contest/controller"
	contestrepo "minoj/internal/contest/repository"
	contestsvc "minoj/internal/contest/service"
	"minoj/internal/judge/catalog"
	judgectl "minoj/internal/judge/controller"
	judgerepo "minoj/internal/judge/repository"
	"minoj/internal/judge/sandbox/runner"
	judgesvc "minoj/internal/judge/service"
	userctl "minoj/internal/user/controller"
	userrepo "minoj/internal/user/repository"
	"minoj/pkg/utils/logger"
)

const defaultConfigPath = "configs/judge_server.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	flag.Parse()

	appCfg, err := loadAppConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load app config failed: %v\n", err)
		return
	}

	if err := logger.Init(appCfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return
	}
	defer func() { _ = logger.Sync() }()

	cat := catalog.New(appCfg.Languages, appCfg.Problems)
	jobs := judgerepo.NewJobStore()
	users := userrepo.NewUserStore()
	contests := contestrepo.NewContestStore()

	admission := judgesvc.NewAdmission(cat, users, contests, jobs)
	pipeline := judgesvc.NewPipeline(runner.New(), appCfg.Judge.WorkRoot)
	judgeService, err := judgesvc.NewService(judgesvc.Config{
		Admission: admission,
		Pipeline:  pipeline,
		Catalog:   cat,
		Jobs:      jobs,
	})
	if err != nil {
		logger.Error(context.Background(), "build judge service failed", zap.Error(err))
		return
	}
	ranking := contestsvc.NewRankingEngine(cat, users, contests, jobs)

	httpServer := buildHTTPServer(appCfg, judgeService, users, contests, ranking)

	listener, err := net.Listen("tcp", appCfg.Server.Addr)
	if err != nil {
		logger.Error(context.Background(), "init http listener failed", zap.Error(err))
		return
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(context.Background(), "judge server started", zap.String("addr", appCfg.Server.Addr))
		errCh <- httpServer.Serve(listener)
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "http server stopped", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		logger.Info(context.Background(), "shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error(context.Background(), "http server shutdown failed", zap.Error(err))
	}
}

func buildHTTPServer(cfg *AppConfig, judgeService *judgesvc.Service, users *userrepo.UserStore, contests *contestrepo.ContestStore, ranking *contestsvc.RankingEngine) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.TraceContextMiddleware())
	router.Use(requestLogger())

	jobController := judgectl.NewJobController(judgeService)
	userController := userctl.NewUserController(users)
	contestController := contestctl.NewContestController(contests, ranking)

	router.POST("/jobs", jobController.PostJobs)
	router.GET("/jobs", jobController.GetJobs)
	router.GET("/jobs/:id", jobController.GetJobByID)
	router.PUT("/jobs/:id", jobController.PutJobByID)

	router.POST("/users", userController.PostUsers)
	router.GET("/users", userController.GetUsers)

	router.POST("/contests", contestController.PostContests)
	router.GET("/contests", contestController.GetContests)
	router.GET("/contests/:id", contestController.GetContestByID)
	router.GET("/contests/:id/ranklist", contestController.GetRanklist)

	return &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		logger.Info(
			c.Request.Context(),
			"request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
