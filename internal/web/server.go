package web

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	units "github.com/docker/go-units"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bigredeye/studentmanager/internal/config"
	"github.com/bigredeye/studentmanager/internal/view"
	"github.com/bigredeye/studentmanager/pkg/client/students"
	"github.com/bigredeye/studentmanager/web"
)

const shutdownTimeout = time.Second * 5

type server struct {
	config *config.Config
	logger *zap.Logger

	client *students.Client
	views  *viewCache
}

func newServer(config *config.Config, logger *zap.Logger) (*server, error) {
	client, err := students.NewClient(config.Backend.BaseURL,
		students.WithTimeout(config.Backend.Timeout),
		students.WithRetryCount(config.Backend.RetryCount),
		students.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create students client")
	}

	s := &server{
		config: config,
		logger: logger,
		client: client,
	}
	s.views = newViewCache(config.Sessions.MaxViews, config.Sessions.TTL, func() *view.StudentManager {
		return view.NewStudentManager(client, logger)
	})
	return s, nil
}

func humanizeSince(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return units.HumanDuration(time.Since(t)) + " ago"
}

func buildHTMLTemplates(funcMap template.FuncMap) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcMap).ParseFS(web.StaticTemplates, "*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "Failed to collect html templates")
	}
	return tmpl, nil
}

func (s *server) router() (*gin.Engine, error) {
	funcs := template.FuncMap{
		"ago": humanizeSince,
	}
	tmpl, err := buildHTMLTemplates(funcs)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build html templates")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(ginzap.Ginzap(s.logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))

	r.SetHTMLTemplate(tmpl)

	if err := setupSessions(s, r); err != nil {
		return nil, errors.Wrap(err, "Failed to setup sessions")
	}
	setupStudentsService(s, r)

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong "+fmt.Sprint(time.Now().Unix()))
	})

	r.StaticFS("/static", http.FS(web.StaticContent))

	return r, nil
}

func (s *server) run(ctx context.Context) error {
	r, err := s.router()
	if err != nil {
		return err
	}
	defer s.views.stop()

	srv := &http.Server{
		Addr:    s.config.Server.ListenAddress,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting server", zap.String("bind_address", s.config.Server.ListenAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
