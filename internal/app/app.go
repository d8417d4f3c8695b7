package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/promisenxu/sudoku-server/internal/config"
	"github.com/promisenxu/sudoku-server/internal/middleware"
	"github.com/promisenxu/sudoku-server/internal/session"
)

type App struct {
	log      *logrus.Logger
	cfg      config.Config
	router   *http.ServeMux
	sessions *session.Store
	cookies  *config.Cookies
	ws       *config.WebSocket
}

func New(log *logrus.Logger, cfg config.Config) *App {
	return &App{
		log:      log,
		cfg:      cfg,
		router:   http.NewServeMux(),
		sessions: session.NewStore(),
	}
}

func (a *App) Start(ctx context.Context) error {
	jwt, err := config.NewJWT(a.cfg.Jwt)
	if err != nil {
		return err
	}
	if jwt == nil {
		a.log.Warn("no JWT keys configured, all games will be anonymous")
	}

	a.cookies = config.NewCookies(a.cfg, jwt)
	a.ws = config.NewWebSocket()

	a.loadRoutes()

	server := &http.Server{
		Addr: a.cfg.Addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Auth(a.log, a.cookies),
			middleware.Logging(a.log),
		),
	}

	a.log.Infof("ready to serve @ %s", a.cfg.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
