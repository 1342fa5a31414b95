package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"city-geo-events/internal/router"
	"city-geo-events/internal/session"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address; overrides server.addr"},
		},
		Action: func(c *cli.Context) error {
			a, err := build(c)
			if err != nil {
				return err
			}
			addr := a.cfg.Server.Addr
			if c.IsSet("addr") {
				addr = c.String("addr")
			}

			sessions := session.NewRegistry(a.cache, session.Options{
				DefaultCity: a.cfg.DefaultCity,
				DisplayCap:  a.cfg.Display.MaxMarkers,
				Location:    a.cfg.Location(),
				Logger:      a.log,
			})

			srv := &http.Server{
				Addr: addr,
				Handler: router.NewRouter(router.Options{
					Cache:    a.cache,
					Sessions: sessions,
					Explorer: a.client,
					Location: a.cfg.Location(),
					Gatherer: a.registry,
					Logger:   a.log,
				}),
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				a.log.Info("starting server", map[string]any{
					"addr":      addr,
					"api":       a.cfg.API.BaseURL,
					"cache_ttl": a.cfg.Cache.TTL.String(),
				})
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.log.Info("shutting down", nil)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
