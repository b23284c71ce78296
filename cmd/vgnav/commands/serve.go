package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vugu/vgnav/spa"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the built application with client route fallback",
		Long: `Serve the built application.  Files under the assets prefix come from the
distribution directory, unknown API paths get a JSON 404 and every other path
gets the application shell, with status 404 if no route matches it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {

			srv, err := a.newServer()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.listen(ctx, srv)
		},
	}

	f := cmd.Flags()
	f.String("addr", ":8080", "listen address")
	f.String("dist", "./frontend/dist", "directory of the built application")
	f.String("api-prefix", spa.DefaultAPIPrefix, "URL prefix of API paths")
	f.String("assets-prefix", spa.DefaultAssetsPrefix, "URL prefix of static assets")
	f.StringSlice("cors-origin", nil, "allowed CORS origins (default all)")
	f.Bool("access-log", true, "write an access log to stderr")
	for _, name := range []string{"addr", "dist", "api-prefix", "assets-prefix", "cors-origin", "access-log"} {
		must(a.v.BindPFlag(name, f.Lookup(name)))
	}

	return cmd
}

func (a *app) newServer() (*http.Server, error) {

	rt, err := a.loadRoutes()
	if err != nil {
		return nil, err
	}

	cfg := spa.Config{
		Routes:         rt,
		DistDir:        a.v.GetString("dist"),
		APIPrefix:      a.v.GetString("api-prefix"),
		AssetsPrefix:   a.v.GetString("assets-prefix"),
		AllowedOrigins: a.v.GetStringSlice("cors-origin"),
		Logger:         a.logger,
	}
	if a.v.GetBool("access-log") {
		cfg.AccessLog = os.Stderr
	}

	s, err := spa.New(cfg)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              a.v.GetString("addr"),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// listen serves until ctx is done, then shuts down gracefully.
func (a *app) listen(ctx context.Context, srv *http.Server) error {

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
