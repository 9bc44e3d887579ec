package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zdnscloud/cement/log"

	"github.com/zdnscloud/kvsession/httpapi"
	"github.com/zdnscloud/kvsession/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve local databases over gRPC, and HTTP when server.http_addr is set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := newLocalSession(cfg)
		if err != nil {
			return err
		}
		defer closeFn()

		srv, err := server.New(cfg.Server.Addr, s)
		if err != nil {
			return err
		}

		errCh := make(chan error, 2)
		go func() {
			errCh <- srv.Start()
		}()

		var httpSrv *http.Server
		if cfg.Server.HTTPAddr != "" {
			httpSrv = &http.Server{
				Addr:              cfg.Server.HTTPAddr,
				Handler:           httpapi.New(s),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				log.Infof("http gateway listening on %s", cfg.Server.HTTPAddr)
				if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			log.Infof("receive signal %s, shutting down", sig.String())
		case err = <-errCh:
			if err != nil {
				log.Errorf("server stopped: %s", err.Error())
			}
		}

		if httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpSrv.Shutdown(ctx); err != nil {
				log.Warnf("shutdown http gateway failed: %s", err.Error())
			}
		}
		srv.Stop()
		return err
	},
}
