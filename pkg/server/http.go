package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	httpx "github.com/justinloveless/hub-page-builder-sub002/pkg/http"
	"github.com/justinloveless/hub-page-builder-sub002/pkg/log"
)

// Serve starts the HTTP server and returns a function that blocks until a
// shutdown signal arrives, then drains connections.
func Serve(conf httpx.Http, engine *gin.Engine) func() {
	addr := fmt.Sprintf("%s:%d", conf.Host, conf.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  time.Duration(conf.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(conf.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(conf.IdleTimeout) * time.Second,
	}

	go func() {
		log.Infow("http server started", "addr", addr)

		var err error
		if conf.TLS.CertFile != "" && conf.TLS.KeyFile != "" {
			err = srv.ListenAndServeTLS(conf.TLS.CertFile, conf.TLS.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	return func() {
		<-sc
		log.Info("server is shutting down...")

		c, cancel := context.WithTimeout(context.Background(), time.Second*time.Duration(conf.ShutdownTimeout))
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		if err := srv.Shutdown(c); err != nil {
			log.Errorf("server shutdown error: %v", err)
		}
		log.Info("http exit")
	}
}
