package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/idilsaglam/pantry/internal/api"
	"github.com/idilsaglam/pantry/internal/auth"
	"github.com/idilsaglam/pantry/internal/model"
	"github.com/idilsaglam/pantry/internal/ui"
)

func doServe(args []string, opt Options) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	addr := fs.String("addr", ":8080", "listen address")
	if err := fs.Parse(args); err != nil {
		ui.Fail("serve: " + err.Error())
		return 2
	}

	s, err := openStore(opt)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	token, err := auth.Get(opt.Config.CredsFile)
	if err != nil {
		ui.Fail("auth: " + err.Error())
		return 1
	}

	logger := log.New(ui.Stderr, "pantry: ", log.LstdFlags)
	srv := api.NewServer(s, api.Options{
		Persist: func(b []model.Batch) error { return saveStore(opt, b) },
		Now:     opt.Now,
		Token:   token,
		Logger:  logger,
	})
	hs := &http.Server{
		Addr:              *addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if token == nil {
		logger.Println("warning: no API token configured, /api is open (see `pantry auth set`)")
	}
	logger.Printf("serving %s on %s", opt.Config.DataFile, *addr)

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			ui.Fail("serve: " + err.Error())
			return 1
		}
	case <-opt.Ctx.Done():
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(ctx); err != nil {
			ui.Fail(fmt.Sprintf("shutdown: %v", err))
			return 1
		}
		logger.Println("stopped")
	}
	return 0
}
