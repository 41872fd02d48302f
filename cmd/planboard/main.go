package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/johns/planboard/internal/config"
	"github.com/johns/planboard/internal/hub"
	"github.com/johns/planboard/internal/plan"
	"github.com/johns/planboard/internal/todo"
	"github.com/johns/planboard/internal/web"
)

const version = "0.1.0"

func main() {
	port := flag.Int("port", 0, "listen port (overrides config)")
	plansDir := flag.String("plans", "", "plans directory (overrides config)")
	todosDir := flag.String("todos", "", "todos directory (overrides config)")
	view := flag.String("view", "", "initial dashboard view: plans or todos")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("planboard v%s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("load config: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *plansDir != "" {
		cfg.PlansDir = *plansDir
	}
	if *todosDir != "" {
		cfg.TodosDir = *todosDir
	}
	if *view != "" {
		cfg.InitialView = *view
	}
	if err := cfg.Validate(); err != nil {
		fatal("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	plans, err := plan.NewWatcher(cfg.PlansDir)
	if err != nil {
		fatal("watch plans: %v", err)
	}
	defer plans.Close()
	plans.Start()

	todos, err := todo.NewWatcher(cfg.TodosDir)
	if err != nil {
		fatal("watch todos: %v", err)
	}
	defer todos.Close()
	todos.Start()

	h := hub.New()
	go h.Run(ctx, plans.Updates(), todos.Updates())

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: web.NewServer(plans, todos, h, cfg.InitialView).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("planboard listening on http://localhost%s", cfg.Addr())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("warning: shutdown: %v", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fatal("serve: %v", err)
		}
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "planboard: "+format+"\n", args...)
	os.Exit(1)
}
