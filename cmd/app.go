package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/misterclayt0n/lazaro-planner/internal/api"
	"github.com/misterclayt0n/lazaro-planner/internal/config"
	"github.com/misterclayt0n/lazaro-planner/internal/logger"
	"github.com/misterclayt0n/lazaro-planner/internal/models"
	"github.com/misterclayt0n/lazaro-planner/internal/router"
	"github.com/misterclayt0n/lazaro-planner/internal/session"
	"github.com/misterclayt0n/lazaro-planner/internal/storage"
	"github.com/misterclayt0n/lazaro-planner/internal/utils"
	"github.com/misterclayt0n/lazaro-planner/internal/views"
	"github.com/misterclayt0n/lazaro-planner/internal/workouts"
)

// application holds everything a command needs, wired in dependency order:
// config, logger, session store, API client, router, controller.
type application struct {
	cfg         *config.Config
	store       *session.Store
	client      *api.Client
	router      *router.Router
	controller  *workouts.Controller
	storage     *storage.Storage   // nil when the token lives in session.toml
	sessionFile *utils.SessionFile // nil when a database is configured
	out         io.Writer

	// Options for the planned-workouts view, set by the workouts command.
	listOptions views.ListOptions
}

// clientConfig feeds the API client from the config and the live session.
type clientConfig struct {
	cfg   *config.Config
	store *session.Store
}

func (c clientConfig) GetServerURL() string { return c.cfg.Server.URL }
func (c clientConfig) GetToken() string     { return c.store.Current().Token }

func newApplication(configPath, level string, out io.Writer) (*application, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if level == "" {
		level = cfg.Log.Level
	}
	logger.Init(level, os.Stderr)

	a := &application{cfg: cfg, out: out}

	persister, err := a.persister()
	if err != nil {
		return nil, err
	}
	a.store = session.NewStore(session.WithPersister(persister))
	if _, err := a.store.Restore(); err != nil {
		// A broken token store should not block public commands.
		log.Warn().Err(err).Msg("could not restore session")
	}

	timeout, err := cfg.Server.TimeoutDuration()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.client = api.NewClient(clientConfig{cfg: cfg, store: a.store}, api.ClientOptions{
		InsecureSkipVerify: cfg.Server.InsecureSkipVerify,
		RetryAttempts:      cfg.Server.RetryAttempts,
		RetryDelay:         api.DefaultRetryDelay,
		Timeout:            timeout,
	})

	a.router = router.New(a.store, router.PathPlannedWorkouts)
	a.controller = workouts.NewController(a.client, a.store, a.router)
	a.registerRoutes()

	return a, nil
}

func (a *application) persister() (session.Persister, error) {
	if a.cfg.DB.ConnectionString != "" {
		st, err := storage.NewStorage(a.cfg.DB.ConnectionString)
		if err != nil {
			return nil, err
		}
		a.storage = st
		return st, nil
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	a.sessionFile = utils.NewSessionFile(dir)
	return a.sessionFile, nil
}

func (a *application) registerRoutes() {
	loc := a.cfg.Display.Location()

	a.router.Handle(router.RouteLogin, router.PathLogin, false, func(router.Params) router.View {
		return views.LoginView{}
	})
	a.router.Handle(router.RouteRegister, router.PathRegister, false, func(router.Params) router.View {
		return views.RegisterView{}
	})
	a.router.Handle(router.RoutePlannedWorkouts, router.PathPlannedWorkouts, true, func(router.Params) router.View {
		return &views.PlannedWorkoutsView{Controller: a.controller, Location: loc, Options: a.listOptions}
	})
	a.router.Handle(router.RouteAddWorkout, router.PathAddWorkout, true, func(router.Params) router.View {
		return views.AddWorkoutView{}
	})
	a.router.Handle(router.RouteEditWorkout, router.PathEditWorkout, true, func(p router.Params) router.View {
		return &views.WorkoutView{Controller: a.controller, Location: loc, Title: "Edit Workout", ID: models.WorkoutID(p["id"])}
	})
	a.router.Handle(router.RouteStartWorkout, router.PathStartWorkout, true, func(p router.Params) router.View {
		return &views.WorkoutView{Controller: a.controller, Location: loc, Title: "Start Workout", ID: models.WorkoutID(p["id"])}
	})
}

func (a *application) Close() {
	if a.router != nil {
		a.router.Close()
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}
}
