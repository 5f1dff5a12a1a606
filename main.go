package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	v1 "github.com/xpense-app/backend/internal/controllers/v1"
	"github.com/xpense-app/backend/internal/models"
	"github.com/xpense-app/backend/internal/notify"
	"github.com/xpense-app/backend/internal/router"
	"github.com/xpense-app/backend/internal/sync"
	"github.com/xpense-app/backend/internal/sync/memory"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func main() {
	// Load the .env file if it exists
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create data directory
	dataDir := filepath.Join(".", "data")
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database. Connect also migrates all models.
	dsn, ok := os.LookupEnv("DB_DSN")
	if !ok {
		dsn = filepath.Join(dataDir, "gorm.db")
	}

	err = models.Connect(dsn)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Replication to the remote document store
	if err := sync.RegisterMetrics(); err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer sync.UnregisterMetrics()

	replicator := sync.NewReplicator(memory.New(), applyRemote, log.Logger)

	// Daily expense reminder
	scheduler := notify.NewLogScheduler(log.Logger)
	defer scheduler.Cancel()

	v1.Configure(replicator, scheduler)

	profile, err := models.LoadProfile(models.DB)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if profile.NotifyDaily {
		hour, minute := notify.DefaultHour, notify.DefaultMinute
		if at, ok := os.LookupEnv("REMINDER_TIME"); ok {
			t, err := time.Parse("15:04", at)
			if err != nil {
				log.Fatal().Msg("REMINDER_TIME must be a HH:MM wall clock time")
			}
			hour, minute = t.Hour(), t.Minute()
		}

		if err := scheduler.ScheduleDaily(hour, minute); err != nil {
			log.Error().Err(err).Msg("could not schedule the daily reminder")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sign in when a user is configured
	if uid, ok := os.LookupEnv("SYNC_UID"); ok {
		if err := replicator.SwitchUser(ctx, uid, snapshot); err != nil {
			log.Error().Err(err).Msg("replication could not be started")
		}
	}

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Msg("API_URL is not a valid URL")
	}

	r, teardown, err := router.Config(baseURL)
	defer teardown()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(r.Group("/"))

	log.Info().Msg("backend startup complete")

	port, ok := os.LookupEnv("PORT")
	if !ok {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}

// snapshot collects the local data for the initial upload to an empty
// remote ledger.
func snapshot() (sync.Snapshot, error) {
	transactions, err := models.AllTransactions()
	if err != nil {
		return sync.Snapshot{}, err
	}

	budgets, err := models.AllBudgets()
	if err != nil {
		return sync.Snapshot{}, err
	}

	profile, err := models.LoadProfile(models.DB)
	if err != nil {
		return sync.Snapshot{}, err
	}

	expenses := make(map[string]any, len(transactions))
	for _, transaction := range transactions {
		expenses[transaction.ID.String()] = transaction
	}

	budgetDocuments := make(map[string]any, len(budgets))
	for _, budget := range budgets {
		budgetDocuments[budget.ID.String()] = budget
	}

	return sync.Snapshot{
		Expenses: expenses,
		Budgets:  budgetDocuments,
		Settings: profile,
	}, nil
}

// applyRemote replaces a local collection with the remote document set.
// Remote data wins wholesale, there is no merging.
func applyRemote(collection string, documents map[string]json.RawMessage) {
	var err error

	switch collection {
	case sync.CollectionExpenses:
		err = replaceAll[models.Transaction](documents)
	case sync.CollectionBudgets:
		err = replaceAll[models.Budget](documents)
	case sync.CollectionSettings:
		err = applySettings(documents)
	}

	if err != nil {
		log.Error().Err(err).Str("collection", collection).Msg("applying remote documents failed")
	}
}

func replaceAll[T any](documents map[string]json.RawMessage) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		// The delete must be unscoped: the remote documents keep their
		// ids, a soft-deleted row with the same id would block the
		// insert below.
		var resource T
		if err := tx.Unscoped().Where("1 = 1").Delete(&resource).Error; err != nil {
			return err
		}

		for _, document := range documents {
			var row T
			if err := json.Unmarshal(document, &row); err != nil {
				return err
			}

			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func applySettings(documents map[string]json.RawMessage) error {
	document, ok := documents[sync.SettingsDocID]
	if !ok {
		return nil
	}

	profile, err := models.LoadProfile(models.DB)
	if err != nil {
		return err
	}

	var update models.Profile
	if err := json.Unmarshal(document, &update); err != nil {
		return err
	}

	return models.DB.Model(&profile).Select("*").Omit("id", "created_at").Updates(update).Error
}
