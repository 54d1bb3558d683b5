package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/studio-site-backend/admin"
	api "github.com/rpupo63/studio-site-backend/api"
	"github.com/rpupo63/studio-site-backend/config"
	"github.com/rpupo63/studio-site-backend/content"
	"github.com/rpupo63/studio-site-backend/database"
	"github.com/rpupo63/studio-site-backend/identity"
	"github.com/rpupo63/studio-site-backend/models"
	"github.com/rpupo63/studio-site-backend/realtime"
	"github.com/rpupo63/studio-site-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, err := config.LoadSSM(ctx, config.New())
	if err != nil {
		fmt.Printf("Error loading SSM parameters: %v\n", err)
		os.Exit(1)
	}

	if level, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, dsn, err := database.Open(c)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		fmt.Println("Generating models and query helpers...")
		if err := models.GenerateModels(db, config.GetString(c, "GENERATE_OUT_PATH", "./generated")); err != nil {
			fmt.Printf("Error generating models: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		reports, err := models.ColumnReport(db)
		if err != nil {
			fmt.Printf("Error generating column report: %v\n", err)
			os.Exit(1)
		}
		models.PrintColumnReport(os.Stdout, reports)
		return
	}

	if config.GetBool(c, "AUTO_MIGRATE", true) {
		if err := models.Migrate(db); err != nil {
			fmt.Printf("Error migrating schema: %v\n", err)
			os.Exit(1)
		}
	}

	currentDB := database.New(db)

	hub := realtime.NewHub()

	// With the database listener running, writes reach the hub through
	// Postgres triggers, so handlers must not publish a second copy.
	var writePublisher realtime.Publisher = hub
	realtimeEnabled := config.GetBool(c, "REALTIME_ENABLED", true)
	if realtimeEnabled {
		if err := currentDB.InstallTriggers(); err != nil {
			fmt.Printf("Error installing change triggers: %v\n", err)
			os.Exit(1)
		}
		writePublisher = realtime.NopPublisher{}
	}

	store := content.NewStore(currentDB.ContentSectionRepo(), hub)
	if err := store.Start(ctx); err != nil {
		fmt.Printf("Error starting content store: %v\n", err)
		os.Exit(1)
	}
	defer store.Stop()

	catalog := services.NewProjectCatalog(currentDB.ProjectRepo(), currentDB.ReviewRepo())

	identityService, err := identity.NewServiceFromConfig(c, hub)
	if err != nil {
		fmt.Printf("Error configuring identity service: %v\n", err)
		os.Exit(1)
	}

	gate := admin.NewGate(identityService, currentDB.UserRoleRepo())
	registry := admin.NewRegistry(gate, admin.PanelFactories(admin.Sources{
		Orders:   currentDB.OrderRepo(),
		Messages: currentDB.MessageRepo(),
		Reviews:  currentDB.ReviewRepo(),
		Sections: store,
		Projects: catalog,
		Users:    currentDB.UserRoleRepo(),
	}))
	if err := registry.Listen(hub); err != nil {
		fmt.Printf("Error subscribing admin registry: %v\n", err)
		os.Exit(1)
	}
	defer registry.Close()

	// Every in-process subscriber is registered; start feeding database changes.
	if realtimeEnabled {
		listener := realtime.NewListener(dsn, database.ChangeChannel, hub)
		go listener.Run(ctx)
	}

	dispatcher := services.NewDispatcherFromConfig(c)
	log.Info().Strs("channels", dispatcher.Channels()).Msg("Notification channels configured")

	deps := api.Dependencies{
		Sections:    store,
		SectionRepo: currentDB.ContentSectionRepo(),
		Catalog:     catalog,
		ProjectRepo: currentDB.ProjectRepo(),
		ReviewRepo:  currentDB.ReviewRepo(),
		OrderRepo:   currentDB.OrderRepo(),
		MessageRepo: currentDB.MessageRepo(),
		RoleRepo:    currentDB.UserRoleRepo(),
		Notifier:    dispatcher,
		Gate:        gate,
		Shells:      registry,
		Identity:    identityService,
		Publisher:   writePublisher,
	}

	if media, err := services.NewMediaStore(ctx, c); err != nil {
		log.Warn().Err(err).Msg("Media uploads disabled")
	} else {
		deps.Media = media
	}

	// Both the server and the signal listener may report; neither should block.
	errChannel := make(chan error, 2)

	server, err := api.NewServer(deps, c)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	cancel()
	server.ShutdownGracefully(30 * time.Second)
	hub.Wait()
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
