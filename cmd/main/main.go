package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lotus-ge/src/analysis"
	"lotus-ge/src/collector"
	"lotus-ge/src/config"
	"lotus-ge/src/data_source/wiki"
	"lotus-ge/src/helpers"
	"lotus-ge/src/interfaces"
	"lotus-ge/src/logger"
	"lotus-ge/src/models"
	"lotus-ge/src/network"
	"lotus-ge/src/server"
	"lotus-ge/src/storage"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.Name)

	// Setup storage
	var store interfaces.IMarketStore

	switch config.Storage.DBType {
	case "postgres":
		store, err = storage.NewPostgresStore(config.MConfig, appLogger)
	default:
		// Default to SQLite
		store, err = storage.NewSQLiteStore(config.MConfig, appLogger)
	}

	if err != nil {
		appLogger.Critical("Failed to init store: %v", err)
	}
	if err := store.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate store: %v", err)
	}
	defer store.Close()

	// Setup components
	var networkManager interfaces.INetworkManager = network.NewNetworkManager(config.MConfig, appLogger)
	var source interfaces.IPriceSource = wiki.NewWikiPriceSource(config.MConfig, networkManager)

	aggregator := analysis.NewStatsAggregator(store, models.DefaultReportWindows(), appLogger)
	views := analysis.NewMasterViewBuilder(store, appLogger)
	runner := collector.NewCollector(config.MConfig, store, source, aggregator, views, appLogger)

	var srv interfaces.IDataExchanger = server.NewAPIServer(config.MConfig, appLogger)

	// Start server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	runCycle := func() {
		summary, view, err := runner.RunCycle()
		if err != nil {
			if helpers.IsTransport(err) {
				// The exchange is unreachable, nothing useful can continue.
				appLogger.Critical("Collection aborted: %v", err)
			}
			appLogger.Error("Cycle failed: %v", err)
			return
		}
		srv.UpdateMasterView(view)
		srv.UpdateSummary(summary)
		srv.Broadcast(summary)
	}

	appLogger.Info("Starting collection loop...")
	runCycle()

	ticker := time.NewTicker(time.Duration(config.Collector.UpdateIntervalSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runCycle()

		case <-quit:
			appLogger.Info("Shutting down...")
			return
		}
	}
}
