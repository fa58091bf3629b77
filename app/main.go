package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/group2/meetingbank-etl/app/api"
	"github.com/group2/meetingbank-etl/app/cfg"
	"github.com/group2/meetingbank-etl/app/source"
	"github.com/group2/meetingbank-etl/app/tasks"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	log.Printf("Starting MeetingBank ETL (version %s)...", appConfig.Version)

	for _, dir := range []string{
		appConfig.RawDir(), appConfig.CleanedDir(),
		appConfig.ProcessedDir(), appConfig.ReportsDir(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create data directory %s: %v", dir, err)
		}
	}

	fetcher := source.NewFetcher(appConfig.UserAgent, appConfig.HFToken)
	runner := tasks.NewRunner(appConfig, fetcher)

	if appConfig.RunOnce {
		runOnce(runner, appConfig.InputFile)
		return
	}

	serve(runner, appConfig)
}

// runOnce executes a single pipeline run and prints the aggregated result as
// JSON, the contract orchestrators consume when they exec the binary.
func runOnce(runner *tasks.Runner, inputFile string) {
	ctx := context.Background()

	var result tasks.PipelineResult
	if inputFile != "" {
		result = runner.RunFromFile(ctx, inputFile)
	} else {
		result = runner.Run(ctx)
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal pipeline result: %v", err)
	}
	fmt.Println(string(output))

	if !result.Success {
		os.Exit(1)
	}
}

func serve(runner *tasks.Runner, appConfig *cfg.Cfg) {
	handler := api.NewHandler(runner, appConfig.Version)
	server := api.NewServer(handler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute, // pipeline runs are synchronous
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appConfig.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appConfig.Port)
		log.Printf("  Statistics:    http://localhost:%s/stats", appConfig.Port)
		if appConfig.APIAccessKey != "" {
			log.Printf("  Pipeline run:  http://localhost:%s/api/pipeline/run (POST, requires API key)", appConfig.Port)
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("MeetingBank ETL shutdown complete")
}
