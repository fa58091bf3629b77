package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// PostgreSQL configuration
	PGHost     string `long:"pg-host" env:"POSTGRES_HOST" default:"localhost" description:"PostgreSQL host"`
	PGPort     string `long:"pg-port" env:"POSTGRES_PORT" default:"5432" description:"PostgreSQL port"`
	PGUser     string `long:"pg-user" env:"POSTGRES_USER" default:"airflow" description:"PostgreSQL user"`
	PGPassword string `long:"pg-password" env:"POSTGRES_PASSWORD" default:"airflow" description:"PostgreSQL password"`
	PGName     string `long:"pg-name" env:"POSTGRES_DB" default:"meetingbank" description:"PostgreSQL database name"`

	// MongoDB configuration
	MongoHost     string `long:"mongo-host" env:"MONGODB_HOST" default:"localhost" description:"MongoDB host"`
	MongoPort     string `long:"mongo-port" env:"MONGODB_PORT" default:"27017" description:"MongoDB port"`
	MongoUser     string `long:"mongo-user" env:"MONGODB_USER" default:"admin" description:"MongoDB user"`
	MongoPassword string `long:"mongo-password" env:"MONGODB_PASSWORD" default:"admin123" description:"MongoDB password"`
	MongoName     string `long:"mongo-name" env:"MONGODB_DB" default:"meetingbank" description:"MongoDB database name"`

	// Pipeline configuration
	DataDir      string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory for pipeline stage artifacts"`
	SubsetSize   int    `long:"subset-size" env:"SUBSET_SIZE" default:"50" description:"Number of meetings to fetch per run"`
	HFToken      string `long:"hf-token" env:"HUGGINGFACE_TOKEN" description:"HuggingFace API token for dataset access (optional)"`
	TargetCities string `long:"target-cities" env:"TARGET_CITIES" default:"Seattle,Boston,Denver,King County,Long Beach,Alameda" description:"Comma-separated list of cities to keep during extraction"`
	RunOnce      bool   `long:"run-once" env:"RUN_ONCE" description:"Run the pipeline once and exit instead of serving HTTP"`
	InputFile    string `long:"input" env:"INPUT_FILE" description:"Raw batch file to process instead of fetching from the dataset API"`

	// HTTP server configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for pipeline trigger endpoints (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"MeetingBank ETL/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		PGHost:        raw.PGHost,
		PGPort:        raw.PGPort,
		PGUser:        raw.PGUser,
		PGPassword:    raw.PGPassword,
		PGName:        raw.PGName,
		MongoHost:     raw.MongoHost,
		MongoPort:     raw.MongoPort,
		MongoUser:     raw.MongoUser,
		MongoPassword: raw.MongoPassword,
		MongoName:     raw.MongoName,
		DataDir:       raw.DataDir,
		SubsetSize:    raw.SubsetSize,
		HFToken:       raw.HFToken,
		TargetCities:  splitCities(raw.TargetCities),
		RunOnce:       raw.RunOnce,
		InputFile:     raw.InputFile,
		Port:          raw.Port,
		APIAccessKey:  raw.APIAccessKey,
		UserAgent:     raw.UserAgent,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	return cfg, nil
}

func splitCities(s string) []string {
	var cities []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cities = append(cities, trimmed)
		}
	}
	return cities
}
