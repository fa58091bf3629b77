package cfg

import (
	"fmt"
	"path/filepath"
)

type Cfg struct {
	// PostgreSQL configuration
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGName     string

	// MongoDB configuration
	MongoHost     string
	MongoPort     string
	MongoUser     string
	MongoPassword string
	MongoName     string

	// Pipeline configuration
	DataDir      string
	SubsetSize   int
	HFToken      string
	TargetCities []string
	RunOnce      bool
	InputFile    string

	// HTTP server configuration
	Port         string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}

// PostgresURL builds the connection string for the relational sink.
func (c *Cfg) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGName)
}

// MongoURI builds the connection string for the document sink.
func (c *Cfg) MongoURI() string {
	if c.MongoUser == "" {
		return fmt.Sprintf("mongodb://%s:%s/", c.MongoHost, c.MongoPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s/",
		c.MongoUser, c.MongoPassword, c.MongoHost, c.MongoPort)
}

// Stage artifact directories, all rooted at DataDir.

func (c *Cfg) RawDir() string {
	return filepath.Join(c.DataDir, "raw")
}

func (c *Cfg) CleanedDir() string {
	return filepath.Join(c.DataDir, "cleaned")
}

func (c *Cfg) ProcessedDir() string {
	return filepath.Join(c.DataDir, "processed")
}

func (c *Cfg) ReportsDir() string {
	return filepath.Join(c.DataDir, "reports")
}
