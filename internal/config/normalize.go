package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTVDB()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTVDB() {
	if c.TVDB.APIKey == "" {
		if value, ok := os.LookupEnv("TVDB_API_KEY"); ok {
			c.TVDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TVDB.APIKey = strings.TrimSpace(c.TVDB.APIKey)
	c.TVDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TVDB.BaseURL), "/")
	if c.TVDB.BaseURL == "" {
		c.TVDB.BaseURL = defaultTVDBBaseURL
	}
	c.TVDB.Language = strings.ToLower(strings.TrimSpace(c.TVDB.Language))
	if c.TVDB.Language == "" {
		c.TVDB.Language = defaultTVDBLanguage
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
