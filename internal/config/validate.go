package config

import (
	"errors"
	"fmt"
	"net/url"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if err := c.validateCaptions(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateYouTube() error {
	parsed, err := url.Parse(c.YouTube.BaseURL)
	if err != nil {
		return fmt.Errorf("youtube.base_url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("youtube.base_url must be an absolute URL, got %q", c.YouTube.BaseURL)
	}
	if c.YouTube.ClientName == "" {
		return errors.New("youtube.client_name must be set")
	}
	if c.YouTube.ClientVersion == "" {
		return errors.New("youtube.client_version must be set")
	}
	if c.YouTube.RequestTimeout <= 0 {
		return errors.New("youtube.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateCaptions() error {
	if len(c.Captions.Languages) == 0 {
		return errors.New("captions.languages must include at least one language")
	}
	for _, lang := range c.Captions.Languages {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("captions.languages: invalid BCP 47 tag %q", lang)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
