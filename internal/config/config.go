package config

import (
	"github.com/zeromicro/go-zero/mcp"
	"github.com/zeromicro/go-zero/rest"
)

// Config holds the server configuration.
type Config struct {
	mcp.McpConf

	UI        UIConfig        `json:",optional"`
	API       APIConfig       `json:",optional"`
	CardTypes CardTypesConfig `json:",optional"`
	Cards     CardsConfig     `json:",optional"`
	Database  DatabaseConfig  `json:",optional"`
	Render    RenderConfig    `json:",optional"`
	Magick    MagickConfig    `json:",optional"`
}

// UIConfig holds the Web UI server settings.
type UIConfig struct {
	rest.RestConf
}

// APIConfig holds the REST API server settings.
type APIConfig struct {
	rest.RestConf
}

// CardTypesConfig holds style package discovery settings.
type CardTypesConfig struct {
	Dir string `json:",default=./.data/card_types"`
}

// CardsConfig holds episode art and finished card directories.
type CardsConfig struct {
	SourceDir string `json:",default=./.data/source"`
	OutputDir string `json:",default=./.data/cards"`
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	Path string `json:",default=./.data/plat-titlecard.db"`
}

// RenderConfig holds render engine settings.
type RenderConfig struct {
	Workers      int    `json:",default=2"`
	MaxRetries   int    `json:",default=3"`
	RetryBackoff string `json:",default=5m"`
	MaxBackoff   string `json:",default=4h"`
	RateLimit    int    `json:",default=120"`
}

// MagickConfig holds ImageMagick invocation settings.
type MagickConfig struct {
	Binary  string `json:",default=convert"`
	Timeout string `json:",default=2m"`
}
