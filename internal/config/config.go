package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Analyzer AnalyzerConfig `mapstructure:"analyzer" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains settings for validating and issuing access tokens.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// TokenLifetimeMinutes is the lifetime of issued access tokens (default 60).
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"`
}

// AnalyzerConfig contains settings for the formula analyzer and its symbol table.
type AnalyzerConfig struct {
	// MaxFormulaLength bounds the length of submitted formulas.
	MaxFormulaLength int `mapstructure:"max_formula_length" validate:"required,gt=0,lte=255"`
	// SymbolRefreshSeconds reloads the element table periodically. Zero loads it once at startup.
	SymbolRefreshSeconds int `mapstructure:"symbol_refresh_seconds" validate:"gte=0"`
}
