package config

// Config holds the application configuration.
type Config struct {
	UploadsPath string   `yaml:"uploadsPath" validate:"required"`
	Server      Server   `yaml:"server"`
	Database    Database `yaml:"database"`
	Logger      Logger   `yaml:"logger"`
	Auth        Auth     `yaml:"auth"`
	Artwork     Artwork  `yaml:"artwork"`
}

// Server holds the configuration for the Fiber server.
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
	BodyLimitMB int    `yaml:"body_limit_mb"`
}

// Database holds the configuration for the MongoDB connection.
type Database struct {
	URI  string `yaml:"uri" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

// Logger holds the configuration for the app logging.
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Auth holds the token signing configuration.
type Auth struct {
	Secret        string `yaml:"secret" validate:"required"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// Artwork holds the configuration for uploaded cover image handling.
type Artwork struct {
	MaxSize uint `yaml:"max_size"`
	Quality int  `yaml:"quality"`
}
