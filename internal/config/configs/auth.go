package configs

// Auth configures bearer-token checks on the API. An empty secret leaves the
// API open.
type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
}

// CORS lists the browser origins allowed to call the API.
type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}
