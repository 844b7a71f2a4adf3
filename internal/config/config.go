package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	Stock  Stock  `envPrefix:"STOCK_"`
	Paging Paging `envPrefix:"PAGE_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

// Stock controls whether a material issue may drive a product's on-hand
// quantity below zero.
type Stock struct {
	AllowNegative bool `env:"ALLOW_NEGATIVE" envDefault:"false"`
}

type Paging struct {
	DefaultSize int `env:"SIZE_DEFAULT" envDefault:"20"`
	MaxSize     int `env:"SIZE_MAX" envDefault:"100"`
}
