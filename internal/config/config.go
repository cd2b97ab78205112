package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080/"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"rooneystore.db"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"static"`

	Telegram Telegram `envPrefix:"TELEGRAM_"`
	JWT      JWT      `envPrefix:"JWT_"`
	Admin    Admin    `envPrefix:"ADMIN_"`
}

type Telegram struct {
	BotToken     string   `env:"BOT_TOKEN"`
	AdminChatIDs []string `env:"ADMIN_CHAT_IDS" envSeparator:","`
	BaseApiURL   string   `env:"BASE_API_URL" envDefault:"https://api.telegram.org"`
}

type JWT struct {
	Secret         string `env:"SECRET_KEY" envDefault:"change-me-in-production"`
	ExpiresMinutes int    `env:"EXPIRES_MINUTES" envDefault:"43200"` // 30 days
}

type Admin struct {
	Username string `env:"USERNAME" envDefault:"admin"`
	Password string `env:"PASSWORD" envDefault:"admin123"`
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
