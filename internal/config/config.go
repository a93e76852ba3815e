package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`

	// Signing key for session tokens. Generated at startup when empty.
	SessionSecret string `env:"SESSION_SECRET"`

	// Durable local storage for branding settings. Settings stay local in
	// both modes.
	SettingsDBPath string `env:"SETTINGS_DB_PATH" envDefault:"settings.db"`

	Backend  Backend  `envPrefix:"SUPABASE_"`
	Payment  Payment  `envPrefix:"PAYMENT_"`
	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
}

// Backend points at the remote record/auth backend. The app runs in demo
// mode when it is not configured.
type Backend struct {
	ProjectURL string `env:"URL"`
	AnonKey    string `env:"ANON_KEY"`
}

func (b Backend) Configured() bool {
	return b.ProjectURL != "" && b.AnonKey != ""
}

type Payment struct {
	// URL of the create-payment-order function. Defaults to the locally
	// hosted one when empty.
	FunctionURL string `env:"FUNCTION_URL"`
}

// Razorpay credentials are server-side only and used exclusively by the
// hosted payment function.
type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
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
