package appconf

// Environment identifies the operating environment for the application.
type Environment int

const (
	Development Environment = iota
	Test
	Staging
	Production
)

// Config holds all the configuration settings for the application. Settings
// are layered from defaults, an optional YAML file, and DASH_-prefixed
// environment variables when the application starts.
type Config struct {
	Port      int         `koanf:"port"`
	Env       Environment `koanf:"-"`
	EnvName   string      `koanf:"env"`
	ApiKeys   []string    `koanf:"api_keys"`
	AdminKeys []string    `koanf:"admin_keys"`
	RateLimit int         `koanf:"rate_limit"`

	// Spreadsheet database service.
	SheetsBaseURL string `koanf:"sheets_base_url"`
	SheetsBaseID  string `koanf:"sheets_base_id"`
	SheetsToken   string `koanf:"sheets_token"`

	// Identity provider.
	IdentityDomain       string `koanf:"identity_domain"`
	IdentityClientID     string `koanf:"identity_client_id"`
	IdentityClientSecret string `koanf:"identity_client_secret"`

	// Local record mirror.
	MirrorDBPath string `koanf:"mirror_db_path"`
	SyncInterval string `koanf:"sync_interval"`
}

// EnvFlagToEnvironment converts an environment name from a flag or config
// file into an Environment value. Unknown names map to Development.
func EnvFlagToEnvironment(name string) Environment {
	switch name {
	case "test":
		return Test
	case "staging":
		return Staging
	case "production":
		return Production
	default:
		return Development
	}
}

// String returns the canonical name for the environment.
func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Staging:
		return "staging"
	case Production:
		return "production"
	default:
		return "development"
	}
}
