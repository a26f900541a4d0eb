package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Cache     *CacheConfig
	Auth      *AuthConfig
	Email     *EmailConfig
	RateLimit *RateLimitConfig
	Store     *StoreConfig
	Bank      *BankConfig
}

type ServerConfig struct {
	AppName        string        // Dewode
	Environment    string        // development, production
	Port           string        // :8082
	FrontendURL    string        // storefront origin, used in emails
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	PoolTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration

	ProductListTTL time.Duration // catalog cache lifetime
	CartTTL        time.Duration // idle cart session lifetime
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	// Fallback credentials used only when no settings row exists yet.
	DefaultAdminID       string
	DefaultAdminPassword string
}

type EmailConfig struct {
	ApiKey       string
	From         string
	SupportEmail string
	CodeExpiry   time.Duration // verification code lifetime
}

type RateLimitConfig struct {
	Enabled bool

	// verification-code sending, strictest bucket
	VerifyLimit  int
	VerifyWindow time.Duration

	// admin login attempts
	LoginLimit  int
	LoginWindow time.Duration

	GeneralLimit  int
	GeneralWindow time.Duration
}

// StoreConfig selects the repository implementation: "postgres" talks to
// the database, "memory" runs against the seeded in-memory store.
type StoreConfig struct {
	Driver string
}

// BankConfig is the transfer account shown at checkout when no settings
// row has been saved yet.
type BankConfig struct {
	Name    string
	Account string
	Holder  string
}
