package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrPlaceholderCredentials is returned by Validate when a credential still
// holds the sample value shipped in config.example.yaml.
var ErrPlaceholderCredentials = errors.New("placeholder credentials")

// ErrInvalidConfig covers every other validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Store drivers.
const (
	DriverMongo     = "mongo"
	DriverFirestore = "firestore"
	DriverMemory    = "memory" // not persisted; development only
)

// Category delete policies.
const (
	DeletePolicyOrphan  = "orphan"
	DeletePolicyReject  = "reject"
	DeletePolicyCascade = "cascade"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
	S3      S3Config      `mapstructure:"s3"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	GenAI   GenAIConfig   `mapstructure:"genai"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Seed    SeedConfig    `mapstructure:"seed"`
	CORS    CORSConfig    `mapstructure:"cors"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"` // gin mode: debug, release, test
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// StoreConfig selects and configures the document store backing the catalog.
type StoreConfig struct {
	Driver    string          `mapstructure:"driver"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Firestore FirestoreConfig `mapstructure:"firestore"`
}

type MongoConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type FirestoreConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

// Enabled reports whether generated images should be uploaded to a bucket.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// GenAIConfig configures the generative text and image models. An empty
// APIKey disables the generation endpoints.
type GenAIConfig struct {
	APIKey     string `mapstructure:"api_key"`
	TextModel  string `mapstructure:"text_model"`
	ImageModel string `mapstructure:"image_model"`
}

// CatalogConfig holds the category/equipment consistency policies.
type CatalogConfig struct {
	PropagateCategoryRename bool   `mapstructure:"propagate_category_rename"`
	CategoryDeletePolicy    string `mapstructure:"category_delete_policy"`
}

type SeedConfig struct {
	OnStartup   bool   `mapstructure:"on_startup"`
	CatalogFile string `mapstructure:"catalog_file"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// store.mongo.uri -> STORE_MONGO_URI
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file: defaults and env vars only.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("store.driver", DriverMongo)
	v.SetDefault("store.mongo.uri", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("store.mongo.name", "muscle_mania")
	v.SetDefault("store.firestore.project_id", "")
	v.SetDefault("store.firestore.credentials_file", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.public_base_url", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "24h")
	v.SetDefault("genai.api_key", "")
	v.SetDefault("genai.text_model", "gemini-2.5-flash")
	v.SetDefault("genai.image_model", "imagen-4.0-generate-001")
	v.SetDefault("catalog.propagate_category_rename", true)
	v.SetDefault("catalog.category_delete_policy", DeletePolicyOrphan)
	v.SetDefault("seed.on_startup", true)
	v.SetDefault("seed.catalog_file", "")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Validate checks the loaded configuration before any store call is made.
// Placeholder credentials are reported with ErrPlaceholderCredentials so the
// caller can tell a forgotten setup step apart from a broken value.
func (c *Config) Validate() error {
	credentials := map[string]string{
		"jwt.secret":           c.JWT.Secret,
		"genai.api_key":        c.GenAI.APIKey,
		"s3.access_key_id":     c.S3.AccessKeyID,
		"s3.secret_access_key": c.S3.SecretAccessKey,
	}
	switch c.Store.Driver {
	case DriverMongo:
		credentials["store.mongo.uri"] = c.Store.Mongo.URI
	case DriverFirestore:
		credentials["store.firestore.project_id"] = c.Store.Firestore.ProjectID
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown store.driver %q (want %q, %q or %q)", ErrInvalidConfig, c.Store.Driver, DriverMongo, DriverFirestore, DriverMemory)
	}

	for _, key := range slices.Sorted(maps.Keys(credentials)) {
		if IsPlaceholder(credentials[key]) {
			return fmt.Errorf("%w: replace the sample value of %s with your own", ErrPlaceholderCredentials, key)
		}
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("%w: jwt.secret must be set", ErrInvalidConfig)
	}
	if c.Store.Driver == DriverMongo && (c.Store.Mongo.URI == "" || c.Store.Mongo.Name == "") {
		return fmt.Errorf("%w: store.mongo.uri and store.mongo.name must be set", ErrInvalidConfig)
	}
	if c.Store.Driver == DriverFirestore && c.Store.Firestore.ProjectID == "" {
		return fmt.Errorf("%w: store.firestore.project_id must be set", ErrInvalidConfig)
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: server.mode must be debug, release or test, got %q", ErrInvalidConfig, c.Server.Mode)
	}

	switch c.Catalog.CategoryDeletePolicy {
	case DeletePolicyOrphan, DeletePolicyReject, DeletePolicyCascade:
	default:
		return fmt.Errorf("%w: unknown catalog.category_delete_policy %q", ErrInvalidConfig, c.Catalog.CategoryDeletePolicy)
	}
	return nil
}

// IsPlaceholder reports whether s looks like an unreplaced sample credential,
// e.g. "[YOUR_API_KEY]", "<project-id>" or "changeme".
func IsPlaceholder(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	upper := strings.ToUpper(s)
	return strings.HasPrefix(upper, "[YOUR_") ||
		strings.HasPrefix(upper, "YOUR_") ||
		(strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">")) ||
		strings.EqualFold(s, "changeme")
}
