package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Elastic   ElasticConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Wiki      WikiConfig
	Directory DirectoryConfig
	Weather   WeatherConfig
	Blocks    BlocksConfig
	Maps      MapsConfig
	Log       LogConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type ElasticConfig struct {
	URL            string
	Sniff          bool
	RequestTimeout time.Duration

	// Index names of the geocoding store, one per place kind.
	DefaultIndex string
	AdminIndex   string
	StreetIndex  string
	AddressIndex string
	PoiIndex     string
	EventIndex   string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	WikiTTL  time.Duration
	PlaceTTL time.Duration
}

type WikiConfig struct {
	BaseURL         string
	UserAgent       string
	RequestTimeout  time.Duration
	BreakerMaxFails int
	BreakerReset    time.Duration
	RateLimit       float64
	RateBurst       int
	// Languages with a pre-indexed knowledge base entry.
	SupportedLangs []string
}

type DirectoryConfig struct {
	BaseURL        string
	APIKey         string
	APISecret      string
	RequestTimeout time.Duration
	Enabled        bool
}

type WeatherConfig struct {
	Enabled        bool
	RequestTimeout time.Duration
}

type BlocksConfig struct {
	ImagesEnabled        bool
	ThumbrEnabled        bool
	ThumbrURLs           []string
	ThumbrSalt           string
	Covid19Enabled       bool
	Covid19UseDataset    bool
	Covid19DatasetExpire time.Duration
	RecyclingEnabled     bool
	RecyclingMaxDistance float64       // meters
	RecyclingMaxAge      time.Duration // measurement freshness
	AirQualityEnabled    bool
	AirQualityMaxAge     time.Duration
	DescriptionMaxSize   int
}

type MapsConfig struct {
	BaseURL string
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	DatasetURL        string
	DatasetTimeout    time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Elastic: ElasticConfig{
			URL:            viper.GetString("ES_URL"),
			Sniff:          viper.GetBool("ES_SNIFF"),
			RequestTimeout: time.Duration(viper.GetInt("ES_REQUEST_TIMEOUT")) * time.Millisecond,
			DefaultIndex:   viper.GetString("ES_PLACE_DEFAULT_INDEX"),
			AdminIndex:     viper.GetString("ES_ADMIN_INDEX"),
			StreetIndex:    viper.GetString("ES_STREET_INDEX"),
			AddressIndex:   viper.GetString("ES_ADDRESS_INDEX"),
			PoiIndex:       viper.GetString("ES_POI_INDEX"),
			EventIndex:     viper.GetString("ES_EVENT_INDEX"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			WikiTTL:  time.Duration(viper.GetInt("WIKI_CACHE_TTL")) * time.Second,
			PlaceTTL: time.Duration(viper.GetInt("PLACE_CACHE_TTL")) * time.Second,
		},
		Wiki: WikiConfig{
			BaseURL:         viper.GetString("WIKI_API_BASE_URL"),
			UserAgent:       viper.GetString("WIKI_USER_AGENT"),
			RequestTimeout:  time.Duration(viper.GetInt("WIKI_API_TIMEOUT")) * time.Millisecond,
			BreakerMaxFails: viper.GetInt("WIKI_BREAKER_MAXFAIL"),
			BreakerReset:    time.Duration(viper.GetInt("WIKI_BREAKER_TIMEOUT")) * time.Second,
			RateLimit:       viper.GetFloat64("WIKI_RL_MAX_CALLS"),
			RateBurst:       viper.GetInt("WIKI_RL_BURST"),
			SupportedLangs:  splitList(viper.GetString("WIKI_ES_LANGS")),
		},
		Directory: DirectoryConfig{
			BaseURL:        viper.GetString("DIRECTORY_API_URL"),
			APIKey:         viper.GetString("DIRECTORY_API_ID"),
			APISecret:      viper.GetString("DIRECTORY_API_SECRET"),
			RequestTimeout: time.Duration(viper.GetInt("DIRECTORY_API_TIMEOUT")) * time.Millisecond,
			Enabled:        viper.GetString("DIRECTORY_API_ID") != "",
		},
		Weather: WeatherConfig{
			Enabled:        viper.GetBool("BLOCK_WEATHER_ENABLED"),
			RequestTimeout: time.Duration(viper.GetInt("WEATHER_API_TIMEOUT")) * time.Millisecond,
		},
		Blocks: BlocksConfig{
			ImagesEnabled:        viper.GetBool("BLOCK_IMAGES_ENABLED"),
			ThumbrEnabled:        viper.GetBool("THUMBR_ENABLED"),
			ThumbrURLs:           splitList(viper.GetString("THUMBR_URLS")),
			ThumbrSalt:           viper.GetString("THUMBR_SALT"),
			Covid19Enabled:       viper.GetBool("BLOCK_COVID_ENABLED"),
			Covid19UseDataset:    viper.GetBool("COVID19_USE_DATASET"),
			Covid19DatasetExpire: time.Duration(viper.GetInt("COVID19_DATASET_EXPIRE")) * time.Second,
			RecyclingEnabled:     viper.GetBool("BLOCK_RECYCLING_ENABLED"),
			RecyclingMaxDistance: viper.GetFloat64("RECYCLING_MAX_DISTANCE"),
			RecyclingMaxAge:      time.Duration(viper.GetInt("RECYCLING_MAX_AGE")) * time.Second,
			AirQualityEnabled:    viper.GetBool("BLOCK_AIR_QUALITY_ENABLED"),
			AirQualityMaxAge:     time.Duration(viper.GetInt("AIR_QUALITY_MAX_AGE")) * time.Second,
			DescriptionMaxSize:   viper.GetInt("DESC_MAX_SIZE"),
		},
		Maps: MapsConfig{
			BaseURL: viper.GetString("MAPS_BASE_URL"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
			DatasetURL:        viper.GetString("COVID19_DATASET_URL"),
			DatasetTimeout:    time.Duration(viper.GetInt("COVID19_DATASET_TIMEOUT")) * time.Second,
		},
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Elastic.DefaultIndex == "" {
		cfg.Elastic.DefaultIndex = "munin"
	}
	if cfg.Elastic.AdminIndex == "" {
		cfg.Elastic.AdminIndex = "munin_admin"
	}
	if cfg.Elastic.StreetIndex == "" {
		cfg.Elastic.StreetIndex = "munin_street"
	}
	if cfg.Elastic.AddressIndex == "" {
		cfg.Elastic.AddressIndex = "munin_addr"
	}
	if cfg.Elastic.PoiIndex == "" {
		cfg.Elastic.PoiIndex = "munin_poi"
	}
	if cfg.Elastic.EventIndex == "" {
		cfg.Elastic.EventIndex = "munin_event"
	}
	if cfg.Elastic.RequestTimeout == 0 {
		cfg.Elastic.RequestTimeout = 3 * time.Second
	}
	if cfg.Wiki.BaseURL == "" {
		cfg.Wiki.BaseURL = "https://{lang}.wikipedia.org"
	}
	if cfg.Wiki.UserAgent == "" {
		cfg.Wiki.UserAgent = "places-api/1.0"
	}
	if cfg.Wiki.RequestTimeout == 0 {
		cfg.Wiki.RequestTimeout = time.Second
	}
	if cfg.Wiki.BreakerMaxFails == 0 {
		cfg.Wiki.BreakerMaxFails = 5
	}
	if cfg.Wiki.BreakerReset == 0 {
		cfg.Wiki.BreakerReset = 120 * time.Second
	}
	if cfg.Wiki.RateLimit == 0 {
		cfg.Wiki.RateLimit = 100
	}
	if cfg.Wiki.RateBurst == 0 {
		cfg.Wiki.RateBurst = 10
	}
	if len(cfg.Wiki.SupportedLangs) == 0 {
		cfg.Wiki.SupportedLangs = []string{"fr", "en", "de", "it", "es"}
	}
	if cfg.Directory.RequestTimeout == 0 {
		cfg.Directory.RequestTimeout = 2 * time.Second
	}
	if cfg.Weather.RequestTimeout == 0 {
		cfg.Weather.RequestTimeout = 2 * time.Second
	}
	if cfg.Blocks.DescriptionMaxSize == 0 {
		cfg.Blocks.DescriptionMaxSize = 250
	}
	if cfg.Blocks.RecyclingMaxDistance == 0 {
		cfg.Blocks.RecyclingMaxDistance = 500
	}
	if cfg.Blocks.RecyclingMaxAge == 0 {
		cfg.Blocks.RecyclingMaxAge = 129600 * time.Second
	}
	if cfg.Blocks.AirQualityMaxAge == 0 {
		cfg.Blocks.AirQualityMaxAge = 4 * time.Hour
	}
	if cfg.Blocks.Covid19DatasetExpire == 0 {
		cfg.Blocks.Covid19DatasetExpire = 24 * time.Hour
	}
	if cfg.Maps.BaseURL == "" {
		cfg.Maps.BaseURL = "https://www.qwant.com/maps/"
	}
	if cfg.Cache.WikiTTL == 0 {
		cfg.Cache.WikiTTL = time.Hour
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "places-dataset-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Worker.DatasetTimeout == 0 {
		cfg.Worker.DatasetTimeout = 60 * time.Second
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
