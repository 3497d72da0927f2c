package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Cases    CasesConfig    `yaml:"cases"`
	Profiles ProfilesConfig `yaml:"profiles"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"SERVER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout"  env:"SERVER_REQUEST_TIMEOUT"  env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// StoreConfig selects and tunes the document store backing every collection.
type StoreConfig struct {
	Driver          string        `yaml:"driver"             env:"STORE_DRIVER"             env-default:"memory"`
	DSN             string        `yaml:"dsn"                env:"STORE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"STORE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"STORE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"STORE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"STORE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"STORE_MIGRATE"            env-default:"true"`
}

// RedisConfig configures the optional tracking-ID reservation backend.
// An empty URL disables Redis.
type RedisConfig struct {
	URL            string        `yaml:"url"             env:"REDIS_URL"`
	PoolSize       int           `yaml:"pool_size"       env:"REDIS_POOL_SIZE"       env-default:"10"`
	MinIdleConns   int           `yaml:"min_idle_conns"  env:"REDIS_MIN_IDLE_CONNS"  env-default:"2"`
	DialTimeout    time.Duration `yaml:"dial_timeout"    env:"REDIS_DIAL_TIMEOUT"    env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout"    env:"REDIS_READ_TIMEOUT"    env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout"   env:"REDIS_WRITE_TIMEOUT"   env-default:"3s"`
	ReservationTTL time.Duration `yaml:"reservation_ttl" env:"REDIS_RESERVATION_TTL" env-default:"24h"`
}

// KafkaConfig configures the audit event sink. No brokers means audit
// events stay in memory. DeliveryTimeout bounds one produce; MemoryLimit caps
// the events kept in process, whether as the sink or as the fallback.
type KafkaConfig struct {
	Brokers           []string      `yaml:"brokers"            env:"KAFKA_BROKERS"            env-separator:","`
	AuditTopic        string        `yaml:"audit_topic"        env:"KAFKA_AUDIT_TOPIC"        env-default:"govportal.audit"`
	Partitions        int32         `yaml:"partitions"         env:"KAFKA_PARTITIONS"         env-default:"3"`
	ReplicationFactor int16         `yaml:"replication_factor" env:"KAFKA_REPLICATION_FACTOR" env-default:"1"`
	DeliveryTimeout   time.Duration `yaml:"delivery_timeout"   env:"KAFKA_DELIVERY_TIMEOUT"   env-default:"5s"`
	MemoryLimit       int           `yaml:"memory_limit"       env:"AUDIT_MEMORY_LIMIT"       env-default:"10000"`
}

// Transition policies.
const (
	PolicyPermissive = "permissive"
	PolicyStrict     = "strict"
)

// CasesConfig names the collection and transition policy of each case family.
type CasesConfig struct {
	ApplicationsCollection   string `yaml:"applications_collection"    env:"CASES_APPLICATIONS_COLLECTION"    env-default:"applications"`
	ApplicationsPolicy       string `yaml:"applications_policy"        env:"CASES_APPLICATIONS_POLICY"        env-default:"permissive"`
	ComplaintsCollection     string `yaml:"complaints_collection"      env:"CASES_COMPLAINTS_COLLECTION"      env-default:"complaints"`
	ComplaintsPolicy         string `yaml:"complaints_policy"          env:"CASES_COMPLAINTS_POLICY"          env-default:"permissive"`
	HealthServicesCollection string `yaml:"health_services_collection" env:"CASES_HEALTH_SERVICES_COLLECTION" env-default:"healthServices"`
	HealthServicesPolicy     string `yaml:"health_services_policy"     env:"CASES_HEALTH_SERVICES_POLICY"     env-default:"permissive"`
}

// ProfilesConfig holds citizen profile settings.
type ProfilesConfig struct {
	Collection string `yaml:"collection" env:"PROFILES_COLLECTION" env-default:"citizen_profiles"`
}
