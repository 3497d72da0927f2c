package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Cases.validate(); err != nil {
		return fmt.Errorf("cases: %w", err)
	}
	if strings.TrimSpace(c.Profiles.Collection) == "" {
		return fmt.Errorf("profiles: collection is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log: format must be json or text (got %q)", c.Log.Format)
	}
	if len(c.Kafka.Brokers) > 0 && strings.TrimSpace(c.Kafka.AuditTopic) == "" {
		return fmt.Errorf("kafka: audit_topic is required when brokers are set")
	}
	return nil
}

func (s *StoreConfig) validate() error {
	switch s.Driver {
	case StoreDriverMemory:
		return nil
	case StoreDriverPostgres:
		if s.DSN == "" {
			return fmt.Errorf("dsn is required for the postgres driver")
		}
		if s.MinConns > s.MaxConns {
			return fmt.Errorf("min_conns (%d) must not exceed max_conns (%d)", s.MinConns, s.MaxConns)
		}
		return nil
	default:
		return fmt.Errorf("unknown driver %q", s.Driver)
	}
}

func (c *CasesConfig) validate() error {
	families := []struct {
		name, collection, policy string
	}{
		{"applications", c.ApplicationsCollection, c.ApplicationsPolicy},
		{"complaints", c.ComplaintsCollection, c.ComplaintsPolicy},
		{"health_services", c.HealthServicesCollection, c.HealthServicesPolicy},
	}
	seen := make(map[string]string, len(families))
	for _, f := range families {
		if strings.TrimSpace(f.collection) == "" {
			return fmt.Errorf("%s collection is required", f.name)
		}
		if other, ok := seen[f.collection]; ok {
			return fmt.Errorf("%s and %s share collection %q", other, f.name, f.collection)
		}
		seen[f.collection] = f.name
		if f.policy != PolicyPermissive && f.policy != PolicyStrict {
			return fmt.Errorf("%s policy must be %s or %s (got %q)", f.name, PolicyPermissive, PolicyStrict, f.policy)
		}
	}
	return nil
}
