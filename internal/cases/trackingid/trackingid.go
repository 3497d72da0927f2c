// Package trackingid builds the citizen-facing tracking identifiers of cases.
//
// An identifier is a family prefix followed by the decimal Unix-millisecond
// creation time, e.g. APP1714550400000. Two cases of one prefix created in
// the same millisecond collide under Format alone; a Generator with a
// Reserver skips forward until it claims an unused identifier.
package trackingid

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"govportal/pkg/platform/sentinel"
)

const (
	PrefixApplication = "APP"
	PrefixComplaint   = "CMP"
	PrefixBirth       = "BIRTH"
	PrefixDeath       = "DEATH"
	PrefixHealthCard  = "HEALTH"
	PrefixVaccination = "VAC"
	PrefixHealth      = "HLTH"
)

var healthPrefixes = map[string]string{
	"birth-certificate":       PrefixBirth,
	"death-certificate":       PrefixDeath,
	"health-card":             PrefixHealthCard,
	"vaccination-certificate": PrefixVaccination,
}

// Format returns prefix followed by t in Unix milliseconds.
func Format(prefix string, t time.Time) string {
	return prefix + strconv.FormatInt(t.UnixMilli(), 10)
}

// HealthPrefix returns the prefix for a health service type, HLTH when unknown.
func HealthPrefix(serviceType string) string {
	if p, ok := healthPrefixes[strings.ToLower(strings.TrimSpace(serviceType))]; ok {
		return p
	}
	return PrefixHealth
}

// Reserver claims identifiers. Reserve reports false when id is already taken.
type Reserver interface {
	Reserve(ctx context.Context, id string) (bool, error)
}

const defaultMaxAttempts = 1000

// Generator issues tracking identifiers, optionally claiming each one.
type Generator struct {
	reserver    Reserver
	maxAttempts int
}

// Option configures a Generator.
type Option func(*Generator)

// WithReserver makes the generator claim every identifier it returns.
func WithReserver(r Reserver) Option {
	return func(g *Generator) {
		g.reserver = r
	}
}

// WithMaxAttempts bounds how many milliseconds Next skips forward.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// NewGenerator creates a Generator. Without a Reserver it is a plain Format.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{maxAttempts: defaultMaxAttempts}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns an identifier for prefix at now. With a Reserver, taken
// identifiers are skipped by advancing the millisecond component.
func (g *Generator) Next(ctx context.Context, prefix string, now time.Time) (string, error) {
	if g.reserver == nil {
		return Format(prefix, now), nil
	}
	for i := 0; i < g.maxAttempts; i++ {
		candidate := Format(prefix, now.Add(time.Duration(i)*time.Millisecond))
		ok, err := g.reserver.Reserve(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("reserve tracking id %s: %w", candidate, err)
		}
		if ok {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free tracking id for %s after %d attempts: %w", prefix, g.maxAttempts, sentinel.ErrConflict)
}
