package timezones

import (
	"context"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/fields"
)

// Options tunes searches.
type Options struct {
	DefaultLimit int
	MaxLimit     int
	// ListOnEmpty returns the first zones for a blank query instead of none.
	ListOnEmpty bool
	// Zones replaces the embedded list.
	Zones []string
}

// Option configures Options.
type Option func(*Options)

// WithLimits sets the default and maximum result counts.
func WithLimits(defaultLimit, maxLimit int) Option {
	return func(o *Options) {
		o.DefaultLimit = defaultLimit
		o.MaxLimit = maxLimit
	}
}

// WithListOnEmpty makes blank queries list the first zones.
func WithListOnEmpty() Option {
	return func(o *Options) {
		o.ListOnEmpty = true
	}
}

// WithZones searches zones instead of the embedded list.
func WithZones(zones []string) Option {
	return func(o *Options) {
		o.Zones = append([]string(nil), zones...)
	}
}

func newOptions(options ...Option) Options {
	opts := Options{DefaultLimit: 20, MaxLimit: 200}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 20
	}
	if opts.MaxLimit < opts.DefaultLimit {
		opts.MaxLimit = opts.DefaultLimit
	}
	return opts
}

func (o Options) zones() ([]string, error) {
	if o.Zones != nil {
		return o.Zones, nil
	}
	return DefaultZones()
}

func (o Options) clamp(limit int) int {
	switch {
	case limit <= 0:
		return o.DefaultLimit
	case limit > o.MaxLimit:
		return o.MaxLimit
	default:
		return limit
	}
}

// Search returns up to limit zones containing query, case-insensitively.
// Prefix matches sort before inner matches, then alphabetically.
func Search(zones []string, query string, limit int, opts Options) []string {
	limit = opts.clamp(limit)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if !opts.ListOnEmpty {
			return nil
		}
		return append([]string(nil), zones[:min(limit, len(zones))]...)
	}

	type match struct {
		name   string
		prefix bool
	}
	var matches []match
	for _, zone := range zones {
		lower := strings.ToLower(zone)
		if strings.Contains(lower, query) {
			matches = append(matches, match{name: zone, prefix: strings.HasPrefix(lower, query)})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].name < matches[j].name
	})

	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches[:min(limit, len(matches))] {
		out = append(out, m.name)
	}
	return out
}

// Loader returns a search-select loader over the zone list.
func Loader(options ...Option) fields.Loader {
	opts := newOptions(options...)
	return func(ctx context.Context, query string) ([]fields.Option, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		zones, err := opts.zones()
		if err != nil {
			return nil, err
		}
		return toOptions(Search(zones, query, 0, opts)), nil
	}
}

func toOptions(zones []string) []fields.Option {
	out := make([]fields.Option, 0, len(zones))
	for _, zone := range zones {
		out = append(out, fields.Option{Value: zone, Label: strings.ReplaceAll(zone, "_", " ")})
	}
	return out
}
