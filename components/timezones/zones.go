package timezones

import (
	"bufio"
	"embed"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

var (
	defaultOnce  sync.Once
	defaultZones []string
	defaultErr   error
)

// DefaultZones returns a copy of the embedded, sorted zone list.
func DefaultZones() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open("data/iana_timezones.txt")
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()
		defaultZones, defaultErr = LoadZones(f)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string(nil), defaultZones...), nil
}

// LoadZones reads one zone per line, skipping blanks, comments and
// duplicates. The result is sorted.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, errors.New("timezones: missing reader")
	}

	scanner := bufio.NewScanner(r)
	seen := make(map[string]struct{})
	var zones []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		zones = append(zones, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Strings(zones)
	return zones, nil
}
