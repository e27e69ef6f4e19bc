package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/ini.v1"
)

// section maps lower-cased keys to raw string values.
type section map[string]string

// lookup returns the value of the first key present in the section. A key
// that is present with an empty value still wins over later alternatives.
func (s section) lookup(keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := s[strings.ToLower(key)]; ok {
			return value, true
		}
	}
	return "", false
}

type sections map[string]section

func (f sections) section(name string) (section, bool) {
	sec, ok := f[strings.ToLower(name)]
	return sec, ok
}

func parseINI(data []byte) (sections, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:         true,
		IgnoreInlineComment: true,
	}, data)
	if err != nil {
		return nil, err
	}

	var defaults section
	out := sections{}
	for _, sec := range file.Sections() {
		values := section{}
		for _, key := range sec.Keys() {
			values[strings.ToLower(key.Name())] = strings.TrimSpace(key.String())
		}
		name := strings.ToLower(sec.Name())
		if strings.EqualFold(sec.Name(), ini.DefaultSection) {
			defaults = values
			continue
		}
		out[name] = values
	}

	// Keys in the unnamed/DEFAULT section act as fallbacks for every section.
	for _, values := range out {
		for key, value := range defaults {
			if _, ok := values[key]; !ok {
				values[key] = value
			}
		}
	}
	return out, nil
}

func parseTOML(data []byte) (sections, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := sections{}
	for name, value := range raw {
		table, ok := value.(map[string]any)
		if !ok {
			continue
		}
		values := section{}
		for key, v := range table {
			values[strings.ToLower(key)] = strings.TrimSpace(fmt.Sprint(v))
		}
		out[strings.ToLower(name)] = values
	}
	return out, nil
}

func parsePositiveInt(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
