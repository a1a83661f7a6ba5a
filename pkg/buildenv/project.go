package buildenv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/ini.v1"
)

// ProjectConfigFile is the PlatformIO project configuration file name.
const ProjectConfigFile = "platformio.ini"

// Max depth of ${section.option} expansion, guards against self references.
const maxInterpolationDepth = 10

var interpolation = regexp.MustCompile(`\$\{([^.}]+)\.([^}]+)\}`)

// Project is a parsed platformio.ini.
type Project struct {
	Dir  string
	file *ini.File
}

// LoadProject parses <dir>/platformio.ini.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, ProjectConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project config: %w", err)
	}
	p, err := ParseProject(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.Dir = dir
	return p, nil
}

// ParseProject parses platformio.ini contents.
func ParseProject(data []byte) (*Project, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		SpaceBeforeInlineComment:   true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("parse project config: %w", err)
	}
	return &Project{file: f}, nil
}

// Option returns section.key with ${section.key} and ${sysenv.NAME} references expanded.
func (p *Project) Option(section, key string) (string, bool) {
	raw, ok := p.raw(section, key)
	if !ok {
		return "", false
	}
	return p.expand(raw, 0), true
}

// RequireOption is Option that fails when the option is missing.
func (p *Project) RequireOption(section, key string) (string, error) {
	v, ok := p.Option(section, key)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrMissingOption, section, key)
	}
	return v, nil
}

// EnvOption returns an option of the [env:<name>] section, falling back to the
// shared [env] section.
func (p *Project) EnvOption(env, key string) (string, bool) {
	if env != "" {
		if v, ok := p.Option("env:"+env, key); ok {
			return v, true
		}
	}
	return p.Option("env", key)
}

// EnvList is EnvOption split into a list on newlines and commas.
func (p *Project) EnvList(env, key string) []string {
	v, ok := p.EnvOption(env, key)
	if !ok {
		return nil
	}
	return SplitList(v)
}

// Envs returns the names of all [env:<name>] sections in file order.
func (p *Project) Envs() []string {
	var envs []string
	for _, name := range p.file.SectionStrings() {
		if strings.HasPrefix(name, "env:") {
			envs = append(envs, strings.TrimPrefix(name, "env:"))
		}
	}
	return envs
}

func (p *Project) raw(section, key string) (string, bool) {
	sec, err := p.file.GetSection(section)
	if err != nil || !sec.HasKey(key) {
		return "", false
	}
	return sec.Key(key).String(), true
}

func (p *Project) expand(value string, depth int) string {
	if depth >= maxInterpolationDepth {
		return value
	}
	return interpolation.ReplaceAllStringFunc(value, func(ref string) string {
		m := interpolation.FindStringSubmatch(ref)
		if m[1] == "sysenv" {
			return os.Getenv(m[2])
		}
		v, ok := p.raw(m[1], m[2])
		if !ok {
			return ref
		}
		return p.expand(v, depth+1)
	})
}

// SplitList splits a multi-value option on newlines and commas. Continuation
// lines keep their inline "; comment" after parsing, so it is cut here.
func SplitList(value string) []string {
	var items []string
	for _, line := range strings.Split(value, "\n") {
		if i := strings.Index(line, " ;"); i >= 0 {
			line = line[:i]
		}
		if strings.HasPrefix(strings.TrimSpace(line), ";") {
			continue
		}
		for _, item := range strings.Split(line, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
