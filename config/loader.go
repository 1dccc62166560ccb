package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts the file lookups the loader performs.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem against the OS.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	// EnvAliases maps an alternative env name to the canonical one it
	// stands for, e.g. CELERY_BROKER_URL -> TASKS_BROKER_URL.
	EnvAliases map[string]string
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvAliases accepts alias env names for canonical ones. The canonical
// variable wins when both are set.
func WithEnvAliases(aliases map[string]string) LoaderOption {
	return func(lc *LoaderConfig) {
		if lc.EnvAliases == nil {
			lc.EnvAliases = map[string]string{}
		}
		for alias, canonical := range aliases {
			lc.EnvAliases[alias] = canonical
		}
	}
}

// ResolvedFiles are the config and env files picked for a service.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// Resolver finds config.yml and .env files for a service binary.
type Resolver struct {
	FileSystem FileSystem
}

// ResolveFiles keeps explicit paths from opts and searches for the rest.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	files := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	if files.ConfigFile == "" {
		files.ConfigFile = r.firstExisting(configCandidates(serviceName))
	}
	if files.EnvFile == "" {
		files.EnvFile = r.firstExisting(envCandidates(serviceName))
	}
	return files
}

func (r *Resolver) firstExisting(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// configCandidates lists config.yml locations, binary directory first.
func configCandidates(serviceName string) []string {
	var paths []string
	for _, name := range serviceNames(serviceName) {
		paths = append(paths,
			fmt.Sprintf("./cmd/%s/config.yml", name),
			fmt.Sprintf("../cmd/%s/config.yml", name),
			fmt.Sprintf("../../cmd/%s/config.yml", name),
		)
	}
	return append(paths, "./config/config.yml", "./config.yml")
}

// envCandidates lists .env locations. A service-specific .env.<name> wins
// over a shared .env.
func envCandidates(serviceName string) []string {
	var paths []string
	for _, file := range []string{".env." + serviceName, ".env"} {
		for _, name := range serviceNames(serviceName) {
			paths = append(paths, fmt.Sprintf("./cmd/%s/%s", name, file))
		}
		paths = append(paths, "./"+file, "../"+file, "../../"+file)
	}
	return paths
}

// serviceNames returns the full name and, for dashed names like "mp-api",
// the trailing segment ("api").
func serviceNames(serviceName string) []string {
	if idx := strings.LastIndex(serviceName, "-"); idx != -1 {
		return []string{serviceName, serviceName[idx+1:]}
	}
	return []string{serviceName}
}

// LoadConfig fills cfg from the service's config.yml, its .env file and the
// process environment, in increasing order of precedence.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	files := (&Resolver{FileSystem: lc.FileSystem}).ResolveFiles(serviceName, lc)
	v := viper.New()

	if files.ConfigFile != "" && lc.FileSystem.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", files.ConfigFile, err)
		}
	}

	if files.EnvFile != "" && lc.FileSystem.Exists(files.EnvFile) {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			return fmt.Errorf("load env file %s: %w", files.EnvFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnv(v, withAliases(os.Environ(), lc.EnvAliases))

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// bindEnv maps every KEY=value pair onto the viper keys it may address.
func bindEnv(v *viper.Viper, environ []string) {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// withAliases rewrites alias entries to their canonical names. Aliases go
// first so a canonical entry later in the list overrides them.
func withAliases(environ []string, aliases map[string]string) []string {
	if len(aliases) == 0 {
		return environ
	}
	var rewritten []string
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if canonical, found := aliases[key]; found {
			rewritten = append(rewritten, canonical+"="+value)
		}
	}
	return append(rewritten, environ...)
}

// envKeyVariants expands an env name into the nested keys it can match:
//
//	AUTH_JWT_SECRET -> auth_jwt_secret, auth.jwt.secret, auth.jwt_secret, auth_jwt.secret
//	TASKS_BROKER_URL -> tasks_broker_url, tasks.broker.url, tasks.broker_url, tasks_broker.url
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	seen := map[string]bool{}
	var variants []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			variants = append(variants, s)
		}
	}

	add(lower)
	add(strings.Join(parts, "."))
	for i := 1; i < len(parts); i++ {
		// dotted prefix, underscored suffix
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
		// underscored prefix, dotted suffix
		add(strings.Join(parts[:i], "_") + "." + strings.Join(parts[i:], "."))
	}
	return variants
}
