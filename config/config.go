package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	// Password scheme names accepted by auth.passwordScheme.
	SchemeHMACSHA1   = "hmac-sha1"
	SchemeHMACSHA256 = "hmac-sha256"
	SchemeArgon2ID   = "argon2id"

	// MinPasswordLengthFloor is the lowest accepted auth.minPasswordLength.
	MinPasswordLengthFloor = 6

	defaultMinPasswordLength = MinPasswordLengthFloor
	defaultSaltBytes         = 16
	defaultPasswordScheme    = SchemeHMACSHA256

	defaultArgon2Time    = 1
	defaultArgon2Memory  = 64 * 1024
	defaultArgon2Threads = 4
	defaultArgon2KeyLen  = 32
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// SecretKey holds token signing material. It has no built-in default.
	SecretKey struct {
		Signing string `json:"signing" yaml:"signing"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`
}

// AuthConfig defines credential handling configuration
type AuthConfig struct {
	// Minimum number of characters a plaintext password must have.
	MinPasswordLength int `json:"minPasswordLength" yaml:"minPasswordLength"`

	// Number of random bytes drawn for each salt before hex encoding.
	SaltBytes int `json:"saltBytes" yaml:"saltBytes"`

	// Scheme used for newly derived credentials: hmac-sha1, hmac-sha256 or argon2id.
	PasswordScheme string `json:"passwordScheme" yaml:"passwordScheme"`

	// Lifetime of issued tokens. Zero issues tokens without an exp claim.
	TokenTTL time.Duration `json:"tokenTTL" yaml:"tokenTTL"`

	Argon2 *Argon2Config `json:"argon2" yaml:"argon2"`
}

// Argon2Config defines the argon2id cost parameters
type Argon2Config struct {
	Time    uint32 `json:"time" yaml:"time"`
	Memory  uint32 `json:"memory" yaml:"memory"`
	Threads uint8  `json:"threads" yaml:"threads"`
	KeyLen  uint32 `json:"keyLen" yaml:"keyLen"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment variables override the file, e.g. SECRETKEY_SIGNING -> secretKey.signing
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills unset auth settings. It is safe to call more than once.
func (c *Config) ApplyDefaults() {
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.MinPasswordLength <= 0 {
		c.Auth.MinPasswordLength = defaultMinPasswordLength
	}
	if c.Auth.SaltBytes <= 0 {
		c.Auth.SaltBytes = defaultSaltBytes
	}
	c.Auth.PasswordScheme = strings.ToLower(strings.TrimSpace(c.Auth.PasswordScheme))
	if c.Auth.PasswordScheme == "" {
		c.Auth.PasswordScheme = defaultPasswordScheme
	}
	if c.Auth.Argon2 == nil {
		c.Auth.Argon2 = &Argon2Config{}
	}
	if c.Auth.Argon2.Time == 0 {
		c.Auth.Argon2.Time = defaultArgon2Time
	}
	if c.Auth.Argon2.Memory == 0 {
		c.Auth.Argon2.Memory = defaultArgon2Memory
	}
	if c.Auth.Argon2.Threads == 0 {
		c.Auth.Argon2.Threads = defaultArgon2Threads
	}
	if c.Auth.Argon2.KeyLen == 0 {
		c.Auth.Argon2.KeyLen = defaultArgon2KeyLen
	}
}

// Validate checks settings that cannot be defaulted.
// The signing secret is checked by the account use cases.
func (c *Config) Validate() error {
	if c.Auth == nil {
		return errors.New("auth config is missing")
	}

	switch c.Auth.PasswordScheme {
	case SchemeHMACSHA1, SchemeHMACSHA256, SchemeArgon2ID:
	default:
		return errors.Errorf("unsupported password scheme: %s", c.Auth.PasswordScheme)
	}

	if c.Auth.MinPasswordLength < MinPasswordLengthFloor {
		return errors.Errorf("auth.minPasswordLength must be at least %d: %d", MinPasswordLengthFloor, c.Auth.MinPasswordLength)
	}

	if c.Auth.TokenTTL < 0 {
		return errors.Errorf("auth.tokenTTL must not be negative: %s", c.Auth.TokenTTL)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
