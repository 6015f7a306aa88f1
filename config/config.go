package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "16KB"
	defaultTaxRate            = "0.10"
	defaultScale              = 2
	defaultScaling            = "line"
	defaultBcryptCost         = 10
	defaultQRCodeSize         = 256
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	Pricing PricingConfig `json:"pricing" yaml:"pricing"`

	// Catalog seeds the shelves at startup. Left empty, the stock catalog is used.
	Catalog []ProductConfig `json:"catalog" yaml:"catalog" validate:"dive"`

	// CatalogFile, when set, seeds the shelves from a CSV file
	// (name,price,category,quantity) instead of the catalog section.
	CatalogFile string `json:"catalogFile" yaml:"catalogFile"`

	// Discounts is the rule set in priority order. Absent means the stock
	// rules; an explicit empty list means no discounts at all.
	Discounts []DiscountConfig `json:"discounts" yaml:"discounts" validate:"dive"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	HTTP struct {
		Enabled            bool   `json:"enabled" yaml:"enabled"`
		Port               int    `json:"port" yaml:"port" validate:"omitempty,min=1,max=65535"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Receipt configuration for confirmed-order receipts
	Receipt *ReceiptConfig `json:"receipt" yaml:"receipt"`
}

// PricingConfig defines tax and discount arithmetic
type PricingConfig struct {
	TaxRate string `json:"taxRate" yaml:"taxRate" validate:"omitempty,numeric"`
	// Scale is the number of decimal places money is rounded to. Nil means
	// the default of 2; an explicit 0 rounds to whole units.
	Scale   *int32 `json:"scale" yaml:"scale" validate:"omitempty,gte=0,lte=8"`
	// Scaling is "line" (each line discounted once) or "per_unit" (legacy
	// till figures: the line discount is multiplied by the quantity again).
	Scaling string `json:"scaling" yaml:"scaling" validate:"omitempty,oneof=line per_unit"`
}

// ProductConfig is one catalog seed entry
type ProductConfig struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Price    string `json:"price" yaml:"price" validate:"required,numeric"`
	Category string `json:"category" yaml:"category" validate:"required,category"`
	Quantity int    `json:"quantity" yaml:"quantity" validate:"gte=0"`
}

// DiscountConfig is one discount rule
type DiscountConfig struct {
	Name       string `json:"name" yaml:"name" validate:"required"`
	Kind       string `json:"kind" yaml:"kind" validate:"required,oneof=category_percentage category_flat item_bogo"`
	Amount     string `json:"amount" yaml:"amount" validate:"required,numeric"`
	Percentage bool   `json:"percentage" yaml:"percentage"`
	Category   string `json:"category" yaml:"category" validate:"required_unless=Kind item_bogo,category"`
	Item       string `json:"item" yaml:"item" validate:"required_if=Kind item_bogo"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

// PasswordStrengthConfig defines password strength requirements
type PasswordStrengthConfig struct {
	MinLength        int  `json:"minLength" yaml:"minLength"`
	RequireUppercase bool `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool `json:"requireNumbers" yaml:"requireNumbers"`
	RequireSpecial   bool `json:"requireSpecial" yaml:"requireSpecial"`
	MaxLength        int  `json:"maxLength" yaml:"maxLength"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
	// Output is "stderr", "stdout" or a file path. The menu owns stdout, so
	// stderr is the default.
	Output string `json:"output" yaml:"output"`
}

// ReceiptConfig defines receipt output
type ReceiptConfig struct {
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// OutputDir receives one PNG QR code per confirmed order. Empty disables it.
	OutputDir string `json:"outputDir" yaml:"outputDir"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
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
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: PRICING_TAXRATE -> pricing.taxRate (not pricing.taxrate)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
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

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if strings.TrimSpace(c.Env.Log.Output) == "" {
		c.Env.Log.Output = "stderr"
	}
	if strings.TrimSpace(c.Pricing.TaxRate) == "" {
		c.Pricing.TaxRate = defaultTaxRate
	}
	if c.Pricing.Scale == nil {
		scale := int32(defaultScale)
		c.Pricing.Scale = &scale
	}
	if strings.TrimSpace(c.Pricing.Scaling) == "" {
		c.Pricing.Scaling = defaultScaling
	}
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}
	if c.Receipt == nil {
		c.Receipt = &ReceiptConfig{}
	}
	if c.Receipt.QRCode == nil {
		c.Receipt.QRCode = &QRCodeConfig{}
	}
	if c.Receipt.QRCode.Size == 0 {
		c.Receipt.QRCode.Size = defaultQRCodeSize
	}
}

// Validate checks the seed sections with go-playground/validator.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("category", validateCategory); err != nil {
		return errors.Wrap(err, "register category validation")
	}

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
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
