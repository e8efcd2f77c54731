package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"

	envPrefix         = "APP_"
	DefaultConfigPath = "config.yaml"
)

// ClassEntry maps a class display name to its folder under the dataset root.
type ClassEntry struct {
	Name   string `koanf:"name" validate:"required"`
	Folder string `koanf:"folder" validate:"required"`
}

// SubjectEntry maps a subject display name to the substring matched against archive names.
type SubjectEntry struct {
	Name   string `koanf:"name" validate:"required"`
	Filter string `koanf:"filter" validate:"required"`
}

type OllamaSettings struct {
	BaseURL        string `koanf:"base_url" validate:"required,url"`
	Model          string `koanf:"model" validate:"required"`
	EmbeddingModel string `koanf:"embedding_model" validate:"required"`
}

type GeminiSettings struct {
	Key            string `koanf:"key"`
	Model          string `koanf:"model" validate:"required"`
	EmbeddingModel string `koanf:"embedding_model" validate:"required"`
}

type RedisSettings struct {
	Addr     string `koanf:"addr" validate:"required"`
	Password string `koanf:"password"`
	Enabled  bool   `koanf:"enabled"`
}

type Settings struct {
	ListenAddr  string         `koanf:"listen_addr" validate:"required"`
	LogLevel    string         `koanf:"log_level" validate:"oneof=debug info warn error"`
	DatasetRoot string         `koanf:"dataset_root" validate:"required"`
	Provider    string         `koanf:"provider" validate:"oneof=ollama gemini"`
	Ollama      OllamaSettings `koanf:"ollama"`
	Gemini      GeminiSettings `koanf:"gemini"`
	Redis       RedisSettings  `koanf:"redis"`
	Classes     []ClassEntry   `koanf:"classes" validate:"required,min=1,dive"`
	Subjects    []SubjectEntry `koanf:"subjects" validate:"required,min=1,dive"`
}

func DefaultSettings() Settings {
	return Settings{
		ListenAddr:  ServerListenAddr,
		LogLevel:    "debug",
		DatasetRoot: DatasetRoot,
		Provider:    ProviderOllama,
		Ollama: OllamaSettings{
			BaseURL:        "http://localhost:11434",
			Model:          "gemma:2b-instruct",
			EmbeddingModel: "all-minilm:l6-v2",
		},
		Gemini: GeminiSettings{
			Model:          "gemini-2.5-flash-lite",
			EmbeddingModel: "gemini-embedding-001",
		},
		Redis: RedisSettings{
			Addr:    "127.0.0.1:6379",
			Enabled: true,
		},
		Classes: []ClassEntry{
			{Name: "Class 3", Folder: "class3_books"},
			{Name: "Class 4", Folder: "class4_books"},
		},
		Subjects: []SubjectEntry{
			{Name: "English", Filter: "english"},
			{Name: "Maths", Filter: "maths"},
			{Name: "EVS", Filter: "evs"},
		},
	}
}

// LoadSettings layers defaults, the yaml file at path (if present) and APP_ prefixed
// environment variables (APP_OLLAMA__BASE_URL -> ollama.base_url), then validates the result.
func LoadSettings(path string) (Settings, error) {
	var settings Settings
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return settings, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return settings, fmt.Errorf("loading environment: %w", err)
	}

	if err := k.Unmarshal("", &settings); err != nil {
		return settings, fmt.Errorf("unmarshal settings: %w", err)
	}
	settings = settings.withDefaults()
	// a bool zero value cannot tell "absent" from "false"
	if !k.Exists("redis.enabled") {
		settings.Redis.Enabled = DefaultSettings().Redis.Enabled
	}

	if err := ValidateSettings(settings); err != nil {
		return settings, err
	}
	return settings, nil
}

func ValidateSettings(settings Settings) error {
	validate := validator.New()
	err := validate.Struct(settings)
	if err == nil {
		if settings.Provider == ProviderGemini && settings.Gemini.Key == "" {
			return errors.New("settings validation failed: gemini.key is required when provider is gemini")
		}
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("settings validation failed: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("settings validation failed:")
	for _, e := range errs {
		sb.WriteString(fmt.Sprintf("\n  - %s: failed '%s' (value: %v)", e.Namespace(), e.Tag(), e.Value()))
	}
	return errors.New(sb.String())
}

// withDefaults fills every unset field from DefaultSettings. Catalog lists are replaced wholesale, never merged.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.ListenAddr == "" {
		s.ListenAddr = d.ListenAddr
	}
	if s.LogLevel == "" {
		s.LogLevel = d.LogLevel
	}
	if s.DatasetRoot == "" {
		s.DatasetRoot = d.DatasetRoot
	}
	if s.Provider == "" {
		s.Provider = d.Provider
	}
	if s.Ollama.BaseURL == "" {
		s.Ollama.BaseURL = d.Ollama.BaseURL
	}
	if s.Ollama.Model == "" {
		s.Ollama.Model = d.Ollama.Model
	}
	if s.Ollama.EmbeddingModel == "" {
		s.Ollama.EmbeddingModel = d.Ollama.EmbeddingModel
	}
	if s.Gemini.Model == "" {
		s.Gemini.Model = d.Gemini.Model
	}
	if s.Gemini.EmbeddingModel == "" {
		s.Gemini.EmbeddingModel = d.Gemini.EmbeddingModel
	}
	if s.Redis.Addr == "" {
		s.Redis.Addr = d.Redis.Addr
	}
	if len(s.Classes) == 0 {
		s.Classes = d.Classes
	}
	if len(s.Subjects) == 0 {
		s.Subjects = d.Subjects
	}
	return s
}

// ClassFolder resolves a class display name to its dataset folder.
func (s Settings) ClassFolder(name string) (string, bool) {
	for _, c := range s.Classes {
		if c.Name == name {
			return c.Folder, true
		}
	}
	return "", false
}

// SubjectFilter resolves a subject display name to its archive filter.
func (s Settings) SubjectFilter(name string) (string, bool) {
	for _, sub := range s.Subjects {
		if sub.Name == name {
			return sub.Filter, true
		}
	}
	return "", false
}

func (s Settings) ClassNames() []string {
	names := make([]string, 0, len(s.Classes))
	for _, c := range s.Classes {
		names = append(names, c.Name)
	}
	return names
}

func (s Settings) SubjectNames() []string {
	names := make([]string, 0, len(s.Subjects))
	for _, sub := range s.Subjects {
		names = append(names, sub.Name)
	}
	return names
}
