// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package config

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rapidaai/pkg/configs"
	"github.com/spf13/viper"
)

// Application config structure
type AppConfig struct {
	Name     string `mapstructure:"service_name" validate:"required"`
	Version  string `mapstructure:"version" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"required"`

	PostgresConfig configs.PostgresConfig `mapstructure:"postgres" validate:"required"`

	// LLM backend: any OpenAI-compatible endpoint (Sarvam-M, vLLM, OpenAI)
	LlmModel   string `mapstructure:"llm_model" validate:"required"`
	LlmBaseUrl string `mapstructure:"llm_base_url"`
	LlmApiKey  string `mapstructure:"llm_api_key"`

	// Sarvam speech credentials
	SarvamApiKey string `mapstructure:"sarvam_api_key"`

	// Directories where call artifacts are written
	TranscriptDir string `mapstructure:"transcript_dir" validate:"required"`
	LogDir        string `mapstructure:"log_dir" validate:"required"`
}

// reading config and intializing configs for application
func InitConfig() (*viper.Viper, error) {
	vConfig := viper.NewWithOptions(viper.KeyDelimiter("__"))

	vConfig.AddConfigPath(".")
	vConfig.SetConfigName(".env")
	path := os.Getenv("ENV_PATH")
	if path != "" {
		log.Printf("env path %v", path)
		vConfig.SetConfigFile(path)
	}
	vConfig.SetConfigType("env")
	vConfig.AutomaticEnv()

	setDefault(vConfig)
	if err := vConfig.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		log.Printf("Reading from env varaibles.")
	}

	return vConfig, nil
}

func setDefault(v *viper.Viper) {
	// setting all default values
	v.SetDefault("SERVICE_NAME", "caller-api")
	v.SetDefault("VERSION", "0.0.1")
	v.SetDefault("LOG_LEVEL", "debug")

	v.SetDefault("LLM_MODEL", "sarvam-m")
	v.SetDefault("LLM_BASE_URL", "https://api.sarvam.ai/v1")
	v.SetDefault("LLM_API_KEY", "")
	v.SetDefault("SARVAM_API_KEY", "")

	v.SetDefault("TRANSCRIPT_DIR", "transcripts")
	v.SetDefault("LOG_DIR", "logs")

	v.SetDefault("POSTGRES__HOST", "localhost")
	v.SetDefault("POSTGRES__PORT", 5432)
	v.SetDefault("POSTGRES__DB_NAME", "caller")
	v.SetDefault("POSTGRES__AUTH__USER", "caller")
	v.SetDefault("POSTGRES__AUTH__PASSWORD", "caller")
	v.SetDefault("POSTGRES__MAX_OPEN_CONNECTION", 10)
	v.SetDefault("POSTGRES__MAX_IDEAL_CONNECTION", 10)
	v.SetDefault("POSTGRES__SSL_MODE", "disable")
}

// GetAppConfig unmarshals and validates the application configuration.
func GetAppConfig(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
