// Package config loads typed configuration from environment variables.
//
// Config structs use github.com/caarlos0/env/v11 tags. A .env file in the
// working directory is loaded once through github.com/joho/godotenv;
// variables already set in the process take precedence.
//
//	import "github.com/JhonRainbow6/WebProject/pkg/config"
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
// Types implementing Validator are checked after parsing, so a bad value
// stops the process at startup instead of surfacing on the first request.
package config
