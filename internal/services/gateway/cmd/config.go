package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPPort     string        `env:"HTTP_PORT" envDefault:"5009"`
	GRPCPort     string        `env:"GRPC_PORT" envDefault:"50051"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"3s"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"5s"`
	Seed         uint64        `env:"RANDOM_SEED" envDefault:"0"` // 0 = seme dal clock

	// MQTT (plugin RabbitMQ); host vuoto = integrazione disattivata
	MQTTHost         string `env:"MQTT_HOST"`
	MQTTPort         int    `env:"MQTT_PORT" envDefault:"1883"`
	MQTTUser         string `env:"MQTT_USER" envDefault:"guest"`
	MQTTPassword     string `env:"MQTT_PASSWORD" envDefault:"guest"`
	MQTTClientID     string `env:"MQTT_CLIENT_ID" envDefault:"agri-dashboard"`
	MQTTSampleTopic  string `env:"MQTT_SAMPLE_TOPIC" envDefault:"dashboard/samples/{plot}"`
	MQTTEventTopic   string `env:"MQTT_EVENT_TOPIC" envDefault:"dashboard/events/{kind}"`
	MQTTCommandTopic string `env:"MQTT_COMMAND_TOPIC" envDefault:"dashboard/command/#"`

	// Influx; URL vuoto = export disattivato
	InfluxURL         string `env:"INFLUX_URL"`
	InfluxToken       string `env:"INFLUX_TOKEN"`
	InfluxOrg         string `env:"INFLUX_ORG" envDefault:"sdcc"`
	InfluxBucket      string `env:"INFLUX_BUCKET" envDefault:"agri"`
	InfluxMeasurement string `env:"INFLUX_MEASUREMENT" envDefault:"plot_reading"`

	ExportQueue int           `env:"EXPORT_QUEUE" envDefault:"256"`
	CBFailures  int           `env:"CB_FAILURES" envDefault:"3"`
	CBOpenFor   time.Duration `env:"CB_OPEN_FOR" envDefault:"30s"`
}

// loadConfig reads the environment first; flags override it.
func loadConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("agri-dashboard", flag.ContinueOnError)
	fs.StringVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "HTTP listen port")
	fs.StringVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "gRPC listen port")
	fs.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "simulation tick interval")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = time based)")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.TickInterval <= 0 {
		return cfg, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}
