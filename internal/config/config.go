package config

import (
	"fmt"
	"os"
	"time"

	"github.com/DavidGamba/go-getoptions"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	Storage    string `yaml:"storage" env:"STORAGE" env-default:"postgres"`
	TimeZone   string `yaml:"time_zone" env:"TIME_ZONE" env-default:"UTC"`
	LabID      int64  `yaml:"lab_id" env:"LAB_ID" env-default:"1"`
	Database   `yaml:"database"`
	HTTPServer `yaml:"http_server"`
	Reminder   `yaml:"reminder"`
	SMTP       `yaml:"smtp"`
	RabbitMQ   `yaml:"rabbitmq"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"lab_booker"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Migrate  bool   `yaml:"migrate" env:"DB_MIGRATE" env-default:"true"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Reminder controls the in-process reminder ticker. A zero interval leaves
// the pass to an external scheduler calling POST /reminders/run.
type Reminder struct {
	Interval time.Duration `yaml:"interval" env:"REMINDER_INTERVAL" env-default:"0s"`
}

type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"2525"`
	User     string `yaml:"user" env:"SMTP_USER"`
	Password string `yaml:"password" env:"SMTP_PASS"`
	From     string `yaml:"from" env:"FROM_EMAIL" env-default:"lab-booker@localhost"`
}

type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"lab.notifications"`
	Prefix   string `yaml:"prefix" env:"RABBITMQ_PUBLISH_PREFIX" env-default:"notification"`
}

func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	if _, err := cfg.Location(); err != nil {
		panic(err.Error())
	}

	return &cfg
}

// Location resolves TimeZone; lab dates and the reminder pass are computed in it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time_zone %q: %w", c.TimeZone, err)
	}

	return loc, nil
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	opt := getoptions.New()
	opt.StringVar(&res, "config", "", opt.Alias("c"), opt.Description("the path to the configuration file"))

	if _, err := opt.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n\n", err)
		fmt.Fprint(os.Stderr, opt.Help(getoptions.HelpSynopsis))
	}

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
