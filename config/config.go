package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/libsys/backend/internal/cache"
	"github.com/libsys/backend/pkg/kafka"
	"github.com/libsys/backend/pkg/logger"
	"github.com/libsys/backend/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

type Circulation struct {
	LoanDurationDays int    `envconfig:"LOAN_DURATION_DAYS" default:"14"`
	MaxActiveLoans   int    `envconfig:"MAX_ACTIVE_LOANS" default:"3"`
	DailyFine        string `envconfig:"DAILY_FINE" default:"2.00"`

	CreateLoanRateRequests int           `envconfig:"CREATE_LOAN_RATE_REQUESTS" default:"5"`
	CreateLoanRateWindow   time.Duration `envconfig:"CREATE_LOAN_RATE_WINDOW" default:"60s"`
}

type Notifications struct {
	DueSoonDays       int           `envconfig:"NOTIFICATION_DUE_SOON_DAYS" default:"3"`
	MaxPerRun         int           `envconfig:"NOTIFICATION_MAX_PER_RUN" default:"100"`
	SchedulerInterval time.Duration `envconfig:"NOTIFICATION_SCHEDULER_INTERVAL" default:"5m"`
}

type Config struct {
	Server        HTTPServer `yaml:"server"`
	Database      postgres.Config
	Redis         cache.Config
	Kafka         kafka.Config
	Circulation   Circulation
	Notifications Notifications
	Log           logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return &cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
