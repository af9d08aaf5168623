package config

import (
	"github.com/shopspring/decimal"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[payout]"`
}

// Coinbase holds the exchange credentials. The secret never leaves this
// struct except to build a request signer.
type Coinbase struct {
	ApiKey    string `envconfig:"API_KEY"`
	ApiSecret string `envconfig:"API_SECRET"`
	ApiUrl    string `envconfig:"API_URL" default:"https://api.coinbase.com/v1"`
}

type Payout struct {
	MinimumBitcoin decimal.Decimal `envconfig:"MINIMUM_BITCOIN" default:"1"`
	PayPalFeeCap   decimal.Decimal `envconfig:"PAYPAL_FEE_CAP" default:"20"`
	Notes          string          `envconfig:"NOTES" default:"Gratipay Bitcoin Payout"`
}

// Remote names the hosted app whose config vars fill unset variables.
type Remote struct {
	App string `envconfig:"APP"`
}

type Redis struct {
	URL         string `envconfig:"URL"`
	NoncePrefix string `envconfig:"NONCE_PREFIX" default:"payout:nonce:"`
}

type Kafka struct {
	Brokers []string `envconfig:"BROKERS"`
	Topic   string   `envconfig:"TOPIC" default:"payouts"`
}

type Metrics struct {
	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL"`
	Job            string `envconfig:"JOB" default:"payout_tasks"`
}

type App struct {
	Env      string    `envconfig:"APP_ENV" default:"development"`
	Log      *Log      `envconfig:"LOG"`
	DB       *DB       `envconfig:"DATABASE"`
	Coinbase *Coinbase `envconfig:"COINBASE"`
	Payout   *Payout   `envconfig:"PAYOUT"`
	Remote   *Remote   `envconfig:"REMOTE_CONFIG"`
	Redis    *Redis    `envconfig:"REDIS"`
	Kafka    *Kafka    `envconfig:"KAFKA"`
	Metrics  *Metrics  `envconfig:"METRICS"`
}

// IsDevelopment reports whether the app runs with development defaults.
func (a *App) IsDevelopment() bool {
	return a.Env == "development"
}
