package api

import (
	"time"

	"github.com/getforesight/foresight-backend/infra"
)

type Configuration struct {
	Env               string
	AppName           string
	ApiVersion        string
	Port              string
	ForesightAppUrl   string
	SimulationTimeout time.Duration
	DefaultTimeout    time.Duration
	MaxRequestSize    int64
	EnablePrometheus  bool

	GcpConfig infra.GcpConfig
}
