package config

import (
	"github.com/MonkyMars/gecho"
)

// logger is the process-wide default used outside the request path,
// mainly by main and the shutdown handler.
var logger gecho.Logger

func InitializeLogger() *gecho.Logger {
	logger = *gecho.NewDefaultLogger()
	return &logger
}

func GetLogger() *gecho.Logger {
	return &logger
}
