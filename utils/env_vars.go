package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type envTypes interface {
	string | int | bool
}

func parseEnv[T envTypes](name, raw string) (T, error) {
	var parsed T
	switch p := any(&parsed).(type) {
	case *string:
		*p = raw
	case *int:
		intValue, err := strconv.Atoi(raw)
		if err != nil {
			return parsed, fmt.Errorf("environment variable %s: '%s' is not an integer", name, raw)
		}
		*p = intValue
	case *bool:
		boolValue, err := strconv.ParseBool(raw)
		if err != nil {
			return parsed, fmt.Errorf("environment variable %s: '%s' is not a boolean", name, raw)
		}
		*p = boolValue
	}
	return parsed, nil
}

// GetEnv returns the value of the environment variable, parsed to the type of
// the default value. An unset or empty variable yields the default; a value
// that does not parse is a startup error.
func GetEnv[T envTypes](name string, defaultValue T) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return defaultValue
	}
	parsed, err := parseEnv[T](name, raw)
	if err != nil {
		log.Fatal(err)
	}
	return parsed
}

func GetRequiredEnv[T envTypes](name string) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		log.Fatalf("%s environment variable is required", name)
	}
	parsed, err := parseEnv[T](name, raw)
	if err != nil {
		log.Fatal(err)
	}
	return parsed
}

func GetEnvDuration(name string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("environment variable %s: '%s' is not a duration", name, raw)
	}
	return duration
}
