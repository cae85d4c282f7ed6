package config

import "errors"

// ErrConfigLoad marks failures to load configuration or the envelope
// template. It is fatal: no row is processed after it.
var ErrConfigLoad = errors.New("config load failed")
