package config

import "errors"

var (
	ErrInvalidServerConfigs  = errors.New("invalid server configs provided")
	ErrInvalidAppConfigs     = errors.New("invalid app configs provided")
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configs provided")
)
