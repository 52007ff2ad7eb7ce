package sitesource

import (
	"github.com/goliatone/go-sitesource/internal/runtimeconfig"
	"github.com/goliatone/go-sitesource/internal/source"
)

var (
	ErrConfiguration  = runtimeconfig.ErrConfiguration
	ErrAttributeParse = source.ErrAttributeParse
	ErrFileAccess     = source.ErrFileAccess
)

type (
	Config              = runtimeconfig.Config
	LoggingConfig       = runtimeconfig.LoggingConfig
	ConfigurationError  = runtimeconfig.ConfigurationError
	AttributeParseError = source.AttributeParseError
	FileAccessError     = source.FileAccessError
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// IsConfigurationError reports whether err came from config validation.
func IsConfigurationError(err error) bool {
	return runtimeconfig.IsConfigurationError(err)
}

// IsAttributeParseError reports whether err came from metadata parsing.
func IsAttributeParseError(err error) bool {
	return source.IsAttributeParseError(err)
}

// IsFileAccessError reports whether err came from a fatal filesystem failure.
func IsFileAccessError(err error) bool {
	return source.IsFileAccessError(err)
}
