package errors

import "fmt"

// Common error types.
var (
	// Recipe loading errors.
	ErrNoRecipeFound     = fmt.Errorf("no recipe file found")
	ErrRecipeParse       = fmt.Errorf("failed to parse recipe")
	ErrEmptyPackagePath  = fmt.Errorf("package path cannot be empty")
	ErrSubPackageMissing = fmt.Errorf("sub package not found")

	// Build-settings resolution errors.
	ErrUnknownConfiguration = fmt.Errorf("unknown configuration")
	ErrUnknownBuildType     = fmt.Errorf("unknown build type")

	// Persistence errors.
	ErrUnresolvedVersion = fmt.Errorf("package has no resolved version")
	ErrNotRootPackage    = fmt.Errorf("operation is only valid on a root package")

	// Config errors.
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")
	ErrConfigEncode     = fmt.Errorf("failed to encode config")
	ErrConfigDirectory  = fmt.Errorf("failed to create config directory")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
