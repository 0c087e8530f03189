package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

// Size limits (in bytes)
const (
	MaxImportSize = 5 * 1024 * 1024 // 5MB - import document limit
	MaxConfigSize = 64 * 1024       // 64KB - single widget config limit
)

// String length limits
const (
	MaxIDLength    = 128
	MaxNameLength  = 256
	MaxTitleLength = 256
	MaxConfigDepth = 8
)

// SafeIDPattern allows alphanumeric, hyphens, underscores
var SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates an ID path parameter
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateName validates a dashboard name
func ValidateName(name, fieldName string) error {
	return ValidateString(strings.TrimSpace(name), fieldName, 1, MaxNameLength, true)
}

// ValidateTitle validates an optional widget title
func ValidateTitle(title string) error {
	return ValidateString(title, "title", 0, MaxTitleLength, false)
}

// ValidateConfig checks a widget config for size and nesting depth
func ValidateConfig(config map[string]interface{}) error {
	if config == nil {
		return nil
	}

	data, err := sonic.Marshal(config)
	if err != nil {
		return fmt.Errorf("config is not serializable: %w", err)
	}
	if len(data) > MaxConfigSize {
		return fmt.Errorf("config size %d bytes exceeds maximum %d bytes", len(data), MaxConfigSize)
	}

	return ValidateJSONDepth(config, MaxConfigDepth)
}

// ValidateImportSize rejects oversized import documents before parsing
func ValidateImportSize(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("import document is empty")
	}
	if len(data) > MaxImportSize {
		return fmt.Errorf("import size %d bytes exceeds maximum %d bytes", len(data), MaxImportSize)
	}
	return nil
}

// ValidateJSONDepth checks if JSON nesting depth is within limits
func ValidateJSONDepth(data interface{}, maxDepth int) error {
	return checkDepth(data, 0, maxDepth)
}

func checkDepth(data interface{}, currentDepth int, maxDepth int) error {
	if currentDepth > maxDepth {
		return fmt.Errorf("JSON nesting depth %d exceeds maximum %d", currentDepth, maxDepth)
	}

	switch v := data.(type) {
	case map[string]interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	}

	return nil
}
