// Safe logging helpers. In production, personal and financial details are
// masked before they reach the logs.
package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
)

var IsProduction = os.Getenv("GIN_MODE") == "release" ||
	os.Getenv("ENVIRONMENT") == "production"

var (
	emailRegex  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	amountRegex = regexp.MustCompile(`\b\d+([.,]\d{1,2})?\s*(€|EUR|USD|PHP|₱|\$)\b`)
	uuidRegex   = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskString masks emails, currency amounts and full UUIDs in production.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := emailRegex.ReplaceAllString(input, "***@***.***")
	result = amountRegex.ReplaceAllString(result, "***")
	result = uuidRegex.ReplaceAllStringFunc(result, func(id string) string {
		return id[:8] + "..."
	})
	return result
}

// MaskEmail keeps the first two characters of the local part.
func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	if len(email) > 2 {
		return email[:2] + "***"
	}
	return "***"
}

// SafeLogf logs with sensitive data masked in production.
func SafeLogf(format string, args ...interface{}) {
	log.Printf("%s", MaskString(fmt.Sprintf(format, args...)))
}
