package service

import (
	"regexp"
	"strings"

	"github.com/samandr77/microservices/challenge/internal/entity"
)

var (
	phoneRegexp   = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)
	phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

func ValidatePhone(phone string) error {
	if !phoneRegexp.MatchString(phone) {
		return entity.ErrPhoneInvalidFormat
	}

	return nil
}

// NormalizePhone strips separators and a leading plus and validates the result.
func NormalizePhone(phone string) (string, error) {
	normalized := phoneStripper.Replace(strings.TrimSpace(phone))

	if err := ValidatePhone(normalized); err != nil {
		return "", err
	}

	return strings.TrimPrefix(normalized, "+"), nil
}

// ValidateCode checks that code is exactly length decimal digits.
func ValidateCode(code string, length int) error {
	if len(code) != length {
		return entity.ErrCodeInvalidFormat
	}

	for _, r := range code {
		if r < '0' || r > '9' {
			return entity.ErrCodeInvalidFormat
		}
	}

	return nil
}
