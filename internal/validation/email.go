package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern определяет допустимый формат email
// Упрощенная проверка: непустые local и domain части, один '@'
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// MaxEmailLen максимальная длина email
const MaxEmailLen = 254

// ValidateEmail проверяет, что email соответствует требованиям
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email has invalid format")
	}

	return nil
}
