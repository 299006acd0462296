package form

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Message returns the browser-style validation message for value under c,
// or "" when value is valid. Checks run in browser order: missing value,
// type mismatch, too long, too short. Length and type checks only apply to
// non-empty values.
func Message(c Constraints, value string) string {
	if value == "" {
		if c.Required {
			return "Please fill out this field."
		}
		return ""
	}
	if msg := typeMismatch(c.Type, value); msg != "" {
		return msg
	}
	n := utf8.RuneCountInString(value)
	if c.MaxLength > 0 && validate.Var(value, fmt.Sprintf("max=%d", c.MaxLength)) != nil {
		return fmt.Sprintf("Please shorten this text to %d characters or less (you are currently using %s).",
			c.MaxLength, characters(n))
	}
	if c.MinLength > 0 && validate.Var(value, fmt.Sprintf("min=%d", c.MinLength)) != nil {
		return fmt.Sprintf("Please lengthen this text to %d characters or more (you are currently using %s).",
			c.MinLength, characters(n))
	}
	return ""
}

func characters(n int) string {
	if n == 1 {
		return "1 character"
	}
	return fmt.Sprintf("%d characters", n)
}

func typeMismatch(t Type, value string) string {
	switch t {
	case TypeEmail:
		if validate.Var(value, "email") == nil {
			return ""
		}
		return emailMessage(value)
	case TypeURL:
		if validate.Var(value, "url") == nil {
			return ""
		}
		return "Please enter a URL."
	default:
		return ""
	}
}

func emailMessage(value string) string {
	at := strings.Index(value, "@")
	switch {
	case at < 0:
		return fmt.Sprintf("Please include an '@' in the email address. '%s' is missing an '@'.", value)
	case at == 0:
		return fmt.Sprintf("Please enter a part followed by '@'. '%s' is incomplete.", value)
	case at == len(value)-1:
		return fmt.Sprintf("Please enter a part following '@'. '%s' is incomplete.", value)
	default:
		return "Please enter an email address."
	}
}
