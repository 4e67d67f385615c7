package validation

import (
	"fmt"
	"strings"
)

// ValidateListTitle checks list title requirements.
func ValidateListTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return fmt.Errorf("title must not exceed 200 characters")
	}
	return nil
}

// ValidateListTags checks the comma-separated tags field.
func ValidateListTags(tags string) error {
	if len(tags) > 500 {
		return fmt.Errorf("tags must not exceed 500 characters")
	}
	return nil
}

// ValidatePrompt checks a generation prompt before it is sent upstream.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("prompt is required")
	}
	if len(prompt) > 2000 {
		return fmt.Errorf("prompt must not exceed 2000 characters")
	}
	return nil
}
