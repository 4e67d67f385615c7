package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateListTitle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"Valid", "Top albums of the 90s", false},
		{"Exactly Max Length", strings.Repeat("a", 200), false},
		{"Empty", "", true},
		{"Whitespace Only", "   ", true},
		{"Too Long", strings.Repeat("a", 201), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListTitle(tt.title)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateListTags(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateListTags(""))
	assert.NoError(t, ValidateListTags("music, albums, 90s"))
	assert.NoError(t, ValidateListTags(strings.Repeat("a", 500)))
	assert.Error(t, ValidateListTags(strings.Repeat("a", 501)))
}

func TestValidatePrompt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		prompt  string
		wantErr bool
	}{
		{"Valid", "Best hiking trails in the Alps", false},
		{"Empty", "", true},
		{"Whitespace Only", "  \n ", true},
		{"Too Long", strings.Repeat("p", 2001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrompt(tt.prompt)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
