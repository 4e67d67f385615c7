package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numberedLines(n int) string {
	lines := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		lines = append(lines, fmt.Sprintf("item %d", i))
	}
	return strings.Join(lines, "\n")
}

func TestLimitContent(t *testing.T) {
	t.Parallel()

	t.Run("Under Cap Unchanged", func(t *testing.T) {
		content := numberedLines(5)
		assert.Equal(t, content, LimitContent(content))
	})

	t.Run("Exactly Cap Unchanged", func(t *testing.T) {
		content := numberedLines(MaxContentItems)
		assert.Equal(t, content, LimitContent(content))
	})

	t.Run("Over Cap Truncated", func(t *testing.T) {
		got := LimitContent(numberedLines(15))
		lines := strings.Split(got, "\n")
		assert.Len(t, lines, MaxContentItems)
		assert.Equal(t, "item 1", lines[0])
		assert.Equal(t, "item 10", lines[9])
	})

	t.Run("Surrounding Whitespace Trimmed", func(t *testing.T) {
		assert.Equal(t, "a\nb", LimitContent("\n  a\nb  \n"))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", LimitContent(""))
	})
}

func TestContentItems(t *testing.T) {
	t.Parallel()

	l := &List{Content: "alpha\nbeta\ngamma"}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, l.ContentItems())

	empty := &List{Content: "  "}
	assert.Nil(t, empty.ContentItems())
}
