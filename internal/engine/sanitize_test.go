package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terminal-bench/supportdesk/internal/config"
)

func newTestSanitizer() *Sanitizer {
	return NewSanitizer(1000, config.DefaultKeywords().DangerousChars, nil)
}

func TestSanitize(t *testing.T) {
	s := newTestSanitizer()

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, "hello", s.Sanitize("  hello \n"))
	})

	t.Run("should remove dangerous characters", func(t *testing.T) {
		got := s.Sanitize(`<script>alert("x")&'</script>`)
		for _, ch := range []string{"<", ">", `"`, "'", "&"} {
			assert.NotContains(t, got, ch)
		}
		assert.Equal(t, "scriptalert(x)/script", got)
	})

	t.Run("should truncate overlong input", func(t *testing.T) {
		long := strings.Repeat("a", 1500)
		got := s.Sanitize(long)
		assert.Len(t, got, 1000)
	})

	t.Run("should count truncations", func(t *testing.T) {
		local := newTestSanitizer()
		local.Sanitize(strings.Repeat("b", 2000))
		local.Sanitize("short")
		assert.Equal(t, int64(1), local.Truncations())
	})

	t.Run("should return empty string for whitespace-only input", func(t *testing.T) {
		assert.Equal(t, "", s.Sanitize("   \t  "))
	})

	t.Run("truncation cutting at a space stays trimmed", func(t *testing.T) {
		got := s.Sanitize(strings.Repeat("a ", 501))
		assert.Equal(t, got, s.Sanitize(got))
		assert.False(t, strings.HasSuffix(got, " "))
		assert.Len(t, []rune(got), 999)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		inputs := []string{
			"  plain text  ",
			`quotes "and" <tags> & more`,
			strings.Repeat("x", 1200),
			strings.Repeat("a ", 501),
			"",
		}
		for _, in := range inputs {
			once := s.Sanitize(in)
			assert.Equal(t, once, s.Sanitize(once))
		}
	})

	t.Run("output never exceeds limit or contains dangerous chars", func(t *testing.T) {
		inputs := []string{
			strings.Repeat(`<>"'&`, 500),
			strings.Repeat("a<b>c", 400),
			"normal message",
		}
		for _, in := range inputs {
			got := s.Sanitize(in)
			assert.LessOrEqual(t, len([]rune(got)), 1000)
			assert.NotContains(t, got, "<")
			assert.NotContains(t, got, "&")
		}
	})
}
