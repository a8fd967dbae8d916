package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhance(t *testing.T) {
	e := NewEngine()

	t.Run("embeds the literal user message", func(t *testing.T) {
		prompt := e.Enhance("Where can I get help with my rent?")
		assert.Contains(t, prompt, "Where can I get help with my rent?")
		assert.Contains(t, prompt, "You are Ash")
		assert.Contains(t, prompt, "Citizens Advice")
	})

	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, e.Enhance("hello"), e.Enhance("hello"))
	})

	t.Run("templates an empty message without failing", func(t *testing.T) {
		prompt := e.Enhance("")
		assert.Contains(t, prompt, "You are Ash")
	})
}

func TestPostProcess(t *testing.T) {
	e := NewEngine()

	t.Run("prepends opener when reply has no first-person marker", func(t *testing.T) {
		reply := e.PostProcess("The drop-in runs every Tuesday morning.", "when is the drop-in")
		assert.True(t, strings.HasPrefix(reply, empatheticOpener))
	})

	t.Run("leaves first-person replies untouched at the front", func(t *testing.T) {
		reply := e.PostProcess("I'd suggest the Tuesday drop-in.", "when is the drop-in")
		assert.False(t, strings.HasPrefix(reply, empatheticOpener))
		assert.True(t, strings.HasPrefix(reply, "I'd suggest"))
	})

	t.Run("appends solidarity sentence for support-seeking messages", func(t *testing.T) {
		reply := e.PostProcess("I'm sorry things are tough.", "I've been really struggling lately")
		assert.Equal(t, 1, strings.Count(reply, solidaritySentence))
	})

	t.Run("solidarity sentence never accumulates", func(t *testing.T) {
		message := "I've been really struggling lately"
		once := e.PostProcess("I'm sorry things are tough.", message)
		twice := e.PostProcess(once, message)
		assert.Equal(t, 1, strings.Count(twice, solidaritySentence))
	})

	t.Run("skips solidarity sentence for neutral messages", func(t *testing.T) {
		reply := e.PostProcess("I can tell you about that.", "what time does the office open")
		assert.NotContains(t, reply, solidaritySentence)
	})

	t.Run("appends matched resources in directory order", func(t *testing.T) {
		reply := e.PostProcess("I can point you somewhere.", "I need housing help")
		assert.Contains(t, reply,
			"Shelter Housing Advice, Council Housing Options Team, Community Hub Drop-In, Citizens Advice")
	})

	t.Run("deduplicates resources shared between keywords", func(t *testing.T) {
		// "legal" and "discrimination" both map to the legal clinic.
		reply := e.PostProcess("I can point you somewhere.", "legal advice about discrimination")
		assert.Equal(t, 1, strings.Count(reply, "Citizens Advice Legal Clinic"))
		assert.Contains(t, reply, "Equality Advisory Support Service")
	})

	t.Run("no resource section for resource-free messages", func(t *testing.T) {
		reply := e.PostProcess("I hope you have a lovely day.", "good morning")
		assert.NotContains(t, reply, resourceLeadIn)
	})
}

func TestFallback(t *testing.T) {
	e := NewEngine()

	t.Run("matches topic keywords case-insensitively", func(t *testing.T) {
		reply := e.Fallback("I need HOUSING advice urgently")
		assert.Contains(t, reply, "Shelter")
	})

	t.Run("first declared topic wins on multiple matches", func(t *testing.T) {
		reply := e.Fallback("can the nhs help with my benefits claim")
		// "benefits" precedes "nhs" in the knowledge base.
		assert.Contains(t, reply, "Turn2us")
	})

	t.Run("unmatched messages get one of the generic replies", func(t *testing.T) {
		for i := 0; i < 25; i++ {
			reply := e.Fallback("xyzzy")
			require.NotEmpty(t, reply)
			assert.Contains(t, genericFallbacks, reply)
		}
	})

	t.Run("total for empty input", func(t *testing.T) {
		assert.NotEmpty(t, e.Fallback(""))
	})
}
