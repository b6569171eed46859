package reflection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserContent(t *testing.T) {
	pc := PromptContext{
		IdentityName:        "Disciplined Founder",
		IdentityDescription: "ships every day",
		Traits:              []string{"focused", "consistent"},
		Behaviors: []BehaviorEntry{
			{Description: "shipped feature", AlignmentScore: 9},
			{Description: "skipped workout", AlignmentScore: 3},
		},
	}

	content := buildUserContent(pc)
	assert.Contains(t, content, "Identity: Disciplined Founder")
	assert.Contains(t, content, "Description: ships every day")
	assert.Contains(t, content, "Traits: focused, consistent")
	assert.Contains(t, content, "- shipped feature (alignment: 9/10)")
	assert.Contains(t, content, "- skipped workout (alignment: 3/10)")
}

func TestBuildUserContent_EmptyDay(t *testing.T) {
	pc := PromptContext{IdentityName: "Writer"}

	content := buildUserContent(pc)
	assert.Contains(t, content, emptyDayPlaceholder)
	assert.Contains(t, content, "Traits: \n")
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"title":"x"}`, `{"title":"x"}`},
		{"json fence", "```json\n{\"title\":\"x\"}\n```", `{"title":"x"}`},
		{"plain fence", "```\n{\"title\":\"x\"}\n```", `{"title":"x"}`},
		{"surrounding whitespace", "  \n{\"title\":\"x\"}\n  ", `{"title":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}
