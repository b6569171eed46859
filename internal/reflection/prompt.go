package reflection

import (
	"fmt"
	"strings"
)

// systemInstruction frames the model as an identity coach and pins the
// response to a strict JSON document the presentation layer can render.
const systemInstruction = `You are a psychologically intelligent identity performance coach.
Analyze behavioral alignment with the stated identity.
Be specific, insightful, and constructive.
Avoid generic motivation.
Focus on identity reinforcement and misalignment patterns.

Respond with valid JSON only, in this exact structure:
{
  "title": "string",
  "alignmentSummary": "string",
  "observations": ["string", "string", "string"],
  "identityCorrection": "string",
  "closingStatement": "string"
}`

// emptyDayPlaceholder stands in for the behavior list on days with no
// logged behaviors, so a reflection on an empty day is still a valid, if
// sparse, output.
const emptyDayPlaceholder = "(No behaviors logged today)"

// buildUserContent renders the structured prompt context into the user
// message for the generation capability.
func buildUserContent(pc PromptContext) string {
	behaviorLines := make([]string, 0, len(pc.Behaviors))
	for _, b := range pc.Behaviors {
		behaviorLines = append(behaviorLines, fmt.Sprintf("- %s (alignment: %d/10)", b.Description, b.AlignmentScore))
	}
	behaviorsText := strings.Join(behaviorLines, "\n")
	if behaviorsText == "" {
		behaviorsText = emptyDayPlaceholder
	}

	return fmt.Sprintf("Identity: %s\nDescription: %s\nTraits: %s\n\nToday's behaviors and alignment:\n%s\n",
		pc.IdentityName,
		pc.IdentityDescription,
		strings.Join(pc.Traits, ", "),
		behaviorsText)
}

// stripFences removes a wrapping markdown code fence from model output.
// Providers occasionally fence the JSON despite the instruction.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSpace(content)
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
