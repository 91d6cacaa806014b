package engine

import "fmt"

func buildSubjectPrompt(prompt, imageName string) string {
	return fmt.Sprintf(`You are an image quality assessor. Rate how well a generated image adheres to the subject of the prompt that produced it.

Prompt: %q
Image file name: %q

Output ONLY valid JSON with this exact structure (no markdown, no explanation):
{"subjectScore": 75}

Rules:
- subjectScore: integer 0-100
- 100 means the image clearly depicts every subject named in the prompt
- 0 means the image has nothing to do with the prompt`, prompt, imageName)
}

func buildExpressionPrompt(prompt string) string {
	return fmt.Sprintf(`You are an image quality assessor. Rate the creative expressiveness and emotional mood conveyed by a generation prompt.

Prompt: %q

Output ONLY valid JSON with this exact structure (no markdown, no explanation):
{"creativityScore": 70, "moodScore": 80}

Rules:
- creativityScore: integer 0-100, how original and richly detailed the prompt is
- moodScore: integer 0-100, how strong and coherent the emotional tone is
- Judge the prompt text itself, not hypothetical output quality`, prompt)
}
