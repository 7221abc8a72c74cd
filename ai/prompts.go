package ai

import "fmt"

const generationPromptTemplate = `You are building the knowledge base for a customer-facing chat assistant.
Focus on this aspect of the document: %s

Generate natural, conversational question and answer pairs grounded in the text
the user provides. Questions should read the way a real visitor would ask them;
answers must be complete and use only information from the text. Format every
pair exactly as:

Q: [question]
A: [answer]

Do not number the pairs and do not add any commentary outside the Q:/A: lines.`

// BuildGenerationPrompt creates the system prompt for vendor Q&A generation,
// grounded in the user's context hint.
func BuildGenerationPrompt(contextHint string) string {
	return fmt.Sprintf(generationPromptTemplate, contextHint)
}
