package driven

// Prompt template names.
const (
	// PromptAnswerSystem is the system prompt framing the assistant.
	PromptAnswerSystem = "answer_system"

	// PromptAnswerWithContext wraps retrieved context and the question.
	// Takes two %s verbs: context, question.
	PromptAnswerWithContext = "answer_with_context"

	// PromptAnswerNoContext is used when nothing cleared the similarity
	// threshold. Takes one %s verb: question.
	PromptAnswerNoContext = "answer_no_context"
)

// PromptStore loads prompt templates by name.
// Implementations fall back to embedded defaults when a template is
// missing or unreadable.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}
