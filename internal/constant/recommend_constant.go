package constant

const (
	RecommenderSystemPrompt = "You are a short, friendly movie recommender."

	ExplanationTemperature = 0.7
	ExplanationMaxTokens   = 60

	// EmbeddingDimensions must match the movies.embedding column and match_movies.
	EmbeddingDimensions = 1536

	MatchCount  = 5
	SampleCount = 5

	RationalePlaceholder = "Thinking…"
)

// User-facing messages
const (
	MessageMissingAnswers   = "Please answer all questions."
	MessageEmptyEmbedding   = "Could not create an embedding for your answers."
	MessageEmbeddingFailed  = "Could not reach the recommendation service. Please try again."
	MessageSubmissionFailed = "Something went wrong with your request. Please try again."
	MessageNoMatches        = "No matches found."
	MessageFallbackMatches  = "No perfect matches — showing similar picks:"
)
