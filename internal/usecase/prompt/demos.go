package prompt

// Inputs used by the scripted prompt engineering walkthrough.
const (
	MathQuestion = "If a bakery sells 120 cookies on Monday, 150% more on Tuesday, " +
		"and then half of Tuesday's amount on Wednesday, how many cookies were sold in total?"

	SentimentTask  = "Classify the sentiment of customer reviews as Positive, Negative, or Neutral."
	SentimentInput = "The quality is amazing but the price is too high for what you get."

	ArchitectureQuestion = "What are the three most important factors to consider when designing " +
		"a scalable microservices architecture?"

	OrderDescription = "A customer order for an e-commerce platform including customer info, " +
		"items, and shipping details"

	MetaTask          = "Extract key facts from news articles"
	MetaInitialPrompt = "Summarize this article"

	LatencyQuestion = "How can we reduce latency in a distributed system?"
	ArchitectRole   = "a senior distributed systems architect with 20 years of experience at major tech companies"
)

// SentimentExamples are the labeled reviews shown in the few-shot demo.
var SentimentExamples = []Example{
	{Input: "This product exceeded my expectations!", Output: "Positive"},
	{Input: "Completely disappointed with the service.", Output: "Negative"},
	{Input: "It's okay, nothing special but does the job.", Output: "Neutral"},
}
