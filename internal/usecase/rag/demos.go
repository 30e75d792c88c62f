package rag

// Demo is one scripted walkthrough question.
type Demo struct {
	Title    string
	Question string
	Compare  bool // also answer without retrieval
}

// Demos are the scripted walkthroughs, in presentation order.
var Demos = []Demo{
	{
		Title:    "Basic RAG Query",
		Question: "What are the key features of Azure Machine Learning?",
	},
	{
		Title:    "Showing RAG Benefits",
		Question: "What are the six principles of Microsoft's Responsible AI framework?",
		Compare:  true,
	},
	{
		Title: "Multi-Document Reasoning",
		Question: "How can I use Azure services to build an AI application that analyzes images " +
			"and follows responsible AI principles?",
	},
	{
		Title:    "Handling Information Not in Knowledge Base",
		Question: "What is the pricing for Azure Quantum computing?",
	},
}
