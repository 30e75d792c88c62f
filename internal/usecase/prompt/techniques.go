// Package prompt demonstrates prompt engineering patterns against a chat model.
package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/timothywarner/ai900/internal/domain"
)

// Sampling temperatures per technique.
const (
	zeroShotTemperature       float32 = 0.7
	chainOfThoughtTemperature float32 = 0.3
	fewShotTemperature        float32 = 0.2
	sampleTemperature         float32 = 0.8
	synthesisTemperature      float32 = 0.2
	structuredTemperature     float32 = 0.3
	metaTemperature           float32 = 0.4
	roleTemperature           float32 = 0.5
)

// DefaultSamples is the number of independent answers drawn by SelfConsistency.
const DefaultSamples = 3

// Example is one input/output pair shown to the model in few-shot prompts.
type Example struct {
	Input  string
	Output string
}

// Consistency holds independently sampled answers and their synthesis.
type Consistency struct {
	Samples   []string
	Synthesis string
}

// StructuredOutput is a JSON object generated by the model.
// ParseErr is set when the model returned something that is not a JSON object.
type StructuredOutput struct {
	Raw      string
	Fields   []string
	ParseErr error
}

// Service runs prompt engineering techniques.
type Service struct {
	chat ChatCompleter
}

// New creates a prompt engineering service.
func New(chat ChatCompleter) *Service {
	return &Service{chat: chat}
}

func (s *Service) complete(ctx context.Context, temperature float32, messages ...domain.ChatMessage) (string, error) {
	res, err := s.chat.Complete(ctx, domain.ChatRequest{Messages: messages, Temperature: temperature})
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

// ZeroShot asks the question with no instructions or examples.
func (s *Service) ZeroShot(ctx context.Context, question string) (string, error) {
	return s.complete(ctx, zeroShotTemperature, domain.UserMessage(question))
}

// ChainOfThought asks the model to reason step by step before answering.
func (s *Service) ChainOfThought(ctx context.Context, question string) (string, error) {
	return s.complete(ctx, chainOfThoughtTemperature,
		domain.SystemMessage("You are a helpful assistant that explains your reasoning step by step."),
		domain.UserMessage(ChainOfThoughtPrompt(question)),
	)
}

// ChainOfThoughtPrompt wraps a question in step-by-step instructions.
func ChainOfThoughtPrompt(question string) string {
	return fmt.Sprintf(`Please solve this step-by-step.

Question: %s

Let's think through this carefully:
1. First, identify what we're looking for
2. Break down the problem into smaller parts
3. Solve each part
4. Combine the results
5. Verify the answer makes sense

Show your reasoning at each step.`, question)
}

// FewShot shows the model worked examples before the new input.
func (s *Service) FewShot(ctx context.Context, task string, examples []Example, input string) (string, error) {
	return s.complete(ctx, fewShotTemperature,
		domain.SystemMessage("Follow the pattern shown in the examples exactly."),
		domain.UserMessage(FewShotPrompt(task, examples, input)),
	)
}

// FewShotPrompt renders the task, numbered examples and the new input.
func FewShotPrompt(task string, examples []Example, input string) string {
	var b strings.Builder
	b.WriteString(task)
	b.WriteString("\n\nExamples:\n")
	for i, ex := range examples {
		fmt.Fprintf(&b, "\nExample %d:\nInput: %s\nOutput: %s\n", i+1, ex.Input, ex.Output)
	}
	fmt.Fprintf(&b, "\nNow solve this:\nInput: %s\nOutput:", input)
	return b.String()
}

// SelfConsistency samples n answers with distinct seeds, then asks the model to reconcile them.
func (s *Service) SelfConsistency(ctx context.Context, question string, n int) (Consistency, error) {
	if n < 1 {
		n = DefaultSamples
	}

	samples := make([]string, 0, n)
	for i := 0; i < n; i++ {
		seed := i
		res, err := s.chat.Complete(ctx, domain.ChatRequest{
			Messages: []domain.ChatMessage{
				domain.SystemMessage("Provide a clear, concise answer."),
				domain.UserMessage(question),
			},
			Temperature: sampleTemperature,
			Seed:        &seed,
		})
		if err != nil {
			return Consistency{}, fmt.Errorf("sample %d: %w", i+1, err)
		}
		samples = append(samples, res.Content)
	}

	synthesis, err := s.complete(ctx, synthesisTemperature,
		domain.SystemMessage("You are an expert at analyzing and synthesizing information."),
		domain.UserMessage(SynthesisPrompt(question, samples)),
	)
	if err != nil {
		return Consistency{Samples: samples}, fmt.Errorf("synthesize: %w", err)
	}
	return Consistency{Samples: samples, Synthesis: synthesis}, nil
}

// SynthesisPrompt asks the model to find the consensus across sampled answers.
func SynthesisPrompt(question string, answers []string) string {
	lines := make([]string, len(answers))
	for i, a := range answers {
		lines[i] = fmt.Sprintf("Answer %d: %s", i+1, a)
	}
	return fmt.Sprintf(`Given these %d answers to the question "%s":

%s

Please:
1. Identify common elements across all answers
2. Note any contradictions
3. Provide a final, synthesized answer that represents the consensus
4. Rate your confidence (Low/Medium/High) based on answer consistency`,
		len(answers), question, strings.Join(lines, "\n"))
}

// Structured asks for a JSON object describing the data and reports its top-level fields.
// A non-JSON reply is reported through ParseErr rather than as an error.
func (s *Service) Structured(ctx context.Context, description string) (StructuredOutput, error) {
	res, err := s.chat.Complete(ctx, domain.ChatRequest{
		Messages: []domain.ChatMessage{
			domain.SystemMessage("You are a JSON generator. Output only valid JSON without any markdown formatting or explanations."),
			domain.UserMessage(StructuredPrompt(description)),
		},
		Temperature: structuredTemperature,
		JSON:        true,
	})
	if err != nil {
		return StructuredOutput{}, err
	}

	out := StructuredOutput{Raw: res.Content}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(res.Content), &obj); err != nil {
		out.ParseErr = err
		return out, nil
	}
	for k := range obj {
		out.Fields = append(out.Fields, k)
	}
	sort.Strings(out.Fields)
	return out, nil
}

// StructuredPrompt describes the JSON the model should produce.
func StructuredPrompt(description string) string {
	return fmt.Sprintf(`Generate structured data for: %s

Requirements:
1. Output must be valid JSON
2. Include relevant fields based on the description
3. Use appropriate data types (string, number, boolean, array)
4. Add realistic sample values

Output format:
`+"```json"+`
{
  "field1": "value1",
  "field2": 123,
  "field3": true,
  "field4": ["item1", "item2"]
}
`+"```"+`

Generate the JSON now:`, description)
}

// MetaPrompt asks the model to improve a prompt for a task.
func (s *Service) MetaPrompt(ctx context.Context, task, initial string) (string, error) {
	return s.complete(ctx, metaTemperature,
		domain.SystemMessage("You are an expert at crafting effective prompts for large language models."),
		domain.UserMessage(MetaPromptText(task, initial)),
	)
}

// MetaPromptText is the prompt-optimization request.
func MetaPromptText(task, initial string) string {
	return fmt.Sprintf(`You are an expert prompt engineer. 

Task: %s
Current prompt: "%s"

Please improve this prompt by:
1. Making instructions clearer and more specific
2. Adding constraints to prevent common errors
3. Including output format specifications
4. Adding examples if helpful
5. Optimizing for accuracy and consistency

Provide:
1. The improved prompt
2. Brief explanation of key improvements
3. Expected quality improvement (Low/Medium/High)`, task, initial)
}

// RoleExpert answers the question in the voice of a domain expert.
func (s *Service) RoleExpert(ctx context.Context, question, role string) (string, error) {
	return s.complete(ctx, roleTemperature,
		domain.SystemMessage(fmt.Sprintf(
			"You are %s. Answer based on your expertise, citing relevant principles and best practices from your field.",
			role)),
		domain.UserMessage(question),
	)
}
