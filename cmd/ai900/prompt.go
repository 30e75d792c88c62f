package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timothywarner/ai900/internal/console"
	"github.com/timothywarner/ai900/internal/usecase/prompt"
)

type technique struct {
	name  string
	title string
	run   func(ctx context.Context, out *console.Printer, svc *prompt.Service) error
}

func techniques(samples int) []technique {
	return []technique{
		{"zero-shot", "Zero-Shot Prompting", func(ctx context.Context, out *console.Printer, svc *prompt.Service) error {
			out.KV("Question", prompt.MathQuestion)
			answer, err := svc.ZeroShot(ctx, prompt.MathQuestion)
			if err != nil {
				return err
			}
			out.Block(answer)
			return nil
		}},
		{"chain-of-thought", "Chain-of-Thought Prompting", func(ctx context.Context, out *console.Printer, svc *prompt.Service) error {
			out.KV("Question", prompt.MathQuestion)
			answer, err := svc.ChainOfThought(ctx, prompt.MathQuestion)
			if err != nil {
				return err
			}
			out.Block(answer)
			return nil
		}},
		{"few-shot", "Few-Shot Learning", func(ctx context.Context, out *console.Printer, svc *prompt.Service) error {
			out.KV("Input", prompt.SentimentInput)
			answer, err := svc.FewShot(ctx, prompt.SentimentTask, prompt.SentimentExamples, prompt.SentimentInput)
			if err != nil {
				return err
			}
			out.KV("Classification", strings.TrimSpace(answer))
			return nil
		}},
		{"self-consistency", "Self-Consistency", func(ctx context.Context, out *console.Printer, svc *prompt.Service) error {
			out.KV("Question", prompt.ArchitectureQuestion)
			res, err := svc.SelfConsistency(ctx, prompt.ArchitectureQuestion, samples)
			if err != nil {
				return err
			}
			for i, s := range res.Samples {
				out.Section(fmt.Sprintf("Sample %d", i+1))
				out.Block(s)
			}
			out.Section("Synthesized answer")
			out.Block(res.Synthesis)
			return nil
		}},
		{"structured", "Structured Output (JSON)", func(ctx context.Context, out *console.Printer, svc *prompt.Service) error {
			out.KV("Description", prompt.OrderDescription)
			res, err := svc.Structured(ctx, prompt.OrderDescription)
			if err != nil {
				return err
			}
			out.Block(res.Raw)
			if res.ParseErr != nil {
				out.Warn("Response is not a valid JSON object: %v", res.ParseErr)
				return nil
			}
			out.Success("Valid JSON with fields: %s", strings.Join(res.Fields, ", "))
			return nil
		}},
		{"meta", "Meta-Prompting", func(ctx context.Context, out *console.Printer, svc *prompt.Service) error {
			out.KV("Task", prompt.MetaTask)
			out.KV("Initial prompt", prompt.MetaInitialPrompt)
			improved, err := svc.MetaPrompt(ctx, prompt.MetaTask, prompt.MetaInitialPrompt)
			if err != nil {
				return err
			}
			out.Block(improved)
			return nil
		}},
		{"role", "Role-Based Expert Prompting", func(ctx context.Context, out *console.Printer, svc *prompt.Service) error {
			out.KV("Role", prompt.ArchitectRole)
			out.KV("Question", prompt.LatencyQuestion)
			answer, err := svc.RoleExpert(ctx, prompt.LatencyQuestion, prompt.ArchitectRole)
			if err != nil {
				return err
			}
			out.Block(answer)
			return nil
		}},
	}
}

func newPromptCommand(a *app) *cobra.Command {
	var samples int

	cmd := &cobra.Command{
		Use:   "prompt [technique...]",
		Short: "Advanced prompt engineering techniques",
		Long: "Runs the prompt engineering demos. Techniques: zero-shot, chain-of-thought, few-shot,\n" +
			"self-consistency, structured, meta, role. With no arguments every technique runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := selectTechniques(techniques(samples), args)
			if err != nil {
				return err
			}

			chat, err := a.openAIClient()
			if err != nil {
				return err
			}
			ctx := a.demoContext(cmd.Context(), "prompt")
			svc := prompt.New(chat)

			a.out.Header("Advanced Prompt Engineering")
			failed := 0
			for _, t := range selected {
				a.out.Section(t.title)
				if err := t.run(ctx, a.out, svc); err != nil {
					a.out.Error(err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d techniques failed", failed, len(selected))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&samples, "samples", prompt.DefaultSamples, "answers sampled for self-consistency")
	return cmd
}

func selectTechniques(all []technique, names []string) ([]technique, error) {
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]technique, len(all))
	for _, t := range all {
		byName[t.name] = t
	}
	selected := make([]technique, 0, len(names))
	for _, n := range names {
		t, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("unknown technique %q", n)
		}
		selected = append(selected, t)
	}
	return selected, nil
}
