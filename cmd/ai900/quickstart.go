package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/timothywarner/ai900/internal/usecase/quickstart"
)

var stepTitles = map[string]string{
	quickstart.StepText:  "Text Completion",
	quickstart.StepChat:  "Chat Completion (AI Concepts)",
	quickstart.StepCode:  "Code Generation",
	quickstart.StepImage: "Image Generation",
}

func newQuickstartCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quickstart",
		Short: "Azure OpenAI text, chat, code and image generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.openAIClient()
			if err != nil {
				return err
			}
			ctx := a.demoContext(cmd.Context(), "quickstart")

			a.out.Header("Azure OpenAI Quickstart")
			results := quickstart.New(client, client, client).Run(ctx)

			failed := 0
			for _, r := range results {
				a.out.Section(stepTitles[r.Name])
				a.out.KV("Prompt", r.Prompt)
				if r.Err != nil {
					a.out.Error(r.Err)
					failed++
					continue
				}
				if r.Output != "" {
					a.out.Block(r.Output)
				}
				for i, img := range r.Images {
					a.out.KV(fmt.Sprintf("Image %d", i+1), img.URL)
					if img.RevisedPrompt != "" {
						a.out.Muted("Revised prompt: %s", img.RevisedPrompt)
					}
				}
				a.out.Muted("(%s)", r.Duration.Round(time.Millisecond))
			}

			if err := ctx.Err(); err != nil {
				return err
			}
			if failed == len(results) {
				return fmt.Errorf("all %d quickstart steps failed", failed)
			}
			return nil
		},
	}
}
