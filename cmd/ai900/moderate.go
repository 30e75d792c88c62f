package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timothywarner/ai900/internal/console"
	"github.com/timothywarner/ai900/internal/transport/azure"
)

const (
	sampleModerationText = "Is this a crap email address: test@example.com. Phone: 425-555-1212. " +
		"Address: 1 Microsoft Way, Redmond, WA 98052."
	sampleModerationImage = "https://moderatorsampleimages.blob.core.windows.net/samples/sample.jpg"
)

func newModerateCommand(a *app) *cobra.Command {
	var text, image string

	cmd := &cobra.Command{
		Use:   "moderate",
		Short: "Screen text and images with Content Moderator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.RequireModerator(); err != nil {
				return err
			}
			ctx := a.demoContext(cmd.Context(), "moderate")
			client := azure.NewModeratorClient(a.azureConfig(a.cfg.Moderator.Endpoint, a.cfg.Moderator.Key))

			a.out.Header("Content Moderation Demo")
			textErr := moderateText(ctx, a.out, client, text)
			if textErr != nil {
				a.out.Error(textErr)
			}
			imageErr := moderateImage(ctx, a.out, client, imageSource(image))
			if imageErr != nil {
				a.out.Error(imageErr)
			}
			if err := errors.Join(textErr, imageErr); err != nil {
				return fmt.Errorf("content moderation: %w", err)
			}
			a.out.Success("Content moderation demo completed")
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", sampleModerationText, "text to screen")
	cmd.Flags().StringVar(&image, "image", sampleModerationImage, "image URL or local file to evaluate")
	return cmd
}

func moderateText(ctx context.Context, out *console.Printer, client *azure.ModeratorClient, text string) error {
	out.Section("Text Moderation")
	out.KV("Text", text)

	screen, err := client.ScreenText(ctx, text)
	if err != nil {
		return err
	}

	if screen.PII.Empty() {
		out.Line("No personal information found")
	} else {
		out.Line("Personal information found:")
		for _, m := range screen.PII.Email {
			out.Bullet("Email: %s", m.Text)
		}
		for _, m := range screen.PII.Phone {
			out.Bullet("Phone: %s", m.Text)
		}
		for _, m := range screen.PII.Address {
			out.Bullet("Address: %s", m.Text)
		}
		for _, m := range screen.PII.IPA {
			out.Bullet("IP address: %s", m.Text)
		}
		for _, m := range screen.PII.SSN {
			out.Bullet("SSN: %s", m.Text)
		}
	}

	if len(screen.Terms) == 0 {
		out.Line("No offensive terms found")
	} else {
		out.Line("Potentially offensive terms found:")
		for _, t := range screen.Terms {
			out.Bullet("Term: %s (index %d)", t.Term, t.OriginalIndex)
		}
	}

	if c := screen.Classification; c != nil {
		out.KV("Sexually explicit", fmt.Sprintf("%.3f", c.Category1.Score))
		out.KV("Sexually suggestive", fmt.Sprintf("%.3f", c.Category2.Score))
		out.KV("Offensive", fmt.Sprintf("%.3f", c.Category3.Score))
		out.KV("Review recommended", c.ReviewRecommended)
	}
	return nil
}

func moderateImage(ctx context.Context, out *console.Printer, client *azure.ModeratorClient, src azure.ImageSource) error {
	out.Section("Image Moderation")
	if src.URL != "" {
		out.KV("Image", src.URL)
	}

	eval, err := client.EvaluateImage(ctx, src)
	if err != nil {
		return err
	}
	out.KV("Adult content", fmt.Sprintf("%.3f score, %t", eval.AdultClassificationScore, eval.IsImageAdultClassified))
	out.KV("Racy content", fmt.Sprintf("%.3f score, %t", eval.RacyClassificationScore, eval.IsImageRacyClassified))

	text, err := client.ImageOCR(ctx, src)
	if err != nil {
		return err
	}
	if text.Text != "" {
		out.Line("Text detected in image:")
		out.Block(text.Text)
	}
	return nil
}
