package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timothywarner/ai900/internal/console"
	"github.com/timothywarner/ai900/internal/transport/azure"
)

var sampleDocuments = []string{
	"I had a wonderful experience! The rooms were wonderful and the staff was helpful.",
	"The restaurant was not good. The food was bland and overpriced.",
	"Microsoft was founded by Bill Gates and Paul Allen on April 4, 1975, in Albuquerque, New Mexico.",
}

const sampleTranslation = "This is a demonstration of the Azure AI Translator service."

func newLanguageCommand(a *app) *cobra.Command {
	var to []string

	cmd := &cobra.Command{
		Use:   "language [text...]",
		Short: "Sentiment, key phrases, entities, language detection and translation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireLanguage(); err != nil {
				return err
			}
			texts := args
			if len(texts) == 0 {
				texts = sampleDocuments
			}
			ctx := a.demoContext(cmd.Context(), "language")
			client := azure.NewLanguageClient(a.azureConfig(a.cfg.Language.Endpoint, a.cfg.Language.Key))

			a.out.Header("Language Analysis Demo")
			err := analyzeLanguage(ctx, a.out, client, texts)

			// Translation is optional in the walkthrough: it only runs when a translator key is set.
			if a.cfg.RequireTranslator() == nil {
				err = errors.Join(err, translate(ctx, a, sampleTranslation, to))
			} else {
				a.out.Muted("Translator not configured, skipping translation")
			}
			return err
		},
	}
	cmd.PersistentFlags().StringSliceVar(&to, "to", []string{"es"}, "target languages for translation")

	cmd.AddCommand(&cobra.Command{
		Use:   "translate <text>",
		Short: "Translate text with Translator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireTranslator(); err != nil {
				return err
			}
			return translate(a.demoContext(cmd.Context(), "translate"), a, strings.Join(args, " "), to)
		},
	})
	return cmd
}

func analyzeLanguage(ctx context.Context, out *console.Printer, client *azure.LanguageClient, texts []string) error {
	docs := azure.Documents("en", texts...)

	out.Section("Sentiment Analysis")
	sentiment, err := client.Sentiment(ctx, docs)
	if err != nil {
		return err
	}
	for _, d := range sentiment.Documents {
		out.KV("Document "+d.ID, fmt.Sprintf("%s (positive %.2f, neutral %.2f, negative %.2f)",
			d.Sentiment, d.ConfidenceScores.Positive, d.ConfidenceScores.Neutral, d.ConfidenceScores.Negative))
		for i, s := range d.Sentences {
			out.Bullet("Sentence %d: %q is %s", i+1, s.Text, s.Sentiment)
		}
	}
	printDocumentErrors(out, sentiment.Errors)

	out.Section("Key Phrase Extraction")
	phrases, err := client.KeyPhrases(ctx, docs)
	if err != nil {
		return err
	}
	for _, d := range phrases.Documents {
		out.KV("Document "+d.ID, strings.Join(d.KeyPhrases, ", "))
	}
	printDocumentErrors(out, phrases.Errors)

	out.Section("Entity Recognition")
	entities, err := client.Entities(ctx, docs)
	if err != nil {
		return err
	}
	for _, d := range entities.Documents {
		out.KV("Document "+d.ID, fmt.Sprintf("%d entities", len(d.Entities)))
		for _, e := range d.Entities {
			category := e.Category
			if e.Subcategory != "" {
				category += "/" + e.Subcategory
			}
			out.Bullet("%s (%s, confidence %.2f)", e.Text, category, e.ConfidenceScore)
		}
	}
	printDocumentErrors(out, entities.Errors)

	out.Section("Language Detection")
	languages, err := client.DetectLanguage(ctx, azure.Documents("", texts...))
	if err != nil {
		return err
	}
	for _, d := range languages.Documents {
		out.KV("Document "+d.ID, fmt.Sprintf("%s (%s), confidence %.2f",
			d.DetectedLanguage.Name, d.DetectedLanguage.ISO6391Name, d.DetectedLanguage.ConfidenceScore))
	}
	printDocumentErrors(out, languages.Errors)
	return nil
}

func printDocumentErrors(out *console.Printer, errs []azure.DocumentError) {
	for _, e := range errs {
		out.Warn("Document %s: %s (%s)", e.ID, e.Error.Message, e.Error.Code)
	}
}

func translate(ctx context.Context, a *app, text string, to []string) error {
	cfg := a.azureConfig(a.cfg.Translator.Endpoint, a.cfg.Translator.Key)
	cfg.Region = a.cfg.Translator.Region
	client := azure.NewTranslatorClient(cfg)

	a.out.Section("Translation")
	a.out.KV("Original text", text)

	res, err := client.Translate(ctx, text, to...)
	if err != nil {
		return err
	}
	if res.DetectedLanguage != nil {
		a.out.KV("Detected language", fmt.Sprintf("%s (%.2f)", res.DetectedLanguage.Language, res.DetectedLanguage.Score))
	}
	for _, t := range res.Translations {
		a.out.KV("Translated text ("+t.To+")", t.Text)
	}
	return nil
}
