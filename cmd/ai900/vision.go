package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timothywarner/ai900/internal/transport/azure"
)

const visionSamples = "https://raw.githubusercontent.com/MicrosoftLearning/AI-900-AIFundamentals/main/data/vision/"

const (
	sampleClassificationImage = visionSamples + "street.jpg"
	sampleDetectionImage      = visionSamples + "produce.jpg"
	sampleOCRImage            = visionSamples + "letter.jpg"
)

func newVisionCommand(a *app) *cobra.Command {
	var annotate string

	cmd := &cobra.Command{
		Use:   "vision",
		Short: "Image analysis, object detection and OCR with Computer Vision",
		Long:  "Runs classification, object detection and OCR on the course sample images.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.visionClient()
			if err != nil {
				return err
			}
			ctx := a.demoContext(cmd.Context(), "vision")

			a.out.Header("Computer Vision Demo")
			return errors.Join(
				a.analyzeImage(ctx, v, sampleClassificationImage),
				a.detectObjects(ctx, v, sampleDetectionImage, annotate),
				a.readText(ctx, v, sampleOCRImage),
			)
		},
	}
	cmd.PersistentFlags().StringVar(&annotate, "annotate", "",
		"write the detection image with bounding boxes to this JPEG file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "analyze <image>",
			Short: "Describe, tag and categorize an image (URL or file)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := a.visionClient()
				if err != nil {
					return err
				}
				return a.analyzeImage(a.demoContext(cmd.Context(), "vision"), v, args[0])
			},
		},
		&cobra.Command{
			Use:   "detect <image>",
			Short: "Detect objects in an image (URL or file)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := a.visionClient()
				if err != nil {
					return err
				}
				return a.detectObjects(a.demoContext(cmd.Context(), "vision"), v, args[0], annotate)
			},
		},
		&cobra.Command{
			Use:   "ocr <image>",
			Short: "Read printed text in an image (URL or file)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := a.visionClient()
				if err != nil {
					return err
				}
				return a.readText(a.demoContext(cmd.Context(), "vision"), v, args[0])
			},
		},
	)
	return cmd
}

func (a *app) visionClient() (*azure.VisionClient, error) {
	if err := a.cfg.RequireVision(); err != nil {
		return nil, err
	}
	return azure.NewVisionClient(a.azureConfig(a.cfg.Vision.Endpoint, a.cfg.Vision.Key)), nil
}

func (a *app) analyzeImage(ctx context.Context, v *azure.VisionClient, ref string) error {
	a.out.Section("Image Classification")
	a.out.KV("Image", ref)

	res, err := v.Analyze(ctx, imageSource(ref))
	if err != nil {
		a.out.Error(err)
		return err
	}

	for _, c := range res.Description.Captions {
		a.out.KV("Caption", fmt.Sprintf("%s (confidence %.2f)", c.Text, c.Confidence))
	}
	if len(res.Categories) > 0 {
		a.out.Line("Categories:")
		for _, c := range res.Categories {
			a.out.Bullet("%s (%.2f)", c.Name, c.Score)
		}
	}
	if len(res.Tags) > 0 {
		a.out.Line("Tags:")
		for _, t := range res.Tags {
			a.out.Bullet("%s (%.2f)", t.Name, t.Confidence)
		}
	}
	for _, b := range res.Brands {
		a.out.KV("Brand", fmt.Sprintf("%s (%.2f)", b.Name, b.Confidence))
	}
	a.out.KV("Adult content", fmt.Sprintf("%t (score %.3f)", res.Adult.IsAdultContent, res.Adult.AdultScore))
	a.out.KV("Racy content", fmt.Sprintf("%t (score %.3f)", res.Adult.IsRacyContent, res.Adult.RacyScore))
	if len(res.Color.DominantColors) > 0 {
		a.out.KV("Dominant colors", strings.Join(res.Color.DominantColors, ", "))
	}
	return nil
}

func (a *app) detectObjects(ctx context.Context, v *azure.VisionClient, ref, annotatePath string) error {
	a.out.Section("Object Detection")
	a.out.KV("Image", ref)

	src := imageSource(ref)
	objects, err := v.Detect(ctx, src)
	if err != nil {
		a.out.Error(err)
		return err
	}

	a.out.Line("Detected %d objects:", len(objects))
	for _, o := range objects {
		r := o.Rectangle
		a.out.Bullet("%s (confidence %.2f) at x=%d y=%d w=%d h=%d", o.Object, o.Confidence, r.X, r.Y, r.W, r.H)
	}

	if annotatePath == "" || len(objects) == 0 {
		return nil
	}
	return a.annotate(ctx, src, objects, annotatePath)
}

func (a *app) annotate(ctx context.Context, src azure.ImageSource, objects []azure.DetectedObject, path string) error {
	data := src.Data
	if src.URL != "" {
		var err error
		if data, err = azure.FetchImage(ctx, a.httpClient(), src.URL); err != nil {
			a.out.Error(err)
			return err
		}
	}

	annotated, err := azure.Annotate(data, objects)
	if err != nil {
		a.out.Error(err)
		return err
	}
	if err := os.WriteFile(path, annotated, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.out.Success("Annotated image saved as %s", path)
	return nil
}

func (a *app) readText(ctx context.Context, v *azure.VisionClient, ref string) error {
	a.out.Section("Optical Character Recognition")
	a.out.KV("Image", ref)

	res, err := v.OCR(ctx, imageSource(ref))
	if err != nil {
		a.out.Error(err)
		return err
	}

	lines := res.Lines()
	if len(lines) == 0 {
		a.out.Line("No text found")
		return nil
	}
	a.out.KV("Language", res.Language)
	for _, l := range lines {
		a.out.Bullet("%s", l)
	}
	return nil
}
