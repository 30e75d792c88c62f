package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/timothywarner/ai900/internal/transport/pricing"
)

func newAutopriceCommand(a *app) *cobra.Command {
	var inputPath string
	var insecure bool

	cmd := &cobra.Command{
		Use:   "autoprice",
		Short: "Predict a car price with the deployed Azure Machine Learning endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.RequirePricing(); err != nil {
				return err
			}

			record := pricing.SampleCar()
			if inputPath != "" {
				var err error
				if record, err = readCarFeatures(inputPath); err != nil {
					return err
				}
			}

			client := pricing.NewClient(pricing.Config{
				URL:                a.cfg.Pricing.URL,
				APIKey:             a.cfg.Pricing.APIKey,
				InsecureSkipVerify: a.cfg.Pricing.InsecureSkipVerify || insecure,
				Timeout:            time.Duration(a.cfg.HTTP.ClientTimeout) * time.Second,
				Logger:             a.logger,
			})

			a.out.Header("Automobile Price Prediction")
			result, err := client.Score(a.demoContext(cmd.Context(), "autoprice"), record)

			var httpErr *pricing.HTTPError
			if errors.As(err, &httpErr) {
				a.printHTTPError(httpErr)
				return err
			}
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if json.Indent(&pretty, result, "", "  ") != nil {
				pretty.Reset()
				pretty.Write(result)
			}
			a.out.Line("%s", pretty.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "JSON file with the car features (default: sample car)")
	cmd.Flags().BoolVar(&insecure, "insecure", false, "skip TLS certificate verification")
	return cmd
}

func readCarFeatures(path string) (pricing.CarFeatures, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return pricing.CarFeatures{}, fmt.Errorf("read input: %w", err)
	}
	var car pricing.CarFeatures
	if err := json.Unmarshal(data, &car); err != nil {
		return pricing.CarFeatures{}, fmt.Errorf("parse input %s: %w", path, err)
	}
	return car, nil
}

// printHTTPError prints the status, the headers (they include the request id needed for
// debugging) and the decoded body.
func (a *app) printHTTPError(e *pricing.HTTPError) {
	a.out.Error(e)

	keys := make([]string, 0, len(e.Header))
	for k := range e.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	a.out.Section("Response headers")
	for _, k := range keys {
		a.out.KV(k, e.Header.Get(k))
	}

	a.out.Section("Response body")
	if body, err := json.MarshalIndent(e.DecodedBody(), "", "  "); err == nil {
		a.out.Line("%s", body)
	}
}
