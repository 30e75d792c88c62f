package config

import (
	"fmt"
	"strings"
)

// MissingSettingsError lists the settings a command needs but the environment does not provide.
type MissingSettingsError struct {
	Service string
	Missing []string // environment variable names
}

func (e *MissingSettingsError) Error() string {
	return fmt.Sprintf("missing %s configuration: set %s in your environment or .env file",
		e.Service, strings.Join(e.Missing, ", "))
}

type setting struct {
	value  string
	envVar string
}

func require(service string, settings ...setting) error {
	var missing []string
	for _, s := range settings {
		if strings.TrimSpace(s.value) == "" {
			missing = append(missing, s.envVar)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingSettingsError{Service: service, Missing: missing}
}

// RequireOpenAI checks the chat deployment credentials.
func (c *Config) RequireOpenAI() error {
	settings := []setting{{c.OpenAI.APIKey, "AZURE_OPENAI_KEY"}}
	if c.OpenAI.APIType == "azure" {
		settings = append(settings, setting{c.OpenAI.Endpoint, "AZURE_OPENAI_ENDPOINT"})
	}
	return require("Azure OpenAI", settings...)
}

// RequireLanguage checks the language service credentials.
func (c *Config) RequireLanguage() error {
	return require("Language service",
		setting{c.Language.Key, "TWAI900LANGSERVICE1_KEY"},
		setting{c.Language.Endpoint, "TWAI900LANGSERVICE1_ENDPOINT"},
	)
}

// RequireTranslator checks the translator credentials.
func (c *Config) RequireTranslator() error {
	return require("Translator",
		setting{c.Translator.Key, "TWAI900TRANSLATOR1_KEY"},
		setting{c.Translator.Endpoint, "TWAI900TRANSLATOR1_ENDPOINT"},
	)
}

// RequireVision checks the computer vision credentials.
func (c *Config) RequireVision() error {
	return require("Computer Vision",
		setting{c.Vision.Key, "TWAI900COMPUTERVISION1_KEY"},
		setting{c.Vision.Endpoint, "TWAI900COMPUTERVISION1_ENDPOINT"},
	)
}

// RequireModerator checks the content moderator credentials.
func (c *Config) RequireModerator() error {
	return require("Content Moderator",
		setting{c.Moderator.Key, "CONTENT_MODERATOR_KEY"},
		setting{c.Moderator.Endpoint, "CONTENT_MODERATOR_ENDPOINT"},
	)
}

// RequireDocument checks the document intelligence credentials.
func (c *Config) RequireDocument() error {
	return require("Document Intelligence",
		setting{c.Document.Key, "AZURE_DOCUMENT_INTELLIGENCE_KEY"},
		setting{c.Document.Endpoint, "AZURE_DOCUMENT_INTELLIGENCE_ENDPOINT"},
	)
}

// RequirePricing checks the scoring endpoint settings.
func (c *Config) RequirePricing() error {
	return require("automobile pricing endpoint",
		setting{c.Pricing.URL, "AUTOPRICE_ENDPOINT_URL"},
		setting{c.Pricing.APIKey, "AUTOPRICE_API_KEY"},
	)
}
