package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// ExtractedLineItem is one line item pulled out of a pasted document.
type ExtractedLineItem struct {
	Description    string `json:"description" jsonschema_description:"The line item description"`
	Quantity       string `json:"quantity" jsonschema_description:"The quantity as a decimal string, e.g. '2'"`
	UnitPrice      string `json:"unit_price" jsonschema_description:"The unit price as a decimal string, e.g. '50.00'"`
	TaxRatePercent string `json:"tax_rate_percent" jsonschema_description:"The tax rate percentage as a decimal string, '0' if untaxed"`
}

// ExtractedInvoice is the structured result of document extraction. It is a
// draft for the user to review — nothing is persisted from it directly.
type ExtractedInvoice struct {
	CustomerName string              `json:"customer_name" jsonschema_description:"The client or customer name on the document"`
	Date         string              `json:"date" jsonschema_description:"The document date in YYYY-MM-DD format, empty if absent"`
	Items        []ExtractedLineItem `json:"items" jsonschema_description:"The line items found on the document"`
}

// Extractor pulls invoice fields out of free-form document text.
type Extractor interface {
	ExtractInvoice(ctx context.Context, documentText string) (*ExtractedInvoice, error)
}

type extractor struct {
	client *openai.Client
}

// NewExtractor constructs an Extractor using the OpenAI API.
func NewExtractor(apiKey string) Extractor {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &extractor{client: &client}
}

func (e *extractor) ExtractInvoice(ctx context.Context, documentText string) (*ExtractedInvoice, error) {
	prompt := fmt.Sprintf(`You are a data-entry assistant for a small business.
Extract invoice details from the document text below.
Rules:
1. Quantities and prices must be exact decimal strings (e.g. "100.00").
2. Use an empty string for any field not present in the document.
3. Do not invent line items.

Document:
%s`, documentText)

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "extracted_invoice",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Invoice fields extracted from a document"),
				},
			},
		},
	}

	resp, err := e.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var extracted ExtractedInvoice
	if err := json.Unmarshal([]byte(content), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse extraction: %w", err)
	}
	return &extracted, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v ExtractedInvoice
	return reflector.Reflect(v)
}
