package smoke

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// envelopeSchema описывает общий конверт ответов API: {"status": "success"|"error", ...}.
const envelopeSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["status"],
  "properties": {
    "status": {"enum": ["success", "error"]},
    "message": {"type": "string"}
  }
}`

const envelopeSchemaURL = "envelope.schema.json"

// compileEnvelopeSchema компилирует схему конверта.
func compileEnvelopeSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(envelopeSchema))
	if err != nil {
		return nil, fmt.Errorf("разбор схемы конверта: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(envelopeSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("регистрация схемы конверта: %w", err)
	}
	return compiler.Compile(envelopeSchemaURL)
}

// validateEnvelope проверяет тело ответа по схеме конверта.
func validateEnvelope(schema *jsonschema.Schema, body []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("тело ответа не JSON: %w", err)
	}
	return schema.Validate(inst)
}
