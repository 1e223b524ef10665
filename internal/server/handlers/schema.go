package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// MaxBodyBytes ограничивает размер тела запроса
const MaxBodyBytes = 1 << 20

//go:embed schemas/*.json
var schemaFS embed.FS

const schemaBaseURL = "https://sheetkeeper.local/schemas/"

// Schemas содержит скомпилированные JSON Schema тел запросов
type Schemas struct {
	session *jsonschema.Schema
	update  *jsonschema.Schema
	append  *jsonschema.Schema
	push    *jsonschema.Schema
}

// LoadSchemas compiles the embedded request schemas.
func LoadSchemas() (*Schemas, error) {
	compiler := jsonschema.NewCompiler()

	compile := func(name string) (*jsonschema.Schema, error) {
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
		}
		if err := compiler.AddResource(schemaBaseURL+name, doc); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
		}
		schema, err := compiler.Compile(schemaBaseURL + name)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		return schema, nil
	}

	var s Schemas
	var err error
	if s.session, err = compile("session.json"); err != nil {
		return nil, err
	}
	if s.update, err = compile("update_row.json"); err != nil {
		return nil, err
	}
	if s.append, err = compile("append_row.json"); err != nil {
		return nil, err
	}
	if s.push, err = compile("push_subscription.json"); err != nil {
		return nil, err
	}
	return &s, nil
}

// decodeValid читает тело запроса, проверяет его схемой и декодирует в dst
func decodeValid(r *http.Request, schema *jsonschema.Schema, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("body is not valid JSON: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("body does not match schema: %w", err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}
	return nil
}
