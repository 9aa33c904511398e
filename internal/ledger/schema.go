package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type schemaName string

const (
	schemaRecord      schemaName = "record.json"
	schemaRecordList  schemaName = "record-list.json"
	schemaCheckList   schemaName = "check-list.json"
	schemaMethodList  schemaName = "method-list.json"
	schemaBankList    schemaName = "bank-list.json"
	schemaTransaction schemaName = "transaction.json"
)

func recordSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":    map[string]any{"type": "integer"},
			"fecha": map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}`},
		},
		"required": []string{"id", "fecha"},
	}
}

func checkSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":               map[string]any{"type": "integer"},
			"numero":           map[string]any{"type": "string"},
			"monto":            amountProp(),
			"fechaVencimiento": map[string]any{"type": []string{"string", "null"}},
			"estado":           map[string]any{"type": "string"},
			"tipo":             map[string]any{"type": "string"},
		},
		"required": []string{"id", "monto", "estado", "tipo"},
	}
}

func methodSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":     map[string]any{"type": "integer"},
			"nombre": map[string]any{"type": "string"},
			"activo": map[string]any{"type": "boolean"},
			"tipo":   map[string]any{"type": []string{"string", "null"}},
		},
		"required": []string{"id", "nombre"},
	}
}

func bankSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":     map[string]any{"type": "integer"},
			"nombre": map[string]any{"type": "string"},
			"activo": map[string]any{"type": "boolean"},
		},
		"required": []string{"id", "nombre"},
	}
}

// transactionSchema covers the echo of POST /ingreso and /egreso; only the id matters.
func transactionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":    map[string]any{"type": "integer"},
			"monto": amountProp(),
		},
		"required": []string{"id"},
	}
}

func amountProp() map[string]any {
	return map[string]any{
		"anyOf": []any{
			map[string]any{"type": "number"},
			map[string]any{"type": "string", "pattern": `^-?\d+(\.\d+)?$`},
		},
	}
}

func arrayOf(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

var compiledSchemas = sync.OnceValues(func() (map[schemaName]*jsonschema.Schema, error) {
	docs := map[schemaName]map[string]any{
		schemaRecord:      recordSchema(),
		schemaRecordList:  arrayOf(recordSchema()),
		schemaCheckList:   arrayOf(checkSchema()),
		schemaMethodList:  arrayOf(methodSchema()),
		schemaBankList:    arrayOf(bankSchema()),
		schemaTransaction: transactionSchema(),
	}
	out := make(map[schemaName]*jsonschema.Schema, len(docs))
	for name, doc := range docs {
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %s: %w", name, err)
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(string(name), bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
		s, err := compiler.Compile(string(name))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
})

// validateAgainst checks raw JSON against one of the response schemas.
func validateAgainst(name schemaName, data []byte) error {
	schemas, err := compiledSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %s", name)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
