package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

const reqIDExample = "floresta-api/Kx3v9Qp2Lm-000042"

// errorResponses every operation documents unless it declares its own
var errorResponses = []struct {
	status int
	code   int
	msg    string
}{
	{http.StatusBadRequest, 8, "order must be one of [asc desc]"},
	{http.StatusTooManyRequests, 3, "Muitas requisições. Tente novamente em instantes."},
	{http.StatusInternalServerError, 1, "panic recovered"},
	{http.StatusServiceUnavailable, 2, "deforestation: load areas"},
}

// serveDocJSON serves docReader's document after finishDoc
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		body, err := finishDoc(docReader())
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(body)
	}
}

// finishDoc lifts the document to OAS 3.0.3 under /api/v1 and adds the shared error responses
func finishDoc(raw string) ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return nil, err
	}
	asOAS30(spec, "/api/v1")
	schema(spec)["ErrorResponse"] = errorSchema()

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			for _, e := range errorResponses {
				key := strconv.Itoa(e.status)
				if _, set := resps[key]; !set {
					resps[key] = errorResponse(e.status, e.code, e.msg)
				}
			}
		}
	}
	return json.Marshal(spec)
}

// asOAS30 pins the version swagger ui renders and adds a server when none is declared
func asOAS30(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

func schema(spec map[string]any) map[string]any {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	return schemas
}

// errorSchema mirrors the envelope without data
func errorSchema() map[string]any {
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "integer", "format": "int32"}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": num,
			"status":      str,
			"code":        num,
			"error":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

func errorResponse(status, code int, msg string) map[string]any {
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      http.StatusText(status),
					"code":        code,
					"error":       msg,
					"request_id":  reqIDExample,
				},
			},
		},
	}
}
