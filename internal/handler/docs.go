package handler

import (
	"reflect"
	"strconv"
	"strings"

	"craftynet/api/internal/model"
	"craftynet/api/internal/service"
)

var moneyType = reflect.TypeOf(model.Money{})

// openAPIDocument describes every route generated from resources.
func openAPIDocument(resources []service.Resource) map[string]any {
	paths := map[string]any{}
	schemas := map[string]any{}

	for _, res := range resources {
		name := reflect.TypeOf(res.Schema).Name()
		schemas[name] = schemaOf(res.Schema)
		ref := map[string]any{"$ref": "#/components/schemas/" + name}
		tags := []string{res.Tag}

		collection := map[string]any{
			"get": map[string]any{
				"tags": tags,
				"responses": map[string]any{
					"200": jsonResponse("OK", map[string]any{"type": "array", "items": ref}),
					"500": description(res.Messages.List),
				},
			},
		}
		if res.CanCreate() {
			responses := map[string]any{
				"201": jsonResponse("Created", ref),
				"500": description(res.Messages.Create),
			}
			if res.Messages.Duplicate != "" {
				responses["400"] = description(res.Messages.Duplicate)
			} else {
				responses["400"] = description(msgInvalidBody)
			}
			collection["post"] = map[string]any{
				"tags": tags,
				"requestBody": map[string]any{
					"required": true,
					"content":  map[string]any{"application/json": map[string]any{"schema": ref}},
				},
				"responses": responses,
			}
		}
		paths["/api/"+res.Path] = collection

		if res.Lookup {
			paths["/api/"+res.Path+"/{id}"] = map[string]any{
				"get": map[string]any{
					"tags": tags,
					"parameters": []any{map[string]any{
						"in":       "path",
						"name":     "id",
						"required": true,
						"schema":   map[string]any{"type": "integer"},
					}},
					"responses": map[string]any{
						"200": jsonResponse("OK", ref),
						"404": description(res.Messages.NotFound),
					},
				},
			}
		}
	}

	return map[string]any{
		"openapi": "3.0.0",
		"info": map[string]any{
			"title":       "CraftyNet API",
			"version":     "1.0.0",
			"description": "API para gestión de productos, usuarios y más",
		},
		"paths":      paths,
		"components": map[string]any{"schemas": schemas},
	}
}

func description(text string) map[string]any {
	return map[string]any{"description": text}
}

func jsonResponse(text string, schema any) map[string]any {
	return map[string]any{
		"description": text,
		"content":     map[string]any{"application/json": map[string]any{"schema": schema}},
	}
}

// schemaOf maps the json-tagged fields of a model struct to an OpenAPI object.
func schemaOf(v any) map[string]any {
	t := reflect.TypeOf(v)
	props := map[string]any{}
	var required []string

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		props[name] = typeOf(f.Type)
		if strings.Contains(f.Tag.Get("validate"), "required") {
			required = append(required, name)
		}
	}

	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func typeOf(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		schema := typeOf(t.Elem())
		schema["nullable"] = true
		return schema
	}
	if t == moneyType {
		return map[string]any{"type": "number", "format": "float"}
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return map[string]any{"type": "integer", "format": "int" + strconv.Itoa(t.Bits())}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	}
	return map[string]any{"type": "string"}
}
