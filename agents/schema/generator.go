/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package schema derives JSON schemas for tool parameters from Go structs.
//
// Field tags drive the result:
//
//	type searchArgs struct {
//		Query string `json:"query" jsonschema:"required" jsonschema_description:"What to search for"`
//		Limit int    `json:"limit,omitempty" jsonschema_description:"Maximum number of results"`
//	}
package schema

import (
	"github.com/invopop/jsonschema"
)

// Generator wraps a jsonschema.Reflector configured for flat tool schemas.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator returns a generator that inlines nested types and takes
// required fields from jsonschema tags only.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the schema for v.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	return g.reflector.Reflect(v)
}

// Reflect returns the schema for v using a default generator.
func Reflect(v any) *jsonschema.Schema {
	return NewGenerator().Reflect(v)
}

// ReflectType returns the schema for the zero value of T.
func ReflectType[T any]() *jsonschema.Schema {
	var zero T
	return Reflect(&zero)
}

// Property is one top-level field of an object schema.
type Property struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Properties lists the top-level fields of s in declaration order.
func Properties(s *jsonschema.Schema) []Property {
	if s == nil || s.Properties == nil {
		return nil
	}
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}
	var props []Property
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props = append(props, Property{
			Name:        pair.Key,
			Type:        pair.Value.Type,
			Description: pair.Value.Description,
			Required:    required[pair.Key],
		})
	}
	return props
}
