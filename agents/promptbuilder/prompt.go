/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/xml"
	"fmt"
	"maps"
	"slices"
)

// stringLiteral can only be satisfied by untyped string constants outside
// this package, which keeps runtime data out of templates and literal
// bindings.
type stringLiteral string

// render produces the text substituted for a placeholder.
type render func() (string, error)

// Prompt is an immutable template with {{name}} placeholders. Every Bind
// method returns a new Prompt.
type Prompt struct {
	template string
	values   map[string]render
}

// NewPrompt parses a developer-authored template.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	return parse(string(template))
}

// ParseTemplate parses a template read from operator configuration, such as
// a pipeline override file. Never pass end-user input here; bind it with
// BindXML instead.
func ParseTemplate(template string) (*Prompt, error) {
	return parse(template)
}

func parse(template string) (*Prompt, error) {
	values := make(map[string]render)
	if _, err := expand(template, func(name string) (string, error) {
		if _, ok := values[name]; !ok {
			values[name] = unbound(name)
		}
		return "", nil
	}); err != nil {
		return nil, err
	}
	return &Prompt{template: template, values: values}, nil
}

func unbound(name string) render {
	return func() (string, error) {
		return "", fmt.Errorf("unbound placeholder: %s", name)
	}
}

// Bindings returns the placeholder names in the template, sorted.
func (p *Prompt) Bindings() []string {
	return slices.Sorted(maps.Keys(p.values))
}

// Unbound returns the placeholders that still need a value, sorted.
func (p *Prompt) Unbound() []string {
	var out []string
	for _, name := range p.Bindings() {
		if _, err := p.values[name](); err != nil {
			out = append(out, name)
		}
	}
	return out
}

func (p *Prompt) with(name string, r render) (*Prompt, error) {
	current, ok := p.values[name]
	if !ok {
		return nil, fmt.Errorf("binding %q not found in template", name)
	}
	if _, err := current(); err == nil {
		return nil, fmt.Errorf("binding %q already bound", name)
	}
	values := maps.Clone(p.values)
	values[name] = r
	return &Prompt{template: p.template, values: values}, nil
}

// BindStringLiteral binds a developer-supplied constant.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.with(name, func() (string, error) { return string(value), nil })
}

// BindXML binds data encoded as indented XML, escaping any markup in user
// text.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	return p.with(name, func() (string, error) {
		b, err := xml.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal XML for %s: %w", name, err)
		}
		return string(b), nil
	})
}

// Build renders the template. It fails if any placeholder is unbound.
// Substitution is a single pass, so placeholders inside bound values are
// left as-is.
func (p *Prompt) Build() (string, error) {
	rendered := make(map[string]string, len(p.values))
	for _, name := range p.Bindings() {
		v, err := p.values[name]()
		if err != nil {
			return "", err
		}
		rendered[name] = v
	}
	return expand(p.template, func(name string) (string, error) {
		return rendered[name], nil
	})
}

// Must panics if err is non-nil. Use it for package-level prompts:
//
//	var p = promptbuilder.Must(promptbuilder.NewPrompt(`Hello {{name}}`))
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// MustNewPrompt is Must(NewPrompt(template)).
func MustNewPrompt(template stringLiteral) *Prompt {
	return Must(NewPrompt(template))
}
