/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder builds LLM prompts from templates without letting
user-supplied text rewrite the instructions around it.

Templates contain {{name}} placeholders. Developer constants are bound with
BindStringLiteral, which only accepts untyped string constants. Anything that
came from a user (a case study, an upstream artifact, a scraped page) is bound
through an encoder so it arrives in the prompt as data:

	p := promptbuilder.MustNewPrompt(`Frame the problem described here:
	{{case_study}}`)

	p, err := p.BindXML("case_study", struct {
		XMLName xml.Name `xml:"case_study"`
		Details string   `xml:"details"`
	}{Details: details})
	if err != nil {
		return err
	}
	text, err := p.Build()

Substitution happens in one pass: a bound value that itself contains
"{{other}}" is emitted verbatim. Prompts are immutable, so a parsed template
can be shared and bound concurrently.

Templates loaded from operator configuration go through ParseTemplate.
*/
package promptbuilder
