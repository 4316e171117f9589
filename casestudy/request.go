/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package casestudy

import (
	"encoding/xml"
	"fmt"

	"chainguard.dev/casecrew/agents/promptbuilder"
	"chainguard.dev/casecrew/pipeline"
)

// Request is what a stage hands its agent: the user's case study and the
// upstream artifacts the stage depends on.
type Request struct {
	Root     pipeline.RootInputs
	Upstream []Upstream
}

// Upstream is one artifact produced by an earlier stage.
type Upstream struct {
	Name string
	Text string
}

var _ promptbuilder.Bindable = (*Request)(nil)

type caseStudyXML struct {
	XMLName xml.Name `xml:"case_study"`
	Details string   `xml:"details"`
	Context string   `xml:"context"`
}

type upstreamXML struct {
	XMLName   xml.Name      `xml:"upstream_artifacts"`
	Artifacts []artifactXML `xml:"artifact"`
}

type artifactXML struct {
	Name string `xml:"name,attr"`
	Text string `xml:",chardata"`
}

// Bind implements promptbuilder.Bindable. User text is always bound as
// escaped XML.
func (r *Request) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	p, err := p.BindXML("case_study", caseStudyXML{
		Details: r.Root.CaseStudyDetails,
		Context: r.Root.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("binding case study: %w", err)
	}
	if len(r.Upstream) == 0 {
		return p, nil
	}
	up := upstreamXML{Artifacts: make([]artifactXML, 0, len(r.Upstream))}
	for _, u := range r.Upstream {
		up.Artifacts = append(up.Artifacts, artifactXML(u))
	}
	p, err = p.BindXML("upstream", up)
	if err != nil {
		return nil, fmt.Errorf("binding upstream artifacts: %w", err)
	}
	return p, nil
}
