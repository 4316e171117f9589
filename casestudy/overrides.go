/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package casestudy

import (
	"fmt"
	"os"

	"chainguard.dev/casecrew/pipeline"
	"gopkg.in/yaml.v3"
)

type specFile struct {
	Stages []yaml.Node `yaml:"stages"`
}

var knownCapabilities = pipeline.NewCapabilities(
	pipeline.CapabilityGenerate,
	pipeline.CapabilitySearch,
	pipeline.CapabilityScrape,
)

// LoadSpecs reads a stage table from the YAML file at path.
func LoadSpecs(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline file: %w", err)
	}
	specs, err := ParseSpecs(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// ParseSpecs decodes a YAML stage table:
//
//	stages:
//	  - name: research
//	    model: claude-sonnet-4-5
//	  - name: frame
//	  - name: review
//	  - name: solve
//
// The listed stages make up the pipeline, in the order given. An entry
// whose name matches a default stage starts from that stage and only the
// fields it sets are replaced. The table is validated with pipeline.Plan.
func ParseSpecs(data []byte) ([]Spec, error) {
	var f specFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing pipeline file: %w", err)
	}
	if len(f.Stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", pipeline.ErrInvalidPipeline)
	}

	defaults := make(map[string]Spec, 4)
	for _, s := range DefaultSpecs() {
		defaults[s.Name] = s
	}

	specs := make([]Spec, 0, len(f.Stages))
	for i := range f.Stages {
		node := &f.Stages[i]
		var head struct {
			Name string `yaml:"name"`
		}
		if err := node.Decode(&head); err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		spec := defaults[head.Name]
		if err := node.Decode(&spec); err != nil {
			return nil, fmt.Errorf("stage %q: %w", head.Name, err)
		}
		for _, c := range spec.Capabilities {
			if !knownCapabilities.Has(c) {
				return nil, fmt.Errorf("%w: stage %q requires unknown capability %q", pipeline.ErrInvalidPipeline, spec.Name, c)
			}
		}
		specs = append(specs, spec)
	}

	if _, err := pipeline.Plan(Definitions(specs)); err != nil {
		return nil, err
	}
	return specs, nil
}
