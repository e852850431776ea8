package eval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/apple/pkl-go/pkl"
	"github.com/picklr-io/azmgmt/internal/ir"
	"gopkg.in/yaml.v3"
)

// Evaluator loads topology files relative to a project directory.
type Evaluator struct {
	projectDir string
}

func NewEvaluator(projectDir string) *Evaluator {
	return &Evaluator{
		projectDir: projectDir,
	}
}

// LoadTopology evaluates entryPoint and returns the decoded topology.
// Properties are passed to pkl as external properties and substituted into
// yaml files as ${name}.
func (e *Evaluator) LoadTopology(ctx context.Context, entryPoint string, properties map[string]string) (*ir.Topology, error) {
	path := entryPoint
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.projectDir, entryPoint)
	}

	var (
		topo *ir.Topology
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pkl":
		topo, err = e.loadPkl(ctx, path, properties)
	case ".yaml", ".yml":
		topo, err = loadYAML(path, properties)
	default:
		return nil, fmt.Errorf("unsupported topology file %s: expected .pkl, .yaml or .yml", entryPoint)
	}
	if err != nil {
		return nil, err
	}
	return topo, nil
}

func (e *Evaluator) loadPkl(ctx context.Context, path string, properties map[string]string) (*ir.Topology, error) {
	opts := []func(*pkl.EvaluatorOptions){pkl.PreconfiguredOptions}
	if len(properties) > 0 {
		opts = append(opts, func(o *pkl.EvaluatorOptions) {
			if o.Properties == nil {
				o.Properties = make(map[string]string)
			}
			for k, v := range properties {
				o.Properties[k] = v
			}
		})
	}

	var (
		evaluator pkl.Evaluator
		err       error
	)
	if _, statErr := os.Stat(filepath.Join(e.projectDir, "PklProject")); statErr == nil {
		u, err := url.Parse("file://" + e.projectDir + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse project directory URL: %w", err)
		}
		evaluator, err = pkl.NewProjectEvaluator(ctx, u, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create PKL evaluator: %w", err)
		}
	} else {
		evaluator, err = pkl.NewEvaluator(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create PKL evaluator: %w", err)
		}
	}
	defer evaluator.Close()

	var topo ir.Topology
	if err := evaluator.EvaluateModule(ctx, pkl.FileSource(path), &topo); err != nil {
		return nil, fmt.Errorf("failed to evaluate topology: %w", err)
	}
	return &topo, nil
}

func loadYAML(path string, properties map[string]string) (*ir.Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology: %w", err)
	}
	return DecodeYAML(bytes.NewReader(data), properties)
}

// DecodeYAML decodes a yaml topology. Unknown keys are rejected.
func DecodeYAML(r io.Reader, properties map[string]string) (*ir.Topology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var missing []string
	expanded := os.Expand(string(data), func(name string) string {
		v, ok := properties[name]
		if !ok {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("undefined properties: %s", strings.Join(missing, ", "))
	}

	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	var topo ir.Topology
	if err := dec.Decode(&topo); err != nil {
		if errors.Is(err, io.EOF) {
			return &topo, nil
		}
		return nil, fmt.Errorf("failed to decode topology: %w", err)
	}
	return &topo, nil
}
