package hcl

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/turbarch/internal/config"
	"github.com/vk/turbarch/internal/ctxlog"
	"github.com/vk/turbarch/internal/fsutil"
)

// ErrNoFiles is returned when none of the given paths holds an .hcl file.
var ErrNoFiles = errors.New("no .hcl files found")

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file under paths and merges their blocks into one
// model, in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := fsutil.CollectFiles(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("%v: %w", paths, ErrNoFiles)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, point := range root.Points {
			model.Points = append(model.Points, l.translatePoint(point))
		}
		for _, element := range root.Elements {
			el, err := l.translateElement(ctx, element)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Elements = append(model.Elements, el)
		}
	}

	logger.Debug("HCL loading complete.", "points", len(model.Points), "elements", len(model.Elements))
	return model, nil
}
