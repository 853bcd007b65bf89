// Package source loads acquisition targets and the supplementary data used to enrich them.
package source

import (
	"fmt"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"
)

// NewTargetLoader returns a file loader for path, or the sample loader when path is empty.
func NewTargetLoader(path string) contract.TargetLoader {
	if path == "" {
		return NewSampleLoader()
	}
	return NewFileLoader(path)
}

// NewDataSource returns the data source variant for kind.
// The options are only consulted by the live source.
func NewDataSource(kind schema.SourceKind, opts LiveOptions) (contract.DataSource, error) {
	switch kind {
	case schema.StubSource, "":
		return NewStubSource(), nil
	case schema.LiveSource:
		if opts.BaseURL == "" {
			return nil, fmt.Errorf("live source requires a base URL")
		}
		return NewLiveSource(opts), nil
	case schema.NoneSource:
		return EmptySource{}, nil
	default:
		return nil, fmt.Errorf("unsupported source: %s. Must be stub, live, or none", kind)
	}
}
