package dataframe

import (
	"github.com/go-winnow/winnow"
	itypes "github.com/go-winnow/winnow/internal/types"
)

// planImpl is an optimized execution Plan for a DataFrame
type planImpl struct {
	stages []*stageImpl
	parser winnow.DataSourceParser
	source winnow.DataSource
}

// Size returns the number of stages in this Plan
func (p *planImpl) Size() int {
	return len(p.stages)
}

// GetStage returns a particular Stage in this Plan
func (p *planImpl) GetStage(idx int) itypes.Stage {
	return p.stages[idx]
}

// Parser returns this Plan's DataSourceParser
func (p *planImpl) Parser() winnow.DataSourceParser {
	return p.parser
}

// Source returns this Plan's DataSource
func (p *planImpl) Source() winnow.DataSource {
	return p.source
}
