// Package card implements the bingo card: layout generation, line detection
// and per-component status derivation.
package card

import (
	"github.com/aibingo/aibingo-go/internal/catalog"
	"github.com/aibingo/aibingo-go/internal/dependencies/random"
	"github.com/aibingo/aibingo-go/internal/model"
)

// Grid dimensions. Cards are laid out row-major: index = row*GridCols + col.
const (
	GridCols = 5
	GridRows = 4
	CardSize = GridCols * GridRows
)

// Service generates card layouts
type Service struct {
	random random.Random
}

// New creates a new card Service
func New(rnd random.Random) *Service {
	return &Service{random: rnd}
}

// GenerateLayout returns a uniformly random permutation of the 20 core
// component ids
func (s *Service) GenerateLayout() []string {
	layout := catalog.CoreIDs()
	s.random.Shuffle(len(layout), func(i, j int) {
		layout[i], layout[j] = layout[j], layout[i]
	})
	return layout
}

// CountCompletedLines returns how many bingo lines are fully completed for
// the given layout: 4 rows, 5 columns, and the two diagonals.
//
// The grid is 5 wide but only 4 tall, so each diagonal spans 4 of the 5
// columns: (0,0)..(3,3) and (0,4)..(3,1). That asymmetry is part of the game
// rules.
//
// Ids in completed that do not appear in the layout are ignored. Layouts
// shorter than 20 entries are tolerated; missing cells count as unfilled.
func CountCompletedLines(layout []string, completed model.IDSet) int {
	var grid [GridRows][GridCols]bool
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			idx := row*GridCols + col
			if idx < len(layout) {
				grid[row][col] = completed.Has(layout[idx])
			}
		}
	}

	count := 0

	// Rows
	for row := 0; row < GridRows; row++ {
		full := true
		for col := 0; col < GridCols; col++ {
			if !grid[row][col] {
				full = false
				break
			}
		}
		if full {
			count++
		}
	}

	// Columns
	for col := 0; col < GridCols; col++ {
		full := true
		for row := 0; row < GridRows; row++ {
			if !grid[row][col] {
				full = false
				break
			}
		}
		if full {
			count++
		}
	}

	// Top-left to bottom-right diagonal
	if grid[0][0] && grid[1][1] && grid[2][2] && grid[3][3] {
		count++
	}

	// Top-right to bottom-left diagonal
	if grid[0][GridCols-1] && grid[1][GridCols-2] && grid[2][GridCols-3] && grid[3][GridCols-4] {
		count++
	}

	return count
}
