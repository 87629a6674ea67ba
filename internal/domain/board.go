package domain

import "sort"

// Direction is a single-step movement command.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Directions lists the accepted movement commands.
var Directions = []Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

// Valid reports whether d is one of the four movement commands.
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	default:
		return false
	}
}

// GridSize is the side length of the square board.
const GridSize = 12

// Fixed board topology. Cells are 1-based, row-major.
var (
	roomEntrances = map[int]string{
		39:  "Kitchen",
		46:  "Living Room",
		99:  "Bedroom",
		106: "Bathroom",
	}
	roomWalls = []int{
		25, 26, 27, 37, 38, 49, 50, 51,
		34, 35, 36, 47, 48, 58, 59, 60,
		85, 86, 87, 97, 98, 109, 110, 111,
		94, 95, 96, 107, 108, 118, 119, 120,
	}
	startPositions = [...]int{1, 12, 133, 144}
)

// MaxPlayers is bounded by the number of start cells.
const MaxPlayers = len(startPositions)

// Board is the static grid topology and movement validator. It never changes
// after construction.
type Board struct {
	gridSize  int
	walls     map[int]bool
	entrances map[int]string
	starts    []int
}

// Layout is a read-only description of the board for rendering.
type Layout struct {
	GridSize       int
	Walls          []int          // sorted ascending
	Entrances      map[int]string // cell -> room
	StartPositions []int          // seat order
}

// NewBoard builds the standard 12x12 board.
func NewBoard() *Board {
	b := &Board{
		gridSize:  GridSize,
		walls:     make(map[int]bool, len(roomWalls)),
		entrances: make(map[int]string, len(roomEntrances)),
		starts:    append([]int(nil), startPositions[:]...),
	}
	for _, cell := range roomWalls {
		b.walls[cell] = true
	}
	for cell, room := range roomEntrances {
		b.entrances[cell] = room
	}
	return b
}

// GridSize returns N for the N x N grid.
func (b *Board) GridSize() int { return b.gridSize }

// CellCount is the number of cells on the board.
func (b *Board) CellCount() int { return b.gridSize * b.gridSize }

// IsWall reports whether cell is impassable.
func (b *Board) IsWall(cell int) bool { return b.walls[cell] }

// RoomAtCell returns the room whose entrance is cell.
func (b *Board) RoomAtCell(cell int) (string, bool) {
	room, ok := b.entrances[cell]
	return room, ok
}

// EntranceOf returns the entrance cell of a room.
func (b *Board) EntranceOf(room string) (int, bool) {
	for cell, name := range b.entrances {
		if name == room {
			return cell, true
		}
	}
	return 0, false
}

// StartPositions returns the start cells in seat order.
func (b *Board) StartPositions() []int {
	return append([]int(nil), b.starts...)
}

// Neighbor returns the cell one step from cell in direction d. It fails at the
// grid edge, on a wall, or for an unknown direction.
func (b *Board) Neighbor(cell int, d Direction) (int, bool) {
	n := b.gridSize
	if cell < 1 || cell > b.CellCount() {
		return 0, false
	}
	row, col := (cell-1)/n, (cell-1)%n

	next := cell
	switch d {
	case DirectionUp:
		if row == 0 {
			return 0, false
		}
		next -= n
	case DirectionDown:
		if row == n-1 {
			return 0, false
		}
		next += n
	case DirectionLeft:
		if col == 0 {
			return 0, false
		}
		next--
	case DirectionRight:
		if col == n-1 {
			return 0, false
		}
		next++
	default:
		return 0, false
	}

	if b.walls[next] {
		return 0, false
	}
	return next, true
}

// Move steps the player one cell. On failure the player is untouched.
func (b *Board) Move(p *Player, d Direction) bool {
	next, ok := b.Neighbor(p.Position, d)
	if !ok {
		return false
	}
	p.Position = next
	return true
}

// RoomAt returns the room whose entrance the player stands on.
func (b *Board) RoomAt(p *Player) (string, bool) {
	return b.RoomAtCell(p.Position)
}

// Layout returns a copy of the topology.
func (b *Board) Layout() Layout {
	walls := make([]int, 0, len(b.walls))
	for cell := range b.walls {
		walls = append(walls, cell)
	}
	sort.Ints(walls)

	entrances := make(map[int]string, len(b.entrances))
	for cell, room := range b.entrances {
		entrances[cell] = room
	}

	return Layout{
		GridSize:       b.gridSize,
		Walls:          walls,
		Entrances:      entrances,
		StartPositions: b.StartPositions(),
	}
}
