package domain

import (
	"reflect"
	"testing"
)

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard()
	layout := b.Layout()

	if layout.GridSize != 12 {
		t.Fatalf("grid size = %d, want 12", layout.GridSize)
	}
	if len(layout.Walls) != 32 {
		t.Fatalf("walls = %d, want 32", len(layout.Walls))
	}
	if room := layout.Entrances[39]; room != "Kitchen" {
		t.Fatalf("entrance 39 = %q, want Kitchen", room)
	}
	if !reflect.DeepEqual(layout.StartPositions, []int{1, 12, 133, 144}) {
		t.Fatalf("start positions = %v", layout.StartPositions)
	}
	for cell := range layout.Entrances {
		if b.IsWall(cell) {
			t.Fatalf("entrance %d is also a wall", cell)
		}
	}
	for _, cell := range layout.StartPositions {
		if b.IsWall(cell) {
			t.Fatalf("start %d is a wall", cell)
		}
	}

	// Layout is a copy.
	layout.Entrances[39] = "Garage"
	layout.Walls[0] = 1
	if room, _ := b.RoomAtCell(39); room != "Kitchen" {
		t.Fatalf("board mutated through layout: %q", room)
	}
	if b.IsWall(1) {
		t.Fatalf("board walls mutated through layout")
	}
}

func TestMoveBoundaries(t *testing.T) {
	b := NewBoard()
	n := b.GridSize()

	edges := []struct {
		name  string
		dir   Direction
		cells func(i int) int
	}{
		{name: "top row up", dir: DirectionUp, cells: func(i int) int { return i + 1 }},
		{name: "bottom row down", dir: DirectionDown, cells: func(i int) int { return n*(n-1) + i + 1 }},
		{name: "left column left", dir: DirectionLeft, cells: func(i int) int { return i*n + 1 }},
		{name: "right column right", dir: DirectionRight, cells: func(i int) int { return (i + 1) * n }},
	}

	for _, tt := range edges {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < n; i++ {
				cell := tt.cells(i)
				p := &Player{Position: cell}
				if b.Move(p, tt.dir) {
					t.Fatalf("move %s from %d succeeded", tt.dir, cell)
				}
				if p.Position != cell {
					t.Fatalf("position changed to %d after failed move from %d", p.Position, cell)
				}
			}
		})
	}
}

func TestMoveIntoWallsFails(t *testing.T) {
	b := NewBoard()
	n := b.GridSize()
	checked := 0

	for _, wall := range b.Layout().Walls {
		row, col := (wall-1)/n, (wall-1)%n
		sources := []struct {
			from int
			ok   bool
			dir  Direction
		}{
			{from: wall + n, ok: row < n-1, dir: DirectionUp},
			{from: wall - n, ok: row > 0, dir: DirectionDown},
			{from: wall + 1, ok: col < n-1, dir: DirectionLeft},
			{from: wall - 1, ok: col > 0, dir: DirectionRight},
		}
		for _, src := range sources {
			if !src.ok || b.IsWall(src.from) {
				continue
			}
			p := &Player{Position: src.from}
			if b.Move(p, src.dir) {
				t.Fatalf("move %s from %d into wall %d succeeded", src.dir, src.from, wall)
			}
			if p.Position != src.from {
				t.Fatalf("position changed to %d after blocked move", p.Position)
			}
			checked++
		}
	}
	if checked == 0 {
		t.Fatalf("no wall-adjacent cells checked")
	}
}

func TestMoveScenarios(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		name   string
		from   int
		dir    Direction
		wantOK bool
		want   int
		room   string
	}{
		{name: "28 down lands on 40", from: 28, dir: DirectionDown, wantOK: true, want: 40},
		{name: "40 left enters kitchen", from: 40, dir: DirectionLeft, wantOK: true, want: 39, room: "Kitchen"},
		{name: "39 left blocked by wall 38", from: 39, dir: DirectionLeft, wantOK: false, want: 39, room: "Kitchen"},
		{name: "28 left blocked by wall 27", from: 28, dir: DirectionLeft, wantOK: false, want: 28},
		{name: "1 right", from: 1, dir: DirectionRight, wantOK: true, want: 2},
		{name: "144 up", from: 144, dir: DirectionUp, wantOK: true, want: 132},
		{name: "unknown direction", from: 28, dir: Direction("north"), wantOK: false, want: 28},
		{name: "empty direction", from: 28, dir: Direction(""), wantOK: false, want: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Player{Position: tt.from}
			if got := b.Move(p, tt.dir); got != tt.wantOK {
				t.Fatalf("Move() = %v, want %v", got, tt.wantOK)
			}
			if p.Position != tt.want {
				t.Fatalf("position = %d, want %d", p.Position, tt.want)
			}
			room, ok := b.RoomAt(p)
			if room != tt.room || ok != (tt.room != "") {
				t.Fatalf("RoomAt() = %q, %v, want %q", room, ok, tt.room)
			}
		})
	}
}

func TestEntranceOf(t *testing.T) {
	b := NewBoard()
	for _, room := range DefaultRooms {
		cell, ok := b.EntranceOf(room)
		if !ok {
			t.Fatalf("room %q has no entrance", room)
		}
		if got, _ := b.RoomAtCell(cell); got != room {
			t.Fatalf("RoomAtCell(%d) = %q, want %q", cell, got, room)
		}
	}
	if _, ok := b.EntranceOf("Garage"); ok {
		t.Fatalf("Garage should have no entrance")
	}
}

func TestNeighborOutOfRange(t *testing.T) {
	b := NewBoard()
	for _, cell := range []int{0, -3, 145} {
		if _, ok := b.Neighbor(cell, DirectionUp); ok {
			t.Fatalf("Neighbor(%d) succeeded", cell)
		}
	}
}
