package bsp

// Cell is a grid coordinate
type Cell struct {
	X, Y int
}

// Room is an axis-aligned rectangle of floor cells
type Room struct {
	X, Y, W, H int
}

// CenterX returns the column of the room center
func (r *Room) CenterX() int {
	return r.X + r.W/2
}

// CenterY returns the row of the room center
func (r *Room) CenterY() int {
	return r.Y + r.H/2
}

// Center returns the center cell
func (r *Room) Center() Cell {
	return Cell{X: r.CenterX(), Y: r.CenterY()}
}

// Contains reports whether a cell lies inside the room
func (r *Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Leaf is a node of the partition tree. A leaf owns either a room, two
// children, or nothing when room placement failed.
type Leaf struct {
	X, Y, W, H  int
	Left, Right *Leaf
	Room        *Room
}

// NewLeaf creates a leaf covering the given rectangle
func NewLeaf(x, y, w, h int) *Leaf {
	return &Leaf{X: x, Y: y, W: w, H: h}
}

// IsTerminal returns true if the leaf has not been split
func (l *Leaf) IsTerminal() bool {
	return l.Left == nil && l.Right == nil
}

// Walk visits the subtree in pre-order (node, left, right)
func (l *Leaf) Walk(fn func(*Leaf)) {
	if l == nil {
		return
	}
	fn(l)
	l.Left.Walk(fn)
	l.Right.Walk(fn)
}

// FindRoom returns the first room in the subtree using a depth-first search.
// The left child is searched before the right one, so corridors attach to the
// leftmost or topmost room of each half.
func (l *Leaf) FindRoom() *Room {
	if l == nil {
		return nil
	}
	stack := []*Leaf{l}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Room != nil {
			return n.Room
		}
		if n.Right != nil {
			stack = append(stack, n.Right)
		}
		if n.Left != nil {
			stack = append(stack, n.Left)
		}
	}
	return nil
}
