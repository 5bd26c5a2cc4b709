package models

import "strconv"

// Point is an integer cell coordinate on the board
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

var (
	PointZero  = Point{X: 0, Y: 0}
	PointOne   = Point{X: 1, Y: 1}
	PointUp    = Point{X: 0, Y: 1}
	PointDown  = Point{X: 0, Y: -1}
	PointLeft  = Point{X: -1, Y: 0}
	PointRight = Point{X: 1, Y: 0}
)

// NeighborsCardinal holds the four edge-adjacent offsets
var NeighborsCardinal = [4]Point{
	PointUp,
	PointRight,
	PointDown,
	PointLeft,
}

// NeighborsFull holds all eight adjacent offsets, cardinals first
var NeighborsFull = [8]Point{
	PointUp,
	PointRight,
	PointDown,
	PointLeft,
	{X: 1, Y: 1},
	{X: 1, Y: -1},
	{X: -1, Y: -1},
	{X: -1, Y: 1},
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}
