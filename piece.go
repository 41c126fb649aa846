package tetris

import "fmt"

type Color int

const (
	ColorNone Color = iota
	ColorCyan
	ColorYellow
	ColorPurple
	ColorGreen
	ColorRed
	ColorBlue
	ColorOrange
)

func (c Color) String() string {
	switch c {
	case ColorNone:
		return "None"
	case ColorCyan:
		return "Cyan"
	case ColorYellow:
		return "Yellow"
	case ColorPurple:
		return "Purple"
	case ColorGreen:
		return "Green"
	case ColorRed:
		return "Red"
	case ColorBlue:
		return "Blue"
	case ColorOrange:
		return "Orange"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

type ShapeType int

const (
	ShapeI ShapeType = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL
)

// ShapeTypes lists every shape in catalog order.
var ShapeTypes = []ShapeType{ShapeI, ShapeO, ShapeT, ShapeS, ShapeZ, ShapeJ, ShapeL}

func (s ShapeType) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("ShapeType(%d)", int(s))
	}
	return shapeNames[s]
}

var shapeNames = [...]string{"I", "O", "T", "S", "Z", "J", "L"}

// Shape is a catalog entry. Each mask is a 4x4 grid packed row-major, the most
// significant bit being row 0, column 0.
type Shape struct {
	Masks [4]uint16
	Color Color
}

var shapes = [...]Shape{
	ShapeI: {Masks: [4]uint16{0xF000, 0x4444, 0xF000, 0x4444}, Color: ColorCyan},
	ShapeO: {Masks: [4]uint16{0xCC00, 0xCC00, 0xCC00, 0xCC00}, Color: ColorYellow},
	ShapeT: {Masks: [4]uint16{0xE400, 0x4C40, 0x4E00, 0x8C80}, Color: ColorPurple},
	ShapeS: {Masks: [4]uint16{0x6C00, 0x8C40, 0x6C00, 0x8C40}, Color: ColorGreen},
	ShapeZ: {Masks: [4]uint16{0xC600, 0x4C80, 0xC600, 0x4C80}, Color: ColorRed},
	ShapeJ: {Masks: [4]uint16{0xE200, 0x44C0, 0x8E00, 0xC880}, Color: ColorBlue},
	ShapeL: {Masks: [4]uint16{0xE800, 0xC440, 0x2E00, 0x88C0}, Color: ColorOrange},
}

// Shape returns the catalog entry for s. It panics on an unknown shape type.
func (s ShapeType) Shape() Shape {
	if s < 0 || int(s) >= len(shapes) {
		panic(fmt.Errorf("unknown shape type %d", int(s)))
	}
	return shapes[s]
}

// Matrix expands a rotation mask into a 4x4 grid of cells.
func Matrix(mask uint16, color Color) [4][4]Cell {
	var m [4][4]Cell
	for i := 0; i < 16; i++ {
		if mask&(0x8000>>uint(i)) != 0 {
			m[i/4][i%4] = Filled(color)
		}
	}
	return m
}

// Piece is the active, falling piece. X and Y locate the top-left corner of
// its 4x4 box and may be negative.
type Piece struct {
	Type     ShapeType
	Rotation int
	X, Y     int
}

func (p Piece) Mask() uint16 {
	return p.Type.Shape().Masks[p.Rotation%4]
}

func (p Piece) Color() Color {
	return p.Type.Shape().Color
}

func (p Piece) Matrix() [4][4]Cell {
	return Matrix(p.Mask(), p.Color())
}

// Point is an absolute board coordinate.
type Point struct {
	X, Y int
}

// Cells returns the absolute coordinates of every occupied cell of p.
func (p Piece) Cells() []Point {
	m := p.Matrix()
	points := make([]Point, 0, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if m[y][x].IsFilled() {
				points = append(points, Point{X: p.X + x, Y: p.Y + y})
			}
		}
	}
	return points
}

func (p Piece) String() string {
	return fmt.Sprintf("%s@(%d,%d)r%d", p.Type, p.X, p.Y, p.Rotation)
}
