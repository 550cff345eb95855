package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Tani1964/compiler-api/pkg/compiler"
	"github.com/Tani1964/compiler-api/pkg/grid"
	"github.com/Tani1964/compiler-api/pkg/utils"
)

const (
	screenWidth  = 640
	screenHeight = 480

	// basicfont.Face7x13 cell size
	charWidth  = 7
	charHeight = 13
	cols       = screenWidth / charWidth
)

var (
	colorText    = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	colorHeading = color.RGBA{0x7f, 0xd1, 0xff, 0xff}
	colorError   = color.RGBA{0xff, 0x6b, 0x6b, 0xff}
	colorPrompt  = color.RGBA{0xa6, 0xe2, 0x2e, 0xff}
)

// line is one row of the viewer.
type line struct {
	text string
	clr  color.Color
}

type Game struct {
	compiler *compiler.Compiler
	face     *text.GoXFace

	input  []rune
	result *compiler.Result
	err    error
}

func newGame(c *compiler.Compiler, initial string) *Game {
	g := &Game{
		compiler: c,
		face:     text.NewGoXFace(basicfont.Face7x13),
		input:    []rune(initial),
	}
	if initial != "" {
		g.compile()
	}
	return g
}

func (g *Game) compile() {
	g.result, g.err = g.compiler.Compile(string(g.input))
}

// typeRunes appends printable characters to the statement.
func (g *Game) typeRunes(rs []rune) {
	for _, r := range rs {
		if r >= ' ' && r != 0x7f {
			g.input = append(g.input, r)
		}
	}
}

func (g *Game) backspace() {
	if len(g.input) > 0 {
		g.input = g.input[:len(g.input)-1]
	}
}

func (g *Game) Update() error {
	g.typeRunes(ebiten.AppendInputChars(nil))
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		g.compile()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.input = g.input[:0]
		g.result, g.err = nil, nil
	}
	return nil
}

// lines lays out the prompt and the four stages as text rows.
func (g *Game) lines() []line {
	var out []line
	add := func(s string, clr color.Color) {
		for _, row := range grid.Wrap(s, cols) {
			out = append(out, line{row, clr})
		}
	}

	add("> "+string(g.input)+"_", colorPrompt)
	add("", colorText)

	if g.err != nil {
		add("error: "+g.err.Error(), colorError)
		return out
	}
	res := g.result
	if res == nil {
		add("Type a statement and press Enter.", colorText)
		return out
	}

	add(fmt.Sprintf("Tokens (%d)", len(res.Tokens)), colorHeading)
	toks := make([]string, len(res.Tokens))
	for i, tok := range res.Tokens {
		toks[i] = fmt.Sprintf("%s:%s", tok.Text, tok.Kind)
	}
	add("  "+strings.Join(toks, "  "), colorText)

	add("AST", colorHeading)
	astColor := colorText
	if !res.Valid() {
		astColor = colorError
	}
	add("  "+res.ASTText(), astColor)

	add("Intermediate Code", colorHeading)
	for _, l := range res.IntermediateCode {
		add("  "+l, colorText)
	}

	add("Machine Code", colorHeading)
	for _, l := range res.MachineLines {
		clr := colorText
		if !l.Supported && !l.Comment {
			clr = colorError
		}
		add("  "+l.String(), clr)
	}
	return out
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x1e, 0x1e, 0x24, 0xff})

	for i, l := range g.lines() {
		py := i * charHeight
		if py+charHeight > screenHeight {
			break
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(0, float64(py))
		op.ColorScale.ScaleWithColor(l.clr)
		text.Draw(screen, l.text, g.face, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	initial := "a=b+c"
	if len(os.Args) > 1 {
		src, err := utils.ReadSource(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to read source file: %v", err)
		}
		initial = src
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Compiler Pipeline")

	game := newGame(compiler.NewCompiler(compiler.DefaultConfig()), initial)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
