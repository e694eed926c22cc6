package ubi

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// command is one protocol line.
type command struct {
	Position *positionCmd `parser:"  'position' @@"`
	Go       *goCmd       `parser:"| 'go' @@"`
	Perft    *perftCmd    `parser:"| 'perft' @@"`
	Keyword  string       `parser:"| @('ubi' | 'isready' | 'moves' | 'd' | 'stop' | 'exit' | 'quit')"`
}

type positionCmd struct {
	StartPos bool     `parser:"( @'startpos'"`
	FEN      []string `parser:"| 'fen' @(!'moves')+ )"`
	Moves    []string `parser:"( 'moves' @Word* )?"`
}

type goCmd struct {
	Perft *perftCmd `parser:"'perft' @@"`
}

type perftCmd struct {
	Depth int `parser:"@Word"`
}

var keywords = map[string]bool{
	"position": true, "go": true, "perft": true, "ubi": true, "isready": true,
	"moves": true, "d": true, "stop": true, "exit": true, "quit": true,
}

var ubiLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[^\s]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[command](
	participle.Lexer(ubiLexer),
	participle.Elide("Whitespace"),
)

func parse(line string) (*command, error) {
	return parser.ParseString("", line)
}
