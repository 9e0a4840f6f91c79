package drill

import "github.com/alecthomas/participle/v2/lexer"

// Script is a parsed drill script.
// Example: side left; zones front back; mode tactic; speed 12; rounds 2
type Script struct {
	Statements []*Statement `( @@ Semicolon? | Semicolon )*`
}

// Statement is one setting. Exactly one field is set.
type Statement struct {
	Pos lexer.Position

	Side   *string  `  KwSide @Ident`
	Zones  []string `| KwZones @Ident+`
	Mode   *string  `| KwMode @Ident`
	Speed  *int     `| KwSpeed @Integer`
	Rounds *int     `| KwRounds @Integer`
	Hand   *string  `| KwHand @Ident`
	Seed   *uint64  `| KwSeed @Integer`
	Picks  *int     `| KwPicks @Integer`
}
