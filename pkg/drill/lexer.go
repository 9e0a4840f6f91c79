package drill

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// DrillLexer tokenizes drill scripts. Statements are separated by semicolons
// or newlines; '#' starts a comment.
var DrillLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s]+`},

	// Keywords
	{Name: "KwSide", Pattern: `(?i)\bside\b`},
	{Name: "KwZones", Pattern: `(?i)\bzones\b`},
	{Name: "KwMode", Pattern: `(?i)\bmode\b`},
	{Name: "KwSpeed", Pattern: `(?i)\bspeed\b`},
	{Name: "KwRounds", Pattern: `(?i)\brounds\b`},
	{Name: "KwHand", Pattern: `(?i)\bhand\b`},
	{Name: "KwSeed", Pattern: `(?i)\bseed\b`},
	{Name: "KwPicks", Pattern: `(?i)\bpicks\b`},

	{Name: "Semicolon", Pattern: `;`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_-]*`},
})
