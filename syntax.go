package kibi

import (
	"path/filepath"
	"strings"
)

// HLDB is the built-in syntax highlight database.
var HLDB = []*Syntax{
	{
		Filetype:  "c",
		FileMatch: []string{".c", ".h", ".cpp", ".hpp", ".cc"},
		Keywords: []string{
			"auto", "break", "case", "continue", "default", "do", "else", "enum",
			"extern", "for", "goto", "if", "register", "return", "sizeof", "static",
			"struct", "switch", "typedef", "union", "volatile", "while", "NULL",
			"class", "namespace", "new", "delete", "template", "this", "try",
			"throw", "virtual", "public", "private", "protected",
		},
		Types: []string{
			"int", "long", "double", "float", "char", "unsigned", "signed",
			"void", "short", "const", "bool",
		},
		SingleLineCommentStart: "//",
		MultiLineCommentStart:  "/*",
		MultiLineCommentEnd:    "*/",
		Flags:                  HighlightNumbers | HighlightStrings,
	},
	{
		Filetype:  "go",
		FileMatch: []string{".go"},
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if",
			"import", "interface", "map", "package", "range", "return",
			"select", "struct", "switch", "type", "var",
		},
		Types: []string{
			"bool", "byte", "complex64", "complex128", "error",
			"float32", "float64", "int", "int8", "int16", "int32",
			"int64", "rune", "string", "uint", "uint8", "uint16",
			"uint32", "uint64", "uintptr", "any",
			"true", "false", "nil", "iota",
		},
		SingleLineCommentStart: "//",
		MultiLineCommentStart:  "/*",
		MultiLineCommentEnd:    "*/",
		Flags:                  HighlightNumbers | HighlightStrings,
	},
	{
		Filetype:  "rust",
		FileMatch: []string{".rs"},
		Keywords: []string{
			"if", "else", "while", "for", "loop", "break", "continue", "return",
			"match", "in", "as", "where", "struct", "enum", "impl", "trait",
			"fn", "let", "mut", "const", "static", "pub", "mod", "use",
			"crate", "super", "self",
		},
		Types: []string{
			"i8", "i16", "i32", "i64", "i128", "isize",
			"u8", "u16", "u32", "u64", "u128", "usize",
			"f32", "f64", "bool", "char", "str", "String",
			"Vec", "Option", "Result",
		},
		SingleLineCommentStart: "//",
		MultiLineCommentStart:  "/*",
		MultiLineCommentEnd:    "*/",
		Flags:                  HighlightNumbers | HighlightStrings,
	},
	{
		Filetype:  "python",
		FileMatch: []string{".py"},
		Keywords: []string{
			"and", "as", "assert", "async", "await", "break", "class",
			"continue", "def", "del", "elif", "else", "except", "finally",
			"for", "from", "global", "if", "import", "in", "is", "lambda",
			"nonlocal", "not", "or", "pass", "raise", "return", "try",
			"while", "with", "yield",
		},
		Types: []string{
			"True", "False", "None",
			"int", "float", "str", "bool", "list", "dict", "set",
			"tuple", "bytes", "object",
		},
		SingleLineCommentStart: "#",
		Flags:                  HighlightNumbers | HighlightStrings,
	},
}

// findSyntax returns the first entry of db matching filename, or nil.
func findSyntax(db []*Syntax, filename string) *Syntax {
	if filename == "" {
		return nil
	}
	ext := filepath.Ext(filename)
	for _, s := range db {
		for _, pattern := range s.FileMatch {
			if strings.HasPrefix(pattern, ".") {
				if pattern == ext {
					return s
				}
			} else if strings.Contains(filename, pattern) {
				return s
			}
		}
	}
	return nil
}
