package parser

import (
	"path/filepath"
	"strings"
)

// Language identifies a grammar used to parse component source.
type Language int

const (
	// LanguageTSX is TypeScript with JSX enabled. Pasted component code is
	// always parsed with this grammar: it accepts plain JS, JSX, and TS forms.
	LanguageTSX Language = iota
	// LanguageTypeScript is TypeScript without JSX (.ts files).
	LanguageTypeScript
	// LanguageJavaScript is JavaScript, JSX included (.js, .jsx files).
	LanguageJavaScript
	// LanguageUnknown is an unsupported language.
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageTSX:
		return "tsx"
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// DetectLanguage detects the language from a file path extension.
// Returns LanguageUnknown for unrecognized extensions.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".tsx":
		return LanguageTSX
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// SupportedLanguages returns all languages the manager can parse.
func SupportedLanguages() []Language {
	return []Language{LanguageTSX, LanguageTypeScript, LanguageJavaScript}
}
