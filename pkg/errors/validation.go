package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxCellText is the most characters a spreadsheet cell accepts.
const MaxCellText = 32767

const maxPathLength = 500

// ValidateSectionName checks that a section name fits a single merged
// header cell: non-blank, one line, at most MaxCellText characters. The
// ordinal prefix ("1. ") is optional.
func ValidateSectionName(name string) error {
	return validateCellText(ErrCodeInvalidInput, "section name", name)
}

// ValidateTask applies the same rules to an item's task and reports
// INVALID_ITEM.
func ValidateTask(task string) error {
	return validateCellText(ErrCodeInvalidItem, "task", task)
}

// ValidateTextLength checks only that s has at most limit characters. It
// suits free text such as descriptions, which may span several lines.
func ValidateTextLength(code Code, field, s string, limit int) error {
	if n := utf8.RuneCountInString(s); n > limit {
		return New(code, "%s has %d characters (max %d)", field, n, limit)
	}
	return nil
}

func validateCellText(code Code, field, s string) error {
	if strings.TrimSpace(s) == "" {
		return New(code, "%s cannot be empty", field)
	}
	if err := ValidateTextLength(code, field, s, MaxCellText); err != nil {
		return err
	}
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return New(code, "%s %q contains control characters", field, s)
	}
	return nil
}

// ValidatePath rejects empty paths, paths longer than 500 bytes and paths
// containing control characters (NUL included). It does not touch the
// filesystem.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	return nil
}
