package validation

import (
	"fmt"
	"strings"
)

// ValidationError описывает отклонение входных данных до обращения к сети.
// Такие ошибки никогда не попадают в очередь отложенных операций.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

const (
	// MaxTabLen максимальная длина названия вкладки в Google Sheets
	MaxTabLen = 100
)

// ValidateSheetID проверяет идентификатор таблицы
func ValidateSheetID(sheetID string) error {
	if strings.TrimSpace(sheetID) == "" {
		return &ValidationError{Field: "sheetId", Reason: "cannot be empty"}
	}
	if strings.ContainsAny(sheetID, "/?#") {
		return &ValidationError{Field: "sheetId", Reason: "contains reserved characters"}
	}
	return nil
}

// ValidateTab проверяет название вкладки
func ValidateTab(tab string) error {
	if tab == "" {
		return &ValidationError{Field: "tab", Reason: "cannot be empty"}
	}
	if len([]rune(tab)) > MaxTabLen {
		return &ValidationError{Field: "tab", Reason: fmt.Sprintf("must not exceed %d characters", MaxTabLen)}
	}
	return nil
}

// ValidateValues проверяет значения строки.
// Пустой срез допустим, отсутствие значений (nil) - нет.
func ValidateValues(values []string) error {
	if values == nil {
		return &ValidationError{Field: "values", Reason: "must be a sequence of strings"}
	}
	return nil
}

// ValidateRowNumber проверяет номер строки (1-based, заголовок - строка 1)
func ValidateRowNumber(rowNumber int) error {
	if rowNumber < 1 {
		return &ValidationError{Field: "rowNumber", Reason: "must be a positive integer"}
	}
	return nil
}

// ValidateUpdate проверяет параметры перезаписи строки
func ValidateUpdate(tab string, rowNumber int, values []string) error {
	if err := ValidateTab(tab); err != nil {
		return err
	}
	if err := ValidateRowNumber(rowNumber); err != nil {
		return err
	}
	return ValidateValues(values)
}

// ValidateAppend проверяет параметры добавления строки
func ValidateAppend(tab string, values []string) error {
	if err := ValidateTab(tab); err != nil {
		return err
	}
	return ValidateValues(values)
}
