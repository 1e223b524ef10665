package sheets

import "fmt"

// ColumnLetter converts a 1-based column index to its A1 letters (1 → A, 27 → AA).
// Indexes below 1 map to "A".
func ColumnLetter(index int) string {
	if index <= 0 {
		return "A"
	}

	// Биективная система счисления по основанию 26: нуля нет, Z = 26
	var letters []byte
	for index > 0 {
		rem := (index - 1) % 26
		letters = append([]byte{byte('A' + rem)}, letters...)
		index = (index - 1) / 26
	}
	return string(letters)
}

// lastColumn возвращает букву последней колонки для строки из n значений (минимум одна колонка)
func lastColumn(n int) string {
	return ColumnLetter(max(n, 1))
}

// UpdateRange returns the A1 range covering row rowNumber of tab for n values, e.g. "Sheet1!A2:C2".
func UpdateRange(tab string, rowNumber, n int) string {
	col := lastColumn(n)
	return fmt.Sprintf("%s!A%d:%s%d", tab, rowNumber, col, rowNumber)
}

// AppendRange returns the A1 column range used to append n values to tab, e.g. "Sheet1!A:C".
func AppendRange(tab string, n int) string {
	return fmt.Sprintf("%s!A:%s", tab, lastColumn(n))
}
