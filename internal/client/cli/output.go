package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/iudanet/sheetkeeper/internal/client/iocli"
	"github.com/iudanet/sheetkeeper/internal/client/sync"
	"github.com/iudanet/sheetkeeper/internal/models"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // успешное выполнение
	ExitFailure      = 1 // операция не выполнена: нет данных, сессия истекла, запись отклонена
	ExitCommandError = 2 // ошибка команды: аргументы, конфигурация, локальная база
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Err     error
	Message string
	Code    int
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Response is the JSON document printed by every command with --format json.
type Response struct {
	Status  string       `json:"status"` // "ok" или "error"
	Data    any          `json:"data,omitempty"`
	Notices []NoticeJSON `json:"notices,omitempty"`
	Error   *ErrorJSON   `json:"error,omitempty"`
}

// ErrorJSON описывает ошибку команды
type ErrorJSON struct {
	Message  string `json:"message"`
	ExitCode int    `json:"exitCode"`
}

// NoticeJSON представление уведомления движка
type NoticeJSON struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	SheetID string `json:"sheetId,omitempty"`
	Tab     string `json:"tab,omitempty"`
	Count   int    `json:"count,omitempty"`
}

// ViewJSON представление отображенной вкладки
type ViewJSON struct {
	SheetID  string                `json:"sheetId"`
	Tab      string                `json:"tab"`
	State    string                `json:"state"`
	Error    string                `json:"error,omitempty"`
	Snapshot *models.SheetSnapshot `json:"snapshot,omitempty"`
}

func newViewJSON(view sync.View) *ViewJSON {
	out := &ViewJSON{SheetID: view.SheetID, Tab: view.Tab, State: string(view.State)}
	if view.Err != nil {
		out.Error = view.Err.Error()
	}
	if view.Snapshot != nil {
		snap := view.Snapshot.Clone()
		snap.RawPayload = nil // исходный ответ Sheets API не выводится
		out.Snapshot = snap
	}
	return out
}

// Output renders engine views and notices in the selected format.
// Text is written immediately; JSON is collected and written once by Flush.
type Output struct {
	io      iocli.IO
	data    any
	view    *ViewJSON
	format  string
	notices []NoticeJSON
}

var _ sync.Renderer = (*Output)(nil)

// NewOutput создает вывод в формате format ("text" или "json")
func NewOutput(stdio iocli.IO, format string) *Output {
	return &Output{io: stdio, format: format}
}

// JSON reports whether output is collected as a JSON document
func (o *Output) JSON() bool {
	return o.format == FormatJSON
}

// Render implements sync.Renderer
func (o *Output) Render(view sync.View) {
	if o.JSON() {
		o.view = newViewJSON(view)
		return
	}
	o.printView(view)
}

// Notify implements sync.Renderer
func (o *Output) Notify(notice sync.Notice) {
	if o.JSON() {
		o.notices = append(o.notices, NoticeJSON{
			Kind:    string(notice.Kind),
			Message: notice.Message,
			SheetID: notice.SheetID,
			Tab:     notice.Tab,
			Count:   notice.Count,
		})
		return
	}
	o.io.Printf("%s %s\n", noticeMark(notice.Kind), notice.Message)
}

// LastView returns the last rendered view in its JSON form
func (o *Output) LastView() *ViewJSON {
	return o.view
}

// SetData задает полезную нагрузку JSON-ответа
func (o *Output) SetData(data any) {
	o.data = data
}

// Println печатает строку только в текстовом режиме
func (o *Output) Println(a ...any) {
	if !o.JSON() {
		o.io.Println(a...)
	}
}

// Printf печатает форматированную строку только в текстовом режиме
func (o *Output) Printf(format string, a ...any) {
	if !o.JSON() {
		o.io.Printf(format, a...)
	}
}

// Table печатает выровненную таблицу только в текстовом режиме
func (o *Output) Table(header []string, rows [][]string) {
	if o.JSON() {
		return
	}
	w := tabwriter.NewWriter(o.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

// Flush writes the JSON document, or the error line in text mode.
func (o *Output) Flush(err error) {
	if !o.JSON() {
		if err != nil {
			o.io.Printf("Error: %v\n", err)
		}
		return
	}

	resp := Response{Status: "ok", Data: o.data, Notices: o.notices}
	if resp.Data == nil && o.view != nil {
		resp.Data = o.view
	}
	if err != nil {
		resp.Status = "error"
		resp.Error = &ErrorJSON{Message: err.Error(), ExitCode: GetExitCode(err)}
	}

	enc := json.NewEncoder(o.io)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

func (o *Output) printView(view sync.View) {
	o.io.Printf("== %s / %s [%s] ==\n", view.SheetID, view.Tab, view.State)

	snap := view.Snapshot
	if snap == nil {
		return
	}
	if len(snap.TableData) == 0 {
		o.io.Println("(empty)")
		return
	}

	// Номер строки совпадает с номером строки в таблице: заголовок - строка 1
	header := append([]string{"#"}, snap.Header()...)
	rows := make([][]string, 0, len(snap.Rows()))
	for i, row := range snap.Rows() {
		rows = append(rows, append([]string{fmt.Sprint(i + 2)}, row...))
	}
	o.Table(header, rows)
	o.io.Printf("%d row(s), %d column(s)\n", snap.SheetStats.RowCount, snap.SheetStats.ColumnCount)
}

func noticeMark(kind sync.NoticeKind) string {
	switch kind {
	case sync.NoticeSynced:
		return "✓"
	case sync.NoticeQueued, sync.NoticeStale:
		return "⚠️"
	default:
		return "✗"
	}
}
