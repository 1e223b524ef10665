package sheets

import (
	"encoding/json"
	"fmt"

	pkgapi "github.com/iudanet/sheetkeeper/pkg/api"
)

// Подмножество ресурса Spreadsheet, которое нужно для разбора сетки

type spreadsheet struct {
	Properties struct {
		Title string `json:"title"`
	} `json:"properties"`
	Sheets []sheet `json:"sheets"`
}

type sheet struct {
	Properties struct {
		Title          string `json:"title"`
		GridProperties *struct {
			ColumnCount *int `json:"columnCount"`
		} `json:"gridProperties"`
	} `json:"properties"`
	Data []struct {
		RowData []struct {
			Values []cellData `json:"values"`
		} `json:"rowData"`
	} `json:"data"`
}

type cellData struct {
	FormattedValue   *string         `json:"formattedValue"`
	UserEnteredValue *extendedValue  `json:"userEnteredValue"`
	EffectiveValue   json.RawMessage `json:"effectiveValue"`
	DataValidation   *struct {
		Condition *struct {
			Type   string `json:"type"`
			Values []struct {
				UserEnteredValue *string `json:"userEnteredValue"`
			} `json:"values"`
		} `json:"condition"`
	} `json:"dataValidation"`
}

type extendedValue struct {
	FormulaValue *string `json:"formulaValue"`
}

// ParseGrid converts a spreadsheets.get response (includeGridData=true, one range)
// into the gateway read response. The raw document is returned as RawSheet.
func ParseGrid(raw []byte) (*pkgapi.SheetResponse, error) {
	var doc spreadsheet
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode spreadsheet: %w", err)
	}

	resp := &pkgapi.SheetResponse{
		Success:   true,
		TableData: [][]string{},
		GridMeta:  [][]pkgapi.GridMetaCell{},
		RawSheet:  append(json.RawMessage(nil), raw...),
	}

	if len(doc.Sheets) == 0 {
		return resp, nil
	}
	first := doc.Sheets[0]

	if len(first.Data) > 0 {
		for _, row := range first.Data[0].RowData {
			values := make([]string, len(row.Values))
			meta := make([]pkgapi.GridMetaCell, len(row.Values))
			for i, cell := range row.Values {
				values[i] = cell.formatted()
				meta[i] = cell.meta()
			}
			resp.TableData = append(resp.TableData, values)
			resp.GridMeta = append(resp.GridMeta, meta)
		}
	}

	// Число колонок берется из заголовка, затем из свойств сетки
	switch {
	case len(resp.TableData) > 0:
		resp.SheetStats.ColumnCount = len(resp.TableData[0])
	case first.Properties.GridProperties != nil && first.Properties.GridProperties.ColumnCount != nil:
		resp.SheetStats.ColumnCount = *first.Properties.GridProperties.ColumnCount
	}
	resp.SheetStats.RowCount = max(len(resp.TableData)-1, 0)

	return resp, nil
}

func (c *cellData) formatted() string {
	if c.FormattedValue == nil {
		return ""
	}
	return *c.FormattedValue
}

func (c *cellData) meta() pkgapi.GridMetaCell {
	meta := pkgapi.GridMetaCell{
		IsFormula:      c.UserEnteredValue != nil && c.UserEnteredValue.FormulaValue != nil && *c.UserEnteredValue.FormulaValue != "",
		EffectiveValue: json.RawMessage("null"),
	}
	if len(c.EffectiveValue) > 0 {
		meta.EffectiveValue = append(json.RawMessage(nil), c.EffectiveValue...)
	}

	if dv := c.DataValidation; dv != nil && dv.Condition != nil && dv.Condition.Type == "ONE_OF_LIST" {
		meta.Options = make([]string, 0, len(dv.Condition.Values))
		for _, v := range dv.Condition.Values {
			option := ""
			if v.UserEnteredValue != nil {
				option = *v.UserEnteredValue
			}
			meta.Options = append(meta.Options, option)
		}
	}
	return meta
}

// Metadata describes a spreadsheet without grid data
type Metadata struct {
	Title string
	Tabs  []string
}

func parseMetadata(raw []byte) (*Metadata, error) {
	var doc spreadsheet
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode spreadsheet metadata: %w", err)
	}

	md := &Metadata{Title: doc.Properties.Title, Tabs: make([]string, 0, len(doc.Sheets))}
	for _, s := range doc.Sheets {
		md.Tabs = append(md.Tabs, s.Properties.Title)
	}
	return md, nil
}
