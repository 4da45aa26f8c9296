// Package xlsx reads the worksheets of an XLSX workbook as text tables.
//
// Only cached cell values are read; formulas are never evaluated.
package xlsx

// SpreadsheetML parts, mapped only as far as the reader needs them.

type workbookPart struct {
	Props struct {
		Date1904 bool `xml:"date1904,attr"`
	} `xml:"workbookPr"`
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"id,attr"` // r:id
	} `xml:"sheets>sheet"`
}

type relationshipsPart struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type worksheetPart struct {
	Cells  []cellXML `xml:"sheetData>row>c"`
	Merges []struct {
		Ref string `xml:"ref,attr"`
	} `xml:"mergeCells>mergeCell"`
}

type cellXML struct {
	R string `xml:"r,attr"`
	T string `xml:"t,attr"` // s, b, e, str, inlineStr; empty for numbers
	S int    `xml:"s,attr"`
	V string `xml:"v"`
	F string `xml:"f"`

	InlineText string   `xml:"is>t"`
	InlineRuns []string `xml:"is>r>t"`
}

type sharedStringsPart struct {
	Items []struct {
		T    string   `xml:"t"`
		Runs []string `xml:"r>t"`
	} `xml:"si"`
}

type stylesPart struct {
	NumFmts []struct {
		ID   int    `xml:"numFmtId,attr"`
		Code string `xml:"formatCode,attr"`
	} `xml:"numFmts>numFmt"`
	CellXfs []struct {
		NumFmtID int `xml:"numFmtId,attr"`
	} `xml:"cellXfs>xf"`
}

// richText joins plain text with the text of any rich text runs.
func richText(t string, runs []string) string {
	if len(runs) == 0 {
		return t
	}
	n := len(t)
	for _, r := range runs {
		n += len(r)
	}
	b := make([]byte, 0, n)
	b = append(b, t...)
	for _, r := range runs {
		b = append(b, r...)
	}
	return string(b)
}
