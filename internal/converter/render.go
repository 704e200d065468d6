package converter

import (
	"fmt"
	"html"
	"strings"

	"github.com/nconklindev/tabi/internal/types"

	"github.com/microcosm-cc/bluemonday"
)

const (
	// MinHeaderCells is the number of non-empty cells the first row needs
	// to be used as the header.
	MinHeaderCells = 2

	// NoteSeparator joins every cell from the third column onward.
	NoteSeparator = " / "

	TimeMarker  = "🕘"
	PlaceMarker = "📍"
)

// EscapeMode controls how cell text and the title are embedded in the page.
type EscapeMode string

const (
	// EscapeHTML escapes every HTML special character.
	EscapeHTML EscapeMode = "escape"
	// EscapeSanitize keeps safe inline markup and strips anything active.
	EscapeSanitize EscapeMode = "sanitize"
	// EscapeRaw embeds cell text untouched.
	EscapeRaw EscapeMode = "raw"
)

// ParseEscapeMode validates a mode name. The empty string selects EscapeHTML.
func ParseEscapeMode(s string) (EscapeMode, error) {
	switch m := EscapeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return EscapeHTML, nil
	case EscapeHTML, EscapeSanitize, EscapeRaw:
		return m, nil
	default:
		return "", fmt.Errorf("invalid escape mode %q (must be escape, sanitize, or raw)", s)
	}
}

// Page holds the fixed text and styling hooks of the generated document.
type Page struct {
	Lang          string
	HeadingPrefix string
	Caption       string
	Footer        string
	FontFamily    string
	FontURL       string
	DefaultHeader [3]string
	Escape        EscapeMode
}

// DefaultPage returns the page used when no configuration overrides it.
func DefaultPage() Page {
	return Page{
		Lang:          "en",
		HeadingPrefix: "Travel Plan",
		Caption:       "Schedule for December 31 (generated from a spreadsheet)",
		Footer:        "Have a wonderful trip! ✈️",
		FontFamily:    "Kosugi Maru",
		FontURL:       "https://fonts.googleapis.com/css2?family=Kosugi+Maru&display=swap",
		DefaultHeader: [3]string{"Time", "Activity", "Note"},
		Escape:        EscapeHTML,
	}
}

// Cells is one body row folded into the three rendered columns.
type Cells struct {
	Marker   string
	Time     string
	Activity string
	Note     string
}

// ClassifyHeader splits off the first row as a header when it has at least
// MinHeaderCells non-empty cells. Otherwise every row is data.
func ClassifyHeader(table types.Table) types.Itinerary {
	if len(table) == 0 {
		return types.Itinerary{}
	}

	nonEmpty := 0
	for _, cell := range table[0] {
		if strings.TrimSpace(cell) != "" {
			nonEmpty++
		}
	}

	if nonEmpty >= MinHeaderCells {
		return types.Itinerary{Header: table[0], Rows: table[1:]}
	}
	return types.Itinerary{Rows: table}
}

// RenderRow folds a row of any width into time, activity and note.
func RenderRow(row types.Row) Cells {
	t, a, n := fold(row)

	marker := PlaceMarker
	if strings.TrimSpace(t) != "" {
		marker = TimeMarker
	}

	return Cells{Marker: marker, Time: t, Activity: a, Note: n}
}

// HeaderTitles returns the three column titles for an itinerary: the detected
// header folded like a body row, or the page defaults.
func HeaderTitles(it types.Itinerary, page Page) [3]string {
	if it.Header == nil {
		return page.DefaultHeader
	}
	t, a, n := fold(it.Header)
	return [3]string{t, a, n}
}

func fold(row types.Row) (string, string, string) {
	cells := make([]string, len(row), max(len(row), 3))
	copy(cells, row)
	for len(cells) < 3 {
		cells = append(cells, "")
	}

	var notes []string
	for _, c := range cells[2:] {
		if strings.TrimSpace(c) != "" {
			notes = append(notes, c)
		}
	}

	return cells[0], cells[1], strings.Join(notes, NoteSeparator)
}

// RenderDocument builds the complete page for a table. The output depends only
// on its arguments.
func RenderDocument(table types.Table, title string, page Page) types.Document {
	return renderDocument(ClassifyHeader(table), title, page, nil)
}

func renderDocument(it types.Itinerary, title string, page Page, onRow func(done, total int)) types.Document {
	esc := escaper(page.Escape)
	var b strings.Builder

	fmt.Fprintf(&b, `<!doctype html>
<html lang="%s">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>%s</title>
  <link href="%s" rel="stylesheet">
  <style>
    body{font-family:'%s', sans-serif;background:linear-gradient(#fff,#f7fbff);padding:32px}
    .paper{max-width:800px;margin:0 auto;background:#fff;border:6px dashed #ffdede;border-radius:16px;padding:28px;box-shadow:0 6px 18px rgba(0,0,0,0.08)}
    h1{margin:0 0 12px;color:#d65a8d;text-align:center;font-size:32px}
    .meta{text-align:center;color:#666;margin-bottom:18px}
    table{width:100%%;border-collapse:collapse}
    td,th{padding:10px;border-bottom:1px dashed #eee}
    th{background:linear-gradient(#fff6f6,#fff);text-align:left;color:#b84d76}
    .time{width:110px;color:#b84d76;font-weight:700}
    .note{font-size:14px;color:#444}
    .emoji{font-size:20px;margin-right:8px}
    .footer{margin-top:18px;text-align:right;color:#999;font-size:13px}
  </style>
</head>
<body>
  <div class="paper">
    <h1>%s</h1>
    <div class="meta">%s</div>
    <table>
      <thead>
        <tr>
`,
		html.EscapeString(page.Lang),
		esc(title),
		html.EscapeString(page.FontURL),
		html.EscapeString(page.FontFamily),
		heading(page.HeadingPrefix, esc(title)),
		html.EscapeString(page.Caption),
	)

	titles := HeaderTitles(it, page)
	fmt.Fprintf(&b, "          <th class=\"time\">%s</th>\n", esc(titles[0]))
	fmt.Fprintf(&b, "          <th>%s</th>\n", esc(titles[1]))
	fmt.Fprintf(&b, "          <th>%s</th>\n", esc(titles[2]))
	b.WriteString("        </tr>\n      </thead>\n      <tbody>\n")

	for i, row := range it.Rows {
		c := RenderRow(row)
		b.WriteString("        <tr>\n")
		fmt.Fprintf(&b, "          <td class=\"time\"><span class=\"emoji\">%s</span>%s</td>\n", c.Marker, esc(c.Time))
		fmt.Fprintf(&b, "          <td class=\"note\">%s</td>\n", esc(c.Activity))
		fmt.Fprintf(&b, "          <td class=\"note\">%s</td>\n", esc(c.Note))
		b.WriteString("        </tr>\n")

		if onRow != nil {
			onRow(i+1, len(it.Rows))
		}
	}

	fmt.Fprintf(&b, `      </tbody>
    </table>
    <div class="footer">%s</div>
  </div>
</body>
</html>
`, html.EscapeString(page.Footer))

	return types.Document(b.String())
}

func heading(prefix, title string) string {
	if prefix == "" {
		return title
	}
	return html.EscapeString(prefix) + " · " + title
}

func escaper(mode EscapeMode) func(string) string {
	switch mode {
	case EscapeRaw:
		return func(s string) string { return s }
	case EscapeSanitize:
		policy := bluemonday.UGCPolicy()
		return policy.Sanitize
	default:
		return html.EscapeString
	}
}
