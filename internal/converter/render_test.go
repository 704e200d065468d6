package converter

import (
	"strings"
	"testing"

	"github.com/nconklindev/tabi/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHeader(t *testing.T) {
	tests := []struct {
		name       string
		table      types.Table
		wantHeader types.Row
		wantRows   int
	}{
		{
			name:       "full header row",
			table:      types.Table{{"Time", "Activity", "Note"}, {"09:00", "Breakfast", ""}},
			wantHeader: types.Row{"Time", "Activity", "Note"},
			wantRows:   1,
		},
		{
			name:       "exactly two non-empty cells",
			table:      types.Table{{"09:00", "Breakfast"}, {"", "Free time"}},
			wantHeader: types.Row{"09:00", "Breakfast"},
			wantRows:   1,
		},
		{
			name:     "single non-empty cell",
			table:    types.Table{{"Dec 31", "", ""}, {"09:00", "Breakfast"}},
			wantRows: 2,
		},
		{
			name:     "whitespace does not count",
			table:    types.Table{{"Day", "   ", "\t"}, {"09:00", "Breakfast"}},
			wantRows: 2,
		},
		{
			name:     "empty table",
			table:    types.Table{},
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := ClassifyHeader(tt.table)
			assert.Equal(t, tt.wantHeader, it.Header)
			assert.Len(t, it.Rows, tt.wantRows)
		})
	}
}

func TestRenderRow(t *testing.T) {
	tests := []struct {
		name string
		row  types.Row
		want Cells
	}{
		{
			name: "pads short row",
			row:  types.Row{"09:00"},
			want: Cells{Marker: TimeMarker, Time: "09:00"},
		},
		{
			name: "empty row",
			row:  nil,
			want: Cells{Marker: PlaceMarker},
		},
		{
			name: "joins trailing cells",
			row:  types.Row{"", "Free time", "bring umbrella", "raincoat"},
			want: Cells{Marker: PlaceMarker, Activity: "Free time", Note: "bring umbrella / raincoat"},
		},
		{
			name: "skips blank trailing cells",
			row:  types.Row{"10:00", "Museum", " ", "", "tickets"},
			want: Cells{Marker: TimeMarker, Time: "10:00", Activity: "Museum", Note: "tickets"},
		},
		{
			name: "whitespace time gets place marker",
			row:  types.Row{"  ", "Walk", "park"},
			want: Cells{Marker: PlaceMarker, Time: "  ", Activity: "Walk", Note: "park"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderRow(tt.row))
		})
	}
}

func TestRenderRow_DoesNotMutateInput(t *testing.T) {
	row := types.Row{"09:00"}
	RenderRow(row)
	assert.Len(t, row, 1)
}

func TestRenderDocument_DefaultHeader(t *testing.T) {
	table := types.Table{{"Dec 31"}, {"09:00", "Breakfast"}, {"", "Beach", "sunscreen"}}

	doc := string(RenderDocument(table, "12月31日", DefaultPage()))

	assert.Equal(t, 1, strings.Count(doc, "<table>"))
	assert.Equal(t, 3, bodyRows(doc))
	assert.Contains(t, doc, "<th class=\"time\">Time</th>\n          <th>Activity</th>\n          <th>Note</th>")
	assert.Contains(t, doc, "<h1>Travel Plan · 12月31日</h1>")
	assert.Contains(t, doc, "<title>12月31日</title>")
	assert.Contains(t, doc, "sunscreen")
	assert.Equal(t, 1, strings.Count(doc, `rel="stylesheet"`))
	assert.NotContains(t, doc, "<script")
}

func TestRenderDocument_DetectedHeaderIsFolded(t *testing.T) {
	table := types.Table{{"When", "What", "Where", "Who"}, {"09:00", "Breakfast", "Hotel", "All"}}

	doc := string(RenderDocument(table, "trip", DefaultPage()))

	assert.Equal(t, 3, strings.Count(doc, "</th>"))
	assert.Contains(t, doc, "<th>Where / Who</th>")
	assert.Equal(t, 1, bodyRows(doc))
	assert.Contains(t, doc, "Hotel / All")
}

func TestRenderDocument_EscapeModes(t *testing.T) {
	table := types.Table{{"Dinner"}, {"19:00", "<b>Dinner</b>", `<script>alert("x")</script>`}}

	tests := []struct {
		mode        EscapeMode
		contains    []string
		notContains []string
	}{
		{
			mode:        EscapeHTML,
			contains:    []string{"&lt;b&gt;Dinner&lt;/b&gt;", "&lt;script&gt;"},
			notContains: []string{"<script>"},
		},
		{
			mode:        EscapeSanitize,
			contains:    []string{"<b>Dinner</b>"},
			notContains: []string{"<script>", "alert"},
		},
		{
			mode:     EscapeRaw,
			contains: []string{"<b>Dinner</b>", `<script>alert("x")</script>`},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			page := DefaultPage()
			page.Escape = tt.mode
			doc := string(RenderDocument(table, "trip", page))

			for _, s := range tt.contains {
				assert.Contains(t, doc, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, doc, s)
			}
		})
	}
}

func TestRenderDocument_Deterministic(t *testing.T) {
	table := types.Table{{"Time", "Activity"}, {"09:00", "Breakfast", "a", "b"}}
	first := RenderDocument(table, "x", DefaultPage())
	second := RenderDocument(table, "x", DefaultPage())
	assert.Equal(t, first, second)
}

func TestParseEscapeMode(t *testing.T) {
	tests := []struct {
		input   string
		want    EscapeMode
		wantErr bool
	}{
		{"", EscapeHTML, false},
		{"escape", EscapeHTML, false},
		{" Sanitize ", EscapeSanitize, false},
		{"RAW", EscapeRaw, false},
		{"strip", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEscapeMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
