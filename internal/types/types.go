package types

// Row is one spreadsheet row with every cell coerced to text.
type Row []string

// Table is the rows of one sheet in sheet order.
type Table []Row

// Itinerary is a table split into its optional header and the rows rendered
// as table body rows. Header is nil when the first row did not qualify.
type Itinerary struct {
	Header Row
	Rows   Table
}

// Document is a fully rendered HTML page.
type Document string

type ConversionResult struct {
	InputFile      string
	OutputFile     string
	Title          string
	Columns        [3]string
	HeaderDetected bool
	RowsRendered   int
}
