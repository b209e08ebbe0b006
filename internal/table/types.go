package table

// Table is a delimited input file: a header, the raw cell text of every data
// row, and the parsed criterion values.
type Table struct {
	Header []string
	Rows   [][]string
	values [][]float64
}

type Format int

const (
	FormatCSV Format = iota
	FormatJSON
)

type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

type options struct {
	delimiter      rune
	scorePrecision int
}

type Option func(*options)

func WithDelimiter(delimiter rune) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

// WithScorePrecision sets the number of decimals written for scores. -1
// writes the shortest representation that round-trips.
func WithScorePrecision(precision int) Option {
	return func(o *options) {
		o.scorePrecision = precision
	}
}

func newOptions(opts []Option) options {
	o := options{
		delimiter:      ',',
		scorePrecision: -1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type jsonResult struct {
	Columns []string     `json:"columns"`
	Records []jsonRecord `json:"records"`
}

type jsonRecord struct {
	Alternative string   `json:"alternative"`
	Values      []string `json:"values"`
	Score       *float64 `json:"score"` // null when undefined
	Rank        int      `json:"rank"`
}
