package models

// EventKind classifies an aggregate statement line: a dated, totaled
// transaction summary that owns the undated posting lines below it.
type EventKind string

const (
	EventPayroll  EventKind = "PAYROLL"
	EventFee      EventKind = "FEE"
	EventExchange EventKind = "EXCHANGE"
	EventDividend EventKind = "DIVIDEND"
)

// PostingKind classifies a per-ticker posting line.
type PostingKind string

const (
	PostingBuy      PostingKind = "BUY"
	PostingSell     PostingKind = "SELL"
	PostingReinvest PostingKind = "REINVEST"
)

// AggregateEvent is a dated, totaled transaction header found in the
// statement body. Line is the 0-based line number in the cleaned text;
// Date is month/day only, the year comes from the statement header.
type AggregateEvent struct {
	Line   int       `json:"line"`
	Kind   EventKind `json:"kind"`
	Date   string    `json:"date"`
	Amount float64   `json:"amount"`
}

// Posting is an undated buy/sell/reinvest line for one ticker. It inherits
// its date from the aggregate event whose line window contains it.
type Posting struct {
	Line   int         `json:"line"`
	Kind   PostingKind `json:"kind"`
	Ticker string      `json:"ticker"`
	Qty    float64     `json:"qty"`
	Amount float64     `json:"amount"`
}

// ReconciledGroup pairs an aggregate event with the postings that fall in
// its line window, after the posting amounts have been checked against the
// event's stated total.
type ReconciledGroup struct {
	Event    AggregateEvent `json:"event"`
	Postings []Posting      `json:"postings"`
	Total    float64        `json:"total"`
}

// Row is the tabular projection of one posting, shaped for row-based
// transaction pipelines.
type Row struct {
	Action      string `json:"action"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Symbol      string `json:"symbol"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
	Amount      string `json:"amount"`
	Fees        string `json:"fees"`
}

// Stats counts the flows the engine saw but did not emit, so coverage gaps
// stay visible to operators.
type Stats struct {
	Events         int `json:"events"`
	Postings       int `json:"postings"`
	OrphanPostings int `json:"orphanPostings"`
	SellGroups     int `json:"sellGroups"`
	ExchangeGroups int `json:"exchangeGroups"`
}

// StatementInfo holds everything extracted from one statement.
type StatementInfo struct {
	Account string            `json:"account"`
	Year    string            `json:"year"`
	Groups  []ReconciledGroup `json:"groups"`
	Rows    []Row             `json:"rows"`
	Stats   Stats             `json:"stats"`
}
