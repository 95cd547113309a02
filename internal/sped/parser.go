package sped

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/demonstra-dev/demonstra/internal/accounts"
	"github.com/demonstra-dev/demonstra/internal/acctcode"
	"github.com/demonstra-dev/demonstra/internal/locale"
	"github.com/demonstra-dev/demonstra/internal/model"
)

const (
	headerMinFields   = 6
	chartMinFields    = 6
	chartLongFields   = 9
	movementMinFields = 3
	headerDateField   = 3
)

// Options tune the parser. The zero value is not useful; start from DefaultOptions.
type Options struct {
	// CreditNatureDigits are the leading account digits whose balances are
	// positive on the credit side (passivo/PL and resultado by default).
	CreditNatureDigits []string
	// FallbackMarkers are tag substrings the heuristic pass treats as movements.
	FallbackMarkers []string
	// SampleFallback enables illustrative records when nothing is extracted.
	SampleFallback bool
	// ReferenceChart names accounts missing from the file's own I050 rows,
	// typically a chart exported from an earlier year. May be nil.
	ReferenceChart *accounts.Chart
	// SkipLogLimit caps how many lines without an account code get logged.
	SkipLogLimit int
	// Now returns the current time; used for the fiscal year of empty files.
	Now func() time.Time
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		CreditNatureDigits: []string{"2", "3"},
		FallbackMarkers:    []string{"155", "250", "355"},
		SampleFallback:     true,
		SkipLogLimit:       5,
		Now:                time.Now,
	}
}

// Result is everything the parser extracted from one file.
type Result struct {
	FiscalYear int                  `json:"fiscal_year"`
	Records    []model.LedgerRecord `json:"records"`
	Structure  model.FileStructure  `json:"structure"`
	Chart      *accounts.Chart      `json:"-"`
	Notices    []model.Notice       `json:"notices,omitempty"`
	Sample     bool                 `json:"sample"` // Records are illustrative, not from the file
}

// Parser turns SPED text into ledger records. A Parser holds no per-file
// state; each Parse call works on its own chart and record set.
type Parser struct {
	log  *zap.Logger
	opts Options
}

// NewParser creates a Parser. A nil logger discards diagnostics.
func NewParser(log *zap.Logger, opts Options) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Parser{log: log, opts: opts}
}

var errShortRecord = errors.New("record too short")

// run holds the state of a single Parse call.
type run struct {
	lines     []string
	structure model.FileStructure
	chart     *accounts.Chart
	year      int
	notices   []model.Notice
	skipped   int
	badNums   int
}

func (r *run) notice(code model.NoticeCode, line int, format string, args ...any) {
	r.notices = append(r.notices, model.Notice{Code: code, Message: fmt.Sprintf(format, args...), Line: line})
}

// Parse decodes text into ledger records sorted by account code. It never
// fails on malformed content: problems are logged and returned as notices.
func (p *Parser) Parse(text string) Result {
	if strings.TrimSpace(text) == "" {
		p.log.Warn("empty SPED file")
		return Result{
			FiscalYear: p.opts.Now().Year(),
			Records:    []model.LedgerRecord{},
			Structure:  model.FileStructure{HeaderLine: -1, AccountsStart: -1},
			Chart:      accounts.NewChart(),
			Notices:    []model.Notice{{Code: model.NoticeEmptyInput, Message: "arquivo vazio"}},
		}
	}

	r := &run{lines: splitLines(text), chart: accounts.NewChart()}

	recognized := strings.Contains(text, "|")
	if !recognized {
		p.log.Warn("file has no field delimiter, not a SPED file")
		r.notice(model.NoticeUnrecognizedFormat, 0, "o arquivo não contém o delimitador '|' e não parece ser um arquivo SPED")
	}

	r.structure = Detect(r.lines)
	p.log.Info("file structure detected",
		zap.Stringer("variant", r.structure.Version),
		zap.Int("header_line", r.structure.HeaderLine),
		zap.Int("accounts_line", r.structure.AccountsStart))

	p.readMetadata(r)
	records := p.readMovements(r)

	if len(records) == 0 {
		p.log.Warn("no movement records found, trying heuristic extraction")
		records = p.heuristic(r)
	}

	sample := false
	if len(records) == 0 {
		r.notice(model.NoticeNoRecords, 0, "nenhum registro contábil pôde ser extraído do arquivo")
		p.log.Error("no ledger records extracted")
		if recognized && p.opts.SampleFallback {
			year := r.year
			if year == 0 {
				year = p.opts.Now().Year()
			}
			records = sampleRecords(year)
			sample = true
			r.notice(model.NoticeSampleData, 0, "exibindo dados de exemplo; os valores não vêm do arquivo")
			p.log.Warn("using sample records", zap.Int("records", len(records)))
		}
	}

	if r.badNums > 0 {
		r.notice(model.NoticeNumberFormat, 0, "%d valores numéricos inválidos foram tratados como zero", r.badNums)
	}

	p.checkQuality(r, records)

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].AccountCode < records[j].AccountCode
	})
	if records == nil {
		records = []model.LedgerRecord{}
	}

	return Result{
		FiscalYear: r.year,
		Records:    records,
		Structure:  r.structure,
		Chart:      r.chart,
		Notices:    r.notices,
		Sample:     sample,
	}
}

// readMetadata is the first pass: fiscal year and chart of accounts.
func (p *Parser) readMetadata(r *run) {
	headerSeen := false
	for _, line := range r.lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "|")
		tag := field(fields, 1)

		switch {
		case tag == TagHeader && !headerSeen && len(fields) >= headerMinFields:
			headerSeen = true
			r.year = parseFiscalYear(field(fields, headerDateField))
			if r.year == 0 {
				p.log.Warn("could not read fiscal year from header", zap.String("date", field(fields, headerDateField)))
			}
		case isChartTag(tag) && len(fields) >= chartMinFields:
			codePos, namePos := 2, 3
			if len(fields) >= chartLongFields {
				codePos, namePos = 6, 8
			}
			code := acctcode.Normalize(field(fields, codePos))
			if code == "" {
				continue
			}
			if r.chart.Put(code, field(fields, namePos)) {
				p.log.Debug("chart entry replaced", zap.String("code", code))
			}
		}
	}
	p.log.Info("chart of accounts loaded", zap.Int("accounts", r.chart.Len()), zap.Int("fiscal_year", r.year))
}

// parseFiscalYear takes the year from the first four characters of a date
// field. The official layout writes DDMMAAAA, so when the first four are not
// a plausible year but the last four are, those are used instead.
func parseFiscalYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	head, err := strconv.Atoi(date[:4])
	if err == nil && plausibleYear(head) {
		return head
	}
	if len(date) == 8 {
		if tail, terr := strconv.Atoi(date[4:]); terr == nil && plausibleYear(tail) {
			return tail
		}
	}
	if err != nil {
		return 0
	}
	return head
}

func plausibleYear(y int) bool {
	return y >= 1900 && y <= 2999
}

// readMovements is the second pass over movement and statement rows.
func (p *Parser) readMovements(r *run) []model.LedgerRecord {
	var records []model.LedgerRecord
	for i, line := range r.lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "|")
		tag := field(fields, 1)

		var (
			rec model.LedgerRecord
			ok  bool
			err error
		)
		switch {
		case IsMovementTag(tag):
			rec, ok, err = p.movement(r, i+1, tag, fields)
		case IsDirectBlock(tag):
			rec, ok, err = p.statementRow(r, i+1, tag, fields)
		default:
			continue
		}

		if err != nil {
			p.log.Error("skipping malformed line", zap.Int("line", i+1), zap.String("raw", line), zap.Error(err))
			r.notice(model.NoticeLineParseFailure, i+1, "%s: %v", tag, err)
			continue
		}
		if ok {
			records = append(records, rec)
		}
	}
	p.log.Info("movement records extracted", zap.Int("records", len(records)))
	return records
}

func (p *Parser) movement(r *run, lineNo int, tag string, fields []string) (model.LedgerRecord, bool, error) {
	if len(fields) < movementMinFields {
		return model.LedgerRecord{}, false, nil
	}
	off := layoutFor(r.structure.Version, tag)

	raw := field(fields, off.code)
	if raw == "" {
		raw = field(fields, off.altCode)
	}
	code := acctcode.Normalize(raw)
	if code == "" {
		r.skipped++
		if r.skipped <= p.opts.SkipLogLimit {
			p.log.Warn("line without account code", zap.Int("line", lineNo), zap.String("tag", tag))
		}
		return model.LedgerRecord{}, false, nil
	}

	if off.amount >= len(fields) {
		return model.LedgerRecord{}, false, fmt.Errorf("%w: amount field %d, have %d fields", errShortRecord, off.amount, len(fields))
	}
	amount := p.number(r, lineNo, field(fields, off.amount))
	if amount == 0 {
		return model.LedgerRecord{}, false, nil
	}

	return model.LedgerRecord{
		AccountCode:        code,
		AccountDescription: p.describe(r, code),
		FinalBalance:       p.sign(code, amount, field(fields, off.indicator)),
		Block:              tag,
		FiscalYear:         r.year,
	}, true, nil
}

// statementRow reads a J100/J150 row, already aggregated by the bookkeeper.
func (p *Parser) statementRow(r *run, lineNo int, tag string, fields []string) (model.LedgerRecord, bool, error) {
	off := directLayouts[tag]
	if off.indicator >= len(fields) {
		return model.LedgerRecord{}, false, fmt.Errorf("%w: need %d fields, have %d", errShortRecord, off.indicator+1, len(fields))
	}

	code := acctcode.Normalize(field(fields, off.code))
	if code == "" {
		return model.LedgerRecord{}, false, nil
	}
	amount := p.number(r, lineNo, field(fields, off.amount))
	if amount == 0 {
		return model.LedgerRecord{}, false, nil
	}

	desc := field(fields, off.description)
	if desc == "" {
		desc = p.describe(r, code)
	}

	ind := field(fields, off.indicator)
	var balance float64
	if tag == BlockIncomeStatement {
		// DRE aggregation codes are free-form; credit is always a gain.
		balance = creditPositive(amount, ind)
	} else {
		balance = p.sign(code, amount, ind)
	}

	return model.LedgerRecord{
		AccountCode:        code,
		AccountDescription: desc,
		FinalBalance:       balance,
		Block:              tag,
		FiscalYear:         r.year,
	}, true, nil
}

// describe names code from the file's chart, then the reference chart.
func (p *Parser) describe(r *run, code string) string {
	if name, ok := r.chart.Name(code); ok && name != "" {
		return name
	}
	return p.opts.ReferenceChart.Describe(code)
}

// number parses a numeric field, logging and counting failures as zero.
func (p *Parser) number(r *run, lineNo int, raw string) float64 {
	v, err := locale.ParseNumber(raw)
	if err != nil {
		r.badNums++
		p.log.Warn("invalid number, using zero", zap.Int("line", lineNo), zap.Error(err))
		return 0
	}
	return v
}

// sign applies the nature rule: for credit-nature accounts a "C" amount is
// positive and a "D" amount negative; for the others the opposite.
func (p *Parser) sign(code string, amount float64, indicator string) float64 {
	lead := acctcode.Leading(code)
	for _, d := range p.opts.CreditNatureDigits {
		if lead == d {
			return creditPositive(amount, indicator)
		}
	}
	return -creditPositive(amount, indicator)
}

func creditPositive(amount float64, indicator string) float64 {
	if strings.EqualFold(indicator, "C") {
		return amount
	}
	return -amount
}
