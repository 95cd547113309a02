// Package report runs the whole pipeline for one file: decode, parse and
// build both statements.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/demonstra-dev/demonstra/internal/accounts"
	"github.com/demonstra-dev/demonstra/internal/config"
	"github.com/demonstra-dev/demonstra/internal/model"
	"github.com/demonstra-dev/demonstra/internal/sped"
	"github.com/demonstra-dev/demonstra/internal/statements"
)

// Report is the outcome of processing one SPED file.
type Report struct {
	RunID       string                     `json:"run_id"`
	Source      string                     `json:"source"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Company     string                     `json:"company,omitempty"`
	FiscalYear  int                        `json:"fiscal_year"`
	Variant     string                     `json:"variant"`
	Sample      bool                       `json:"sample"`
	Notices     []model.Notice             `json:"notices,omitempty"`
	Records     []model.LedgerRecord       `json:"records"`
	Income      statements.IncomeStatement `json:"income_statement"`
	Balance     statements.BalanceSheet    `json:"balance_sheet"`
	Chart       *accounts.Chart            `json:"-"`
}

// Service generates reports. It holds only read-only configuration and is
// safe for concurrent use.
type Service struct {
	log      *zap.Logger
	company  string
	parser   *sped.Parser
	stmtOpts statements.Options
	now      func() time.Time
	newID    func() string
}

// NewService creates a Service from cfg. A nil logger discards diagnostics.
func NewService(cfg *config.Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		log:      log,
		company:  cfg.Company.Name,
		parser:   sped.NewParser(log.Named("parser"), cfg.ParserOptions()),
		stmtOpts: cfg.StatementOptions(log.Named("statements")),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// Generate reads r fully and builds the report for it. name is only
// recorded as the source. Reading r is the only thing that can fail;
// content problems are reported through Report.Notices.
func (s *Service) Generate(name string, r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	runID := s.newID()
	log := s.log.With(zap.String("run_id", runID), zap.String("source", name))
	log.Info("processing file", zap.Int("bytes", len(data)))

	res := s.parser.Parse(sped.DecodeText(data))
	rep := &Report{
		RunID:       runID,
		Source:      name,
		GeneratedAt: s.now().UTC(),
		Company:     s.company,
		FiscalYear:  res.FiscalYear,
		Variant:     res.Structure.Version.String(),
		Sample:      res.Sample,
		Notices:     res.Notices,
		Records:     res.Records,
		Income:      statements.BuildIncomeStatement(res.Records, s.stmtOpts),
		Balance:     statements.BuildBalanceSheet(res.Records, s.stmtOpts),
		Chart:       res.Chart,
	}

	log.Info("report generated",
		zap.Int("records", len(rep.Records)),
		zap.Int("notices", len(rep.Notices)),
		zap.Bool("sample", rep.Sample),
		zap.Float64("net_result", rep.Income.NetResult()))
	return rep, nil
}
