// Package ingest orchestrates the parse of one uploaded spreadsheet: format
// detection, sheet location, per-dataset normalization, aggregation, and
// assembly of the response payload. Dataset failures are isolated; one bad
// sheet never sinks the rest of the upload.
package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadlens/internal/aggregate"
	"leadlens/internal/cache"
	"leadlens/internal/core"
	"leadlens/internal/log"
	"leadlens/internal/metrics"
	"leadlens/internal/normalize"
	"leadlens/internal/notes"
	"leadlens/internal/sheets"
)

// ErrUnreadable is returned when the upload is neither a readable workbook
// nor a readable CSV.
var ErrUnreadable = errors.New("upload is not a readable xlsx or csv file")

// EventPublisher receives a notification after each successful parse.
// Implementations must not block the request path longer than their context
// allows.
type EventPublisher interface {
	PublishIngestionCompleted(ctx context.Context, source string, processed map[string]bool, rowCounts map[string]int) error
}

// Pipeline wires the parsing stages together with their collaborators. The
// notes stores are injected per account; cache, metrics, and publisher are
// optional.
type Pipeline struct {
	notesA    *notes.Store
	notesB    *notes.Store
	cache     *cache.LRUCache[Result]
	recorder  *metrics.Recorder
	publisher EventPublisher
	logger    *log.Logger
}

type Option func(*Pipeline)

func WithCache(c *cache.LRUCache[Result]) Option {
	return func(p *Pipeline) { p.cache = c }
}

func WithRecorder(r *metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

func WithPublisher(pub EventPublisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

func New(notesA, notesB *notes.Store, logger *log.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		notesA: notesA,
		notesB: notesB,
		logger: logger.WithComponent(log.ComponentIngest),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseUpload parses one uploaded file and returns the assembled payload.
// filename is advisory only; content sniffing decides the actual format.
func (p *Pipeline) ParseUpload(ctx context.Context, filename string, data []byte) (Result, error) {
	start := time.Now()
	if p.recorder != nil {
		p.recorder.UploadReceived()
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	if p.cache != nil {
		if cached, ok := p.cache.Get(hash); ok {
			if p.recorder != nil {
				p.recorder.CacheHit()
			}
			p.logger.InfoContext(ctx, "Upload served from cache",
				log.FieldContentHash, hash,
				log.FieldUploadName, filename)
			cached.FromCache = true
			return cached, nil
		}
	}

	table, err := p.parseTable(filename, data)
	if err != nil {
		p.logger.WarnContext(ctx, "Upload unreadable",
			log.FieldUploadName, filename,
			log.FieldUploadBytes, len(data),
			log.FieldError, err.Error())
		return Result{}, err
	}

	res := p.process(ctx, table)
	res.ContentSHA256 = hash
	res.Payload.Timestamp = time.Now().UTC()

	if p.recorder != nil {
		p.recorder.InvalidDates(res.InvalidDates)
		p.recorder.ObserveParseDuration(time.Since(start).Seconds())
		for kind, outcome := range res.Outcomes {
			p.recorder.DatasetOutcome(kind.Key(), outcome.String())
		}
	}
	if p.cache != nil {
		p.cache.Set(hash, res)
	}
	if p.publisher != nil {
		if err := p.publisher.PublishIngestionCompleted(ctx, filename, res.Payload.Processed, res.RowCounts); err != nil {
			// Event delivery is best effort; the parse already succeeded.
			p.logger.WarnContext(ctx, "Failed to publish ingestion event",
				log.FieldOperation, log.OpPublish,
				log.FieldError, err.Error())
		}
	}

	p.logger.InfoContext(ctx, "Upload parsed",
		log.FieldUploadName, filename,
		log.FieldContentHash, hash,
		log.FieldInvalidDates, res.InvalidDates,
		log.FieldDuration, time.Since(start).Milliseconds())
	return res, nil
}

// ParseTable runs the dataset stages over an already-parsed sheet table,
// e.g. one fetched from Google Sheets rather than uploaded.
func (p *Pipeline) ParseTable(ctx context.Context, source string, table core.SheetTable) Result {
	res := p.process(ctx, table)
	res.Payload.Timestamp = time.Now().UTC()
	if p.recorder != nil {
		p.recorder.InvalidDates(res.InvalidDates)
		for kind, outcome := range res.Outcomes {
			p.recorder.DatasetOutcome(kind.Key(), outcome.String())
		}
	}
	if p.publisher != nil {
		if err := p.publisher.PublishIngestionCompleted(ctx, source, res.Payload.Processed, res.RowCounts); err != nil {
			p.logger.WarnContext(ctx, "Failed to publish ingestion event",
				log.FieldOperation, log.OpPublish,
				log.FieldError, err.Error())
		}
	}
	return res
}

// parseTable detects the upload format. The extension picks which parser to
// try first; both are attempted before giving up.
func (p *Pipeline) parseTable(filename string, data []byte) (core.SheetTable, error) {
	csvFirst := strings.HasSuffix(strings.ToLower(filename), ".csv") && !looksLikeZip(data)

	if csvFirst {
		if table, err := sheets.ParseCSV(data, csvSheetName(filename)); err == nil {
			return table, nil
		}
		if table, err := sheets.ParseWorkbook(data); err == nil {
			return table, nil
		}
		return core.SheetTable{}, ErrUnreadable
	}

	if table, err := sheets.ParseWorkbook(data); err == nil {
		return table, nil
	}
	if !looksLikeZip(data) {
		if table, err := sheets.ParseCSV(data, csvSheetName(filename)); err == nil {
			return table, nil
		}
	}
	return core.SheetTable{}, ErrUnreadable
}

// looksLikeZip reports whether data starts with the zip magic; xlsx files
// are zip archives.
func looksLikeZip(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK"))
}

// csvSheetName derives a sheet name from the filename so Locate can match a
// single-sheet CSV named after its dataset.
func csvSheetName(filename string) string {
	name := filename
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	if name == "" {
		return "Sheet1"
	}
	return name
}

func (p *Pipeline) process(ctx context.Context, table core.SheetTable) Result {
	res := Result{
		Payload: Payload{
			Processed: make(map[string]bool, len(core.AllDatasets())),
		},
		Outcomes:  make(map[core.DatasetKind]DatasetOutcome, len(core.AllDatasets())),
		RowCounts: make(map[string]int),
	}

	names := table.Names()
	for _, kind := range core.AllDatasets() {
		outcome := p.processDataset(ctx, table, names, kind, &res)
		res.Outcomes[kind] = outcome
		res.Payload.Processed[kind.Key()] = outcome == DatasetOK
	}
	return res
}

// processDataset locates and normalizes a single dataset. A panic inside a
// stage marks just that dataset failed.
func (p *Pipeline) processDataset(ctx context.Context, table core.SheetTable, names []string, kind core.DatasetKind, res *Result) (outcome DatasetOutcome) {
	sheetName, ok := sheets.Locate(names, kind)
	if !ok {
		return DatasetAbsent
	}
	sheet, ok := table.Sheet(sheetName)
	if !ok {
		return DatasetAbsent
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = DatasetFailed
			p.logger.ErrorContext(ctx, "Dataset stage panicked",
				log.FieldDataset, kind.Key(),
				log.FieldSheet, sheetName,
				log.FieldError, fmt.Sprint(r))
		}
	}()

	switch kind {
	case core.DatasetConsultation:
		rows := normalize.Ledger(sheet.Rows)
		data := &LedgerData{Rows: rows}
		var invalid int
		data.Daily, invalid = aggregate.CountLedger(rows, aggregate.Day)
		data.Weekly, _ = aggregate.CountLedger(rows, aggregate.Week)
		data.Monthly, _ = aggregate.CountLedger(rows, aggregate.Month)
		res.Payload.Data.Consultation = data
		res.InvalidDates += invalid
		res.RowCounts[kind.Key()] = len(rows)

	case core.DatasetCampaign, core.DatasetCampaignB:
		rows := normalize.Campaign(sheet.Rows, kind.DateConvention())
		data := &CampaignData{Rows: rows}
		var invalid int
		data.Daily, invalid = aggregate.SumCampaign(rows, aggregate.Day)
		data.Weekly, _ = aggregate.SumCampaign(rows, aggregate.Week)
		data.Monthly, _ = aggregate.SumCampaign(rows, aggregate.Month)
		if kind == core.DatasetCampaign {
			res.Payload.Data.Campaign = data
		} else {
			res.Payload.Data.CampaignB = data
		}
		res.InvalidDates += invalid
		res.RowCounts[kind.Key()] = len(rows)

	case core.DatasetNotesA, core.DatasetNotesB:
		rows := normalize.Notes(sheet.Rows)
		if kind == core.DatasetNotesA {
			res.Payload.Data.NotesA = rows
			p.notesA.SetData(rows)
		} else {
			res.Payload.Data.NotesB = rows
			p.notesB.SetData(rows)
		}
		res.RowCounts[kind.Key()] = len(rows)
	}

	p.logger.DebugContext(ctx, "Dataset parsed",
		log.FieldDataset, kind.Key(),
		log.FieldSheet, sheetName,
		log.FieldRows, res.RowCounts[kind.Key()])
	return DatasetOK
}
