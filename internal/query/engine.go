// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package query is the single entry point a caller uses to run a
// search: it wires the parser, filter registry, plan synthesizer,
// executor, direct-result resolver, and result shaper together the
// way the original Query object's __init__/results/direct_result
// methods cooperate.
package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/codecrumbs/search/internal/query/direct"
	"github.com/codecrumbs/search/internal/query/exec"
	"github.com/codecrumbs/search/internal/query/filter"
	"github.com/codecrumbs/search/internal/query/highlight"
	"github.com/codecrumbs/search/internal/query/lang"
	"github.com/codecrumbs/search/internal/query/metrics"
	"github.com/codecrumbs/search/internal/query/plan"
	"github.com/codecrumbs/search/internal/query/queryerr"
	"github.com/codecrumbs/search/internal/query/result"
	"github.com/codecrumbs/search/internal/query/store"
	"github.com/codecrumbs/search/internal/query/textenc"
	"github.com/codecrumbs/search/pkg/errutil"
)

// numFixedLineColumns is len(plan.lineColumns) + len(plan.baseColumns):
// path, icon, encoding, file_id, line_id, number, text, base_extents.
const numFixedLineColumns = 8

// Engine runs searches against one store handle. It is safe for
// concurrent use: the filter registry and parser are immutable after
// construction, and every call opens its own store cursor (spec §5).
type Engine struct {
	parser    *lang.Parser
	filters   []filter.Filter
	store     store.Store
	executor  *exec.Executor
	resolver  *direct.Resolver
	logger    *slog.Logger
	markOpen  string
	markClose string
}

// config collects Option mutations before New builds the Engine's
// collaborators, so options can affect how those collaborators are
// constructed (e.g. whether the Executor profiles).
type config struct {
	logger    *slog.Logger
	profile   bool
	markOpen  string
	markClose string
}

// Option configures an Engine.
type Option func(*config)

// WithLogger overrides the default slog.Default() logger.
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.logger = l } }

// WithProfiling turns on EXPLAIN capture and eager row materialization
// for every query this Engine runs.
func WithProfiling() Option { return func(c *config) { c.profile = true } }

// WithMarkers overrides the default "<b>"/"</b>" highlight markers.
func WithMarkers(open, close string) Option {
	return func(c *config) { c.markOpen, c.markClose = open, close }
}

// New builds an Engine over the given store handle. The filter
// registry is built once here (spec §5: "immutable after
// initialization and safe for concurrent read") and used to compile
// the grammar's dynamic FILTER alternation.
func New(s store.Store, opts ...Option) (*Engine, error) {
	cfg := config{logger: slog.Default(), markOpen: "<b>", markClose: "</b>"}
	for _, opt := range opts {
		opt(&cfg)
	}

	filters := filter.Registry()
	parser, err := lang.NewParser(filter.KindNames(filters))
	if err != nil {
		return nil, err
	}

	execOpts := []exec.Option{exec.WithLogger(cfg.logger)}
	if cfg.profile {
		execOpts = append(execOpts, exec.WithProfiling())
	}

	return &Engine{
		parser:    parser,
		filters:   filters,
		store:     s,
		executor:  exec.New(s, execOpts...),
		resolver:  direct.New(s),
		logger:    cfg.logger,
		markOpen:  cfg.markOpen,
		markClose: cfg.markClose,
	}, nil
}

// Menu returns the {name, description} tuples spec §6 says the core
// exposes for a caller to render a filter menu.
func (e *Engine) Menu() []filter.MenuItem {
	return filter.MenuItems(e.filters)
}

// Result is one Search call's outcome: either a unique direct-result
// navigation target, or a shaped file/line result set. Direct is
// non-nil only when the direct-result heuristic found a unique hit;
// callers should check it before reading Files.
type Result struct {
	Direct *direct.Target
	Files  []result.File
	Report *exec.Report
}

// Search parses querystr, tries the direct-result heuristic when it
// applies, and otherwise synthesizes and runs a full retrieval plan,
// shaping the rows into Result.Files.
func (e *Engine) Search(ctx context.Context, querystr string, caseSensitive bool, limit, offset int) (Result, error) {
	start := time.Now()

	// Step 1: parse the query into a term set.
	ts, err := e.parser.Parse(querystr, caseSensitive)
	if err != nil {
		metrics.RecordError(queryerr.Code(err))
		errutil.LogError(e.logger, "query parse failed", err)
		return Result{}, err
	}

	// Step 2: the direct-result heuristic only applies to a lone text
	// term (spec §4.G).
	if term, ok := ts.SingleTextTerm(); ok {
		target, hit, err := e.resolver.Resolve(ctx, term)
		if err != nil {
			metrics.RecordError(queryerr.Code(err))
			errutil.LogError(e.logger, "direct result lookup failed", err)
			return Result{}, err
		}
		metrics.RecordDirectResult(hit)
		if hit {
			e.logger.InfoContext(ctx, "direct result",
				"term", term, "path", target.Path, "line", target.Line)
			return Result{Direct: &target}, nil
		}
	}

	// Step 3: synthesize the retrieval plan.
	p := plan.Synthesize(ts, e.filters, limit, offset)

	// Step 4: run it.
	rows, report, err := e.executor.Run(ctx, p)
	if err != nil {
		metrics.RecordError(queryerr.Code(err))
		errutil.LogError(e.logger, "plan execution failed", err)
		return Result{}, err
	}
	defer rows.Close()

	// Step 5: scan rows into the shaper's raw row representation,
	// decoding each line's text and skipping undecodable ones
	// (spec §7's EncodingError recovery).
	raw, err := e.scanRows(rows, p)
	if err != nil {
		metrics.RecordError(queryerr.Code(err))
		errutil.LogError(e.logger, "row scan failed", err)
		return Result{}, err
	}

	// Step 6: group by file and highlight.
	files := result.Shape(raw, e.markOpen, e.markClose)

	metrics.RecordQuery(time.Since(start), len(files))
	e.logger.DebugContext(ctx, "search completed",
		"query", querystr, "files", len(files), "elapsed", time.Since(start).String())

	return Result{Files: files, Report: report}, nil
}

// scanRows drains rows into RawRows, per spec §8's ordering guarantee
// (results sorted by path, line_number) which Plan.SQL's ORDER BY
// already establishes — this just has to preserve row order.
func (e *Engine) scanRows(rows store.Rows, p plan.Plan) ([]result.RawRow, error) {
	var out []result.RawRow
	for rows.Next() {
		row, skip, err := e.scanRow(rows, p)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanRow decodes a single row per the plan's column shape (spec §8
// law 6). skip is true when the line's declared encoding could not
// decode its bytes — the offending line is dropped, the rest of the
// query continues (spec §7).
func (e *Engine) scanRow(row store.Row, p plan.Plan) (result.RawRow, bool, error) {
	if !p.HasLines {
		var path, icon string
		if err := row.Scan(&path, &icon); err != nil {
			return result.RawRow{}, false, err
		}
		return result.RawRow{Path: path, Icon: icon}, false, nil
	}

	var (
		path, icon, encoding, text string
		fileID, lineID             int64
		number                     int32
		baseExtents                []store.ExtentPair
	)

	extraCols := make([][]store.ExtentPair, p.NumResult-numFixedLineColumns)
	dest := []any{&path, &icon, &encoding, &fileID, &lineID, &number, &text, &baseExtents}
	for i := range extraCols {
		dest = append(dest, &extraCols[i])
	}
	if err := row.Scan(dest...); err != nil {
		return result.RawRow{}, false, err
	}

	decoded, err := textenc.Decode([]byte(text), textenc.Canonical(encoding), lineID)
	if err != nil {
		if queryerr.Is(err, queryerr.EncodingError) {
			e.logger.Warn("skipping undecodable line", "line_id", lineID, "error", err)
			metrics.RecordError(queryerr.EncodingError)
			return result.RawRow{}, true, nil
		}
		return result.RawRow{}, false, err
	}

	extra := make([]highlight.Extent, 0, len(extraCols))
	for _, col := range extraCols {
		extra = append(extra, toExtents(col)...)
	}

	return result.RawRow{
		Path:         path,
		Icon:         icon,
		HasLine:      true,
		FileID:       fileID,
		LineNumber:   int(number),
		Text:         decoded,
		BaseExtents:  toExtents(baseExtents),
		ExtraExtents: extra,
	}, false, nil
}

// toExtents converts the store's wire-level extent pairs into the
// highlight package's Extent type.
func toExtents(pairs []store.ExtentPair) []highlight.Extent {
	out := make([]highlight.Extent, len(pairs))
	for i, p := range pairs {
		out[i] = highlight.Extent{Start: int(p.Start), End: int(p.End)}
	}
	return out
}
