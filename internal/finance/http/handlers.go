package financehttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/valuable-brands/backoffice/internal/finance"
	"github.com/valuable-brands/backoffice/internal/finance/export"
	"github.com/valuable-brands/backoffice/internal/finance/report"
	"github.com/valuable-brands/backoffice/internal/finance/svg"
	"github.com/valuable-brands/backoffice/internal/shared"
)

const requestTimeout = 10 * time.Second

// FinanceService defines the dashboard data contract used by the handler.
type FinanceService interface {
	KPIList(ctx context.Context) ([]finance.FinancialKPI, error)
	MonthlyTrend(ctx context.Context) ([]finance.MonthlyFinanceRecord, error)
	CashFlowLedger(ctx context.Context) (finance.CashFlowStatement, error)
	Accounts(ctx context.Context) (finance.AccountsView, error)
	Breakdowns(ctx context.Context) (finance.BreakdownView, error)
	TransactionRegister(ctx context.Context) ([]finance.Transaction, error)
	ProfitLossStatement(ctx context.Context) (finance.ProfitLossSummary, error)
	QuarterlyComparison(ctx context.Context) ([]finance.QuarterComparison, error)
	Dataset() finance.Dataset
}

// PDFRenderer converts assembled HTML into PDF bytes.
type PDFRenderer interface {
	RenderDocument(ctx context.Context, html, footerHTML string) ([]byte, error)
}

// Handler coordinates HTTP requests for the finance analytics dashboard and
// report downloads.
type Handler struct {
	logger  *slog.Logger
	service FinanceService
	reports *report.Builder
	pdf     PDFRenderer
	group   singleflight.Group
}

// NewHandler constructs the finance HTTP handler.
func NewHandler(logger *slog.Logger, service FinanceService, reports *report.Builder, pdf PDFRenderer) *Handler {
	return &Handler{logger: logger, service: service, reports: reports, pdf: pdf}
}

// DashboardPayload is the JSON body served to the analytics page.
type DashboardPayload struct {
	Period       string                    `json:"period"`
	KPIs         []finance.FinancialKPI    `json:"kpis"`
	Monthly      finance.BarChartSpec      `json:"monthly"`
	Quarterly    finance.BarChartSpec      `json:"quarterly"`
	IncomePie    finance.PieChartSpec      `json:"incomePie"`
	ExpensePie   finance.PieChartSpec      `json:"expensePie"`
	CashFlow     finance.CashFlowStatement `json:"cashFlow"`
	Accounts     finance.AccountsView      `json:"accounts"`
	Transactions []finance.Transaction     `json:"transactions"`
	ProfitLoss   finance.ProfitLossSummary `json:"profitLoss"`
	Charts       map[string]template.HTML  `json:"charts"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	period, err := h.parsePeriod(r)
	if err != nil {
		http.Error(w, "Invalid period", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	payload, err := h.loadDashboard(ctx, period)
	if err != nil {
		h.serverError(w, "load dashboard", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logError("encode dashboard", err)
	}
}

func (h *Handler) loadDashboard(ctx context.Context, period string) (DashboardPayload, error) {
	payload := DashboardPayload{Period: period}
	var (
		monthly    []finance.MonthlyFinanceRecord
		quarters   []finance.QuarterComparison
		breakdowns finance.BreakdownView
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		kpis, err := h.service.KPIList(ctx)
		payload.KPIs = kpis
		return err
	})
	g.Go(func() error {
		series, err := h.service.MonthlyTrend(ctx)
		monthly = series
		return err
	})
	g.Go(func() error {
		q, err := h.service.QuarterlyComparison(ctx)
		quarters = q
		return err
	})
	g.Go(func() error {
		b, err := h.service.Breakdowns(ctx)
		breakdowns = b
		return err
	})
	g.Go(func() error {
		stmt, err := h.service.CashFlowLedger(ctx)
		payload.CashFlow = stmt
		return err
	})
	g.Go(func() error {
		view, err := h.service.Accounts(ctx)
		payload.Accounts = view
		return err
	})
	g.Go(func() error {
		txs, err := h.service.TransactionRegister(ctx)
		payload.Transactions = txs
		return err
	})
	g.Go(func() error {
		pnl, err := h.service.ProfitLossStatement(ctx)
		payload.ProfitLoss = pnl
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardPayload{}, err
	}

	payload.Monthly = finance.MonthlyBarSpec(monthly, shared.FormatKES)
	payload.Quarterly = finance.QuarterlyBarSpec(quarters, shared.FormatKES)
	payload.IncomePie = finance.IncomePieSpec(breakdowns.Income, shared.FormatKES)
	payload.ExpensePie = finance.ExpensePieSpec(breakdowns.Expenses, shared.FormatKES)

	charts, err := renderCharts(payload)
	if err != nil {
		return DashboardPayload{}, err
	}
	payload.Charts = charts
	return payload, nil
}

func renderCharts(payload DashboardPayload) (map[string]template.HTML, error) {
	monthlySVG, err := svg.Bars(svg.DefaultWidth, svg.DefaultHeight,
		payload.Monthly.Series[0].Values, payload.Monthly.Series[1].Values, payload.Monthly.Labels,
		svg.BarOpts{
			Title:        payload.Monthly.Title,
			Description:  "Monthly revenue against expenses",
			SeriesALabel: "Revenue",
			SeriesBLabel: "Expenses",
		})
	if err != nil {
		return nil, fmt.Errorf("render monthly chart: %w", err)
	}

	expenseSVG, err := svg.Pie(svg.DefaultPieSize, pieSlices(payload.ExpensePie), svg.PieOpts{
		Title:       payload.ExpensePie.Title,
		Description: "Share of spend per category",
	})
	if err != nil {
		return nil, fmt.Errorf("render expense chart: %w", err)
	}

	incomeSVG, err := svg.Pie(svg.DefaultPieSize, pieSlices(payload.IncomePie), svg.PieOpts{
		Title:       payload.IncomePie.Title,
		Description: "Share of revenue per source",
	})
	if err != nil {
		return nil, fmt.Errorf("render income chart: %w", err)
	}

	return map[string]template.HTML{
		"monthly":  monthlySVG,
		"expenses": expenseSVG,
		"income":   incomeSVG,
	}, nil
}

func pieSlices(spec finance.PieChartSpec) []svg.Slice {
	slices := make([]svg.Slice, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		slices = append(slices, svg.Slice{Label: s.Label, Value: s.Value, Color: s.Color})
	}
	return slices
}

type renderedReport struct {
	filename string
	pdf      []byte
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	typ, err := report.ParseType(reportTypeParam(r))
	if err != nil {
		http.Error(w, "Unknown report type", http.StatusBadRequest)
		return
	}
	period, err := h.parsePeriod(r)
	if err != nil {
		http.Error(w, "Invalid period", http.StatusBadRequest)
		return
	}
	if h.pdf == nil {
		h.serverError(w, "pdf renderer", errors.New("pdf renderer not configured"))
		return
	}

	// Concurrent requests for the same report share one generation, so the
	// work must survive the first caller disconnecting.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), requestTimeout)
	defer cancel()

	key := string(typ) + ":" + period
	result, err, _ := h.group.Do(key, func() (interface{}, error) {
		doc, err := h.reports.Build(h.service.Dataset(), typ, period)
		if err != nil {
			return nil, err
		}
		pdfBytes, err := h.pdf.RenderDocument(ctx, doc.HTML, doc.FooterHTML)
		if err != nil {
			return nil, err
		}
		return renderedReport{filename: doc.Filename, pdf: pdfBytes}, nil
	})
	if err != nil {
		h.serverError(w, "generate report", err)
		return
	}

	rendered := result.(renderedReport)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rendered.filename))
	if _, err := w.Write(rendered.pdf); err != nil {
		h.logError("stream report", err)
	}
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	period, err := h.parsePeriod(r)
	if err != nil {
		http.Error(w, "Invalid period", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	kpis, err := h.service.KPIList(ctx)
	if err != nil {
		h.serverError(w, "load kpis", err)
		return
	}
	monthly, err := h.service.MonthlyTrend(ctx)
	if err != nil {
		h.serverError(w, "load monthly", err)
		return
	}
	stmt, err := h.service.CashFlowLedger(ctx)
	if err != nil {
		h.serverError(w, "load cash flow", err)
		return
	}
	accounts, err := h.service.Accounts(ctx)
	if err != nil {
		h.serverError(w, "load accounts", err)
		return
	}

	var buf strings.Builder
	if err := export.WriteKPICSV(&buf, kpis); err != nil {
		h.serverError(w, "write kpi csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteMonthlyCSV(&buf, monthly); err != nil {
		h.serverError(w, "write monthly csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteCashFlowCSV(&buf, stmt.Entries); err != nil {
		h.serverError(w, "write cash flow csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteAccountsCSV(&buf, accounts.Payables); err != nil {
		h.serverError(w, "write payables csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteAccountsCSV(&buf, accounts.Receivables); err != nil {
		h.serverError(w, "write receivables csv", err)
		return
	}

	filename := fmt.Sprintf("finance-analytics-%s.csv", period)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write([]byte(buf.String())); err != nil {
		h.logError("stream csv", err)
	}
}

// parsePeriod reads the period selector. The value scopes labels only; the
// datasets themselves are fixed per fiscal year.
func (h *Handler) parsePeriod(r *http.Request) (string, error) {
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	if period == "" {
		period = finance.DefaultPeriod
	}
	if err := finance.ValidatePeriod(period); err != nil {
		return "", err
	}
	return period, nil
}

func reportTypeParam(r *http.Request) string {
	name := strings.TrimSpace(chiURLParam(r, "type"))
	return strings.TrimSuffix(name, ".pdf")
}

func (h *Handler) serverError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}
