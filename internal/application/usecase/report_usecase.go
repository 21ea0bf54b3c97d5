package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/sales-insight-go/internal/domain/analysis"
	"github.com/diillson/sales-insight-go/internal/domain/entity"
	"github.com/diillson/sales-insight-go/internal/domain/repository"
	"github.com/diillson/sales-insight-go/internal/shared/types"
)

// ReportUseCase handles loading a sales table and reporting on it.
type ReportUseCase struct {
	sourceRepo repository.SourceRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	sourceRepo repository.SourceRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		sourceRepo: sourceRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// ResolveArgs mescla o arquivo de configuração com os argumentos da CLI.
// Flags informadas sempre vencem os valores do arquivo.
func (uc *ReportUseCase) ResolveArgs(args *types.CLIArgs) (*types.CLIArgs, entity.ColumnMapping, error) {
	resolved := *args
	mapping := entity.DefaultColumnMapping()

	if args.ConfigFile == "" {
		resolved.ReportType = defaultReportTypes(resolved.ReportType)
		return &resolved, mapping, nil
	}

	cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
	if err != nil {
		return nil, mapping, err
	}

	if resolved.Input == "" {
		resolved.Input = cfg.Input
	}
	if resolved.Sheet == "" {
		resolved.Sheet = cfg.Sheet
	}
	if resolved.ReportName == "" {
		resolved.ReportName = cfg.ReportName
	}
	if len(resolved.ReportType) == 0 {
		resolved.ReportType = cfg.ReportType
	}
	if resolved.Dir == "" {
		resolved.Dir = cfg.Dir
	}
	if resolved.AWSProfile == "" {
		resolved.AWSProfile = cfg.AWSProfile
	}
	if resolved.AWSRegion == "" {
		resolved.AWSRegion = cfg.AWSRegion
	}
	// Um --input explícito tem precedência sobre o bloco sql do arquivo
	if resolved.Input == "" && resolved.SQLDriver == "" {
		resolved.SQLDriver = cfg.SQL.Driver
	}
	if resolved.SQLDriver != "" && resolved.SQLDriver == cfg.SQL.Driver {
		if resolved.SQLDSN == "" {
			resolved.SQLDSN = cfg.SQL.DSN
		}
		if resolved.SQLQuery == "" {
			resolved.SQLQuery = cfg.SQL.Query
		}
	}

	resolved.ReportType = defaultReportTypes(resolved.ReportType)
	return &resolved, cfg.Columns.WithDefaults(), nil
}

func defaultReportTypes(reportTypes []string) []string {
	if len(reportTypes) == 0 {
		return []string{"csv"}
	}
	return reportTypes
}

// LoadEngine carrega a fonte indicada e constrói o motor de análise.
func (uc *ReportUseCase) LoadEngine(ctx context.Context, args *types.CLIArgs, mapping entity.ColumnMapping) (*analysis.Engine, error) {
	if args.Input == "" && args.SQLDriver == "" {
		return nil, types.ErrNoInput
	}

	ref := entity.SourceRef{
		Path:       args.Input,
		Sheet:      args.Sheet,
		AWSProfile: args.AWSProfile,
		AWSRegion:  args.AWSRegion,
		SQLDriver:  args.SQLDriver,
		SQLDSN:     args.SQLDSN,
		SQLQuery:   args.SQLQuery,
		Columns:    mapping,
	}

	raw, err := uc.sourceRepo.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales data: %w", err)
	}

	return analysis.New(raw, mapping), nil
}

// RunReport executa a funcionalidade principal: carrega, exibe e exporta.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	resolved, mapping, err := uc.ResolveArgs(args)
	if err != nil {
		return err
	}

	status := uc.console.Status("Loading sales data...")
	engine, err := uc.LoadEngine(ctx, resolved, mapping)
	status.Stop()
	if err != nil {
		return err
	}

	data := engine.Snapshot()
	uc.displayAnalysis(engine.Table(), data)

	if resolved.ReportName != "" {
		uc.exportReports(data, resolved)
	}

	return nil
}

// exportReports exporta cada tipo solicitado e registra o resultado.
func (uc *ReportUseCase) exportReports(data entity.Analysis, args *types.CLIArgs) {
	for _, reportType := range args.ReportType {
		var (
			path string
			err  error
		)
		switch reportType {
		case "pdf":
			path, err = uc.exportRepo.ExportToPDF(data, args.ReportName, args.Dir)
		case "csv":
			path, err = uc.exportRepo.ExportToCSV(data, args.ReportName, args.Dir)
		case "json":
			path, err = uc.exportRepo.ExportToJSON(data, args.ReportName, args.Dir)
		default:
			uc.console.LogWarning("Unknown report type '%s' ignored", reportType)
			continue
		}
		if err != nil {
			uc.console.LogError("Failed to export report to %s: %s", reportType, err)
		} else {
			uc.console.LogSuccess("Successfully exported report to %s: %s", reportType, path)
		}
	}
}

// displayAnalysis imprime a tabela de KPIs e os gráficos disponíveis.
func (uc *ReportUseCase) displayAnalysis(table entity.Table, data entity.Analysis) {
	kpiTable := uc.console.CreateTable()
	kpiTable.AddColumn("Metric")
	kpiTable.AddColumn("Value")
	kpiTable.AddRow("Total Revenue", fmt.Sprintf("$%.2f", data.KPIs.TotalRevenue))
	kpiTable.AddRow("Total Orders", data.KPIs.TotalOrders)
	kpiTable.AddRow("Average Order Value", fmt.Sprintf("$%.2f", data.KPIs.AverageOrderValue))
	kpiTable.AddRow("Total Items Sold", fmt.Sprintf("%.0f", data.KPIs.TotalItems))
	uc.console.Println(kpiTable.Render())

	if table.Schema.TotalSaleDerived {
		uc.console.LogInfo("TotalSale column not found; revenue derived from Quantity x UnitPrice")
	}

	if data.Categories == nil {
		uc.console.LogWarning("No category column found; skipping category analysis")
	} else {
		uc.console.DisplayCategoryBars(CategoryPoints(*data.Categories))
	}

	if data.Trend == nil {
		uc.console.LogWarning("No date column found; skipping daily trend")
		return
	}

	if skipped := invalidDates(table); skipped > 0 {
		uc.console.LogWarning("%d row(s) with unreadable dates left out of the daily trend", skipped)
	}
	uc.console.DisplayTrendBars(TrendPoints(*data.Trend))
}

// CategoryPoints converte a quebra por categoria em pontos de gráfico.
func CategoryPoints(categories entity.CategoryBreakdown) []types.ChartPoint {
	points := make([]types.ChartPoint, len(categories))
	for i, c := range categories {
		points[i] = types.ChartPoint{Label: c.Category, Value: c.Revenue}
	}
	return points
}

// TrendPoints converte a tendência diária em pontos de gráfico.
func TrendPoints(trend entity.DailyTrend) []types.ChartPoint {
	points := make([]types.ChartPoint, len(trend))
	for i, d := range trend {
		points[i] = types.ChartPoint{Label: d.Date, Value: d.Revenue}
	}
	return points
}

func invalidDates(table entity.Table) int {
	if !table.Schema.HasDate {
		return 0
	}
	count := 0
	for _, row := range table.Rows {
		if !row.DateValid {
			count++
		}
	}
	return count
}
