package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diillson/sales-insight-go/internal/adapter/driving/httpapi"
	"github.com/diillson/sales-insight-go/internal/application/usecase"
	"github.com/diillson/sales-insight-go/internal/domain/entity"
	"github.com/diillson/sales-insight-go/internal/domain/repository"
	"github.com/diillson/sales-insight-go/internal/shared/types"
	"github.com/diillson/sales-insight-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	server        ServerDeps
	version       string
}

// ServerDeps são as dependências do comando serve.
type ServerDeps struct {
	Source  repository.SourceRepository
	Export  repository.ExportRepository
	Config  repository.ConfigRepository
	Console types.ConsoleInterface
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "sales-insight",
		Short:         "Sales data analysis and reporting CLI",
		Version:       formattedVersion,
		RunE:          app.runCommand,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Sales Insight version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Do not print the welcome banner")

	rootCmd.Flags().StringP("input", "i", "", "Sales file to analyse: path or s3://bucket/key (.csv, .xlsx)")
	rootCmd.Flags().String("sheet", "", "Worksheet to read from an Excel file (default: first sheet)")
	rootCmd.Flags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.Flags().StringSliceP("report-type", "y", nil, "Specify report types: csv, json, pdf (default: csv)")
	rootCmd.Flags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.Flags().String("aws-profile", "", "AWS profile used to read s3:// inputs")
	rootCmd.Flags().String("aws-region", "", "AWS region used to read s3:// inputs")
	rootCmd.Flags().String("sql-driver", "", "Read sales rows from a database instead of a file: sqlite or pgx")
	rootCmd.Flags().String("sql-dsn", "", "Database connection string for --sql-driver")
	rootCmd.Flags().String("sql-query", "", "Query returning the sales rows for --sql-driver")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the upload and report HTTP server",
		RunE:  app.runServe,
	}
	serveCmd.Flags().String("addr", "", "Listen address (default :8000, env SALES_ADDR)")
	rootCmd.AddCommand(serveCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	noBanner, _ := cmd.Flags().GetBool("no-banner")
	input, _ := cmd.Flags().GetString("input")
	sheet, _ := cmd.Flags().GetString("sheet")
	reportName, _ := cmd.Flags().GetString("report-name")
	reportType, _ := cmd.Flags().GetStringSlice("report-type")
	dir, _ := cmd.Flags().GetString("dir")
	awsProfile, _ := cmd.Flags().GetString("aws-profile")
	awsRegion, _ := cmd.Flags().GetString("aws-region")
	sqlDriver, _ := cmd.Flags().GetString("sql-driver")
	sqlDSN, _ := cmd.Flags().GetString("sql-dsn")
	sqlQuery, _ := cmd.Flags().GetString("sql-query")

	// Converte para caminho absoluto quando informado
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		Input:      input,
		Sheet:      sheet,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		AWSProfile: awsProfile,
		AWSRegion:  awsRegion,
		SQLDriver:  sqlDriver,
		SQLDSN:     sqlDSN,
		SQLQuery:   sqlQuery,
		NoBanner:   noBanner,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	if !cliArgs.NoBanner {
		displayWelcomeBanner(app.version)
		// Verifica a versão mais recente disponível
		go checkLatestVersion(app.version)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.reportUseCase.RunReport(ctx, cliArgs)
}

// runServe inicia o servidor HTTP de upload.
func (app *CLIApp) runServe(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config-file")
	addr, _ := cmd.Flags().GetString("addr")
	serveArgs := types.ServeArgs{ConfigFile: configFile, Addr: addr}

	serverCfg, mapping, err := app.resolveServerConfig(serveArgs)
	if err != nil {
		return err
	}

	if noBanner, _ := cmd.Flags().GetBool("no-banner"); !noBanner {
		displayWelcomeBanner(app.version)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpapi.NewServer(serverCfg, mapping, app.server.Source, app.server.Export, app.server.Console)
	return server.Run(ctx)
}

// resolveServerConfig aplica padrão, arquivo, ambiente e flag, nessa ordem.
func (app *CLIApp) resolveServerConfig(args types.ServeArgs) (types.ServerConfig, entity.ColumnMapping, error) {
	serverCfg := types.DefaultServerConfig()
	mapping := entity.DefaultColumnMapping()

	if args.ConfigFile != "" {
		cfg, err := app.server.Config.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return serverCfg, mapping, err
		}
		mergeServerConfig(&serverCfg, cfg.Server)
		mapping = cfg.Columns.WithDefaults()
	}

	if err := app.server.Config.ApplyEnv(&serverCfg); err != nil {
		return serverCfg, mapping, err
	}

	if args.Addr != "" {
		serverCfg.Addr = args.Addr
	}
	return serverCfg, mapping, nil
}

func mergeServerConfig(dst *types.ServerConfig, src types.ServerConfig) {
	if src.Addr != "" {
		dst.Addr = src.Addr
	}
	if src.MaxUploadMB > 0 {
		dst.MaxUploadMB = src.MaxUploadMB
	}
	if src.MaxSessions > 0 {
		dst.MaxSessions = src.MaxSessions
	}
	if src.AllowOrigins != "" {
		dst.AllowOrigins = src.AllowOrigins
	}
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}

// SetServerDeps sets the adapters used by the serve command.
func (app *CLIApp) SetServerDeps(deps ServerDeps) {
	app.server = deps
}

// SetArgs overrides the command-line arguments, used by tests.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// ExecuteContext runs the CLI application with ctx.
func (app *CLIApp) ExecuteContext(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}
