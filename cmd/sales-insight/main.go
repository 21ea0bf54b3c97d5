package main

import (
	"fmt"
	"os"

	"github.com/diillson/sales-insight-go/internal/adapter/driven/config"
	"github.com/diillson/sales-insight-go/internal/adapter/driven/export"
	"github.com/diillson/sales-insight-go/internal/adapter/driven/source"
	"github.com/diillson/sales-insight-go/internal/adapter/driving/cli"
	"github.com/diillson/sales-insight-go/internal/application/usecase"
	"github.com/diillson/sales-insight-go/pkg/console"
	"github.com/diillson/sales-insight-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	sourceRepo := source.NewSourceRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		sourceRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetReportUseCase(reportUseCase)
	app.SetServerDeps(cli.ServerDeps{
		Source:  sourceRepo,
		Export:  exportRepo,
		Config:  configRepo,
		Console: consoleImpl,
	})

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
