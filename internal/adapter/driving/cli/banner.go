package cli

import (
	"fmt"

	"github.com/diillson/sales-insight-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
   _____       __             ____           _       __    __ 
  / ___/____ _/ /__  _____   /  _/___  _____(_)___ _/ /_  / /_
  \__ \/ __ '/ / _ \/ ___/   / // __ \/ ___/ / __ '/ __ \/ __/
 ___/ / /_/ / /  __(__  )  _/ // / / (__  ) / /_/ / / / / /_  
/____/\__,_/_/\___/____/  /___/_/ /_/____/_/\__, /_/ /_/\__/  
                                           /____/             
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Sales Insight CLI (v%s)", formattedVersion)))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	// Usa a função do pacote version para verificar por atualizações
	version.CheckLatestVersion(currentVersion)
}
