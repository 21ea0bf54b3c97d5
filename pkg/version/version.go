package version

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Preenchidos por ldflags: -X .../pkg/version.Version=1.2.3
var (
	Version   = "0.0.0-dev"
	Commit    = ""
	BuildTime = ""
)

// releaseURL aponta para a última release publicada do sales-insight.
var releaseURL = "https://api.github.com/repos/diillson/sales-insight-go/releases/latest"

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(bi)
	}
}

// applyBuildInfo usa os dados de VCS do binário quando ldflags não definiu a versão.
func applyBuildInfo(bi *debug.BuildInfo) {
	if Version != "" && Version != "0.0.0-dev" {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if ts, err := time.Parse(time.RFC3339, settings["vcs.time"]); BuildTime == "" && err == nil {
		BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
	}

	// go install ...@vX.Y.Z grava a versão do módulo
	if v := strings.TrimPrefix(bi.Main.Version, "v"); v != "" && v != "(devel)" {
		Version = v
		if settings["vcs.modified"] == "true" {
			Version += "-dirty"
		}
	}
}

// FormatVersion retorna a versão com commit e horário de build, quando conhecidos.
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	switch {
	case Commit == "":
		return fmt.Sprintf("%s (development)", ver)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	default:
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	}
}

// CheckLatestVersion avisa no console quando há uma release mais nova.
// Falhas de rede são ignoradas.
func CheckLatestVersion(currentVersion string) {
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}
	latest, ok := latestRelease(releaseURL)
	if !ok || !isNewer(latest, currentVersion) {
		return
	}
	pterm.Warning.Printfln("A new version of Sales Insight is available: %s", latest)
	pterm.Info.Println("Please update using: go install github.com/diillson/sales-insight-go/cmd/sales-insight@latest")
}

func latestRelease(url string) (string, bool) {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil || release.TagName == "" {
		return "", false
	}
	return strings.TrimPrefix(release.TagName, "v"), true
}

// isNewer compara versões numéricas major.minor.patch. Versões dev nunca são comparadas.
func isNewer(latest, current string) bool {
	if strings.HasSuffix(current, "-dev") {
		return false
	}
	l, okL := parseVersion(latest)
	c, okC := parseVersion(current)
	if !okL || !okC {
		return false
	}
	for i := range l {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}

func parseVersion(v string) ([3]int, bool) {
	var out [3]int
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	parts := strings.Split(v, ".")
	if len(parts) > 3 {
		return out, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return out, false
		}
		out[i] = n
	}
	return out, true
}
