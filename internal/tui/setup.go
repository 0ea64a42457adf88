package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rewardscope/rewardscope/internal/cli"
	"github.com/rewardscope/rewardscope/internal/config"
	"github.com/rewardscope/rewardscope/internal/source"
	"github.com/rewardscope/rewardscope/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the setup form.
type SetupValues struct {
	DataPath string
	Theme    string
	Cache    bool
}

// NewSetupValues returns form values seeded from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		DataPath: cfg.Data.Path,
		Theme:    cfg.Appearance.Theme,
		Cache:    cfg.Data.Cache,
	}
}

// NewSetupForm builds the setup form used both on first run and by the setup command.
func NewSetupForm(vals *SetupValues, intro string) *huh.Form {
	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Selamat datang di rewardscope").
				Description(intro),
			huh.NewInput().
				Title("File CSV survei").
				Description("Path ke file survei self-reward yang sudah dibersihkan.").
				Placeholder(config.DefaultDataPath).
				Value(&vals.DataPath).
				Validate(validateDataPath),
			huh.NewSelect[string]().
				Title("Tema warna").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Simpan data hasil parsing di cache SQLite?").
				Affirmative("Ya").
				Negative("Tidak").
				Value(&vals.Cache),
		),
	).WithShowHelp(false).WithTheme(huh.ThemeCharm())
}

func newSetupForm(rowCount int, path string, vals *SetupValues) *huh.Form {
	intro := fmt.Sprintf("Memuat %s dari %s.\n%s", cli.FormatPeople(rowCount), path, cli.DashboardTitle)
	return NewSetupForm(vals, intro)
}

// validateDataPath accepts any path that exists and is a readable file.
func validateDataPath(p string) error {
	p = strings.TrimSpace(p)
	if p == "" {
		return errors.New("path wajib diisi")
	}
	if _, err := source.Stat(p); err != nil {
		return errors.New("file tidak ditemukan")
	}
	return nil
}

// ApplySetup writes the form answers into cfg.
func ApplySetup(cfg *config.Config, vals *SetupValues) {
	cfg.Data.Path = strings.TrimSpace(vals.DataPath)
	cfg.Data.Cache = vals.Cache
	cfg.Appearance.Theme = vals.Theme
}

// saveSetupConfig persists the setup answers and reports whether the data path changed.
func (a *App) saveSetupConfig() bool {
	cfg := loadConfigOrDefault()
	ApplySetup(&cfg, a.setupVals)
	theme.SetActive(cfg.Appearance.Theme)
	_ = config.Save(cfg)

	a.useCache = cfg.Data.Cache
	if cfg.Data.Path != a.dataPath {
		a.dataPath = cfg.Data.Path
		return true
	}
	return false
}
