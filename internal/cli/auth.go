package cli

import (
	"fmt"
	"time"

	"github.com/idilsaglam/pantry/internal/auth"
	"github.com/idilsaglam/pantry/internal/ui"
)

func doAuth(a []string, opt Options) int {
	if len(a) == 0 {
		ui.Fail("usage: pantry auth <set|clear|status>")
		return 2
	}
	path := opt.Config.CredsFile
	switch a[0] {
	case "set":
		if len(a) != 2 {
			ui.Fail("usage: pantry auth set <token>")
			return 2
		}
		if err := auth.Set(path, a[1], opt.Now()); err != nil {
			ui.Fail("save token: " + err.Error())
			return 1
		}
		ui.OK("token saved")
		return 0

	case "clear":
		ti, _ := auth.Get(path)
		if ti != nil && ti.Source == "env" {
			ui.OK("token is provided by PANTRY_TOKEN env var (nothing to delete)")
			return 0
		}
		if err := auth.Delete(path); err != nil {
			ui.Fail("clear: " + err.Error())
			return 1
		}
		ui.OK("token cleared")
		return 0

	case "status":
		ti, err := auth.Get(path)
		if err != nil {
			ui.Fail("status: " + err.Error())
			return 1
		}
		if ti == nil {
			fmt.Fprintln(ui.Stdout, ui.C(ui.Current().Muted, "no token: the API is open"))
			fmt.Fprintln(ui.Stdout, "Run: pantry auth set <token>")
			return 0
		}
		fmt.Fprintf(ui.Stdout, "source: %s\n", ti.Source)
		if !ti.CreatedAt.IsZero() {
			fmt.Fprintf(ui.Stdout, "created: %s\n", ti.CreatedAt.UTC().Format(time.RFC3339))
		}
		fmt.Fprintln(ui.Stdout, "env override: PANTRY_TOKEN")
		return 0
	}
	ui.Fail("usage: pantry auth <set|clear|status>")
	return 2
}
