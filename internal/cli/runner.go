package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/idilsaglam/pantry/internal/config"
	"github.com/idilsaglam/pantry/internal/model"
	"github.com/idilsaglam/pantry/internal/pantry"
	"github.com/idilsaglam/pantry/internal/store/jsonstore"
	"github.com/idilsaglam/pantry/internal/tui"
	"github.com/idilsaglam/pantry/internal/ui"
)

// Options carry what the root command resolved.
type Options struct {
	Config config.Config
	Now    func() time.Time // defaults to time.Now
	Ctx    context.Context  // cancels `serve`; defaults to Background
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.Ctx == nil {
		opt.Ctx = context.Background()
	}
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "add":
		return doAdd(a, opt)
	case "ls":
		return doList(a, opt)
	case "expiring":
		days := 3
		if len(a) > 1 {
			ui.Fail("usage: pantry expiring [days]")
			return 2
		}
		if len(a) == 1 {
			n, err := strconv.Atoi(a[0])
			if err != nil || n < 0 {
				ui.Fail("expiring: not a day count: " + a[0])
				return 2
			}
			days = n
		}
		return listExpiring(opt, days)
	case "rm":
		if len(a) != 1 {
			ui.Fail("usage: pantry rm <id>")
			return 2
		}
		return doRemove(a[0], opt)
	case "categories":
		return doCategories()
	case "browse":
		return doBrowse(opt)
	case "serve":
		return doServe(a, opt)
	case "auth":
		return doAuth(a, opt)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprint(ui.Stdout, `pantry - keep track of what is in the cupboard

Usage:
  pantry [-file path] [-theme classic|neon|mono] <subcommand> [args]

Subcommands:
  add [flags] <name...>   Add an item to today's batch
      -c category  -q quantity  -e expires (YYYY-MM-DD|today|tomorrow|+N)
      -n note      -emoji glyph
  ls [-view v] [-days N]  List items; v is batches (default), category, expiring, recent
  expiring [days]         Items expiring within days (default 3), soonest first
  rm <id>                 Remove an item by id or unique id prefix
  categories              Show the category table
  browse                  Interactive browser
  serve [-addr :8080]     JSON HTTP API
  auth set <token>|clear|status   API token

Examples:
  pantry add -c dairy -q "1 dozen" -e +10 Eggs
  pantry ls -view category
  pantry expiring 7
  pantry rm 3fa8
`)
}

// -------------- store plumbing ----------------

func openStore(opt Options) (*pantry.Store, error) {
	batches, err := jsonstore.Load(opt.Config.DataFile)
	if err != nil {
		return nil, err
	}
	s, err := pantry.Restore(batches)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opt.Config.DataFile, err)
	}
	return s, nil
}

func saveStore(opt Options, batches []model.Batch) error {
	return jsonstore.Save(opt.Config.DataFile, batches)
}

// -------------- subcommand impls ----------------

func doAdd(args []string, opt Options) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.String("c", "", "category")
	quantity := fs.String("q", "", "quantity")
	expires := fs.String("e", "", "expiration")
	note := fs.String("n", "", "note")
	emoji := fs.String("emoji", "", "display glyph")
	if err := fs.Parse(args); err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}

	now := opt.Now()
	exp, err := model.ParseExpiry(*expires, now)
	if err != nil {
		ui.Fail("add: " + err.Error())
		return 2
	}
	s, err := openStore(opt)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	it, err := s.AddItem(model.Draft{
		Name:      strings.Join(fs.Args(), " "),
		Emoji:     *emoji,
		Category:  *category,
		Quantity:  *quantity,
		ExpiresAt: exp,
		Note:      *note,
	}, now)
	if err != nil {
		var ve pantry.ValidationError
		if errors.As(err, &ve) && ve.Reason == pantry.MissingCategory {
			ui.Fail("add: category is required, one of: " + categoryList())
			return 2
		}
		ui.Fail("add: " + err.Error())
		return 2
	}
	if err := saveStore(opt, s.Batches()); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(fmt.Sprintf("added %s %s (%s)", glyph(it), it.Name, shortID(it.ID)))
	return 0
}

func doList(args []string, opt Options) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	view := fs.String("view", "batches", "batches|category|expiring|recent")
	days := fs.Int("days", 7, "horizon for -view expiring")
	if err := fs.Parse(args); err != nil {
		ui.Fail("ls: " + err.Error())
		return 2
	}

	s, err := openStore(opt)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	now := opt.Now()

	var body []string
	switch *view {
	case "batches":
		body = batchLines(s.Batches(), now)
	case "category":
		body = categoryLines(s.AllItems(), now)
	case "expiring":
		if *days < 0 {
			ui.Fail("ls: -days must not be negative")
			return 2
		}
		body = expiringLines(s.AllItems(), *days, now)
	case "recent":
		body = recentLines(s.AllItems(), now)
	default:
		ui.Fail("ls: unknown view: " + *view)
		return 2
	}

	lines := []string{header(s.AllItems(), now), ""}
	lines = append(lines, body...)
	lines = append(lines, "", ui.C(ui.Current().Muted, "Tip: add with `pantry add -c dairy Milk`"))
	ui.Panel(lines)
	return 0
}

func listExpiring(opt Options, days int) int {
	s, err := openStore(opt)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	now := opt.Now()
	lines := []string{ui.C(ui.Current().Title, fmt.Sprintf("Expiring within %d days", days)), ""}
	lines = append(lines, expiringLines(s.AllItems(), days, now)...)
	ui.Panel(lines)
	return 0
}

// doRemove is idempotent: an id that is already gone is reported, not failed.
func doRemove(arg string, opt Options) int {
	s, err := openStore(opt)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	id, err := resolveID(s, arg)
	if err != nil {
		ui.Fail("rm: " + err.Error())
		return 2
	}
	it, found := s.Find(id)
	if !found || !s.RemoveItem(id) {
		ui.OK("nothing to remove for " + arg)
		return 0
	}
	if err := saveStore(opt, s.Batches()); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK("removed " + it.Name)
	return 0
}

func doCategories() int {
	lines := []string{ui.C(ui.Current().Title, "Categories"), ""}
	for _, c := range model.Categories() {
		lines = append(lines, fmt.Sprintf("%s %-12s %s", c.Icon(), c.Label(), ui.C(ui.Current().Muted, string(c))))
	}
	ui.Panel(lines)
	return 0
}

func doBrowse(opt Options) int {
	s, err := openStore(opt)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	saved, err := tui.Run(s, opt.Now, func(b []model.Batch) error { return saveStore(opt, b) })
	if err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	if saved {
		ui.OK("saved")
	}
	return 0
}

// resolveID accepts a full id or a unique prefix of one.
func resolveID(s *pantry.Store, arg string) (string, error) {
	if _, ok := s.Find(arg); ok {
		return arg, nil
	}
	var match string
	for _, it := range s.AllItems() {
		if strings.HasPrefix(it.ID, arg) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", arg)
			}
			match = it.ID
		}
	}
	if match == "" {
		return arg, nil
	}
	return match, nil
}

func categoryList() string {
	var names []string
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
