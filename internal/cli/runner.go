package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/idilsaglam/bucket/internal/bucket"
	"github.com/idilsaglam/bucket/internal/model"
	"github.com/idilsaglam/bucket/internal/tui"
	"github.com/idilsaglam/bucket/internal/ui"
)

// Options carry the wiring from main plus output tweaks from root flags.
type Options struct {
	Store  *bucket.Store
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer

	// RunTUI starts the interactive view; nil uses tui.Run.
	RunTUI func(*bucket.Store, *slog.Logger) error
}

func (o *Options) defaults() {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.RunTUI == nil {
		o.RunTUI = tui.Run
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	if len(args) == 0 {
		PrintHelp(opt.Err)
		return 2
	}
	cmd, a := args[0], args[1:]
	opt.Logger.Debug("dispatch", "cmd", cmd, "args", len(a))

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Out)
		return 0
	case "ls", "list":
		return doList(opt, a)
	case "add":
		return doAdd(opt, a)
	case "done", "toggle":
		return doToggle(opt, a)
	case "rm":
		return doRemove(opt, a)
	case "edit":
		return doEdit(opt, a)
	case "stats":
		return doStats(opt)
	case "tui":
		if err := opt.RunTUI(opt.Store, opt.Logger); err != nil {
			ui.Fail(opt.Err, "tui: "+err.Error())
			return 1
		}
		return 0
	}

	ui.Fail(opt.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Err)
	PrintHelp(opt.Err)
	return 2
}

// NeedsStore reports whether cmd reads or writes the bucket list. Anything
// else (help, unknown names) can run with a nil Store.
func NeedsStore(cmd string) bool {
	switch cmd {
	case "ls", "list", "add", "done", "toggle", "rm", "edit", "stats", "tui":
		return true
	}
	return false
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `bucket - a shared bucket list

Usage:
  bucket [root flags] <subcommand> [args]

Subcommands:
  ls [--group] [category]                  List items, optionally one category
  add <category> <name...> [--link URL]    Add an item (name can be multiple words)
  done <category> <index>                  Toggle completed for the item at 1-based index
  rm <category> <index>                    Remove the item at 1-based index
  edit <category> <index> [--name N] [--link L]
                                           Rename an item or change its link
  stats                                    Completed/total per category
  tui                                      Interactive view

Categories: restaurants, travel, sports (prefixes work: rest, tr, sp)

Root flags:
  --backend json|sqlite|memory   --data PATH   --key NAME
  --theme classic|neon|mono      --log-level LEVEL   --config FILE
  --color | --no-color           force or disable ANSI colors (NO_COLOR is honored)

Examples:
  bucket add travel Zion National Park --link https://maps.example/zion
  bucket ls
  bucket done travel 1
  bucket edit rest 2 --name "Red Iguana 2"
`)
}

// -------------- subcommand impls ----------------

func doList(opt Options, args []string) int {
	fs := newFlagSet("ls")
	group := fs.Bool("group", false, "list pending before done")
	if code := parse(opt, fs, args, "usage: bucket ls [--group] [category]"); code != 0 {
		return exit(code)
	}
	cats := model.Categories
	if fs.NArg() > 1 {
		ui.Fail(opt.Err, "usage: bucket ls [--group] [category]")
		return 2
	}
	if fs.NArg() == 1 {
		c, ok := category(opt, "ls", fs.Arg(0))
		if !ok {
			return 2
		}
		cats = []model.Category{c}
	}

	st := opt.Store.Load()
	stats := model.ComputeStats(st)
	t := ui.Current()

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Bucket List"),
		ui.C(t.Success, t.SymDone), stats.Overall.Completed,
		ui.C(t.Pending, t.SymUnchecked), stats.Overall.Pending(),
		ui.C(t.Accent, "Total"), stats.Overall.Total,
	)
	lines := []string{header, ui.C(t.Muted, ui.ProgressBar(stats.Overall.Completed, stats.Overall.Total, 28))}
	for _, c := range cats {
		n := stats.ByCategory[c]
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%s  %s", ui.C(t.Accent, c.Title()), ui.C(t.Muted, fmt.Sprintf("%d/%d", n.Completed, n.Total))))
		if *group {
			lines = append(lines, groupLines(st[c])...)
		} else {
			lines = append(lines, itemLines(st[c], indexes(len(st[c])))...)
		}
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `bucket add travel \"Zion National Park\"`"))
	ui.Panel(opt.Out, lines)
	return 0
}

func doAdd(opt Options, args []string) int {
	const usage = "usage: bucket add <category> <name...> [--link URL]"
	fs := newFlagSet("add")
	link := fs.String("link", "", "optional URL")
	if code := parse(opt, fs, args, usage); code != 0 {
		return exit(code)
	}
	if fs.NArg() < 2 {
		ui.Fail(opt.Err, usage)
		return 2
	}
	c, ok := category(opt, "add", fs.Arg(0))
	if !ok {
		return 2
	}
	name := strings.TrimSpace(strings.Join(fs.Args()[1:], " "))

	opt.Store.Load()
	if _, err := opt.Store.AddItem(c, name, strings.TrimSpace(*link)); err != nil {
		return report(opt, "add", err)
	}
	ui.OK(opt.Out, "added to "+string(c))
	return 0
}

func doToggle(opt Options, args []string) int {
	c, it, code := lookup(opt, "done", args)
	if code != 0 {
		return code
	}
	st, err := opt.Store.ToggleComplete(c, it.ID)
	if err != nil {
		return report(opt, "done", err)
	}
	if after, _ := st.Find(c, it.ID); after.Completed {
		ui.OK(opt.Out, "completed: "+it.Name)
	} else {
		ui.OK(opt.Out, "reopened: "+it.Name)
	}
	return 0
}

func doRemove(opt Options, args []string) int {
	c, it, code := lookup(opt, "rm", args)
	if code != 0 {
		return code
	}
	if _, err := opt.Store.DeleteItem(c, it.ID); err != nil {
		return report(opt, "rm", err)
	}
	ui.OK(opt.Out, "removed: "+it.Name)
	return 0
}

func doEdit(opt Options, args []string) int {
	const usage = "usage: bucket edit <category> <index> [--name N] [--link L]"
	fs := newFlagSet("edit")
	name := fs.String("name", "", "new name")
	link := fs.String("link", "", "new link (empty string clears it)")
	if code := parse(opt, fs, args, usage); code != 0 {
		return exit(code)
	}
	if !fs.Changed("name") && !fs.Changed("link") {
		ui.Fail(opt.Err, "edit: nothing to change, pass --name and/or --link")
		return 2
	}
	c, it, code := lookup(opt, "edit", fs.Args())
	if code != 0 {
		return code
	}

	opt.Store.BeginEdit(c, it)
	e, _ := opt.Store.Editing()
	if fs.Changed("name") {
		e.Name = strings.TrimSpace(*name)
	}
	if fs.Changed("link") {
		e.Link = strings.TrimSpace(*link)
	}
	if _, err := opt.Store.CommitEdit(e); err != nil {
		opt.Store.CancelEdit()
		return report(opt, "edit", err)
	}
	ui.OK(opt.Out, "updated: "+e.Name)
	return 0
}

func doStats(opt Options) int {
	s := model.ComputeStats(opt.Store.Load())
	t := ui.Current()

	lines := []string{ui.C(t.Title, "Statistics"), ""}
	for _, c := range model.Categories {
		n := s.ByCategory[c]
		lines = append(lines, fmt.Sprintf("%-12s %5s  %s", c.Title(), fmt.Sprintf("%d/%d", n.Completed, n.Total),
			ui.C(t.Muted, ui.ProgressBar(n.Completed, n.Total, 20))))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s %5s  %s", ui.C(t.Accent, fmt.Sprintf("%-12s", "Total")),
		fmt.Sprintf("%d/%d", s.Overall.Completed, s.Overall.Total),
		ui.C(t.Muted, ui.ProgressBar(s.Overall.Completed, s.Overall.Total, 20))))
	ui.Panel(opt.Out, lines)
	return 0
}

// -------------- argument helpers --------------

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse returns 0 to continue, -1 after printing help, 2 on bad flags.
func parse(opt Options, fs *flag.FlagSet, args []string, usage string) int {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(opt.Out, usage)
			fmt.Fprint(opt.Out, fs.FlagUsages())
			return -1
		}
		ui.Fail(opt.Err, fs.Name()+": "+err.Error())
		ui.Hint(opt.Err, usage)
		return 2
	}
	return 0
}

func exit(code int) int {
	if code < 0 {
		return 0
	}
	return code
}

func category(opt Options, cmd, s string) (model.Category, bool) {
	c, err := model.ParseCategory(s)
	if err != nil {
		ui.Fail(opt.Err, cmd+": "+err.Error())
		ui.Hint(opt.Err, "Categories: restaurants, travel, sports")
		return "", false
	}
	return c, true
}

// lookup resolves "<category> <index>" to the stored item. It loads the
// store so mutations can follow.
func lookup(opt Options, cmd string, args []string) (model.Category, model.Item, int) {
	if len(args) != 2 {
		ui.Fail(opt.Err, fmt.Sprintf("usage: bucket %s <category> <index>", cmd))
		return "", model.Item{}, 2
	}
	c, ok := category(opt, cmd, args[0])
	if !ok {
		return "", model.Item{}, 2
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		ui.Fail(opt.Err, cmd+": not a number: "+args[1])
		return "", model.Item{}, 2
	}
	items := opt.Store.Load()[c]
	if n < 1 || n > len(items) {
		ui.Fail(opt.Err, fmt.Sprintf("index out of range: %s has %d, got %d", c, len(items), n))
		ui.Hint(opt.Err, fmt.Sprintf("Hint: run `bucket ls %s` to see valid indexes", c))
		return "", model.Item{}, 2
	}
	return c, items[n-1], 0
}

// report maps store errors to messages and exit codes.
func report(opt Options, cmd string, err error) int {
	switch {
	case errors.Is(err, bucket.ErrEmptyName):
		ui.Fail(opt.Err, cmd+": empty name")
		return 2
	case errors.Is(err, bucket.ErrPersist):
		ui.Fail(opt.Err, "save: "+err.Error())
		ui.Hint(opt.Err, "The change was not saved.")
		return 1
	default:
		ui.Fail(opt.Err, cmd+": "+err.Error())
		return 1
	}
}
