package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/uvalib/virgo4-finna-ws/internal/browse"
	"github.com/uvalib/virgo4-finna-ws/internal/finna"
	"github.com/uvalib/virgo4-finna-ws/internal/view"
)

type recordFetcher interface {
	Record(ctx context.Context, id string) (*finna.Response, error)
}

// browser runs the commands typed at the prompt
type browser struct {
	ctrl    *browse.Controller
	records recordFetcher
	origin  string
	out     io.Writer
}

func (b *browser) prompt() string {
	f := b.ctrl.Filters()
	var tags []string
	if f.BooksOnly {
		tags = append(tags, "kirjat")
	}
	if f.FinnishOnly {
		tags = append(tags, "suomi")
	}
	if len(tags) == 0 {
		return "finna> "
	}
	return fmt.Sprintf("finna [%s]> ", strings.Join(tags, ","))
}

// handle runs one line of input. It returns false when the user quits.
func (b *browser) handle(ctx context.Context, input string) bool {
	input = strings.TrimSpace(input)
	cmd, arg, _ := strings.Cut(input, " ")
	switch {
	case input == "":
	case cmd == ":quit" || cmd == ":q":
		return false
	case cmd == ":help":
		fmt.Fprintln(b.out, helpText)
	case cmd == ":more":
		b.loadMore(ctx)
	case cmd == ":show":
		b.show(ctx, strings.TrimSpace(arg))
	case cmd == ":books":
		f := b.ctrl.Filters()
		f.BooksOnly = !f.BooksOnly
		b.ctrl.SetFilters(f)
		fmt.Fprintf(b.out, "Vain kirjat: %s\n", onOff(f.BooksOnly))
	case cmd == ":fi":
		f := b.ctrl.Filters()
		f.FinnishOnly = !f.FinnishOnly
		b.ctrl.SetFilters(f)
		fmt.Fprintf(b.out, "Vain suomi: %s\n", onOff(f.FinnishOnly))
	case strings.HasPrefix(cmd, ":"):
		fmt.Fprintf(b.out, "Tuntematon komento %s, katso :help\n", cmd)
	default:
		b.search(ctx, input)
	}
	return true
}

func (b *browser) search(ctx context.Context, query string) {
	issued, err := b.ctrl.Submit(ctx, query)
	if !issued {
		return
	}
	if err != nil {
		renderError(b.out, err)
		return
	}
	s := b.ctrl.State()
	if s.TotalCount == 0 {
		fmt.Fprintln(b.out, "Ei tuloksia.")
		return
	}
	fmt.Fprintln(b.out, view.ResultCountText(s.TotalCount))
	renderItems(b.out, s.Items, 0)
	renderMoreHint(b.out, s)
}

func (b *browser) loadMore(ctx context.Context) {
	before := len(b.ctrl.State().Items)
	issued, err := b.ctrl.LoadMore(ctx)
	if !issued {
		fmt.Fprintln(b.out, "Ei enempää tuloksia.")
		return
	}
	if err != nil {
		renderError(b.out, err)
		return
	}
	s := b.ctrl.State()
	renderItems(b.out, s.Items[before:], before)
	renderMoreHint(b.out, s)
}

func (b *browser) show(ctx context.Context, arg string) {
	items := b.ctrl.State().Items
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		fmt.Fprintf(b.out, "Anna tuloksen numero väliltä 1-%d\n", len(items))
		return
	}

	resp, err := b.records.Record(ctx, items[n-1].ID)
	if err != nil {
		renderError(b.out, err)
		return
	}
	if len(resp.Records) == 0 {
		fmt.Fprintln(b.out, "Teosta ei löytynyt.")
		return
	}
	renderDetail(b.out, view.NewDetail(&resp.Records[0], b.origin))
}

func onOff(b bool) string {
	if b {
		return "päällä"
	}
	return "pois"
}

const helpText = `Komennot:
  <hakusana>   uusi haku
  :more        lataa lisää tuloksia
  :show N      näytä tuloksen N tiedot
  :books       vain kirjat päälle/pois
  :fi          vain suomenkieliset päälle/pois
  :quit        lopeta`
