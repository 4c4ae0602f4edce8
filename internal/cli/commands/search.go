package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"

	"ListKeeper/internal/cli/bootstrap"
	"ListKeeper/internal/cli/search"
	"ListKeeper/internal/config"
)

type searchCmd struct{}

func (searchCmd) Name() string { return "search" }
func (searchCmd) Description() string {
	return "Search lists by YYYY, YYYY-MM or YYYY-MM-DD; without a query reads queries from stdin"
}
func (searchCmd) Usage() string { return "search [query]" }

func (searchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	return withSession(ctx, cfg, func(app *bootstrap.App) error {
		if len(args) == 1 {
			st := app.Search.Search(ctx, args[0])
			printSearchState(st)
			if st.Status == search.StatusError {
				return describe(st.Err, "lists not found")
			}
			return nil
		}
		return interactiveSearch(ctx, app.Search)
	})
}

// interactiveSearch выдаёт запрос на каждую строку ввода, не дожидаясь ответа.
// Печатается только ответ на последний выданный запрос.
func interactiveSearch(ctx context.Context, s *search.Session) error {
	var mu sync.Mutex
	unsubscribe := s.OnChange(func(st search.State) {
		mu.Lock()
		defer mu.Unlock()
		printSearchState(st)
	})
	defer unsubscribe()

	sc := bufio.NewScanner(In)
	for sc.Scan() {
		if ctx.Err() != nil {
			break
		}
		s.SearchAsync(ctx, sc.Text())
	}
	s.Wait()
	return sc.Err()
}

func printSearchState(st search.State) {
	q := strings.TrimSpace(st.Input)
	switch st.Status {
	case search.StatusEmpty:
		fmt.Fprintln(Out, "Type a date to search")
	case search.StatusInvalid:
		fmt.Fprintf(Out, "%q: enter YYYY, YYYY-MM or YYYY-MM-DD\n", q)
	case search.StatusNoMatches:
		fmt.Fprintf(Out, "%q: no lists found\n", q)
	case search.StatusError:
		fmt.Fprintf(Out, "%q: search failed: %v\n", q, st.Err)
	case search.StatusResults:
		fmt.Fprintf(Out, "%q: %d found\n", q, len(st.Lists))
		for _, l := range st.Lists {
			printList(l)
		}
	}
}

func init() { RegisterCmd(searchCmd{}) }
