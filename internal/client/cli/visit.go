package cli

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Visit requests a page of the web front-end with the session cookies and
// prints where the route guard sent us: visit <path>.
func (a *App) Visit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: visit <path>")
		return nil
	}
	path := args[0]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	target := a.webBase.JoinPath(path)
	if q := strings.Index(path, "?"); q >= 0 {
		target = a.webBase.JoinPath(path[:q])
		target.RawQuery = path[q+1:]
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return a.report(err)
	}
	resp, err := a.web.Do(req)
	if err != nil {
		return a.report(err)
	}
	defer resp.Body.Close()

	if loc := resp.Header.Get("Location"); loc != "" && resp.StatusCode >= 300 && resp.StatusCode < 400 {
		fmt.Fprintf(a.out, "%d -> %s\n", resp.StatusCode, loc)
		return nil
	}
	fmt.Fprintf(a.out, "%d %s\n", resp.StatusCode, http.StatusText(resp.StatusCode))
	return nil
}
