package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"observafloresta/internal/adapters/dataservice"
	"observafloresta/internal/core/lexicon"
	"observafloresta/internal/core/query"
	asvc "observafloresta/internal/services/api/assistant/service"
	defdomain "observafloresta/internal/services/api/deforestation/domain"
	"observafloresta/internal/services/api/deforestation/repo"
	defsvc "observafloresta/internal/services/api/deforestation/service"
)

type runOptions struct {
	JSON      bool
	ParseOnly bool
	Table     bool
	DataURL   string
	Rate      float64
}

// dataSource picks the remote api when a url is given, else the embedded dataset
func dataSource(o runOptions) (defdomain.ServicePort, error) {
	if strings.TrimSpace(o.DataURL) != "" {
		return dataservice.New(dataservice.Options{
			BaseURL:   o.DataURL,
			UserAgent: "floresta-ask",
			Rate:      o.Rate,
			Burst:     1,
		})
	}
	r, err := repo.NewMemory()
	if err != nil {
		return nil, err
	}
	return defsvc.NewCached(defsvc.New(r, lexicon.Default()), 128, time.Hour), nil
}

// run answers the question in args, or every non blank stdin line when args is empty
func run(ctx context.Context, o runOptions, args []string, in io.Reader, out io.Writer) error {
	data, err := dataSource(o)
	if err != nil {
		return err
	}
	a := asvc.New(data, query.Default())

	if len(args) > 0 {
		return answer(ctx, a, o, strings.Join(args, " "), out)
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := answer(ctx, a, o, line, out); err != nil {
			return err
		}
		if !o.JSON && !o.ParseOnly {
			fmt.Fprintln(out)
		}
	}
	return sc.Err()
}

func answer(ctx context.Context, a asvc.Service, o runOptions, text string, out io.Writer) error {
	if o.ParseOnly {
		return writeJSON(out, a.Parse(text))
	}
	ans, err := a.Ask(ctx, text)
	if err != nil {
		return err
	}
	if o.JSON {
		return writeJSON(out, ans)
	}
	fmt.Fprintln(out, ans.Text)
	if o.Table {
		if t, ok := asvc.TableOf(ans.Data); ok {
			fmt.Fprintln(out)
			fmt.Fprintln(out, t.String())
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
