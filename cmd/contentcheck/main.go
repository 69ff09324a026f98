// Command contentcheck loads every portal page against a content API and
// reports which pages settle, which fail, and which canonical fields the
// backend no longer supplies.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"portalapi/internal/about"
	"portalapi/internal/config"
	"portalapi/internal/content/fetch"
	"portalapi/internal/content/normalize"
	"portalapi/internal/drift"
	"portalapi/internal/guidance"
	"portalapi/internal/home"
	"portalapi/internal/layout"
	"portalapi/internal/locations"
	"portalapi/internal/logging"
	"portalapi/internal/menu"
	"portalapi/internal/news"
	"portalapi/internal/page"
	"portalapi/internal/platform/contentapi"
	"portalapi/internal/products"
	"portalapi/internal/support"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var (
		baseURL = flag.String("base", cfg.ContentAPIURL, "Content API base URL")
		mock    = flag.Bool("mock", cfg.Mock(), "Serve static defaults only")
		retries = flag.Int("retry", 1, "Retries per failed page")
		timeout = flag.Duration("timeout", 30*time.Second, "Overall deadline")
		only    = flag.String("pages", "", "Comma-separated page names to check (default all)")
		verbose = flag.Bool("v", false, "Log fetch outcomes")
	)
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		if logger, err = logging.New(cfg.Env, cfg.LogLevel); err != nil {
			log.Fatalf("logger: %v", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	tracker := drift.NewTracker(logger)
	client := contentapi.NewClient(contentapi.Options{BaseURL: *baseURL, Timeout: cfg.ContentTimeout, RPS: cfg.ContentRPS})
	norm := normalize.New(
		normalize.WithMediaBase(cfg.MediaBaseURL),
		normalize.WithEmptyAsAbsent(cfg.EmptyStringAsAbsent),
		normalize.WithGapReporter(tracker),
	)
	fetcher := fetch.New(client, fetch.WithMock(*mock), fetch.WithMaxPages(cfg.PaginationMaxPages), fetch.WithLogger(logger))

	checks := selectChecks(allChecks(fetcher, norm), *only)
	if len(checks) == 0 {
		log.Fatalf("no pages match %q", *only)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	results := make([]result, 0, len(checks))
	for _, c := range checks {
		results = append(results, c.run(ctx, *retries))
	}

	failed := report(os.Stdout, results, tracker.Snapshot())
	if failed > 0 {
		os.Exit(1)
	}
}

type check struct {
	name string
	run  func(ctx context.Context, retries int) result
}

type result struct {
	name    string
	state   page.State
	loads   int
	elapsed time.Duration
	err     error
}

func newCheck[T any](name string, load page.Loader[T]) check {
	return check{name: name, run: func(ctx context.Context, retries int) result {
		start := time.Now()
		sess := page.NewSession(load)
		defer sess.Unmount()
		if err := sess.Mount(ctx); err != nil {
			return result{name: name, state: page.StateError, err: err}
		}
		v := sess.Wait(ctx)
		for i := 0; i < retries && v.State == page.StateError && sess.Retry(); i++ {
			v = sess.Wait(ctx)
		}
		return result{name: name, state: v.State, loads: sess.Loads(), elapsed: time.Since(start), err: v.Err}
	}}
}

func allChecks(fetcher *fetch.Fetcher, norm *normalize.Normalizer) []check {
	aboutSvc := about.NewService(fetcher, norm)
	layoutSvc := layout.NewService(fetcher, norm, layout.NewStore())
	catalog := products.NewService(fetcher, norm)
	supportSvc := support.NewService(fetcher, norm)
	return []check{
		newCheck("header", layoutSvc.LoadHeader),
		newCheck("footer", layoutSvc.LoadFooter),
		newCheck("menu", menu.NewService(catalog).Load),
		newCheck("contacts", layoutSvc.LoadContacts),
		newCheck("social-networks", layoutSvc.LoadSocialNetworks),
		newCheck("home", home.NewService(fetcher, norm).Load),
		newCheck("about", aboutSvc.Load),
		newCheck("community-support", aboutSvc.LoadCommunitySupport),
		newCheck("financial-statements", aboutSvc.LoadFinancialStatements),
		newCheck("memories", aboutSvc.LoadMemories),
		newCheck("policies", aboutSvc.LoadPolicies),
		newCheck("products", catalog.Load),
		newCheck("news", news.NewService(fetcher, norm).Load),
		newCheck("locations", locations.NewService(fetcher, norm).Load),
		newCheck("saving-tips", guidance.NewService(fetcher, norm).Load),
		newCheck("services", supportSvc.ServicesPage),
		newCheck("service-rates", supportSvc.ServiceRates),
		newCheck("rights-and-duties", supportSvc.RightsAndDuties),
		newCheck("abandoned-accounts", supportSvc.AbandonedAccounts),
		newCheck("account-contracts", supportSvc.AccountContracts),
		newCheck("claim-request", formCheck(supportSvc, support.FormClaimRequest)),
		newCheck("fraud-report", formCheck(supportSvc, support.FormFraudReport)),
		newCheck("suggestion-box", formCheck(supportSvc, support.FormSuggestionBox)),
	}
}

func formCheck(svc *support.Service, form support.Form) page.Loader[support.FormPage] {
	return func(ctx context.Context) (support.FormPage, error) { return svc.FormPage(ctx, form) }
}

func selectChecks(all []check, only string) []check {
	if strings.TrimSpace(only) == "" {
		return all
	}
	want := make(map[string]bool)
	for _, n := range strings.Split(only, ",") {
		want[strings.TrimSpace(n)] = true
	}
	var out []check
	for _, c := range all {
		if want[c.name] {
			out = append(out, c)
		}
	}
	return out
}

// report prints page outcomes then drift gaps, and returns the number of
// pages that did not settle ready.
func report(w io.Writer, results []result, gaps []drift.Entry) int {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	failed := 0
	fmt.Fprintln(tw, "PAGE\tSTATE\tLOADS\tELAPSED\tERROR")
	for _, r := range results {
		errText := ""
		if r.err != nil {
			errText = r.err.Error()
		}
		if r.state != page.StateReady {
			failed++
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.name, r.state, r.loads, r.elapsed.Round(time.Millisecond), errText)
	}
	_ = tw.Flush()

	if len(gaps) == 0 {
		fmt.Fprintln(w, "\nno normalization gaps")
		return failed
	}
	fmt.Fprintf(w, "\n%d normalization gaps\n", len(gaps))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AREA\tFIELD\tREASON\tCOUNT\tALIASES")
	for _, g := range gaps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", g.Area, g.Field, g.Reason, g.Occurrences, strings.Join(g.Aliases, ","))
	}
	_ = tw.Flush()
	return failed
}
