package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/talent-scout/internal/crawling"
	"github.com/jonathan/talent-scout/internal/db"
	"github.com/jonathan/talent-scout/internal/observability"
	"github.com/jonathan/talent-scout/internal/schemas"
	"github.com/jonathan/talent-scout/internal/server"
	"github.com/jonathan/talent-scout/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one candidate search and print the results as JSON",
	Long: `Runs the same search as POST /get-candidate without starting a server.

  --flag ALL         every candidate found
  --flag NOT_TARGET  candidates not currently at --parent-company
  --flag TARGET      prior employers of people who recently joined --parent-company`,
	RunE: runSearchCommand,
}

var (
	searchFlag          string
	searchParentCompany string
	searchPosition      string
	searchCity          string
	searchState         string
	searchCountry       string
	searchSkills        []string
	searchOutput        string
)

func init() {
	searchCmd.Flags().StringVar(&searchFlag, "flag", string(types.FlagAll), "Search mode: TARGET, NOT_TARGET or ALL")
	searchCmd.Flags().StringVar(&searchParentCompany, "parent-company", "", "Company for TARGET and NOT_TARGET searches")
	searchCmd.Flags().StringVarP(&searchPosition, "position", "p", "", "Job title to search for (required)")
	searchCmd.Flags().StringVar(&searchCity, "city", "", "City (required)")
	searchCmd.Flags().StringVar(&searchState, "state", "", "State or region")
	searchCmd.Flags().StringVar(&searchCountry, "country", "", "Country (required)")
	searchCmd.Flags().StringSliceVar(&searchSkills, "skills", nil, "Comma-separated skills")
	searchCmd.Flags().StringVarP(&searchOutput, "out", "o", "", "Output file (default: stdout)")

	for _, name := range []string{"position", "city", "country"} {
		if err := searchCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(searchCmd)
}

func searchRequestFromFlags() *types.SearchRequest {
	return &types.SearchRequest{
		ParentCompany: searchParentCompany,
		Position:      searchPosition,
		City:          searchCity,
		State:         searchState,
		Country:       searchCountry,
		Skills:        searchSkills,
		Flag:          types.Flag(searchFlag),
	}
}

func runSearchCommand(cmd *cobra.Command, _ []string) error {
	req := searchRequestFromFlags()
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid search: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comps, err := buildComponents(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer comps.Close()

	if cfg.Verbose {
		searchURL, err := crawling.BuildSearchURL(cfg.SearchEndpoint, queryFor(req))
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSearch(string(req.Flag), req.ParentCompany, searchURL)
	}

	var runs runRecorder
	if comps.database != nil {
		runs = comps.database
	}

	search := func() (*searchResult, error) {
		return executeSearch(ctx, comps.crawler, req)
	}
	deliver := func(result *searchResult) error {
		if cfg.Verbose {
			result.Print(observability.NewPrinter(cmd.ErrOrStderr()), req.ParentCompany)
		}

		out := cmd.OutOrStdout()
		if searchOutput != "" {
			f, err := os.Create(searchOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file %s: %w", searchOutput, err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		return writeResults(out, result)
	}
	return recordedSearch(ctx, runs, logger, req, search, deliver)
}

// runRecorder stores the lifecycle of a search run.
type runRecorder interface {
	CreateSearchRun(ctx context.Context, input *db.SearchRunInput) (uuid.UUID, error)
	CompleteSearchRun(ctx context.Context, runID uuid.UUID, resultCount int, runErr error) error
}

// recordedSearch runs search, hands the result to deliver and records the run
// when runs is non-nil. The run fails if either step fails. Recording errors
// are logged and never fail the search.
func recordedSearch(
	ctx context.Context,
	runs runRecorder,
	logger *zap.Logger,
	req *types.SearchRequest,
	search func() (*searchResult, error),
	deliver func(*searchResult) error,
) (runErr error) {
	var result *searchResult
	if runs != nil {
		runID, err := runs.CreateSearchRun(ctx, runInputFor(req))
		if err != nil {
			logger.Warn("failed to record search run", zap.Error(err))
		} else {
			logger.Info("search run started", zap.String("run_id", runID.String()))
			defer func() {
				if err := runs.CompleteSearchRun(context.WithoutCancel(ctx), runID, result.Count(), runErr); err != nil {
					logger.Warn("failed to complete search run", zap.String("run_id", runID.String()), zap.Error(err))
				}
			}()
		}
	}

	result, runErr = search()
	if runErr != nil {
		return runErr
	}
	return deliver(result)
}

func queryFor(req *types.SearchRequest) crawling.Query {
	return crawling.Query{
		Position: req.Position,
		City:     req.City,
		State:    req.State,
		Country:  req.Country,
		Skills:   req.Skills,
	}
}

func runInputFor(req *types.SearchRequest) *db.SearchRunInput {
	return &db.SearchRunInput{
		Flag:          string(req.Flag),
		ParentCompany: req.ParentCompany,
		Position:      req.Position,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		Skills:        req.Skills,
	}
}

// searchResult holds prior employers for TARGET searches and candidates otherwise.
type searchResult struct {
	flag       types.Flag
	candidates []types.Candidate
	employers  []types.ExperienceEntry
}

// Count returns the number of results. A nil result counts as zero.
func (r *searchResult) Count() int {
	if r == nil {
		return 0
	}
	if r.flag == types.FlagTarget {
		return len(r.employers)
	}
	return len(r.candidates)
}

// Value returns the JSON-encodable results, never nil.
func (r *searchResult) Value() any {
	if r.flag == types.FlagTarget {
		if r.employers == nil {
			return []types.ExperienceEntry{}
		}
		return r.employers
	}
	if r.candidates == nil {
		return []types.Candidate{}
	}
	return r.candidates
}

// Schema names the embedded schema the results must satisfy.
func (r *searchResult) Schema() string {
	if r.flag == types.FlagTarget {
		return schemas.PriorEmployerList
	}
	return schemas.CandidateList
}

// Print writes a human-readable summary.
func (r *searchResult) Print(p *observability.Printer, parentCompany string) {
	if r.flag == types.FlagTarget {
		p.PrintPriorEmployers(parentCompany, r.employers)
		return
	}
	p.PrintCandidates(r.candidates)
}

// executeSearch runs the crawl selected by req.Flag.
func executeSearch(ctx context.Context, searcher server.Searcher, req *types.SearchRequest) (*searchResult, error) {
	query := queryFor(req)
	result := &searchResult{flag: req.Flag}

	var err error
	switch req.Flag {
	case types.FlagTarget:
		result.employers, err = searcher.CrawlTargetedTenure(ctx, req.ParentCompany, query)
	case types.FlagNotTarget:
		result.candidates, err = searcher.CrawlExcludingCompany(ctx, req.ParentCompany, query)
	case types.FlagAll:
		result.candidates, err = searcher.Crawl(ctx, query)
	default:
		return nil, fmt.Errorf("unknown search flag %q", req.Flag)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// writeResults encodes the results as indented JSON after checking them
// against their schema.
func writeResults(w io.Writer, result *searchResult) error {
	data, err := json.MarshalIndent(result.Value(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	if err := schemas.Validate(result.Schema(), data); err != nil {
		return fmt.Errorf("results failed schema validation: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
