package lab

import (
	"github.com/vvka-141/imdblab/internal/db/manager"
	"github.com/vvka-141/imdblab/internal/loader"
)

// MedianThreshold is the value bound to the parameterized median filters.
const MedianThreshold = 9

// StepKind tells the runner which component executes a Step.
type StepKind int

const (
	// StepSchema runs a DDL or DML statement through the schema manager.
	StepSchema StepKind = iota
	// StepLoad loads a dataset through the bulk loader.
	StepLoad
	// StepQuery runs a statement through the query executor and prints its rows.
	StepQuery
)

// String returns the kind name.
func (k StepKind) String() string {
	switch k {
	case StepSchema:
		return "schema"
	case StepLoad:
		return "load"
	case StepQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Step is one entry of the lab plan.
type Step struct {
	Name    string
	Kind    StepKind
	SQL     string
	Params  []any
	Dataset loader.Dataset
}

// FrameColumns name the columns of the final join result as handed to the
// frame and chart collaborators.
var FrameColumns = []string{"id", "title", "avg_rating", "total_ratings", "ww_gross", "prod_company"}

// Chart labels for the final scatter plot.
const (
	ChartTitle  = "Average Rating vs. Total Ratings of Movies Starting w/ W"
	ChartXLabel = "Total Ratings"
	ChartYLabel = "Average Rating"
)

// Plan returns the fixed lab sequence. The last step is always the query
// whose result becomes the frame.
func Plan() []Step {
	return []Step{
		{Name: "create ratings table", Kind: StepSchema, SQL: manager.CreateRatingsTable},
		{Name: "load ratings", Kind: StepLoad, Dataset: loader.DatasetRatings},
		{Name: "create movies table", Kind: StepSchema, SQL: manager.CreateMoviesTable},
		{Name: "load movies", Kind: StepLoad, Dataset: loader.DatasetMovies},

		{Name: "preview ratings", Kind: StepQuery, SQL: queryRatingsPreview},
		{Name: "top median ratings (literal)", Kind: StepQuery, SQL: queryTopMedianLiteral},
		{Name: "top median ratings (bound)", Kind: StepQuery, SQL: queryTopMedian, Params: []any{MedianThreshold}},
		{Name: "top median ratings (multi-column sort)", Kind: StepQuery, SQL: queryTopMedianMultiSort, Params: []any{MedianThreshold}},
		{Name: "average total ratings", Kind: StepQuery, SQL: queryAverageTotalRatings, Params: []any{MedianThreshold}},
		{Name: "distinct median ratings", Kind: StepQuery, SQL: queryDistinctMedians},
		{Name: "above median total ratings (subquery)", Kind: StepQuery, SQL: QueryAboveMedianSubquery},
		{Name: "above median total ratings (CTE)", Kind: StepQuery, SQL: QueryAboveMedianCTE},

		{Name: "preview movies", Kind: StepQuery, SQL: queryMoviesPreview},
		{Name: "normalize gross income", Kind: StepSchema, SQL: manager.NormalizeGrossIncome},
		{Name: "normalize production company", Kind: StepSchema, SQL: manager.NormalizeProductionCompany},
		{Name: "preview normalized movies", Kind: StepQuery, SQL: queryMoviesPreview},
		{Name: "movies with income and company", Kind: StepQuery, SQL: queryKnownIncomeAndCompany},
		{Name: "prolific production companies", Kind: StepQuery, SQL: queryProlificCompanies},
		{Name: "movies joined with ratings", Kind: StepQuery, SQL: QueryMoviesWithRatings},
		{Name: "titles starting with W", Kind: StepQuery, SQL: QueryTitlesStartingWithW},
	}
}
