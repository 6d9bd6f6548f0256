package lab_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/imdblab/internal/chart"
	"github.com/vvka-141/imdblab/internal/db"
	"github.com/vvka-141/imdblab/internal/db/manager"
	"github.com/vvka-141/imdblab/internal/lab"
	"github.com/vvka-141/imdblab/internal/loader"
	"github.com/vvka-141/imdblab/internal/logging"
	"github.com/vvka-141/imdblab/internal/query"
	testhelpers "github.com/vvka-141/imdblab/internal/testing"
	"github.com/vvka-141/imdblab/internal/testing/fixtures"
	"github.com/vvka-141/imdblab/pkg/imdblab"
)

type recordingRenderer struct {
	calls []chart.Scatter
}

func (r *recordingRenderer) Render(s chart.Scatter) error {
	r.calls = append(r.calls, s)
	return nil
}

type recordingTracker struct {
	messages []string
	failures int
}

func (r *recordingTracker) Track(_ context.Context, message string, fn func() (string, error)) error {
	r.messages = append(r.messages, message)
	_, err := fn()
	if err != nil {
		r.failures++
	}
	return err
}

type labFixture struct {
	connector *db.SQLiteConnector
	config    imdblab.LabConfig
	out       *bytes.Buffer
	renderer  *recordingRenderer
}

func newLabFixture(t *testing.T) *labFixture {
	t.Helper()
	connector := testhelpers.NewTestConnector(t)
	ratingsPath, moviesPath := testhelpers.WriteSampleSources(t)

	config := imdblab.DefaultLabConfig()
	config.DatabasePath = connector.Path()
	config.RatingsCSV = ratingsPath
	config.MoviesCSV = moviesPath

	return &labFixture{
		connector: connector,
		config:    config,
		out:       &bytes.Buffer{},
		renderer:  &recordingRenderer{},
	}
}

func (f *labFixture) runner(opts ...lab.Option) *lab.Runner {
	base := []lab.Option{lab.WithOutput(f.out, false), lab.WithRenderer(f.renderer)}
	return lab.New(f.config, f.connector, logging.NewNullLogger(), append(base, opts...)...)
}

func (f *labFixture) run(t *testing.T) *lab.Report {
	t.Helper()
	report, err := f.runner().Run(context.Background())
	require.NoError(t, err)
	return report
}

func stepResult(t *testing.T, report *lab.Report, name string) *imdblab.ResultSet {
	t.Helper()
	for _, s := range report.Steps {
		if s.Step.Name == name {
			require.NotNil(t, s.Result, "step %q has no result", name)
			return s.Result
		}
	}
	t.Fatalf("step %q not found", name)
	return nil
}

func TestRun_ExecutesWholePlan(t *testing.T) {
	f := newLabFixture(t)
	report := f.run(t)

	assert.Len(t, report.Steps, len(lab.Plan()))
	assert.NotEqual(t, [16]byte{}, [16]byte(report.RunID))
	assert.EqualValues(t, 7, report.RunID.Version())
	require.Len(t, report.Loads, 2)
	assert.Equal(t, 8, report.Loads[0].Inserted)
	assert.Equal(t, 8, report.Loads[1].Inserted)

	out := f.out.String()
	assert.Contains(t, out, "[1/20] create ratings table")
	assert.Contains(t, out, "[20/20] titles starting with W")
	assert.Contains(t, out, "See query...")
	assert.Contains(t, out, "params: [9]")
	assert.Contains(t, out, "Read "+f.config.RatingsCSV+", field names: movie_id, avg_rating, total_ratings, median_rating")
	assert.Contains(t, out, "Lab run "+report.RunID.String()+" finished")
}

func TestRun_FinalFrameAndScatter(t *testing.T) {
	f := newLabFixture(t)
	report := f.run(t)

	require.NotNil(t, report.Frame)
	assert.Equal(t, lab.FrameColumns, report.Frame.Columns())
	assert.Equal(t, 4, report.Frame.Len())

	titles, err := report.Frame.Strings("title")
	require.NoError(t, err)
	assert.ElementsMatch(t, fixtures.SampleTitlesStartingWithW, titles)
	assert.NotContains(t, titles, "Wolfwalkers", "a movie without a rating is dropped by the inner join")

	require.Len(t, f.renderer.calls, 1)
	scatter := f.renderer.calls[0]
	assert.Equal(t, lab.ChartTitle, scatter.Title)
	assert.Equal(t, lab.ChartXLabel, scatter.XLabel)
	assert.Equal(t, lab.ChartYLabel, scatter.YLabel)
	require.Len(t, scatter.Points, 4)
	for _, p := range scatter.Points {
		if p.Label == "Warrior" {
			assert.Equal(t, chart.Point{X: 450000, Y: 8.1, Label: "Warrior"}, p)
		}
	}
	assert.Equal(t, scatter, report.Scatter)
}

func TestRun_MedianFilter(t *testing.T) {
	report := newLabFixture(t).run(t)

	bound := stepResult(t, report, "top median ratings (bound)")
	require.Equal(t, 3, bound.Len())
	assert.Equal(t, "tt0002", bound.Rows[0][0])
	assert.Equal(t, "tt0003", bound.Rows[1][0])
	assert.Equal(t, "tt9999", bound.Rows[2][0])
	for _, row := range bound.Rows {
		assert.Greater(t, row[3].(float64), 9.0)
	}

	literal := stepResult(t, report, "top median ratings (literal)")
	assert.Equal(t, literal, bound)

	multi := stepResult(t, report, "top median ratings (multi-column sort)")
	require.Equal(t, 3, multi.Len())
	assert.Equal(t, "tt0003", multi.Rows[0][0], "ties on median break on avg_rating")
}

func TestRun_Aggregations(t *testing.T) {
	report := newLabFixture(t).run(t)

	avg := stepResult(t, report, "average total ratings")
	assert.InDelta(t, (1050000.0+780000.0+10.0)/3, avg.Rows[0][0], 0.001)

	distinct := stepResult(t, report, "distinct median ratings")
	assert.Equal(t, int64(3), distinct.Rows[0][0])

	companies := stepResult(t, report, "prolific production companies")
	assert.Len(t, companies.Columns, 4)
	assert.True(t, companies.Empty())
}

func TestRun_MedianSubqueryMatchesCTE(t *testing.T) {
	report := newLabFixture(t).run(t)

	sub := stepResult(t, report, "above median total ratings (subquery)")
	cte := stepResult(t, report, "above median total ratings (CTE)")
	assert.Equal(t, sub, cte)
	assert.Equal(t, [][]any{
		{8.5, int64(780000)},
		{8.4, int64(1050000)},
		{8.3, int64(720000)},
		{8.2, int64(1010000)},
	}, sub.Rows)
}

func TestAboveMedian_ThreeRows(t *testing.T) {
	ctx := context.Background()
	connector := testhelpers.NewTestConnector(t)
	logger := logging.NewNullLogger()
	require.NoError(t, manager.New(connector, logger).Exec(ctx, manager.CreateRatingsTable))

	path := fixtures.NewRatingsCSV().
		AddRow("a", "5.0", "10", "5").
		AddRow("b", "6.0", "20", "6").
		AddRow("c", "7.0", "30", "7").
		Write(t, t.TempDir(), "ratings.csv")
	_, err := loader.New(connector, logger).Load(ctx, loader.DatasetRatings, path)
	require.NoError(t, err)

	exec := query.New(connector, logger)
	for _, stmt := range []string{lab.QueryAboveMedianSubquery, lab.QueryAboveMedianCTE} {
		rs, err := exec.Query(ctx, stmt)
		require.NoError(t, err)
		assert.Equal(t, [][]any{{7.0, int64(30)}}, rs.Rows)
	}
}

func TestRun_Normalization(t *testing.T) {
	f := newLabFixture(t)
	report := f.run(t)

	exec := query.New(f.connector, logging.NewNullLogger())
	rs, err := exec.Query(context.Background(),
		"SELECT COUNT(*) FROM movies WHERE worldwide_gross_income = '' OR production_company = ''")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rs.Rows[0][0])

	before := stepResult(t, report, "preview movies")
	after := stepResult(t, report, "preview normalized movies")
	assert.Equal(t, "", before.Rows[2][6], "Whiplash company is empty before normalization")
	assert.Nil(t, after.Rows[2][6])

	known := stepResult(t, report, "movies with income and company")
	ids := make([]any, 0, known.Len())
	for _, row := range known.Rows {
		ids = append(ids, row[0])
	}
	assert.Equal(t, []any{"tt0001", "tt0002", "tt0004", "tt0006", "tt0008"}, ids)
}

func TestRun_JoinCombinesRows(t *testing.T) {
	report := newLabFixture(t).run(t)

	joined := stepResult(t, report, "movies joined with ratings")
	assert.Equal(t, 7, joined.Len(), "tt0007 has no rating and tt9999 has no movie")

	var warrior [][]any
	for _, row := range joined.Rows {
		if row[1] == "Warrior" {
			warrior = append(warrior, row)
		}
	}
	assert.Equal(t, [][]any{{"tt0001", "Warrior", 8.1, int64(450000), int64(23057115), "Lionsgate"}}, warrior)
}

func TestRun_IsRepeatable(t *testing.T) {
	f := newLabFixture(t)
	first := f.run(t)
	second := f.run(t)

	assert.NotEqual(t, first.RunID, second.RunID)
	for _, load := range second.Loads {
		assert.Equal(t, 0, load.Inserted)
		assert.Equal(t, 8, load.Skipped())
	}
	assert.Equal(t, first.Frame.Len(), second.Frame.Len())
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	f := newLabFixture(t)
	f.config.MoviesCSV = filepath.Join(t.TempDir(), "movies.csv")

	report, err := f.runner().Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, imdblab.ErrSourceNotFound))
	assert.Contains(t, err.Error(), "step 4 (load movies) failed")
	assert.Equal(t, imdblab.ExitSourceError, imdblab.ExitCodeForError(err))

	require.NotNil(t, report)
	assert.Len(t, report.Steps, 3)
	assert.Nil(t, report.Frame)
	assert.Empty(t, f.renderer.calls)
	assert.NotContains(t, f.out.String(), "[5/20]")
}

func TestRun_QueryFailureNamesStep(t *testing.T) {
	f := newLabFixture(t)
	plan := []lab.Step{
		{Name: "broken", Kind: lab.StepQuery, SQL: "SELECT * FROM nowhere"},
	}

	_, err := f.runner(lab.WithPlan(plan)).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, imdblab.ErrQueryFailed))
	assert.Contains(t, err.Error(), "step 1 (broken) failed")
}

func TestRun_ChartDisabled(t *testing.T) {
	f := newLabFixture(t)
	f.config.Chart = false

	runner := lab.New(f.config, f.connector, logging.NewNullLogger(), lab.WithOutput(f.out, false))
	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, report.Frame)
	assert.NotContains(t, f.out.String(), lab.ChartTitle)
}

func TestRun_TextChart(t *testing.T) {
	f := newLabFixture(t)
	f.config.ChartWidth = 40
	f.config.ChartHeight = 8

	runner := lab.New(f.config, f.connector, logging.NewNullLogger(), lab.WithOutput(f.out, false))
	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	out := f.out.String()
	assert.Contains(t, out, lab.ChartTitle)
	assert.Contains(t, out, "Warrior (450000, 8.10)")
}

func TestRun_PreviewRowsLimitsFrameHead(t *testing.T) {
	f := newLabFixture(t)
	f.config.PreviewRows = 2
	f.run(t)

	assert.Contains(t, f.out.String(), "Frame head (2 of 4 row(s))")
}

func TestRun_CanceledContext(t *testing.T) {
	f := newLabFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.runner().Run(ctx)
	require.Error(t, err)
}

func TestNew_PanicsOnNilDependencies(t *testing.T) {
	f := newLabFixture(t)
	assert.Panics(t, func() { lab.New(f.config, nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { lab.New(f.config, f.connector, nil) })
}

func TestRun_TracksEveryStep(t *testing.T) {
	f := newLabFixture(t)
	tracker := &recordingTracker{}

	_, err := f.runner(lab.WithTracker(tracker)).Run(context.Background())
	require.NoError(t, err)

	plan := lab.Plan()
	require.Len(t, tracker.messages, len(plan))
	for i, step := range plan {
		if step.Kind == lab.StepLoad {
			assert.Contains(t, tracker.messages[i], "into "+step.Dataset.Table())
			continue
		}
		assert.Contains(t, tracker.messages[i], step.Name)
	}
	assert.Zero(t, tracker.failures)
}

func TestRun_TrackerSeesFailingQuery(t *testing.T) {
	f := newLabFixture(t)
	tracker := &recordingTracker{}
	plan := []lab.Step{
		{Name: "broken query", Kind: lab.StepQuery, SQL: "SELECT * FROM no_such_table"},
	}

	_, err := f.runner(lab.WithTracker(tracker), lab.WithPlan(plan)).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, imdblab.ErrQueryFailed))
	assert.Equal(t, []string{"Running broken query"}, tracker.messages)
	assert.Equal(t, 1, tracker.failures)
}
