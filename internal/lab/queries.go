package lab

// SQL for the query battery, in the order the lab runs it.

const (
	// queryRatingsPreview retrieves the first five ratings.
	queryRatingsPreview = `
    SELECT * 
    FROM ratings 
    LIMIT 5;
    `

	// queryTopMedianLiteral filters and orders with the threshold inlined.
	queryTopMedianLiteral = `
    SELECT * 
    FROM ratings 
    WHERE median_rating > 9
    ORDER BY total_ratings DESC
    LIMIT 5;
    `

	// queryTopMedian is queryTopMedianLiteral with the threshold bound.
	// Parameter 1: median rating threshold
	queryTopMedian = `
    SELECT * 
    FROM ratings 
    WHERE median_rating > ?
    ORDER BY total_ratings DESC
    LIMIT 5;
    `

	// queryTopMedianMultiSort orders by three columns.
	// Parameter 1: median rating threshold
	queryTopMedianMultiSort = `
    SELECT * 
    FROM ratings 
    WHERE median_rating > ?
    ORDER BY median_rating DESC, avg_rating DESC, total_ratings DESC
    LIMIT 5;
    `

	// queryAverageTotalRatings aggregates over the filtered ratings.
	// Parameter 1: median rating threshold
	queryAverageTotalRatings = `
    SELECT AVG(total_ratings) 
    FROM ratings 
    WHERE median_rating > ?;
    `

	queryDistinctMedians = `
    SELECT COUNT(DISTINCT median_rating) 
    FROM ratings;
    `

	// QueryAboveMedianSubquery returns ratings whose total_ratings exceeds
	// the lower median of total_ratings, found with LIMIT 1 OFFSET (n-1)/2.
	QueryAboveMedianSubquery = `
    SELECT avg_rating, total_ratings
    FROM ratings
    WHERE total_ratings > (
        SELECT total_ratings
        FROM ratings
        ORDER BY total_ratings
        LIMIT 1 OFFSET (SELECT (COUNT(*) - 1) / 2 FROM ratings)
    )
    ORDER BY avg_rating DESC, total_ratings DESC
    LIMIT 5;
    `

	// QueryAboveMedianCTE is QueryAboveMedianSubquery with the median
	// lifted into a common table expression.
	QueryAboveMedianCTE = `
    WITH medianRatings AS (
        SELECT total_ratings
        FROM ratings
        ORDER BY total_ratings
        LIMIT 1 OFFSET (SELECT (COUNT(*) - 1) / 2 FROM ratings)
    )

    SELECT avg_rating, total_ratings
    FROM ratings
    WHERE total_ratings > (SELECT total_ratings FROM medianRatings)
    ORDER BY avg_rating DESC, total_ratings DESC
    LIMIT 5;
    `

	queryMoviesPreview = `
    SELECT *
    FROM movies
    LIMIT 5;
    `

	// queryKnownIncomeAndCompany expects the normalization updates to have run.
	queryKnownIncomeAndCompany = `
    SELECT *
    FROM movies
    WHERE worldwide_gross_income AND production_company NOT NULL
    LIMIT 5;
    `

	queryProlificCompanies = `
    SELECT production_company, country, COUNT(production_company), ROUND(AVG(worldwide_gross_income), 2) AS avg_income
    FROM movies
    GROUP BY production_company
    HAVING COUNT(production_company) > 5 AND worldwide_gross_income IS NOT NULL
    ORDER BY avg_income DESC
    LIMIT 5;
    `

	// QueryMoviesWithRatings joins every movie to its rating.
	QueryMoviesWithRatings = `
    SELECT m.id, m.title, r.avg_rating, r.total_ratings, m.worldwide_gross_income, m.production_company
    FROM movies AS m
    JOIN ratings AS r
    ON m.id = r.movie_id
    LIMIT 10;
    `

	// QueryTitlesStartingWithW is QueryMoviesWithRatings restricted to
	// titles beginning with W. Its result feeds the frame and chart.
	QueryTitlesStartingWithW = `
    SELECT m.id, m.title, r.avg_rating, r.total_ratings, m.worldwide_gross_income, m.production_company
    FROM movies AS m
    JOIN ratings AS r
    ON m.id = r.movie_id
    WHERE m.title LIKE 'W%'
    LIMIT 10;
    `
)
