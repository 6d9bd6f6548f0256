// Package ingest reads delimited text sources into header-keyed records.
//
// The first line of a source is its header row; every later line becomes a
// Record mapping header field names to raw string values. Values are never
// converted here: typing is the store's concern.
//
// A leading byte-order mark is honored (UTF-8, or UTF-16 in either byte
// order) and removed before the header is parsed, so an exported
// spreadsheet's first column name matches exactly.
//
// # Example Usage
//
//	r, err := ingest.Open("ratings.csv")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for {
//	    rec, err := r.Read()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rec["movie_id"])
//	}
package ingest
