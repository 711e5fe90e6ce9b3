package analytics

import (
	"context"
	"fmt"
	"os"
	"time"

	"synapshare/database"
	"synapshare/helpers"

	influxdb2 "github.com/influxdata/influxdb-client-go"
)

// Tracker collects usage events (profile visits, searches) in the
// analytics cache (influxDB). Not essential for operations - writers
// never report errors to the caller
type Tracker struct {
	influxClient influxdb2.Client
	VisitorAPI   database.InfluxAPI
	SearchAPI    database.InfluxAPI
}

// SetConnections initializes the instance
func (t *Tracker) SetConnections(influxClient *influxdb2.Client) {
	t.influxClient = *influxClient
}

// SaveVisitor stores event data in the analytics cache
func (t *Tracker) SaveVisitor(domain string, profileID string, userEMail string) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return
	}

	// include object type (domain) in key name,
	// so this information can be "wrapped" in aggegration queries (eq "select profileID, count")

	// the risk of high series cardinalty is accepted, since profiles is what we're interessted in
	// https://docs.influxdata.com/influxdb/v2.0/write-data/best-practices/resolve-high-cardinality/

	p := influxdb2.NewPoint(
		"visit",
		map[string]string{"profileId": domain + "_" + profileID},
		map[string]interface{}{"user": userEMail},
		time.Now())

	// ToDo: log Error
	_ = t.VisitorAPI.WriteAPI.WritePoint(context.Background(), p)
}

// SaveSearch stores event data in the analytics cache.
// Empty searches are look-ups of the start page and not worth recording
func (t *Tracker) SaveSearch(searchTerm string, resultCount int) {

	if os.Getenv("USE_ANALYTICS") != "YES" {
		return
	}

	if searchTerm == "" {
		return
	}

	p := influxdb2.NewPoint(
		"search", // measurement
		map[string]string{"domain": "content"}, // tag
		map[string]interface{}{
			"term":    searchTerm,
			"results": resultCount},
		time.Now())

	// ToDo: log Error
	_ = t.SearchAPI.WriteAPI.WritePoint(context.Background(), p)
}

// GetVisits counts the number of visits of a profile
// the value is "live" - meaning it's read from the analytics cache (influxDB)
// which is set to a maximum period (TTL) of 30 days
func (t *Tracker) GetVisits(domain string, profileID string, startDT time.Time) (int64, error) {

	// zum testen auskommentieren
	if os.Getenv("USE_ANALYTICS") != "YES" {
		return -1, nil
	}

	flux := `from(bucket: "%s")
		|> range(start: %s)
		|> filter(fn: (r) => r["_measurement"] == "visit" and r["profileId"] == "%s")
		|> count()
		|> yield(name: "count")`

	id := domain + "_" + profileID
	flux = fmt.Sprintf(
		flux,
		os.Getenv("ANALYTICS_VISITORS_BUCKET"),
		startDT.Format(time.RFC3339),
		id)

	result, err := t.VisitorAPI.QueryAPI.Query(context.Background(), flux)
	if err != nil {
		return 0, helpers.WrapError(err, helpers.FuncName())
	}

	// nur 1 record
	var res interface{}
	for result.Next() {
		res = result.Record().Value()
	}

	var cnt int64 = 0
	if res != nil {
		cnt = res.(int64)
	}

	return cnt, nil
}
