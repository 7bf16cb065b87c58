package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/marshmallow-code/dashboard/internal/core/records"
)

// Credentials is the service-account identity used for warehouse queries,
// assembled from individual configuration values rather than a key file on
// disk.
type Credentials struct {
	ProjectID    string
	PrivateKeyID string
	PrivateKey   string
	ClientEmail  string
	TokenURI     string
}

func (c Credentials) serviceAccountJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     c.ProjectID,
		"private_key_id": c.PrivateKeyID,
		"private_key":    c.PrivateKey,
		"client_email":   c.ClientEmail,
		"token_uri":      c.TokenURI,
	})
}

// BigQuery reads the date-sharded downloads tables.
type BigQuery struct {
	client      *bigquery.Client
	projectID   string
	dataset     string
	tablePrefix string
	timeout     time.Duration
}

// NewBigQuery builds a warehouse client authenticated as the given service
// account.
func NewBigQuery(ctx context.Context, creds Credentials, dataset, tablePrefix string, timeout time.Duration) (*BigQuery, error) {
	blob, err := creds.serviceAccountJSON()
	if err != nil {
		return nil, fmt.Errorf("assemble service account: %w", err)
	}

	client, err := bigquery.NewClient(ctx, creds.ProjectID,
		option.WithCredentialsJSON(blob),
		option.WithScopes(bigquery.Scope),
	)
	if err != nil {
		return nil, fmt.Errorf("create bigquery client: %w", err)
	}

	slog.Info("[BigQuery] Client ready", "project", creds.ProjectID, "dataset", dataset)
	return &BigQuery{
		client:      client,
		projectID:   creds.ProjectID,
		dataset:     dataset,
		tablePrefix: tablePrefix,
		timeout:     timeout,
	}, nil
}

// FetchDownloadRecords queries every table shard whose date suffix falls
// inside the window. Rows are validated as they stream; one bad row fails
// the whole fetch, because a silently short dataset would skew every chart.
func (b *BigQuery) FetchDownloadRecords(ctx context.Context, w Window) ([]records.DownloadRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	table := fmt.Sprintf("`%s.%s.%s*`", b.projectID, b.dataset, b.tablePrefix)
	q := b.client.Query(`
SELECT date, category_label, category_value, downloads
FROM ` + table + `
WHERE _TABLE_SUFFIX
  BETWEEN FORMAT_DATE('%Y%m%d', DATE_SUB(CURRENT_DATE(), INTERVAL @window_days DAY))
  AND FORMAT_DATE('%Y%m%d', CURRENT_DATE())`)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "window_days", Value: int64(w.Days)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, &DataSourceError{Window: w, Err: fmt.Errorf("run query: %w", err)}
	}

	var recs []records.DownloadRecord
	for {
		var rec records.DownloadRecord
		err := it.Next(&rec)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &DataSourceError{Window: w, Err: fmt.Errorf("read row: %w", err)}
		}
		if err := rec.Validate(); err != nil {
			return nil, &DataSourceError{Window: w, Err: fmt.Errorf("row %d: %w", len(recs), err)}
		}
		recs = append(recs, rec)
	}

	slog.Info("[BigQuery] Fetched download records", "rows", len(recs), "window_days", w.Days)
	return recs, nil
}

// Close releases the underlying client.
func (b *BigQuery) Close() error {
	return b.client.Close()
}
