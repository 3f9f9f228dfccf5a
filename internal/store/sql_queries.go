package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-repo-pulse/models"
)

const flowRunsTable = "flow_runs"

var flowRunColumns = []string{
	"id",
	"owner",
	"name",
	"status",
	"stargazers",
	"contributors",
	"error_kind",
	"error",
	"started_at",
	"finished_at",
}

// psql numbers placeholders $1, $2...; both PostgreSQL and SQLite accept them.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func insertRunQuery(run models.FlowRun) (string, []any, error) {
	return psql.
		Insert(flowRunsTable).
		Columns(flowRunColumns...).
		Values(
			run.ID,
			run.Owner,
			run.Name,
			string(run.Status),
			run.Stargazers,
			run.Contributors,
			run.ErrorKind,
			run.Error,
			run.StartedAt.UTC(),
			run.FinishedAt.UTC(),
		).
		ToSql()
}

func selectRunsQuery(filter models.RunFilter) (string, []any, error) {
	q := psql.
		Select(flowRunColumns...).
		From(flowRunsTable).
		OrderBy("started_at DESC", "id DESC")

	if filter.Owner != "" {
		q = q.Where(sq.Eq{"owner": filter.Owner})
	}
	if filter.Name != "" {
		q = q.Where(sq.Eq{"name": filter.Name})
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	return q.ToSql()
}

func latestRunQuery(owner, name string) (string, []any, error) {
	return selectRunsQuery(models.RunFilter{Owner: owner, Name: name, Limit: 1})
}
