package repository

import (
	"context"

	"murmur/internal/graph"
	"murmur/internal/models"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ReportRepository defines the interface for REPORTS edges.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByUUID(ctx context.Context, uuid string) (*models.Report, error)
	List(ctx context.Context, checked bool, skip, limit int) ([]models.Report, error)
	Resolve(ctx context.Context, uuid string, accept bool) error
}

type reportRepository struct {
	runner graph.Runner
}

// NewReportRepository creates a new report repository.
func NewReportRepository(runner graph.Runner) ReportRepository {
	return &reportRepository{runner: runner}
}

const reportReturn = `
	RETURN r.uuid AS uuid, r.reason AS reason, r.description AS description,
	       r.checked AS checked, r.creationDate AS creationDate,
	       reporter.username AS reporterUsername,
	       p.uuid AS postUuid, p.content AS postContent, p.deleted AS postDeleted,
	       author.username AS postAuthorUsername`

// Create records a report edge from the reporter to the post. Repeat
// reports by the same user on the same post each get their own edge.
func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	result, err := r.runner.Run(ctx, `
		MATCH (reporter:User {uuid: $reporter})
		MATCH (p:Post {uuid: $post})
		CREATE (reporter)-[rep:REPORTS {uuid: $uuid, reason: $reason,
		        description: $description, checked: false, creationDate: $at}]->(p)
		RETURN count(rep) AS created`,
		map[string]any{
			"reporter":    report.ReporterUUID,
			"post":        report.PostUUID,
			"uuid":        report.UUID,
			"reason":      string(report.Reason),
			"description": report.Description,
			"at":          millis(report.CreationDate),
		})
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(result.Records) == 0 || recordInt(result.Records[0], "created") == 0 {
		return models.NewNotFoundError("post", report.PostUUID)
	}
	return nil
}

func (r *reportRepository) GetByUUID(ctx context.Context, uuid string) (*models.Report, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (reporter:User)-[r:REPORTS {uuid: $uuid}]->(p:Post)<-[:POSTED]-(author:User)`+reportReturn,
		map[string]any{"uuid": uuid})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if len(result.Records) == 0 {
		return nil, models.NewNotFoundError("report", uuid)
	}
	return mapReport(result.Records[0]), nil
}

// List returns reports in the given state, newest first.
func (r *reportRepository) List(ctx context.Context, checked bool, skip, limit int) ([]models.Report, error) {
	result, err := r.runner.Run(ctx, `
		MATCH (reporter:User)-[r:REPORTS]->(p:Post)<-[:POSTED]-(author:User)
		WHERE r.checked = $checked`+reportReturn+`
		ORDER BY creationDate DESC, uuid ASC
		SKIP $skip LIMIT $limit`,
		map[string]any{"checked": checked, "skip": skip, "limit": limit})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	reports := make([]models.Report, 0, len(result.Records))
	for _, record := range result.Records {
		reports = append(reports, *mapReport(record))
	}
	return reports, nil
}

// Resolve closes an open report. Accepting also soft-deletes the post in
// the same statement, so the two updates cannot be observed apart. A
// report that is already checked matches nothing and reports not found,
// which makes re-resolution a terminal error rather than a silent flip.
func (r *reportRepository) Resolve(ctx context.Context, uuid string, accept bool) error {
	query := `
		MATCH (:User)-[r:REPORTS {uuid: $uuid}]->(p:Post)
		WHERE r.checked = false
		SET r.checked = true
		RETURN count(r) AS updated`
	if accept {
		query = `
		MATCH (:User)-[r:REPORTS {uuid: $uuid}]->(p:Post)
		WHERE r.checked = false
		SET r.checked = true, p.deleted = true
		RETURN count(r) AS updated`
	}
	result, err := r.runner.Run(ctx, query, map[string]any{"uuid": uuid})
	if err != nil {
		return models.NewInternalError(err)
	}
	if len(result.Records) == 0 || recordInt(result.Records[0], "updated") == 0 {
		return models.NewNotFoundError("report", uuid)
	}
	return nil
}

func mapReport(record *neo4j.Record) *models.Report {
	return &models.Report{
		UUID:               recordString(record, "uuid"),
		Reason:             models.ReportReason(recordString(record, "reason")),
		Description:        recordString(record, "description"),
		Checked:            recordBool(record, "checked"),
		CreationDate:       recordTime(record, "creationDate"),
		ReporterUsername:   recordString(record, "reporterUsername"),
		PostUUID:           recordString(record, "postUuid"),
		PostContent:        recordString(record, "postContent"),
		PostDeleted:        recordBool(record, "postDeleted"),
		PostAuthorUsername: recordString(record, "postAuthorUsername"),
	}
}
