package models

import "time"

// ReportReason is the closed set of accepted report reasons.
type ReportReason string

const (
	ReasonSpam       ReportReason = "SPAM"
	ReasonAbusive    ReportReason = "ABUSIVE"
	ReasonAgainstTOS ReportReason = "AGAINST_TOS"
)

// ParseReportReason validates free-form input against the reason enum.
// Unlike window parsing, unknown reasons are rejected, not defaulted.
func ParseReportReason(s string) (ReportReason, bool) {
	switch ReportReason(s) {
	case ReasonSpam, ReasonAbusive, ReasonAgainstTOS:
		return ReportReason(s), true
	}
	return "", false
}

// Report is a REPORTS edge from the reporting user to the post. Checked
// transitions exactly once from false to true; acceptance additionally
// soft-deletes the post. The listing form denormalizes reporter and
// author usernames plus the post snapshot moderators review.
type Report struct {
	UUID               string       `json:"uuid"`
	Reason             ReportReason `json:"reason"`
	Description        string       `json:"description,omitempty"`
	Checked            bool         `json:"checked"`
	CreationDate       time.Time    `json:"creation_date"`
	ReporterUUID       string       `json:"-"`
	ReporterUsername   string       `json:"reporter_username"`
	PostUUID           string       `json:"post_uuid"`
	PostContent        string       `json:"post_content"`
	PostDeleted        bool         `json:"post_deleted"`
	PostAuthorUsername string       `json:"post_author_username"`
}
