package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notegraph-dev/notegraph/internal/domain/entities"
	repo "github.com/notegraph-dev/notegraph/internal/domain/repositories"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates an analytics repository backed by GORM
func NewAnalyticsRepository(db *gorm.DB) repo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// collectNames follows one edge kind out of a meeting and returns the named
// column of the target table.
func (r *analyticsRepository) collectNames(ctx context.Context, meetingID uuid.UUID, kind, table, column string) ([]string, error) {
	q := `SELECT t.` + column + ` FROM graph_edges e JOIN ` + table + ` t ON t.id = e.to_id
        WHERE e.kind = ? AND e.from_id = ? ORDER BY t.created_at`
	rows, err := r.db.WithContext(ctx).Raw(q, kind, meetingID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *analyticsRepository) buildReport(ctx context.Context, id uuid.UUID, title, meetingType string, ts time.Time) (repo.MeetingReport, error) {
	report := repo.MeetingReport{Title: title, Type: meetingType, Timestamp: ts}

	var err error
	if report.Topics, err = r.collectNames(ctx, id, entities.EdgeDiscusses, "topics", "name"); err != nil {
		return report, err
	}
	if report.Actions, err = r.collectNames(ctx, id, entities.EdgeHasActionItem, "action_items", "description"); err != nil {
		return report, err
	}
	if report.Attendees, err = r.collectNames(ctx, id, entities.EdgeHasAttendee, "persons", "name"); err != nil {
		return report, err
	}
	return report, nil
}

func (r *analyticsRepository) RecentMeetings(ctx context.Context, start, end time.Time) ([]repo.MeetingReport, error) {
	rows, err := r.db.WithContext(ctx).Raw(
		`SELECT id, title, type, timestamp FROM meetings WHERE timestamp >= ? AND timestamp <= ? ORDER BY timestamp DESC`,
		start, end).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type meetingRow struct {
		id          uuid.UUID
		title       string
		meetingType string
		ts          time.Time
	}
	var meetings []meetingRow
	for rows.Next() {
		var m meetingRow
		if err := rows.Scan(&m.id, &m.title, &m.meetingType, &m.ts); err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var reports []repo.MeetingReport
	for _, m := range meetings {
		report, err := r.buildReport(ctx, m.id, m.title, m.meetingType, m.ts)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *analyticsRepository) PendingActionItems(ctx context.Context) ([]repo.PendingAction, error) {
	q := `SELECT a.description, p.name, a.priority
        FROM action_items a
        JOIN graph_edges e ON e.kind = ? AND e.from_id = a.id
        JOIN persons p ON p.id = e.to_id
        WHERE a.status = ?
        ORDER BY a.created_at DESC`
	rows, err := r.db.WithContext(ctx).Raw(q, entities.EdgeAssignedTo, entities.ActionItemStatusPending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []repo.PendingAction
	for rows.Next() {
		var a repo.PendingAction
		if err := rows.Scan(&a.Description, &a.Assignee, &a.Priority); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *analyticsRepository) TopicHistory(ctx context.Context, topic string) ([]repo.TopicMention, error) {
	q := `SELECT m.id, m.title, m.timestamp
        FROM topics t
        JOIN graph_edges d ON d.kind = ? AND d.to_id = t.id
        JOIN meetings m ON m.id = d.from_id
        WHERE t.name = ?
        ORDER BY m.timestamp DESC`
	rows, err := r.db.WithContext(ctx).Raw(q, entities.EdgeDiscusses, topic).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type mentionRow struct {
		id    uuid.UUID
		title string
		ts    time.Time
	}
	var mentionRows []mentionRow
	for rows.Next() {
		var m mentionRow
		if err := rows.Scan(&m.id, &m.title, &m.ts); err != nil {
			return nil, err
		}
		mentionRows = append(mentionRows, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var mentions []repo.TopicMention
	for _, m := range mentionRows {
		actions, err := r.collectNames(ctx, m.id, entities.EdgeHasActionItem, "action_items", "description")
		if err != nil {
			return nil, err
		}
		mentions = append(mentions, repo.TopicMention{Meeting: m.title, Timestamp: m.ts, Actions: actions})
	}
	return mentions, nil
}

func (r *analyticsRepository) PersonTasks(ctx context.Context, person string) ([]repo.PersonTask, error) {
	q := `SELECT a.description, a.status, a.priority, m.title
        FROM persons p
        JOIN graph_edges ae ON ae.kind = ? AND ae.to_id = p.id
        JOIN action_items a ON a.id = ae.from_id
        LEFT JOIN graph_edges me ON me.kind = ? AND me.to_id = a.id
        LEFT JOIN meetings m ON m.id = me.from_id
        WHERE p.name = ?
        ORDER BY a.created_at DESC`
	rows, err := r.db.WithContext(ctx).Raw(q, entities.EdgeAssignedTo, entities.EdgeHasActionItem, person).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []repo.PersonTask
	for rows.Next() {
		var t repo.PersonTask
		var meeting sql.NullString
		if err := rows.Scan(&t.Task, &t.Status, &t.Priority, &meeting); err != nil {
			return nil, err
		}
		t.Meeting = meeting.String
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *analyticsRepository) SearchMeetings(ctx context.Context, keyword string) ([]repo.MeetingReport, error) {
	pattern := "%" + keyword + "%"
	q := `SELECT DISTINCT m.id, m.title, m.type, m.timestamp
        FROM meetings m
        LEFT JOIN graph_edges d ON d.kind = ? AND d.from_id = m.id
        LEFT JOIN topics t ON t.id = d.to_id
        WHERE m.title ILIKE ? OR t.name ILIKE ?
        ORDER BY m.timestamp DESC`
	rows, err := r.db.WithContext(ctx).Raw(q, entities.EdgeDiscusses, pattern, pattern).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type meetingRow struct {
		id          uuid.UUID
		title       string
		meetingType string
		ts          time.Time
	}
	var meetings []meetingRow
	for rows.Next() {
		var m meetingRow
		if err := rows.Scan(&m.id, &m.title, &m.meetingType, &m.ts); err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var reports []repo.MeetingReport
	for _, m := range meetings {
		report, err := r.buildReport(ctx, m.id, m.title, m.meetingType, m.ts)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *analyticsRepository) TopicCooccurrence(ctx context.Context) ([]repo.TopicPair, error) {
	q := `SELECT t1.name, t2.name, COUNT(DISTINCT e1.from_id) AS cooccurrence
        FROM graph_edges e1
        JOIN graph_edges e2 ON e2.from_id = e1.from_id AND e1.kind = ? AND e2.kind = ?
        JOIN topics t1 ON t1.id = e1.to_id
        JOIN topics t2 ON t2.id = e2.to_id
        WHERE t1.name < t2.name
        GROUP BY t1.name, t2.name
        HAVING COUNT(DISTINCT e1.from_id) > 1
        ORDER BY cooccurrence DESC`
	rows, err := r.db.WithContext(ctx).Raw(q, entities.EdgeDiscusses, entities.EdgeDiscusses).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []repo.TopicPair
	for rows.Next() {
		var p repo.TopicPair
		if err := rows.Scan(&p.Topic1, &p.Topic2, &p.Cooccurrence); err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

func (r *analyticsRepository) Bottlenecks(ctx context.Context, minPending int) ([]repo.Bottleneck, error) {
	q := `SELECT p.id, p.name, COUNT(a.id) AS pending_tasks
        FROM persons p
        JOIN graph_edges e ON e.kind = ? AND e.to_id = p.id
        JOIN action_items a ON a.id = e.from_id
        WHERE a.status = ?
        GROUP BY p.id, p.name
        HAVING COUNT(a.id) >= ?
        ORDER BY pending_tasks DESC`
	rows, err := r.db.WithContext(ctx).Raw(q, entities.EdgeAssignedTo, entities.ActionItemStatusPending, minPending).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type bottleneckRow struct {
		id      uuid.UUID
		name    string
		pending int
	}
	var people []bottleneckRow
	for rows.Next() {
		var b bottleneckRow
		if err := rows.Scan(&b.id, &b.name, &b.pending); err != nil {
			return nil, err
		}
		people = append(people, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var bottlenecks []repo.Bottleneck
	for _, person := range people {
		taskRows, err := r.db.WithContext(ctx).Raw(
			`SELECT a.description FROM action_items a
            JOIN graph_edges e ON e.kind = ? AND e.from_id = a.id
            WHERE e.to_id = ? AND a.status = ?
            ORDER BY a.created_at DESC`,
			entities.EdgeAssignedTo, person.id, entities.ActionItemStatusPending).Rows()
		if err != nil {
			return nil, err
		}
		var tasks []string
		for taskRows.Next() {
			var task string
			if err := taskRows.Scan(&task); err != nil {
				taskRows.Close()
				return nil, err
			}
			tasks = append(tasks, task)
		}
		if err := taskRows.Err(); err != nil {
			taskRows.Close()
			return nil, err
		}
		taskRows.Close()
		bottlenecks = append(bottlenecks, repo.Bottleneck{Person: person.name, PendingTasks: person.pending, Tasks: tasks})
	}
	return bottlenecks, nil
}

func (r *analyticsRepository) EfficiencyMetrics(ctx context.Context) (*repo.EfficiencyMetrics, error) {
	q := `SELECT
        (SELECT COUNT(*) FROM meetings),
        (SELECT COUNT(*) FROM graph_edges WHERE kind = ?),
        (SELECT COUNT(*) FROM graph_edges WHERE kind = ?),
        (SELECT COUNT(*) FROM graph_edges WHERE kind = ?)`
	row := r.db.WithContext(ctx).Raw(q, entities.EdgeHasActionItem, entities.EdgeMadeDecision, entities.EdgeDiscusses).Row()

	var meetings, actions, decisions, topics int
	if err := row.Scan(&meetings, &actions, &decisions, &topics); err != nil {
		return nil, err
	}

	metrics := &repo.EfficiencyMetrics{
		TotalMeetings:  meetings,
		TotalActions:   actions,
		TotalDecisions: decisions,
	}
	if meetings > 0 {
		metrics.AvgTopics = float64(topics) / float64(meetings)
		metrics.AvgActions = float64(actions) / float64(meetings)
		metrics.AvgDecisions = float64(decisions) / float64(meetings)
	}
	return metrics, nil
}

func (r *analyticsRepository) ProgressAggregates(ctx context.Context, since time.Time) (*repo.ProgressAggregates, error) {
	agg := &repo.ProgressAggregates{}

	row := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM meetings WHERE timestamp >= ?`, since).Row()
	if err := row.Scan(&agg.TotalMeetings); err != nil {
		return nil, err
	}

	topicRows, err := r.db.WithContext(ctx).Raw(
		`SELECT DISTINCT t.name FROM topics t
        JOIN graph_edges d ON d.kind = ? AND d.to_id = t.id
        JOIN meetings m ON m.id = d.from_id
        WHERE m.timestamp >= ?`,
		entities.EdgeDiscusses, since).Rows()
	if err != nil {
		return nil, err
	}
	for topicRows.Next() {
		var name string
		if err := topicRows.Scan(&name); err != nil {
			topicRows.Close()
			return nil, err
		}
		agg.Topics = append(agg.Topics, name)
	}
	if err := topicRows.Err(); err != nil {
		topicRows.Close()
		return nil, err
	}
	topicRows.Close()

	decisionRows, err := r.db.WithContext(ctx).Raw(
		`SELECT d.content FROM decisions d
        JOIN graph_edges e ON e.kind = ? AND e.to_id = d.id
        JOIN meetings m ON m.id = e.from_id
        WHERE m.timestamp >= ?`,
		entities.EdgeMadeDecision, since).Rows()
	if err != nil {
		return nil, err
	}
	for decisionRows.Next() {
		var content string
		if err := decisionRows.Scan(&content); err != nil {
			decisionRows.Close()
			return nil, err
		}
		agg.Decisions = append(agg.Decisions, content)
	}
	if err := decisionRows.Err(); err != nil {
		decisionRows.Close()
		return nil, err
	}
	decisionRows.Close()

	actionRows, err := r.db.WithContext(ctx).Raw(
		`SELECT a.description, p.name, a.priority
        FROM action_items a
        JOIN graph_edges me ON me.kind = ? AND me.to_id = a.id
        JOIN meetings m ON m.id = me.from_id
        JOIN graph_edges ae ON ae.kind = ? AND ae.from_id = a.id
        JOIN persons p ON p.id = ae.to_id
        WHERE m.timestamp >= ? AND a.status = ?`,
		entities.EdgeHasActionItem, entities.EdgeAssignedTo, since, entities.ActionItemStatusPending).Rows()
	if err != nil {
		return nil, err
	}
	defer actionRows.Close()
	for actionRows.Next() {
		var a repo.PendingAction
		if err := actionRows.Scan(&a.Description, &a.Assignee, &a.Priority); err != nil {
			return nil, err
		}
		agg.ActionItems = append(agg.ActionItems, a)
	}
	return agg, actionRows.Err()
}

func (r *analyticsRepository) RunReadOnlyQuery(ctx context.Context, query string) ([]map[string]any, error) {
	// The statement is model generated. Run it in a read-only transaction so
	// the database rejects anything the keyword guard missed.
	tx := r.db.WithContext(ctx).Begin(&sql.TxOptions{ReadOnly: true})
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	rows, err := tx.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		record := make(map[string]any, len(columns))
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				record[column] = string(b)
				continue
			}
			record[column] = values[i]
		}
		results = append(results, record)
	}
	return results, rows.Err()
}
